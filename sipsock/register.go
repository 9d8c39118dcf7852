package sipsock

import (
	"context"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/randutils"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/uri"
)

// Registration procedure states and triggers.
const (
	regStateTrying     = "trying"
	regStateChallenged = "challenged"
	regStateRegistered = "registered"
	regStateFailed     = "failed"

	regTriggerAccept    = "accept"
	regTriggerChallenge = "challenge"
	regTriggerReject    = "reject"
)

func newRegisterFSM() *stateless.StateMachine {
	fsm := stateless.NewStateMachine(regStateTrying)
	fsm.Configure(regStateTrying).
		Permit(regTriggerAccept, regStateRegistered).
		Permit(regTriggerChallenge, regStateChallenged).
		Permit(regTriggerReject, regStateFailed)
	fsm.Configure(regStateChallenged).
		Permit(regTriggerAccept, regStateRegistered).
		Permit(regTriggerReject, regStateFailed)
	return fsm
}

// Register runs the digest registration procedure: an unauthenticated
// REGISTER, then on a 401 challenge a second REGISTER carrying the digest
// credentials and a Contact bound to this connection.
func (c *Connection) Register(ctx context.Context, username, password string) error {
	fsm := newRegisterFSM()
	dialog := c.Dialog()

	tx, err := dialog.Request(sip.RequestMethodRegister).Send(ctx, nil)
	if err != nil {
		return errtrace.Wrap(err)
	}
	res, err := tx.Receive(ctx)
	if err != nil {
		return errtrace.Wrap(err)
	}

	if res.Status.IsSuccess() {
		if err := fsm.FireCtx(ctx, regTriggerAccept); err != nil {
			return errtrace.Wrap(err)
		}
		c.log.Info("registered without challenge", "identity", c.user)
		return nil
	}
	if res.Status != sip.ResponseStatusUnauthorized {
		_ = fsm.FireCtx(ctx, regTriggerReject)
		return errtrace.Wrap(errorutil.NewWrapperError(ErrRegistrationFailed, res.Status.String()))
	}

	challenge, err := res.Headers().WWWAuthenticate()
	if err != nil {
		_ = fsm.FireCtx(ctx, regTriggerReject)
		return errtrace.Wrap(errorutil.NewWrapperError(ErrNoChallenge, err))
	}
	if err := fsm.FireCtx(ctx, regTriggerChallenge); err != nil {
		return errtrace.Wrap(err)
	}
	c.log.Debug("registrar challenge", "realm", challenge.Realm, "algorithm", challenge.Algorithm)

	// The digest URI field is left empty, matching what the registrar
	// hashes on its side.
	response, err := digestResponse(challenge.Algorithm, username, challenge.Realm, password,
		string(sip.RequestMethodRegister), "", challenge.Nonce)
	if err != nil {
		_ = fsm.FireCtx(ctx, regTriggerReject)
		return errtrace.Wrap(err)
	}

	contact := &header.Contact{NameAddr: header.NameAddr{
		URI: uri.URI{
			Scheme: "sip",
			User:   randutils.RandString(16),
			Host:   c.sentBy,
			Params: uri.Values{}.Set("transport", "ws"),
		},
		Params: header.Values{}.Set("expires", "6000"),
	}}
	authz := &header.Authorization{DigestCredentials: header.DigestCredentials{
		Username:  username,
		Realm:     challenge.Realm,
		Nonce:     challenge.Nonce,
		Response:  response,
		Algorithm: challenge.Algorithm,
		Opaque:    challenge.Opaque,
	}}

	tx, err = dialog.Request(sip.RequestMethodRegister).
		Header(contact).
		Header(authz).
		Send(ctx, nil)
	if err != nil {
		return errtrace.Wrap(err)
	}
	res, err = tx.Receive(ctx)
	if err != nil {
		return errtrace.Wrap(err)
	}

	if !res.Status.IsSuccess() {
		_ = fsm.FireCtx(ctx, regTriggerReject)
		return errtrace.Wrap(errorutil.NewWrapperError(ErrRegistrationFailed, res.Status.String()))
	}
	if err := fsm.FireCtx(ctx, regTriggerAccept); err != nil {
		return errtrace.Wrap(err)
	}
	c.log.Info("registered", "identity", c.user)
	return nil
}
