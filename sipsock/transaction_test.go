package sipsock

import (
	"context"
	"errors"
	"testing"

	"github.com/telvora/ucc/internal/log"
	"github.com/telvora/ucc/sip"
)

func TestClientTransaction_ReceiveSkipsProvisional(t *testing.T) {
	t.Parallel()

	reg := newRegistry(log.Noop)
	tx := newClientTransaction(makeRequest(sip.RequestMethodInvite, "prov-1", "b1"), reg)
	if err := reg.Register(tx.key, tx.rt); err != nil {
		t.Fatalf("reg.Register() error = %v, want nil", err)
	}

	reg.Route(makeResponse(sip.ResponseStatusTrying, sip.RequestMethodInvite, "prov-1", "b1"))
	go func() {
		// Routed in order; each send waits for the previous one to be consumed.
		reg.Route(makeResponse(sip.ResponseStatusRinging, sip.RequestMethodInvite, "prov-1", "b1"))
		reg.Route(makeResponse(sip.ResponseStatusOK, sip.RequestMethodInvite, "prov-1", "b1"))
	}()

	res, err := tx.Receive(t.Context())
	if err != nil {
		t.Fatalf("tx.Receive() error = %v, want nil", err)
	}
	if res.Status != sip.ResponseStatusOK {
		t.Fatalf("res.Status = %d, want 200", res.Status)
	}
}

func TestClientTransaction_ReceiveDeregisters(t *testing.T) {
	t.Parallel()

	reg := newRegistry(log.Noop)
	tx := newClientTransaction(makeRequest(sip.RequestMethodRegister, "dereg-1", ""), reg)
	if err := reg.Register(tx.key, tx.rt); err != nil {
		t.Fatalf("reg.Register() error = %v, want nil", err)
	}

	reg.Route(makeResponse(sip.ResponseStatusOK, sip.RequestMethodRegister, "dereg-1", ""))
	if _, err := tx.Receive(t.Context()); err != nil {
		t.Fatalf("tx.Receive() error = %v, want nil", err)
	}

	if reg.routes.Has(tx.key) {
		t.Fatalf("route still registered after final response")
	}
}

func TestClientTransaction_ReceiveContextCancelled(t *testing.T) {
	t.Parallel()

	reg := newRegistry(log.Noop)
	tx := newClientTransaction(makeRequest(sip.RequestMethodInvite, "ctx-1", "b1"), reg)
	if err := reg.Register(tx.key, tx.rt); err != nil {
		t.Fatalf("reg.Register() error = %v, want nil", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if _, err := tx.Receive(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("tx.Receive() error = %v, want context.Canceled", err)
	}
}

func TestClientTransaction_CloseIdempotent(t *testing.T) {
	t.Parallel()

	reg := newRegistry(log.Noop)
	tx := newClientTransaction(makeRequest(sip.RequestMethodInvite, "close-1", "b1"), reg)
	if err := reg.Register(tx.key, tx.rt); err != nil {
		t.Fatalf("reg.Register() error = %v, want nil", err)
	}

	tx.Close()
	tx.Close()

	if reg.routes.Has(tx.key) {
		t.Fatalf("route still registered after Close")
	}
}
