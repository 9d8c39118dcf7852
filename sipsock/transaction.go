package sipsock

import (
	"context"
	"sync"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/sip"
)

// ClientTransaction tracks an outgoing request until a final response
// arrives. Provisional responses are consumed internally.
type ClientTransaction struct {
	req *sip.Request
	key TransactionKey
	rt  *route
	reg *Registry

	closeOnce sync.Once
}

func newClientTransaction(req *sip.Request, reg *Registry) *ClientTransaction {
	return &ClientTransaction{
		req: req,
		key: RequestKey(req),
		rt: &route{
			resC: make(chan *sip.Response, 1),
			done: make(chan struct{}),
		},
		reg: reg,
	}
}

// Request returns the request that opened the transaction.
func (tx *ClientTransaction) Request() *sip.Request { return tx.req }

// Key returns the correlation key of the transaction.
func (tx *ClientTransaction) Key() TransactionKey { return tx.key }

// Receive blocks until a final (non-1xx) response arrives, then closes the
// transaction. It returns [ErrTransactionClosed] when the connection goes
// away before a final response.
func (tx *ClientTransaction) Receive(ctx context.Context) (*sip.Response, error) {
	for {
		select {
		case res, ok := <-tx.rt.resC:
			if !ok {
				return nil, errtrace.Wrap(ErrTransactionClosed)
			}
			if res.Status.IsProvisional() {
				continue
			}
			tx.Close()
			return res, nil
		case <-ctx.Done():
			return nil, errtrace.Wrap(ctx.Err())
		}
	}
}

// Close deregisters the transaction. Responses arriving afterwards are
// treated as unmatched. Close is idempotent.
func (tx *ClientTransaction) Close() {
	tx.closeOnce.Do(func() {
		close(tx.rt.done)
		tx.reg.Deregister(tx.key)
	})
}

// ServerTransaction represents an incoming request awaiting responses.
// Several responses may be sent on the same transaction, provisional ones
// first.
type ServerTransaction struct {
	req  *sip.Request
	resC chan<- *sip.Response
	done <-chan struct{}
}

// Request returns the request that opened the transaction.
func (tx *ServerTransaction) Request() *sip.Request { return tx.req }

// Respond starts a response with the given status. The builder carries over
// the Via, From, To, CSeq and Call-ID headers of the request and stamps the
// client's User-Agent.
func (tx *ServerTransaction) Respond(status sip.ResponseStatus) *ResponseBuilder {
	bld := &ResponseBuilder{
		tx:     tx,
		status: status,
		hdrs:   tx.req.Headers().Filter("Via", "From", "To", "CSeq", "Call-ID").Clone(),
	}
	bld.hdrs.Append(header.UserAgent(userAgent))
	return bld
}

// ResponseBuilder assembles and sends a response on a server transaction.
type ResponseBuilder struct {
	tx     *ServerTransaction
	status sip.ResponseStatus
	hdrs   sip.Headers
}

// Header appends a header to the response.
func (bld *ResponseBuilder) Header(hdr header.Header) *ResponseBuilder {
	bld.hdrs.Append(hdr)
	return bld
}

// Send hands the response to the connection multiplexer for transmission.
func (bld *ResponseBuilder) Send(ctx context.Context, body []byte) error {
	res := &sip.Response{
		Status:  bld.status,
		Hdrs:    bld.hdrs,
		Payload: body,
	}

	select {
	case bld.tx.resC <- res:
		return nil
	case <-bld.tx.done:
		return errtrace.Wrap(ErrConnectionClosed)
	case <-ctx.Done():
		return errtrace.Wrap(ctx.Err())
	}
}
