package sipsock

import (
	"context"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/internal/randutils"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/uri"
)

// Dialog groups requests under one Call-ID with a monotonically increasing
// CSeq. The sequence is seeded randomly so restarted clients do not reuse
// low numbers.
type Dialog struct {
	conn   *Connection
	callID header.CallID
	seq    atomic.Uint32
}

// Dialog opens a new dialog on the connection.
func (c *Connection) Dialog() *Dialog {
	d := &Dialog{
		conn:   c,
		callID: header.CallID(randutils.RandString(16)),
	}
	d.seq.Store(uint32(randutils.RandUint16()))
	return d
}

// CallID returns the Call-ID shared by all requests of the dialog.
func (d *Dialog) CallID() header.CallID { return d.callID }

func (d *Dialog) nextSeq() uint32 { return d.seq.Add(1) - 1 }

// Request starts a request within the dialog. The builder is pre-seeded
// with the Via, To, From, CSeq, Call-ID and User-Agent headers.
func (d *Dialog) Request(method sip.RequestMethod) *RequestBuilder {
	bld := &RequestBuilder{dialog: d, method: method}
	bld.hdrs.Append(
		&header.Via{Proto: header.DefaultProto, Transport: "WSS", SentBy: d.conn.sentBy},
		&header.To{NameAddr: header.NameAddr{URI: d.conn.user}},
		&header.From{NameAddr: header.NameAddr{URI: d.conn.user}},
		&header.CSeq{SeqNum: d.nextSeq(), Method: method},
		d.callID,
		header.UserAgent(userAgent),
	)
	return bld
}

// RequestBuilder assembles and sends a request within a dialog.
type RequestBuilder struct {
	dialog *Dialog
	method sip.RequestMethod
	hdrs   sip.Headers
}

// Header appends a header to the request.
func (bld *RequestBuilder) Header(hdr header.Header) *RequestBuilder {
	bld.hdrs.Append(hdr)
	return bld
}

// Send builds the request, addresses it to the connection's domain and
// submits it, returning the pending client transaction.
func (bld *RequestBuilder) Send(ctx context.Context, body []byte) (*ClientTransaction, error) {
	req := &sip.Request{
		Method:  bld.method,
		URI:     uri.Sip("", bld.dialog.conn.domain),
		Hdrs:    bld.hdrs,
		Payload: body,
	}
	return errtrace.Wrap2(bld.dialog.conn.Send(ctx, req))
}
