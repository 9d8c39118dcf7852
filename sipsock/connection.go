package sipsock

import (
	"context"
	"crypto/tls"
	"io"
	"log/slog"
	"net"
	"net/url"
	"sync"
	"time"

	"braces.dev/errtrace"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/log"
	"github.com/telvora/ucc/internal/randutils"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/uri"
)

// Options configures a [Connection].
type Options struct {
	// Log is the logger of the connection. Defaults to [log.Noop].
	Log *slog.Logger
	// DialTimeout bounds the WebSocket dial and upgrade. Defaults to 10s.
	DialTimeout time.Duration
	// TLSConfig is passed to the WebSocket dialer for wss URLs.
	TLSConfig *tls.Config
}

func (opts *Options) logger() *slog.Logger {
	if opts == nil || opts.Log == nil {
		return log.Noop
	}
	return opts.Log
}

func (opts *Options) dialTimeout() time.Duration {
	if opts == nil || opts.DialTimeout <= 0 {
		return 10 * time.Second
	}
	return opts.DialTimeout
}

func (opts *Options) tlsConfig() *tls.Config {
	if opts == nil {
		return nil
	}
	return opts.TLSConfig
}

// Connection is a SIP signaling connection over a single WebSocket.
// One multiplexer goroutine owns the transport: it writes outgoing requests
// and responses, answers pings and routes incoming messages, so writes never
// interleave.
type Connection struct {
	user   uri.URI
	domain string
	sentBy string

	reqC     chan *sip.Request
	registry *Registry
	done     chan struct{}
	downOnce sync.Once

	log *slog.Logger
}

type wsFrame struct {
	op   ws.OpCode
	data []byte
}

// Connect dials the signaling endpoint, negotiates the "sip" subprotocol
// and starts the connection multiplexer. Incoming requests are delivered
// as server transactions on the returned channel, which has capacity 1 so
// an unconsumed request backpressures the transport. The channel is closed
// when the connection goes down.
func Connect(ctx context.Context, rawURL, username string, opts *Options) (*Connection, <-chan *ServerTransaction, error) {
	logger := opts.logger()

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	domain := u.Hostname()
	if domain == "" {
		return nil, nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("no host in URL: %q", rawURL))
	}

	logger.Debug("connecting", "url", rawURL, "user", username)

	dlr := ws.Dialer{
		Timeout:   opts.dialTimeout(),
		Protocols: []string{Subprotocol},
		TLSConfig: opts.tlsConfig(),
	}
	conn, br, hs, err := dlr.Dial(ctx, rawURL)
	if err != nil {
		return nil, nil, errtrace.Wrap(err)
	}
	if hs.Protocol != Subprotocol {
		logger.Warn("server did not select SIP subprotocol", "protocol", hs.Protocol)
	}

	// The dialer may have buffered frames past the handshake.
	var src io.Reader = conn
	if br != nil {
		src = io.MultiReader(br, conn)
	}

	c := &Connection{
		user:     uri.Sip(username, domain),
		domain:   domain,
		sentBy:   randutils.RandString(16) + ".invalid",
		reqC:     make(chan *sip.Request, 1),
		registry: newRegistry(logger),
		done:     make(chan struct{}),
		log:      logger,
	}

	inbound := make(chan *ServerTransaction, 1)
	go c.run(conn, src, inbound)

	logger.Info("connected", "url", rawURL, "identity", c.user)
	return c, inbound, nil
}

// Identity returns the SIP identity of the connection, sip:{user}@{domain}.
func (c *Connection) Identity() uri.URI { return c.user }

// Domain returns the host requests are addressed to.
func (c *Connection) Domain() string { return c.domain }

// Close tears the connection down. Pending client transactions report
// [ErrTransactionClosed] and the inbound channel is closed.
func (c *Connection) Close() error {
	c.shutdown()
	return nil
}

func (c *Connection) shutdown() {
	c.downOnce.Do(func() { close(c.done) })
}

// Send registers a client transaction for the request and hands the request
// to the multiplexer. Registration happens before the write so the response
// cannot arrive before its route exists.
func (c *Connection) Send(ctx context.Context, req *sip.Request) (*ClientTransaction, error) {
	tx := newClientTransaction(req, c.registry)
	if err := c.registry.Register(tx.key, tx.rt); err != nil {
		return nil, errtrace.Wrap(err)
	}
	c.log.Debug("transaction open", "key", tx.key)

	select {
	case c.reqC <- req:
		return tx, nil
	case <-c.done:
		tx.Close()
		return nil, errtrace.Wrap(ErrConnectionClosed)
	case <-ctx.Done():
		tx.Close()
		return nil, errtrace.Wrap(ctx.Err())
	}
}

// run is the connection multiplexer. It is the only goroutine that writes
// to the transport.
func (c *Connection) run(conn net.Conn, src io.Reader, inbound chan *ServerTransaction) {
	defer func() {
		c.shutdown()
		conn.Close()
		close(inbound)
		c.registry.Close()
		c.log.Info("connection closed")
	}()

	frames := make(chan wsFrame)
	go c.readFrames(src, frames)

	// Server transaction responses funnel through one channel so that the
	// multiplexer stays the single writer.
	srvResC := make(chan *sip.Response, 1)

	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return
			}
			switch f.op {
			case ws.OpText:
				c.handleFrame(f.data, inbound, srvResC)
			case ws.OpPing:
				if err := wsutil.WriteClientMessage(conn, ws.OpPong, f.data); err != nil {
					c.log.Error("pong write failed", "error", err)
					return
				}
			case ws.OpClose:
				c.log.Debug("close frame received")
				return
			}

		case req := <-c.reqC:
			c.log.Debug("sending request", "method", req.Method)
			if err := wsutil.WriteClientText(conn, []byte(req.Render())); err != nil {
				c.log.Error("request write failed", "error", err)
				return
			}

		case res := <-srvResC:
			c.log.Debug("sending response", "status", res.Status)
			if err := wsutil.WriteClientText(conn, []byte(res.Render())); err != nil {
				c.log.Error("response write failed", "error", err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleFrame parses one text frame and dispatches it. Malformed frames are
// logged and skipped so one broken peer message cannot kill the connection.
func (c *Connection) handleFrame(data []byte, inbound chan<- *ServerTransaction, srvResC chan *sip.Response) {
	msg, err := sip.ParseMessage(data)
	if err != nil {
		c.log.Warn("dropping malformed frame", "error", err)
		return
	}

	switch m := msg.(type) {
	case *sip.Request:
		c.log.Debug("request received", "method", m.Method)
		tx := &ServerTransaction{req: m, resC: srvResC, done: c.done}
		select {
		case inbound <- tx:
		case <-c.done:
		}
	case *sip.Response:
		c.log.Debug("response received", "status", m.Status)
		c.registry.Route(m)
	}
}

// readFrames reads whole frames off the transport and feeds them to the
// multiplexer. SIP messages arrive as self-contained text frames, so no
// fragment reassembly is done.
func (c *Connection) readFrames(src io.Reader, frames chan<- wsFrame) {
	defer close(frames)
	for {
		frame, err := ws.ReadFrame(src)
		if err != nil {
			c.log.Debug("transport read ended", "error", err)
			return
		}
		select {
		case frames <- wsFrame{op: frame.Header.OpCode, data: frame.Payload}:
		case <-c.done:
			return
		}
	}
}
