package sipsock

import (
	"log/slog"
	"sync/atomic"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/syncutil"
	"github.com/telvora/ucc/sip"
)

// route is the delivery end of a pending client transaction.
type route struct {
	// resC carries responses to the transaction. Capacity 1 so that the
	// multiplexer never blocks on a final response that nobody awaits yet.
	resC chan *sip.Response
	// done is closed when the transaction stops listening.
	done chan struct{}
}

// Registry maps transaction keys to pending client transactions.
// Registration happens before the request hits the wire, so a response
// can never outrun its route.
type Registry struct {
	routes *syncutil.ShardMap[TransactionKey, *route]
	closed atomic.Bool
	log    *slog.Logger
}

func newRegistry(log *slog.Logger) *Registry {
	return &Registry{
		routes: syncutil.NewShardMap[TransactionKey, *route](16),
		log:    log,
	}
}

// Register installs a route for the given key. A route registered under an
// already taken key silently replaces the previous one.
func (reg *Registry) Register(key TransactionKey, rt *route) error {
	reg.routes.Set(key, rt)
	if reg.closed.Load() {
		reg.routes.Del(key)
		return errtrace.Wrap(ErrConnectionClosed)
	}
	return nil
}

// Deregister removes the route for the given key, if any.
func (reg *Registry) Deregister(key TransactionKey) {
	if reg == nil {
		return
	}
	reg.routes.Del(key)
}

// Route delivers a response to its pending transaction. Responses without
// a matching transaction are logged and dropped. Route is only called from
// the connection multiplexer.
func (reg *Registry) Route(res *sip.Response) {
	key := ResponseKey(res)
	rt, ok := reg.routes.Get(key)
	if !ok {
		reg.log.Warn("response without matching transaction", "key", key, "status", res.Status)
		return
	}

	select {
	case rt.resC <- res:
	case <-rt.done:
		reg.log.Debug("response for closed transaction", "key", key, "status", res.Status)
	}
}

// Close marks the registry closed and tears down all pending routes, which
// makes their transactions report [ErrTransactionClosed].
func (reg *Registry) Close() {
	if !reg.closed.CompareAndSwap(false, true) {
		return
	}
	for key, rt := range reg.routes.Items() {
		reg.routes.Del(key)
		close(rt.resC)
	}
}
