package sipsock

import (
	"log/slog"

	"github.com/telvora/ucc/sip"
)

// TransactionKey correlates requests with their responses. Responses take
// the method from the CSeq header so that they land on the transaction that
// initiated them.
type TransactionKey struct {
	Method string
	CallID string
	Branch string
}

// RequestKey derives the key of an outgoing request. Missing headers
// contribute the empty string so that responses echoing the same header
// set still match.
func RequestKey(req *sip.Request) TransactionKey {
	key := TransactionKey{Method: string(req.Method.ToUpper())}
	if callID, err := req.Headers().CallID(); err == nil {
		key.CallID = string(callID)
	}
	if via, err := req.Headers().Via(); err == nil {
		if branch, ok := via.Branch(); ok {
			key.Branch = branch
		}
	}
	return key
}

// ResponseKey derives the key of an incoming response.
func ResponseKey(res *sip.Response) TransactionKey {
	var key TransactionKey
	if cseq, err := res.Headers().CSeq(); err == nil {
		key.Method = string(cseq.Method.ToUpper())
	}
	if callID, err := res.Headers().CallID(); err == nil {
		key.CallID = string(callID)
	}
	if via, err := res.Headers().Via(); err == nil {
		if branch, ok := via.Branch(); ok {
			key.Branch = branch
		}
	}
	return key
}

// LogValue implements [slog.LogValuer].
func (key TransactionKey) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("method", key.Method),
		slog.String("call_id", key.CallID),
		slog.String("branch", key.Branch),
	)
}
