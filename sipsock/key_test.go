package sipsock_test

import (
	"testing"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/sipsock"
	"github.com/telvora/ucc/uri"
)

func TestRequestKey(t *testing.T) {
	t.Parallel()

	req := &sip.Request{Method: sip.RequestMethodRegister, URI: uri.Sip("", "example.com")}
	req.Hdrs.Append(
		&header.Via{
			Proto:     header.DefaultProto,
			Transport: "WSS",
			SentBy:    "host.invalid",
			Params:    header.Values{}.Set("branch", "z9hG4bK1"),
		},
		header.CallID("key-call-1"),
	)

	want := sipsock.TransactionKey{Method: "REGISTER", CallID: "key-call-1", Branch: "z9hG4bK1"}
	if got := sipsock.RequestKey(req); got != want {
		t.Fatalf("RequestKey() = %+v, want %+v", got, want)
	}
}

func TestRequestKey_MissingHeaders(t *testing.T) {
	t.Parallel()

	req := &sip.Request{Method: "invite", URI: uri.Sip("", "example.com")}

	want := sipsock.TransactionKey{Method: "INVITE"}
	if got := sipsock.RequestKey(req); got != want {
		t.Fatalf("RequestKey() = %+v, want %+v", got, want)
	}
}

func TestResponseKey_MatchesRequestKey(t *testing.T) {
	t.Parallel()

	req := &sip.Request{Method: sip.RequestMethodInvite, URI: uri.Sip("", "example.com")}
	req.Hdrs.Append(
		&header.Via{Proto: header.DefaultProto, Transport: "WSS", SentBy: "host.invalid"},
		&header.CSeq{SeqNum: 9, Method: sip.RequestMethodInvite},
		header.CallID("key-call-2"),
	)

	// A response echoing Via, CSeq and Call-ID correlates with the request
	// even without a branch parameter.
	res := &sip.Response{Status: sip.ResponseStatusOK}
	res.Hdrs = req.Hdrs.Clone()

	if got, want := sipsock.ResponseKey(res), sipsock.RequestKey(req); got != want {
		t.Fatalf("ResponseKey() = %+v, want %+v", got, want)
	}
}

func TestResponseKey_MethodFromCSeq(t *testing.T) {
	t.Parallel()

	res := &sip.Response{Status: sip.ResponseStatusOK}
	res.Hdrs.Append(
		&header.CSeq{SeqNum: 1, Method: "register"},
		header.CallID("key-call-3"),
	)

	want := sipsock.TransactionKey{Method: "REGISTER", CallID: "key-call-3"}
	if got := sipsock.ResponseKey(res); got != want {
		t.Fatalf("ResponseKey() = %+v, want %+v", got, want)
	}
}

func TestResponseKey_NoCSeq(t *testing.T) {
	t.Parallel()

	res := &sip.Response{Status: sip.ResponseStatusOK}
	res.Hdrs.Append(header.CallID("key-call-4"))

	want := sipsock.TransactionKey{CallID: "key-call-4"}
	if got := sipsock.ResponseKey(res); got != want {
		t.Fatalf("ResponseKey() = %+v, want %+v", got, want)
	}
}
