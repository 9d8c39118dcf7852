package sip_test

import (
	"testing"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/sip"
	"github.com/telvora/ucc/uri"
)

func TestHeaders_Filter(t *testing.T) {
	t.Parallel()

	var hdrs sip.Headers
	hdrs.Append(
		&header.Via{Proto: header.DefaultProto, Transport: "WSS", SentBy: "client.invalid"},
		&header.From{NameAddr: header.NameAddr{URI: uri.Sip("alice", "example.com")}},
		&header.CSeq{SeqNum: 1, Method: "REGISTER"},
		header.CallID("abc"),
		&header.Any{Name: "X-Extra", Value: "dropped"},
	)

	got := hdrs.Filter("Via", "From", "To", "CSeq", "Call-ID")
	want := []header.Name{"Via", "From", "CSeq", "Call-ID"}
	if len(got) != len(want) {
		t.Fatalf("Filter() returned %d headers, want %d", len(got), len(want))
	}
	for i, n := range want {
		if cn := got[i].CanonicName(); cn != n {
			t.Fatalf("Filter()[%d] = %q, want %q", i, cn, n)
		}
	}
}

func TestHeaders_FilterCanonicalizesNames(t *testing.T) {
	t.Parallel()

	var hdrs sip.Headers
	hdrs.Append(
		header.CallID("abc"),
		&header.Any{Name: "X-Extra", Value: "dropped"},
	)

	// Compact and odd-cased names match through canonicalization.
	got := hdrs.Filter("i", "Cseq")
	if len(got) != 1 {
		t.Fatalf("Filter() returned %d headers, want 1", len(got))
	}
	if cn := got[0].CanonicName(); cn != "Call-ID" {
		t.Fatalf("Filter()[0] = %q, want Call-ID", cn)
	}
}

func TestHeaders_First(t *testing.T) {
	t.Parallel()

	var hdrs sip.Headers
	hdrs.Append(
		&header.Via{Proto: header.DefaultProto, Transport: "WSS", SentBy: "one.invalid"},
		&header.Via{Proto: header.DefaultProto, Transport: "WSS", SentBy: "two.invalid"},
	)

	h, ok := hdrs.First("Via")
	if !ok {
		t.Fatal("First(Via) not found, want found")
	}
	if via := h.(*header.Via); via.SentBy != "one.invalid" {
		t.Fatalf("First(Via).SentBy = %q, want one.invalid", via.SentBy)
	}
	if _, ok := hdrs.First("Contact"); ok {
		t.Fatal("First(Contact) found, want not found")
	}
}
