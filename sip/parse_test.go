package sip_test

import (
	"errors"
	"testing"

	"github.com/telvora/ucc/sip"
)

func TestParseMessage_Request(t *testing.T) {
	t.Parallel()

	raw := "INVITE sip:bob@example.com SIP/2.0\r\n" +
		"Via: SIP/2.0/WSS proxy.example.com;branch=z9hG4bK776\r\n" +
		"From: <sip:alice@example.com>;tag=1928301774\r\n" +
		"To: <sip:bob@example.com>\r\n" +
		"CSeq: 314159 INVITE\r\n" +
		"Call-ID: a84b4c76e66710\r\n" +
		"\r\n" +
		"v=0\r\n"

	msg, err := sip.ParseMessage([]byte(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v, want nil", err)
	}

	req, ok := msg.(*sip.Request)
	if !ok {
		t.Fatalf("ParseMessage() = %T, want *sip.Request", msg)
	}
	if req.Method != sip.RequestMethodInvite {
		t.Fatalf("req.Method = %q, want INVITE", req.Method)
	}
	if req.URI.User != "bob" || req.URI.Host != "example.com" {
		t.Fatalf("req.URI = %v, want bob@example.com", req.URI)
	}
	if got := string(req.Body()); got != "v=0\r\n" {
		t.Fatalf("req.Body() = %q, want %q", got, "v=0\r\n")
	}

	cseq, err := req.Headers().CSeq()
	if err != nil {
		t.Fatalf("Headers().CSeq() error = %v, want nil", err)
	}
	if cseq.SeqNum != 314159 || cseq.Method != sip.RequestMethodInvite {
		t.Fatalf("cseq = %+v, want 314159 INVITE", cseq)
	}
}

func TestParseMessage_Response(t *testing.T) {
	t.Parallel()

	raw := "SIP/2.0 180 Ringing\r\n" +
		"Via: SIP/2.0/WSS abcd.invalid\r\n" +
		"CSeq: 1 INVITE\r\n" +
		"Call-ID: xyz\r\n" +
		"\r\n"

	msg, err := sip.ParseMessage([]byte(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v, want nil", err)
	}

	res, ok := msg.(*sip.Response)
	if !ok {
		t.Fatalf("ParseMessage() = %T, want *sip.Response", msg)
	}
	if res.Status != sip.ResponseStatusRinging {
		t.Fatalf("res.Status = %d, want 180", res.Status)
	}
	if res.Reason != "Ringing" {
		t.Fatalf("res.Reason = %q, want Ringing", res.Reason)
	}
}

func TestParseMessage_FoldedHeader(t *testing.T) {
	t.Parallel()

	raw := "SIP/2.0 200 OK\r\n" +
		"Subject: first part\r\n" +
		" continued here\r\n" +
		"Call-ID: abc\r\n" +
		"\r\n"

	msg, err := sip.ParseMessage([]byte(raw))
	if err != nil {
		t.Fatalf("ParseMessage() error = %v, want nil", err)
	}

	subj, ok := msg.Headers().First("Subject")
	if !ok {
		t.Fatalf("Headers().First(Subject) returned ok=false, want true")
	}
	if got := subj.RenderValue(); got != "first part continued here" {
		t.Fatalf("subject = %q, want %q", got, "first part continued here")
	}
}

func TestParseMessage_Malformed(t *testing.T) {
	t.Parallel()

	cases := []string{
		"INVITE sip:bob@example.com\r\n\r\n",
		"INVITE sip:bob@example.com HTTP/1.1\r\n\r\n",
		"INVITE sip:bob@example.com SIP/2.0\r\nbroken header line\r\n\r\n",
		"SIP/2.0 abc Ringing\r\n\r\n",
	}
	for _, raw := range cases {
		if _, err := sip.ParseMessage([]byte(raw)); !errors.Is(err, sip.ErrInvalidMessage) {
			t.Fatalf("ParseMessage(%q) error = %v, want ErrInvalidMessage", raw, err)
		}
	}
}

func TestHeaders_MissingHeader(t *testing.T) {
	t.Parallel()

	var hdrs sip.Headers
	if _, err := hdrs.Via(); !errors.Is(err, sip.ErrMissingHeader) {
		t.Fatalf("hdrs.Via() error = %v, want ErrMissingHeader", err)
	}
	if _, err := hdrs.CSeq(); !errors.Is(err, sip.ErrMissingHeader) {
		t.Fatalf("hdrs.CSeq() error = %v, want ErrMissingHeader", err)
	}
}
