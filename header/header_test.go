package header_test

import (
	"testing"

	"github.com/telvora/ucc/header"
)

func TestCanonicName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want header.Name
	}{
		{"via", "Via"},
		{"VIA", "Via"},
		{"v", "Via"},
		{"f", "From"},
		{"t", "To"},
		{"i", "Call-ID"},
		{"m", "Contact"},
		{"call-id", "Call-ID"},
		{"cseq", "CSeq"},
		{"www-authenticate", "WWW-Authenticate"},
		{"user-agent", "User-Agent"},
		{"x-custom-header", "X-Custom-Header"},
		{" Expires ", "Expires"},
	}
	for _, c := range cases {
		if got := header.CanonicName(c.in); got != c.want {
			t.Fatalf("CanonicName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParse_Via(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("Via", "SIP/2.0/WSS abcd1234.invalid;branch=z9hG4bKnashds7")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if len(hdrs) != 1 {
		t.Fatalf("Parse() returned %d headers, want 1", len(hdrs))
	}

	via, ok := hdrs[0].(*header.Via)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.Via", hdrs[0])
	}
	if via.Proto != "SIP/2.0" || via.Transport != "WSS" || via.SentBy != "abcd1234.invalid" {
		t.Fatalf("Parse() = %+v, want SIP/2.0/WSS abcd1234.invalid", via)
	}
	branch, ok := via.Branch()
	if !ok || branch != "z9hG4bKnashds7" {
		t.Fatalf("via.Branch() = (%q, %v), want (z9hG4bKnashds7, true)", branch, ok)
	}
}

func TestParse_ViaMultiHop(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("v", "SIP/2.0/WSS a.invalid;branch=b1, SIP/2.0/UDP b.example.com:5060;branch=b2")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if len(hdrs) != 2 {
		t.Fatalf("Parse() returned %d headers, want 2", len(hdrs))
	}

	second, ok := hdrs[1].(*header.Via)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.Via", hdrs[1])
	}
	if second.Transport != "UDP" || second.SentBy != "b.example.com:5060" {
		t.Fatalf("second hop = %+v, want UDP b.example.com:5060", second)
	}
}

func TestParse_From(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("From", `"Alice" <sip:alice@example.com>;tag=88sja8x`)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	from, ok := hdrs[0].(*header.From)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.From", hdrs[0])
	}
	if from.DisplayName != "Alice" {
		t.Fatalf("from.DisplayName = %q, want Alice", from.DisplayName)
	}
	if from.URI.User != "alice" || from.URI.Host != "example.com" {
		t.Fatalf("from.URI = %+v, want alice@example.com", from.URI)
	}
	tag, ok := from.Tag()
	if !ok || tag != "88sja8x" {
		t.Fatalf("from.Tag() = (%q, %v), want (88sja8x, true)", tag, ok)
	}
}

func TestParse_FromBareURI(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("To", "sip:bob@example.com;tag=a6c85cf")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	to, ok := hdrs[0].(*header.To)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.To", hdrs[0])
	}
	// Parameters after the bare URI belong to the header, not the URI.
	if to.URI.Params.Has("tag") {
		t.Fatalf("to.URI.Params = %v, want no tag", to.URI.Params)
	}
	tag, ok := to.Tag()
	if !ok || tag != "a6c85cf" {
		t.Fatalf("to.Tag() = (%q, %v), want (a6c85cf, true)", tag, ok)
	}
}

func TestParse_CSeq(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("CSeq", "4711 INVITE")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	cseq, ok := hdrs[0].(*header.CSeq)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.CSeq", hdrs[0])
	}
	if cseq.SeqNum != 4711 || cseq.Method != "INVITE" {
		t.Fatalf("cseq = %+v, want 4711 INVITE", cseq)
	}
	if got := cseq.RenderValue(); got != "4711 INVITE" {
		t.Fatalf("cseq.RenderValue() = %q, want %q", got, "4711 INVITE")
	}
}

func TestParse_WWWAuthenticate(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("WWW-Authenticate",
		`Digest realm="ucware", nonce="dcd98b7102dd2f0e", algorithm=MD5, opaque="5ccc069c"`)
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	auth, ok := hdrs[0].(*header.WWWAuthenticate)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.WWWAuthenticate", hdrs[0])
	}
	if auth.Realm != "ucware" || auth.Nonce != "dcd98b7102dd2f0e" {
		t.Fatalf("challenge = %+v, want realm=ucware nonce=dcd98b7102dd2f0e", auth)
	}
	// algorithm is an unquoted token.
	if auth.Algorithm != "MD5" {
		t.Fatalf("auth.Algorithm = %q, want MD5", auth.Algorithm)
	}
	if auth.Opaque != "5ccc069c" {
		t.Fatalf("auth.Opaque = %q, want 5ccc069c", auth.Opaque)
	}
}

func TestParse_UnsupportedAuthScheme(t *testing.T) {
	t.Parallel()

	if _, err := header.Parse("WWW-Authenticate", `Basic realm="ucware"`); err == nil {
		t.Fatalf("Parse() error = nil, want non-nil")
	}
}

func TestAuthorization_RenderNoQOP(t *testing.T) {
	t.Parallel()

	authz := &header.Authorization{DigestCredentials: header.DigestCredentials{
		Username:  "alice",
		Realm:     "ucware",
		Nonce:     "dcd98b7102dd2f0e",
		Response:  "6629fae49393a05397450978507c4ef1",
		Algorithm: "MD5",
	}}

	want := `Digest username="alice", realm="ucware", nonce="dcd98b7102dd2f0e", ` +
		`uri="", response="6629fae49393a05397450978507c4ef1", algorithm=MD5`
	if got := authz.RenderValue(); got != want {
		t.Fatalf("authz.RenderValue() = %q, want %q", got, want)
	}
}

func TestParse_UnknownHeader(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("X-Custom", "some value")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	hdr, ok := hdrs[0].(*header.Any)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.Any", hdrs[0])
	}
	if got := header.Render(hdr); got != "X-Custom: some value" {
		t.Fatalf("Render() = %q, want %q", got, "X-Custom: some value")
	}
}

func TestContact_Expires(t *testing.T) {
	t.Parallel()

	hdrs, err := header.Parse("Contact", "<sip:a1b2c3@x.invalid;transport=ws>;expires=6000")
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}

	contact, ok := hdrs[0].(*header.Contact)
	if !ok {
		t.Fatalf("Parse() returned %T, want *header.Contact", hdrs[0])
	}
	expires, ok := contact.Expires()
	if !ok || expires != "6000" {
		t.Fatalf("contact.Expires() = (%q, %v), want (6000, true)", expires, ok)
	}
	transport, ok := contact.URI.Params.First("transport")
	if !ok || transport != "ws" {
		t.Fatalf("contact.URI transport = (%q, %v), want (ws, true)", transport, ok)
	}
}

func TestVia_RenderRoundTrip(t *testing.T) {
	t.Parallel()

	via := &header.Via{
		Proto:     header.DefaultProto,
		Transport: "WSS",
		SentBy:    "abcd1234.invalid",
		Params:    header.Values{}.Set("branch", "z9hG4bK776asdhds"),
	}

	hdrs, err := header.Parse("Via", via.RenderValue())
	if err != nil {
		t.Fatalf("Parse() error = %v, want nil", err)
	}
	if !via.Equal(hdrs[0]) {
		t.Fatalf("round-tripped via = %v, want %v", hdrs[0], via)
	}
}
