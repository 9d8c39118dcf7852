package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/types"
	"github.com/telvora/ucc/uri"
)

// NameAddr represents the shared shape of the address headers:
// an optional display name, a URI and header parameters.
type NameAddr struct {
	DisplayName string
	URI         uri.URI
	Params      Values
}

// Tag returns the tag parameter of the header.
func (addr NameAddr) Tag() (string, bool) { return addr.Params.First("tag") }

// RenderValue returns the header value without the name prefix.
func (addr NameAddr) RenderValue() string {
	var sb strings.Builder
	if addr.DisplayName != "" {
		sb.WriteByte('"')
		sb.WriteString(addr.DisplayName)
		sb.WriteString(`" `)
	}
	sb.WriteByte('<')
	sb.WriteString(addr.URI.Render())
	sb.WriteByte('>')
	addr.Params.Render(&sb)
	return sb.String()
}

// String returns the string representation of the header value.
func (addr NameAddr) String() string { return addr.RenderValue() }

func (addr NameAddr) clone() NameAddr {
	addr2 := addr
	addr2.URI = addr.URI.Clone()
	addr2.Params = addr.Params.Clone()
	return addr2
}

func (addr NameAddr) equal(other NameAddr) bool {
	return addr.DisplayName == other.DisplayName &&
		addr.URI.Equal(other.URI) &&
		(len(addr.Params) == 0 && len(other.Params) == 0 || addr.Params.Equal(other.Params))
}

// IsValid checks whether the header is syntactically valid.
func (addr NameAddr) IsValid() bool { return addr.URI.IsValid() }

// parseNameAddr parses '["display" ]<uri>[;params]' or a bare 'uri[;params]'.
func parseNameAddr(s string) (NameAddr, error) {
	var addr NameAddr

	s = strings.TrimSpace(s)
	if s == "" {
		return addr, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "empty address"))
	}

	if s[0] == '"' {
		end := strings.IndexByte(s[1:], '"')
		if end < 0 {
			return addr, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "unterminated display name: %q", s))
		}
		addr.DisplayName = s[1 : end+1]
		s = strings.TrimSpace(s[end+2:])
	}

	if i := strings.IndexByte(s, '<'); i >= 0 {
		if addr.DisplayName == "" {
			addr.DisplayName = strings.TrimSpace(s[:i])
		}
		end := strings.IndexByte(s, '>')
		if end < i {
			return addr, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "unterminated URI: %q", s))
		}
		u, err := uri.Parse(s[i+1 : end])
		if err != nil {
			return addr, errtrace.Wrap(err)
		}
		addr.URI = u
		if rest := strings.TrimPrefix(strings.TrimSpace(s[end+1:]), ";"); rest != "" {
			addr.Params = types.ParseValues(rest)
		}
		return addr, nil
	}

	// Bare URI form: everything after ";" belongs to the header, not the URI.
	val, params, hasParams := strings.Cut(s, ";")
	u, err := uri.Parse(val)
	if err != nil {
		return addr, errtrace.Wrap(err)
	}
	addr.URI = u
	if hasParams {
		addr.Params = types.ParseValues(params)
	}
	return addr, nil
}

// From represents the From header field.
type From struct{ NameAddr }

func (*From) CanonicName() Name { return "From" }

func (hdr *From) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &From{hdr.NameAddr.clone()}
}

func (hdr *From) Equal(val any) bool {
	var other *From
	switch v := val.(type) {
	case From:
		other = &v
	case *From:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.equal(other.NameAddr)
}

func (hdr *From) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }

// To represents the To header field.
type To struct{ NameAddr }

func (*To) CanonicName() Name { return "To" }

func (hdr *To) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &To{hdr.NameAddr.clone()}
}

func (hdr *To) Equal(val any) bool {
	var other *To
	switch v := val.(type) {
	case To:
		other = &v
	case *To:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.equal(other.NameAddr)
}

func (hdr *To) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }

// Contact represents the Contact header field.
type Contact struct{ NameAddr }

func (*Contact) CanonicName() Name { return "Contact" }

// Expires returns the expires parameter of the header.
func (hdr *Contact) Expires() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.First("expires")
}

func (hdr *Contact) Clone() Header {
	if hdr == nil {
		return nil
	}
	return &Contact{hdr.NameAddr.clone()}
}

func (hdr *Contact) Equal(val any) bool {
	var other *Contact
	switch v := val.(type) {
	case Contact:
		other = &v
	case *Contact:
		other = v
	default:
		return false
	}
	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}
	return hdr.NameAddr.equal(other.NameAddr)
}

func (hdr *Contact) IsValid() bool { return hdr != nil && hdr.NameAddr.IsValid() }
