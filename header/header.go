// Package header implements the typed SIP header fields used by this client.
package header

import (
	"net/textproto"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/types"
	"github.com/telvora/ucc/internal/util"
)

// Values represents header parameters as a multi-value map.
type Values = types.Values

// RequestMethod represents a SIP request method.
type RequestMethod = types.RequestMethod

// Header represents a generic SIP header.
type Header interface {
	CanonicName() Name
	RenderValue() string
	String() string
	Clone() Header
	Equal(val any) bool
	IsValid() bool
}

// Name represents a SIP header name.
type Name string

// ToCanonic converts the Name to its canonical form.
func (n Name) ToCanonic() Name { return CanonicName(n) }

// Equal compares this Name with another for equality.
func (n Name) Equal(val any) bool {
	var other Name
	switch v := val.(type) {
	case Name:
		other = v
	case *Name:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return CanonicName(n) == CanonicName(other)
}

var hdrNames = map[string]Name{
	"f":                "From",
	"i":                "Call-ID",
	"m":                "Contact",
	"t":                "To",
	"v":                "Via",
	"Call-Id":          "Call-ID",
	"Cseq":             "CSeq",
	"Www-Authenticate": "WWW-Authenticate",
}

// CanonicName converts name to the canonical form.
// The canonicalization converts the first letter and any letter following a hyphen
// to upper case; the rest are converted to lowercase. Compact names are converted
// to their full canonical form, for example "i" converts to "Call-ID".
func CanonicName[T ~string](name T) Name {
	name = util.TrimSP(name)
	if n, ok := hdrNames[string(name)]; ok {
		return n
	}

	name = T(textproto.CanonicalMIMEHeaderKey(string(name)))
	if n, ok := hdrNames[string(name)]; ok {
		return n
	}
	return Name(name)
}

// ErrInvalidHeader is returned when a header value cannot be parsed.
const ErrInvalidHeader errorutil.Error = "invalid header"

// Render renders the full header line without the trailing CRLF.
func Render(hdr Header) string {
	return string(hdr.CanonicName()) + ": " + hdr.RenderValue()
}

// Parse parses a raw header into one or more typed headers.
// A Via header may carry several comma-separated hops and yields one
// header per hop; every other name yields exactly one header.
// Unknown headers are retained as [Any].
func Parse(name, value string) ([]Header, error) {
	value = strings.TrimSpace(value)

	switch cn := CanonicName(name); cn {
	case "Via":
		return errtrace.Wrap2(parseVias(value))
	case "From":
		addr, err := parseNameAddr(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{&From{addr}}, nil
	case "To":
		addr, err := parseNameAddr(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{&To{addr}}, nil
	case "Contact":
		addr, err := parseNameAddr(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{&Contact{addr}}, nil
	case "CSeq":
		hdr, err := parseCSeq(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{hdr}, nil
	case "Call-ID":
		return []Header{CallID(value)}, nil
	case "User-Agent":
		return []Header{UserAgent(value)}, nil
	case "Expires":
		hdr, err := parseExpires(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{hdr}, nil
	case "WWW-Authenticate":
		hdr, err := parseWWWAuthenticate(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{hdr}, nil
	case "Authorization":
		hdr, err := parseAuthorization(value)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		return []Header{hdr}, nil
	default:
		return []Header{&Any{Name: cn, Value: value}}, nil
	}
}

// Any represents a header that has no typed implementation.
type Any struct {
	Name  Name
	Value string
}

func (hdr *Any) CanonicName() Name { return hdr.Name.ToCanonic() }

func (hdr *Any) RenderValue() string { return hdr.Value }

func (hdr *Any) String() string { return hdr.RenderValue() }

func (hdr *Any) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

func (hdr *Any) Equal(val any) bool {
	var other *Any
	switch v := val.(type) {
	case Any:
		other = &v
	case *Any:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Name.Equal(other.Name) && hdr.Value == other.Value
}

func (hdr *Any) IsValid() bool { return hdr != nil && hdr.Name != "" }
