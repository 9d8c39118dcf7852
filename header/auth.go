package header

import (
	"regexp"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
)

// AlgorithmMD5 is the default digest algorithm when the challenge names none.
const AlgorithmMD5 = "MD5"

// DigestChallenge represents the parameters of a Digest authentication
// challenge as carried in a WWW-Authenticate header.
type DigestChallenge struct {
	Realm     string
	Nonce     string
	Opaque    string
	Algorithm string
	QOP       string
	Other     map[string]string
}

// Matches quoted and unquoted auth parameters: realm="x", algorithm=MD5.
var authParamRE = regexp.MustCompile(`([\w-]+)=(?:"([^"]*)"|([^,\s]+))`)

func parseDigestParams(value string) (map[string]string, error) {
	scheme, rest, ok := strings.Cut(value, " ")
	if !ok || !strings.EqualFold(scheme, "Digest") {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "unsupported auth scheme: %q", value))
	}

	params := make(map[string]string)
	for _, match := range authParamRE.FindAllStringSubmatch(rest, -1) {
		val := match[2]
		if val == "" {
			val = match[3]
		}
		params[strings.ToLower(match[1])] = val
	}
	return params, nil
}

func challengeFromParams(params map[string]string) DigestChallenge {
	cln := DigestChallenge{Other: make(map[string]string)}
	for name, val := range params {
		switch name {
		case "realm":
			cln.Realm = val
		case "nonce":
			cln.Nonce = val
		case "opaque":
			cln.Opaque = val
		case "algorithm":
			cln.Algorithm = val
		case "qop":
			cln.QOP = val
		default:
			cln.Other[name] = val
		}
	}
	return cln
}

// WWWAuthenticate represents the WWW-Authenticate header field (Digest scheme).
type WWWAuthenticate struct {
	DigestChallenge
}

// CanonicName returns the canonical name of the header.
func (*WWWAuthenticate) CanonicName() Name { return "WWW-Authenticate" }

// RenderValue returns the header value without the name prefix.
func (hdr *WWWAuthenticate) RenderValue() string {
	if hdr == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`Digest realm="`)
	sb.WriteString(hdr.Realm)
	sb.WriteString(`", nonce="`)
	sb.WriteString(hdr.Nonce)
	sb.WriteByte('"')
	if hdr.Algorithm != "" {
		sb.WriteString(", algorithm=")
		sb.WriteString(hdr.Algorithm)
	}
	if hdr.Opaque != "" {
		sb.WriteString(`, opaque="`)
		sb.WriteString(hdr.Opaque)
		sb.WriteByte('"')
	}
	if hdr.QOP != "" {
		sb.WriteString(`, qop="`)
		sb.WriteString(hdr.QOP)
		sb.WriteByte('"')
	}
	return sb.String()
}

// String returns the string representation of the header value.
func (hdr *WWWAuthenticate) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *WWWAuthenticate) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Other = cloneStrMap(hdr.Other)
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *WWWAuthenticate) Equal(val any) bool {
	var other *WWWAuthenticate
	switch v := val.(type) {
	case WWWAuthenticate:
		other = &v
	case *WWWAuthenticate:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Realm == other.Realm &&
		hdr.Nonce == other.Nonce &&
		hdr.Opaque == other.Opaque &&
		strings.EqualFold(hdr.Algorithm, other.Algorithm) &&
		hdr.QOP == other.QOP
}

// IsValid checks whether the header is syntactically valid.
func (hdr *WWWAuthenticate) IsValid() bool { return hdr != nil && hdr.Realm != "" && hdr.Nonce != "" }

func parseWWWAuthenticate(value string) (*WWWAuthenticate, error) {
	params, err := parseDigestParams(value)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return &WWWAuthenticate{challengeFromParams(params)}, nil
}

// DigestCredentials represents the parameters of a Digest authentication
// answer as carried in an Authorization header.
type DigestCredentials struct {
	Username  string
	Realm     string
	Nonce     string
	URI       string
	Response  string
	Algorithm string
	Opaque    string
}

// Authorization represents the Authorization header field (Digest scheme).
// No qop support: the credentials never carry a qop directive.
type Authorization struct {
	DigestCredentials
}

// CanonicName returns the canonical name of the header.
func (*Authorization) CanonicName() Name { return "Authorization" }

// RenderValue returns the header value without the name prefix.
func (hdr *Authorization) RenderValue() string {
	if hdr == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`Digest username="`)
	sb.WriteString(hdr.Username)
	sb.WriteString(`", realm="`)
	sb.WriteString(hdr.Realm)
	sb.WriteString(`", nonce="`)
	sb.WriteString(hdr.Nonce)
	sb.WriteString(`", uri="`)
	sb.WriteString(hdr.URI)
	sb.WriteString(`", response="`)
	sb.WriteString(hdr.Response)
	sb.WriteByte('"')
	if hdr.Algorithm != "" {
		sb.WriteString(", algorithm=")
		sb.WriteString(hdr.Algorithm)
	}
	if hdr.Opaque != "" {
		sb.WriteString(`, opaque="`)
		sb.WriteString(hdr.Opaque)
		sb.WriteByte('"')
	}
	return sb.String()
}

// String returns the string representation of the header value.
func (hdr *Authorization) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Authorization) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Authorization) Equal(val any) bool {
	var other *Authorization
	switch v := val.(type) {
	case Authorization:
		other = &v
	case *Authorization:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.DigestCredentials == other.DigestCredentials
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Authorization) IsValid() bool {
	return hdr != nil && hdr.Username != "" && hdr.Realm != "" && hdr.Nonce != "" && hdr.Response != ""
}

func parseAuthorization(value string) (*Authorization, error) {
	params, err := parseDigestParams(value)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	var hdr Authorization
	for name, val := range params {
		switch name {
		case "username":
			hdr.Username = val
		case "realm":
			hdr.Realm = val
		case "nonce":
			hdr.Nonce = val
		case "uri":
			hdr.URI = val
		case "response":
			hdr.Response = val
		case "algorithm":
			hdr.Algorithm = val
		case "opaque":
			hdr.Opaque = val
		}
	}
	return &hdr, nil
}

func cloneStrMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	m2 := make(map[string]string, len(m))
	for k, v := range m {
		m2[k] = v
	}
	return m2
}
