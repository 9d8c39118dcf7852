// Package uri implements a minimal SIP URI model.
package uri

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/types"
)

// Values represents URI parameters.
type Values = types.Values

// ErrInvalidURI is returned when an URI cannot be parsed.
const ErrInvalidURI errorutil.Error = "invalid URI"

// URI represents a SIP or SIPS URI.
type URI struct {
	Scheme string
	User   string
	Host   string
	Port   uint16
	Params Values
}

// Sip returns a plain "sip" URI for the given user and host.
func Sip(user, host string) URI {
	return URI{Scheme: "sip", User: user, Host: host}
}

// Addr returns the host with the port attached when present.
func (u URI) Addr() string {
	if u.Port == 0 {
		return u.Host
	}
	return u.Host + ":" + strconv.Itoa(int(u.Port))
}

func (u URI) Render() string {
	var sb strings.Builder
	sb.WriteString(u.Scheme)
	sb.WriteByte(':')
	if u.User != "" {
		sb.WriteString(u.User)
		sb.WriteByte('@')
	}
	sb.WriteString(u.Addr())
	u.Params.Render(&sb)
	return sb.String()
}

func (u URI) String() string { return u.Render() }

func (u URI) Clone() URI {
	u2 := u
	u2.Params = u.Params.Clone()
	return u2
}

func (u URI) Equal(val any) bool {
	var other URI
	switch v := val.(type) {
	case URI:
		other = v
	case *URI:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}

	return strings.EqualFold(u.Scheme, other.Scheme) &&
		u.User == other.User &&
		strings.EqualFold(u.Host, other.Host) &&
		u.Port == other.Port &&
		(len(u.Params) == 0 && len(other.Params) == 0 || u.Params.Equal(other.Params))
}

func (u URI) IsValid() bool { return u.Scheme != "" && u.Host != "" }

// Parse parses a SIP URI of the form "scheme:[user@]host[:port][;params]".
// URI headers (after "?") are not supported and are discarded.
func Parse(s string) (URI, error) {
	var u URI

	s = strings.TrimSpace(s)
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return u, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "missing scheme: %q", s))
	}
	u.Scheme = strings.ToLower(scheme)

	rest, _, _ = strings.Cut(rest, "?")
	rest, params, hasParams := strings.Cut(rest, ";")
	if hasParams {
		u.Params = types.ParseValues(params)
	}

	if user, host, ok := strings.Cut(rest, "@"); ok {
		u.User = user
		rest = host
	}
	if host, port, ok := strings.Cut(rest, ":"); ok {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return u, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "bad port: %q", s))
		}
		u.Host = host
		u.Port = uint16(p)
	} else {
		u.Host = rest
	}

	if u.Host == "" {
		return u, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURI, "missing host: %q", s))
	}
	return u, nil
}
