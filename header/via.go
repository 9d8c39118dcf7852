package header

import (
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/types"
)

// DefaultProto is the SIP protocol name and version used in Via headers.
const DefaultProto = "SIP/2.0"

// Via represents a single hop of the Via header field.
// Messages with several hops carry one Via header per hop.
type Via struct {
	Proto     string // "SIP/2.0"
	Transport string // "UDP", "TCP", "WS", "WSS", ...
	SentBy    string // host[:port]
	Params    Values
}

// CanonicName returns the canonical name of the header.
func (*Via) CanonicName() Name { return "Via" }

// Branch returns the branch parameter of the hop.
func (hdr *Via) Branch() (string, bool) {
	if hdr == nil {
		return "", false
	}
	return hdr.Params.First("branch")
}

// RenderValue returns the header value without the name prefix.
func (hdr *Via) RenderValue() string {
	if hdr == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(hdr.Proto)
	sb.WriteByte('/')
	sb.WriteString(hdr.Transport)
	sb.WriteByte(' ')
	sb.WriteString(hdr.SentBy)
	hdr.Params.Render(&sb)
	return sb.String()
}

// String returns the string representation of the header value.
func (hdr *Via) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *Via) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	hdr2.Params = hdr.Params.Clone()
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *Via) Equal(val any) bool {
	var other *Via
	switch v := val.(type) {
	case Via:
		other = &v
	case *Via:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.Proto == other.Proto &&
		strings.EqualFold(hdr.Transport, other.Transport) &&
		strings.EqualFold(hdr.SentBy, other.SentBy) &&
		(len(hdr.Params) == 0 && len(other.Params) == 0 || hdr.Params.Equal(other.Params))
}

// IsValid checks whether the header is syntactically valid.
func (hdr *Via) IsValid() bool {
	return hdr != nil && hdr.Proto != "" && hdr.Transport != "" && hdr.SentBy != ""
}

func parseVias(value string) ([]Header, error) {
	var hdrs []Header
	for hop := range strings.SplitSeq(value, ",") {
		hdr, err := parseViaHop(strings.TrimSpace(hop))
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		hdrs = append(hdrs, hdr)
	}
	return hdrs, nil
}

func parseViaHop(s string) (*Via, error) {
	proto, rest, ok := strings.Cut(s, " ")
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "via: %q", s))
	}

	protoName, transport, ok := cutLast(proto, '/')
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "via protocol: %q", s))
	}

	hdr := &Via{
		Proto:     protoName,
		Transport: strings.ToUpper(transport),
	}

	rest = strings.TrimSpace(rest)
	if sentBy, params, ok := strings.Cut(rest, ";"); ok {
		hdr.SentBy = strings.TrimSpace(sentBy)
		hdr.Params = types.ParseValues(params)
	} else {
		hdr.SentBy = rest
	}

	if hdr.SentBy == "" {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "via sent-by: %q", s))
	}
	return hdr, nil
}

func cutLast(s string, sep byte) (before, after string, found bool) {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}
