package header

import "github.com/telvora/ucc/internal/util"

// UserAgent represents the User-Agent header field.
type UserAgent string

// CanonicName returns the canonical name of the header.
func (UserAgent) CanonicName() Name { return "User-Agent" }

// RenderValue returns the header value without the name prefix.
func (hdr UserAgent) RenderValue() string { return string(hdr) }

// String returns the string representation of the header value.
func (hdr UserAgent) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr UserAgent) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr UserAgent) Equal(val any) bool {
	var other UserAgent
	switch v := val.(type) {
	case UserAgent:
		other = v
	case *UserAgent:
		if v == nil {
			return false
		}
		other = *v
	default:
		return false
	}
	return hdr == other
}

// IsValid checks whether the header is syntactically valid.
func (hdr UserAgent) IsValid() bool { return util.TrimSP(hdr) != "" }
