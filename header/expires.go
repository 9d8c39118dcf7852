package header

import (
	"strconv"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
)

// Expires represents the Expires header field (seconds).
type Expires uint32

// CanonicName returns the canonical name of the header.
func (Expires) CanonicName() Name { return "Expires" }

// RenderValue returns the header value without the name prefix.
func (hdr Expires) RenderValue() string { return strconv.FormatUint(uint64(hdr), 10) }

// String returns the string representation of the header value.
func (hdr Expires) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr Expires) Clone() Header { return hdr }

// Equal compares this header with another for equality.
func (hdr Expires) Equal(val any) bool {
	var other Expires
	switch v := val.(type) {
	case Expires:
		other = v
	case *Expires:
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
func (Expires) IsValid() bool { return true }

func parseExpires(value string) (Expires, error) {
	v, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "expires: %q", value))
	}
	return Expires(v), nil
}
