package header

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/internal/errorutil"
)

// CSeq represents the CSeq header field.
// The CSeq header field serves as a way to identify and order transactions.
type CSeq struct {
	SeqNum uint32
	Method RequestMethod
}

// CanonicName returns the canonical name of the header.
func (*CSeq) CanonicName() Name { return "CSeq" }

// RenderValue returns the header value without the name prefix.
func (hdr *CSeq) RenderValue() string {
	if hdr == nil {
		return ""
	}
	return strconv.FormatUint(uint64(hdr.SeqNum), 10) + " " + string(hdr.Method)
}

// String returns the string representation of the header value.
func (hdr *CSeq) String() string { return hdr.RenderValue() }

// Clone returns a copy of the header.
func (hdr *CSeq) Clone() Header {
	if hdr == nil {
		return nil
	}
	hdr2 := *hdr
	return &hdr2
}

// Equal compares this header with another for equality.
func (hdr *CSeq) Equal(val any) bool {
	var other *CSeq
	switch v := val.(type) {
	case CSeq:
		other = &v
	case *CSeq:
		other = v
	default:
		return false
	}

	if hdr == other {
		return true
	} else if hdr == nil || other == nil {
		return false
	}

	return hdr.SeqNum == other.SeqNum && hdr.Method.Equal(other.Method)
}

// IsValid checks whether the header is syntactically valid.
func (hdr *CSeq) IsValid() bool { return hdr != nil && hdr.Method.IsValid() }

func parseCSeq(value string) (*CSeq, error) {
	num, method, ok := strings.Cut(value, " ")
	if !ok {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "cseq: %q", value))
	}

	seq, err := strconv.ParseUint(strings.TrimSpace(num), 10, 32)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidHeader, "cseq number: %q", value))
	}

	return &CSeq{
		SeqNum: uint32(seq),
		Method: RequestMethod(strings.TrimSpace(method)).ToUpper(),
	}, nil
}
