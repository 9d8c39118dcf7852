package sip

import (
	"slices"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/internal/errorutil"
)

// Headers is an ordered collection of SIP headers.
type Headers []header.Header

// Append adds headers to the end of the collection.
func (hdrs *Headers) Append(hs ...header.Header) { *hdrs = append(*hdrs, hs...) }

// Get returns all headers with the given name in order of appearance.
func (hdrs Headers) Get(name header.Name) []header.Header {
	var out []header.Header
	for _, h := range hdrs {
		if h.CanonicName().Equal(name) {
			out = append(out, h)
		}
	}
	return out
}

// First returns the first header with the given name.
func (hdrs Headers) First(name header.Name) (header.Header, bool) {
	for _, h := range hdrs {
		if h.CanonicName().Equal(name) {
			return h, true
		}
	}
	return nil, false
}

// Filter returns the headers whose name is in names, preserving order.
func (hdrs Headers) Filter(names ...header.Name) Headers {
	var out Headers
	for _, h := range hdrs {
		cn := h.CanonicName()
		if slices.ContainsFunc(names, func(n header.Name) bool { return cn.Equal(n) }) {
			out = append(out, h)
		}
	}
	return out
}

// Clone returns a deep copy of the collection.
func (hdrs Headers) Clone() Headers {
	out := make(Headers, len(hdrs))
	for i, h := range hdrs {
		out[i] = h.Clone()
	}
	return out
}

func missingHeader(name header.Name) error {
	return errorutil.NewWrapperError(ErrMissingHeader, string(name)) //errtrace:skip
}

// Via returns the topmost Via header.
func (hdrs Headers) Via() (*header.Via, error) {
	h, ok := hdrs.First("Via")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Via"))
	}
	hdr, ok := h.(*header.Via)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Via"))
	}
	return hdr, nil
}

// From returns the From header.
func (hdrs Headers) From() (*header.From, error) {
	h, ok := hdrs.First("From")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("From"))
	}
	hdr, ok := h.(*header.From)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("From"))
	}
	return hdr, nil
}

// To returns the To header.
func (hdrs Headers) To() (*header.To, error) {
	h, ok := hdrs.First("To")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("To"))
	}
	hdr, ok := h.(*header.To)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("To"))
	}
	return hdr, nil
}

// CSeq returns the CSeq header.
func (hdrs Headers) CSeq() (*header.CSeq, error) {
	h, ok := hdrs.First("CSeq")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("CSeq"))
	}
	hdr, ok := h.(*header.CSeq)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("CSeq"))
	}
	return hdr, nil
}

// CallID returns the Call-ID header.
func (hdrs Headers) CallID() (header.CallID, error) {
	h, ok := hdrs.First("Call-ID")
	if !ok {
		return "", errtrace.Wrap(missingHeader("Call-ID"))
	}
	hdr, ok := h.(header.CallID)
	if !ok {
		return "", errtrace.Wrap(missingHeader("Call-ID"))
	}
	return hdr, nil
}

// Contact returns the first Contact header.
func (hdrs Headers) Contact() (*header.Contact, error) {
	h, ok := hdrs.First("Contact")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Contact"))
	}
	hdr, ok := h.(*header.Contact)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Contact"))
	}
	return hdr, nil
}

// WWWAuthenticate returns the WWW-Authenticate header.
func (hdrs Headers) WWWAuthenticate() (*header.WWWAuthenticate, error) {
	h, ok := hdrs.First("WWW-Authenticate")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("WWW-Authenticate"))
	}
	hdr, ok := h.(*header.WWWAuthenticate)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("WWW-Authenticate"))
	}
	return hdr, nil
}

// Authorization returns the Authorization header.
func (hdrs Headers) Authorization() (*header.Authorization, error) {
	h, ok := hdrs.First("Authorization")
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Authorization"))
	}
	hdr, ok := h.(*header.Authorization)
	if !ok {
		return nil, errtrace.Wrap(missingHeader("Authorization"))
	}
	return hdr, nil
}
