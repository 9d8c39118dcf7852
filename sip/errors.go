package sip

import "github.com/telvora/ucc/internal/errorutil"

// Error is a string error type of the sip package.
type Error = errorutil.Error

const (
	// ErrInvalidMessage is returned when a frame cannot be parsed as a SIP message.
	ErrInvalidMessage Error = "invalid SIP message"

	// ErrMissingHeader is returned by header accessors when the header is absent.
	ErrMissingHeader Error = "missing header"
)
