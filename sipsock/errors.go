package sipsock

import "github.com/telvora/ucc/internal/errorutil"

// Error is a string error type of the sipsock package.
type Error = errorutil.Error

const (
	// ErrTransactionClosed is returned by [ClientTransaction.Receive] when the
	// connection terminates before a final response arrives.
	ErrTransactionClosed Error = "transaction closed without response"

	// ErrConnectionClosed is returned when attempting to use a closed connection.
	ErrConnectionClosed Error = "client closed connection"

	// ErrNoChallenge is returned when a 401 response carries no WWW-Authenticate header.
	ErrNoChallenge Error = "no WWW-Authenticate header received"

	// ErrRegistrationFailed is returned when the registrar rejects a REGISTER round.
	ErrRegistrationFailed Error = "registration failed"
)
