// Package sipsock implements a SIP signaling client over a WebSocket
// transport (RFC 7118 style): a connection multiplexer, transaction
// correlation, dialogs and digest-authenticated registration.
package sipsock

const (
	// Name identifies this client in User-Agent headers.
	Name = "ucc"
	// Version is the client version advertised in User-Agent headers.
	Version = "0.2.0"

	// Subprotocol is the WebSocket subprotocol negotiated for SIP.
	Subprotocol = "sip"

	userAgent = Name + "/" + Version
)
