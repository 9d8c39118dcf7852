// Package sip implements the SIP message model used by this client:
// request and response envelopes carried as single WebSocket text frames.
package sip

import "github.com/telvora/ucc/internal/types"

// RequestMethod represents a SIP request method.
// See [types.RequestMethod].
type RequestMethod = types.RequestMethod

// Request method constants.
// See [types.RequestMethod].
const (
	RequestMethodAck      = types.RequestMethodAck
	RequestMethodBye      = types.RequestMethodBye
	RequestMethodCancel   = types.RequestMethodCancel
	RequestMethodInfo     = types.RequestMethodInfo
	RequestMethodInvite   = types.RequestMethodInvite
	RequestMethodMessage  = types.RequestMethodMessage
	RequestMethodNotify   = types.RequestMethodNotify
	RequestMethodOptions  = types.RequestMethodOptions
	RequestMethodRegister = types.RequestMethodRegister
)

// ResponseStatus represents a SIP response status code.
// See [types.ResponseStatus].
type ResponseStatus = types.ResponseStatus

// Response status constants.
// See [types.ResponseStatus].
const (
	ResponseStatusTrying          = types.ResponseStatusTrying
	ResponseStatusRinging         = types.ResponseStatusRinging
	ResponseStatusSessionProgress = types.ResponseStatusSessionProgress

	ResponseStatusOK       = types.ResponseStatusOK
	ResponseStatusAccepted = types.ResponseStatusAccepted

	ResponseStatusBadRequest                  = types.ResponseStatusBadRequest
	ResponseStatusUnauthorized                = types.ResponseStatusUnauthorized
	ResponseStatusForbidden                   = types.ResponseStatusForbidden
	ResponseStatusNotFound                    = types.ResponseStatusNotFound
	ResponseStatusProxyAuthenticationRequired = types.ResponseStatusProxyAuthenticationRequired
	ResponseStatusRequestTimeout              = types.ResponseStatusRequestTimeout
	ResponseStatusTemporarilyUnavailable      = types.ResponseStatusTemporarilyUnavailable
	ResponseStatusBusyHere                    = types.ResponseStatusBusyHere
	ResponseStatusRequestTerminated           = types.ResponseStatusRequestTerminated

	ResponseStatusServerInternalError = types.ResponseStatusServerInternalError
	ResponseStatusServiceUnavailable  = types.ResponseStatusServiceUnavailable
)

// ProtoVersion is the SIP protocol version emitted on the wire.
const ProtoVersion = "SIP/2.0"
