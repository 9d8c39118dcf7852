package types

import "fmt"

const (
	ResponseStatusTrying          ResponseStatus = 100
	ResponseStatusRinging         ResponseStatus = 180
	ResponseStatusSessionProgress ResponseStatus = 183

	ResponseStatusOK       ResponseStatus = 200
	ResponseStatusAccepted ResponseStatus = 202

	ResponseStatusBadRequest                  ResponseStatus = 400
	ResponseStatusUnauthorized                ResponseStatus = 401
	ResponseStatusForbidden                   ResponseStatus = 403
	ResponseStatusNotFound                    ResponseStatus = 404
	ResponseStatusProxyAuthenticationRequired ResponseStatus = 407
	ResponseStatusRequestTimeout              ResponseStatus = 408
	ResponseStatusTemporarilyUnavailable      ResponseStatus = 480
	ResponseStatusBusyHere                    ResponseStatus = 486
	ResponseStatusRequestTerminated           ResponseStatus = 487

	ResponseStatusServerInternalError ResponseStatus = 500
	ResponseStatusServiceUnavailable  ResponseStatus = 503
)

// ResponseStatus represents a SIP response status code.
type ResponseStatus int

// ResponseStatusClass represents the class of a SIP response status code.
type ResponseStatusClass int

const (
	ResponseStatusClassProvisional ResponseStatusClass = 1
	ResponseStatusClassSuccess     ResponseStatusClass = 2
	ResponseStatusClassRedirect    ResponseStatusClass = 3
	ResponseStatusClassClientError ResponseStatusClass = 4
	ResponseStatusClassServerError ResponseStatusClass = 5
	ResponseStatusClassGlobalError ResponseStatusClass = 6
)

func (s ResponseStatus) Class() ResponseStatusClass { return ResponseStatusClass(s / 100) }

func (s ResponseStatus) IsProvisional() bool { return s.Class() == ResponseStatusClassProvisional }

func (s ResponseStatus) IsSuccess() bool { return s.Class() == ResponseStatusClassSuccess }

func (s ResponseStatus) IsValid() bool { return s >= 100 && s <= 699 }

func (s ResponseStatus) String() string { return fmt.Sprintf("%d %s", int(s), s.ReasonPhrase()) }

var reasonPhrases = map[ResponseStatus]string{
	ResponseStatusTrying:                      "Trying",
	ResponseStatusRinging:                     "Ringing",
	ResponseStatusSessionProgress:             "Session Progress",
	ResponseStatusOK:                          "OK",
	ResponseStatusAccepted:                    "Accepted",
	ResponseStatusBadRequest:                  "Bad Request",
	ResponseStatusUnauthorized:                "Unauthorized",
	ResponseStatusForbidden:                   "Forbidden",
	ResponseStatusNotFound:                    "Not Found",
	ResponseStatusProxyAuthenticationRequired: "Proxy Authentication Required",
	ResponseStatusRequestTimeout:              "Request Timeout",
	ResponseStatusTemporarilyUnavailable:      "Temporarily Unavailable",
	ResponseStatusBusyHere:                    "Busy Here",
	ResponseStatusRequestTerminated:           "Request Terminated",
	ResponseStatusServerInternalError:         "Server Internal Error",
	ResponseStatusServiceUnavailable:          "Service Unavailable",
}

// ReasonPhrase returns the canonical reason phrase for the status code.
// Unknown codes map to the generic phrase of their class.
func (s ResponseStatus) ReasonPhrase() string {
	if p, ok := reasonPhrases[s]; ok {
		return p
	}
	switch s.Class() {
	case ResponseStatusClassProvisional:
		return "Trying"
	case ResponseStatusClassSuccess:
		return "OK"
	case ResponseStatusClassRedirect:
		return "Moved Temporarily"
	case ResponseStatusClassClientError:
		return "Bad Request"
	case ResponseStatusClassServerError:
		return "Server Internal Error"
	default:
		return "Busy Everywhere"
	}
}
