package sip

import (
	"strconv"
	"strings"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/uri"
)

// Message represents a SIP message: either a [Request] or a [Response].
type Message interface {
	// Headers returns the headers of the message.
	Headers() Headers
	// Body returns the body of the message.
	Body() []byte
	// Render renders the message to its wire form.
	Render() string
}

// Request represents a SIP request.
type Request struct {
	Method  RequestMethod
	URI     uri.URI
	Hdrs    Headers
	Payload []byte
}

// Headers returns the headers of the request.
func (req *Request) Headers() Headers { return req.Hdrs }

// Body returns the body of the request.
func (req *Request) Body() []byte { return req.Payload }

// Render renders the request to its wire form.
func (req *Request) Render() string {
	var sb strings.Builder
	sb.WriteString(string(req.Method))
	sb.WriteByte(' ')
	sb.WriteString(req.URI.Render())
	sb.WriteByte(' ')
	sb.WriteString(ProtoVersion)
	sb.WriteString("\r\n")
	renderHeadersAndBody(&sb, req.Hdrs, req.Payload)
	return sb.String()
}

func (req *Request) String() string { return req.Render() }

// Response represents a SIP response.
type Response struct {
	Status  ResponseStatus
	Reason  string
	Hdrs    Headers
	Payload []byte
}

// Headers returns the headers of the response.
func (res *Response) Headers() Headers { return res.Hdrs }

// Body returns the body of the response.
func (res *Response) Body() []byte { return res.Payload }

// Render renders the response to its wire form.
func (res *Response) Render() string {
	reason := res.Reason
	if reason == "" {
		reason = res.Status.ReasonPhrase()
	}

	var sb strings.Builder
	sb.WriteString(ProtoVersion)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(int(res.Status)))
	sb.WriteByte(' ')
	sb.WriteString(reason)
	sb.WriteString("\r\n")
	renderHeadersAndBody(&sb, res.Hdrs, res.Payload)
	return sb.String()
}

func (res *Response) String() string { return res.Render() }

// Messages travel as self-contained text frames, so no Content-Length
// header is synthesized: the frame boundary delimits the body.
func renderHeadersAndBody(sb *strings.Builder, hdrs Headers, body []byte) {
	for _, h := range hdrs {
		sb.WriteString(header.Render(h))
		sb.WriteString("\r\n")
	}
	sb.WriteString("\r\n")
	sb.Write(body)
}
