package sip

import (
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/telvora/ucc/header"
	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/uri"
)

// ParseMessage parses one complete SIP message from a text frame.
// The frame boundary delimits the body; any Content-Length header is
// retained but not used for framing.
func ParseMessage(data []byte) (Message, error) {
	head, body, _ := strings.Cut(string(data), "\r\n\r\n")

	lines := strings.Split(head, "\r\n")
	startLine := lines[0]

	hdrs, err := parseHeaders(lines[1:])
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	if rest, ok := strings.CutPrefix(startLine, ProtoVersion+" "); ok {
		res, err := parseStatusLine(rest)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}
		res.Hdrs = hdrs
		res.Payload = []byte(body)
		return res, nil
	}

	req, err := parseRequestLine(startLine)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	req.Hdrs = hdrs
	req.Payload = []byte(body)
	return req, nil
}

func parseRequestLine(line string) (*Request, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 || parts[2] != ProtoVersion {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, "bad request line: %q", line))
	}

	u, err := uri.Parse(parts[1])
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, err))
	}

	return &Request{
		Method: RequestMethod(parts[0]).ToUpper(),
		URI:    u,
	}, nil
}

func parseStatusLine(rest string) (*Response, error) {
	code, reason, _ := strings.Cut(rest, " ")
	status, err := strconv.Atoi(code)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, "bad status line: %q", rest))
	}

	return &Response{
		Status: ResponseStatus(status),
		Reason: reason,
	}, nil
}

func parseHeaders(lines []string) (Headers, error) {
	var hdrs Headers
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Folded continuation lines belong to the previous header.
		for i+1 < len(lines) && (strings.HasPrefix(lines[i+1], " ") || strings.HasPrefix(lines[i+1], "\t")) {
			i++
			line += " " + strings.TrimSpace(lines[i])
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, "bad header line: %q", line))
		}

		hs, err := header.Parse(name, value)
		if err != nil {
			return nil, errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidMessage, err))
		}
		hdrs.Append(hs...)
	}
	return hdrs, nil
}
