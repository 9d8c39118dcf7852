// Package ucware implements a client for the UCware management API:
// JSON-RPC 2.0 over HTTP with bearer-token authentication, plus the
// bridge from a provisioned slot to a registered SIP signaling socket.
package ucware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/google/uuid"

	"github.com/telvora/ucc/internal/errorutil"
	"github.com/telvora/ucc/internal/log"
)

// Error is a string error type of the ucware package.
type Error = errorutil.Error

const (
	// ErrUnexpectedStatus is returned when the API answers with a non-200 HTTP status.
	ErrUnexpectedStatus Error = "unexpected HTTP status"

	// ErrNoMatchingSlot is returned when no provisioned slot fits the requested device type.
	ErrNoMatchingSlot Error = "no matching slot found"
)

// RPCError is a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// ClientOptions configures a [Client].
type ClientOptions struct {
	// Log is the logger of the client. Defaults to [log.Noop].
	Log *slog.Logger
	// HTTPClient is the HTTP client used for API calls. Defaults to a
	// client with a 30s timeout.
	HTTPClient *http.Client
}

func (opts *ClientOptions) logger() *slog.Logger {
	if opts == nil || opts.Log == nil {
		return log.Noop
	}
	return opts.Log
}

func (opts *ClientOptions) httpClient() *http.Client {
	if opts == nil || opts.HTTPClient == nil {
		return &http.Client{Timeout: 30 * time.Second}
	}
	return opts.HTTPClient
}

// Client talks to the UCware management API. Methods live under
// "{base}/api/2/{namespace}/{interface}/" endpoints.
type Client struct {
	baseURL *url.URL
	token   *TokenStore
	http    *http.Client
	log     *slog.Logger
}

// NewClient creates an API client for the given base URL. The path is
// normalized to end with "api/2/".
func NewClient(rawURL string, token *TokenStore, opts *ClientOptions) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	if u.Host == "" {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("no host in URL: %q", rawURL))
	}

	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if !strings.HasSuffix(u.Path, "/api/2/") {
		u.Path += "api/2/"
	}

	return &Client{
		baseURL: u,
		token:   token,
		http:    opts.httpClient(),
		log:     opts.logger(),
	}, nil
}

// URL returns the normalized base URL of the API.
func (c *Client) URL() *url.URL { return c.baseURL }

// User returns the client of the "user" namespace.
func (c *Client) User() *UserClient { return &UserClient{c} }

// RefreshToken fetches a fresh bearer token and persists it in the store.
func (c *Client) RefreshToken(ctx context.Context) error {
	token, err := c.User().Authentication().GetToken(ctx)
	if err != nil {
		return errtrace.Wrap(err)
	}
	return errtrace.Wrap(c.token.Update(token))
}

// call performs one JSON-RPC request against "{base}/{namespace}/{iface}/"
// and decodes the result into result when it is non-nil.
func (c *Client) call(ctx context.Context, namespace, iface, method string, params, result any) error {
	endpoint := c.baseURL.JoinPath(namespace, iface)
	endpoint.Path += "/"

	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errtrace.Wrap(err)
	}

	c.log.Debug("api call", "endpoint", endpoint.String(), "method", method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return errtrace.Wrap(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token.Get())

	resp, err := c.http.Do(req)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return errtrace.Wrap(errorutil.NewWrapperError(ErrUnexpectedStatus, resp.Status))
	}

	var rpcRes rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcRes); err != nil {
		return errtrace.Wrap(err)
	}
	if rpcRes.Error != nil {
		return errtrace.Wrap(rpcRes.Error)
	}
	if result == nil {
		return nil
	}
	return errtrace.Wrap(json.Unmarshal(rpcRes.Result, result))
}
