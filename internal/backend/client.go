// Package backend is the HTTP transport to the classifieds REST API.  It
// knows the wire format (JSON bodies, multipart ad uploads, the
// {"detail": ...} error envelope) but nothing about pages or sessions.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iliyamo/limpopo-connect-web/internal/metrics"
)

// maxErrorBody bounds how much of a failed response is read while looking
// for the detail message.
const maxErrorBody = 64 << 10

// APIError is a backend-reported application error (non-2xx response).
// Detail holds the backend's "detail" string verbatim, or the HTTP status
// text when the body carried none.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %d %s", e.Status, e.Detail)
}

// AsAPIError unwraps err into an *APIError when the failure was reported by
// the backend rather than by the transport.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Client issues requests against one backend base URL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client with the given per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ImageURL resolves a backend-relative image path to an absolute URL.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.BaseURL + path
}

// GetJSON performs a GET and decodes the 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, path, out)
}

// PostJSON sends payload as a JSON body and decodes the 2xx body into out
// (out may be nil).
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

// SendMultipart sends a prepared multipart body with the given method.
func (c *Client) SendMultipart(ctx context.Context, method, path string, form *Multipart, out any) error {
	body, contentType, err := form.Encode()
	if err != nil {
		return fmt.Errorf("encode %s form: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(req, path, out)
}

// Delete issues a DELETE and decodes the optional 2xx body into out.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, path, out)
}

// do executes req and maps the response: 2xx bodies are decoded into out,
// everything else becomes an *APIError.  endpoint is the metrics label.
func (c *Client) do(req *http.Request, endpoint string, out any) error {
	req.Header.Set("Accept", "application/json")
	if id := RequestIDFrom(req.Context()); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	done := metrics.TrackBackendCall(req.Method, metrics.EndpointLabel(endpoint))
	resp, err := c.HTTP.Do(req)
	if err != nil {
		done("error")
		return fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()
	done(fmt.Sprint(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{Status: resp.StatusCode}
	var env struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Detail) > 0 {
		var s string
		if json.Unmarshal(env.Detail, &s) == nil {
			apiErr.Detail = s
		} else {
			// validation errors arrive as structured detail lists
			apiErr.Detail = string(env.Detail)
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
