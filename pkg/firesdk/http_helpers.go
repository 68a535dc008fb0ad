package firesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/tercera/pkg/slogx"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
)

// Request describes one API call. JSON and Form are mutually exclusive.
type Request struct {
	Method string
	Path   string // relative to the API base, e.g. "/citaciones/"
	Query  url.Values
	Header http.Header

	// JSON is marshalled as the request body when non-nil.
	JSON any

	// Form is sent as multipart/form-data when non-nil. The JSON content
	// type is then suppressed so the boundary-bearing type is used.
	Form *Form
}

// url builds a complete URL by appending the path and query to the base URL.
func (c *SDKClient) url(path string, query url.Values) string {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do dispatches req with the session's bearer token and decodes a JSON
// success body into out (which may be nil).
//
// A 401 is never decoded: OnUnauthorized runs and ErrUnauthorized is
// returned. Any other non-2xx status yields a *RequestError.
func (s *Session) Do(ctx context.Context, req Request, out any) error {
	body, formType, err := req.encodeBody()
	if err != nil {
		return err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, s.client.url(req.Path, req.Query), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = mergeHeaders(req.Header, s.AccessToken(), req.Form != nil, formType)

	resp, err := s.client.send(ctx, httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		slogx.FromContext(ctx).Warn("api session expired", "method", method, "path", req.Path)
		if s.client.OnUnauthorized != nil {
			s.client.OnUnauthorized(ctx)
		}
		return ErrUnauthorized
	}

	return decodeJSON(resp, out)
}

// mergeHeaders applies, in order: caller headers, the bearer token, and the
// content type. The Authorization header is owned by the gateway; a caller
// supplied one is dropped.
func mergeHeaders(caller http.Header, token string, multipart bool, formType string) http.Header {
	h := make(http.Header, len(caller)+2)
	for key, values := range caller {
		h[http.CanonicalHeaderKey(key)] = append([]string(nil), values...)
	}

	h.Del(headerAuthorization)
	if token != "" {
		h.Set(headerAuthorization, "Bearer "+token)
	}

	switch {
	case multipart:
		h.Set(headerContentType, formType)
	case h.Get(headerContentType) == "":
		h.Set(headerContentType, contentTypeJSON)
	}

	return h
}

func (r Request) encodeBody() (io.Reader, string, error) {
	switch {
	case r.JSON != nil && r.Form != nil:
		return nil, "", ErrAmbiguousBody
	case r.Form != nil:
		buf, contentType, err := r.Form.encode()
		if err != nil {
			return nil, "", err
		}
		return buf, contentType, nil
	case r.JSON != nil:
		b, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, "", fmt.Errorf("failed to marshal request: %w", err)
		}
		return bytes.NewReader(b), "", nil
	default:
		return nil, "", nil
	}
}

// send stamps a request ID, performs the call and logs its outcome.
func (c *SDKClient) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	reqID := newRequestID()
	req.Header.Set(HeaderRequestID, reqID)

	log := slogx.FromContext(ctx).With("req_id", reqID, "method", req.Method, "path", req.URL.Path)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		log.Debug("api_request failed", "error", err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	log.Debug("api_request",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}

// doJSON performs an unauthenticated JSON call. There is no session to
// expire here, so a 401 is an ordinary *RequestError.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, nil), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(headerContentType, contentTypeJSON)

	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeJSON(resp, out)
}

// decodeJSON reads the body once, returns a *RequestError for non-2xx
// statuses and decodes the success body into target. With a nil target the
// body is still validated so a malformed success response is not swallowed.
func decodeJSON(resp *http.Response, target any) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseErrorResponse(resp.StatusCode, bodyBytes)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if target == nil {
		if len(bytes.TrimSpace(bodyBytes)) > 0 && !json.Valid(bodyBytes) {
			return fmt.Errorf("%w: body is not valid JSON", ErrDecode)
		}
		return nil
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return nil
}
