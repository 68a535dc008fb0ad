package firesdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrUnauthorized is returned when the API answers 401 to an
	// authenticated call. The session is considered expired; no response
	// body is read and no value is decoded.
	ErrUnauthorized = errors.New("firesdk: unauthorized, session expired")

	// ErrInvalidCredentials is returned by Login when the API rejects the
	// RUT/password pair.
	ErrInvalidCredentials = errors.New("firesdk: invalid credentials")

	// ErrDecode wraps a success response whose body is not valid JSON for
	// the expected type.
	ErrDecode = errors.New("firesdk: failed to decode response")

	// ErrAmbiguousBody is returned when a Request carries both a JSON body
	// and a multipart form.
	ErrAmbiguousBody = errors.New("firesdk: request has both a JSON body and a multipart form")

	// ErrRateLimited is returned when credential endpoints are called faster
	// than the client allows.
	ErrRateLimited = errors.New("firesdk: too many attempts, try again later")
)

// RequestError is a non-2xx, non-401 response.
type RequestError struct {
	// StatusCode is the HTTP status returned by the API
	StatusCode int

	// Message is the best-effort human readable message extracted from Body
	Message string

	// Body is the raw response text. Error bodies are not guaranteed to be JSON.
	Body string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("Error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status from err, or 0 if err is not a
// *RequestError.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

func parseErrorResponse(status int, body []byte) *RequestError {
	return &RequestError{
		StatusCode: status,
		Message:    ExtractErrorMessage(body),
		Body:       string(body),
	}
}

// ExtractErrorMessage pulls a readable message out of an API error body. It
// tries, in order: a "detail" field, a bare JSON string, an array of
// strings, the value of the first key (array or string), and finally the
// raw text.
func ExtractErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var data any
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return string(trimmed)
	}

	switch v := data.(type) {
	case map[string]any:
		if detail, ok := v["detail"]; ok && detail != nil {
			if s := joinMessage(detail); s != "" {
				return s
			}
		}
		if key, ok := firstKey(trimmed); ok {
			if s := joinMessage(v[key]); s != "" {
				return s
			}
		}
	case string:
		return v
	case []any:
		if s := joinMessage(v); s != "" {
			return s
		}
	}

	return string(trimmed)
}

// joinMessage renders a string, a number, or an array of those.
func joinMessage(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := joinMessage(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// firstKey returns the first key of a JSON object in document order.
func firstKey(obj []byte) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(obj))
	tok, err := dec.Token()
	if err != nil {
		return "", false
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", false
	}
	tok, err = dec.Token()
	if err != nil {
		return "", false
	}
	key, ok := tok.(string)
	return key, ok
}
