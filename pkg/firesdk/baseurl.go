package firesdk

import "strings"

const (
	// DefaultOrigin is used when no origin override is configured.
	DefaultOrigin = "http://127.0.0.1:8000"

	// APIPrefix is appended once to the origin; every resource path is
	// relative to it.
	APIPrefix = "/api"
)

// ResolveBaseURL turns an origin override into the API base URL. The
// override is trimmed and stripped of trailing slashes; an empty override
// falls back to DefaultOrigin.
//
//	ResolveBaseURL("http://host:9999///") == "http://host:9999/api"
func ResolveBaseURL(override string) string {
	origin := strings.TrimSpace(override)
	if origin == "" {
		origin = DefaultOrigin
	}
	origin = strings.TrimRight(origin, "/")
	return origin + APIPrefix
}
