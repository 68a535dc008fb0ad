package firesdk

// TokenSource yields the access token to attach to a request. It must not
// perform I/O; it is consulted on every call.
type TokenSource interface {
	AccessToken() string
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) AccessToken() string { return string(t) }

// Session is the authenticated view of the API. Every method goes through
// the request gateway (Do), which attaches the bearer token and applies the
// session-expiry policy.
type Session struct {
	client *SDKClient
	tokens TokenSource
}

// AccessToken returns the token the next request would carry.
func (s *Session) AccessToken() string {
	if s.tokens == nil {
		return ""
	}
	return s.tokens.AccessToken()
}
