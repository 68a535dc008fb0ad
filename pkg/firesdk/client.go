package firesdk

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// SDKClient is a client for the Tercera API.
// It provides access to unauthenticated operations and creates Sessions for
// authenticated ones.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// OnUnauthorized is invoked whenever an authenticated call receives a 401,
	// before ErrUnauthorized is returned to the caller. The application root
	// uses it to drop the local session and navigate to the login screen.
	OnUnauthorized func(ctx context.Context)

	// credentials paces Login and the password reset endpoints.
	credentials *rate.Limiter
}

// NewSDKClient creates a client for the API served under origin (see
// ResolveBaseURL). Credential endpoints are limited to five calls per minute.
func NewSDKClient(origin string) *SDKClient {
	return &SDKClient{
		BaseURL: ResolveBaseURL(origin),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		credentials: rate.NewLimiter(rate.Every(time.Minute/5), 5),
	}
}

// SetCredentialRate allows perMinute calls to the credential endpoints, all
// available as a burst. Zero or negative disables pacing.
func (c *SDKClient) SetCredentialRate(perMinute int) {
	if perMinute <= 0 {
		c.credentials = nil
		return
	}
	c.credentials = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

// NewSession returns an authenticated view of the API. The access token is
// read from tokens on every request; a nil source or an empty token sends
// requests without an Authorization header.
func (c *SDKClient) NewSession(tokens TokenSource) *Session {
	return &Session{client: c, tokens: tokens}
}

// WithToken is shorthand for NewSession(StaticToken(accessToken)).
func (c *SDKClient) WithToken(accessToken string) *Session {
	return c.NewSession(StaticToken(accessToken))
}
