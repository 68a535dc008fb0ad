package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aussiebroadwan/tercera/internal/access"
	"github.com/aussiebroadwan/tercera/pkg/slogx"
)

// Navigator performs the application-level screen changes the core asks for.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// cliNavigator has no screens to switch to; it tells the user where to go.
type cliNavigator struct {
	out io.Writer
}

var screenHints = map[string]string{
	access.PathLogin:     "run `tercera login` to start a session",
	access.PathDashboard: "this screen is not available for your role",
}

func (n *cliNavigator) Navigate(ctx context.Context, path string) {
	hint, ok := screenHints[path]
	if !ok {
		hint = "continue at " + path
	}
	_, _ = fmt.Fprintf(n.out, "→ %s: %s\n", path, hint)
}

// RedirectError is returned by a screen that was denied or whose session
// expired mid-run. The redirect has already been announced.
type RedirectError struct {
	To string
}

func (e *RedirectError) Error() string { return "redirected to " + e.To }

// IsRedirect reports whether err ends a screen with a redirect.
func IsRedirect(err error) bool {
	var r *RedirectError
	return errors.As(err, &r)
}

// handleUnauthorized is the gateway's OnUnauthorized hook: it ends the
// session and sends the user to the login screen.
func (app *Application) handleUnauthorized(ctx context.Context) {
	slogx.FromContext(ctx).Warn("api rejected the session token")
	app.session.Expire(ctx)
	app.nav.Navigate(ctx, access.PathLogin)
}
