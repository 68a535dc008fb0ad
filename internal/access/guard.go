package access

import "github.com/aussiebroadwan/tercera/internal/domain"

// Fallback screens a denied route redirects to.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
)

// Predicate is a capability check over a profile.
type Predicate func(domain.Profile) bool

// Decision is the outcome of a guard: allow, or redirect.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow is the permitting decision.
var Allow = Decision{Allowed: true}

// RedirectTo denies by sending the user to path.
func RedirectTo(path string) Decision { return Decision{RedirectTo: path} }

// Guard allows when pred holds for profile, otherwise redirects to fallback.
// A nil predicate allows.
func Guard(profile domain.Profile, pred Predicate, fallback string) Decision {
	if pred == nil || pred(profile) {
		return Allow
	}
	return RedirectTo(fallback)
}

// Authenticated is the private-route guard: a session or the login screen.
func Authenticated(loggedIn bool) Decision {
	if loggedIn {
		return Allow
	}
	return RedirectTo(PathLogin)
}

// Permission builds a predicate over a single permission string.
func Permission(perm string) Predicate {
	return func(p domain.Profile) bool { return HasPermission(p, perm) }
}
