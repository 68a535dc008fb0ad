package access

import (
	"strings"

	"github.com/aussiebroadwan/tercera/internal/domain"
)

// Route is one screen of the application.
type Route struct {
	// Pattern is the route path; ":name" segments match any single segment.
	Pattern string
	Title   string

	// Public routes skip the authentication guard.
	Public bool

	// Require is the role guard applied after authentication, nil for any
	// logged-in member. Denials go to the dashboard.
	Require Predicate
}

// Routes is the screen table. Order matters: the first matching pattern wins,
// so literal paths come before parameterised ones.
var Routes = []Route{
	{Pattern: "/login", Title: "Iniciar sesión", Public: true},
	{Pattern: "/password-reset", Title: "Recuperar contraseña", Public: true},
	{Pattern: "/password-reset/confirm", Title: "Nueva contraseña", Public: true},

	{Pattern: "/dashboard", Title: "Dashboard"},
	{Pattern: "/perfil", Title: "Mi perfil"},
	{Pattern: "/perfiles", Title: "Bomberos", Require: IsOfficer},

	{Pattern: "/citaciones", Title: "Citaciones"},
	{Pattern: "/citaciones/list", Title: "Ver citaciones"},
	{Pattern: "/citaciones/todas", Title: "Todas las citaciones", Require: IsOfficer},
	{Pattern: "/citaciones/disponibles", Title: "Citaciones disponibles"},
	{Pattern: "/citaciones/crear", Title: "Crear citación", Require: Permission(PermAddCitacion)},
	{Pattern: "/citaciones/:id", Title: "Detalle citación"},

	{Pattern: "/licencia/list", Title: "Mis licencias"},
	{Pattern: "/licencia/citacion/:id", Title: "Registrar licencia"},
	{Pattern: "/licencia/gestionar", Title: "Gestionar licencias", Require: CanSeeLeaveRequests},
	{Pattern: "/licencia/gestionar/:id", Title: "Licencias por citación", Require: CanSeeLeaveRequests},

	{Pattern: "/lista/crear", Title: "Crear lista", Require: Permission(PermAddCitacion)},
	{Pattern: "/lista/list", Title: "Ver listas"},
	{Pattern: "/lista/emergencias", Title: "Emergencias"},
	{Pattern: "/lista/:id", Title: "Detalle lista"},

	{Pattern: "/asistencia/mia", Title: "Mi asistencia"},
	{Pattern: "/asistencia/anual", Title: "Asistencia anual", Require: IsOfficer},
	{Pattern: "/asistencia/bomberos/:id", Title: "Asistencia bombero", Require: IsAssistantOrSecretary},
	{Pattern: "/asistencia/resumen/:id", Title: "Resumen citación", Require: IsAssistantOrSecretary},

	{Pattern: "/archivos", Title: "Archivos"},
	{Pattern: "/archivos/subir", Title: "Subir archivo", Require: IsOfficer},
	{Pattern: "/archivos/:tipo", Title: "Archivos por tipo"},

	{Pattern: "/tesoreria/mis-cuotas", Title: "Mis cuotas"},
	{Pattern: "/tesoreria/subir-comprobante", Title: "Subir comprobante"},
	{Pattern: "/tesorero/bandeja", Title: "Bandeja de comprobantes", Require: IsTreasurer},
	{Pattern: "/tesorero/registrar", Title: "Registrar comprobante", Require: IsTreasurer},
	{Pattern: "/tesorero/revisar", Title: "Revisar cuotas", Require: IsTreasurer},
	{Pattern: "/tesorero/revisar/:id", Title: "Cuotas del bombero", Require: IsTreasurer},
}

// Lookup returns the first route whose pattern matches path.
func Lookup(path string) (Route, bool) {
	path = cleanPath(path)
	for _, r := range Routes {
		if matchPattern(r.Pattern, path) {
			return r, true
		}
	}
	return Route{}, false
}

// Resolve decides whether the screen at path may be shown. Unknown paths are
// sent to the dashboard, or to the login screen when logged out.
func Resolve(profile domain.Profile, loggedIn bool, path string) Decision {
	route, ok := Lookup(path)
	if !ok {
		if !loggedIn {
			return RedirectTo(PathLogin)
		}
		return RedirectTo(PathDashboard)
	}
	return route.Decide(profile, loggedIn)
}

// Decide applies the route's guards.
func (r Route) Decide(profile domain.Profile, loggedIn bool) Decision {
	if r.Public {
		return Allow
	}
	if d := Authenticated(loggedIn); !d.Allowed {
		return d
	}
	return Guard(profile, r.Require, PathDashboard)
}

// Param extracts the value of a ":name" segment of pattern from path.
func Param(pattern, path, name string) (string, bool) {
	pp := splitPath(pattern)
	sp := splitPath(cleanPath(path))
	if len(pp) != len(sp) {
		return "", false
	}
	for i, seg := range pp {
		if seg == ":"+name {
			return sp[i], true
		}
	}
	return "", false
}

func matchPattern(pattern, path string) bool {
	pp := splitPath(pattern)
	sp := splitPath(path)
	if len(pp) != len(sp) {
		return false
	}
	for i, seg := range pp {
		if strings.HasPrefix(seg, ":") {
			if sp[i] == "" {
				return false
			}
			continue
		}
		if seg != sp[i] {
			return false
		}
	}
	return true
}

func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimRight(path, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func splitPath(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
