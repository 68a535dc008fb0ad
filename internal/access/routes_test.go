package access

import (
	"testing"

	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/stretchr/testify/require"
)

var (
	member    = domain.Profile{"id": 1.0, "groups": []any{"bombero"}, "permissions": []any{}}
	captain   = domain.Profile{"id": 2.0, "groups": []any{"capitan"}, "permissions": []any{"bomberos.add_citacion"}}
	treasurer = domain.Profile{"id": 3.0, "permissions": []any{"bomberos.add_comprobantetesorero"}}
)

func TestGuard(t *testing.T) {
	t.Parallel()

	require.Equal(t, Allow, Guard(captain, IsOfficer, PathDashboard))
	require.Equal(t, RedirectTo(PathDashboard), Guard(member, IsOfficer, PathDashboard))
	require.Equal(t, Allow, Guard(member, nil, PathDashboard))

	require.Equal(t, Allow, Authenticated(true))
	require.Equal(t, RedirectTo(PathLogin), Authenticated(false))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		profile  domain.Profile
		loggedIn bool
		path     string
		want     Decision
	}{
		{"public while logged out", nil, false, "/login", Allow},
		{"private while logged out", nil, false, "/dashboard", RedirectTo(PathLogin)},
		{"role route while logged out goes to login", nil, false, "/tesorero/bandeja", RedirectTo(PathLogin)},
		{"private while logged in", member, true, "/dashboard", Allow},
		{"treasurer route denied", member, true, "/tesorero/bandeja", RedirectTo(PathDashboard)},
		{"treasurer route by permission", treasurer, true, "/tesorero/bandeja", Allow},
		{"officer route", captain, true, "/asistencia/anual", Allow},
		{"leave management denied", treasurer, true, "/licencia/gestionar/4", RedirectTo(PathDashboard)},
		{"leave management allowed", captain, true, "/licencia/gestionar/4", Allow},
		{"create gated on permission", member, true, "/citaciones/crear", RedirectTo(PathDashboard)},
		{"create with permission", captain, true, "/citaciones/crear", Allow},
		{"parameterised route", member, true, "/citaciones/12", Allow},
		{"trailing slash and query", member, true, "/lista/list/?page=2", Allow},
		{"unknown route logged in", member, true, "/nope", RedirectTo(PathDashboard)},
		{"unknown route logged out", nil, false, "/nope", RedirectTo(PathLogin)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Resolve(tt.profile, tt.loggedIn, tt.path))
		})
	}
}

func TestLookup_LiteralBeforeParam(t *testing.T) {
	t.Parallel()

	r, ok := Lookup("/archivos/subir")
	require.True(t, ok)
	require.Equal(t, "/archivos/subir", r.Pattern)

	r, ok = Lookup("/archivos/actas")
	require.True(t, ok)
	require.Equal(t, "/archivos/:tipo", r.Pattern)

	_, ok = Lookup("/citaciones/12/extra")
	require.False(t, ok)
}

func TestParam(t *testing.T) {
	t.Parallel()

	v, ok := Param("/licencia/gestionar/:id", "/licencia/gestionar/42/", "id")
	require.True(t, ok)
	require.Equal(t, "42", v)

	_, ok = Param("/licencia/gestionar/:id", "/licencia/gestionar", "id")
	require.False(t, ok)
}

func TestRoutes_PatternsAreUnique(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, r := range Routes {
		require.False(t, seen[r.Pattern], r.Pattern)
		seen[r.Pattern] = true
	}
}

func TestMenu(t *testing.T) {
	t.Parallel()

	labels := func(sections []MenuSection) map[string][]string {
		out := map[string][]string{}
		for _, s := range sections {
			out[s.Label] = nil
			for _, i := range s.Items {
				out[s.Label] = append(out[s.Label], i.Label)
			}
		}
		return out
	}

	t.Run("plain member", func(t *testing.T) {
		got := labels(Menu(member))
		require.Equal(t, []string{"Ver listas", "Emergencias"}, got["Listas"])
		require.Equal(t, []string{"Ver citaciones"}, got["Citaciones"])
		require.Equal(t, []string{"Mis licencias"}, got["Licencias"])
		require.Equal(t, []string{"Mis cuotas", "Subir comprobante"}, got["Tesorería"])
		require.Equal(t, []string{"Mi perfil"}, got["Personal"])
		require.Contains(t, got, "Dashboard")
	})

	t.Run("captain with create permission", func(t *testing.T) {
		got := labels(Menu(captain))
		require.Equal(t, []string{"Crear lista", "Ver listas", "Emergencias"}, got["Listas"])
		require.Equal(t, []string{"Crear citación", "Ver citaciones", "Todas las citaciones"}, got["Citaciones"])
		require.Equal(t, []string{"Mis licencias", "Gestionar Licencias"}, got["Licencias"])
	})

	t.Run("treasurer", func(t *testing.T) {
		got := labels(Menu(treasurer))
		require.Equal(t, []string{"Mis cuotas", "Subir comprobante", "Bandeja", "Registrar comprobante", "Revisar cuotas"}, got["Tesorería"])
	})
}
