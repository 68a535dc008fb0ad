package access

import (
	"testing"

	"github.com/aussiebroadwan/tercera/internal/domain"
	"github.com/stretchr/testify/require"
)

func profile(t *testing.T, raw string) domain.Profile {
	t.Helper()
	p, err := domain.ParseProfile([]byte(raw))
	require.NoError(t, err)
	return p
}

func TestExtractGroupNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"mixed shapes", `{"grupos": [{"nombre": "Secretario"}, "AYUDANTE", 7]}`, []string{"Secretario", "AYUDANTE", "7"}},
		{"name key", `{"groups": [{"id": 1, "name": "Capitan"}]}`, []string{"Capitan"}},
		{"single string", `{"group": "Director"}`, []string{"Director"}},
		{"single object", `{"group": {"nombre": "Intendente"}}`, []string{"Intendente"}},
		{"nested under perfil", `{"perfil": {"grupos": ["Teniente Primero"], "group": "tesorero"}}`, []string{"Teniente Primero", "tesorero"}},
		{"probes are unioned", `{"groups": ["a"], "grupos": ["b"], "perfil": {"groups": ["c"]}}`, []string{"a", "b", "c"}},
		{"case-insensitive dedupe", `{"groups": ["Capitan"], "grupos": ["CAPITAN"]}`, []string{"Capitan"}},
		{"unknown shapes dropped", `{"groups": [null, true, {"id": 3}, [], ""], "grupos": 4.5}`, []string{"4.5"}},
		{"perfil not an object", `{"perfil": "x"}`, nil},
		{"no groups", `{"id": 1}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractGroupNames(profile(t, tt.raw))
			require.Equal(t, tt.want, got.Names())
		})
	}
}

func TestExtractGroupNames_NilProfile(t *testing.T) {
	t.Parallel()

	set := ExtractGroupNames(nil)
	require.Zero(t, set.Len())
	require.False(t, set.Has("tesorero"))
	require.False(t, IsOfficer(nil))
	require.False(t, IsTreasurer(nil))
	require.False(t, IsAssistantOrSecretary(nil))
	require.False(t, CanSeeLeaveRequests(nil))
}

func TestIsTreasurer(t *testing.T) {
	t.Parallel()

	t.Run("group alone", func(t *testing.T) {
		require.True(t, IsTreasurer(profile(t, `{"groups": ["TESORERO"], "permissions": []}`)))
	})

	t.Run("permission alone", func(t *testing.T) {
		require.True(t, IsTreasurer(profile(t, `{"permissions": ["bomberos.add_comprobantetesorero"]}`)))
	})

	t.Run("neither", func(t *testing.T) {
		require.False(t, IsTreasurer(profile(t, `{"groups": ["capitan"], "permissions": ["bomberos.add_citacion"]}`)))
	})

	t.Run("permissions not a list", func(t *testing.T) {
		require.False(t, IsTreasurer(profile(t, `{"permissions": "bomberos.add_comprobantetesorero"}`)))
	})
}

func TestIsOfficer(t *testing.T) {
	t.Parallel()

	require.False(t, IsOfficer(profile(t, `{"groups": ["bombero"]}`)))
	require.True(t, IsOfficer(profile(t, `{"groups": ["capitan"]}`)))

	for _, g := range OfficerGroups() {
		require.True(t, IsOfficer(domain.Profile{"grupos": []any{g}}), g)
	}
	require.Len(t, OfficerGroups(), 9)
}

func TestCanSeeLeaveRequests(t *testing.T) {
	t.Parallel()

	for _, g := range []string{"Ayudante", "capitan", "SECRETARIO", "director"} {
		require.True(t, CanSeeLeaveRequests(domain.Profile{"groups": []any{g}}), g)
	}
	for _, g := range []string{"tesorero", "intendente", "teniente primero"} {
		require.False(t, CanSeeLeaveRequests(domain.Profile{"groups": []any{g}}), g)
	}
}

func TestIsAssistantOrSecretary(t *testing.T) {
	t.Parallel()

	require.True(t, IsAssistantOrSecretary(domain.Profile{"groups": []any{"ayudante"}}))
	require.True(t, IsAssistantOrSecretary(domain.Profile{"group": map[string]any{"name": "Secretario"}}))
	require.False(t, IsAssistantOrSecretary(domain.Profile{"groups": []any{"capitan"}}))
}
