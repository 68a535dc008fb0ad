package cuotas

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/tercera/pkg/firesdk"
	"github.com/stretchr/testify/require"
)

func meses(t *testing.T, raw string) []firesdk.Mes {
	t.Helper()
	var out []firesdk.Mes
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestGroupMonths(t *testing.T) {
	t.Parallel()

	calendar := meses(t, `[
		{"id": 13, "mes": 1, "anio": 2025},
		{"id": 3, "mes": "3", "anio": "2024"},
		{"id": 1, "mes": 1, "anio": 2024},
		{"id": 2, "mes": 2, "anio": 2024},
		{"id": 99, "mes": "Extra", "anio": 2024},
		{"id": 50, "mes": 5, "anio": 999}
	]`)
	paid := meses(t, `[{"id": 1, "mes": 1, "anio": 2024}, {"id": 13, "mes": 1, "anio": 2025}]`)

	g := GroupMonths(calendar, paid)

	require.Equal(t, []string{"999", "2024", "2025"}, g.Years)
	require.Equal(t, "2025", g.Latest())

	require.Equal(t, []Month{
		{ID: 99, Name: "Extra", Number: 0, Label: LabelPendiente},
		{ID: 1, Name: "Enero", Number: 1, Label: LabelPagado, Paid: true},
		{ID: 2, Name: "Febrero", Number: 2, Label: LabelPendiente},
		{ID: 3, Name: "Marzo", Number: 3, Label: LabelPendiente},
	}, g.ByYear["2024"])

	require.Equal(t, []Month{{ID: 13, Name: "Enero", Number: 1, Label: LabelPagado, Paid: true}}, g.ByYear["2025"])
}

func TestGroupMonths_Empty(t *testing.T) {
	t.Parallel()

	g := GroupMonths(nil, nil)
	require.Empty(t, g.Years)
	require.Empty(t, g.Latest())
}

func TestMonthName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Diciembre", MonthName(12, "12"))
	require.Equal(t, "13", MonthName(13, "13"))
	require.Equal(t, "", MonthName(0, ""))
}

func TestNormalizeSummary(t *testing.T) {
	t.Parallel()

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(`[
		{"user": {"id": 4, "first_name": "Ana", "last_name": "Rojas"}, "rut": "1-9", "total_pagadas": 10, "total_pendientes": "2", "moroso": "Sí"},
		{"bombero_id": 5, "nombre": "Luis", "apellidos": "Soto", "pagadas": "abc", "pendientes": null, "cuotas_pendientes": 3, "es_moroso": 0},
		{"id": 6, "debe_consejo": "true", "total_pagadas": ""},
		{"userId": "u7", "isMoroso": true, "moroso": false}
	]`), &rows))

	got := NormalizeSummary(rows)
	require.Equal(t, []SummaryRow{
		{ID: "4", Nombre: "Ana Rojas", Rut: "1-9", TotalPagadas: 10, TotalPendientes: 2, Moroso: true},
		{ID: "5", Nombre: "Luis Soto", Rut: "-", TotalPagadas: 0, TotalPendientes: 3, Moroso: false},
		{ID: "6", Nombre: "-", Rut: "-", TotalPagadas: 0, TotalPendientes: 0, Moroso: true},
		{ID: "u7", Nombre: "-", Rut: "-", Moroso: true},
	}, got)
}

func TestTruthLike(t *testing.T) {
	t.Parallel()

	for _, v := range []any{true, 1.0, -2.0, "1", " TRUE ", "sí", "Si"} {
		require.True(t, truthLike(v), "%v", v)
	}
	for _, v := range []any{nil, false, 0.0, "0", "no", "yes", map[string]any{}} {
		require.False(t, truthLike(v), "%v", v)
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	tests := map[float64]string{
		0:        "0",
		999:      "999",
		1000:     "1.000",
		1234567:  "1.234.567",
		-15000:   "-15.000",
		2.5:      "2,5",
		1000.125: "1.000,125",
	}
	for in, want := range tests {
		require.Equal(t, want, FormatCount(in), "%v", in)
	}
}
