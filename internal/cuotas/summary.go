package cuotas

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/tercera/internal/domain"
)

// SummaryRow is one member in the treasury dues summary.
type SummaryRow struct {
	ID              string
	Nombre          string
	Rut             string
	TotalPagadas    float64
	TotalPendientes float64
	Moroso          bool
}

// Probe lists for the summary fields. Deployments disagree on field names, so
// each field is the first non-empty value found.
var (
	firstNameKeys = []string{"nombre", "first_name"}
	lastNameKeys  = []string{"apellido", "apellidos", "last_name"}
	rutKeys       = []string{"rut", "rut_bombero", "documento"}
	idKeys        = []string{"bombero_id", "bomberoId", "usuario_id", "user_id", "userId", "id", "pk"}
	pagadasKeys   = []string{"total_pagadas", "pagadas", "cuotas_pagadas"}
	pendingKeys   = []string{"total_pendientes", "pendientes", "cuotas_pendientes"}
	morosoKeys    = []string{"isMoroso", "moroso", "es_moroso", "debe_consejo"}
)

// NormalizeSummary maps loosely shaped summary rows onto SummaryRow. Missing
// names and RUTs render as "-"; totals that are not finite numbers are 0.
func NormalizeSummary(rows []map[string]any) []SummaryRow {
	out := make([]SummaryRow, 0, len(rows))
	for _, item := range rows {
		user, _ := item["user"].(map[string]any)

		first := firstString(user, []string{"first_name"})
		if first == "" {
			first = firstString(item, firstNameKeys)
		}
		last := firstString(user, []string{"last_name"})
		if last == "" {
			last = firstString(item, lastNameKeys)
		}

		nombre := strings.TrimSpace(first + " " + last)
		if nombre == "" {
			nombre = "-"
		}

		rut := firstString(item, rutKeys)
		if rut == "" {
			rut = "-"
		}

		id := firstString(item, idKeys)
		if id == "" {
			id = firstString(user, []string{"id", "pk"})
		}

		out = append(out, SummaryRow{
			ID:              id,
			Nombre:          nombre,
			Rut:             rut,
			TotalPagadas:    toNumber(firstValue(item, pagadasKeys)),
			TotalPendientes: toNumber(firstValue(item, pendingKeys)),
			Moroso:          truthLike(firstValue(item, morosoKeys)),
		})
	}
	return out
}

// firstValue returns the first value under keys that is neither null nor "".
func firstValue(src map[string]any, keys []string) any {
	for _, key := range keys {
		v, ok := src[key]
		if !ok || v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		return v
	}
	return nil
}

func firstString(src map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := domain.Scalar(firstValue(src, []string{key})); ok && s != "" {
			return s
		}
	}
	return ""
}

func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case bool:
		if t {
			f = 1
		}
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func truthLike(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "sí", "si":
			return true
		}
	}
	return false
}

// FormatCount renders a total with "." thousands separators, as es-CL does.
// Fractions keep up to three decimals after a ",".
func FormatCount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	v = math.Round(v*1000) / 1000
	whole := math.Trunc(v)
	millis := int(math.Round((v - whole) * 1000))

	digits := strconv.FormatFloat(whole, 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	if millis > 0 {
		b.WriteByte(',')
		b.WriteString(strings.TrimRight(fmt.Sprintf("%03d", millis), "0"))
	}
	return b.String()
}
