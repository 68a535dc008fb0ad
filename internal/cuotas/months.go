// Package cuotas shapes monthly dues data for display.
package cuotas

import (
	"slices"
	"strconv"

	"github.com/aussiebroadwan/tercera/pkg/firesdk"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

const (
	LabelPagado    = "Pagado"
	LabelPendiente = "Pendiente"
)

// Month is one row of a member's dues calendar.
type Month struct {
	ID     int64
	Name   string
	Number int
	Label  string
	Paid   bool
}

// Grouped is a dues calendar bucketed by year.
type Grouped struct {
	// Years in ascending numeric order
	Years  []string
	ByYear map[string][]Month
}

// MonthName returns the Spanish name of month n (1-12), or raw when n is out
// of range.
func MonthName(n int, raw string) string {
	if n >= 1 && n <= len(monthNames) {
		return monthNames[n-1]
	}
	return raw
}

// GroupMonths buckets the month calendar by year and marks each month paid
// when its id appears in paid. Months within a year are ordered by number.
func GroupMonths(months, paid []firesdk.Mes) Grouped {
	paidIDs := make(map[int64]struct{}, len(paid))
	for _, m := range paid {
		paidIDs[m.ID] = struct{}{}
	}

	g := Grouped{ByYear: make(map[string][]Month)}
	for _, m := range months {
		year := string(m.Anio)
		if _, ok := g.ByYear[year]; !ok {
			g.Years = append(g.Years, year)
		}

		number := m.Mes.Int()
		_, isPaid := paidIDs[m.ID]
		label := LabelPendiente
		if isPaid {
			label = LabelPagado
		}

		g.ByYear[year] = append(g.ByYear[year], Month{
			ID:     m.ID,
			Name:   MonthName(number, string(m.Mes)),
			Number: number,
			Label:  label,
			Paid:   isPaid,
		})
	}

	slices.SortStableFunc(g.Years, compareYears)
	for year := range g.ByYear {
		slices.SortStableFunc(g.ByYear[year], func(a, b Month) int { return a.Number - b.Number })
	}
	return g
}

// Latest returns the most recent year, or "" when there is none.
func (g Grouped) Latest() string {
	if len(g.Years) == 0 {
		return ""
	}
	return g.Years[len(g.Years)-1]
}

// compareYears orders numeric years numerically and puts anything else
// after them.
func compareYears(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return ai - bi
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	default:
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	}
}
