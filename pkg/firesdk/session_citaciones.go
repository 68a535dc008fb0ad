package firesdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ============================================================================
// Citaciones
// ============================================================================

// ListCitaciones returns call-outs, optionally bounded by date.
func (s *Session) ListCitaciones(ctx context.Context, filter CitacionFilter) ([]Citacion, error) {
	query := url.Values{}
	if filter.FechaDesde != "" {
		query.Set("fecha_desde", filter.FechaDesde)
	}
	if filter.FechaHasta != "" {
		query.Set("fecha_hasta", filter.FechaHasta)
	}

	var citaciones []Citacion
	if err := s.Do(ctx, Request{Path: "/citaciones/", Query: query}, &citaciones); err != nil {
		return nil, err
	}
	return citaciones, nil
}

// GetCitacion returns a single call-out.
func (s *Session) GetCitacion(ctx context.Context, id int64) (*Citacion, error) {
	var citacion Citacion
	if err := s.Do(ctx, Request{Path: fmt.Sprintf("/citaciones/%d/", id)}, &citacion); err != nil {
		return nil, err
	}
	return &citacion, nil
}

// ListCitacionesFuturas returns call-outs from today onwards.
func (s *Session) ListCitacionesFuturas(ctx context.Context, today time.Time) ([]Citacion, error) {
	return s.ListCitaciones(ctx, CitacionFilter{FechaDesde: today.Format(time.DateOnly)})
}

// ListCitacionesDisponibles returns the call-outs the member may still
// request leave for.
func (s *Session) ListCitacionesDisponibles(ctx context.Context) ([]Citacion, error) {
	var citaciones []Citacion
	if err := s.Do(ctx, Request{Path: "/citaciones/disponibles/"}, &citaciones); err != nil {
		return nil, err
	}
	return citaciones, nil
}

// CreateCitacion schedules a new call-out.
func (s *Session) CreateCitacion(ctx context.Context, req CreateCitacionRequest) (*Citacion, error) {
	var citacion Citacion
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/citaciones/", JSON: req}, &citacion); err != nil {
		return nil, err
	}
	return &citacion, nil
}

// ============================================================================
// Licencias
// ============================================================================

// ListLicencias returns leave requests matching filter.
func (s *Session) ListLicencias(ctx context.Context, filter LicenciaFilter) ([]Licencia, error) {
	query := url.Values{}
	if filter.Autor != "" {
		query.Set("autor", filter.Autor)
	}
	if filter.Citacion != "" {
		query.Set("citacion", filter.Citacion)
	}

	var licencias []Licencia
	if err := s.Do(ctx, Request{Path: "/licencias/", Query: query}, &licencias); err != nil {
		return nil, err
	}
	return licencias, nil
}

// FindLicencia returns the member's existing leave request for a call-out,
// or nil if there is none.
func (s *Session) FindLicencia(ctx context.Context, autorID, citacionID string) (*Licencia, error) {
	licencias, err := s.ListLicencias(ctx, LicenciaFilter{Autor: autorID, Citacion: citacionID})
	if err != nil {
		return nil, err
	}
	if len(licencias) == 0 {
		return nil, nil
	}
	return &licencias[0], nil
}

// CreateLicencia files a leave request.
func (s *Session) CreateLicencia(ctx context.Context, req CreateLicenciaRequest) (*Licencia, error) {
	var licencia Licencia
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/licencias/", JSON: req}, &licencia); err != nil {
		return nil, err
	}
	return &licencia, nil
}
