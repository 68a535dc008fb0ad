package firesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// Listas de asistencia
// ============================================================================

// ListListas returns attendance lists matching filter.
func (s *Session) ListListas(ctx context.Context, filter ListaFilter) ([]Lista, error) {
	query := url.Values{}
	if filter.ContentType != "" {
		query.Set("content_type", filter.ContentType)
	}
	if filter.ObjectID != "" {
		query.Set("object_id", filter.ObjectID)
	}

	var listas []Lista
	if err := s.Do(ctx, Request{Path: "/listas-asistencia/", Query: query}, &listas); err != nil {
		return nil, err
	}
	return listas, nil
}

// GetLista returns one attendance list with its members.
func (s *Session) GetLista(ctx context.Context, id int64) (*Lista, error) {
	var lista Lista
	if err := s.Do(ctx, Request{Path: fmt.Sprintf("/listas-asistencia/%d/", id)}, &lista); err != nil {
		return nil, err
	}
	return &lista, nil
}

// CreateLista records attendance for a call-out or emergency.
func (s *Session) CreateLista(ctx context.Context, req CreateListaRequest) (*Lista, error) {
	var lista Lista
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/listas-asistencia/", JSON: req}, &lista); err != nil {
		return nil, err
	}
	return &lista, nil
}

// ListEmergencias returns the attendance lists taken at emergencies.
func (s *Session) ListEmergencias(ctx context.Context) ([]Lista, error) {
	return s.ListListas(ctx, ListaFilter{ContentType: ContentTypeEmergencia})
}

// CreateEmergencia records an emergency call.
func (s *Session) CreateEmergencia(ctx context.Context, req CreateEmergenciaRequest) (*Emergencia, error) {
	var emergencia Emergencia
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/emergencias/", JSON: req}, &emergencia); err != nil {
		return nil, err
	}
	return &emergencia, nil
}

// ============================================================================
// Asistencia
// ============================================================================

// AnnualAttendance returns the company-wide attendance table for a year.
func (s *Session) AnnualAttendance(ctx context.Context, anio int) (json.RawMessage, error) {
	return s.getRaw(ctx, "/asistencia/anual/", yearQuery(anio))
}

// UserAttendance returns one member's attendance for a year.
func (s *Session) UserAttendance(ctx context.Context, userID string, anio int) (json.RawMessage, error) {
	return s.getRaw(ctx, "/asistencia/usuario/"+url.PathEscape(userID), yearQuery(anio))
}

// CitacionAttendanceSummary returns who attended a call-out and who was
// excused.
func (s *Session) CitacionAttendanceSummary(ctx context.Context, citacionID string) (json.RawMessage, error) {
	return s.getRaw(ctx, "/asistencia/resumen/"+url.PathEscape(citacionID), nil)
}

func (s *Session) getRaw(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := s.Do(ctx, Request{Path: path, Query: query}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func yearQuery(anio int) url.Values {
	return url.Values{"anio": {strconv.Itoa(anio)}}
}
