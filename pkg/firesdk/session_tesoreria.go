package firesdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ============================================================================
// Meses y cuotas
// ============================================================================

// ListMeses returns every billable month.
func (s *Session) ListMeses(ctx context.Context) ([]Mes, error) {
	var meses []Mes
	if err := s.Do(ctx, Request{Path: "/meses-anio/"}, &meses); err != nil {
		return nil, err
	}
	return meses, nil
}

// ListMesesPagados returns the months a member has paid.
func (s *Session) ListMesesPagados(ctx context.Context, bomberoID string) ([]Mes, error) {
	var meses []Mes
	path := "/meses-anio/meses_pagados_por_bombero/" + url.PathEscape(bomberoID) + "/"
	if err := s.Do(ctx, Request{Path: path}, &meses); err != nil {
		return nil, err
	}
	return meses, nil
}

// ResumenCuotas returns the treasury's per-member dues summary. Field
// names vary, see cuotas.NormalizeSummary.
func (s *Session) ResumenCuotas(ctx context.Context) ([]Record, error) {
	var rows []Record
	if err := s.Do(ctx, Request{Path: "/tesoreria/resumen-cuotas/"}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ============================================================================
// Comprobantes
// ============================================================================

// UploadComprobanteTransferencia submits a bank transfer receipt covering one or more
// months.
func (s *Session) UploadComprobanteTransferencia(ctx context.Context, req UploadTransferenciaRequest) (json.RawMessage, error) {
	if len(req.MesesPagados) == 0 {
		return nil, errors.New("firesdk: transferencia requires at least one month")
	}

	file := req.File
	file.Field = "archivo"

	form := NewForm().AddFile(file)
	for _, id := range req.MesesPagados {
		form.Add("meses_pagados", strconv.FormatInt(id, 10))
	}

	var raw json.RawMessage
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/comprobantes/transferencia/", Form: form}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListComprobantesPendientes returns transfer receipts awaiting review.
func (s *Session) ListComprobantesPendientes(ctx context.Context) ([]ComprobantePendiente, error) {
	var pendientes []ComprobantePendiente
	if err := s.Do(ctx, Request{Path: "/comprobantes/transferencia/pendientes/"}, &pendientes); err != nil {
		return nil, err
	}
	return pendientes, nil
}

// AprobarComprobante approves a transfer receipt.
func (s *Session) AprobarComprobante(ctx context.Context, id int64, req AprobarComprobanteRequest) error {
	path := fmt.Sprintf("/comprobantes/transferencia/%d/aprobar/", id)
	return s.Do(ctx, Request{Method: http.MethodPatch, Path: path, JSON: req}, nil)
}

// RechazarComprobante rejects a transfer receipt. An empty observation is
// replaced by DefaultRechazoObservacion.
func (s *Session) RechazarComprobante(ctx context.Context, id int64, observacion string) error {
	if observacion == "" {
		observacion = DefaultRechazoObservacion
	}
	path := fmt.Sprintf("/comprobantes/transferencia/%d/rechazar/", id)
	return s.Do(ctx, Request{Method: http.MethodPatch, Path: path, JSON: RechazarComprobanteRequest{Observacion: observacion}}, nil)
}

// RegistrarComprobanteTesorero records a payment taken by the treasurer.
func (s *Session) RegistrarComprobanteTesorero(ctx context.Context, req ComprobanteTesoreroRequest) (json.RawMessage, error) {
	if len(req.MesesPagados) == 0 {
		return nil, errors.New("firesdk: comprobante requires at least one month")
	}

	var raw json.RawMessage
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/comprobantes/tesorero/", JSON: req}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
