package firesdk

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// ============================================================================
// Authentication Types
// ============================================================================

// LoginRequest is the body of POST /token/.
type LoginRequest struct {
	Rut      string `json:"rut"`
	Password string `json:"password"`
}

// TokenPair is the response of POST /token/.
type TokenPair struct {
	// Access is the short-lived JWT sent as the bearer token
	Access string `json:"access"`

	// Refresh is stored with the session; no refresh flow uses it yet
	Refresh string `json:"refresh"`
}

// PasswordResetRequest asks the API to mail a reset link for a RUT.
type PasswordResetRequest struct {
	Rut string `json:"rut"`
}

// PasswordResetConfirm completes a reset with the uid/token pair from the
// reset link.
type PasswordResetConfirm struct {
	UID                string `json:"uid"`
	Token              string `json:"token"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// Message is the generic {"detail": "..."} acknowledgement.
type Message struct {
	Detail string `json:"detail"`
}

// ============================================================================
// Shared Types
// ============================================================================

// FlexString decodes a JSON string or number into its string form. Some
// endpoints send month numbers as 3, others as "3".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = FlexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// Int returns the numeric value, or 0 if it is not a whole number.
func (f FlexString) Int() int {
	i, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return i
}

// Record is an opaque API object rendered as-is.
type Record = map[string]any

// UpdateMeRequest is the multipart body of PATCH /me/.
type UpdateMeRequest struct {
	// Fields are profile text fields, e.g. "nombres", "telefono"
	Fields map[string]string

	// Image replaces the profile picture when set
	Image *FormFile
}

// ============================================================================
// Citaciones
// ============================================================================

// Citacion is a call-out: a scheduled meeting, drill or duty.
type Citacion struct {
	ID          int64      `json:"id"`
	Nombre      string     `json:"nombre"`
	Lugar       string     `json:"lugar"`
	Tenida      string     `json:"tenida"`
	Fecha       string     `json:"fecha"`
	Descripcion string     `json:"descripcion"`
	Autor       FlexString `json:"autor"`
}

// CreateCitacionRequest is the body of POST /citaciones/.
type CreateCitacionRequest struct {
	Nombre      string `json:"nombre"`
	Lugar       string `json:"lugar"`
	Tenida      string `json:"tenida"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion,omitempty"`
}

// CitacionFilter narrows GET /citaciones/. Empty fields are omitted.
type CitacionFilter struct {
	FechaDesde string // YYYY-MM-DD
	FechaHasta string // YYYY-MM-DD
}

// ============================================================================
// Licencias
// ============================================================================

// CitacionInfo is the call-out summary embedded in a leave request.
type CitacionInfo struct {
	Nombre string `json:"nombre"`
	Fecha  string `json:"fecha"`
}

// Licencia is a leave request against a call-out.
type Licencia struct {
	ID            int64         `json:"id"`
	Motivo        string        `json:"motivo"`
	FechaLicencia string        `json:"fecha_licencia"`
	Autor         FlexString    `json:"autor"`
	Citacion      FlexString    `json:"citacion"`
	CitacionInfo  *CitacionInfo `json:"citacion_info,omitempty"`
	AutorNombre   string        `json:"autor_nombre,omitempty"`
}

// CreateLicenciaRequest is the body of POST /licencias/.
type CreateLicenciaRequest struct {
	Motivo   string `json:"motivo"`
	Autor    string `json:"autor"`
	Citacion string `json:"citacion"`
}

// LicenciaFilter narrows GET /licencias/.
type LicenciaFilter struct {
	Autor    string
	Citacion string
}

// ============================================================================
// Listas de asistencia y emergencias
// ============================================================================

// Content types an attendance list can refer to.
const (
	ContentTypeCitacion   = "citacion"
	ContentTypeEmergencia = "emergencia"
)

// Evento is the subject an attendance list refers to.
type Evento struct {
	Nombre string `json:"nombre"`
	Clave  string `json:"clave"`
}

// Lista is an attendance list.
type Lista struct {
	ID            int64           `json:"id"`
	Tipo          string          `json:"tipo"`
	Evento        *Evento         `json:"evento,omitempty"`
	FechaCreacion string          `json:"fecha_creacion"`
	ObjectID      FlexString      `json:"object_id"`
	Bomberos      json.RawMessage `json:"bomberos,omitempty"`
}

// CreateListaRequest is the body of POST /listas-asistencia/.
type CreateListaRequest struct {
	Bomberos    []int64 `json:"bomberos"`
	ContentType string  `json:"content_type"`
	ObjectID    int64   `json:"object_id"`
}

// ListaFilter narrows GET /listas-asistencia/.
type ListaFilter struct {
	ContentType string
	ObjectID    string
}

// Emergencia is an emergency call record.
type Emergencia struct {
	ID       int64   `json:"id"`
	Clave    string  `json:"clave"`
	Fecha    string  `json:"fecha"`
	Unidades []int64 `json:"unidades"`
}

// CreateEmergenciaRequest is the body of POST /emergencias/.
type CreateEmergenciaRequest struct {
	Clave    string  `json:"clave"`
	Fecha    string  `json:"fecha"`
	Unidades []int64 `json:"unidades"`
}

// ============================================================================
// Archivos
// ============================================================================

// TipoArchivo is one allowed document category.
type TipoArchivo struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Archivo is an uploaded document.
type Archivo struct {
	ID          int64  `json:"id"`
	Tipo        string `json:"tipo"`
	Nombre      string `json:"nombre"`
	Archivo     string `json:"archivo"`
	Descripcion string `json:"descripcion"`
	FechaSubida string `json:"fecha_subida,omitempty"`
}

// UploadArchivoRequest is the multipart body of POST /archivos/.
type UploadArchivoRequest struct {
	Tipo        string
	Nombre      string
	Descripcion string
	File        FormFile
}

// ============================================================================
// Tesoreria
// ============================================================================

// Mes is one billable month.
type Mes struct {
	ID   int64      `json:"id"`
	Mes  FlexString `json:"mes"`
	Anio FlexString `json:"anio"`
}

// BomberoRef names the member behind a receipt.
type BomberoRef struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// ComprobantePendiente is a transfer receipt awaiting treasurer review.
type ComprobantePendiente struct {
	ID                  int64       `json:"id"`
	Bombero             *BomberoRef `json:"bombero,omitempty"`
	FechaEnvio          string      `json:"fecha_envio"`
	Archivo             string      `json:"archivo"`
	MesesPagadosDetalle []Mes       `json:"meses_pagados_detalle"`
}

// UploadTransferenciaRequest is the multipart body of
// POST /comprobantes/transferencia/.
type UploadTransferenciaRequest struct {
	MesesPagados []int64
	File         FormFile
}

// AprobarComprobanteRequest approves a transfer receipt.
type AprobarComprobanteRequest struct {
	NumeroComprobante string `json:"numero_comprobante"`
	MontoTotal        string `json:"monto_total"`
}

// RechazarComprobanteRequest rejects a transfer receipt.
type RechazarComprobanteRequest struct {
	Observacion string `json:"observacion"`
}

// ComprobanteTesoreroRequest registers a payment taken directly by the
// treasurer.
type ComprobanteTesoreroRequest struct {
	NumeroComprobante string  `json:"numero_comprobante"`
	Bombero           int64   `json:"bombero"`
	MesesPagados      []int64 `json:"meses_pagados"`
	MontoTotal        float64 `json:"monto_total"`
}

// DefaultRechazoObservacion is sent when a receipt is rejected without a note.
const DefaultRechazoObservacion = "Rechazado por la tesorera"
