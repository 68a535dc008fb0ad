package firesdk

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// ListTiposPermitidos returns the document categories the API accepts.
func (s *Session) ListTiposPermitidos(ctx context.Context) ([]TipoArchivo, error) {
	var tipos []TipoArchivo
	if err := s.Do(ctx, Request{Path: "/archivo/tipos-permitidos/"}, &tipos); err != nil {
		return nil, err
	}
	return tipos, nil
}

// ListArchivos returns uploaded documents, optionally of one category.
func (s *Session) ListArchivos(ctx context.Context, tipo string) ([]Archivo, error) {
	query := url.Values{}
	if tipo != "" {
		query.Set("tipo", tipo)
	}

	var archivos []Archivo
	if err := s.Do(ctx, Request{Path: "/archivos/", Query: query}, &archivos); err != nil {
		return nil, err
	}
	return archivos, nil
}

// UploadArchivo uploads a document.
func (s *Session) UploadArchivo(ctx context.Context, req UploadArchivoRequest) (*Archivo, error) {
	if req.Tipo == "" || req.Nombre == "" {
		return nil, errors.New("firesdk: archivo requires tipo and nombre")
	}

	file := req.File
	file.Field = "archivo"

	form := NewForm().
		Add("tipo", req.Tipo).
		Add("nombre", req.Nombre).
		AddFile(file)
	if req.Descripcion != "" {
		form.Add("descripcion", req.Descripcion)
	}

	var archivo Archivo
	if err := s.Do(ctx, Request{Method: http.MethodPost, Path: "/archivos/", Form: form}, &archivo); err != nil {
		return nil, err
	}
	return &archivo, nil
}
