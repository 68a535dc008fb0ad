package firesdk

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Form is a multipart/form-data body. Fields keep insertion order and may
// repeat (e.g. several "meses_pagados").
type Form struct {
	fields []formField
	files  []FormFile
}

type formField struct {
	name, value string
}

// FormFile is a file part of a Form.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string // optional, defaults to application/octet-stream
	Content     io.Reader
}

// NewForm returns an empty multipart form.
func NewForm() *Form { return &Form{} }

// Add appends a text field.
func (f *Form) Add(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part.
func (f *Form) AddFile(file FormFile) *Form {
	f.files = append(f.files, file)
	return f
}

// Values returns every value added under name. Test helper.
func (f *Form) Values(name string) []string {
	var out []string
	for _, field := range f.fields {
		if field.name == name {
			out = append(out, field.value)
		}
	}
	return out
}

// encode renders the form and returns the body with its boundary-bearing
// content type.
func (f *Form) encode() (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", field.name, err)
		}
	}

	for _, file := range f.files {
		if file.Content == nil {
			return nil, "", fmt.Errorf("form file %q has no content", file.Field)
		}

		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			escapeQuotes(file.Field), escapeQuotes(file.Filename)))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %q: %w", file.Field, err)
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to copy form file %q: %w", file.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
