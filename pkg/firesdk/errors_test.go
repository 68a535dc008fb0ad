package firesdk

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail field", `{"detail": "No encontrado."}`, "No encontrado."},
		{"detail wins over other keys", `{"rut": ["x"], "detail": "d"}`, "d"},
		{"bare string", `"Solo texto"`, "Solo texto"},
		{"array of strings", `["uno", "dos"]`, "uno, dos"},
		{"first key array", `{"rut": ["Requerido.", "Inválido."], "password": ["z"]}`, "Requerido., Inválido."},
		{"first key in document order", `{"zeta": "primero", "alfa": "segundo"}`, "primero"},
		{"first key string", `{"non_field_errors": "Las contraseñas no coinciden."}`, "Las contraseñas no coinciden."},
		{"null detail falls back to raw", `{"detail": null, "uid": "malo"}`, `{"detail": null, "uid": "malo"}`},
		{"nested object falls back to raw", `{"a": {"b": 1}}`, `{"a": {"b": 1}}`},
		{"not json", `Internal Server Error`, "Internal Server Error"},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractErrorMessage([]byte(tt.body)))
		})
	}
}

func TestRequestError_Error(t *testing.T) {
	t.Parallel()

	err := &RequestError{StatusCode: http.StatusInternalServerError}
	require.Equal(t, "Error 500: Internal Server Error", err.Error())

	err.Message = "boom"
	require.Equal(t, "Error 500: boom", err.Error())
}

func TestStatusCode(t *testing.T) {
	t.Parallel()

	require.Zero(t, StatusCode(nil))
	require.Zero(t, StatusCode(ErrUnauthorized))
	require.Equal(t, http.StatusForbidden, StatusCode(parseErrorResponse(http.StatusForbidden, nil)))
}

func TestResolveBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "http://127.0.0.1:8000/api"},
		{"   ", "http://127.0.0.1:8000/api"},
		{"http://host:9999///", "http://host:9999/api"},
		{"  https://bomberos.example.cl  ", "https://bomberos.example.cl/api"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ResolveBaseURL(tt.in), "input %q", tt.in)
	}
}
