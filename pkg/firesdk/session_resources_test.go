package firesdk

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpdateMe(t *testing.T) {
	t.Parallel()

	client, parts := newMultipartAPI(t, `{"id": 1}`)

	_, err := client.WithToken("abc").UpdateMe(context.Background(), UpdateMeRequest{
		Fields: map[string]string{"telefono": "+56911111111", "nombres": "Ana"},
		Image:  &FormFile{Filename: "yo.png", ContentType: "image/png", Content: strings.NewReader("png")},
	})
	require.NoError(t, err)

	require.Equal(t, []seenPart{
		{field: "nombres", content: "Ana"},
		{field: "telefono", content: "+56911111111"},
		{field: "imagen", filename: "yo.png", contentType: "image/png", content: "png"},
	}, parts())
}

func TestUpdateMe_Empty(t *testing.T) {
	t.Parallel()

	_, err := NewSDKClient("").WithToken("abc").UpdateMe(context.Background(), UpdateMeRequest{})
	require.Error(t, err)
}

func TestListCitacionesFuturas(t *testing.T) {
	t.Parallel()

	client, got := newTestAPI(t, http.StatusOK, `[{"id": 1, "nombre": "Academia", "autor": 4}]`)

	today := time.Date(2024, time.March, 9, 15, 0, 0, 0, time.UTC)
	citaciones, err := client.WithToken("abc").ListCitacionesFuturas(context.Background(), today)
	require.NoError(t, err)
	require.Len(t, citaciones, 1)
	require.Equal(t, FlexString("4"), citaciones[0].Autor)
	require.Equal(t, "fecha_desde=2024-03-09", got.last().query)
}

func TestFindLicencia(t *testing.T) {
	t.Parallel()

	t.Run("none", func(t *testing.T) {
		client, got := newTestAPI(t, http.StatusOK, `[]`)

		lic, err := client.WithToken("abc").FindLicencia(context.Background(), "3", "10")
		require.NoError(t, err)
		require.Nil(t, lic)
		require.Equal(t, "autor=3&citacion=10", got.last().query)
	})

	t.Run("existing", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusOK, `[{"id": 5, "motivo": "Trabajo"}]`)

		lic, err := client.WithToken("abc").FindLicencia(context.Background(), "3", "10")
		require.NoError(t, err)
		require.Equal(t, "Trabajo", lic.Motivo)
	})
}

func TestListEmergencias(t *testing.T) {
	t.Parallel()

	client, got := newTestAPI(t, http.StatusOK, `[{"id": 2, "tipo": "emergencia", "evento": {"nombre": "Incendio", "clave": "10-0"}}]`)

	listas, err := client.WithToken("abc").ListEmergencias(context.Background())
	require.NoError(t, err)
	require.Len(t, listas, 1)
	require.Equal(t, "10-0", listas[0].Evento.Clave)
	require.Equal(t, "content_type=emergencia", got.last().query)
}

func TestAttendanceEndpoints(t *testing.T) {
	t.Parallel()

	client, got := newTestAPI(t, http.StatusOK, `{"total": 3}`)
	session := client.WithToken("abc")

	raw, err := session.UserAttendance(context.Background(), "7", 2024)
	require.NoError(t, err)
	require.JSONEq(t, `{"total": 3}`, string(raw))
	require.Equal(t, "/api/asistencia/usuario/7", got.last().path)
	require.Equal(t, "anio=2024", got.last().query)

	_, err = session.CitacionAttendanceSummary(context.Background(), "12")
	require.NoError(t, err)
	require.Equal(t, "/api/asistencia/resumen/12", got.last().path)
}

func TestComprobanteReview(t *testing.T) {
	t.Parallel()

	client, got := newTestAPI(t, http.StatusOK, `{}`)
	session := client.WithToken("abc")

	require.NoError(t, session.AprobarComprobante(context.Background(), 4, AprobarComprobanteRequest{NumeroComprobante: "N-1", MontoTotal: "5000"}))
	require.Equal(t, http.MethodPatch, got.last().method)
	require.Equal(t, "/api/comprobantes/transferencia/4/aprobar/", got.last().path)
	require.JSONEq(t, `{"numero_comprobante": "N-1", "monto_total": "5000"}`, string(got.last().body))

	require.NoError(t, session.RechazarComprobante(context.Background(), 4, ""))
	require.Equal(t, "/api/comprobantes/transferencia/4/rechazar/", got.last().path)
	require.JSONEq(t, `{"observacion": "Rechazado por la tesorera"}`, string(got.last().body))
}
