package firesdk

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		client, got := newTestAPI(t, http.StatusOK, `{"access": "a.b.c", "refresh": "r"}`)

		tokens, err := client.Login(context.Background(), "12345678-9", "secret")
		require.NoError(t, err)
		require.Equal(t, "a.b.c", tokens.Access)
		require.Equal(t, "r", tokens.Refresh)

		seen := got.last()
		require.Equal(t, http.MethodPost, seen.method)
		require.Equal(t, "/api/token/", seen.path)
		require.JSONEq(t, `{"rut": "12345678-9", "password": "secret"}`, string(seen.body))
		require.Empty(t, seen.header.Get("Authorization"))
	})

	t.Run("rejected credentials", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusUnauthorized, `{"detail": "No active account"}`)

		called := false
		client.OnUnauthorized = func(context.Context) { called = true }

		_, err := client.Login(context.Background(), "1-9", "bad")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		require.False(t, called)
	})

	t.Run("server failure keeps request error", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusInternalServerError, `oops`)

		_, err := client.Login(context.Background(), "1-9", "pw")
		require.NotErrorIs(t, err, ErrInvalidCredentials)
		require.Equal(t, http.StatusInternalServerError, StatusCode(err))
	})

	t.Run("missing access token", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusOK, `{"refresh": "r"}`)

		_, err := client.Login(context.Background(), "1-9", "pw")
		require.ErrorIs(t, err, ErrDecode)
	})
}

func TestLogin_RateLimited(t *testing.T) {
	t.Parallel()

	client, _ := newTestAPI(t, http.StatusUnauthorized, ``)
	client.SetCredentialRate(1)

	_, err := client.Login(context.Background(), "1-9", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = client.Login(context.Background(), "1-9", "pw")
	require.ErrorIs(t, err, ErrRateLimited)

	client.SetCredentialRate(0)
	_, err = client.Login(context.Background(), "1-9", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPasswordReset(t *testing.T) {
	t.Parallel()

	t.Run("request", func(t *testing.T) {
		client, got := newTestAPI(t, http.StatusOK, `{"detail": "ok"}`)

		require.NoError(t, client.RequestPasswordReset(context.Background(), "1-9"))
		require.Equal(t, "/api/password-reset/request/", got.last().path)
		require.JSONEq(t, `{"rut": "1-9"}`, string(got.last().body))
	})

	t.Run("confirm error message", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusBadRequest, `{"new_password_confirm": ["Las contraseñas no coinciden."]}`)

		err := client.ConfirmPasswordReset(context.Background(), PasswordResetConfirm{
			UID: "MQ", Token: "t", NewPassword: "a", NewPasswordConfirm: "b",
		})
		require.EqualError(t, err, "Error 400: Las contraseñas no coinciden.")
	})

	t.Run("confirm fallback message", func(t *testing.T) {
		client, _ := newTestAPI(t, http.StatusBadRequest, ``)

		err := client.ConfirmPasswordReset(context.Background(), PasswordResetConfirm{})
		require.EqualError(t, err, "Error 400: No se pudo actualizar la contraseña.")
	})
}

func TestPasswordResetConfirm_WireNames(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(PasswordResetConfirm{UID: "u", Token: "t", NewPassword: "p", NewPasswordConfirm: "p"})
	require.NoError(t, err)
	require.JSONEq(t, `{"uid":"u","token":"t","new_password":"p","new_password_confirm":"p"}`, string(b))
}
