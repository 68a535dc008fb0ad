package firesdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	pathToken                = "/token/"
	pathPasswordResetRequest = "/password-reset/request/"
	pathPasswordResetConfirm = "/password-reset/confirm/"
)

// Login exchanges a RUT and password for a token pair. A 400 or 401 from
// the API is reported as ErrInvalidCredentials; other failures keep their
// *RequestError.
func (c *SDKClient) Login(ctx context.Context, rut, password string) (*TokenPair, error) {
	if err := c.allowCredentialCall(); err != nil {
		return nil, err
	}

	var tokens TokenPair
	err := c.doJSON(ctx, http.MethodPost, pathToken, LoginRequest{Rut: rut, Password: password}, &tokens)
	if err != nil {
		switch StatusCode(err) {
		case http.StatusBadRequest, http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return nil, err
	}

	if strings.TrimSpace(tokens.Access) == "" {
		return nil, fmt.Errorf("%w: token response has no access token", ErrDecode)
	}

	return &tokens, nil
}

// RequestPasswordReset asks the API to send a reset link for rut.
func (c *SDKClient) RequestPasswordReset(ctx context.Context, rut string) error {
	if err := c.allowCredentialCall(); err != nil {
		return err
	}

	err := c.doJSON(ctx, http.MethodPost, pathPasswordResetRequest, PasswordResetRequest{Rut: rut}, nil)
	return withFallbackMessage(err, "No se pudo solicitar el restablecimiento.")
}

// ConfirmPasswordReset sets a new password using the uid/token pair from a
// reset link.
func (c *SDKClient) ConfirmPasswordReset(ctx context.Context, req PasswordResetConfirm) error {
	if err := c.allowCredentialCall(); err != nil {
		return err
	}

	err := c.doJSON(ctx, http.MethodPost, pathPasswordResetConfirm, req, nil)
	return withFallbackMessage(err, "No se pudo actualizar la contraseña.")
}

// FetchProfile returns the raw profile document for a candidate access
// token. The session store uses it to validate a token before committing it.
// A 401 here is not a session expiry: nothing is committed yet.
func (c *SDKClient) FetchProfile(ctx context.Context, accessToken string) (json.RawMessage, error) {
	probe := *c
	probe.OnUnauthorized = nil

	var raw json.RawMessage
	if err := probe.WithToken(accessToken).Do(ctx, Request{Method: http.MethodGet, Path: pathMe}, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *SDKClient) allowCredentialCall() error {
	if c.credentials != nil && !c.credentials.Allow() {
		return ErrRateLimited
	}
	return nil
}

// withFallbackMessage fills an empty extracted message with a default.
func withFallbackMessage(err error, fallback string) error {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message == "" {
		reqErr.Message = fallback
	}
	return err
}
