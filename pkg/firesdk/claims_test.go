package firesdk

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestParseAccessClaims(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"token_type": "access",
		"exp":        now.Add(5 * time.Minute).Unix(),
		"iat":        now.Unix(),
		"jti":        "abc123",
		"user_id":    42,
	})
	signed, err := token.SignedString([]byte("server-only-secret"))
	require.NoError(t, err)

	claims, err := ParseAccessClaims(signed)
	require.NoError(t, err)
	require.Equal(t, "access", claims.TokenType)
	require.Equal(t, FlexString("42"), claims.UserID)
	require.Equal(t, "abc123", claims.ID)

	require.False(t, claims.ExpiresWithin(time.Minute, now))
	require.True(t, claims.ExpiresWithin(10*time.Minute, now))
}

func TestParseAccessClaims_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseAccessClaims("")
	require.Error(t, err)

	_, err = ParseAccessClaims("not-a-jwt")
	require.Error(t, err)
}

func TestAccessClaims_NoExpiry(t *testing.T) {
	t.Parallel()

	var c AccessClaims
	require.False(t, c.ExpiresWithin(time.Hour, time.Now()))
}
