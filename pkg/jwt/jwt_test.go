package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("secret_key", time.Minute, "touristplaces")
	require.NoError(t, err)

	token, err := issuer.CreateToken("admin")
	require.NoError(t, err)

	user, err := issuer.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user)
}

func TestRejects(t *testing.T) {
	issuer, err := NewIssuer("secret_key", time.Minute, "touristplaces")
	require.NoError(t, err)

	other, err := NewIssuer("another_key", time.Minute, "touristplaces")
	require.NoError(t, err)
	foreign, err := other.CreateToken("admin")
	require.NoError(t, err)

	expired, err := NewIssuer("secret_key", -time.Minute, "touristplaces")
	require.NoError(t, err)
	stale, err := expired.CreateToken("admin")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"username": "admin", "iss": "touristplaces"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":     "",
		"garbage":   "not.a.token",
		"wrong key": foreign,
		"expired":   stale,
		"alg none":  unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}

func TestEmptyKey(t *testing.T) {
	_, err := NewIssuer("", time.Minute, "x")
	assert.ErrorIs(t, err, ErrEmptyKey)
}
