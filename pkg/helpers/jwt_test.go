package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, exp, err := m.Generate("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestJWTRejectsForeignAndExpired(t *testing.T) {
	tok, _, err := NewJWTManager("other", time.Hour).Generate("u")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Parse(tok)
	assert.Error(t, err)

	expired, _, err := NewJWTManager("secret", -time.Minute).Generate("u")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Parse(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u"})
	s, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Parse(s)
	assert.Error(t, err)
}
