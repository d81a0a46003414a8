package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndValidateJWT(t *testing.T) {
	claims := jwt.MapClaims{
		"role": "admin",
		"type": "admin_auth",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	token, err := SignJWT(claims, "secret")
	require.NoError(t, err)

	parsed, err := ValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin", parsed["role"])
	assert.Equal(t, "admin_auth", parsed["type"])
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := SignJWT(jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, "secret")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	token, err := SignJWT(jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()}, "secret")
	require.NoError(t, err)

	_, err = ValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestValidateJWTRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": "admin"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateJWT(raw, "secret")
	assert.Error(t, err)
}

func TestGenerateULID(t *testing.T) {
	a := GenerateULID()
	b := GenerateULID()

	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
}

func TestGenerateSecureKey(t *testing.T) {
	key, err := GenerateSecureKey(64)
	require.NoError(t, err)
	assert.Len(t, key, 64)
}
