package jwt

import (
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidate_RoundTrip(t *testing.T) {
	j := NewJWT(testSecret)

	token, err := j.Generate("user-1", "ash@example.com", "ash", true)
	require.NoError(t, err)

	claims, err := j.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ash@example.com", claims.Email)
	assert.Equal(t, "ash", claims.Username)
	assert.True(t, claims.IsOnboarded)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewJWT(testSecret).Generate("user-1", "a@b.c", "a", false)
	require.NoError(t, err)

	_, err = NewJWT("other-secret").Validate(token)
	assert.Error(t, err)
}

func TestValidate_CorruptedSignature(t *testing.T) {
	j := NewJWT(testSecret)
	token, err := j.Generate("user-1", "a@b.c", "a", false)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	corrupted := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = j.Validate(corrupted)
	assert.Error(t, err)
}

func TestValidate_Expired(t *testing.T) {
	claims := &Claims{
		UserID:   "user-1",
		Email:    "a@b.c",
		Username: "a",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWT(testSecret).Validate(token)
	assert.Error(t, err)
}

func TestValidate_Malformed(t *testing.T) {
	_, err := NewJWT(testSecret).Validate("not.a.jwt")
	assert.Error(t, err)

	_, err = NewJWT(testSecret).Validate("")
	assert.Error(t, err)
}

func TestValidate_RejectsNonHMACAlgorithm(t *testing.T) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, &Claims{UserID: "user-1"})
	signed, err := token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWT(testSecret).Validate(signed)
	assert.Error(t, err)
}
