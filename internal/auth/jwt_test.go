package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret, subject, audience string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": subject,
		"aud": audience,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestExtractSubject(t *testing.T) {
	verifier := &JWTVerifier{secret: []byte("test-secret")}

	t.Run("valid token", func(t *testing.T) {
		token := signTestToken(t, "test-secret", "subject-123", "authenticated")

		sub, err := verifier.ExtractSubject("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "subject-123", sub)
	})

	t.Run("accepts token without bearer prefix", func(t *testing.T) {
		token := signTestToken(t, "test-secret", "subject-123", "authenticated")

		sub, err := verifier.ExtractSubject(token)
		require.NoError(t, err)
		assert.Equal(t, "subject-123", sub)
	})

	t.Run("rejects wrong secret", func(t *testing.T) {
		token := signTestToken(t, "other-secret", "subject-123", "authenticated")

		_, err := verifier.ExtractSubject(token)
		assert.Error(t, err)
	})

	t.Run("rejects wrong audience", func(t *testing.T) {
		token := signTestToken(t, "test-secret", "subject-123", "anon")

		_, err := verifier.ExtractSubject(token)
		assert.Error(t, err)
	})

	t.Run("rejects token without subject", func(t *testing.T) {
		claims := jwt.MapClaims{
			"aud": "authenticated",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = verifier.ExtractSubject(signed)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := verifier.ExtractSubject("not-a-token")
		assert.Error(t, err)
	})
}

func TestValidateToken(t *testing.T) {
	verifier := &JWTVerifier{secret: []byte("test-secret")}

	sub, ok := verifier.ValidateToken("")
	assert.False(t, ok)
	assert.Empty(t, sub)

	token := signTestToken(t, "test-secret", "subject-123", "authenticated")
	sub, ok = verifier.ValidateToken("Bearer " + token)
	assert.True(t, ok)
	assert.Equal(t, "subject-123", sub)
}

func TestMockVerifier(t *testing.T) {
	mock := NewMockVerifier("subject-mock")

	sub, ok := mock.ValidateToken("Bearer anything")
	assert.True(t, ok)
	assert.Equal(t, "subject-mock", sub)

	_, ok = mock.ValidateToken("")
	assert.False(t, ok)
}
