package auth

import (
	"fmt"
	"os"
	"strings"

	"agrotrust/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Verifier resolves a bearer credential to an opaque subject identifier.
// The engine never inspects the subject beyond equality.
type Verifier interface {
	ValidateToken(authHeader string) (string, bool)
}

// JWTVerifier verifies HS256 tokens minted by the external identity
// provider. The audience is fixed to "authenticated", matching the
// provider's access tokens.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWT verifier using the shared secret from
// the environment
func NewJWTVerifier() *JWTVerifier {
	secret := os.Getenv("SUPABASE_JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key" // Default for development
	}
	return &JWTVerifier{secret: []byte(secret)}
}

// ExtractSubject verifies the token and returns its subject claim
func (v *JWTVerifier) ExtractSubject(tokenString string) (string, error) {
	// Remove "Bearer " prefix if present
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Verify the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithAudience("authenticated"))

	if err != nil {
		return "", fmt.Errorf("failed to verify token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("no sub claim in token")
	}

	return sub, nil
}

// ValidateToken is a middleware-friendly function that validates a JWT token
func (v *JWTVerifier) ValidateToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}

	sub, err := v.ExtractSubject(authHeader)
	if err != nil {
		logger.Debug("JWT validation error", zap.Error(err))
		return "", false
	}

	return sub, true
}

// MockVerifier accepts any non-empty header and returns a fixed subject.
// For development and tests only.
type MockVerifier struct {
	Subject string
}

func NewMockVerifier(subject string) *MockVerifier {
	return &MockVerifier{Subject: subject}
}

func (m *MockVerifier) ValidateToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}
	return m.Subject, true
}
