package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweetslice/go-backend/internal/cfg"
	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/pkg/e"
)

func newTestJWTService(secret string, ttl time.Duration) *JWTService {
	return NewJWTService(&cfg.JWTCfg{Secret: secret, AccessTTL: ttl})
}

func testUser() *domain.User {
	return &domain.User{
		ID:    "user-123",
		Email: "ann@example.com",
		Role:  domain.RoleAdmin,
	}
}

func TestJWTService_Generate(t *testing.T) {
	service := newTestJWTService("test-secret-key", 15*time.Minute)

	token, expiresAt, err := service.Generate(testUser())

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestJWTService_Validate_RoundTrip(t *testing.T) {
	service := newTestJWTService("test-secret-key", 15*time.Minute)
	user := testUser()

	token, _, err := service.Generate(user)
	require.NoError(t, err)

	principal, err := service.Validate(token)

	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, user.Email, principal.Email)
	assert.Equal(t, user.Role, principal.Role)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	service := newTestJWTService("test-secret-key", 1*time.Millisecond)

	token, _, err := service.Generate(testUser())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	principal, err := service.Validate(token)

	assert.ErrorIs(t, err, e.ErrInvalidToken)
	assert.Nil(t, principal)
}

func TestJWTService_Validate_Malformed(t *testing.T) {
	service := newTestJWTService("test-secret-key", 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"random string", "not-a-valid-token"},
		{"truncated JWT", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.invalid.signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal, err := service.Validate(tt.token)
			assert.ErrorIs(t, err, e.ErrInvalidToken)
			assert.Nil(t, principal)
		})
	}
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	service1 := newTestJWTService("secret-key-1", 15*time.Minute)
	service2 := newTestJWTService("secret-key-2", 15*time.Minute)

	token, _, err := service1.Generate(testUser())
	require.NoError(t, err)

	principal, err := service2.Validate(token)

	assert.ErrorIs(t, err, e.ErrInvalidToken)
	assert.Nil(t, principal)
}

func TestJWTService_Validate_WrongAlgorithm(t *testing.T) {
	service := newTestJWTService("test-secret-key", 15*time.Minute)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: "user-123",
		Email:  "ann@example.com",
		Role:   domain.RoleAdmin,
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	principal, err := service.Validate(tokenString)

	assert.ErrorIs(t, err, e.ErrInvalidToken)
	assert.Nil(t, principal)
}
