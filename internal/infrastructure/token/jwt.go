package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sweetslice/go-backend/internal/cfg"
	"github.com/sweetslice/go-backend/internal/domain"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/e"
)

// Claims carried inside a signed access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates HMAC-signed access tokens.
type JWTService struct {
	secretKey []byte
	accessTTL time.Duration
}

func NewJWTService(cfg *cfg.JWTCfg) *JWTService {
	return &JWTService{
		secretKey: []byte(cfg.Secret),
		accessTTL: cfg.AccessTTL,
	}
}

// Generate signs a token for the user and returns it with its expiry.
func (s *JWTService) Generate(user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.accessTTL)

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// Validate parses and verifies a token, rejecting anything not HMAC-signed
// with our secret. Expired and malformed tokens both resolve to ErrInvalidToken.
func (s *JWTService) Validate(tokenString string) (*usecase.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, e.ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, e.ErrInvalidToken
		}
		return nil, e.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, e.ErrInvalidToken
	}

	return &usecase.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
