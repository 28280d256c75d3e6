package hash

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/sweetslice/go-backend/pkg/e"
)

const (
	bcryptCost        = 12
	minPasswordLength = 6
)

// Password hashes a plaintext password with bcrypt.
func Password(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", e.NewValidationError("password", "password must be at least 6 characters long")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Compare reports whether password matches the stored bcrypt hash.
func Compare(password, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
