package security

import (
	"errors"

	"github.com/usforever/api/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// Hash password hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// helper that compares a bcrypt hash with a plaintext password.

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// HashNewPassword is what the user stores call before inserting a row.
// A missing password, or one bcrypt refuses, is a validation failure for op.
func HashNewPassword(op string, plain *string) (string, error) {
	if plain == nil {
		return "", repo.Validation(op, "password is required")
	}

	hash, err := HashPassword(*plain)

	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", repo.Validation(op, "password must be at most 72 bytes")
		}

		return "", err
	}

	return hash, nil
}
