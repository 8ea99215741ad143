package auth

import (
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// HashPassword hashes a cleartext password for storage. Empty passwords are
// rejected; accounts without a password simply store no hash at all.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePasswordAndHash checks a cleartext password against a stored hash,
// returning ErrMismatchedHashAndPassword when they do not match.
func ComparePasswordAndHash(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedHashAndPassword
	}

	return err
}

// RandomPasswordHash produces the hash of a throwaway random password, used
// to fill the password column for accounts created without one.
func RandomPasswordHash() string {
	hash, err := HashPassword(uuid.NewString())
	if err != nil {
		return RandomPasswordHash()
	}
	return hash
}
