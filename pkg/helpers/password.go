package helpers

import (
	"crypto/rand"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// GenerateSalt returns a random per-user salt. The salt is stored next to the
// hash as opaque credential material.
func GenerateSalt() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashPassword hashes salt+plain with bcrypt.
func HashPassword(salt, plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(salt+plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against salt+plain.
func VerifyPassword(salt, plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(salt+plain)) == nil
}
