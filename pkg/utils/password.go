package utils

import "golang.org/x/crypto/bcrypt"

// Cost above the bcrypt default; profile credentials are long-lived and
// hashing happens only on registration, login and password reset.
const bcryptCost = 12

// HashPassword hashes a profile's plain text password for storage
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// ComparePassword reports whether the plain text password matches the
// stored profile hash
func ComparePassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
