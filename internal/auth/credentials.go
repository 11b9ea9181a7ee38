package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single configured admin account. The password may be
// given in plain text or as a bcrypt hash.
type Credentials struct {
	email    string
	password string
}

func NewCredentials(email, password string) Credentials {
	return Credentials{
		email:    normalizeEmail(email),
		password: password,
	}
}

func (c Credentials) Email() string {
	return c.email
}

// Check reports whether email and password match the configured account.
func (c Credentials) Check(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(normalizeEmail(email)), []byte(c.email)) == 1

	var passwordOK bool
	if isBcryptHash(c.password) {
		passwordOK = bcrypt.CompareHashAndPassword([]byte(c.password), []byte(password)) == nil
	} else {
		passwordOK = subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	}
	return emailOK && passwordOK
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
