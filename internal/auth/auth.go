// Package auth implements the credential gate: a username plus a SHA-256
// password digest, compared in constant time.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/samruddhip/pdfchat/internal/domain"
)

// Gate validates submitted credentials against the configured record.
type Gate struct {
	username     string
	passwordHash string
}

// NewGate creates a gate for the configured credential record.
func NewGate(username, passwordHash string) *Gate {
	return &Gate{username: username, passwordHash: passwordHash}
}

// HashPassword returns the hex-encoded SHA-256 digest of a password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Check reports whether the submitted credentials match the configured
// record. A gate with missing configuration fails closed and surfaces a
// ConfigError so the operator notices; it never authenticates.
func (g *Gate) Check(username, password string) (bool, error) {
	if g.username == "" || g.passwordHash == "" {
		return false, &domain.ConfigError{Key: "APP_USERNAME/APP_PASSWORD_HASH", Want: "configured credential record"}
	}
	digest := HashPassword(password)
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(digest), []byte(g.passwordHash)) == 1
	return userOK && passOK, nil
}
