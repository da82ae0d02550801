package adminauth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 120_000
	hashKeyLen     = 32
	saltLen        = 16
)

// hashPassword derives the stored credential material for a password under a
// salt. PBKDF2-SHA256 with a fixed work factor; the digest is base64-encoded
// so records stay printable. The salt is the base64 text produced by newSalt,
// fed to the KDF as-is.
func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), hashIterations, hashKeyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}

// newSalt returns a fresh per-account salt: 16 bytes of crypto/rand entropy,
// base64-encoded. Never reused across accounts.
func newSalt() (string, error) {
	buf := make([]byte, saltLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("adminauth: generate salt: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// subtleCompare reports whether a and b are equal without leaking the position
// of the first difference. Length is not secret here; digests and tags being
// compared have fixed encoded lengths.
func subtleCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
