package adminauth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// tokenPayload is the session assertion carried inside a bearer token.
// Timestamps are Unix milliseconds.
type tokenPayload struct {
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// codec issues and verifies self-contained bearer tokens. The wire format is
// base64url(JSON payload) + "." + base64url(HMAC-SHA256 tag), unpadded, with
// the tag computed over the encoded payload segment rather than the raw
// struct.
type codec struct {
	secret []byte
	now    func() time.Time
}

func (c *codec) timeNow() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// Issue mints a token for email valid for tokenTTL from now.
func (c *codec) Issue(email string) (string, error) {
	now := c.timeNow()
	raw, err := json.Marshal(tokenPayload{
		Email:     email,
		IssuedAt:  now.UnixMilli(),
		ExpiresAt: now.Add(tokenTTL).UnixMilli(),
	})
	if err != nil {
		return "", err
	}
	seg := base64.RawURLEncoding.EncodeToString(raw)
	return seg + "." + base64.RawURLEncoding.EncodeToString(c.sign(seg)), nil
}

func (c *codec) sign(payloadSegment string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payloadSegment))
	return mac.Sum(nil)
}

// Verify checks shape and tag before touching the payload, then decodes it
// and checks freshness. The payload is never parsed until the tag matches, so
// nothing downstream ever acts on unauthenticated data.
func (c *codec) Verify(token string) (tokenPayload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return tokenPayload{}, ErrInvalidToken
	}

	expected := base64.RawURLEncoding.EncodeToString(c.sign(parts[0]))
	if !subtleCompare(expected, parts[1]) {
		return tokenPayload{}, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return tokenPayload{}, ErrInvalidToken
	}
	var payload tokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return tokenPayload{}, ErrInvalidToken
	}
	if payload.Email == "" || payload.ExpiresAt == 0 {
		return tokenPayload{}, ErrInvalidToken
	}
	if c.timeNow().UnixMilli() > payload.ExpiresAt {
		return tokenPayload{}, ErrTokenExpired
	}
	return payload, nil
}
