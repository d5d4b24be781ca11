package utils // package utils provides helper functions for session tokens and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for session tokens
	"encoding/hex"  // hex encoding functions
	"time"          // expiration arithmetic
)

// SessionToken carries an opaque credential handed to the browser in a
// cookie.  The Raw field is the value the client stores; only its
// SHA-256 hash is persisted server-side.  Exp records when the session
// ends regardless of activity.
type SessionToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// NewSessionToken returns a cryptographically secure random token and
// its expiration time.  ttlHours controls how long the session stays
// valid.
func NewSessionToken(ttlHours int) (SessionToken, error) {
	raw, err := randomHex(32) // 32 bytes -> 64 hex chars
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour),
	}, nil
}

// HashSessionRaw returns the SHA-256 hash of the raw session token as a
// hex string.  Storing only the hash prevents stolen database rows from
// being replayed as live sessions.
func HashSessionRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
