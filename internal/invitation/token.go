package invitation

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL is how long an invite link stays valid after it is issued.
const TTL = 7 * 24 * time.Hour

const tokenBytes = 32

// Token is a freshly issued invite token. Raw goes into the accept link and is
// never persisted; Hash is what the store keeps.
type Token struct {
	Raw  string
	Hash string
}

func NewToken() (Token, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return Token{}, fmt.Errorf("failed to generate invite token: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)
	return Token{Raw: raw, Hash: Hash(raw)}, nil
}

// Hash returns the hex sha256 of a raw token.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Matches reports whether raw hashes to the stored hash.
func Matches(hash, raw string) bool {
	if raw == "" || hash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(hash), []byte(Hash(raw))) == 1
}

// Expired reports whether an invite issued with the given expiry is no longer usable at now.
func Expired(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || !now.Before(*expiresAt)
}
