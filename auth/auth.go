// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// HMAC purposes keep admin keys, slugs and IP hashes from sharing a derivation
const (
	purposeAdmin = "admin-key"
	purposeSlug  = "share-slug"
	purposeIP    = "ip-hash"
)

// NewID returns a random UUID for database records
func NewID() string {
	return uuid.NewString()
}

// GenerateAdminKey derives the admin key for an election.
// It is deterministic, so it never needs to be stored.
func GenerateAdminKey(electionID, salt string) string {
	sum := sign(purposeAdmin, electionID, salt)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateAdminKey checks if the provided admin key is valid for the election
func ValidateAdminKey(electionID, adminKey, salt string) error {
	expected := GenerateAdminKey(electionID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateVoterToken creates a random 192-bit voter secret
func GenerateVoterToken() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate voter token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// GenerateShareSlug derives the short public slug for an election
func GenerateShareSlug(electionID, salt string) string {
	sum := sign(purposeSlug, electionID, salt)
	return base62(binary.BigEndian.Uint64(sum[:8]))
}

// HashIP creates a one-way hash of an IP address for privacy
func HashIP(ip, salt string) string {
	sum := sign(purposeIP, ip, salt)
	return hex.EncodeToString(sum[:8])
}

func sign(purpose, value, salt string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(purpose))
	h.Write([]byte{0})
	h.Write([]byte(value))
	return h.Sum(nil)
}

// base62 encodes n with 0-9, a-z, A-Z
func base62(n uint64) string {
	const digits = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if n == 0 {
		return "0"
	}

	var buf [11]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%62]
		n /= 62
	}
	return string(buf[i:])
}
