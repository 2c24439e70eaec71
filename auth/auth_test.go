// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	id1 := NewID()
	id2 := NewID()

	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("NewID() is not a UUID: %v", err)
	}
	if id1 == id2 {
		t.Error("NewID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		electionID string
		salt       string
	}{
		{"standard", "election123", "secret-salt"},
		{"empty election id", "", "salt"},
		{"empty salt", "election456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateAdminKey(tt.electionID, tt.salt)

			if key == "" {
				t.Error("GenerateAdminKey() returned empty string")
			}
			if key != GenerateAdminKey(tt.electionID, tt.salt) {
				t.Error("GenerateAdminKey() is not deterministic")
			}
			if strings.ContainsAny(key, "+/=") {
				t.Errorf("GenerateAdminKey() is not URL-safe: %s", key)
			}
			if tt.electionID != "" && key == GenerateAdminKey(tt.electionID+"x", tt.salt) {
				t.Error("GenerateAdminKey() produced same key for different election IDs")
			}
		})
	}
}

func TestValidateAdminKey(t *testing.T) {
	key := GenerateAdminKey("election1", "salt")

	tests := []struct {
		name       string
		electionID string
		key        string
		salt       string
		wantErr    bool
	}{
		{"valid", "election1", key, "salt", false},
		{"wrong election", "election2", key, "salt", true},
		{"wrong salt", "election1", key, "other", true},
		{"empty key", "election1", "", "salt", true},
		{"tampered key", "election1", key + "x", "salt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.electionID, tt.key, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err != ErrInvalidAdminKey {
				t.Errorf("expected ErrInvalidAdminKey, got %v", err)
			}
		})
	}
}

func TestGenerateVoterToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := GenerateVoterToken()
		if err != nil {
			t.Fatalf("GenerateVoterToken() error = %v", err)
		}
		// 24 bytes → 32 base64 characters, no padding
		if len(token) != 32 {
			t.Errorf("token length = %d, want 32", len(token))
		}
		if seen[token] {
			t.Fatal("GenerateVoterToken() produced a duplicate")
		}
		seen[token] = true
	}
}

func TestGenerateShareSlug(t *testing.T) {
	slug := GenerateShareSlug("election1", "salt")
	if slug == "" || len(slug) > 11 {
		t.Errorf("unexpected slug length: %q", slug)
	}
	for _, c := range slug {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			t.Errorf("slug contains non-alphanumeric char: %c", c)
		}
	}
	if slug != GenerateShareSlug("election1", "salt") {
		t.Error("GenerateShareSlug() is not deterministic")
	}
	if slug == GenerateShareSlug("election2", "salt") {
		t.Error("different elections produced the same slug")
	}
}

func TestAdminKeyAndSlugDiffer(t *testing.T) {
	// Same inputs, different purposes
	if GenerateAdminKey("e", "s") == GenerateShareSlug("e", "s") {
		t.Error("admin key and slug should not coincide")
	}
	if HashIP("e", "s") == GenerateShareSlug("e", "s") {
		t.Error("ip hash and slug should not coincide")
	}
}

func TestHashIP(t *testing.T) {
	h := HashIP("192.168.1.1", "salt")
	if len(h) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(h))
	}
	if h != HashIP("192.168.1.1", "salt") {
		t.Error("HashIP() is not deterministic")
	}
	if h == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() collided for different IPs")
	}
}

func TestBase62(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0"},
		{61, "Z"},
		{62, "10"},
		{^uint64(0), "lYGhA16ahyf"},
	}
	for _, tt := range tests {
		if got := base62(tt.in); got != tt.want {
			t.Errorf("base62(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
