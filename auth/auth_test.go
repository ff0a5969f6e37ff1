// Copyright (c) 2025 the KU Polls authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("GenerateSessionToken() error = %v", err)
	}

	if token == "" {
		t.Fatal("GenerateSessionToken() returned empty string")
	}

	// 24 bytes base64-encoded without padding = 32 characters
	if len(token) != 32 {
		t.Errorf("GenerateSessionToken() length = %d, want 32", len(token))
	}

	// URL-safe: no padding, no '+' or '/'
	if strings.ContainsAny(token, "=+/") {
		t.Errorf("GenerateSessionToken() contains non-URL-safe characters: %s", token)
	}

	// Two tokens should be different
	token2, _ := GenerateSessionToken()
	if token == token2 {
		t.Error("GenerateSessionToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("FatChance!")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "FatChance!" {
		t.Error("HashPassword() returned the plaintext password")
	}

	if err := CheckPassword(hash, "FatChance!"); err != nil {
		t.Errorf("CheckPassword() with correct password = %v, want nil", err)
	}

	if err := CheckPassword(hash, "WrongPassword"); err != ErrPasswordMismatch {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrPasswordMismatch", err)
	}

	// Hashes are salted, so hashing twice differs but both verify
	hash2, _ := HashPassword("FatChance!")
	if hash == hash2 {
		t.Error("HashPassword() produced identical hashes for two calls")
	}
	if err := CheckPassword(hash2, "FatChance!"); err != nil {
		t.Errorf("CheckPassword() on second hash = %v, want nil", err)
	}
}

func TestValidateAdminKey(t *testing.T) {
	tests := []struct {
		name       string
		provided   string
		configured string
		wantErr    bool
	}{
		{"matching keys", "secret-key", "secret-key", false},
		{"wrong key", "wrong-key", "secret-key", true},
		{"empty provided", "", "secret-key", true},
		{"empty configured rejects everything", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminKey(tt.provided, tt.configured)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAdminKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "test-salt")

	// 8 bytes hex-encoded = 16 characters
	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}

	// Deterministic
	if hash != HashIP("192.168.1.1", "test-salt") {
		t.Error("HashIP() is not deterministic")
	}

	// Different IPs or salts produce different hashes
	if hash == HashIP("192.168.1.2", "test-salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if hash == HashIP("192.168.1.1", "other-salt") {
		t.Error("HashIP() produced same hash for different salts")
	}
}
