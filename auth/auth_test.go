// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"correct", "correct horse", false},
		{"wrong", "battery staple", true},
		{"empty", "", true},
		{"case differs", "Correct horse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(hash, tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPassword) {
				t.Errorf("CheckPassword() error = %v, want ErrInvalidPassword", err)
			}
		})
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	if err := CheckPassword("not-a-bcrypt-hash", "anything"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("CheckPassword() error = %v, want ErrInvalidPassword", err)
	}
}

func TestAdminToken_RoundTrip(t *testing.T) {
	now := time.Now()
	token, expiresAt, err := IssueAdminToken("secret", time.Hour, now)
	if err != nil {
		t.Fatalf("IssueAdminToken() error = %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q is not a compact JWT", token)
	}
	if d := expiresAt.Sub(now); d < 59*time.Minute || d > time.Hour {
		t.Errorf("expiresAt is %v after issue, want about 1h", d)
	}

	if err := ValidateAdminToken(token, "secret"); err != nil {
		t.Errorf("ValidateAdminToken() error = %v", err)
	}
}

func TestValidateAdminToken_Rejects(t *testing.T) {
	valid, _, _ := IssueAdminToken("secret", time.Hour, time.Now())
	expired, _, _ := IssueAdminToken("secret", time.Hour, time.Now().Add(-2*time.Hour))

	otherSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   "participant",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	noExpiry, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:  issuer,
		Subject: AdminSubject,
	}).SignedString([]byte("secret"))

	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   AdminSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"wrong secret", valid, "other"},
		{"expired", expired, "secret"},
		{"other subject", otherSubject, "secret"},
		{"no expiry", noExpiry, "secret"},
		{"other algorithm", hs512, "secret"},
		{"garbage", "not.a.token", "secret"},
		{"empty", "", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAdminToken(tt.token, tt.secret)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateAdminToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestAdminToken_EmptySecret(t *testing.T) {
	if _, _, err := IssueAdminToken("", time.Hour, time.Now()); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("IssueAdminToken() error = %v, want ErrMissingSecret", err)
	}
	if err := ValidateAdminToken("x.y.z", ""); !errors.Is(err, ErrMissingSecret) {
		t.Errorf("ValidateAdminToken() error = %v, want ErrMissingSecret", err)
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt"},
		{"ipv6", "2001:db8::1", "salt"},
		{"localhost", "127.0.0.1", "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)
			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}
			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}
			if hash == HashIP(tt.ip, "other-salt") {
				t.Error("HashIP() ignores the salt")
			}
		})
	}
}
