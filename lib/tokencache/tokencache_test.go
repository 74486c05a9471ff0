// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package tokencache

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FahadRazzaq1121/postapp/lib/clock"
)

var epoch = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func newCache(t *testing.T, directory string, fake *clock.FakeClock) *Cache {
	t.Helper()
	cache, err := New(Config{Directory: directory, BaseURL: "http://localhost:8000/api", Clock: fake})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cache
}

func TestStoreLoadClear(t *testing.T) {
	directory := t.TempDir()
	cache := newCache(t, directory, clock.Fake(epoch))

	if _, err := cache.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load on empty cache = %v, want ErrNoToken", err)
	}
	if err := cache.Store("opaque-token-value"); err != nil {
		t.Fatalf("Store: %v", err)
	}

	data, err := os.ReadFile(cache.tokenPath)
	if err != nil {
		t.Fatalf("reading token file: %v", err)
	}
	if strings.Contains(string(data), "opaque-token-value") {
		t.Fatal("token stored in plaintext")
	}
	for _, path := range []string{cache.tokenPath, cache.identityPath} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("%s mode = %o, want 0600", path, info.Mode().Perm())
		}
	}

	// A second Cache over the same directory reads the same token.
	reopened := newCache(t, directory, clock.Fake(epoch))
	token, err := reopened.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "opaque-token-value" {
		t.Errorf("Token = %q", token)
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear on empty cache: %v", err)
	}
	if _, err := cache.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load after Clear = %v", err)
	}
}

func TestExpiredTokenIsEvicted(t *testing.T) {
	fake := clock.Fake(epoch)
	cache := newCache(t, t.TempDir(), fake)
	token := mintToken(t, jwt.MapClaims{
		"sub":  "64f1c0ffee",
		"role": "Admin",
		"exp":  epoch.Add(time.Hour).Unix(),
	})
	if err := cache.Store(token); err != nil {
		t.Fatalf("Store: %v", err)
	}

	if got, err := cache.Load(); err != nil || got != token {
		t.Fatalf("Load before expiry = %q, %v", got, err)
	}
	fake.Advance(time.Hour)
	if _, err := cache.Load(); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Load after expiry = %v, want ErrNoToken", err)
	}
	if _, err := os.Stat(cache.tokenPath); !os.IsNotExist(err) {
		t.Errorf("expired token file still present: %v", err)
	}
}

func TestScopeSeparatesBackends(t *testing.T) {
	t.Parallel()
	local := Scope("http://localhost:8000/api")
	if local != Scope("http://localhost:8000/api/") {
		t.Error("trailing slash changed the scope")
	}
	if local == Scope("https://admin.example.com/api") {
		t.Error("distinct backends share a scope")
	}
	if len(local) != 16 {
		t.Errorf("scope %q has length %d", local, len(local))
	}
}

func TestClaims(t *testing.T) {
	fake := clock.Fake(epoch)
	cache := newCache(t, t.TempDir(), fake)
	expiry := epoch.Add(24 * time.Hour)
	token := mintToken(t, jwt.MapClaims{
		"_id":   "64f1c0ffee",
		"email": "admin@example.com",
		"role":  "SuperAdmin",
		"exp":   expiry.Unix(),
	})
	if err := cache.Store(token); err != nil {
		t.Fatalf("Store: %v", err)
	}
	claims, err := cache.Claims()
	if err != nil {
		t.Fatalf("Claims: %v", err)
	}
	if claims.Subject != "64f1c0ffee" || claims.Role != "SuperAdmin" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.ExpiresAt.Equal(expiry) {
		t.Errorf("ExpiresAt = %v, want %v", claims.ExpiresAt, expiry)
	}

	if _, err := ParseClaims("opaque"); !errors.Is(err, ErrOpaqueToken) {
		t.Errorf("ParseClaims(opaque) = %v", err)
	}
}

func TestNewValidates(t *testing.T) {
	t.Parallel()
	if _, err := New(Config{BaseURL: "http://x"}); err == nil {
		t.Error("New accepted an empty directory")
	}
	if _, err := New(Config{Directory: t.TempDir()}); err == nil {
		t.Error("New accepted an empty base URL")
	}
}
