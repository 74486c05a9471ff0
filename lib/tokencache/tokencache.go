// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package tokencache persists the bearer token between postadmin runs.
//
// Each backend gets its own token file, named by a keyed BLAKE3 hash of
// the API base URL, so logging in to staging never hands a staging
// token to production. The token is sealed with age to an X25519
// identity kept beside it; neither file is readable by other users.
//
// A JWT whose exp claim has passed counts as absent and is removed on
// the next read. Tokens are parsed without verification: the client
// holds no signing key and only needs the expiry and display claims.
package tokencache

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zeebo/blake3"

	"github.com/FahadRazzaq1121/postapp/lib/clock"
	"github.com/FahadRazzaq1121/postapp/lib/sealed"
	"github.com/FahadRazzaq1121/postapp/lib/secret"
)

// KeyName is the storage key of the bearer token.
const KeyName = "accessToken"

const identityFile = "identity.age-key"

// ErrNoToken is returned when no usable token is stored.
var ErrNoToken = errors.New("tokencache: no access token; run \"postadmin login\" first")

var scopeKey = func() [32]byte {
	var key [32]byte
	copy(key[:], "postadmin token cache scope v1")
	return key
}()

// Config configures a Cache.
type Config struct {
	// Directory holds the identity and token files. Created with
	// mode 0700 on first Store.
	Directory string

	// BaseURL scopes the cache to one backend.
	BaseURL string

	// Clock decides token expiry. Defaults to the wall clock.
	Clock clock.Clock

	Logger *slog.Logger
}

// Cache is the on-disk token store for one backend. Safe for
// concurrent use.
type Cache struct {
	mu           sync.Mutex
	tokenPath    string
	identityPath string
	scope        string
	clock        clock.Clock
	logger       *slog.Logger
}

// New returns a Cache. It touches the filesystem only on use.
func New(config Config) (*Cache, error) {
	if config.Directory == "" {
		return nil, errors.New("tokencache: directory is required")
	}
	if config.BaseURL == "" {
		return nil, errors.New("tokencache: base URL is required")
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	scope := Scope(config.BaseURL)
	return &Cache{
		tokenPath:    filepath.Join(config.Directory, scope+"."+KeyName),
		identityPath: filepath.Join(config.Directory, identityFile),
		scope:        scope,
		clock:        config.Clock,
		logger:       config.Logger,
	}, nil
}

// Scope returns the file-name-safe identifier for a base URL.
func Scope(baseURL string) string {
	hasher, err := blake3.NewKeyed(scopeKey[:])
	if err != nil {
		panic("tokencache: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write([]byte(strings.TrimRight(baseURL, "/")))
	return hex.EncodeToString(hasher.Sum(nil)[:8])
}

// Scope returns the identifier this cache is bound to.
func (c *Cache) Scope() string { return c.scope }

// Store seals token and writes it, replacing any previous token.
func (c *Cache) Store(token string) error {
	if token == "" {
		return errors.New("tokencache: refusing to store an empty token")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	privateKey, err := c.loadOrCreateIdentity()
	if err != nil {
		return err
	}
	defer privateKey.Close()

	recipient, err := sealed.PublicKeyOf(privateKey)
	if err != nil {
		return fmt.Errorf("tokencache: %w", err)
	}
	ciphertext, err := sealed.Encrypt([]byte(token), recipient)
	if err != nil {
		return fmt.Errorf("tokencache: %w", err)
	}
	if err := writePrivate(c.tokenPath, []byte(ciphertext+"\n")); err != nil {
		return err
	}
	c.logger.Debug("stored access token", "scope", c.scope)
	return nil
}

// Load returns the stored token. An absent, unreadable, or expired
// token yields ErrNoToken; expired and undecryptable files are removed.
func (c *Cache) Load() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ciphertext, err := os.ReadFile(c.tokenPath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("tokencache: reading token: %w", err)
	}

	identity, err := os.ReadFile(c.identityPath)
	if err != nil {
		c.logger.Warn("token identity unreadable, discarding token", "error", err)
		c.removeLocked()
		return "", ErrNoToken
	}
	privateKey, err := secret.NewFromBytes(bytes.TrimSpace(identity))
	secret.Zero(identity)
	if err != nil {
		return "", fmt.Errorf("tokencache: %w", err)
	}
	defer privateKey.Close()

	plaintext, err := sealed.Decrypt(strings.TrimSpace(string(ciphertext)), privateKey)
	if err != nil {
		c.logger.Warn("stored token cannot be decrypted, discarding it", "error", err)
		c.removeLocked()
		return "", ErrNoToken
	}
	token := plaintext.String()
	plaintext.Close()

	if expiry, ok := expiresAt(token); ok && !c.clock.Now().Before(expiry) {
		c.logger.Info("stored access token expired", "expired_at", expiry)
		c.removeLocked()
		return "", ErrNoToken
	}
	return token, nil
}

// Token implements the API client's token source.
func (c *Cache) Token() (string, error) { return c.Load() }

// Clear removes the stored token. Clearing an empty cache succeeds.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked()
}

func (c *Cache) removeLocked() error {
	if err := os.Remove(c.tokenPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokencache: removing token: %w", err)
	}
	return nil
}

func (c *Cache) loadOrCreateIdentity() (*secret.Buffer, error) {
	data, err := os.ReadFile(c.identityPath)
	if err == nil {
		buffer, bufferErr := secret.NewFromBytes(bytes.TrimSpace(data))
		secret.Zero(data)
		if bufferErr != nil {
			return nil, fmt.Errorf("tokencache: %w", bufferErr)
		}
		return buffer, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("tokencache: reading identity: %w", err)
	}

	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return nil, fmt.Errorf("tokencache: %w", err)
	}
	encoded := append(bytes.Clone(keypair.PrivateKey.Bytes()), '\n')
	writeErr := writePrivate(c.identityPath, encoded)
	secret.Zero(encoded)
	if writeErr != nil {
		keypair.Close()
		return nil, writeErr
	}
	c.logger.Debug("generated token cache identity", "path", c.identityPath)
	return keypair.PrivateKey, nil
}

// writePrivate atomically replaces path with data, mode 0600.
func writePrivate(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return fmt.Errorf("tokencache: creating %s: %w", directory, err)
	}
	temporary, err := os.CreateTemp(directory, ".tmp-*")
	if err != nil {
		return fmt.Errorf("tokencache: %w", err)
	}
	defer os.Remove(temporary.Name())
	if err := temporary.Chmod(0o600); err != nil {
		temporary.Close()
		return fmt.Errorf("tokencache: %w", err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("tokencache: writing %s: %w", path, err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("tokencache: %w", err)
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		return fmt.Errorf("tokencache: %w", err)
	}
	return nil
}

func expiresAt(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}
	return expiry.Time, true
}
