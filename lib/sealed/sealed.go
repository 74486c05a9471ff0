// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed encrypts small secrets with age so they can rest on
// disk. The token cache seals the bearer token to a per-user X25519
// identity; ciphertext is base64 text so the cache file stays
// printable.
package sealed

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/FahadRazzaq1121/postapp/lib/secret"
)

// Keypair is an age X25519 identity and its recipient string.
type Keypair struct {
	// PrivateKey holds the AGE-SECRET-KEY-1... encoding.
	PrivateKey *secret.Buffer

	// PublicKey is the age1... recipient.
	PublicKey string
}

// Close releases the private key.
func (k *Keypair) Close() error {
	if k.PrivateKey == nil {
		return nil
	}
	return k.PrivateKey.Close()
}

// GenerateKeypair creates a fresh identity.
func GenerateKeypair() (*Keypair, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("sealed: generating identity: %w", err)
	}
	privateKey, err := secret.NewFromBytes([]byte(identity.String()))
	if err != nil {
		return nil, fmt.Errorf("sealed: protecting identity: %w", err)
	}
	return &Keypair{PrivateKey: privateKey, PublicKey: identity.Recipient().String()}, nil
}

// PublicKeyOf derives the recipient string for a private key.
func PublicKeyOf(privateKey *secret.Buffer) (string, error) {
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return "", fmt.Errorf("sealed: parsing identity: %w", err)
	}
	return identity.Recipient().String(), nil
}

// Encrypt seals plaintext to recipient and returns base64 ciphertext.
func Encrypt(plaintext []byte, recipient string) (string, error) {
	parsed, err := age.ParseX25519Recipient(recipient)
	if err != nil {
		return "", fmt.Errorf("sealed: parsing recipient %q: %w", recipient, err)
	}
	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, parsed)
	if err != nil {
		return "", fmt.Errorf("sealed: starting encryption: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("sealed: encrypting: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("sealed: finishing encryption: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// Decrypt opens base64 ciphertext produced by Encrypt. The plaintext
// comes back in a secret.Buffer the caller must Close. privateKey is
// not closed.
func Decrypt(ciphertext string, privateKey *secret.Buffer) (*secret.Buffer, error) {
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return nil, fmt.Errorf("sealed: parsing identity: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("sealed: decoding ciphertext: %w", err)
	}
	reader, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return nil, fmt.Errorf("sealed: decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("sealed: reading plaintext: %w", err)
	}
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("sealed: ciphertext holds no data")
	}
	return secret.NewFromBytes(plaintext)
}
