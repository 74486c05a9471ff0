// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenImageSniffsContentType(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "cover.bin")
	pngHeader := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	if err := os.WriteFile(path, pngHeader, 0o600); err != nil {
		t.Fatal(err)
	}

	upload, closer, err := OpenImage(path)
	if err != nil {
		t.Fatalf("OpenImage: %v", err)
	}
	defer closer.Close()

	if upload.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", upload.ContentType)
	}
	if upload.Filename != "cover.bin" {
		t.Errorf("Filename = %q, want cover.bin", upload.Filename)
	}
	body, err := io.ReadAll(upload.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(body) != len(pngHeader) {
		t.Errorf("body length = %d, want %d (reader must be rewound)", len(body), len(pngHeader))
	}
}

func TestOpenImageRejectsText(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("just some words\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, _, err := OpenImage(path)
	if !errors.Is(err, ErrNotImage) {
		t.Fatalf("OpenImage(text) error = %v, want ErrNotImage", err)
	}
}

func TestOpenImageMissingFile(t *testing.T) {
	t.Parallel()
	_, _, err := OpenImage(filepath.Join(t.TempDir(), "absent.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("OpenImage(missing) error = %v, want ErrNotExist", err)
	}
}
