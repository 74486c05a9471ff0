// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned by OpenImage for files whose content is not
// an image.
var ErrNotImage = errors.New("api: file is not an image")

// OpenImage opens the image at path as an Upload. The content type is
// sniffed from the file, not taken from its extension. The caller
// closes the returned file once the request has been sent.
func OpenImage(path string) (*Upload, io.Closer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("api: opening image: %w", err)
	}
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("api: reading image %s: %w", path, err)
	}
	if !strings.HasPrefix(detected.String(), "image/") {
		file.Close()
		return nil, nil, fmt.Errorf("%w: %s is %s", ErrNotImage, filepath.Base(path), detected.String())
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, nil, fmt.Errorf("api: rewinding image %s: %w", path, err)
	}
	return &Upload{
		Filename:    filepath.Base(path),
		ContentType: detected.String(),
		Body:        file,
	}, file, nil
}
