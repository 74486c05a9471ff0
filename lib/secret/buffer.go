// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret keeps passwords and bearer tokens in memory that the
// garbage collector never sees. A Buffer is an anonymous mmap region,
// locked against swap and excluded from core dumps, zeroed on Close.
package secret

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrClosed is returned when a closed Buffer is read.
var ErrClosed = errors.New("secret: buffer is closed")

// Buffer holds secret bytes outside the Go heap. It must not be
// copied; Close releases the memory.
type Buffer struct {
	mu     sync.Mutex
	region []byte
	length int
	closed bool
}

// New allocates a zero-filled Buffer of size bytes.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: size must be positive, got %d", size)
	}
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap: %w", err)
	}
	if err := unix.Mlock(region); err != nil {
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: mlock: %w", err)
	}
	if err := unix.Madvise(region, unix.MADV_DONTDUMP); err != nil {
		unix.Munlock(region)
		unix.Munmap(region)
		return nil, fmt.Errorf("secret: madvise: %w", err)
	}
	return &Buffer{region: region, length: size}, nil
}

// NewFromBytes moves source into a new Buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, errors.New("secret: empty source")
	}
	buffer, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}
	copy(buffer.region, source)
	Zero(source)
	return buffer, nil
}

// Bytes returns the secret. The slice aliases the mmap region and is
// invalid after Close. Panics on a closed Buffer.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		panic(ErrClosed)
	}
	return b.region[:b.length]
}

// String copies the secret onto the heap. Use only where an API needs
// a string, such as an HTTP header or an age identity parser.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Len returns the secret length.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// Close zeroes and releases the region. Calling Close again is a no-op.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	Zero(b.region)
	unlockErr := unix.Munlock(b.region)
	unmapErr := unix.Munmap(b.region)
	b.region = nil
	if unlockErr != nil {
		return fmt.Errorf("secret: munlock: %w", unlockErr)
	}
	if unmapErr != nil {
		return fmt.Errorf("secret: munmap: %w", unmapErr)
	}
	return nil
}

// Zero overwrites data with zero bytes.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}
