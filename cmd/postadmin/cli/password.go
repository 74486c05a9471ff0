// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/FahadRazzaq1121/postapp/lib/secret"
)

// ReadPassword reads a password into a secret.Buffer. A passwordFile
// other than "" or "-" is read from disk. Otherwise the password is
// prompted for with echo disabled when stdin is a terminal, or read as
// the first line of stdin when it is not.
func ReadPassword(streams Streams, passwordFile string) (*secret.Buffer, error) {
	if passwordFile != "" && passwordFile != "-" {
		return readSecretFile(passwordFile)
	}

	if file, ok := streams.In.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		fmt.Fprint(streams.Err, "Password: ")
		passwordBytes, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(streams.Err)
		if err != nil {
			return nil, Internal("reading password: %w", err)
		}
		return protect(passwordBytes, "password")
	}

	if streams.In == nil {
		return nil, Validation("no terminal available for the password prompt (use --password-file)")
	}
	line, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, Internal("reading password from stdin: %w", err)
	}
	return protect([]byte(strings.TrimRight(line, "\r\n")), "stdin")
}

// readSecretFile reads a secret from path, stripping trailing newlines.
func readSecretFile(path string) (*secret.Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Internal("reading %s: %w", path, err)
	}
	for len(data) > 0 && (data[len(data)-1] == '\n' || data[len(data)-1] == '\r') {
		data = data[:len(data)-1]
	}
	return protect(data, path)
}

func protect(data []byte, source string) (*secret.Buffer, error) {
	if len(data) == 0 {
		return nil, Validation("password from %s is empty", source)
	}
	// NewFromBytes zeroes data.
	buffer, err := secret.NewFromBytes(data)
	if err != nil {
		return nil, Internal("protecting password: %w", err)
	}
	return buffer, nil
}
