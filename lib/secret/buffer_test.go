// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import "testing"

func TestNewFromBytesZeroesSource(t *testing.T) {
	source := []byte("Passw0rd!")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	for index, value := range source {
		if value != 0 {
			t.Fatalf("source[%d] = %d after NewFromBytes", index, value)
		}
	}
	if buffer.String() != "Passw0rd!" {
		t.Errorf("String = %q", buffer.String())
	}
	if buffer.Len() != 9 {
		t.Errorf("Len = %d", buffer.Len())
	}
}

func TestCloseIsIdempotentAndBlocksReads(t *testing.T) {
	buffer, err := NewFromBytes([]byte("token"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("Bytes on a closed buffer did not panic")
		}
	}()
	buffer.Bytes()
}

func TestRejectsEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("NewFromBytes(nil) succeeded")
	}
	if _, err := New(0); err == nil {
		t.Error("New(0) succeeded")
	}
}
