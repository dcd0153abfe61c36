// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "testing"

func TestMUTF8RoundTrip(t *testing.T) {
	cases := []string{
		"",
		"hello",
		"hello\x00world",
		"café",
		"\U0001F600", // supplementary plane, requires surrogate pair encoding
		"mix\U0001F600ed\x00up",
	}
	for _, s := range cases {
		enc := EncodeMUTF8(s)
		got := DecodeMUTF8(enc)
		if got != s {
			t.Errorf("round trip mismatch: %q -> %x -> %q", s, enc, got)
		}
	}
}

func TestEncodeMUTF8NullEncoding(t *testing.T) {
	enc := EncodeMUTF8("\x00")
	want := []byte{0xC0, 0x80}
	if len(enc) != 2 || enc[0] != want[0] || enc[1] != want[1] {
		t.Fatalf("NUL encoded as %x, want %x", enc, want)
	}
}

func TestEncodeMUTF8SupplementaryUsesSurrogatePair(t *testing.T) {
	enc := EncodeMUTF8("\U0001F600")
	if len(enc) != 6 {
		t.Fatalf("expected two three-byte sequences (6 bytes), got %d: %x", len(enc), enc)
	}
}

func TestDecodeMUTF8Ascii(t *testing.T) {
	if got := DecodeMUTF8([]byte("plain ascii")); got != "plain ascii" {
		t.Errorf("got %q", got)
	}
}
