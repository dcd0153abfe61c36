// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// DecodeMUTF8 decodes the Modified UTF-8 encoding used by CONSTANT_Utf8
// entries into a Go string. Decoding is total: a null byte pair
// (0xC0 0x80) decodes to U+0000, and a code point above the Basic
// Multilingual Plane is represented, per the class file format, as two
// adjacent three-byte surrogate sequences rather than a single four-byte
// UTF-8 sequence. Any trailing run that isn't valid Modified UTF-8 is
// recovered on a best-effort basis through a UTF-16 fallback.
func DecodeMUTF8(b []byte) string {
	var out bytes.Buffer
	out.Grow(len(b))

	i := 0
	for i < len(b) {
		c0 := b[i]
		switch {
		case c0 == 0x00:
			// Not legal Modified UTF-8 (NUL must be encoded as C0 80),
			// but decode permissively rather than abort the whole string.
			out.WriteRune(utf8.RuneError)
			i++

		case c0&0x80 == 0x00:
			out.WriteByte(c0)
			i++

		case c0&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				if r, ok := fallbackUTF16(b[i:]); ok {
					out.WriteString(r)
					return out.String()
				}
				out.WriteRune(utf8.RuneError)
				i++
				continue
			}
			c1 := b[i+1]
			r := rune(c0&0x1F)<<6 | rune(c1&0x3F)
			out.WriteRune(r)
			i += 2

		case c0&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				if r, ok := fallbackUTF16(b[i:]); ok {
					out.WriteString(r)
					return out.String()
				}
				out.WriteRune(utf8.RuneError)
				i++
				continue
			}
			c1, c2 := b[i+1], b[i+2]
			r := rune(c0&0x0F)<<12 | rune(c1&0x3F)<<6 | rune(c2&0x3F)

			// Surrogate-pair encoding of a supplementary code point: two
			// consecutive three-byte sequences, 0xED[A0-AF][80-BF] then
			// 0xED[B0-BF][80-BF].
			if utf16.IsSurrogate(r) && i+6 <= len(b) &&
				b[i+3]&0xF0 == 0xE0 && b[i+4]&0xC0 == 0x80 && b[i+5]&0xC0 == 0x80 {
				r2 := rune(b[i+3]&0x0F)<<12 | rune(b[i+4]&0x3F)<<6 | rune(b[i+5]&0x3F)
				if combined := utf16.DecodeRune(r, r2); combined != utf8.RuneError {
					out.WriteRune(combined)
					i += 6
					continue
				}
			}
			out.WriteRune(r)
			i += 3

		default:
			out.WriteRune(utf8.RuneError)
			i++
		}
	}
	return out.String()
}

// fallbackUTF16 attempts to recover a malformed tail by reinterpreting it
// as big-endian UTF-16.
func fallbackUTF16(b []byte) (string, bool) {
	if len(b)%2 != 0 || len(b) == 0 {
		return "", false
	}
	decoder := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	s, err := decoder.Bytes(b)
	if err != nil {
		return "", false
	}
	return string(s), true
}

// EncodeMUTF8 encodes a Go string into Modified UTF-8, as required for a
// CONSTANT_Utf8 entry: NUL is emitted as 0xC0 0x80, and any code point
// outside the Basic Multilingual Plane is split into a surrogate pair,
// each half written as its own three-byte sequence. Encoding is total.
func EncodeMUTF8(s string) []byte {
	var out bytes.Buffer
	out.Grow(len(s))
	for _, r := range s {
		switch {
		case r == 0x0000:
			out.Write([]byte{0xC0, 0x80})
		case r > 0 && r <= 0x7F:
			out.WriteByte(byte(r))
		case r <= 0x7FF:
			out.WriteByte(0xC0 | byte(r>>6))
			out.WriteByte(0x80 | byte(r&0x3F))
		case r <= 0xFFFF:
			writeMUTF8Triple(&out, r)
		default:
			r1, r2 := utf16.EncodeRune(r)
			writeMUTF8Triple(&out, r1)
			writeMUTF8Triple(&out, r2)
		}
	}
	return out.Bytes()
}

func writeMUTF8Triple(out *bytes.Buffer, r rune) {
	out.WriteByte(0xE0 | byte(r>>12))
	out.WriteByte(0x80 | byte((r>>6)&0x3F))
	out.WriteByte(0x80 | byte(r&0x3F))
}
