// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "testing"

func TestClassVersionRoundTrip(t *testing.T) {
	w := newWriter()
	v := ClassVersion{Major: JavaSE8, Minor: 0}
	v.write(w)

	r := newReader(w.bytes())
	got, err := parseClassVersion(r)
	if err != nil {
		t.Fatalf("parseClassVersion: %v", err)
	}
	if got != v {
		t.Fatalf("round-tripped version = %+v, want %+v", got, v)
	}
}

func TestClassVersionAtLeast(t *testing.T) {
	v := ClassVersion{Major: JavaSE8, Minor: 0}
	if !v.AtLeast(JavaSE7) {
		t.Fatalf("JavaSE8 should be at least JavaSE7")
	}
	if v.AtLeast(JavaSE9) {
		t.Fatalf("JavaSE8 should not be at least JavaSE9")
	}
}
