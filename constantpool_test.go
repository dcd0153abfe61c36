// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "testing"

func TestConstantPoolWriterInterning(t *testing.T) {
	w := NewConstantPoolWriter()
	a := w.Utf8("hello")
	b := w.Utf8("hello")
	if a != b {
		t.Fatalf("expected interning to return same index, got %d and %d", a, b)
	}
	c := w.Utf8("world")
	if c == a {
		t.Fatalf("distinct values must not share an index")
	}
}

func TestConstantPoolWriterDoubleSlotReservation(t *testing.T) {
	w := NewConstantPoolWriter()
	idx := w.Long(42)
	next := w.Integer(7)
	if next != idx+2 {
		t.Fatalf("expected Long entry to reserve a hole: got idx=%d next=%d", idx, next)
	}
	pool := w.ToConstantPool()
	if _, err := pool.get(idx + 1); err == nil {
		t.Fatalf("expected the successor of a Long entry to be unusable")
	}
}

func TestConstantPoolWriterFloatBitPatternIdentity(t *testing.T) {
	w := NewConstantPoolWriter()
	nan1 := w.Float(float32frombits(0x7fc00001))
	nan2 := w.Float(float32frombits(0x7fc00002))
	if nan1 == nan2 {
		t.Fatalf("distinct NaN bit patterns must intern to distinct entries")
	}
	posZero := w.Float(0.0)
	negZero := w.Float(float32frombits(0x80000000))
	if posZero == negZero {
		t.Fatalf("+0.0 and -0.0 must intern to distinct entries")
	}
}

func TestConstantPoolRoundTrip(t *testing.T) {
	w := NewConstantPoolWriter()
	classIdx := w.Class("com/example/Foo")
	methodIdx := w.Methodref("com/example/Foo", "bar", "()V")
	_ = classIdx
	pool := w.ToConstantPool()

	class, name, descriptor, err := pool.Methodref(methodIdx)
	if err != nil {
		t.Fatalf("Methodref: %v", err)
	}
	if class != "com/example/Foo" || name != "bar" || descriptor != "()V" {
		t.Fatalf("got %s.%s%s", class, name, descriptor)
	}
}

func TestConstantPoolBadIndex(t *testing.T) {
	w := NewConstantPoolWriter()
	w.Utf8("x")
	pool := w.ToConstantPool()
	if _, err := pool.Utf8(0); err == nil {
		t.Fatalf("index 0 must always be invalid")
	}
	if _, err := pool.Utf8(999); err == nil {
		t.Fatalf("out-of-range index must error")
	}
}

func TestConstantPoolIncompatibleEntry(t *testing.T) {
	w := NewConstantPoolWriter()
	idx := w.Utf8("not a class")
	pool := w.ToConstantPool()
	if _, err := pool.Class(idx); err == nil {
		t.Fatalf("resolving a Utf8 index as Class must fail")
	}
}

func TestConstantPoolAnyMethodInterfaceBit(t *testing.T) {
	w := NewConstantPoolWriter()
	idx := w.AnyMethod("java/util/List", "add", "(Ljava/lang/Object;)Z", true)
	pool := w.ToConstantPool()
	class, name, descriptor, isInterface, err := pool.AnyMethod(idx)
	if err != nil {
		t.Fatalf("AnyMethod: %v", err)
	}
	if !isInterface || class != "java/util/List" || name != "add" || descriptor != "(Ljava/lang/Object;)Z" {
		t.Fatalf("got %s.%s%s interface=%v", class, name, descriptor, isInterface)
	}
}
