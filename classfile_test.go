// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "testing"

// minimalClassBytes builds a class file byte-for-byte: a public class named
// Foo extending java/lang/Object, no fields, methods, interfaces or
// attributes.
func minimalClassBytes() []byte {
	return []byte{
		0xCA, 0xFE, 0xBA, 0xBE, // magic
		0x00, 0x00, // minor
		0x00, 0x34, // major = 52 (JavaSE8)
		0x00, 0x05, // constant_pool_count (4 entries + 1)
		0x01, 0x00, 0x03, 'F', 'o', 'o', // #1 Utf8 "Foo"
		0x07, 0x00, 0x01, // #2 Class -> #1
		0x01, 0x00, 0x10, 'j', 'a', 'v', 'a', '/', 'l', 'a', 'n', 'g', '/', 'O', 'b', 'j', 'e', 'c', 't', // #3 Utf8
		0x07, 0x00, 0x03, // #4 Class -> #3
		0x00, 0x21, // access_flags: ACC_PUBLIC | ACC_SUPER
		0x00, 0x02, // this_class -> #2 (Foo)
		0x00, 0x04, // super_class -> #4 (java/lang/Object)
		0x00, 0x00, // interfaces_count
		0x00, 0x00, // fields_count
		0x00, 0x00, // methods_count
		0x00, 0x00, // attributes_count
	}
}

func TestParseMinimalClass(t *testing.T) {
	cf, err := OpenBytes(minimalClassBytes(), &Options{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if err := cf.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cf.ThisClass != "Foo" {
		t.Fatalf("ThisClass = %q, want Foo", cf.ThisClass)
	}
	if cf.SuperClass != "java/lang/Object" {
		t.Fatalf("SuperClass = %q, want java/lang/Object", cf.SuperClass)
	}
	if !cf.AccessFlags.Has(AccPublic) || !cf.AccessFlags.Has(AccSuper) {
		t.Fatalf("access flags = %v, want ACC_PUBLIC|ACC_SUPER", cf.AccessFlags)
	}
	if len(cf.Fields) != 0 || len(cf.Methods) != 0 || len(cf.Interfaces) != 0 {
		t.Fatalf("expected no fields/methods/interfaces, got %d/%d/%d",
			len(cf.Fields), len(cf.Methods), len(cf.Interfaces))
	}
}

func TestParseWriteRoundTrip(t *testing.T) {
	cf, err := OpenBytes(minimalClassBytes(), &Options{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if err := cf.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	out, err := cf.Write()
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	cf2, err := OpenBytes(out, &Options{})
	if err != nil {
		t.Fatalf("OpenBytes on re-encoded output: %v", err)
	}
	if err := cf2.Parse(); err != nil {
		t.Fatalf("Parse on re-encoded output: %v", err)
	}

	if cf2.ThisClass != cf.ThisClass {
		t.Fatalf("ThisClass after round-trip = %q, want %q", cf2.ThisClass, cf.ThisClass)
	}
	if cf2.SuperClass != cf.SuperClass {
		t.Fatalf("SuperClass after round-trip = %q, want %q", cf2.SuperClass, cf.SuperClass)
	}
	if cf2.AccessFlags != cf.AccessFlags {
		t.Fatalf("AccessFlags after round-trip = %v, want %v", cf2.AccessFlags, cf.AccessFlags)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	data := minimalClassBytes()
	data[0] = 0x00
	cf, err := OpenBytes(data, &Options{})
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	if err := cf.Parse(); err == nil {
		t.Fatalf("expected Parse to reject a bad magic number")
	}
}
