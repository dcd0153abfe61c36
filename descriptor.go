// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "strings"

// FieldType is a parsed field or parameter descriptor: a primitive, a
// reference type, or an array of either.
type FieldType struct {
	// Dimensions is the number of leading '[' the descriptor carried.
	Dimensions int
	// Primitive is one of the single-letter codes below when Class=="",
	// or 0 when this is a reference type.
	Primitive byte
	// Class is the binary class name for a reference element type
	// (without the leading 'L' or trailing ';').
	Class string
}

// Primitive type codes, as they appear in a descriptor.
const (
	PrimBoolean = 'Z'
	PrimByte    = 'B'
	PrimChar    = 'C'
	PrimShort   = 'S'
	PrimInt     = 'I'
	PrimLong    = 'J'
	PrimFloat   = 'F'
	PrimDouble  = 'D'
)

// IsReference reports whether t names a class or array-of-reference
// type rather than a primitive.
func (t FieldType) IsReference() bool { return t.Primitive == 0 }

// ParseFieldDescriptor parses a single field/parameter descriptor such
// as "I", "[[Ljava/lang/String;", or "Ljava/lang/Object;".
func ParseFieldDescriptor(desc string) (FieldType, error) {
	t, rest, err := parseFieldType(desc)
	if err != nil {
		return FieldType{}, err
	}
	if rest != "" {
		return FieldType{}, newErr(KindInvalidDescriptor, "trailing data in field descriptor %q", desc)
	}
	return t, nil
}

func parseFieldType(desc string) (FieldType, string, error) {
	dims := 0
	rest := desc
	for strings.HasPrefix(rest, "[") {
		dims++
		rest = rest[1:]
	}
	if rest == "" {
		return FieldType{}, "", newErr(KindInvalidDescriptor, "empty descriptor %q", desc)
	}
	switch rest[0] {
	case PrimBoolean, PrimByte, PrimChar, PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble:
		return FieldType{Dimensions: dims, Primitive: rest[0]}, rest[1:], nil
	case 'L':
		end := strings.IndexByte(rest, ';')
		if end < 0 {
			return FieldType{}, "", newErr(KindInvalidDescriptor, "unterminated class descriptor in %q", desc)
		}
		return FieldType{Dimensions: dims, Class: rest[1:end]}, rest[end+1:], nil
	default:
		return FieldType{}, "", newErr(KindInvalidDescriptor, "unrecognized descriptor byte %q in %q", rest[0], desc)
	}
}

// MethodDescriptor is a parsed method descriptor: its parameter types in
// order, and its return type (Primitive==0 && Class=="void" for void).
type MethodDescriptor struct {
	Params []FieldType
	Return FieldType
}

// voidClass marks a void return; it is not a legal reference type and is
// only ever produced/consumed by ParseMethodDescriptor.
const voidClass = "void"

// ParseMethodDescriptor parses a descriptor like "(ILjava/lang/String;)V".
func ParseMethodDescriptor(desc string) (MethodDescriptor, error) {
	if !strings.HasPrefix(desc, "(") {
		return MethodDescriptor{}, newErr(KindInvalidDescriptor, "method descriptor %q must start with '('", desc)
	}
	rest := desc[1:]
	var params []FieldType
	for !strings.HasPrefix(rest, ")") {
		if rest == "" {
			return MethodDescriptor{}, newErr(KindInvalidDescriptor, "unterminated parameter list in %q", desc)
		}
		t, next, err := parseFieldType(rest)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, t)
		rest = next
	}
	rest = rest[1:] // consume ')'
	if rest == "V" {
		return MethodDescriptor{Params: params, Return: FieldType{Class: voidClass}}, nil
	}
	ret, tail, err := parseFieldType(rest)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if tail != "" {
		return MethodDescriptor{}, newErr(KindInvalidDescriptor, "trailing data after return type in %q", desc)
	}
	return MethodDescriptor{Params: params, Return: ret}, nil
}

// IsVoid reports whether t is the synthetic void return marker produced
// by ParseMethodDescriptor.
func (t FieldType) IsVoid() bool { return t.Dimensions == 0 && t.Primitive == 0 && t.Class == voidClass }
