// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Field is one entry of a class's field table. ConstantValue and
// Signature are split out of the generic attribute list into their own
// fields, the same way parseAttributes recognizes Code specially for
// methods: both are common enough, and typed enough, to deserve direct
// access instead of a linear scan through Attributes every time a
// caller wants them.
type Field struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string

	ConstantValue *ConstantValueAttribute
	Signature     *string
	Deprecated    bool
	Synthetic     bool

	// Attributes holds everything else: RawAttribute pass-throughs for
	// anything this codec doesn't special-case.
	Attributes []Attribute
}

func parseField(r *reader, cp *ConstantPool, version ClassVersion, opts *Options) (Field, error) {
	flags, err := parseAccessFlags(r)
	if err != nil {
		return Field{}, wrapErr(KindIO, err, "reading field access_flags")
	}
	nameIdx, err := r.u16()
	if err != nil {
		return Field{}, wrapErr(KindIO, err, "reading field name index")
	}
	name, err := cp.Utf8(nameIdx)
	if err != nil {
		return Field{}, err
	}
	descIdx, err := r.u16()
	if err != nil {
		return Field{}, wrapErr(KindIO, err, "reading field descriptor index")
	}
	descriptor, err := cp.Utf8(descIdx)
	if err != nil {
		return Field{}, err
	}
	attrs, _, err := parseAttributes(r, cp, ctxField, version, opts)
	if err != nil {
		return Field{}, err
	}

	f := Field{AccessFlags: flags, Name: name, Descriptor: descriptor}
	f.Attributes = extractFieldAttributes(&f, attrs)
	return f, nil
}

// extractFieldAttributes pulls ConstantValue/Signature/Deprecated/
// Synthetic out of attrs and returns what's left.
func extractFieldAttributes(f *Field, attrs []Attribute) []Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		switch v := a.(type) {
		case ConstantValueAttribute:
			cv := v
			f.ConstantValue = &cv
		case SignatureAttribute:
			s := v.Signature
			f.Signature = &s
		case DeprecatedAttribute:
			f.Deprecated = true
		case SyntheticAttribute:
			f.Synthetic = true
		default:
			kept = append(kept, a)
		}
	}
	return kept
}

func (f *Field) write(w *writer, cpw *ConstantPoolWriter) {
	f.AccessFlags.write(w)
	w.u16(cpw.Utf8(f.Name))
	w.u16(cpw.Utf8(f.Descriptor))

	attrs := append([]Attribute{}, f.Attributes...)
	if f.ConstantValue != nil {
		attrs = append(attrs, *f.ConstantValue)
	}
	if f.Signature != nil {
		attrs = append(attrs, SignatureAttribute{Signature: *f.Signature})
	}
	if f.Deprecated {
		attrs = append(attrs, DeprecatedAttribute{})
	}
	if f.Synthetic {
		attrs = append(attrs, SyntheticAttribute{})
	}
	writeAttributes(w, cpw, attrs, nil)
}
