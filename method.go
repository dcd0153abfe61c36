// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Method is one entry of a class's method table. Code, Signature and
// Exceptions are split out of the generic attribute list for direct
// access, the same extraction field.go performs for Field.
type Method struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string

	Code       *CodeAttribute
	Signature  *string
	Exceptions []string
	Deprecated bool
	Synthetic  bool

	Attributes []Attribute
}

func parseMethod(r *reader, cp *ConstantPool, version ClassVersion, opts *Options) (Method, error) {
	flags, err := parseAccessFlags(r)
	if err != nil {
		return Method{}, wrapErr(KindIO, err, "reading method access_flags")
	}
	nameIdx, err := r.u16()
	if err != nil {
		return Method{}, wrapErr(KindIO, err, "reading method name index")
	}
	name, err := cp.Utf8(nameIdx)
	if err != nil {
		return Method{}, err
	}
	descIdx, err := r.u16()
	if err != nil {
		return Method{}, wrapErr(KindIO, err, "reading method descriptor index")
	}
	descriptor, err := cp.Utf8(descIdx)
	if err != nil {
		return Method{}, err
	}
	attrs, code, err := parseAttributes(r, cp, ctxMethod, version, opts)
	if err != nil {
		return Method{}, err
	}

	m := Method{AccessFlags: flags, Name: name, Descriptor: descriptor, Code: code}
	m.Attributes = extractMethodAttributes(&m, attrs)
	return m, nil
}

func extractMethodAttributes(m *Method, attrs []Attribute) []Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		switch v := a.(type) {
		case SignatureAttribute:
			s := v.Signature
			m.Signature = &s
		case ExceptionsAttribute:
			m.Exceptions = v.Exceptions
		case DeprecatedAttribute:
			m.Deprecated = true
		case SyntheticAttribute:
			m.Synthetic = true
		default:
			kept = append(kept, a)
		}
	}
	return kept
}

func (m *Method) write(w *writer, cpw *ConstantPoolWriter) {
	m.AccessFlags.write(w)
	w.u16(cpw.Utf8(m.Name))
	w.u16(cpw.Utf8(m.Descriptor))

	attrs := append([]Attribute{}, m.Attributes...)
	if m.Signature != nil {
		attrs = append(attrs, SignatureAttribute{Signature: *m.Signature})
	}
	if m.Exceptions != nil {
		attrs = append(attrs, ExceptionsAttribute{Exceptions: m.Exceptions})
	}
	if m.Deprecated {
		attrs = append(attrs, DeprecatedAttribute{})
	}
	if m.Synthetic {
		attrs = append(attrs, SyntheticAttribute{})
	}
	writeAttributes(w, cpw, attrs, m.Code)
}
