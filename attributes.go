// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Attribute is implemented by every typed attribute as well as
// RawAttribute, the pass-through fallback for anything this codec
// doesn't interpret.
type Attribute interface {
	attributeName() string
}

// attrContext distinguishes which table an attribute came from, since
// a handful of names (Code, ConstantValue) are only meaningful in one
// context even though nothing stops a malformed file from putting them
// elsewhere.
type attrContext uint8

const (
	ctxClass attrContext = iota
	ctxField
	ctxMethod
	ctxCode
)

// RawAttribute is an attribute this codec recognizes by name but leaves
// opaque: StackMapTable, LineNumberTable, LocalVariableTable and
// LocalVariableTypeTable are deliberately passed through byte-for-byte
// rather than decoded, per the codec's Non-goals around stack map frame
// synthesis and full debug-table decoding. Any attribute name this
// codec has never heard of falls back to RawAttribute too, so unknown
// attributes always round-trip losslessly.
type RawAttribute struct {
	Name string
	Data []byte
}

func (a RawAttribute) attributeName() string { return a.Name }

// ConstantValueKind reports which of the five pool entry kinds backs a
// field's compile-time constant initializer, and so which of
// ConstantValueAttribute's LongVal/FloatVal/DoubleVal/IntVal/StringVal
// fields holds the value.
type ConstantValueKind uint8

const (
	ConstantValueLong ConstantValueKind = iota
	ConstantValueFloat
	ConstantValueDouble
	ConstantValueInt
	ConstantValueString
)

type ConstantValueAttribute struct {
	Kind       ConstantValueKind
	LongVal    int64
	FloatVal   float32
	DoubleVal  float64
	IntVal     int32
	StringVal  string
}

func (ConstantValueAttribute) attributeName() string { return "ConstantValue" }

// SignatureAttribute carries a generic-type signature string, present
// from class file version 49.0 (Java SE 5) onward.
type SignatureAttribute struct{ Signature string }

func (SignatureAttribute) attributeName() string { return "Signature" }

// DeprecatedAttribute marks a deprecated class/field/method. It carries
// no data.
type DeprecatedAttribute struct{}

func (DeprecatedAttribute) attributeName() string { return "Deprecated" }

// SyntheticAttribute marks a compiler-generated member. It carries no
// data.
type SyntheticAttribute struct{}

func (SyntheticAttribute) attributeName() string { return "Synthetic" }

// SourceFileAttribute names the source file a class was compiled from.
type SourceFileAttribute struct{ Name string }

func (SourceFileAttribute) attributeName() string { return "SourceFile" }

// ExceptionsAttribute lists the checked exception classes a method
// declares itself as throwing.
type ExceptionsAttribute struct{ Exceptions []string }

func (ExceptionsAttribute) attributeName() string { return "Exceptions" }

// EnclosingMethodAttribute identifies the innermost enclosing method of
// a local or anonymous class.
type EnclosingMethodAttribute struct {
	Class      string
	MethodName string // empty when not enclosed by a method
	MethodDesc string
}

func (EnclosingMethodAttribute) attributeName() string { return "EnclosingMethod" }

// InnerClass is one entry of an InnerClasses attribute.
type InnerClass struct {
	InnerClass  string
	OuterClass  string // empty when not a member of another class
	InnerName   string // empty when anonymous
	AccessFlags AccessFlags
}

// InnerClassesAttribute records the structural nesting relationships a
// class participates in.
type InnerClassesAttribute struct{ Classes []InnerClass }

func (InnerClassesAttribute) attributeName() string { return "InnerClasses" }

// BootstrapMethod is one entry of a BootstrapMethods attribute: a
// method handle plus its static arguments, each a constant pool index.
// Resolving what the handle and arguments actually mean is out of
// scope; the structure itself still round-trips.
type BootstrapMethod struct {
	MethodRefIndex uint16
	Arguments      []uint16
}

// BootstrapMethodsAttribute backs every CONSTANT_InvokeDynamic/Dynamic
// entry's bootstrap_method_attr_index.
type BootstrapMethodsAttribute struct{ Methods []BootstrapMethod }

func (BootstrapMethodsAttribute) attributeName() string { return "BootstrapMethods" }

func parseConstantValue(r *reader, cp *ConstantPool) (Attribute, error) {
	idx, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading ConstantValue index")
	}
	entry, err := cp.get(idx)
	if err != nil {
		return nil, err
	}
	switch entry.tag() {
	case TagLong:
		v, err := cp.Long(idx)
		return ConstantValueAttribute{Kind: ConstantValueLong, LongVal: v}, err
	case TagFloat:
		v, err := cp.Float(idx)
		return ConstantValueAttribute{Kind: ConstantValueFloat, FloatVal: v}, err
	case TagDouble:
		v, err := cp.Double(idx)
		return ConstantValueAttribute{Kind: ConstantValueDouble, DoubleVal: v}, err
	case TagInteger:
		v, err := cp.Integer(idx)
		return ConstantValueAttribute{Kind: ConstantValueInt, IntVal: v}, err
	case TagString:
		v, err := cp.String(idx)
		return ConstantValueAttribute{Kind: ConstantValueString, StringVal: v}, err
	default:
		return nil, newErr(KindIncompatibleCPEntry,
			"ConstantValue index %d: expected Long/Float/Double/Integer/String, found %s", idx, entry.tag())
	}
}

func (a ConstantValueAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	switch a.Kind {
	case ConstantValueLong:
		body.u16(w.Long(a.LongVal))
	case ConstantValueFloat:
		body.u16(w.Float(a.FloatVal))
	case ConstantValueDouble:
		body.u16(w.Double(a.DoubleVal))
	case ConstantValueInt:
		body.u16(w.Integer(a.IntVal))
	case ConstantValueString:
		body.u16(w.String(a.StringVal))
	}
	return body.bytes()
}

func parseSignature(r *reader, cp *ConstantPool) (Attribute, error) {
	idx, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Signature index")
	}
	s, err := cp.Utf8(idx)
	return SignatureAttribute{Signature: s}, err
}

func (a SignatureAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(w.Utf8(a.Signature))
	return body.bytes()
}

func parseSourceFile(r *reader, cp *ConstantPool) (Attribute, error) {
	idx, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading SourceFile index")
	}
	s, err := cp.Utf8(idx)
	return SourceFileAttribute{Name: s}, err
}

func (a SourceFileAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(w.Utf8(a.Name))
	return body.bytes()
}

func parseExceptions(r *reader, cp *ConstantPool) (Attribute, error) {
	count, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Exceptions count")
	}
	out := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		idx, err := r.u16()
		if err != nil {
			return nil, wrapErr(KindIO, err, "reading Exceptions entry %d", i)
		}
		name, err := cp.Class(idx)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return ExceptionsAttribute{Exceptions: out}, nil
}

func (a ExceptionsAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(uint16(len(a.Exceptions)))
	for _, e := range a.Exceptions {
		body.u16(w.Class(e))
	}
	return body.bytes()
}

func parseEnclosingMethod(r *reader, cp *ConstantPool) (Attribute, error) {
	classIdx, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading EnclosingMethod class index")
	}
	methodIdx, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading EnclosingMethod method index")
	}
	class, err := cp.Class(classIdx)
	if err != nil {
		return nil, err
	}
	if methodIdx == 0 {
		return EnclosingMethodAttribute{Class: class}, nil
	}
	name, desc, err := cp.NameAndType(methodIdx)
	return EnclosingMethodAttribute{Class: class, MethodName: name, MethodDesc: desc}, err
}

func (a EnclosingMethodAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(w.Class(a.Class))
	if a.MethodName == "" {
		body.u16(0)
	} else {
		body.u16(w.NameAndType(a.MethodName, a.MethodDesc))
	}
	return body.bytes()
}

func parseInnerClasses(r *reader, cp *ConstantPool) (Attribute, error) {
	count, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading InnerClasses count")
	}
	out := make([]InnerClass, 0, count)
	for i := uint16(0); i < count; i++ {
		innerIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		outerIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		nameIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		flags, err := parseAccessFlags(r)
		if err != nil {
			return nil, err
		}
		inner, err := cp.Class(innerIdx)
		if err != nil {
			return nil, err
		}
		var outer, name string
		if outerIdx != 0 {
			if outer, err = cp.Class(outerIdx); err != nil {
				return nil, err
			}
		}
		if nameIdx != 0 {
			if name, err = cp.Utf8(nameIdx); err != nil {
				return nil, err
			}
		}
		out = append(out, InnerClass{InnerClass: inner, OuterClass: outer, InnerName: name, AccessFlags: flags})
	}
	return InnerClassesAttribute{Classes: out}, nil
}

func (a InnerClassesAttribute) write(w *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(uint16(len(a.Classes)))
	for _, c := range a.Classes {
		body.u16(w.Class(c.InnerClass))
		if c.OuterClass == "" {
			body.u16(0)
		} else {
			body.u16(w.Class(c.OuterClass))
		}
		if c.InnerName == "" {
			body.u16(0)
		} else {
			body.u16(w.Utf8(c.InnerName))
		}
		c.AccessFlags.write(body)
	}
	return body.bytes()
}

func parseBootstrapMethods(r *reader, _ *ConstantPool) (Attribute, error) {
	count, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading BootstrapMethods count")
	}
	out := make([]BootstrapMethod, 0, count)
	for i := uint16(0); i < count; i++ {
		refIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		argCount, err := r.u16()
		if err != nil {
			return nil, err
		}
		args := make([]uint16, argCount)
		for j := range args {
			v, err := r.u16()
			if err != nil {
				return nil, err
			}
			args[j] = v
		}
		out = append(out, BootstrapMethod{MethodRefIndex: refIdx, Arguments: args})
	}
	return BootstrapMethodsAttribute{Methods: out}, nil
}

func (a BootstrapMethodsAttribute) write(_ *ConstantPoolWriter) []byte {
	body := newWriter()
	body.u16(uint16(len(a.Methods)))
	for _, m := range a.Methods {
		body.u16(m.MethodRefIndex)
		body.u16(uint16(len(m.Arguments)))
		for _, a := range m.Arguments {
			body.u16(a)
		}
	}
	return body.bytes()
}

// parseAttributeBody dispatches a single already-name-resolved attribute
// body to its typed parser, falling back to RawAttribute for anything
// not recognized in this context.
func parseAttributeBody(name string, data []byte, cp *ConstantPool, ctx attrContext, version ClassVersion) (Attribute, error) {
	r := newReader(data)
	switch name {
	case "ConstantValue":
		if ctx == ctxField {
			return parseConstantValue(r, cp)
		}
	case "Signature":
		if version.AtLeast(JavaSE5) {
			return parseSignature(r, cp)
		}
	case "Deprecated":
		return DeprecatedAttribute{}, nil
	case "Synthetic":
		return SyntheticAttribute{}, nil
	case "SourceFile":
		if ctx == ctxClass {
			return parseSourceFile(r, cp)
		}
	case "Exceptions":
		if ctx == ctxMethod {
			return parseExceptions(r, cp)
		}
	case "EnclosingMethod":
		if ctx == ctxClass {
			return parseEnclosingMethod(r, cp)
		}
	case "InnerClasses":
		if ctx == ctxClass {
			return parseInnerClasses(r, cp)
		}
	case "BootstrapMethods":
		if ctx == ctxClass {
			return parseBootstrapMethods(r, cp)
		}
	}
	return RawAttribute{Name: name, Data: data}, nil
}

// parseAttributes reads an attribute_info table (a u16 count followed by
// that many name/length/body triples) and dispatches each to its typed
// parser. A "Code" attribute in a method's table is recognized here and
// returned separately rather than in the list, so the enclosing constant
// pool and Options can be threaded through to the instruction codec.
func parseAttributes(r *reader, cp *ConstantPool, ctx attrContext, version ClassVersion, opts *Options) ([]Attribute, *CodeAttribute, error) {
	count, err := r.u16()
	if err != nil {
		return nil, nil, wrapErr(KindIO, err, "reading attributes count")
	}
	attrs := make([]Attribute, 0, count)
	var code *CodeAttribute
	for i := uint16(0); i < count; i++ {
		nameIdx, err := r.u16()
		if err != nil {
			return nil, nil, wrapErr(KindIO, err, "reading attribute %d name index", i)
		}
		name, err := cp.Utf8(nameIdx)
		if err != nil {
			return nil, nil, err
		}
		length, err := r.u32()
		if err != nil {
			return nil, nil, wrapErr(KindIO, err, "reading attribute %q length", name)
		}
		data, err := r.readBytes(length)
		if err != nil {
			return nil, nil, wrapErr(KindIO, err, "reading attribute %q body", name)
		}
		if name == "Code" && ctx == ctxMethod {
			c, err := parseCodeAttribute(data, cp, version, opts)
			if err != nil {
				return nil, nil, err
			}
			code = c
			continue
		}
		attr, err := parseAttributeBody(name, data, cp, ctx, version)
		if err != nil {
			return nil, nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, code, nil
}

// writeAttribute encodes a single attribute as its name/length/body
// triple.
func writeAttribute(w *writer, cpw *ConstantPoolWriter, name string, body []byte) {
	w.u16(cpw.Utf8(name))
	w.u32(uint32(len(body)))
	w.writeBytes(body)
}

// writeAttributes encodes count-prefixed attrs, plus code if non-nil
// (written as the method-only "Code" attribute).
func writeAttributes(w *writer, cpw *ConstantPoolWriter, attrs []Attribute, code *CodeAttribute) {
	total := len(attrs)
	if code != nil {
		total++
	}
	w.u16(uint16(total))
	if code != nil {
		writeAttribute(w, cpw, "Code", code.write(cpw))
	}
	for _, a := range attrs {
		var body []byte
		switch v := a.(type) {
		case ConstantValueAttribute:
			body = v.write(cpw)
		case SignatureAttribute:
			body = v.write(cpw)
		case DeprecatedAttribute:
			body = nil
		case SyntheticAttribute:
			body = nil
		case SourceFileAttribute:
			body = v.write(cpw)
		case ExceptionsAttribute:
			body = v.write(cpw)
		case EnclosingMethodAttribute:
			body = v.write(cpw)
		case InnerClassesAttribute:
			body = v.write(cpw)
		case BootstrapMethodsAttribute:
			body = v.write(cpw)
		case RawAttribute:
			body = v.Data
		}
		writeAttribute(w, cpw, a.attributeName(), body)
	}
}
