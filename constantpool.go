// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Tag identifies the kind of a constant pool entry.
type Tag uint8

const (
	TagUtf8               Tag = 1
	TagInteger            Tag = 3
	TagFloat              Tag = 4
	TagLong               Tag = 5
	TagDouble             Tag = 6
	TagClass              Tag = 7
	TagString             Tag = 8
	TagFieldref           Tag = 9
	TagMethodref          Tag = 10
	TagInterfaceMethodref Tag = 11
	TagNameAndType        Tag = 12
	TagMethodHandle       Tag = 15
	TagMethodType         Tag = 16
	TagDynamic            Tag = 17
	TagInvokeDynamic      Tag = 18
	TagModule             Tag = 19
	TagPackage            Tag = 20
)

func (t Tag) String() string {
	switch t {
	case TagUtf8:
		return "Utf8"
	case TagInteger:
		return "Integer"
	case TagFloat:
		return "Float"
	case TagLong:
		return "Long"
	case TagDouble:
		return "Double"
	case TagClass:
		return "Class"
	case TagString:
		return "String"
	case TagFieldref:
		return "Fieldref"
	case TagMethodref:
		return "Methodref"
	case TagInterfaceMethodref:
		return "InterfaceMethodref"
	case TagNameAndType:
		return "NameAndType"
	case TagMethodHandle:
		return "MethodHandle"
	case TagMethodType:
		return "MethodType"
	case TagDynamic:
		return "Dynamic"
	case TagInvokeDynamic:
		return "InvokeDynamic"
	case TagModule:
		return "Module"
	case TagPackage:
		return "Package"
	default:
		return "Unknown"
	}
}

// MethodHandleKind is the reference_kind of a CONSTANT_MethodHandle.
type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

// cpEntry is implemented by every concrete constant pool entry type. The
// pool itself stores these behind the interface rather than a tagged
// union, matching the way the rest of this codec favors small typed
// values over one large variant struct.
type cpEntry interface {
	tag() Tag
	write(w *writer, pool *ConstantPool)
}

// doubleSize reports whether an entry occupies two consecutive pool
// indices (Long and Double only), per the format's long-standing quirk.
func doubleSize(t Tag) bool {
	return t == TagLong || t == TagDouble
}

type utf8Entry struct{ value string }

func (utf8Entry) tag() Tag { return TagUtf8 }
func (e utf8Entry) write(w *writer, _ *ConstantPool) {
	b := EncodeMUTF8(e.value)
	w.u16(uint16(len(b)))
	w.writeBytes(b)
}

type integerEntry struct{ value int32 }

func (integerEntry) tag() Tag                       { return TagInteger }
func (e integerEntry) write(w *writer, _ *ConstantPool) { w.i32(e.value) }

type floatEntry struct{ bits uint32 }

func (floatEntry) tag() Tag                       { return TagFloat }
func (e floatEntry) write(w *writer, _ *ConstantPool) { w.u32(e.bits) }

type longEntry struct{ value int64 }

func (longEntry) tag() Tag                       { return TagLong }
func (e longEntry) write(w *writer, _ *ConstantPool) { w.i64(e.value) }

type doubleEntry struct{ bits uint64 }

func (doubleEntry) tag() Tag                       { return TagDouble }
func (e doubleEntry) write(w *writer, _ *ConstantPool) { w.u64(e.bits) }

type classEntry struct{ nameIndex uint16 }

func (classEntry) tag() Tag { return TagClass }
func (e classEntry) write(w *writer, _ *ConstantPool) { w.u16(e.nameIndex) }

type stringEntry struct{ utf8Index uint16 }

func (stringEntry) tag() Tag { return TagString }
func (e stringEntry) write(w *writer, _ *ConstantPool) { w.u16(e.utf8Index) }

type refEntry struct {
	refTag          Tag
	classIndex      uint16
	nameTypeIndex   uint16
}

func (e refEntry) tag() Tag { return e.refTag }
func (e refEntry) write(w *writer, _ *ConstantPool) {
	w.u16(e.classIndex)
	w.u16(e.nameTypeIndex)
}

type nameAndTypeEntry struct {
	nameIndex       uint16
	descriptorIndex uint16
}

func (nameAndTypeEntry) tag() Tag { return TagNameAndType }
func (e nameAndTypeEntry) write(w *writer, _ *ConstantPool) {
	w.u16(e.nameIndex)
	w.u16(e.descriptorIndex)
}

type methodHandleEntry struct {
	kind         MethodHandleKind
	referenceIndex uint16
}

func (methodHandleEntry) tag() Tag { return TagMethodHandle }
func (e methodHandleEntry) write(w *writer, _ *ConstantPool) {
	w.u8(uint8(e.kind))
	w.u16(e.referenceIndex)
}

type methodTypeEntry struct{ descriptorIndex uint16 }

func (methodTypeEntry) tag() Tag { return TagMethodType }
func (e methodTypeEntry) write(w *writer, _ *ConstantPool) { w.u16(e.descriptorIndex) }

type dynamicEntry struct {
	dynTag                  Tag
	bootstrapMethodAttrIndex uint16
	nameTypeIndex           uint16
}

func (e dynamicEntry) tag() Tag { return e.dynTag }
func (e dynamicEntry) write(w *writer, _ *ConstantPool) {
	w.u16(e.bootstrapMethodAttrIndex)
	w.u16(e.nameTypeIndex)
}

type moduleOrPackageEntry struct {
	mpTag     Tag
	nameIndex uint16
}

func (e moduleOrPackageEntry) tag() Tag { return e.mpTag }
func (e moduleOrPackageEntry) write(w *writer, _ *ConstantPool) { w.u16(e.nameIndex) }

// ConstantPool is the 1-indexed, sparse constant pool of a parsed class
// file. Index 0 is never used; the index following a Long or Double
// entry is a hole, reserved but unoccupied, per the format's historical
// choice to count those entries as occupying two slots.
type ConstantPool struct {
	entries []cpEntry // entries[0] is always nil; real entries start at 1
}

func (cp *ConstantPool) count() uint16 { return uint16(len(cp.entries)) }

func (cp *ConstantPool) get(index uint16) (cpEntry, error) {
	if index == 0 || int(index) >= len(cp.entries) {
		return nil, newErr(KindBadCPIndex, "index %d out of range [1, %d)", index, len(cp.entries))
	}
	e := cp.entries[index]
	if e == nil {
		return nil, newErr(KindBadCPIndex, "index %d is the unused second half of a Long/Double entry", index)
	}
	return e, nil
}

func incompat(expected Tag, index uint16, got cpEntry) error {
	return newErr(KindIncompatibleCPEntry, "index %d: expected %s, found %s", index, expected, got.tag())
}

// Utf8 resolves index as a CONSTANT_Utf8 entry.
func (cp *ConstantPool) Utf8(index uint16) (string, error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(utf8Entry)
	if !ok {
		return "", incompat(TagUtf8, index, e)
	}
	return v.value, nil
}

// Class resolves index as a CONSTANT_Class, returning the binary class
// name it names.
func (cp *ConstantPool) Class(index uint16) (string, error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(classEntry)
	if !ok {
		return "", incompat(TagClass, index, e)
	}
	return cp.Utf8(v.nameIndex)
}

// String resolves index as a CONSTANT_String, returning the string it
// names.
func (cp *ConstantPool) String(index uint16) (string, error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(stringEntry)
	if !ok {
		return "", incompat(TagString, index, e)
	}
	return cp.Utf8(v.utf8Index)
}

// Integer resolves index as a CONSTANT_Integer.
func (cp *ConstantPool) Integer(index uint16) (int32, error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(integerEntry)
	if !ok {
		return 0, incompat(TagInteger, index, e)
	}
	return v.value, nil
}

// Float resolves index as a CONSTANT_Float, reconstructing the value
// from its raw IEEE-754 bit pattern.
func (cp *ConstantPool) Float(index uint16) (float32, error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(floatEntry)
	if !ok {
		return 0, incompat(TagFloat, index, e)
	}
	return float32frombits(v.bits), nil
}

// Long resolves index as a CONSTANT_Long.
func (cp *ConstantPool) Long(index uint16) (int64, error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(longEntry)
	if !ok {
		return 0, incompat(TagLong, index, e)
	}
	return v.value, nil
}

// Double resolves index as a CONSTANT_Double, reconstructing the value
// from its raw IEEE-754 bit pattern.
func (cp *ConstantPool) Double(index uint16) (float64, error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(doubleEntry)
	if !ok {
		return 0, incompat(TagDouble, index, e)
	}
	return float64frombits(v.bits), nil
}

// NameAndType resolves index as a CONSTANT_NameAndType.
func (cp *ConstantPool) NameAndType(index uint16) (name, descriptor string, err error) {
	e, err := cp.get(index)
	if err != nil {
		return "", "", err
	}
	v, ok := e.(nameAndTypeEntry)
	if !ok {
		return "", "", incompat(TagNameAndType, index, e)
	}
	name, err = cp.Utf8(v.nameIndex)
	if err != nil {
		return "", "", err
	}
	descriptor, err = cp.Utf8(v.descriptorIndex)
	return name, descriptor, err
}

func (cp *ConstantPool) ref(tag Tag, index uint16) (class, name, descriptor string, err error) {
	e, err := cp.get(index)
	if err != nil {
		return "", "", "", err
	}
	v, ok := e.(refEntry)
	if !ok || v.refTag != tag {
		return "", "", "", incompat(tag, index, e)
	}
	class, err = cp.Class(v.classIndex)
	if err != nil {
		return "", "", "", err
	}
	name, descriptor, err = cp.NameAndType(v.nameTypeIndex)
	return class, name, descriptor, err
}

// Fieldref resolves index as a CONSTANT_Fieldref.
func (cp *ConstantPool) Fieldref(index uint16) (class, name, descriptor string, err error) {
	return cp.ref(TagFieldref, index)
}

// Methodref resolves index as a CONSTANT_Methodref.
func (cp *ConstantPool) Methodref(index uint16) (class, name, descriptor string, err error) {
	return cp.ref(TagMethodref, index)
}

// InterfaceMethodref resolves index as a CONSTANT_InterfaceMethodref.
func (cp *ConstantPool) InterfaceMethodref(index uint16) (class, name, descriptor string, err error) {
	return cp.ref(TagInterfaceMethodref, index)
}

// AnyMethod resolves index as either a Methodref or InterfaceMethodref,
// which is how invokespecial/invokestatic address their callee: the
// "is-interface" bit of the call site is simply which of the two entry
// kinds was resolved.
func (cp *ConstantPool) AnyMethod(index uint16) (class, name, descriptor string, isInterface bool, err error) {
	e, err := cp.get(index)
	if err != nil {
		return "", "", "", false, err
	}
	v, ok := e.(refEntry)
	if !ok || (v.refTag != TagMethodref && v.refTag != TagInterfaceMethodref) {
		return "", "", "", false, newErr(KindIncompatibleCPEntry,
			"index %d: expected Methodref or InterfaceMethodref, found %s", index, e.tag())
	}
	class, err = cp.Class(v.classIndex)
	if err != nil {
		return "", "", "", false, err
	}
	name, descriptor, err = cp.NameAndType(v.nameTypeIndex)
	return class, name, descriptor, v.refTag == TagInterfaceMethodref, err
}

// MethodHandle resolves index as a CONSTANT_MethodHandle, returning its
// reference kind and the underlying field/method reference index. Kinds
// 1-5 (getField/getStatic/putField/putStatic/invokeVirtual) address a
// Fieldref or Methodref; kinds 6-9 address a Methodref or
// InterfaceMethodref and are returned structurally without attempting
// bootstrap resolution.
func (cp *ConstantPool) MethodHandle(index uint16) (kind MethodHandleKind, referenceIndex uint16, err error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, 0, err
	}
	v, ok := e.(methodHandleEntry)
	if !ok {
		return 0, 0, incompat(TagMethodHandle, index, e)
	}
	return v.kind, v.referenceIndex, nil
}

// MethodType resolves index as a CONSTANT_MethodType.
func (cp *ConstantPool) MethodType(index uint16) (descriptor string, err error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(methodTypeEntry)
	if !ok {
		return "", incompat(TagMethodType, index, e)
	}
	return cp.Utf8(v.descriptorIndex)
}

func (cp *ConstantPool) dyn(tag Tag, index uint16) (bootstrapMethodAttrIndex uint16, name, descriptor string, err error) {
	e, err := cp.get(index)
	if err != nil {
		return 0, "", "", err
	}
	v, ok := e.(dynamicEntry)
	if !ok || v.dynTag != tag {
		return 0, "", "", incompat(tag, index, e)
	}
	name, descriptor, err = cp.NameAndType(v.nameTypeIndex)
	return v.bootstrapMethodAttrIndex, name, descriptor, err
}

// Dynamic resolves index as a CONSTANT_Dynamic.
func (cp *ConstantPool) Dynamic(index uint16) (bootstrapMethodAttrIndex uint16, name, descriptor string, err error) {
	return cp.dyn(TagDynamic, index)
}

// InvokeDynamic resolves index as a CONSTANT_InvokeDynamic.
func (cp *ConstantPool) InvokeDynamic(index uint16) (bootstrapMethodAttrIndex uint16, name, descriptor string, err error) {
	return cp.dyn(TagInvokeDynamic, index)
}

// Module resolves index as a CONSTANT_Module.
func (cp *ConstantPool) Module(index uint16) (string, error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(moduleOrPackageEntry)
	if !ok || v.mpTag != TagModule {
		return "", incompat(TagModule, index, e)
	}
	return cp.Utf8(v.nameIndex)
}

// Package resolves index as a CONSTANT_Package.
func (cp *ConstantPool) Package(index uint16) (string, error) {
	e, err := cp.get(index)
	if err != nil {
		return "", err
	}
	v, ok := e.(moduleOrPackageEntry)
	if !ok || v.mpTag != TagPackage {
		return "", incompat(TagPackage, index, e)
	}
	return cp.Utf8(v.nameIndex)
}

func parseConstantPool(r *reader) (*ConstantPool, error) {
	count, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading constant pool count")
	}
	cp := &ConstantPool{entries: make([]cpEntry, count)}
	for i := uint16(1); i < count; i++ {
		entry, wide, err := parseCPEntry(r)
		if err != nil {
			return nil, err
		}
		cp.entries[i] = entry
		if wide {
			i++ // next index is an unoccupied hole
			if i < count {
				cp.entries[i] = nil
			}
		}
	}
	return cp, nil
}

func parseCPEntry(r *reader) (entry cpEntry, wide bool, err error) {
	tagByte, err := r.u8()
	if err != nil {
		return nil, false, wrapErr(KindIO, err, "reading constant pool tag")
	}
	tag := Tag(tagByte)
	switch tag {
	case TagUtf8:
		n, err := r.u16()
		if err != nil {
			return nil, false, wrapErr(KindIO, err, "reading Utf8 length")
		}
		b, err := r.readBytes(uint32(n))
		if err != nil {
			return nil, false, wrapErr(KindInvalidUTF8, err, "reading Utf8 bytes")
		}
		return utf8Entry{value: DecodeMUTF8(b)}, false, nil
	case TagInteger:
		v, err := r.i32()
		return integerEntry{value: v}, false, err
	case TagFloat:
		v, err := r.u32()
		return floatEntry{bits: v}, false, err
	case TagLong:
		v, err := r.i64()
		return longEntry{value: v}, true, err
	case TagDouble:
		v, err := r.u64()
		return doubleEntry{bits: v}, true, err
	case TagClass:
		v, err := r.u16()
		return classEntry{nameIndex: v}, false, err
	case TagString:
		v, err := r.u16()
		return stringEntry{utf8Index: v}, false, err
	case TagFieldref, TagMethodref, TagInterfaceMethodref:
		ci, err := r.u16()
		if err != nil {
			return nil, false, err
		}
		ni, err := r.u16()
		return refEntry{refTag: tag, classIndex: ci, nameTypeIndex: ni}, false, err
	case TagNameAndType:
		ni, err := r.u16()
		if err != nil {
			return nil, false, err
		}
		di, err := r.u16()
		return nameAndTypeEntry{nameIndex: ni, descriptorIndex: di}, false, err
	case TagMethodHandle:
		kind, err := r.u8()
		if err != nil {
			return nil, false, err
		}
		ref, err := r.u16()
		return methodHandleEntry{kind: MethodHandleKind(kind), referenceIndex: ref}, false, err
	case TagMethodType:
		v, err := r.u16()
		return methodTypeEntry{descriptorIndex: v}, false, err
	case TagDynamic, TagInvokeDynamic:
		bi, err := r.u16()
		if err != nil {
			return nil, false, err
		}
		nti, err := r.u16()
		return dynamicEntry{dynTag: tag, bootstrapMethodAttrIndex: bi, nameTypeIndex: nti}, false, err
	case TagModule, TagPackage:
		v, err := r.u16()
		return moduleOrPackageEntry{mpTag: tag, nameIndex: v}, false, err
	default:
		return nil, false, newErr(KindUnrecognized, "unknown constant pool tag %d", tagByte)
	}
}

func (cp *ConstantPool) write(w *writer) {
	w.u16(cp.count())
	for i := uint16(1); i < cp.count(); i++ {
		e := cp.entries[i]
		if e == nil {
			continue
		}
		w.u8(uint8(e.tag()))
		e.write(w, cp)
	}
}
