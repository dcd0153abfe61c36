// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// ConstantPoolWriter builds a constant pool by interning values: calling
// Utf8/Class/... for the same value twice returns the same index, and
// Long/Double entries reserve the successor index as an unoccupied hole.
// Insertion order is preserved on output.
type ConstantPoolWriter struct {
	index   map[cpEntry]uint16
	entries []cpEntry // entries[0] is the unused zero index
}

// NewConstantPoolWriter returns an empty writer, ready to intern entries
// starting at index 1.
func NewConstantPoolWriter() *ConstantPoolWriter {
	return &ConstantPoolWriter{
		index:   make(map[cpEntry]uint16),
		entries: []cpEntry{nil},
	}
}

// put interns entry, returning its existing index if already present,
// otherwise appending it (and, for Long/Double, a padding hole) and
// returning the freshly assigned index.
func (w *ConstantPoolWriter) put(entry cpEntry) uint16 {
	if idx, ok := w.index[entry]; ok {
		return idx
	}
	idx := uint16(len(w.entries))
	w.entries = append(w.entries, entry)
	w.index[entry] = idx
	if doubleSize(entry.tag()) {
		w.entries = append(w.entries, nil)
	}
	return idx
}

// Utf8 interns a CONSTANT_Utf8 entry for s.
func (w *ConstantPoolWriter) Utf8(s string) uint16 {
	return w.put(utf8Entry{value: s})
}

// Class interns a CONSTANT_Class entry naming the given binary class
// name.
func (w *ConstantPoolWriter) Class(name string) uint16 {
	return w.put(classEntry{nameIndex: w.Utf8(name)})
}

// String interns a CONSTANT_String entry for s.
func (w *ConstantPoolWriter) String(s string) uint16 {
	return w.put(stringEntry{utf8Index: w.Utf8(s)})
}

// Integer interns a CONSTANT_Integer entry.
func (w *ConstantPoolWriter) Integer(v int32) uint16 {
	return w.put(integerEntry{value: v})
}

// Float interns a CONSTANT_Float entry, keyed by v's raw bit pattern so
// that distinct NaN payloads and +0.0/-0.0 remain distinct entries.
func (w *ConstantPoolWriter) Float(v float32) uint16 {
	return w.put(floatEntry{bits: newFloatKey(v).bits})
}

// Long interns a CONSTANT_Long entry, reserving its successor index.
func (w *ConstantPoolWriter) Long(v int64) uint16 {
	return w.put(longEntry{value: v})
}

// Double interns a CONSTANT_Double entry, reserving its successor
// index, keyed by v's raw bit pattern.
func (w *ConstantPoolWriter) Double(v float64) uint16 {
	return w.put(doubleEntry{bits: newDoubleKey(v).bits})
}

// NameAndType interns a CONSTANT_NameAndType entry.
func (w *ConstantPoolWriter) NameAndType(name, descriptor string) uint16 {
	return w.put(nameAndTypeEntry{nameIndex: w.Utf8(name), descriptorIndex: w.Utf8(descriptor)})
}

func (w *ConstantPoolWriter) ref(tag Tag, class, name, descriptor string) uint16 {
	return w.put(refEntry{
		refTag:        tag,
		classIndex:    w.Class(class),
		nameTypeIndex: w.NameAndType(name, descriptor),
	})
}

// Fieldref interns a CONSTANT_Fieldref entry.
func (w *ConstantPoolWriter) Fieldref(class, name, descriptor string) uint16 {
	return w.ref(TagFieldref, class, name, descriptor)
}

// Methodref interns a CONSTANT_Methodref entry.
func (w *ConstantPoolWriter) Methodref(class, name, descriptor string) uint16 {
	return w.ref(TagMethodref, class, name, descriptor)
}

// InterfaceMethodref interns a CONSTANT_InterfaceMethodref entry.
func (w *ConstantPoolWriter) InterfaceMethodref(class, name, descriptor string) uint16 {
	return w.ref(TagInterfaceMethodref, class, name, descriptor)
}

// AnyMethod interns either a Methodref or InterfaceMethodref depending
// on isInterface, the write-side counterpart of ConstantPool.AnyMethod.
func (w *ConstantPoolWriter) AnyMethod(class, name, descriptor string, isInterface bool) uint16 {
	if isInterface {
		return w.InterfaceMethodref(class, name, descriptor)
	}
	return w.Methodref(class, name, descriptor)
}

// MethodHandle interns a CONSTANT_MethodHandle entry referencing an
// already-interned Fieldref/Methodref/InterfaceMethodref index.
func (w *ConstantPoolWriter) MethodHandle(kind MethodHandleKind, referenceIndex uint16) uint16 {
	return w.put(methodHandleEntry{kind: kind, referenceIndex: referenceIndex})
}

// MethodType interns a CONSTANT_MethodType entry.
func (w *ConstantPoolWriter) MethodType(descriptor string) uint16 {
	return w.put(methodTypeEntry{descriptorIndex: w.Utf8(descriptor)})
}

func (w *ConstantPoolWriter) dyn(tag Tag, bootstrapMethodAttrIndex uint16, name, descriptor string) uint16 {
	return w.put(dynamicEntry{
		dynTag:                   tag,
		bootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
		nameTypeIndex:            w.NameAndType(name, descriptor),
	})
}

// Dynamic interns a CONSTANT_Dynamic entry.
func (w *ConstantPoolWriter) Dynamic(bootstrapMethodAttrIndex uint16, name, descriptor string) uint16 {
	return w.dyn(TagDynamic, bootstrapMethodAttrIndex, name, descriptor)
}

// InvokeDynamic interns a CONSTANT_InvokeDynamic entry.
func (w *ConstantPoolWriter) InvokeDynamic(bootstrapMethodAttrIndex uint16, name, descriptor string) uint16 {
	return w.dyn(TagInvokeDynamic, bootstrapMethodAttrIndex, name, descriptor)
}

// Module interns a CONSTANT_Module entry.
func (w *ConstantPoolWriter) Module(name string) uint16 {
	return w.put(moduleOrPackageEntry{mpTag: TagModule, nameIndex: w.Utf8(name)})
}

// Package interns a CONSTANT_Package entry.
func (w *ConstantPoolWriter) Package(name string) uint16 {
	return w.put(moduleOrPackageEntry{mpTag: TagPackage, nameIndex: w.Utf8(name)})
}

// count returns the pool's logical constant_pool_count, one past the
// highest index in use, counting the hole after a trailing Long/Double.
func (w *ConstantPoolWriter) count() uint16 { return uint16(len(w.entries)) }

func (w *ConstantPoolWriter) write(out *writer) {
	out.u16(w.count())
	for i := 1; i < len(w.entries); i++ {
		e := w.entries[i]
		if e == nil {
			continue
		}
		out.u8(uint8(e.tag()))
		e.write(out, nil)
	}
}

// ToConstantPool freezes the writer into a read-model ConstantPool,
// useful for tests that build a pool programmatically and then exercise
// the typed read accessors against it.
func (w *ConstantPoolWriter) ToConstantPool() *ConstantPool {
	entries := make([]cpEntry, len(w.entries))
	copy(entries, w.entries)
	return &ConstantPool{entries: entries}
}
