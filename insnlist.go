// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// InsnList is a decoded method body: a flat sequence of instructions
// interleaved with LabelInsn markers at every jump target.
type InsnList struct {
	insns  []Insn
	labels uint32
}

// NewInsnList returns an empty list, ready to have labels allocated and
// instructions appended during hand-built construction (tests, or a
// caller assembling bytecode programmatically rather than decoding it).
func NewInsnList() *InsnList {
	return &InsnList{}
}

// NewLabel allocates a fresh, as-yet-unplaced label.
func (l *InsnList) NewLabel() Label {
	id := l.labels
	l.labels++
	return Label{ID: id}
}

// Append adds insn to the end of the list.
func (l *InsnList) Append(insn Insn) {
	l.insns = append(l.insns, insn)
}

// Insns returns the list's instructions in order, including LabelInsn
// markers.
func (l *InsnList) Insns() []Insn { return l.insns }

// Len returns the number of elements (instructions and labels) in the
// list.
func (l *InsnList) Len() int { return len(l.insns) }

// IsEmpty reports whether the list has no elements.
func (l *InsnList) IsEmpty() bool { return len(l.insns) == 0 }
