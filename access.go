// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// AccessFlags is the raw bitset carried by a class, field, method or
// inner-class attribute entry. Named accessors below test individual
// bits; the set of valid bits depends on context (class vs. field vs.
// method vs. inner class), exactly as the class file format defines
// four independent ACC_* bit vocabularies that happen to share numeric
// values for unrelated meanings (e.g. 0x0040 is ACC_VOLATILE on a field
// but ACC_BRIDGE on a method).
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020 // class only
	AccSynchronized AccessFlags = 0x0020 // method only
	AccOpen         AccessFlags = 0x0020 // module only
	AccVolatile     AccessFlags = 0x0040 // field only
	AccBridge       AccessFlags = 0x0040 // method only
	AccStaticPhase  AccessFlags = 0x0040 // module requires only
	AccTransient    AccessFlags = 0x0080 // field only
	AccVarargs      AccessFlags = 0x0080 // method only
	AccNative       AccessFlags = 0x0100 // method only
	AccInterface    AccessFlags = 0x0200 // class only
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800 // method only
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000 // class only
	AccEnum         AccessFlags = 0x4000 // class, field
	AccModule       AccessFlags = 0x8000 // class only
	AccMandated     AccessFlags = 0x8000 // method param, module
)

// Has reports whether every bit in mask is set in flags.
func (flags AccessFlags) Has(mask AccessFlags) bool {
	return flags&mask == mask
}

func parseAccessFlags(r *reader) (AccessFlags, error) {
	v, err := r.u16()
	if err != nil {
		return 0, wrapErr(KindIO, err, "reading access flags")
	}
	return AccessFlags(v), nil
}

func (flags AccessFlags) write(w *writer) {
	w.u16(uint16(flags))
}
