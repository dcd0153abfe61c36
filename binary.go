// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// reader is a bounds-checked, big-endian cursor over a class file's raw
// bytes. Every read advances pos and fails with ErrOutsideBoundary
// instead of panicking when it would run past the end of data.
type reader struct {
	data []byte
	pos  uint32
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) size() uint32 { return uint32(len(r.data)) }

// bytesAt returns a size-byte slice starting at offset without advancing
// the cursor, bounds-checked against integer overflow the same way
// ReadBytesAtOffset guards PE reads.
func (r *reader) bytesAt(offset, size uint32) ([]byte, error) {
	total := offset + size
	if (total > offset) != (size > 0) {
		return nil, ErrOutsideBoundary
	}
	if offset > r.size() || total > r.size() {
		return nil, ErrOutsideBoundary
	}
	return r.data[offset:total], nil
}

func (r *reader) readBytes(n uint32) ([]byte, error) {
	b, err := r.bytesAt(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) u16() (uint16, error) {
	b, err := r.readBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) u32() (uint32, error) {
	b, err := r.readBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) u64() (uint64, error) {
	b, err := r.readBytes(8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

func (r *reader) i64() (int64, error) {
	v, err := r.u64()
	return int64(v), err
}

func (r *reader) remaining() uint32 {
	if r.pos >= r.size() {
		return 0
	}
	return r.size() - r.pos
}

func (r *reader) eof() bool { return r.pos >= r.size() }

// writer accumulates a class file (or a scratch region of one) as a
// growable big-endian byte buffer.
type writer struct {
	buf []byte
}

func newWriter() *writer { return &writer{} }

func (w *writer) bytes() []byte { return w.buf }

func (w *writer) len() uint32 { return uint32(len(w.buf)) }

func (w *writer) writeBytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) i8(v int8) { w.u8(uint8(v)) }

func (w *writer) u16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}

func (w *writer) i16(v int16) { w.u16(uint16(v)) }

func (w *writer) u32(v uint32) {
	w.buf = append(w.buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *writer) i32(v int32) { w.u32(uint32(v)) }

func (w *writer) u64(v uint64) {
	w.buf = append(w.buf,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *writer) i64(v int64) { w.u64(uint64(v)) }

// patchU16 overwrites a previously written u16 placeholder at byte
// offset off, used by the instruction encoder's forward-reference
// patch-up worklist.
func (w *writer) patchU16(off uint32, v uint16) {
	w.buf[off] = byte(v >> 8)
	w.buf[off+1] = byte(v)
}

func (w *writer) patchI16(off uint32, v int16) { w.patchU16(off, uint16(v)) }

func (w *writer) patchU32(off uint32, v uint32) {
	w.buf[off] = byte(v >> 24)
	w.buf[off+1] = byte(v >> 16)
	w.buf[off+2] = byte(v >> 8)
	w.buf[off+3] = byte(v)
}

func (w *writer) patchI32(off uint32, v int32) { w.patchU32(off, uint32(v)) }
