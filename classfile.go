// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/jvmgo/classfile/internal/log"
)

// magicNumber is the four-byte signature every class file begins with.
const magicNumber = 0xCAFEBABE

// ClassFile is a parsed .class file: its version, access flags, type
// hierarchy, member tables, and attributes. Zero value is not usable
// directly; build one with Open or OpenBytes.
type ClassFile struct {
	Version      ClassVersion
	AccessFlags  AccessFlags
	ThisClass    string
	SuperClass   string // empty only for java/lang/Object
	Interfaces   []string
	Fields       []Field
	Methods      []Method
	Attributes   []Attribute

	data   []byte
	mapped mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// Open opens the class file at path, memory-mapping its contents. Call
// Parse to decode it, and Close when done to release the mapping.
func Open(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapErr(KindIO, err, "opening %q", path)
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, wrapErr(KindIO, err, "mapping %q", path)
	}
	cf := newClassFile(opts)
	cf.data = data
	cf.mapped = data
	cf.f = f
	return cf, nil
}

// OpenBytes wraps an in-memory class file buffer. Call Parse to decode
// it; Close is a no-op since there's no backing file descriptor.
func OpenBytes(data []byte, opts *Options) (*ClassFile, error) {
	cf := newClassFile(opts)
	cf.data = data
	return cf, nil
}

func newClassFile(opts *Options) *ClassFile {
	o := opts.withDefaults()
	return &ClassFile{opts: o, logger: o.helper()}
}

// Close releases the memory mapping and underlying file descriptor
// opened by Open. It is a no-op for a ClassFile built with OpenBytes.
func (cf *ClassFile) Close() error {
	if cf.mapped != nil {
		if err := cf.mapped.Unmap(); err != nil {
			return err
		}
	}
	if cf.f != nil {
		return cf.f.Close()
	}
	return nil
}

// Parse decodes cf's backing buffer into the typed fields above.
func (cf *ClassFile) Parse() error {
	r := newReader(cf.data)
	magic, err := r.u32()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading magic number"))
	}
	if magic != magicNumber {
		return guard(wrapErr(KindUnrecognized, ErrMagicNotFound, "got 0x%08X", magic))
	}

	version, err := parseClassVersion(r)
	if err != nil {
		return guard(err)
	}
	cf.Version = version

	cp, err := parseConstantPool(r)
	if err != nil {
		return guard(err)
	}

	flags, err := parseAccessFlags(r)
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading class access_flags"))
	}
	cf.AccessFlags = flags

	thisIdx, err := r.u16()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading this_class"))
	}
	thisClass, err := cp.Class(thisIdx)
	if err != nil {
		return guard(err)
	}
	cf.ThisClass = thisClass

	superIdx, err := r.u16()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading super_class"))
	}
	if superIdx != 0 {
		super, err := cp.Class(superIdx)
		if err != nil {
			return guard(err)
		}
		cf.SuperClass = super
	}

	ifaceCount, err := r.u16()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading interfaces_count"))
	}
	interfaces := make([]string, 0, ifaceCount)
	for i := uint16(0); i < ifaceCount; i++ {
		idx, err := r.u16()
		if err != nil {
			return guard(wrapErr(KindIO, err, "reading interface %d", i))
		}
		name, err := cp.Class(idx)
		if err != nil {
			return guard(err)
		}
		interfaces = append(interfaces, name)
	}
	cf.Interfaces = interfaces

	fieldCount, err := r.u16()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading fields_count"))
	}
	fields := make([]Field, 0, fieldCount)
	for i := uint16(0); i < fieldCount; i++ {
		f, err := parseField(r, cp, version, cf.opts)
		if err != nil {
			return guard(err)
		}
		fields = append(fields, f)
	}
	cf.Fields = fields

	methodCount, err := r.u16()
	if err != nil {
		return guard(wrapErr(KindIO, err, "reading methods_count"))
	}
	methods := make([]Method, 0, methodCount)
	for i := uint16(0); i < methodCount; i++ {
		m, err := parseMethod(r, cp, version, cf.opts)
		if err != nil {
			return guard(err)
		}
		methods = append(methods, m)
	}
	cf.Methods = methods

	attrs, _, err := parseAttributes(r, cp, ctxClass, version, cf.opts)
	if err != nil {
		return guard(err)
	}
	cf.Attributes = attrs

	if r.remaining() > 0 {
		cf.logger.Debugf("%d trailing bytes after the last class attribute", r.remaining())
	}
	return nil
}

// Write serializes cf back into a class file byte stream.
//
// The constant pool can only be finalized after every reference into it
// has been interned, so fields/methods/attributes are written into a
// scratch buffer first (which, as a side effect, populates the pool
// writer), and only then is the real output assembled: magic, version,
// the now-complete pool, and the scratch buffer.
func (cf *ClassFile) Write() ([]byte, error) {
	cpw := NewConstantPoolWriter()
	thisIdx := cpw.Class(cf.ThisClass)
	var superIdx uint16
	if cf.SuperClass != "" {
		superIdx = cpw.Class(cf.SuperClass)
	}
	ifaceIdx := make([]uint16, len(cf.Interfaces))
	for i, iface := range cf.Interfaces {
		ifaceIdx[i] = cpw.Class(iface)
	}

	scratch := newWriter()
	cf.AccessFlags.write(scratch)
	scratch.u16(thisIdx)
	scratch.u16(superIdx)
	scratch.u16(uint16(len(ifaceIdx)))
	for _, idx := range ifaceIdx {
		scratch.u16(idx)
	}

	scratch.u16(uint16(len(cf.Fields)))
	for i := range cf.Fields {
		cf.Fields[i].write(scratch, cpw)
	}

	scratch.u16(uint16(len(cf.Methods)))
	for i := range cf.Methods {
		cf.Methods[i].write(scratch, cpw)
	}

	writeAttributes(scratch, cpw, cf.Attributes, nil)

	out := newWriter()
	out.u32(magicNumber)
	cf.Version.write(out)
	cpw.write(out)
	out.writeBytes(scratch.bytes())
	return out.bytes(), nil
}
