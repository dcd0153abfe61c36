// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import "math"

// ExceptionHandler is one entry of a Code attribute's exception table.
// StartPC/EndPC/HandlerPC are labels into the same InsnList as Code,
// exactly like a jump target, so they stay stable across instruction
// insertions. CatchType is empty for a catch-all (finally) handler.
type ExceptionHandler struct {
	StartPC   Label
	EndPC     Label
	HandlerPC Label
	CatchType string
}

// CodeAttribute is a method's Code attribute: its operand stack/locals
// sizing, its decoded instruction stream, its exception table, and any
// attributes nested inside it (commonly LineNumberTable/
// LocalVariableTable/StackMapTable, all carried as RawAttribute per the
// codec's Non-goals).
type CodeAttribute struct {
	MaxStack   uint16
	MaxLocals  uint16
	Code       *InsnList
	Exceptions []ExceptionHandler
	Attributes []Attribute
}

func (CodeAttribute) attributeName() string { return "Code" }

// write serializes c back into a Code attribute's body: max_stack,
// max_locals, the encoded instruction stream, the exception table (its
// labels resolved against the pcs encodeCode assigned), and any nested
// attributes. A label that was never placed in c.Code is a caller bug,
// not a malformed-input condition, so encodeCode's failure is raised as
// a panic here rather than threaded through as a return value every
// other Attribute.write doesn't have.
func (c *CodeAttribute) write(cpw *ConstantPoolWriter) []byte {
	codeBytes, labelPC, err := encodeCode(c.Code, cpw)
	if err != nil {
		panic(err)
	}

	body := newWriter()
	body.u16(c.MaxStack)
	body.u16(c.MaxLocals)
	body.u32(uint32(len(codeBytes)))
	body.writeBytes(codeBytes)

	body.u16(uint16(len(c.Exceptions)))
	for _, h := range c.Exceptions {
		body.u16(uint16(labelPC[h.StartPC.ID]))
		body.u16(uint16(labelPC[h.EndPC.ID]))
		body.u16(uint16(labelPC[h.HandlerPC.ID]))
		if h.CatchType == "" {
			body.u16(0)
		} else {
			body.u16(cpw.Class(h.CatchType))
		}
	}

	writeAttributes(body, cpw, c.Attributes, nil)
	return body.bytes()
}

// rawInsnAtPC pairs a decoded instruction with the program counter it
// started at, the intermediate form produced by decode's first pass
// before jump targets have been turned into dense label IDs.
type rawInsnAtPC struct {
	pc   uint32
	insn Insn
}

func parseCodeAttribute(data []byte, cp *ConstantPool, version ClassVersion, opts *Options) (*CodeAttribute, error) {
	r := newReader(data)
	maxStack, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Code max_stack")
	}
	maxLocals, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Code max_locals")
	}
	codeLength, err := r.u32()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Code code_length")
	}
	codeBytes, err := r.readBytes(codeLength)
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Code code array")
	}

	targets := make(map[uint32]bool)
	rawInsns, err := decodeInstructions(codeBytes, cp, opts, targets)
	if err != nil {
		return nil, err
	}
	for pc := range targets {
		if pc > codeLength {
			return nil, newErr(KindOutOfBoundsJumpIndex, "jump target pc %d is outside the %d-byte code array", pc, codeLength)
		}
	}

	excCount, err := r.u16()
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading Code exception_table_length")
	}
	type rawHandler struct {
		start, end, handler uint32
		catchType           string
	}
	rawHandlers := make([]rawHandler, 0, excCount)
	for i := uint16(0); i < excCount; i++ {
		start, err := r.u16()
		if err != nil {
			return nil, err
		}
		end, err := r.u16()
		if err != nil {
			return nil, err
		}
		handler, err := r.u16()
		if err != nil {
			return nil, err
		}
		catchIdx, err := r.u16()
		if err != nil {
			return nil, err
		}
		var catchType string
		if catchIdx != 0 {
			if catchType, err = cp.Class(catchIdx); err != nil {
				return nil, err
			}
		}
		targets[uint32(start)] = true
		targets[uint32(end)] = true
		targets[uint32(handler)] = true
		rawHandlers = append(rawHandlers, rawHandler{uint32(start), uint32(end), uint32(handler), catchType})
	}

	attrs, _, err := parseAttributes(r, cp, ctxCode, version, opts)
	if err != nil {
		return nil, err
	}

	pcToLabel, list := assignLabelsAndBuild(rawInsns, targets, codeLength)

	handlers := make([]ExceptionHandler, 0, len(rawHandlers))
	for _, h := range rawHandlers {
		handlers = append(handlers, ExceptionHandler{
			StartPC:   pcToLabel[h.start],
			EndPC:     pcToLabel[h.end],
			HandlerPC: pcToLabel[h.handler],
			CatchType: h.catchType,
		})
	}

	return &CodeAttribute{
		MaxStack:   maxStack,
		MaxLocals:  maxLocals,
		Code:       list,
		Exceptions: handlers,
		Attributes: attrs,
	}, nil
}

// assignLabelsAndBuild allocates dense label IDs for every pc in
// targets, in increasing pc order, then rewrites every raw-pc-carrying
// Insn field to the matching Label and inserts a LabelInsn wherever a
// targeted pc falls.
func assignLabelsAndBuild(raw []rawInsnAtPC, targets map[uint32]bool, codeLength uint32) (map[uint32]Label, *InsnList) {
	pcToLabel := make(map[uint32]Label, len(targets))
	if len(targets) > 0 {
		sorted := make([]uint32, 0, len(targets))
		for pc := range targets {
			sorted = append(sorted, pc)
		}
		// simple insertion sort: target sets are small relative to method size
		for i := 1; i < len(sorted); i++ {
			for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
				sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
			}
		}
		for i, pc := range sorted {
			pcToLabel[pc] = Label{ID: uint32(i)}
		}
	}

	list := NewInsnList()
	resolve := func(pc uint32) Label {
		if l, ok := pcToLabel[pc]; ok {
			return l
		}
		return Label{}
	}
	for _, r := range raw {
		if targets[r.pc] {
			list.Append(LabelInsn{Label: pcToLabel[r.pc]})
		}
		list.Append(remapInsnLabels(r.insn, resolve))
	}
	if targets[codeLength] {
		list.Append(LabelInsn{Label: pcToLabel[codeLength]})
	}
	// Dense IDs 0..len(targets)-1 are already in use above; advance the
	// list's own allocator past them so a caller splicing in new control
	// flow with NewLabel doesn't collide with a decoded label.
	list.labels = uint32(len(targets))
	return pcToLabel, list
}

// remapInsnLabels rewrites an instruction's raw-pc Label placeholders
// (installed during decodeInstructions, where Label.ID temporarily holds
// an absolute pc rather than a dense label id) into real labels.
func remapInsnLabels(insn Insn, resolve func(uint32) Label) Insn {
	switch v := insn.(type) {
	case JumpInsn:
		return JumpInsn{Target: resolve(v.Target.ID)}
	case ConditionalJumpInsn:
		return ConditionalJumpInsn{Condition: v.Condition, Target: resolve(v.Target.ID)}
	case TableSwitchInsn:
		cases := make([]Label, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = resolve(c.ID)
		}
		return TableSwitchInsn{Default: resolve(v.Default.ID), Low: v.Low, Cases: cases}
	case LookupSwitchInsn:
		cases := make([]Label, len(v.Cases))
		for i, c := range v.Cases {
			cases[i] = resolve(c.ID)
		}
		return LookupSwitchInsn{Default: resolve(v.Default.ID), Keys: v.Keys, Cases: cases}
	default:
		return insn
	}
}

// decodeInstructions is the codec's first decode pass: it walks the raw
// bytecode array once, producing one rawInsnAtPC per instruction and
// recording every pc any jump/switch/exception-table entry targets.
// Jump/switch target fields are populated with a Label whose ID is
// temporarily the raw absolute pc; assignLabelsAndBuild resolves these
// into dense label IDs in a second pass, exactly as the two-pass decode
// this codec is built around requires.
func decodeInstructions(code []byte, cp *ConstantPool, opts *Options, targets map[uint32]bool) ([]rawInsnAtPC, error) {
	r := newReader(code)
	var out []rawInsnAtPC
	maxInsns := DefaultMaxInstructions
	if opts != nil && opts.MaxInstructions != 0 {
		maxInsns = int(opts.MaxInstructions)
	}

	for !r.eof() {
		if len(out) >= maxInsns {
			return nil, newErr(KindTooManyInstructions, "method body exceeds %d instructions", maxInsns)
		}
		thisPC := r.pos
		opByte, err := r.u8()
		if err != nil {
			return nil, wrapErr(KindIO, err, "reading opcode at pc %d", thisPC)
		}
		insn, err := decodeOneInsn(Opcode(opByte), thisPC, r, cp, targets)
		if err != nil {
			return nil, err
		}
		out = append(out, rawInsnAtPC{pc: thisPC, insn: insn})
	}
	return out, nil
}

func markTarget(targets map[uint32]bool, pc uint32) Label {
	targets[pc] = true
	return Label{ID: pc}
}

func decodeOneInsn(op Opcode, thisPC uint32, r *reader, cp *ConstantPool, targets map[uint32]bool) (Insn, error) {
	switch op {
	case OpNop:
		return NopInsn{}, nil
	case OpAConstNull:
		return PushNullInsn{}, nil
	case OpIConstM1, OpIConst0, OpIConst1, OpIConst2, OpIConst3, OpIConst4, OpIConst5:
		return PushIntInsn{Value: int32(op) - int32(OpIConst0)}, nil
	case OpLConst0, OpLConst1:
		return PushLongInsn{Value: int64(op) - int64(OpLConst0)}, nil
	case OpFConst0, OpFConst1, OpFConst2:
		return PushFloatInsn{Value: float32(int(op) - int(OpFConst0))}, nil
	case OpDConst0, OpDConst1:
		return PushDoubleInsn{Value: float64(int(op) - int(OpDConst0))}, nil
	case OpBiPush:
		v, err := r.i8()
		return PushIntInsn{Value: int32(v)}, err
	case OpSiPush:
		v, err := r.i16()
		return PushIntInsn{Value: int32(v)}, err
	case OpLdc:
		idx, err := r.u8()
		if err != nil {
			return nil, err
		}
		return parseLdc(uint16(idx), cp)
	case OpLdcW:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		return parseLdc(idx, cp)
	case OpLdc2W:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		return parseLdc(idx, cp)
	case OpILoad, OpLLoad, OpFLoad, OpDLoad, OpALoad:
		idx, err := r.u8()
		return LocalLoadInsn{Kind: loadKind(op), Index: uint16(idx)}, err
	case OpILoad0, OpILoad1, OpILoad2, OpILoad3:
		return LocalLoadInsn{Kind: KindInt, Index: uint16(op - OpILoad0)}, nil
	case OpLLoad0, OpLLoad1, OpLLoad2, OpLLoad3:
		return LocalLoadInsn{Kind: KindLong, Index: uint16(op - OpLLoad0)}, nil
	case OpFLoad0, OpFLoad1, OpFLoad2, OpFLoad3:
		return LocalLoadInsn{Kind: KindFloat, Index: uint16(op - OpFLoad0)}, nil
	case OpDLoad0, OpDLoad1, OpDLoad2, OpDLoad3:
		return LocalLoadInsn{Kind: KindDouble, Index: uint16(op - OpDLoad0)}, nil
	case OpALoad0, OpALoad1, OpALoad2, OpALoad3:
		return LocalLoadInsn{Kind: KindReference, Index: uint16(op - OpALoad0)}, nil
	case OpIStore, OpLStore, OpFStore, OpDStore, OpAStore:
		idx, err := r.u8()
		return LocalStoreInsn{Kind: loadKind(op - (OpIStore - OpILoad)), Index: uint16(idx)}, err
	case OpIStore0, OpIStore1, OpIStore2, OpIStore3:
		return LocalStoreInsn{Kind: KindInt, Index: uint16(op - OpIStore0)}, nil
	case OpLStore0, OpLStore1, OpLStore2, OpLStore3:
		return LocalStoreInsn{Kind: KindLong, Index: uint16(op - OpLStore0)}, nil
	case OpFStore0, OpFStore1, OpFStore2, OpFStore3:
		return LocalStoreInsn{Kind: KindFloat, Index: uint16(op - OpFStore0)}, nil
	case OpDStore0, OpDStore1, OpDStore2, OpDStore3:
		return LocalStoreInsn{Kind: KindDouble, Index: uint16(op - OpDStore0)}, nil
	case OpAStore0, OpAStore1, OpAStore2, OpAStore3:
		return LocalStoreInsn{Kind: KindReference, Index: uint16(op - OpAStore0)}, nil
	case OpIALoad:
		return ArrayLoadInsn{Kind: KindInt}, nil
	case OpLALoad:
		return ArrayLoadInsn{Kind: KindLong}, nil
	case OpFALoad:
		return ArrayLoadInsn{Kind: KindFloat}, nil
	case OpDALoad:
		return ArrayLoadInsn{Kind: KindDouble}, nil
	case OpAALoad:
		return ArrayLoadInsn{Kind: KindReference}, nil
	case OpBALoad:
		return ArrayLoadInsn{Kind: KindByte}, nil
	case OpCALoad:
		return ArrayLoadInsn{Kind: KindChar}, nil
	case OpSALoad:
		return ArrayLoadInsn{Kind: KindShort}, nil
	case OpIAStore:
		return ArrayStoreInsn{Kind: KindInt}, nil
	case OpLAStore:
		return ArrayStoreInsn{Kind: KindLong}, nil
	case OpFAStore:
		return ArrayStoreInsn{Kind: KindFloat}, nil
	case OpDAStore:
		return ArrayStoreInsn{Kind: KindDouble}, nil
	case OpAAStore:
		return ArrayStoreInsn{Kind: KindReference}, nil
	case OpBAStore:
		return ArrayStoreInsn{Kind: KindByte}, nil
	case OpCAStore:
		return ArrayStoreInsn{Kind: KindChar}, nil
	case OpSAStore:
		return ArrayStoreInsn{Kind: KindShort}, nil
	case OpPop:
		return PopInsn{Words: 1}, nil
	case OpPop2:
		return PopInsn{Words: 2}, nil
	case OpDup:
		return DupInsn{Words: 1, Down: 0}, nil
	case OpDupX1:
		return DupInsn{Words: 1, Down: 1}, nil
	case OpDupX2:
		return DupInsn{Words: 1, Down: 2}, nil
	case OpDup2:
		return DupInsn{Words: 2, Down: 0}, nil
	case OpDup2X1:
		return DupInsn{Words: 2, Down: 1}, nil
	case OpDup2X2:
		return DupInsn{Words: 2, Down: 2}, nil
	case OpSwap:
		return SwapInsn{}, nil
	case OpIAdd:
		return AddInsn{Kind: KindInt}, nil
	case OpLAdd:
		return AddInsn{Kind: KindLong}, nil
	case OpFAdd:
		return AddInsn{Kind: KindFloat}, nil
	case OpDAdd:
		return AddInsn{Kind: KindDouble}, nil
	case OpISub:
		return SubtractInsn{Kind: KindInt}, nil
	case OpLSub:
		return SubtractInsn{Kind: KindLong}, nil
	case OpFSub:
		return SubtractInsn{Kind: KindFloat}, nil
	case OpDSub:
		return SubtractInsn{Kind: KindDouble}, nil
	case OpIMul:
		return MultiplyInsn{Kind: KindInt}, nil
	case OpLMul:
		return MultiplyInsn{Kind: KindLong}, nil
	case OpFMul:
		return MultiplyInsn{Kind: KindFloat}, nil
	case OpDMul:
		return MultiplyInsn{Kind: KindDouble}, nil
	case OpIDiv:
		return DivideInsn{Kind: KindInt}, nil
	case OpLDiv:
		return DivideInsn{Kind: KindLong}, nil
	case OpFDiv:
		return DivideInsn{Kind: KindFloat}, nil
	case OpDDiv:
		return DivideInsn{Kind: KindDouble}, nil
	case OpIRem:
		return RemainderInsn{Kind: KindInt}, nil
	case OpLRem:
		return RemainderInsn{Kind: KindLong}, nil
	case OpFRem:
		return RemainderInsn{Kind: KindFloat}, nil
	case OpDRem:
		return RemainderInsn{Kind: KindDouble}, nil
	case OpINeg:
		return NegateInsn{Kind: KindInt}, nil
	case OpLNeg:
		return NegateInsn{Kind: KindLong}, nil
	case OpFNeg:
		return NegateInsn{Kind: KindFloat}, nil
	case OpDNeg:
		return NegateInsn{Kind: KindDouble}, nil
	case OpIShl:
		return ShiftLeftInsn{Kind: KindInt}, nil
	case OpLShl:
		return ShiftLeftInsn{Kind: KindLong}, nil
	case OpIShr:
		return ShiftRightInsn{Kind: KindInt}, nil
	case OpLShr:
		return ShiftRightInsn{Kind: KindLong}, nil
	case OpIUshr:
		return LogicalShiftRightInsn{Kind: KindInt}, nil
	case OpLUshr:
		return LogicalShiftRightInsn{Kind: KindLong}, nil
	case OpIAnd:
		return AndInsn{Kind: KindInt}, nil
	case OpLAnd:
		return AndInsn{Kind: KindLong}, nil
	case OpIOr:
		return OrInsn{Kind: KindInt}, nil
	case OpLOr:
		return OrInsn{Kind: KindLong}, nil
	case OpIXor:
		return XorInsn{Kind: KindInt}, nil
	case OpLXor:
		return XorInsn{Kind: KindLong}, nil
	case OpIInc:
		idx, err := r.u8()
		if err != nil {
			return nil, err
		}
		amount, err := r.i8()
		return IncrementIntInsn{Index: uint16(idx), Amount: int16(amount)}, err
	case OpI2L:
		return ConvertInsn{From: KindInt, To: KindLong}, nil
	case OpI2F:
		return ConvertInsn{From: KindInt, To: KindFloat}, nil
	case OpI2D:
		return ConvertInsn{From: KindInt, To: KindDouble}, nil
	case OpL2I:
		return ConvertInsn{From: KindLong, To: KindInt}, nil
	case OpL2F:
		return ConvertInsn{From: KindLong, To: KindFloat}, nil
	case OpL2D:
		return ConvertInsn{From: KindLong, To: KindDouble}, nil
	case OpF2I:
		return ConvertInsn{From: KindFloat, To: KindInt}, nil
	case OpF2L:
		return ConvertInsn{From: KindFloat, To: KindLong}, nil
	case OpF2D:
		return ConvertInsn{From: KindFloat, To: KindDouble}, nil
	case OpD2I:
		return ConvertInsn{From: KindDouble, To: KindInt}, nil
	case OpD2L:
		return ConvertInsn{From: KindDouble, To: KindLong}, nil
	case OpD2F:
		return ConvertInsn{From: KindDouble, To: KindFloat}, nil
	case OpI2B:
		return ConvertInsn{From: KindInt, To: KindByte}, nil
	case OpI2C:
		return ConvertInsn{From: KindInt, To: KindChar}, nil
	case OpI2S:
		return ConvertInsn{From: KindInt, To: KindShort}, nil
	case OpLCmp:
		return CompareInsn{Kind: KindLong}, nil
	case OpFCmpL:
		return CompareInsn{Kind: KindFloat, PosOnNaN: false}, nil
	case OpFCmpG:
		return CompareInsn{Kind: KindFloat, PosOnNaN: true}, nil
	case OpDCmpL:
		return CompareInsn{Kind: KindDouble, PosOnNaN: false}, nil
	case OpDCmpG:
		return CompareInsn{Kind: KindDouble, PosOnNaN: true}, nil
	case OpIfEq, OpIfNe, OpIfLt, OpIfGe, OpIfGt, OpIfLe,
		OpIfICmpEq, OpIfICmpNe, OpIfICmpLt, OpIfICmpGe, OpIfICmpGt, OpIfICmpLe,
		OpIfACmpEq, OpIfACmpNe, OpIfNull, OpIfNonNull:
		offset, err := r.i16()
		if err != nil {
			return nil, err
		}
		target := uint32(int64(thisPC) + int64(offset))
		return ConditionalJumpInsn{Condition: condFromOpcode(op), Target: markTarget(targets, target)}, nil
	case OpGoto:
		offset, err := r.i16()
		if err != nil {
			return nil, err
		}
		target := uint32(int64(thisPC) + int64(offset))
		return JumpInsn{Target: markTarget(targets, target)}, nil
	case OpGotoW:
		offset, err := r.i32()
		if err != nil {
			return nil, err
		}
		target := uint32(int64(thisPC) + int64(offset))
		return JumpInsn{Target: markTarget(targets, target)}, nil
	case OpTableSwitch:
		return decodeTableSwitch(thisPC, r, targets)
	case OpLookupSwitch:
		return decodeLookupSwitch(thisPC, r, targets)
	case OpIReturn:
		return ReturnInsn{Kind: ReturnInt}, nil
	case OpLReturn:
		return ReturnInsn{Kind: ReturnLong}, nil
	case OpFReturn:
		return ReturnInsn{Kind: ReturnFloat}, nil
	case OpDReturn:
		return ReturnInsn{Kind: ReturnDouble}, nil
	case OpAReturn:
		return ReturnInsn{Kind: ReturnReference}, nil
	case OpReturn:
		return ReturnInsn{Kind: ReturnVoid}, nil
	case OpGetStatic, OpGetField:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, name, descriptor, err := cp.Fieldref(idx)
		return GetFieldInsn{Instance: op == OpGetField, Class: class, Name: name, Descriptor: descriptor}, err
	case OpPutStatic, OpPutField:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, name, descriptor, err := cp.Fieldref(idx)
		return PutFieldInsn{Instance: op == OpPutField, Class: class, Name: name, Descriptor: descriptor}, err
	case OpInvokeVirtual:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, name, descriptor, err := cp.Methodref(idx)
		return InvokeInsn{Kind: InvokeVirtual, Class: class, Name: name, Descriptor: descriptor}, err
	case OpInvokeSpecial:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, name, descriptor, isIface, err := cp.AnyMethod(idx)
		return InvokeInsn{Kind: InvokeSpecial, Class: class, Name: name, Descriptor: descriptor, IsInterfaceMethod: isIface}, err
	case OpInvokeStatic:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, name, descriptor, isIface, err := cp.AnyMethod(idx)
		return InvokeInsn{Kind: InvokeStatic, Class: class, Name: name, Descriptor: descriptor, IsInterfaceMethod: isIface}, err
	case OpInvokeInterface:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		if _, err := r.u8(); err != nil { // count, redundant with descriptor
			return nil, err
		}
		if _, err := r.u8(); err != nil { // must be zero
			return nil, err
		}
		class, name, descriptor, err := cp.InterfaceMethodref(idx)
		return InvokeInsn{Kind: InvokeInterface, Class: class, Name: name, Descriptor: descriptor}, err
	case OpInvokeDynamic:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		if _, err := r.u16(); err != nil { // must be zero
			return nil, err
		}
		bsmIdx, name, descriptor, err := cp.InvokeDynamic(idx)
		return InvokeDynamicInsn{BootstrapMethodAttrIndex: bsmIdx, Name: name, Descriptor: descriptor}, err
	case OpNew:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, err := cp.Class(idx)
		return NewObjectInsn{Class: class}, err
	case OpNewArray:
		code, err := r.u8()
		if err != nil {
			return nil, err
		}
		kind, err := arrayTypeKind(code)
		return NewArrayInsn{Kind: kind}, err
	case OpANewArray:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, err := cp.Class(idx)
		return ANewArrayInsn{Class: class}, err
	case OpArrayLength:
		return ArrayLengthInsn{}, nil
	case OpAThrow:
		return ThrowInsn{}, nil
	case OpCheckCast:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, err := cp.Class(idx)
		return CheckCastInsn{Class: class}, err
	case OpInstanceOf:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		class, err := cp.Class(idx)
		return InstanceOfInsn{Class: class}, err
	case OpMonitorEnter:
		return MonitorEnterInsn{}, nil
	case OpMonitorExit:
		return MonitorExitInsn{}, nil
	case OpWide:
		return decodeWide(r)
	case OpMultiANewArray:
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		dims, err := r.u8()
		if err != nil {
			return nil, err
		}
		class, err := cp.Class(idx)
		return MultiNewArrayInsn{Class: class, Dimensions: dims}, err
	case OpBreakpoint:
		return BreakpointInsn{}, nil
	case OpImpDep1:
		return ImpDep1Insn{}, nil
	case OpImpDep2:
		return ImpDep2Insn{}, nil
	case OpJsr, OpJsrW, OpRet:
		return nil, newErr(KindUnimplemented, "jsr/jsr_w/ret at pc %d are not supported (deprecated since class file version 51.0)", thisPC)
	default:
		return nil, newErr(KindUnknownInstruction, "unknown opcode 0x%02X at pc %d", op, thisPC)
	}
}

func loadKind(op Opcode) PrimitiveKind {
	switch op {
	case OpILoad:
		return KindInt
	case OpLLoad:
		return KindLong
	case OpFLoad:
		return KindFloat
	case OpDLoad:
		return KindDouble
	default:
		return KindReference
	}
}

func arrayTypeKind(code uint8) (PrimitiveKind, error) {
	switch code {
	case 4:
		return KindBoolean, nil
	case 5:
		return KindChar, nil
	case 6:
		return KindFloat, nil
	case 7:
		return KindDouble, nil
	case 8:
		return KindByte, nil
	case 9:
		return KindShort, nil
	case 10:
		return KindInt, nil
	case 11:
		return KindLong, nil
	default:
		return 0, newErr(KindInvalidInstruction, "newarray: invalid atype %d", code)
	}
}

func arrayTypeCode(kind PrimitiveKind) (uint8, error) {
	switch kind {
	case KindBoolean:
		return 4, nil
	case KindChar:
		return 5, nil
	case KindFloat:
		return 6, nil
	case KindDouble:
		return 7, nil
	case KindByte:
		return 8, nil
	case KindShort:
		return 9, nil
	case KindInt:
		return 10, nil
	case KindLong:
		return 11, nil
	default:
		return 0, newErr(KindInvalidInstruction, "newarray: %v is not a primitive array element type", kind)
	}
}

func decodeTableSwitch(thisPC uint32, r *reader, targets map[uint32]bool) (Insn, error) {
	if err := skipPadding(r); err != nil {
		return nil, err
	}
	def, err := r.i32()
	if err != nil {
		return nil, err
	}
	low, err := r.i32()
	if err != nil {
		return nil, err
	}
	high, err := r.i32()
	if err != nil {
		return nil, err
	}
	if high < low {
		return nil, newErr(KindInvalidInstruction, "tableswitch: high %d < low %d", high, low)
	}
	n := int64(high) - int64(low) + 1
	cases := make([]Label, 0, n)
	for i := int64(0); i < n; i++ {
		off, err := r.i32()
		if err != nil {
			return nil, err
		}
		target := uint32(int64(thisPC) + int64(off))
		cases = append(cases, markTarget(targets, target))
	}
	defTarget := uint32(int64(thisPC) + int64(def))
	return TableSwitchInsn{Default: markTarget(targets, defTarget), Low: low, Cases: cases}, nil
}

func decodeLookupSwitch(thisPC uint32, r *reader, targets map[uint32]bool) (Insn, error) {
	if err := skipPadding(r); err != nil {
		return nil, err
	}
	def, err := r.i32()
	if err != nil {
		return nil, err
	}
	npairs, err := r.i32()
	if err != nil {
		return nil, err
	}
	if npairs < 0 {
		return nil, newErr(KindInvalidInstruction, "lookupswitch: negative npairs %d", npairs)
	}
	keys := make([]int32, 0, npairs)
	cases := make([]Label, 0, npairs)
	for i := int32(0); i < npairs; i++ {
		key, err := r.i32()
		if err != nil {
			return nil, err
		}
		off, err := r.i32()
		if err != nil {
			return nil, err
		}
		target := uint32(int64(thisPC) + int64(off))
		keys = append(keys, key)
		cases = append(cases, markTarget(targets, target))
	}
	defTarget := uint32(int64(thisPC) + int64(def))
	return LookupSwitchInsn{Default: markTarget(targets, defTarget), Keys: keys, Cases: cases}, nil
}

// skipPadding consumes the 0-3 zero bytes that pad a switch instruction
// so its first 4-byte operand field starts at a multiple of 4 from the
// start of the code array.
func skipPadding(r *reader) error {
	pad := (4 - (r.pos % 4)) % 4
	_, err := r.readBytes(pad)
	return err
}

func decodeWide(r *reader) (Insn, error) {
	sub, err := r.u8()
	if err != nil {
		return nil, err
	}
	if Opcode(sub) == OpIInc {
		idx, err := r.u16()
		if err != nil {
			return nil, err
		}
		amount, err := r.i16()
		return IncrementIntInsn{Index: idx, Amount: amount}, err
	}
	idx, err := r.u16()
	if err != nil {
		return nil, err
	}
	switch Opcode(sub) {
	case OpILoad, OpLLoad, OpFLoad, OpDLoad, OpALoad:
		return LocalLoadInsn{Kind: loadKind(Opcode(sub)), Index: idx}, nil
	case OpIStore, OpLStore, OpFStore, OpDStore, OpAStore:
		return LocalStoreInsn{Kind: loadKind(Opcode(sub) - (OpIStore - OpILoad)), Index: idx}, nil
	case OpRet:
		return nil, newErr(KindUnimplemented, "wide ret is not supported")
	default:
		return nil, newErr(KindInvalidInstruction, "wide: unsupported sub-opcode 0x%02X", sub)
	}
}

func parseLdc(index uint16, cp *ConstantPool) (Insn, error) {
	e, err := cp.get(index)
	if err != nil {
		return nil, err
	}
	switch e.tag() {
	case TagString:
		v, err := cp.String(index)
		return LdcInsn{Kind: LdcString, String: v}, err
	case TagInteger:
		v, err := cp.Integer(index)
		return LdcInsn{Kind: LdcInt, Int: v}, err
	case TagFloat:
		v, err := cp.Float(index)
		return LdcInsn{Kind: LdcFloat, Float: v}, err
	case TagLong:
		v, err := cp.Long(index)
		return LdcInsn{Kind: LdcLong, Long: v}, err
	case TagDouble:
		v, err := cp.Double(index)
		return LdcInsn{Kind: LdcDouble, Double: v}, err
	case TagClass:
		v, err := cp.Class(index)
		return LdcInsn{Kind: LdcClass, Class: v}, err
	case TagMethodType:
		v, err := cp.MethodType(index)
		return LdcInsn{Kind: LdcMethodType, MethodDescriptor: v}, err
	case TagMethodHandle:
		return LdcInsn{Kind: LdcMethodHandle, RawIndex: index}, nil
	case TagDynamic:
		return LdcInsn{Kind: LdcDynamic, RawIndex: index}, nil
	default:
		return nil, newErr(KindIncompatibleCPEntry, "ldc: index %d has unloadable tag %s", index, e.tag())
	}
}

func condFromOpcode(op Opcode) JumpCondition {
	switch op {
	case OpIfEq:
		return CondIntEqZero
	case OpIfNe:
		return CondIntNeZero
	case OpIfLt:
		return CondIntLtZero
	case OpIfGe:
		return CondIntGeZero
	case OpIfGt:
		return CondIntGtZero
	case OpIfLe:
		return CondIntLeZero
	case OpIfICmpEq:
		return CondIntEq
	case OpIfICmpNe:
		return CondIntNe
	case OpIfICmpLt:
		return CondIntLt
	case OpIfICmpGe:
		return CondIntGe
	case OpIfICmpGt:
		return CondIntGt
	case OpIfICmpLe:
		return CondIntLe
	case OpIfACmpEq:
		return CondRefEq
	case OpIfACmpNe:
		return CondRefNe
	case OpIfNull:
		return CondIsNull
	case OpIfNonNull:
		return CondIsNotNull
	default:
		return CondIntEqZero
	}
}

func condOpcode(c JumpCondition) Opcode {
	switch c {
	case CondIntEqZero:
		return OpIfEq
	case CondIntNeZero:
		return OpIfNe
	case CondIntLtZero:
		return OpIfLt
	case CondIntGeZero:
		return OpIfGe
	case CondIntGtZero:
		return OpIfGt
	case CondIntLeZero:
		return OpIfLe
	case CondIntEq:
		return OpIfICmpEq
	case CondIntNe:
		return OpIfICmpNe
	case CondIntLt:
		return OpIfICmpLt
	case CondIntGe:
		return OpIfICmpGe
	case CondIntGt:
		return OpIfICmpGt
	case CondIntLe:
		return OpIfICmpLe
	case CondRefEq:
		return OpIfACmpEq
	case CondRefNe:
		return OpIfACmpNe
	case CondIsNull:
		return OpIfNull
	case CondIsNotNull:
		return OpIfNonNull
	default:
		return OpIfEq
	}
}

// invertCondOpcode returns the opcode for the logical negation of c,
// used when promoting a conditional branch to reach a goto_w: "if cond
// L" becomes "if !cond skip; goto_w L; skip:".
func invertCondOpcode(c JumpCondition) Opcode {
	switch c {
	case CondIntEqZero:
		return OpIfNe
	case CondIntNeZero:
		return OpIfEq
	case CondIntLtZero:
		return OpIfGe
	case CondIntGeZero:
		return OpIfLt
	case CondIntGtZero:
		return OpIfLe
	case CondIntLeZero:
		return OpIfGt
	case CondIntEq:
		return OpIfICmpNe
	case CondIntNe:
		return OpIfICmpEq
	case CondIntLt:
		return OpIfICmpGe
	case CondIntGe:
		return OpIfICmpLt
	case CondIntGt:
		return OpIfICmpLe
	case CondIntLe:
		return OpIfICmpGt
	case CondRefEq:
		return OpIfACmpNe
	case CondRefNe:
		return OpIfACmpEq
	case CondIsNull:
		return OpIfNonNull
	case CondIsNotNull:
		return OpIfNull
	default:
		return OpIfNe
	}
}

// jumpPatchKind distinguishes the two operand widths a jump reference
// can take during encode.
type jumpPatchKind uint8

const (
	patchI16 jumpPatchKind = iota
	patchI32
)

type jumpPatch struct {
	kind      jumpPatchKind
	operandAt uint32 // byte offset of the operand field to patch
	fromPC    uint32 // the pc the offset is measured from
	target    Label
	siteIndex int // index into insns of the Jump/ConditionalJump that produced this patch, or -1
}

// encodeCode serializes code's instruction stream back into a raw
// bytecode array, resolving every label to a concrete pc. Because a
// label's final pc depends on how every earlier jump in the method was
// encoded, and promoting one jump from a 16-bit to a 32-bit offset can
// push a later label out of 16-bit range, this relaxes to a fixed point:
// it keeps re-encoding, promoting whichever jumps overflowed last time,
// until a pass produces no new overflow.
func encodeCode(code *InsnList, cpw *ConstantPoolWriter) ([]byte, map[uint32]uint32, error) {
	promoted := make(map[int]bool)
	insns := code.Insns()

	for iteration := 0; ; iteration++ {
		if iteration > len(insns)+4 {
			return nil, nil, newErr(KindOther, "jump offset relaxation did not converge")
		}
		w := newWriter()
		labelPC := make(map[uint32]uint32)
		var patches []jumpPatch
		overflowed := false

		for idx, insn := range insns {
			switch v := insn.(type) {
			case LabelInsn:
				labelPC[v.Label.ID] = w.len()
			case JumpInsn:
				fromPC := w.len()
				if promoted[idx] {
					w.u8(uint8(OpGotoW))
					at := w.len()
					w.i32(0)
					patches = append(patches, jumpPatch{kind: patchI32, operandAt: at, fromPC: fromPC, target: v.Target, siteIndex: idx})
				} else {
					w.u8(uint8(OpGoto))
					at := w.len()
					w.i16(0)
					patches = append(patches, jumpPatch{kind: patchI16, operandAt: at, fromPC: fromPC, target: v.Target, siteIndex: idx})
				}
			case ConditionalJumpInsn:
				fromPC := w.len()
				if promoted[idx] {
					w.u8(uint8(invertCondOpcode(v.Condition)))
					w.i16(8) // skip past the following goto_w (3 + 5 bytes)
					w.u8(uint8(OpGotoW))
					at := w.len()
					w.i32(0)
					patches = append(patches, jumpPatch{kind: patchI32, operandAt: at, fromPC: fromPC + 3, target: v.Target, siteIndex: idx})
				} else {
					w.u8(uint8(condOpcode(v.Condition)))
					at := w.len()
					w.i16(0)
					patches = append(patches, jumpPatch{kind: patchI16, operandAt: at, fromPC: fromPC, target: v.Target, siteIndex: idx})
				}
			case TableSwitchInsn:
				fromPC := w.len()
				w.u8(uint8(OpTableSwitch))
				pad := (4 - (w.len() % 4)) % 4
				w.writeBytes(make([]byte, pad))
				defAt := w.len()
				w.i32(0)
				w.i32(v.Low)
				w.i32(v.Low + int32(len(v.Cases)) - 1)
				caseAts := make([]uint32, len(v.Cases))
				for i := range v.Cases {
					caseAts[i] = w.len()
					w.i32(0)
				}
				patches = append(patches, jumpPatch{kind: patchI32, operandAt: defAt, fromPC: fromPC, target: v.Default, siteIndex: -1})
				for i, c := range v.Cases {
					patches = append(patches, jumpPatch{kind: patchI32, operandAt: caseAts[i], fromPC: fromPC, target: c, siteIndex: -1})
				}
			case LookupSwitchInsn:
				fromPC := w.len()
				w.u8(uint8(OpLookupSwitch))
				pad := (4 - (w.len() % 4)) % 4
				w.writeBytes(make([]byte, pad))
				defAt := w.len()
				w.i32(0)
				w.i32(int32(len(v.Keys)))
				caseAts := make([]uint32, len(v.Cases))
				for i, k := range v.Keys {
					w.i32(k)
					caseAts[i] = w.len()
					w.i32(0)
				}
				patches = append(patches, jumpPatch{kind: patchI32, operandAt: defAt, fromPC: fromPC, target: v.Default, siteIndex: -1})
				for i, c := range v.Cases {
					patches = append(patches, jumpPatch{kind: patchI32, operandAt: caseAts[i], fromPC: fromPC, target: c, siteIndex: -1})
				}
			default:
				if err := encodeSimpleInsn(w, insn, cpw); err != nil {
					return nil, nil, err
				}
			}
		}

		for _, p := range patches {
			targetPC, ok := labelPC[p.target.ID]
			if !ok {
				return nil, nil, wrapErr(KindUnmappedLabel, ErrUnmappedLabel, "label %d was never placed", p.target.ID)
			}
			offset := int64(targetPC) - int64(p.fromPC)
			switch p.kind {
			case patchI16:
				if offset < math.MinInt16 || offset > math.MaxInt16 {
					if p.siteIndex >= 0 {
						promoted[p.siteIndex] = true
					}
					overflowed = true
					continue
				}
				w.patchI16(p.operandAt, int16(offset))
			case patchI32:
				if offset < math.MinInt32 || offset > math.MaxInt32 {
					return nil, nil, newErr(KindOutOfBoundsJumpIndex, "jump offset %d exceeds 32 bits", offset)
				}
				w.patchI32(p.operandAt, int32(offset))
			}
		}

		if overflowed {
			continue
		}
		return w.bytes(), labelPC, nil
	}
}

func encodeSimpleInsn(w *writer, insn Insn, cpw *ConstantPoolWriter) error {
	switch v := insn.(type) {
	case NopInsn:
		w.u8(uint8(OpNop))
	case PushNullInsn:
		w.u8(uint8(OpAConstNull))
	case PushIntInsn:
		encodePushInt(w, v.Value, cpw)
	case PushLongInsn:
		w.u8(uint8(int64(OpLConst0) + v.Value))
	case PushFloatInsn:
		w.u8(uint8(int(OpFConst0) + int(v.Value)))
	case PushDoubleInsn:
		w.u8(uint8(int(OpDConst0) + int(v.Value)))
	case LdcInsn:
		return encodeLdc(w, v, cpw)
	case LocalLoadInsn:
		encodeLocalLoad(w, v)
	case LocalStoreInsn:
		encodeLocalStore(w, v)
	case ArrayLoadInsn:
		w.u8(uint8(arrayLoadOpcode(v.Kind)))
	case ArrayStoreInsn:
		w.u8(uint8(arrayStoreOpcode(v.Kind)))
	case PopInsn:
		if v.Words == 1 {
			w.u8(uint8(OpPop))
		} else {
			w.u8(uint8(OpPop2))
		}
	case DupInsn:
		w.u8(uint8(dupOpcode(v)))
	case SwapInsn:
		w.u8(uint8(OpSwap))
	case AddInsn:
		w.u8(uint8(arithOpcode(OpIAdd, v.Kind)))
	case SubtractInsn:
		w.u8(uint8(arithOpcode(OpISub, v.Kind)))
	case MultiplyInsn:
		w.u8(uint8(arithOpcode(OpIMul, v.Kind)))
	case DivideInsn:
		w.u8(uint8(arithOpcode(OpIDiv, v.Kind)))
	case RemainderInsn:
		w.u8(uint8(arithOpcode(OpIRem, v.Kind)))
	case NegateInsn:
		w.u8(uint8(arithOpcode(OpINeg, v.Kind)))
	case ShiftLeftInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLShl))
		} else {
			w.u8(uint8(OpIShl))
		}
	case ShiftRightInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLShr))
		} else {
			w.u8(uint8(OpIShr))
		}
	case LogicalShiftRightInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLUshr))
		} else {
			w.u8(uint8(OpIUshr))
		}
	case AndInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLAnd))
		} else {
			w.u8(uint8(OpIAnd))
		}
	case OrInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLOr))
		} else {
			w.u8(uint8(OpIOr))
		}
	case XorInsn:
		if v.Kind == KindLong {
			w.u8(uint8(OpLXor))
		} else {
			w.u8(uint8(OpIXor))
		}
	case IncrementIntInsn:
		encodeIinc(w, v)
	case ConvertInsn:
		return encodeConvert(w, v)
	case CompareInsn:
		encodeCompare(w, v)
	case ReturnInsn:
		encodeReturn(w, v)
	case GetFieldInsn:
		idx := cpw.Fieldref(v.Class, v.Name, v.Descriptor)
		if v.Instance {
			w.u8(uint8(OpGetField))
		} else {
			w.u8(uint8(OpGetStatic))
		}
		w.u16(idx)
	case PutFieldInsn:
		idx := cpw.Fieldref(v.Class, v.Name, v.Descriptor)
		if v.Instance {
			w.u8(uint8(OpPutField))
		} else {
			w.u8(uint8(OpPutStatic))
		}
		w.u16(idx)
	case InvokeInsn:
		return encodeInvoke(w, v, cpw)
	case InvokeDynamicInsn:
		idx := cpw.InvokeDynamic(v.BootstrapMethodAttrIndex, v.Name, v.Descriptor)
		w.u8(uint8(OpInvokeDynamic))
		w.u16(idx)
		w.u16(0)
	case NewObjectInsn:
		w.u8(uint8(OpNew))
		w.u16(cpw.Class(v.Class))
	case NewArrayInsn:
		code, err := arrayTypeCode(v.Kind)
		if err != nil {
			return err
		}
		w.u8(uint8(OpNewArray))
		w.u8(code)
	case ANewArrayInsn:
		w.u8(uint8(OpANewArray))
		w.u16(cpw.Class(v.Class))
	case MultiNewArrayInsn:
		w.u8(uint8(OpMultiANewArray))
		w.u16(cpw.Class(v.Class))
		w.u8(v.Dimensions)
	case CheckCastInsn:
		w.u8(uint8(OpCheckCast))
		w.u16(cpw.Class(v.Class))
	case InstanceOfInsn:
		w.u8(uint8(OpInstanceOf))
		w.u16(cpw.Class(v.Class))
	case ArrayLengthInsn:
		w.u8(uint8(OpArrayLength))
	case ThrowInsn:
		w.u8(uint8(OpAThrow))
	case MonitorEnterInsn:
		w.u8(uint8(OpMonitorEnter))
	case MonitorExitInsn:
		w.u8(uint8(OpMonitorExit))
	case BreakpointInsn:
		w.u8(uint8(OpBreakpoint))
	case ImpDep1Insn:
		w.u8(uint8(OpImpDep1))
	case ImpDep2Insn:
		w.u8(uint8(OpImpDep2))
	default:
		return newErr(KindInvalidInstruction, "encode: unhandled instruction %T", insn)
	}
	return nil
}

func encodePushInt(w *writer, value int32, cpw *ConstantPoolWriter) {
	switch {
	case value >= -1 && value <= 5:
		w.u8(uint8(int32(OpIConst0) + value))
	case value >= -128 && value <= 127:
		w.u8(uint8(OpBiPush))
		w.i8(int8(value))
	case value >= -32768 && value <= 32767:
		w.u8(uint8(OpSiPush))
		w.i16(int16(value))
	default:
		// Outside sipush range: falls back to ldc of an interned
		// Integer entry, same as javac would emit for a constant this
		// large.
		emitLdcIndex(w, cpw.Integer(value))
	}
}

func encodeLocalLoad(w *writer, v LocalLoadInsn) {
	if v.Index <= 3 {
		w.u8(uint8(implicitLoadOpcode(v.Kind, v.Index)))
		return
	}
	if v.Index <= 255 {
		w.u8(uint8(explicitLoadOpcode(v.Kind)))
		w.u8(uint8(v.Index))
		return
	}
	w.u8(uint8(OpWide))
	w.u8(uint8(explicitLoadOpcode(v.Kind)))
	w.u16(v.Index)
}

func encodeLocalStore(w *writer, v LocalStoreInsn) {
	if v.Index <= 3 {
		w.u8(uint8(implicitStoreOpcode(v.Kind, v.Index)))
		return
	}
	if v.Index <= 255 {
		w.u8(uint8(explicitStoreOpcode(v.Kind)))
		w.u8(uint8(v.Index))
		return
	}
	w.u8(uint8(OpWide))
	w.u8(uint8(explicitStoreOpcode(v.Kind)))
	w.u16(v.Index)
}

func implicitLoadOpcode(kind PrimitiveKind, index uint16) Opcode {
	var base Opcode
	switch kind {
	case KindInt:
		base = OpILoad0
	case KindLong:
		base = OpLLoad0
	case KindFloat:
		base = OpFLoad0
	case KindDouble:
		base = OpDLoad0
	default:
		base = OpALoad0
	}
	return base + Opcode(index)
}

func explicitLoadOpcode(kind PrimitiveKind) Opcode {
	switch kind {
	case KindInt:
		return OpILoad
	case KindLong:
		return OpLLoad
	case KindFloat:
		return OpFLoad
	case KindDouble:
		return OpDLoad
	default:
		return OpALoad
	}
}

func implicitStoreOpcode(kind PrimitiveKind, index uint16) Opcode {
	var base Opcode
	switch kind {
	case KindInt:
		base = OpIStore0
	case KindLong:
		base = OpLStore0
	case KindFloat:
		base = OpFStore0
	case KindDouble:
		base = OpDStore0
	default:
		base = OpAStore0
	}
	return base + Opcode(index)
}

func explicitStoreOpcode(kind PrimitiveKind) Opcode {
	switch kind {
	case KindInt:
		return OpIStore
	case KindLong:
		return OpLStore
	case KindFloat:
		return OpFStore
	case KindDouble:
		return OpDStore
	default:
		return OpAStore
	}
}

func arrayLoadOpcode(kind PrimitiveKind) Opcode {
	switch kind {
	case KindInt:
		return OpIALoad
	case KindLong:
		return OpLALoad
	case KindFloat:
		return OpFALoad
	case KindDouble:
		return OpDALoad
	case KindByte, KindBoolean:
		return OpBALoad
	case KindChar:
		return OpCALoad
	case KindShort:
		return OpSALoad
	default:
		return OpAALoad
	}
}

func arrayStoreOpcode(kind PrimitiveKind) Opcode {
	switch kind {
	case KindInt:
		return OpIAStore
	case KindLong:
		return OpLAStore
	case KindFloat:
		return OpFAStore
	case KindDouble:
		return OpDAStore
	case KindByte, KindBoolean:
		return OpBAStore
	case KindChar:
		return OpCAStore
	case KindShort:
		return OpSAStore
	default:
		return OpAAStore
	}
}

func dupOpcode(v DupInsn) Opcode {
	switch {
	case v.Words == 1 && v.Down == 0:
		return OpDup
	case v.Words == 1 && v.Down == 1:
		return OpDupX1
	case v.Words == 1 && v.Down == 2:
		return OpDupX2
	case v.Words == 2 && v.Down == 0:
		return OpDup2
	case v.Words == 2 && v.Down == 1:
		return OpDup2X1
	default:
		return OpDup2X2
	}
}

func arithOpcode(intForm Opcode, kind PrimitiveKind) Opcode {
	offset := Opcode(0)
	switch kind {
	case KindInt:
		offset = 0
	case KindLong:
		offset = 1
	case KindFloat:
		offset = 2
	case KindDouble:
		offset = 3
	}
	return intForm + offset
}

func encodeIinc(w *writer, v IncrementIntInsn) {
	if v.Index <= 255 && v.Amount >= -128 && v.Amount <= 127 {
		w.u8(uint8(OpIInc))
		w.u8(uint8(v.Index))
		w.i8(int8(v.Amount))
		return
	}
	w.u8(uint8(OpWide))
	w.u8(uint8(OpIInc))
	w.u16(v.Index)
	w.i16(v.Amount)
}

func encodeConvert(w *writer, v ConvertInsn) error {
	switch {
	case v.From == KindInt && v.To == KindLong:
		w.u8(uint8(OpI2L))
	case v.From == KindInt && v.To == KindFloat:
		w.u8(uint8(OpI2F))
	case v.From == KindInt && v.To == KindDouble:
		w.u8(uint8(OpI2D))
	case v.From == KindLong && v.To == KindInt:
		w.u8(uint8(OpL2I))
	case v.From == KindLong && v.To == KindFloat:
		w.u8(uint8(OpL2F))
	case v.From == KindLong && v.To == KindDouble:
		w.u8(uint8(OpL2D))
	case v.From == KindFloat && v.To == KindInt:
		w.u8(uint8(OpF2I))
	case v.From == KindFloat && v.To == KindLong:
		w.u8(uint8(OpF2L))
	case v.From == KindFloat && v.To == KindDouble:
		w.u8(uint8(OpF2D))
	case v.From == KindDouble && v.To == KindInt:
		w.u8(uint8(OpD2I))
	case v.From == KindDouble && v.To == KindLong:
		w.u8(uint8(OpD2L))
	case v.From == KindDouble && v.To == KindFloat:
		w.u8(uint8(OpD2F))
	case v.From == KindInt && v.To == KindByte:
		w.u8(uint8(OpI2B))
	case v.From == KindInt && v.To == KindChar:
		w.u8(uint8(OpI2C))
	case v.From == KindInt && v.To == KindShort:
		w.u8(uint8(OpI2S))
	default:
		return newErr(KindInvalidInstruction, "no conversion opcode from %v to %v", v.From, v.To)
	}
	return nil
}

func encodeCompare(w *writer, v CompareInsn) {
	switch v.Kind {
	case KindLong:
		w.u8(uint8(OpLCmp))
	case KindFloat:
		if v.PosOnNaN {
			w.u8(uint8(OpFCmpG))
		} else {
			w.u8(uint8(OpFCmpL))
		}
	case KindDouble:
		if v.PosOnNaN {
			w.u8(uint8(OpDCmpG))
		} else {
			w.u8(uint8(OpDCmpL))
		}
	}
}

func encodeReturn(w *writer, v ReturnInsn) {
	switch v.Kind {
	case ReturnVoid:
		w.u8(uint8(OpReturn))
	case ReturnInt:
		w.u8(uint8(OpIReturn))
	case ReturnLong:
		w.u8(uint8(OpLReturn))
	case ReturnFloat:
		w.u8(uint8(OpFReturn))
	case ReturnDouble:
		w.u8(uint8(OpDReturn))
	case ReturnReference:
		w.u8(uint8(OpAReturn))
	}
}

// encodeInvoke selects the invoke* opcode from v.Kind and, for
// invokeinterface, computes the argument-word count the wire format
// carries alongside the method reference (one word per parameter slot,
// long/double counting as two, plus one for the receiver).
func encodeInvoke(w *writer, v InvokeInsn, cpw *ConstantPoolWriter) error {
	switch v.Kind {
	case InvokeVirtual:
		w.u8(uint8(OpInvokeVirtual))
		w.u16(cpw.Methodref(v.Class, v.Name, v.Descriptor))
	case InvokeSpecial:
		w.u8(uint8(OpInvokeSpecial))
		w.u16(cpw.AnyMethod(v.Class, v.Name, v.Descriptor, v.IsInterfaceMethod))
	case InvokeStatic:
		w.u8(uint8(OpInvokeStatic))
		w.u16(cpw.AnyMethod(v.Class, v.Name, v.Descriptor, v.IsInterfaceMethod))
	case InvokeInterface:
		desc, err := ParseMethodDescriptor(v.Descriptor)
		if err != nil {
			return err
		}
		count := 1
		for _, p := range desc.Params {
			if p.Dimensions == 0 && (p.Primitive == PrimLong || p.Primitive == PrimDouble) {
				count += 2
			} else {
				count++
			}
		}
		w.u8(uint8(OpInvokeInterface))
		w.u16(cpw.InterfaceMethodref(v.Class, v.Name, v.Descriptor))
		w.u8(uint8(count))
		w.u8(0)
	default:
		return newErr(KindInvalidInstruction, "encode: unknown invoke kind %d", v.Kind)
	}
	return nil
}

func encodeLdc(w *writer, v LdcInsn, cpw *ConstantPoolWriter) error {
	switch v.Kind {
	case LdcString:
		emitLdcIndex(w, cpw.String(v.String))
	case LdcInt:
		emitLdcIndex(w, cpw.Integer(v.Int))
	case LdcFloat:
		emitLdcIndex(w, cpw.Float(v.Float))
	case LdcLong:
		w.u8(uint8(OpLdc2W))
		w.u16(cpw.Long(v.Long))
	case LdcDouble:
		w.u8(uint8(OpLdc2W))
		w.u16(cpw.Double(v.Double))
	case LdcClass:
		emitLdcIndex(w, cpw.Class(v.Class))
	case LdcMethodType:
		emitLdcIndex(w, cpw.MethodType(v.MethodDescriptor))
	case LdcMethodHandle, LdcDynamic:
		// RawIndex already names a live entry in the pool this code was
		// decoded from; carried through verbatim since no interning
		// step can reconstruct a MethodHandle/Dynamic entry without
		// resolving its bootstrap method, which is out of scope.
		emitLdcIndex(w, v.RawIndex)
	default:
		return newErr(KindInvalidInstruction, "encode: unknown ldc kind %d", v.Kind)
	}
	return nil
}

func emitLdcIndex(w *writer, index uint16) {
	if index <= 0xFF {
		w.u8(uint8(OpLdc))
		w.u8(uint8(index))
		return
	}
	w.u8(uint8(OpLdcW))
	w.u16(index)
}
