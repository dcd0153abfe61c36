// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

// Opcode is a single bytecode instruction's leading byte.
type Opcode uint8

// The defined JVM opcodes, named per the JVM specification.
const (
	OpNop             Opcode = 0x00
	OpAConstNull      Opcode = 0x01
	OpIConstM1        Opcode = 0x02
	OpIConst0         Opcode = 0x03
	OpIConst1         Opcode = 0x04
	OpIConst2         Opcode = 0x05
	OpIConst3         Opcode = 0x06
	OpIConst4         Opcode = 0x07
	OpIConst5         Opcode = 0x08
	OpLConst0         Opcode = 0x09
	OpLConst1         Opcode = 0x0A
	OpFConst0         Opcode = 0x0B
	OpFConst1         Opcode = 0x0C
	OpFConst2         Opcode = 0x0D
	OpDConst0         Opcode = 0x0E
	OpDConst1         Opcode = 0x0F
	OpBiPush          Opcode = 0x10
	OpSiPush          Opcode = 0x11
	OpLdc             Opcode = 0x12
	OpLdcW            Opcode = 0x13
	OpLdc2W           Opcode = 0x14
	OpILoad           Opcode = 0x15
	OpLLoad           Opcode = 0x16
	OpFLoad           Opcode = 0x17
	OpDLoad           Opcode = 0x18
	OpALoad           Opcode = 0x19
	OpILoad0          Opcode = 0x1A
	OpILoad1          Opcode = 0x1B
	OpILoad2          Opcode = 0x1C
	OpILoad3          Opcode = 0x1D
	OpLLoad0          Opcode = 0x1E
	OpLLoad1          Opcode = 0x1F
	OpLLoad2          Opcode = 0x20
	OpLLoad3          Opcode = 0x21
	OpFLoad0          Opcode = 0x22
	OpFLoad1          Opcode = 0x23
	OpFLoad2          Opcode = 0x24
	OpFLoad3          Opcode = 0x25
	OpDLoad0          Opcode = 0x26
	OpDLoad1          Opcode = 0x27
	OpDLoad2          Opcode = 0x28
	OpDLoad3          Opcode = 0x29
	OpALoad0          Opcode = 0x2A
	OpALoad1          Opcode = 0x2B
	OpALoad2          Opcode = 0x2C
	OpALoad3          Opcode = 0x2D
	OpIALoad          Opcode = 0x2E
	OpLALoad          Opcode = 0x2F
	OpFALoad          Opcode = 0x30
	OpDALoad          Opcode = 0x31
	OpAALoad          Opcode = 0x32
	OpBALoad          Opcode = 0x33
	OpCALoad          Opcode = 0x34
	OpSALoad          Opcode = 0x35
	OpIStore          Opcode = 0x36
	OpLStore          Opcode = 0x37
	OpFStore          Opcode = 0x38
	OpDStore          Opcode = 0x39
	OpAStore          Opcode = 0x3A
	OpIStore0         Opcode = 0x3B
	OpIStore1         Opcode = 0x3C
	OpIStore2         Opcode = 0x3D
	OpIStore3         Opcode = 0x3E
	OpLStore0         Opcode = 0x3F
	OpLStore1         Opcode = 0x40
	OpLStore2         Opcode = 0x41
	OpLStore3         Opcode = 0x42
	OpFStore0         Opcode = 0x43
	OpFStore1         Opcode = 0x44
	OpFStore2         Opcode = 0x45
	OpFStore3         Opcode = 0x46
	OpDStore0         Opcode = 0x47
	OpDStore1         Opcode = 0x48
	OpDStore2         Opcode = 0x49
	OpDStore3         Opcode = 0x4A
	OpAStore0         Opcode = 0x4B
	OpAStore1         Opcode = 0x4C
	OpAStore2         Opcode = 0x4D
	OpAStore3         Opcode = 0x4E
	OpIAStore         Opcode = 0x4F
	OpLAStore         Opcode = 0x50
	OpFAStore         Opcode = 0x51
	OpDAStore         Opcode = 0x52
	OpAAStore         Opcode = 0x53
	OpBAStore         Opcode = 0x54
	OpCAStore         Opcode = 0x55
	OpSAStore         Opcode = 0x56
	OpPop             Opcode = 0x57
	OpPop2            Opcode = 0x58
	OpDup             Opcode = 0x59
	OpDupX1           Opcode = 0x5A
	OpDupX2           Opcode = 0x5B
	OpDup2            Opcode = 0x5C
	OpDup2X1          Opcode = 0x5D
	OpDup2X2          Opcode = 0x5E
	OpSwap            Opcode = 0x5F
	OpIAdd            Opcode = 0x60
	OpLAdd            Opcode = 0x61
	OpFAdd            Opcode = 0x62
	OpDAdd            Opcode = 0x63
	OpISub            Opcode = 0x64
	OpLSub            Opcode = 0x65
	OpFSub            Opcode = 0x66
	OpDSub            Opcode = 0x67
	OpIMul            Opcode = 0x68
	OpLMul            Opcode = 0x69
	OpFMul            Opcode = 0x6A
	OpDMul            Opcode = 0x6B
	OpIDiv            Opcode = 0x6C
	OpLDiv            Opcode = 0x6D
	OpFDiv            Opcode = 0x6E
	OpDDiv            Opcode = 0x6F
	OpIRem            Opcode = 0x70
	OpLRem            Opcode = 0x71
	OpFRem            Opcode = 0x72
	OpDRem            Opcode = 0x73
	OpINeg            Opcode = 0x74
	OpLNeg            Opcode = 0x75
	OpFNeg            Opcode = 0x76
	OpDNeg            Opcode = 0x77
	OpIShl            Opcode = 0x78
	OpLShl            Opcode = 0x79
	OpIShr            Opcode = 0x7A
	OpLShr            Opcode = 0x7B
	OpIUshr           Opcode = 0x7C
	OpLUshr           Opcode = 0x7D
	OpIAnd            Opcode = 0x7E
	OpLAnd            Opcode = 0x7F
	OpIOr             Opcode = 0x80
	OpLOr             Opcode = 0x81
	OpIXor            Opcode = 0x82
	OpLXor            Opcode = 0x83
	OpIInc            Opcode = 0x84
	OpI2L             Opcode = 0x85
	OpI2F             Opcode = 0x86
	OpI2D             Opcode = 0x87
	OpL2I             Opcode = 0x88
	OpL2F             Opcode = 0x89
	OpL2D             Opcode = 0x8A
	OpF2I             Opcode = 0x8B
	OpF2L             Opcode = 0x8C
	OpF2D             Opcode = 0x8D
	OpD2I             Opcode = 0x8E
	OpD2L             Opcode = 0x8F
	OpD2F             Opcode = 0x90
	OpI2B             Opcode = 0x91
	OpI2C             Opcode = 0x92
	OpI2S             Opcode = 0x93
	OpLCmp            Opcode = 0x94
	OpFCmpL           Opcode = 0x95
	OpFCmpG           Opcode = 0x96
	OpDCmpL           Opcode = 0x97
	OpDCmpG           Opcode = 0x98
	OpIfEq            Opcode = 0x99
	OpIfNe            Opcode = 0x9A
	OpIfLt            Opcode = 0x9B
	OpIfGe            Opcode = 0x9C
	OpIfGt            Opcode = 0x9D
	OpIfLe            Opcode = 0x9E
	OpIfICmpEq        Opcode = 0x9F
	OpIfICmpNe        Opcode = 0xA0
	OpIfICmpLt        Opcode = 0xA1
	OpIfICmpGe        Opcode = 0xA2
	OpIfICmpGt        Opcode = 0xA3
	OpIfICmpLe        Opcode = 0xA4
	OpIfACmpEq        Opcode = 0xA5
	OpIfACmpNe        Opcode = 0xA6
	OpGoto            Opcode = 0xA7
	OpJsr             Opcode = 0xA8
	OpRet             Opcode = 0xA9
	OpTableSwitch     Opcode = 0xAA
	OpLookupSwitch    Opcode = 0xAB
	OpIReturn         Opcode = 0xAC
	OpLReturn         Opcode = 0xAD
	OpFReturn         Opcode = 0xAE
	OpDReturn         Opcode = 0xAF
	OpAReturn         Opcode = 0xB0
	OpReturn          Opcode = 0xB1
	OpGetStatic       Opcode = 0xB2
	OpPutStatic       Opcode = 0xB3
	OpGetField        Opcode = 0xB4
	OpPutField        Opcode = 0xB5
	OpInvokeVirtual   Opcode = 0xB6
	OpInvokeSpecial   Opcode = 0xB7
	OpInvokeStatic    Opcode = 0xB8
	OpInvokeInterface Opcode = 0xB9
	OpInvokeDynamic   Opcode = 0xBA
	OpNew             Opcode = 0xBB
	OpNewArray        Opcode = 0xBC
	OpANewArray       Opcode = 0xBD
	OpArrayLength     Opcode = 0xBE
	OpAThrow          Opcode = 0xBF
	OpCheckCast       Opcode = 0xC0
	OpInstanceOf      Opcode = 0xC1
	OpMonitorEnter    Opcode = 0xC2
	OpMonitorExit     Opcode = 0xC3
	OpWide            Opcode = 0xC4
	OpMultiANewArray  Opcode = 0xC5
	OpIfNull          Opcode = 0xC6
	OpIfNonNull       Opcode = 0xC7
	OpGotoW           Opcode = 0xC8
	OpJsrW            Opcode = 0xC9
	OpBreakpoint      Opcode = 0xCA
	OpImpDep1         Opcode = 0xFE
	OpImpDep2         Opcode = 0xFF
)

// PrimitiveKind narrows arithmetic/conversion/array-element instructions
// to the primitive type they operate on.
type PrimitiveKind uint8

const (
	KindInt PrimitiveKind = iota
	KindLong
	KindFloat
	KindDouble
	KindByte
	KindChar
	KindShort
	KindBoolean
	KindReference
)

// ReturnKind narrows a return instruction to its value's type (or void).
type ReturnKind uint8

const (
	ReturnVoid ReturnKind = iota
	ReturnInt
	ReturnLong
	ReturnFloat
	ReturnDouble
	ReturnReference
)

// InvokeKind narrows an invoke instruction to its call form.
type InvokeKind uint8

const (
	InvokeVirtual InvokeKind = iota
	InvokeSpecial
	InvokeStatic
	InvokeInterface
)

// JumpCondition narrows a conditional jump to its test, covering every
// if*/if_icmp*/if_acmp*/ifnull/ifnonnull variant.
type JumpCondition uint8

const (
	CondIsNull JumpCondition = iota
	CondIsNotNull
	CondRefEq
	CondRefNe
	CondIntEq
	CondIntNe
	CondIntLt
	CondIntLe
	CondIntGt
	CondIntGe
	CondIntEqZero
	CondIntNeZero
	CondIntLtZero
	CondIntLeZero
	CondIntGtZero
	CondIntGeZero
)

// Label is an opaque, densely-allocated jump target identifier. It
// carries no program counter information itself; pc is resolved during
// encode against each label's position in the surrounding InsnList.
type Label struct{ ID uint32 }

// Insn is implemented by every concrete instruction and by LabelInsn,
// the marker inserted wherever a jump or switch case targets a
// position in the instruction stream.
type Insn interface {
	isInsn()
}

// LabelInsn marks a jump target's position in the decoded instruction
// list. It occupies no bytes on the wire; decode inserts one wherever a
// branch/switch points, and encode consumes it to learn the pc of any
// instruction that refers to this label.
type LabelInsn struct{ Label Label }

func (LabelInsn) isInsn() {}

type NopInsn struct{}

func (NopInsn) isInsn() {}

// PushNullInsn is aconst_null.
type PushNullInsn struct{}

func (PushNullInsn) isInsn() {}

// PushIntInsn covers iconst_*/bipush/sipush: a constant int pushed
// without going through the constant pool. A value outside the sipush
// range is encoded as an ldc of an interned Integer entry instead.
type PushIntInsn struct{ Value int32 }

func (PushIntInsn) isInsn() {}

// PushLongInsn is lconst_0/lconst_1.
type PushLongInsn struct{ Value int64 }

func (PushLongInsn) isInsn() {}

// PushFloatInsn is fconst_0/1/2.
type PushFloatInsn struct{ Value float32 }

func (PushFloatInsn) isInsn() {}

// PushDoubleInsn is dconst_0/1.
type PushDoubleInsn struct{ Value float64 }

func (PushDoubleInsn) isInsn() {}

// LdcKind narrows what an LdcInsn loads.
type LdcKind uint8

const (
	LdcString LdcKind = iota
	LdcInt
	LdcFloat
	LdcLong
	LdcDouble
	LdcClass
	LdcMethodType
	LdcMethodHandle
	LdcDynamic
)

// LdcInsn covers ldc/ldc_w/ldc2_w; encode picks the narrowest opcode
// that can address the interned pool index (ldc for <=255, ldc_w
// otherwise, ldc2_w always for Long/Double).
type LdcInsn struct {
	Kind      LdcKind
	String    string
	Int       int32
	Float     float32
	Long      int64
	Double    float64
	Class     string
	MethodDescriptor string // LdcMethodType
	// For LdcMethodHandle/LdcDynamic, the constant pool index is kept
	// verbatim rather than resolved, since full bootstrap resolution is
	// out of scope.
	RawIndex uint16
}

func (LdcInsn) isInsn() {}

// LocalLoadInsn is *load/*load_<n>/wide *load.
type LocalLoadInsn struct {
	Kind  PrimitiveKind // Int/Long/Float/Double/Reference
	Index uint16
}

func (LocalLoadInsn) isInsn() {}

// LocalStoreInsn is *store/*store_<n>/wide *store.
type LocalStoreInsn struct {
	Kind  PrimitiveKind
	Index uint16
}

func (LocalStoreInsn) isInsn() {}

// ArrayLoadInsn is *aload.
type ArrayLoadInsn struct{ Kind PrimitiveKind }

func (ArrayLoadInsn) isInsn() {}

// ArrayStoreInsn is *astore.
type ArrayStoreInsn struct{ Kind PrimitiveKind }

func (ArrayStoreInsn) isInsn() {}

// PopInsn is pop/pop2; Words is 1 or 2.
type PopInsn struct{ Words uint8 }

func (PopInsn) isInsn() {}

// DupInsn covers the whole dup/dup_x1/dup_x2/dup2/dup2_x1/dup2_x2
// family: Words is how many words are duplicated, Down is how many
// words beneath the duplicated block they're reinserted under.
type DupInsn struct {
	Words uint8
	Down  uint8
}

func (DupInsn) isInsn() {}

type SwapInsn struct{}

func (SwapInsn) isInsn() {}

// AddInsn/SubtractInsn/MultiplyInsn/DivideInsn/RemainderInsn/NegateInsn
// cover i/l/f/d add/sub/mul/div/rem/neg.
type AddInsn struct{ Kind PrimitiveKind }

func (AddInsn) isInsn() {}

type SubtractInsn struct{ Kind PrimitiveKind }

func (SubtractInsn) isInsn() {}

type MultiplyInsn struct{ Kind PrimitiveKind }

func (MultiplyInsn) isInsn() {}

type DivideInsn struct{ Kind PrimitiveKind }

func (DivideInsn) isInsn() {}

type RemainderInsn struct{ Kind PrimitiveKind }

func (RemainderInsn) isInsn() {}

type NegateInsn struct{ Kind PrimitiveKind }

func (NegateInsn) isInsn() {}

// ShiftLeftInsn/ShiftRightInsn/LogicalShiftRightInsn cover ishl/lshl,
// ishr/lshr, iushr/lushr. Kind is Int or Long only.
type ShiftLeftInsn struct{ Kind PrimitiveKind }

func (ShiftLeftInsn) isInsn() {}

type ShiftRightInsn struct{ Kind PrimitiveKind }

func (ShiftRightInsn) isInsn() {}

type LogicalShiftRightInsn struct{ Kind PrimitiveKind }

func (LogicalShiftRightInsn) isInsn() {}

// AndInsn/OrInsn/XorInsn cover iand/land, ior/lor, ixor/lxor.
type AndInsn struct{ Kind PrimitiveKind }

func (AndInsn) isInsn() {}

type OrInsn struct{ Kind PrimitiveKind }

func (OrInsn) isInsn() {}

type XorInsn struct{ Kind PrimitiveKind }

func (XorInsn) isInsn() {}

// IncrementIntInsn is iinc/wide iinc.
type IncrementIntInsn struct {
	Index  uint16
	Amount int16
}

func (IncrementIntInsn) isInsn() {}

// ConvertInsn covers every i2*/l2*/f2*/d2* narrowing/widening
// conversion.
type ConvertInsn struct{ From, To PrimitiveKind }

func (ConvertInsn) isInsn() {}

// CompareInsn covers lcmp/fcmpl/fcmpg/dcmpl/dcmpg. PosOnNaN only applies
// to the float/double forms: true selects the *g (NaN -> 1) variant,
// false selects *l (NaN -> -1).
type CompareInsn struct {
	Kind      PrimitiveKind
	PosOnNaN  bool
}

func (CompareInsn) isInsn() {}

// JumpInsn is goto/goto_w; encode selects goto_w only when the target
// doesn't fit in a signed 16-bit offset.
type JumpInsn struct{ Target Label }

func (JumpInsn) isInsn() {}

// ConditionalJumpInsn covers every if*/if_icmp*/if_acmp*/ifnull/
// ifnonnull instruction.
type ConditionalJumpInsn struct {
	Condition JumpCondition
	Target    Label
}

func (ConditionalJumpInsn) isInsn() {}

// TableSwitchInsn is tableswitch.
type TableSwitchInsn struct {
	Default Label
	Low     int32
	Cases   []Label // Cases[i] corresponds to case value Low+i
}

func (TableSwitchInsn) isInsn() {}

// LookupSwitchInsn is lookupswitch.
type LookupSwitchInsn struct {
	Default Label
	Keys    []int32
	Cases   []Label // parallel to Keys
}

func (LookupSwitchInsn) isInsn() {}

// ReturnInsn is *return.
type ReturnInsn struct{ Kind ReturnKind }

func (ReturnInsn) isInsn() {}

// GetFieldInsn is getfield/getstatic.
type GetFieldInsn struct {
	Instance   bool // true for getfield, false for getstatic
	Class      string
	Name       string
	Descriptor string
}

func (GetFieldInsn) isInsn() {}

// PutFieldInsn is putfield/putstatic.
type PutFieldInsn struct {
	Instance   bool
	Class      string
	Name       string
	Descriptor string
}

func (PutFieldInsn) isInsn() {}

// InvokeInsn covers invokevirtual/invokespecial/invokestatic/
// invokeinterface. IsInterfaceMethod only matters for Kind==InvokeSpecial
// or InvokeStatic: since Java 8, those can resolve against either a
// Methodref or an InterfaceMethodref pool entry (private/static
// interface methods), and the two aren't interchangeable on encode.
type InvokeInsn struct {
	Kind              InvokeKind
	Class             string
	Name              string
	Descriptor        string
	IsInterfaceMethod bool
}

func (InvokeInsn) isInsn() {}

// BootstrapArgument is one static argument of an invokedynamic call
// site, kept structural since bootstrap resolution is out of scope.
type BootstrapArgument struct {
	Kind  Tag // TagInteger/Float/Long/Double/Class/String/MethodHandle/MethodType
	Index uint16
}

// InvokeDynamicInsn is invokedynamic. BootstrapMethodAttrIndex refers
// into the enclosing class's BootstrapMethods attribute; it is kept
// verbatim rather than resolved.
type InvokeDynamicInsn struct {
	BootstrapMethodAttrIndex uint16
	Name                     string
	Descriptor               string
}

func (InvokeDynamicInsn) isInsn() {}

// NewObjectInsn is new.
type NewObjectInsn struct{ Class string }

func (NewObjectInsn) isInsn() {}

// NewArrayInsn is newarray (primitive element type).
type NewArrayInsn struct{ Kind PrimitiveKind }

func (NewArrayInsn) isInsn() {}

// ANewArrayInsn is anewarray (reference element type).
type ANewArrayInsn struct{ Class string }

func (ANewArrayInsn) isInsn() {}

// MultiNewArrayInsn is multianewarray.
type MultiNewArrayInsn struct {
	Class      string
	Dimensions uint8
}

func (MultiNewArrayInsn) isInsn() {}

// ArrayLengthInsn is arraylength.
type ArrayLengthInsn struct{}

func (ArrayLengthInsn) isInsn() {}

// ThrowInsn is athrow.
type ThrowInsn struct{}

func (ThrowInsn) isInsn() {}

// CheckCastInsn is checkcast.
type CheckCastInsn struct{ Class string }

func (CheckCastInsn) isInsn() {}

// InstanceOfInsn is instanceof.
type InstanceOfInsn struct{ Class string }

func (InstanceOfInsn) isInsn() {}

// MonitorEnterInsn/MonitorExitInsn are monitorenter/monitorexit.
type MonitorEnterInsn struct{}

func (MonitorEnterInsn) isInsn() {}

type MonitorExitInsn struct{}

func (MonitorExitInsn) isInsn() {}

// BreakpointInsn/ImpDep1Insn/ImpDep2Insn are the three reserved
// implementation-specific opcodes (0xCA, 0xFE, 0xFF). They are never
// emitted by a compiler but are valid, zero-operand opcodes a debugger
// or JVM implementation may leave in place; this codec passes them
// through rather than rejecting them.
type BreakpointInsn struct{}

func (BreakpointInsn) isInsn() {}

type ImpDep1Insn struct{}

func (ImpDep1Insn) isInsn() {}

type ImpDep2Insn struct{}

func (ImpDep2Insn) isInsn() {}
