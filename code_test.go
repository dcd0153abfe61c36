// Copyright 2026 The classfile Authors. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package classfile

import (
	"strconv"
	"testing"
)

func u16At(b []byte, off int) uint16 { return uint16(b[off])<<8 | uint16(b[off+1]) }

func TestDecodeEncodeSimpleLoop(t *testing.T) {
	// pc0  iconst_0
	// pc1  istore_1
	// pc2  goto L2        (3 bytes, target pc8)
	// pc5  L1: iinc 1,1   (3 bytes)
	// pc8  L2: iload_1
	// pc9  iconst_5
	// pc10 if_icmplt L1   (3 bytes, target pc5)
	// pc13 return
	code := []byte{
		0x03,             // iconst_0
		0x3c,             // istore_1
		0xa7, 0x00, 0x06, // goto +6 -> pc 8 (L2)
		0x84, 0x01, 0x01, // iinc 1, 1 (pc 5, L1)
		0x1b,             // iload_1 (pc 8, L2)
		0x08,             // iconst_5
		0xa1, 0xff, 0xfb, // if_icmplt -5 -> pc 5 (L1)
		0xb1, // return
	}
	opts := &Options{}
	cp := NewConstantPoolWriter().ToConstantPool()
	attr, err := parseCodeAttribute(append([]byte{0, 2, 0, 2, 0, 0, 0, uint8(len(code))}, append(code, 0, 0, 0, 0)...), cp, ClassVersion{Major: JavaSE8}, opts)
	if err != nil {
		t.Fatalf("parseCodeAttribute: %v", err)
	}
	insns := attr.Code.Insns()
	var labels, gotos, condJumps int
	for _, insn := range insns {
		switch insn.(type) {
		case LabelInsn:
			labels++
		case JumpInsn:
			gotos++
		case ConditionalJumpInsn:
			condJumps++
		}
	}
	if labels != 2 {
		t.Fatalf("expected 2 labels (goto target + backward branch target), got %d", labels)
	}
	if gotos != 1 || condJumps != 1 {
		t.Fatalf("expected 1 goto and 1 conditional jump, got %d/%d", gotos, condJumps)
	}

	cpw := NewConstantPoolWriter()
	out := attr.write(cpw)
	// max_stack(2) max_locals(2) code_length(4) + code + exc(2) + attrs(2)
	codeLen := uint32(out[4])<<24 | uint32(out[5])<<16 | uint32(out[6])<<8 | uint32(out[7])
	if int(codeLen) != len(code) {
		t.Fatalf("round-tripped code length = %d, want %d", codeLen, len(code))
	}
}

func TestTableSwitchPadding(t *testing.T) {
	// pc0 nop; pc1 tableswitch, 2 padding bytes bring the first 4-byte
	// operand to pc4 (a multiple of 4), low=0 high=1.
	raw := []byte{
		0x00, // nop, pc 0
		0xaa, // tableswitch, pc 1
		0, 0, // 2 padding bytes
		0, 0, 0, 20, // default offset -> target pc 21 (1+20)
		0, 0, 0, 0, // low = 0
		0, 0, 0, 1, // high = 1
		0, 0, 0, 24, // case 0 offset -> target pc 25
		0, 0, 0, 28, // case 1 offset -> target pc 29
	}
	targets := make(map[uint32]bool)
	cp := NewConstantPoolWriter().ToConstantPool()
	raw2, err := decodeInstructions(raw, cp, &Options{}, targets)
	if err != nil {
		t.Fatalf("decodeInstructions: %v", err)
	}
	if len(raw2) != 2 {
		t.Fatalf("expected 2 instructions (nop, tableswitch), got %d", len(raw2))
	}
	ts, ok := raw2[1].insn.(TableSwitchInsn)
	if !ok {
		t.Fatalf("expected TableSwitchInsn, got %T", raw2[1].insn)
	}
	if ts.Low != 0 || len(ts.Cases) != 2 {
		t.Fatalf("unexpected tableswitch shape: low=%d cases=%d", ts.Low, len(ts.Cases))
	}
	if ts.Default.ID != 21 || ts.Cases[0].ID != 25 || ts.Cases[1].ID != 29 {
		t.Fatalf("unexpected raw targets: default=%d cases=%v", ts.Default.ID, []uint32{ts.Cases[0].ID, ts.Cases[1].ID})
	}
	if !targets[21] || !targets[25] || !targets[29] {
		t.Fatalf("expected targets 21/25/29 to be recorded, got %v", targets)
	}
}

func TestLdcWidthSelection(t *testing.T) {
	cpw := NewConstantPoolWriter()
	for i := 0; i < 300; i++ {
		cpw.Utf8("entry-" + strconv.Itoa(i))
	}
	idx := cpw.String("late-interned-string")
	w := newWriter()
	if err := encodeLdc(w, LdcInsn{Kind: LdcString, String: "late-interned-string"}, cpw); err != nil {
		t.Fatalf("encodeLdc: %v", err)
	}
	if idx <= 0xFF {
		t.Skip("interning landed under 256; widen the loop to exercise ldc_w")
	}
	if Opcode(w.bytes()[0]) != OpLdcW {
		t.Fatalf("expected ldc_w for index %d, got opcode 0x%02X", idx, w.bytes()[0])
	}
}

func TestLdcLongAlwaysUsesLdc2W(t *testing.T) {
	cpw := NewConstantPoolWriter()
	w := newWriter()
	if err := encodeLdc(w, LdcInsn{Kind: LdcLong, Long: 123456789012345}, cpw); err != nil {
		t.Fatalf("encodeLdc: %v", err)
	}
	if Opcode(w.bytes()[0]) != OpLdc2W {
		t.Fatalf("expected ldc2_w for a Long constant, got opcode 0x%02X", w.bytes()[0])
	}
}

func TestWidePromotionForLargeLocalIndex(t *testing.T) {
	w := newWriter()
	encodeLocalLoad(w, LocalLoadInsn{Kind: KindInt, Index: 300})
	b := w.bytes()
	if Opcode(b[0]) != OpWide {
		t.Fatalf("expected wide prefix for local index 300, got opcode 0x%02X", b[0])
	}
	if Opcode(b[1]) != OpILoad {
		t.Fatalf("expected iload as wide's sub-opcode, got 0x%02X", b[1])
	}
	if got := u16At(b, 2); got != 300 {
		t.Fatalf("wide iload index = %d, want 300", got)
	}
}

func TestGotoWPromotionOnOverflow(t *testing.T) {
	list := NewInsnList()
	target := list.NewLabel()
	list.Append(JumpInsn{Target: target})
	// Pad with enough nops that the forward offset can't fit in an
	// int16, forcing goto -> goto_w promotion.
	for i := 0; i < 40000; i++ {
		list.Append(NopInsn{})
	}
	list.Append(LabelInsn{Label: target})

	cpw := NewConstantPoolWriter()
	out, labelPC, err := encodeCode(list, cpw)
	if err != nil {
		t.Fatalf("encodeCode: %v", err)
	}
	if Opcode(out[0]) != OpGotoW {
		t.Fatalf("expected goto_w after promotion, got opcode 0x%02X", out[0])
	}
	if labelPC[target.ID] != uint32(len(out)) {
		t.Fatalf("label pc = %d, want %d (end of method)", labelPC[target.ID], len(out))
	}
}
