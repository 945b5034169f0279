package jvmgen

import "testing"

func TestOpcodeNames(t *testing.T) {
	tests := []struct {
		op   int
		name string
	}{
		{OpNop, "nop"},
		{OpIload, "iload"},
		{opAload0, "aload_0"},
		{OpIfIcmpge, "if_icmpge"},
		{OpReturn, "return"},
		{opWide, "wide"},
		{OpJsrW, "jsr_w"},
	}
	for _, tt := range tests {
		if got := OpcodeName(tt.op); got != tt.name {
			t.Errorf("OpcodeName(%#x) = %q, want %q", tt.op, got, tt.name)
		}
	}
	if got := OpcodeName(0xFE); got != "unknown(254)" {
		t.Errorf("OpcodeName(0xFE) = %q", got)
	}
}

func TestLookupOpcode(t *testing.T) {
	tests := []struct {
		name string
		op   int
		ok   bool
	}{
		{"iload", OpIload, true},
		{"ASTORE", OpAstore, true},
		{"iaload", OpIaload, true},
		{"tableswitch", OpTableswitch, true},
		{"goto", OpGoto, true},
		{"invokedynamic", OpInvokedynamic, true},
		{"iload_0", 0, false},
		{"astore_3", 0, false},
		{"ldc_w", 0, false},
		{"ldc2_w", 0, false},
		{"goto_w", 0, false},
		{"wide", 0, false},
		{"frob", 0, false},
	}
	for _, tt := range tests {
		op, ok := LookupOpcode(tt.name)
		if ok != tt.ok || ok && op != tt.op {
			t.Errorf("LookupOpcode(%q) = %#x, %v, want %#x, %v", tt.name, op, ok, tt.op, tt.ok)
		}
	}
}

func TestInsnLength(t *testing.T) {
	// iload_0; tableswitch 0..1 （偏移 1，补齐 2 字节）
	table := []byte{0x1A, OpTableswitch, 0, 0,
		0, 0, 0, 30, 0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 23, 0, 0, 0, 28}
	look := []byte{OpLookupswitch, 0, 0, 0,
		0, 0, 0, 20, 0, 0, 0, 1,
		0, 0, 0, 5, 0, 0, 0, 20}
	tests := []struct {
		name string
		code []byte
		off  int
		want int
	}{
		{"iload_0", table, 0, 1},
		{"tableswitch", table, 1, 23},
		{"lookupswitch", look, 0, 20},
		{"sipush", []byte{OpSipush, 1, 0}, 0, 3},
		{"wide iinc", []byte{opWide, OpIinc, 1, 0, 0, 1}, 0, 6},
		{"goto_w", []byte{OpGotoW, 0, 0, 0, 5}, 0, 5},
	}
	for _, tt := range tests {
		if got := InsnLength(tt.code, tt.off); got != tt.want {
			t.Errorf("%s: InsnLength = %d, want %d", tt.name, got, tt.want)
		}
	}
}
