package jvmgen

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/tangzhangming/jvmasm/internal/errors"
)

// newTestMethod 创建只含一个方法 m 的类，返回已开始代码的 MethodWriter
func newTestMethod(version, flags, access int, desc string) (*ClassWriter, *MethodWriter) {
	cw := NewClassWriter(flags)
	cw.Visit(version, AccPublic|AccSuper, "Test", "", "java/lang/Object", nil)
	mw := cw.VisitMethod(access, "m", desc, "", nil).(*MethodWriter)
	mw.VisitCode()
	return cw, mw
}

// finish 结束方法与类并生成字节
func finish(t *testing.T, cw *ClassWriter, mw *MethodWriter, maxStack, maxLocals int) []byte {
	t.Helper()
	mw.VisitMaxs(maxStack, maxLocals)
	mw.VisitEnd()
	cw.VisitEnd()
	b, err := cw.ToByteArray()
	if err != nil {
		t.Fatalf("ToByteArray failed: %v", err)
	}
	return b
}

func s4(code []byte, off int) int {
	return int(int32(uint32(code[off])<<24 | uint32(code[off+1])<<16 | uint32(code[off+2])<<8 | uint32(code[off+3])))
}

// ============================================================================
// 指令编码
// ============================================================================

func TestInstructionEncoding(t *testing.T) {
	tests := []struct {
		name string
		emit func(mw *MethodWriter)
		want []byte
	}{
		{"short load", func(mw *MethodWriter) { mw.VisitVarInsn(OpIload, 2) }, []byte{0x1C}},
		{"short store", func(mw *MethodWriter) { mw.VisitVarInsn(OpAstore, 3) }, []byte{0x4E}},
		{"byte load", func(mw *MethodWriter) { mw.VisitVarInsn(OpLload, 10) }, []byte{0x16, 10}},
		{"wide load", func(mw *MethodWriter) { mw.VisitVarInsn(OpIload, 300) }, []byte{0xC4, 0x15, 0x01, 0x2C}},
		{"ret", func(mw *MethodWriter) { mw.VisitVarInsn(OpRet, 1) }, []byte{0xA9, 1}},
		{"iinc", func(mw *MethodWriter) { mw.VisitIincInsn(1, -5) }, []byte{0x84, 1, 0xFB}},
		{"wide iinc", func(mw *MethodWriter) { mw.VisitIincInsn(300, 1) }, []byte{0xC4, 0x84, 0x01, 0x2C, 0, 1}},
		{"wide iinc increment", func(mw *MethodWriter) { mw.VisitIincInsn(1, 1000) }, []byte{0xC4, 0x84, 0, 1, 0x03, 0xE8}},
		{"bipush", func(mw *MethodWriter) { mw.VisitIntInsn(OpBipush, 100) }, []byte{0x10, 100}},
		{"sipush", func(mw *MethodWriter) { mw.VisitIntInsn(OpSipush, 1000) }, []byte{0x11, 0x03, 0xE8}},
		{"newarray", func(mw *MethodWriter) { mw.VisitIntInsn(OpNewarray, TInt) }, []byte{0xBC, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
			tt.emit(mw)
			if err := cw.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := mw.code.Bytes(); !bytes.Equal(got, tt.want) {
				t.Fatalf("code: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLdcSelection(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	mw.VisitLdcInsn("a")
	mw.VisitLdcInsn(int64(5))
	for i := 0; i < 300; i++ {
		cw.NewInteger(int32(1000 + i))
	}
	mw.VisitLdcInsn(float32(1.5))
	code := mw.code.Bytes()
	s := cw.NewString("a")
	l := cw.NewLong(5)
	f := cw.NewFloat(1.5)
	if f < 256 {
		t.Fatalf("float constant index %d should be above 255", f)
	}
	want := []byte{0x12, byte(s), 0x14, byte(l >> 8), byte(l), 0x13, byte(f >> 8), byte(f)}
	if !bytes.Equal(code, want) {
		t.Fatalf("code: got %v, want %v", code, want)
	}
}

func TestTableSwitchEncoding(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeMaxsFlag, AccPublic|AccStatic, "(I)V")
	l0, l1, l2 := NewLabel(), NewLabel(), NewLabel()
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitTableSwitchInsn(0, 1, l2, l0, l1)
	mw.VisitLabel(l0)
	mw.VisitInsn(OpIconst1)
	mw.VisitInsn(OpPop)
	mw.VisitJumpInsn(OpGoto, l2)
	mw.VisitLabel(l1)
	mw.VisitInsn(OpLconst0)
	mw.VisitInsn(OpPop2)
	mw.VisitLabel(l2)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	code := mw.code.Bytes()
	if code[1] != OpTableswitch || code[2] != 0 || code[3] != 0 {
		t.Fatalf("tableswitch header: got %v", code[:4])
	}
	tests := []struct {
		off  int
		want int
	}{
		{4, 30},  // default
		{8, 0},   // low
		{12, 1},  // high
		{16, 23}, // case 0
		{20, 28}, // case 1
	}
	for _, tt := range tests {
		if got := s4(code, tt.off); got != tt.want {
			t.Fatalf("operand at %d: got %d, want %d", tt.off, got, tt.want)
		}
	}
	if mw.maxStack != 2 || mw.maxLocals != 1 {
		t.Fatalf("maxs: got %d/%d, want 2/1", mw.maxStack, mw.maxLocals)
	}
}

func TestLookupSwitchMismatch(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "(I)V")
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitLookupSwitchInsn(NewLabel(), []int{1, 2}, []*Label{NewLabel()})
	if errors.CodeOf(cw.Err()) != errors.J0108 {
		t.Fatalf("error: got %v, want J0108", cw.Err())
	}
}

// ============================================================================
// maxs 计算
// ============================================================================

func TestComputeMaxsLoop(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeMaxsFlag, AccPublic|AccStatic, "(I)I")
	top, exit := NewLabel(), NewLabel()
	mw.VisitLabel(top)
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfle, exit)
	mw.VisitIincInsn(0, -1)
	mw.VisitJumpInsn(OpGoto, top)
	mw.VisitLabel(exit)
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitInsn(OpIreturn)
	finish(t, cw, mw, 0, 0)

	if mw.maxStack != 1 || mw.maxLocals != 1 {
		t.Fatalf("maxs: got %d/%d, want 1/1", mw.maxStack, mw.maxLocals)
	}
	// goto 回跳到偏移 0
	code := mw.code.Bytes()
	if code[7] != OpGoto || int(int16(uint16(code[8])<<8|uint16(code[9]))) != -7 {
		t.Fatalf("backward goto: got %v", code[7:10])
	}
}

func TestComputeMaxsHandler(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeMaxsFlag, AccPublic|AccStatic, "()V")
	start, end, handler := NewLabel(), NewLabel(), NewLabel()
	mw.VisitTryCatchBlock(start, end, handler, "java/lang/Exception")
	mw.VisitLabel(start)
	mw.VisitInsn(OpNop)
	mw.VisitLabel(end)
	mw.VisitInsn(OpReturn)
	mw.VisitLabel(handler)
	mw.VisitInsn(OpIconst1)
	mw.VisitInsn(OpIconst1)
	mw.VisitInsn(OpPop2)
	mw.VisitInsn(OpPop)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	// 处理器入口栈上有异常对象，再压两个 int
	if mw.maxStack != 3 {
		t.Fatalf("maxStack: got %d, want 3", mw.maxStack)
	}
}

func TestComputeMaxsSubroutine(t *testing.T) {
	cw, mw := newTestMethod(V1_4, ComputeMaxsFlag, AccPublic|AccStatic, "()V")
	sub := NewLabel()
	mw.VisitJumpInsn(OpJsr, sub)
	mw.VisitInsn(OpReturn)
	mw.VisitLabel(sub)
	mw.VisitVarInsn(OpAstore, 0)
	mw.VisitVarInsn(OpRet, 0)
	finish(t, cw, mw, 0, 0)

	if mw.maxStack != 1 || mw.maxLocals != 1 {
		t.Fatalf("maxs: got %d/%d, want 1/1", mw.maxStack, mw.maxLocals)
	}
	want := []byte{OpJsr, 0, 4, OpReturn, 0x4B, OpRet, 0}
	if got := mw.code.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("code: got %v, want %v", got, want)
	}
}

func TestComputeMaxsKeepsLargerDeclared(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeMaxsFlag, AccPublic|AccStatic, "()V")
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 4, 0)
	if mw.maxStack != 4 {
		t.Fatalf("maxStack: got %d, want 4", mw.maxStack)
	}
}

func TestSubroutineWithFrames(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "()V")
	mw.VisitJumpInsn(OpJsr, NewLabel())
	err := cw.Err()
	if errors.CodeOf(err) != errors.J0300 {
		t.Fatalf("error: got %v, want J0300", err)
	}
	if !stderrors.Is(err, ErrUnsupported) {
		t.Fatalf("J0300 should be an unsupported error")
	}
}

// ============================================================================
// 栈映射帧计算
// ============================================================================

func TestComputeFramesKinds(t *testing.T) {
	tests := []struct {
		name      string
		desc      string
		emit      func(mw *MethodWriter)
		stackMap  []byte
		maxStack  int
		maxLocals int
	}{
		{
			name: "same and append",
			desc: "(I)V",
			emit: func(mw *MethodWriter) {
				l1, l2 := NewLabel(), NewLabel()
				mw.VisitVarInsn(OpIload, 0)
				mw.VisitJumpInsn(OpIfeq, l1)
				mw.VisitInsn(OpIconst1)
				mw.VisitVarInsn(OpIstore, 1)
				mw.VisitJumpInsn(OpGoto, l2)
				mw.VisitLabel(l1)
				mw.VisitInsn(OpIconst2)
				mw.VisitVarInsn(OpIstore, 1)
				mw.VisitLabel(l2)
				mw.VisitInsn(OpReturn)
			},
			stackMap:  []byte{9, 252, 0, 1, Integer},
			maxStack:  1,
			maxLocals: 2,
		},
		{
			name: "same locals one stack item",
			desc: "(I)I",
			emit: func(mw *MethodWriter) {
				l1, l2 := NewLabel(), NewLabel()
				mw.VisitVarInsn(OpIload, 0)
				mw.VisitJumpInsn(OpIfeq, l1)
				mw.VisitInsn(OpIconst1)
				mw.VisitJumpInsn(OpGoto, l2)
				mw.VisitLabel(l1)
				mw.VisitInsn(OpIconst2)
				mw.VisitLabel(l2)
				mw.VisitInsn(OpIreturn)
			},
			stackMap:  []byte{8, 64, Integer},
			maxStack:  1,
			maxLocals: 1,
		},
		{
			name: "chop",
			desc: "(I)V",
			emit: func(mw *MethodWriter) {
				l := NewLabel()
				mw.VisitVarInsn(OpIload, 0)
				mw.VisitJumpInsn(OpIfeq, l)
				mw.VisitInsn(OpFconst0)
				mw.VisitVarInsn(OpFstore, 0)
				mw.VisitLabel(l)
				mw.VisitInsn(OpReturn)
			},
			stackMap:  []byte{250, 0, 6},
			maxStack:  1,
			maxLocals: 1,
		},
		{
			name: "full",
			desc: "(I)I",
			emit: func(mw *MethodWriter) {
				l1, l2 := NewLabel(), NewLabel()
				mw.VisitVarInsn(OpIload, 0)
				mw.VisitJumpInsn(OpIfeq, l1)
				mw.VisitInsn(OpFconst0)
				mw.VisitVarInsn(OpFstore, 0)
				mw.VisitInsn(OpIconst1)
				mw.VisitJumpInsn(OpGoto, l2)
				mw.VisitLabel(l1)
				mw.VisitInsn(OpIconst2)
				mw.VisitLabel(l2)
				mw.VisitInsn(OpIreturn)
			},
			stackMap:  []byte{10, 255, 0, 0, 0, 0, 0, 1, Integer},
			maxStack:  1,
			maxLocals: 1,
		},
		{
			name: "same extended",
			desc: "(I)V",
			emit: func(mw *MethodWriter) {
				l := NewLabel()
				mw.VisitVarInsn(OpIload, 0)
				mw.VisitJumpInsn(OpIfeq, l)
				for i := 0; i < 70; i++ {
					mw.VisitInsn(OpNop)
				}
				mw.VisitLabel(l)
				mw.VisitInsn(OpReturn)
			},
			stackMap:  []byte{251, 0, 74},
			maxStack:  1,
			maxLocals: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, tt.desc)
			tt.emit(mw)
			finish(t, cw, mw, 0, 0)
			if mw.stackMap == nil {
				t.Fatalf("no frames written")
			}
			if got := mw.stackMap.Bytes(); !bytes.Equal(got, tt.stackMap) {
				t.Fatalf("StackMapTable: got %v, want %v", got, tt.stackMap)
			}
			if mw.maxStack != tt.maxStack || mw.maxLocals != tt.maxLocals {
				t.Fatalf("maxs: got %d/%d, want %d/%d", mw.maxStack, mw.maxLocals, tt.maxStack, tt.maxLocals)
			}
			if mw.stackMapName() != attrStackMapTable {
				t.Fatalf("attribute name: got %s", mw.stackMapName())
			}
		})
	}
}

func TestComputeFramesDeadCode(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "()V")
	mw.VisitInsn(OpReturn)
	mw.VisitInsn(OpIconst0)
	mw.VisitInsn(OpPop)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	want := []byte{OpReturn, OpNop, OpNop, OpAthrow}
	if got := mw.code.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("code: got %v, want %v", got, want)
	}
	throwable := cw.NewClass("java/lang/Throwable")
	frames := []byte{65, 7, byte(throwable >> 8), byte(throwable)}
	if got := mw.stackMap.Bytes(); !bytes.Equal(got, frames) {
		t.Fatalf("StackMapTable: got %v, want %v", got, frames)
	}
	if mw.maxStack != 1 {
		t.Fatalf("maxStack: got %d, want 1", mw.maxStack)
	}
}

func TestComputeFramesDeadCodeSplitsHandler(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "()V")
	start, end, handler, exit := NewLabel(), NewLabel(), NewLabel(), NewLabel()
	mw.VisitTryCatchBlock(start, end, handler, "java/lang/Exception")
	mw.VisitLabel(start)
	mw.VisitInsn(OpIconst0)
	mw.VisitInsn(OpPop)
	mw.VisitJumpInsn(OpGoto, exit)
	mw.VisitInsn(OpNop)
	mw.VisitLabel(end)
	mw.VisitLabel(handler)
	mw.VisitInsn(OpPop)
	mw.VisitLabel(exit)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	want := []byte{OpIconst0, OpPop, OpGoto, 0, 5, OpAthrow, OpPop, OpReturn}
	if got := mw.code.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("code: got %v, want %v", got, want)
	}
	if len(mw.handlers) != 1 {
		t.Fatalf("handlers: got %d, want 1", len(mw.handlers))
	}
	h := mw.handlers[0]
	if h.start.position != 0 || h.end.position != 5 || h.handler.position != 6 {
		t.Fatalf("handler range: got [%d,%d) -> %d, want [0,5) -> 6",
			h.start.position, h.end.position, h.handler.position)
	}
	throwable := cw.NewClass("java/lang/Throwable")
	exception := cw.NewClass("java/lang/Exception")
	frames := []byte{
		69, 7, byte(throwable >> 8), byte(throwable),
		64, 7, byte(exception >> 8), byte(exception),
		0,
	}
	if got := mw.stackMap.Bytes(); !bytes.Equal(got, frames) {
		t.Fatalf("StackMapTable: got %v, want %v", got, frames)
	}
	if mw.frameCount != 3 {
		t.Fatalf("frames: got %d, want 3", mw.frameCount)
	}
}

func TestComputeFramesNeedsHierarchy(t *testing.T) {
	build := func(opts ...Option) error {
		cw := NewClassWriter(ComputeFramesFlag, opts...)
		cw.Visit(V1_8, AccPublic, "Test", "", "java/lang/Object", nil)
		mv := cw.VisitMethod(AccPublic|AccStatic, "m", "(Z)Ljava/lang/Object;", "", nil)
		mv.VisitCode()
		other, merge := NewLabel(), NewLabel()
		mv.VisitVarInsn(OpIload, 0)
		mv.VisitJumpInsn(OpIfeq, other)
		mv.VisitFieldInsn(OpGetstatic, "Test", "i", "Ljava/lang/Integer;")
		mv.VisitJumpInsn(OpGoto, merge)
		mv.VisitLabel(other)
		mv.VisitFieldInsn(OpGetstatic, "java/lang/Boolean", "TRUE", "Ljava/lang/Boolean;")
		mv.VisitLabel(merge)
		mv.VisitInsn(OpAreturn)
		mv.VisitMaxs(0, 0)
		mv.VisitEnd()
		cw.VisitEnd()
		_, err := cw.ToByteArray()
		return err
	}
	err := build()
	if errors.CodeOf(err) != errors.J0301 || !stderrors.Is(err, ErrCommonSuperClass) {
		t.Fatalf("without hierarchy: got %v, want J0301", err)
	}
	if err := build(WithClassHierarchy(NewJDKHierarchy())); err != nil {
		t.Fatalf("with JDK hierarchy: %v", err)
	}
}

// ============================================================================
// 用户提供的帧
// ============================================================================

func TestExplicitFrames(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "(I)V")
	l := NewLabel()
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfeq, l)
	mw.VisitInsn(OpIconst0)
	mw.VisitVarInsn(OpIstore, 1)
	mw.VisitLabel(l)
	mw.VisitFrame(FNew, 1, []any{Integer}, 0, nil)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 1, 2)

	// 展开帧与入口帧相同，压缩成 SAME
	if got := mw.stackMap.Bytes(); !bytes.Equal(got, []byte{6}) {
		t.Fatalf("StackMapTable: got %v, want [6]", got)
	}
	if mw.maxStack != 1 || mw.maxLocals != 2 {
		t.Fatalf("maxs: got %d/%d, want 1/2", mw.maxStack, mw.maxLocals)
	}
}

func TestExplicitFramesArrayLocal(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "([Ljava/lang/String;)V")
	l := NewLabel()
	mw.VisitVarInsn(OpAload, 0)
	mw.VisitJumpInsn(OpIfnull, l)
	mw.VisitInsn(OpNop)
	mw.VisitLabel(l)
	mw.VisitFrame(FNew, 1, []any{"[Ljava/lang/String;"}, 0, nil)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 1, 1)

	if got := mw.stackMap.Bytes(); !bytes.Equal(got, []byte{5}) {
		t.Fatalf("StackMapTable: got %v, want [5]", got)
	}
}

func TestExplicitFramesOldVersion(t *testing.T) {
	cw, mw := newTestMethod(V1_5, 0, AccPublic|AccStatic, "(I)V")
	l := NewLabel()
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfeq, l)
	mw.VisitLabel(l)
	mw.VisitFrame(FNew, 1, []any{Integer}, 0, nil)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 1, 1)

	if mw.stackMapName() != attrStackMap {
		t.Fatalf("attribute name: got %s, want %s", mw.stackMapName(), attrStackMap)
	}
	// offset、局部变量数、类型、栈元素数
	want := []byte{0, 4, 0, 1, Integer, 0, 0}
	if got := mw.stackMap.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("StackMap: got %v, want %v", got, want)
	}
}

func TestFramesIgnoredWhenComputed(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "()V")
	mw.VisitFrame(FFull, 0, nil, 0, nil)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)
	if mw.stackMap != nil {
		t.Fatalf("user frame should be ignored, got %v", mw.stackMap.Bytes())
	}
}

// ============================================================================
// 跳转加宽
// ============================================================================

func TestWidenForwardJump(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	target := NewLabel()
	mw.VisitInsn(OpIconst0)
	mw.VisitJumpInsn(OpIfeq, target)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitLabel(target)
	mw.VisitInsn(OpReturn)
	if !mw.hasAsmInsns {
		t.Fatalf("long forward jump should be marked for widening")
	}
	finish(t, cw, mw, 1, 0)

	w := cw.methods[0]
	if w == mw || w.hasAsmInsns {
		t.Fatalf("method was not rewritten")
	}
	code := w.code.Bytes()
	if len(code) != 40010 {
		t.Fatalf("code length: got %d, want 40010", len(code))
	}
	head := []byte{OpIconst0, OpIfne, 0, 8, OpGotoW}
	if !bytes.Equal(code[:5], head) {
		t.Fatalf("widened jump: got %v, want %v", code[:5], head)
	}
	if got := s4(code, 5); got != 40005 {
		t.Fatalf("goto_w offset: got %d, want 40005", got)
	}
	if code[40009] != OpReturn {
		t.Fatalf("last instruction: got %d, want return", code[40009])
	}
	// 展开的条件跳转之后插入一帧
	if got := w.stackMap.Bytes(); !bytes.Equal(got, []byte{9}) {
		t.Fatalf("StackMapTable: got %v, want [9]", got)
	}
	if w.maxStack != 1 || w.maxLocals != 0 {
		t.Fatalf("maxs: got %d/%d, want 1/0", w.maxStack, w.maxLocals)
	}
}

func TestWidenForwardJumpOldVersion(t *testing.T) {
	cw, mw := newTestMethod(V1_5, ComputeMaxsFlag, AccPublic|AccStatic, "()V")
	target := NewLabel()
	mw.VisitJumpInsn(OpGoto, target)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitLabel(target)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	w := cw.methods[0]
	code := w.code.Bytes()
	if code[0] != OpGotoW || s4(code, 1) != 40005 {
		t.Fatalf("widened goto: got %v", code[:5])
	}
	if w.stackMap != nil {
		t.Fatalf("no frames before version 50")
	}
}

func TestWidenForwardJumpComputedFrames(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "(I)V")
	target := NewLabel()
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfeq, target)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitLabel(target)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	w := cw.methods[0]
	code := w.code.Bytes()
	if code[1] != OpIfne || code[4] != OpGotoW {
		t.Fatalf("widened jump: got %v", code[:9])
	}
	// 插入帧在 9，原有的目标帧移到 40009
	want := []byte{9, 251, 0x9C, 0x3F}
	if got := w.stackMap.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("StackMapTable: got %v, want %v", got, want)
	}
	if w.frameCount != 2 {
		t.Fatalf("frames: got %d, want 2", w.frameCount)
	}
}

func TestWidenForwardJumpArrayArgument(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "([Ljava/lang/String;)V")
	target := NewLabel()
	mw.VisitVarInsn(OpAload, 0)
	mw.VisitJumpInsn(OpIfnull, target)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitLabel(target)
	mw.VisitInsn(OpReturn)
	finish(t, cw, mw, 0, 0)

	w := cw.methods[0]
	code := w.code.Bytes()
	if code[1] != OpIfnonnull || code[4] != OpGotoW {
		t.Fatalf("widened jump: got %v", code[:9])
	}
	// 局部变量与入口帧一致，两帧都是 SAME
	want := []byte{9, 251, 0x9C, 0x3F}
	if got := w.stackMap.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("StackMapTable: got %v, want %v", got, want)
	}
}

func TestBackwardJumpComputedFrames(t *testing.T) {
	cw, mw := newTestMethod(V1_8, ComputeFramesFlag, AccPublic|AccStatic, "(I)V")
	top := NewLabel()
	mw.VisitLabel(top)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfne, top)
	mw.VisitInsn(OpReturn)
	if mw.hasAsmInsns {
		t.Fatalf("known backward target needs no rewriting")
	}
	finish(t, cw, mw, 0, 0)

	code := mw.code.Bytes()
	if code[40001] != OpIfeq || code[40002] != 0 || code[40003] != 8 || code[40004] != OpGotoW {
		t.Fatalf("inverted jump: got %v", code[40001:40005])
	}
	if got := s4(code, 40005); got != -40004 {
		t.Fatalf("goto_w offset: got %d, want -40004", got)
	}
}

func TestBackwardJumpWidened(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "(I)V")
	top := NewLabel()
	mw.VisitLabel(top)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitVarInsn(OpIload, 0)
	mw.VisitJumpInsn(OpIfne, top)
	mw.VisitInsn(OpReturn)
	if !mw.hasAsmInsns {
		t.Fatalf("conditional backward jump should need a frame after GOTO_W")
	}
	finish(t, cw, mw, 1, 1)

	w := cw.methods[0]
	code := w.code.Bytes()
	if code[40004] != OpGotoW || s4(code, 40005) != -40004 {
		t.Fatalf("goto_w: got %v", code[40004:40009])
	}
	for off := 0; off < len(code); off += insnLength(code, off) {
		if code[off] >= opAsmIfeq {
			t.Fatalf("pseudo opcode %d left at %d", code[off], off)
		}
	}
	// SAME_FRAME_EXTENDED，偏移 40009
	if got := w.stackMap.Bytes(); !bytes.Equal(got, []byte{251, 0x9C, 0x49}) {
		t.Fatalf("StackMapTable: got %v", got)
	}
}

func TestBackwardGotoIsWide(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	top := NewLabel()
	mw.VisitLabel(top)
	for i := 0; i < 40000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitJumpInsn(OpGoto, top)
	finish(t, cw, mw, 0, 0)

	code := mw.code.Bytes()
	if code[40000] != OpGotoW || s4(code, 40001) != -40000 {
		t.Fatalf("goto_w: got %v", code[40000:])
	}
}

// ============================================================================
// 容量
// ============================================================================

func TestCodeTooLarge(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	for i := 0; i < 70000; i++ {
		mw.VisitInsn(OpNop)
	}
	mw.VisitInsn(OpReturn)
	mw.VisitMaxs(0, 0)
	mw.VisitEnd()
	cw.VisitEnd()
	_, err := cw.ToByteArray()
	if errors.CodeOf(err) != errors.J0202 || !stderrors.Is(err, ErrCapacity) {
		t.Fatalf("error: got %v, want J0202", err)
	}
}

func TestMaxLocalsTooLarge(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	mw.VisitInsn(OpReturn)
	mw.VisitMaxs(0, 70000)
	mw.VisitEnd()
	cw.VisitEnd()
	_, err := cw.ToByteArray()
	if errors.CodeOf(err) != errors.J0204 {
		t.Fatalf("error: got %v, want J0204", err)
	}
}

// ============================================================================
// 调试信息
// ============================================================================

func TestDebugTables(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "(Ljava/util/List;)V")
	start, end := NewLabel(), NewLabel()
	mw.VisitLabel(start)
	mw.VisitLineNumber(10, start)
	mw.VisitInsn(OpNop)
	mw.VisitInsn(OpReturn)
	mw.VisitLabel(end)
	mw.VisitLocalVariable("list", "Ljava/util/List;", "Ljava/util/List<Ljava/lang/String;>;", start, end, 0)
	finish(t, cw, mw, 0, 1)

	if len(mw.lineNumbers) != 1 || mw.lineNumbers[0] != (lineEntry{pc: 0, line: 10}) {
		t.Fatalf("line numbers: got %v", mw.lineNumbers)
	}
	if len(mw.localVars) != 1 || len(mw.localVarTypes) != 1 {
		t.Fatalf("local variables: got %d/%d, want 1/1", len(mw.localVars), len(mw.localVarTypes))
	}
	v := mw.localVars[0]
	if v.start != 0 || v.length != 2 || v.index != 0 || v.desc != cw.NewUTF8("Ljava/util/List;") {
		t.Fatalf("LocalVariableTable entry: got %+v", v)
	}
	if mw.localVarTypes[0].desc != cw.NewUTF8("Ljava/util/List<Ljava/lang/String;>;") {
		t.Fatalf("LocalVariableTypeTable should carry the signature")
	}
}

func TestLineNumberNeedsResolvedLabel(t *testing.T) {
	cw, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	mw.VisitLineNumber(1, NewLabel())
	if errors.CodeOf(cw.Err()) != errors.J0106 {
		t.Fatalf("error: got %v, want J0106", cw.Err())
	}
}

func TestLabelOffset(t *testing.T) {
	_, mw := newTestMethod(V1_8, 0, AccPublic|AccStatic, "()V")
	l := NewLabel()
	if _, ok := l.Offset(); ok {
		t.Fatalf("unvisited label should have no offset")
	}
	mw.VisitInsn(OpNop)
	mw.VisitLabel(l)
	if off, ok := l.Offset(); !ok || off != 1 {
		t.Fatalf("Offset: got %d %v, want 1 true", off, ok)
	}
	if l.String() != "L1" {
		t.Fatalf("String: got %s, want L1", l.String())
	}
}
