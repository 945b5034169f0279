package jvmgen

import "math"

// ============================================================================
// 代码读取器
// ============================================================================

// codeReader 把 MethodWriter 已生成的字节码重新访问到另一个 MethodVisitor
type codeReader struct {
	cw     *ClassWriter
	src    *MethodWriter
	code   []byte
	labels map[int]*Label
}

func (r *codeReader) u2(off int) int {
	return int(r.code[off])<<8 | int(r.code[off+1])
}

func (r *codeReader) s2(off int) int {
	return int(int16(r.u2(off)))
}

func (r *codeReader) s4(off int) int {
	return int(int32(uint32(r.code[off])<<24 | uint32(r.code[off+1])<<16 | uint32(r.code[off+2])<<8 | uint32(r.code[off+3])))
}

// label 返回 offset 处的标签，不存在时创建
func (r *codeReader) label(offset int) *Label {
	if l, ok := r.labels[offset]; ok {
		return l
	}
	l := NewLabel()
	r.labels[offset] = l
	return l
}

// readCode 重新访问 src 的代码
//
// 伪操作码被展开：GOTO/JSR 写成宽格式，条件跳转写成相反条件跳过一条 GOTO_W。
// insertFrames 为 true 时先建立入口帧，并在展开的条件跳转之后插入帧。
func readCode(src *MethodWriter, mv MethodVisitor, insertFrames bool) {
	r := &codeReader{
		cw:     src.cw,
		src:    src,
		code:   src.code.Bytes(),
		labels: make(map[int]*Label),
	}
	r.scanLabels()
	for _, h := range src.handlers {
		r.label(h.start.position)
		r.label(h.end.position)
		r.label(h.handler.position)
	}
	lines := make(map[int][]int)
	for _, ln := range src.lineNumbers {
		r.label(ln.pc)
		lines[ln.pc] = append(lines[ln.pc], ln.line)
	}
	for _, v := range src.localVars {
		r.label(v.start)
		r.label(v.start + v.length)
	}
	frames := r.readFrames()

	for _, h := range src.handlers {
		typ := ""
		if h.typ != 0 {
			typ = r.cw.itemAt(h.typ).s1
		}
		mv.VisitTryCatchBlock(r.label(h.start.position), r.label(h.end.position), r.label(h.handler.position), typ)
	}
	if insertFrames {
		tops := make([]any, src.maxLocals)
		for i := range tops {
			tops[i] = Top
		}
		mv.VisitFrame(FNew, src.maxLocals, tops, 0, nil)
	}

	visitLabel := func(off int) {
		l, ok := r.labels[off]
		if !ok {
			return
		}
		mv.VisitLabel(l)
		for _, line := range lines[off] {
			mv.VisitLineNumber(line, l)
		}
	}
	fi := 0
	insertFrame := false
	for off := 0; off < len(r.code); {
		visitLabel(off)
		for fi < len(frames) && frames[fi].offset <= off {
			if f := frames[fi]; f.offset == off {
				mv.VisitFrame(FNew, len(f.local), f.local, len(f.stack), f.stack)
				insertFrame = false
			}
			fi++
		}
		if insertFrame {
			mv.VisitFrame(fInsert, 0, nil, 0, nil)
		}
		off, insertFrame = r.visitInsn(mv, off)
		insertFrame = insertFrame && insertFrames
	}
	visitLabel(len(r.code))

	for _, v := range src.localVars {
		signature := ""
		for _, t := range src.localVarTypes {
			if t.start == v.start && t.index == v.index && t.name == v.name {
				signature = r.cw.itemAt(t.desc).s1
				break
			}
		}
		mv.VisitLocalVariable(r.cw.itemAt(v.name).s1, r.cw.itemAt(v.desc).s1, signature,
			r.label(v.start), r.label(v.start+v.length), v.index)
	}
	mv.VisitMaxs(src.maxStack, src.maxLocals)
}

// scanLabels 为所有跳转目标创建标签
func (r *codeReader) scanLabels() {
	code := r.code
	for off := 0; off < len(code); {
		op := int(code[off])
		switch insnKinds[op] {
		case insnLabel:
			if op < opAsmIfeq {
				r.label(off + r.s2(off+1))
			} else {
				r.label(off + r.u2(off+1))
				r.label(off + 3)
			}
			off += 3
		case insnLabelW:
			r.label(off + r.s4(off+1))
			off += 5
		case insnTabl:
			p := off + 4 - off&3
			r.label(off + r.s4(p))
			n := r.s4(p+8) - r.s4(p+4) + 1
			p += 12
			for i := 0; i < n; i++ {
				r.label(off + r.s4(p))
				p += 4
			}
			off = p
		case insnLook:
			p := off + 4 - off&3
			r.label(off + r.s4(p))
			n := r.s4(p + 4)
			p += 8
			for i := 0; i < n; i++ {
				r.label(off + r.s4(p+4))
				p += 8
			}
			off = p
		default:
			off += insnLength(code, off)
		}
	}
}

// InsnLength 返回 off 处指令的字节长度，off 是相对方法代码起点的偏移
func InsnLength(code []byte, off int) int {
	switch insnKinds[code[off]] {
	case insnTabl:
		p := off + 4 - off&3
		lo := int32(uint32(code[p+4])<<24 | uint32(code[p+5])<<16 | uint32(code[p+6])<<8 | uint32(code[p+7]))
		hi := int32(uint32(code[p+8])<<24 | uint32(code[p+9])<<16 | uint32(code[p+10])<<8 | uint32(code[p+11]))
		return p + 12 + 4*int(hi-lo+1) - off
	case insnLook:
		p := off + 4 - off&3
		n := int(int32(uint32(code[p+4])<<24 | uint32(code[p+5])<<16 | uint32(code[p+6])<<8 | uint32(code[p+7])))
		return p + 8 + 8*n - off
	}
	return insnLength(code, off)
}

// insnLength 定长指令的长度
func insnLength(code []byte, off int) int {
	switch insnKinds[code[off]] {
	case insnNoArg, insnImplVar:
		return 1
	case insnVar, insnSbyte, insnLdc:
		return 2
	case insnShort, insnLdcW, insnField, insnMethod, insnType, insnIinc, insnLabel:
		return 3
	case insnMana:
		return 4
	case insnItfMeth, insnIndyMeth, insnLabelW:
		return 5
	case insnWide:
		if int(code[off+1]) == OpIinc {
			return 6
		}
		return 4
	}
	return 1
}

// visitInsn 访问 off 处的一条指令，返回下一条指令的偏移以及之后是否需要插入帧
func (r *codeReader) visitInsn(mv MethodVisitor, off int) (int, bool) {
	code := r.code
	cw := r.cw
	op := int(code[off])
	switch insnKinds[op] {
	case insnNoArg:
		mv.VisitInsn(op)
		return off + 1, false
	case insnImplVar:
		if op > OpIstore {
			op -= opIstore0
			mv.VisitVarInsn(OpIstore+op>>2, op&3)
		} else {
			op -= opIload0
			mv.VisitVarInsn(OpIload+op>>2, op&3)
		}
		return off + 1, false
	case insnLabel:
		if op < opAsmIfeq {
			mv.VisitJumpInsn(op, r.label(off+r.s2(off+1)))
			return off + 3, false
		}
		target := r.label(off + r.u2(off+1))
		if op < opAsmIfnull {
			op -= asmPseudoDelta
		} else {
			op -= asmPseudoDeltaNl
		}
		if op == OpGoto || op == OpJsr {
			mv.VisitJumpInsn(op+33, target)
			return off + 3, false
		}
		mv.VisitJumpInsn(invertCondition(op), r.label(off+3))
		mv.VisitJumpInsn(OpGotoW, target)
		return off + 3, true
	case insnLabelW:
		target := r.label(off + r.s4(off+1))
		if op == opAsmGotoW {
			mv.VisitJumpInsn(OpGotoW, target)
			return off + 5, true
		}
		mv.VisitJumpInsn(op, target)
		return off + 5, false
	case insnWide:
		op = int(code[off+1])
		if op == OpIinc {
			mv.VisitIincInsn(r.u2(off+2), r.s2(off+4))
			return off + 6, false
		}
		mv.VisitVarInsn(op, r.u2(off+2))
		return off + 4, false
	case insnTabl:
		p := off + 4 - off&3
		dflt := r.label(off + r.s4(p))
		min, max := r.s4(p+4), r.s4(p+8)
		p += 12
		labels := make([]*Label, max-min+1)
		for i := range labels {
			labels[i] = r.label(off + r.s4(p))
			p += 4
		}
		mv.VisitTableSwitchInsn(min, max, dflt, labels...)
		return p, false
	case insnLook:
		p := off + 4 - off&3
		dflt := r.label(off + r.s4(p))
		n := r.s4(p + 4)
		p += 8
		keys := make([]int, n)
		labels := make([]*Label, n)
		for i := 0; i < n; i++ {
			keys[i] = r.s4(p)
			labels[i] = r.label(off + r.s4(p+4))
			p += 8
		}
		mv.VisitLookupSwitchInsn(dflt, keys, labels)
		return p, false
	case insnVar:
		mv.VisitVarInsn(op, int(code[off+1]))
		return off + 2, false
	case insnSbyte:
		mv.VisitIntInsn(op, int(int8(code[off+1])))
		return off + 2, false
	case insnShort:
		mv.VisitIntInsn(op, r.s2(off+1))
		return off + 3, false
	case insnLdc:
		mv.VisitLdcInsn(cw.constValue(int(code[off+1])))
		return off + 2, false
	case insnLdcW:
		mv.VisitLdcInsn(cw.constValue(r.u2(off + 1)))
		return off + 3, false
	case insnField:
		it := cw.itemAt(r.u2(off + 1))
		mv.VisitFieldInsn(op, it.s1, it.s2, it.s3)
		return off + 3, false
	case insnMethod, insnItfMeth:
		it := cw.itemAt(r.u2(off + 1))
		mv.VisitMethodInsn(op, it.s1, it.s2, it.s3, it.typ == ConstantInterfaceMethodref)
		if op == OpInvokeinterface {
			return off + 5, false
		}
		return off + 3, false
	case insnIndyMeth:
		it := cw.itemAt(r.u2(off + 1))
		bsm, args := cw.bootstrapMethod(int(it.intVal))
		mv.VisitInvokeDynamicInsn(it.s1, it.s2, bsm, args...)
		return off + 5, false
	case insnType:
		mv.VisitTypeInsn(op, cw.itemAt(r.u2(off+1)).s1)
		return off + 3, false
	case insnIinc:
		mv.VisitIincInsn(int(code[off+1]), int(int8(code[off+2])))
		return off + 3, false
	default: // insnMana
		mv.VisitMultiANewArrayInsn(cw.itemAt(r.u2(off+1)).s1, int(code[off+3]))
		return off + 4, false
	}
}

// constValue 把常量池条目还原成 VisitLdcInsn 接受的值
func (cw *ClassWriter) constValue(index int) any {
	it := cw.itemAt(index)
	switch it.typ {
	case ConstantInteger:
		return it.intVal
	case ConstantFloat:
		return math.Float32frombits(uint32(it.intVal))
	case ConstantLong:
		return it.longVal
	case ConstantDouble:
		return math.Float64frombits(uint64(it.longVal))
	case ConstantString:
		return it.s1
	case ConstantClass:
		return GetObjectType(it.s1)
	case ConstantMethodType:
		return GetMethodType(it.s1)
	default:
		return Handle{Tag: it.typ - itemHandleBase, Owner: it.s1, Name: it.s2, Desc: it.s3, Itf: it.intVal == 1}
	}
}

// bootstrapMethod 读回第 index 个引导方法及其参数
func (cw *ClassWriter) bootstrapMethod(index int) (Handle, []any) {
	data := cw.bootstrapMethods.Bytes()
	u2 := func(p int) int { return int(data[p])<<8 | int(data[p+1]) }
	pos := 0
	for i := 0; i < index; i++ {
		pos += 4 + 2*u2(pos+2)
	}
	bsm := cw.constValue(u2(pos)).(Handle)
	n := u2(pos + 2)
	args := make([]any, n)
	for i := range args {
		args[i] = cw.constValue(u2(pos + 4 + 2*i))
	}
	return bsm, args
}
