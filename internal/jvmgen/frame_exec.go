package jvmgen

import "github.com/tangzhangming/jvmasm/internal/errors"

// execute 模拟一条指令对输出帧的影响
//
// arg 是局部变量下标、操作数或 NEW 指令的偏移；it 是指令引用的常量池项。
func (f *Frame) execute(opcode, arg int, cw *ClassWriter, it *item) {
	switch opcode {
	case OpNop, OpIneg, OpLneg, OpFneg, OpDneg, OpI2b, OpI2c, OpI2s, OpGoto, OpReturn:
	case OpAconstNull:
		f.push(frameNull)
	case OpIconstM1, OpIconst0, OpIconst1, OpIconst2, OpIconst3, OpIconst4, OpIconst5,
		OpBipush, OpSipush, OpIload:
		f.push(frameInteger)
	case OpLconst0, OpLconst1, OpLload:
		f.push(frameLong)
		f.push(frameTop)
	case OpFconst0, OpFconst1, OpFconst2, OpFload:
		f.push(frameFloat)
	case OpDconst0, OpDconst1, OpDload:
		f.push(frameDouble)
		f.push(frameTop)
	case OpLdc:
		switch it.typ {
		case ConstantInteger:
			f.push(frameInteger)
		case ConstantLong:
			f.push(frameLong)
			f.push(frameTop)
		case ConstantFloat:
			f.push(frameFloat)
		case ConstantDouble:
			f.push(frameDouble)
			f.push(frameTop)
		case ConstantClass:
			f.push(frameObject | uint32(cw.addType("java/lang/Class")))
		case ConstantString:
			f.push(frameObject | uint32(cw.addType("java/lang/String")))
		case ConstantMethodType:
			f.push(frameObject | uint32(cw.addType("java/lang/invoke/MethodType")))
		default:
			f.push(frameObject | uint32(cw.addType("java/lang/invoke/MethodHandle")))
		}
	case OpAload:
		f.push(f.get(arg))
	case OpIaload, OpBaload, OpCaload, OpSaload:
		f.popN(2)
		f.push(frameInteger)
	case OpLaload, OpD2l:
		f.popN(2)
		f.push(frameLong)
		f.push(frameTop)
	case OpFaload:
		f.popN(2)
		f.push(frameFloat)
	case OpDaload, OpL2d:
		f.popN(2)
		f.push(frameDouble)
		f.push(frameTop)
	case OpAaload:
		f.popN(1)
		t1 := f.pop()
		f.push(frameElementOf + t1)
	case OpIstore, OpFstore, OpAstore:
		t1 := f.pop()
		f.set(arg, t1)
		f.invalidatePrevious(arg)
	case OpLstore, OpDstore:
		f.popN(1)
		t1 := f.pop()
		f.set(arg, t1)
		f.set(arg+1, frameTop)
		f.invalidatePrevious(arg)
	case OpIastore, OpBastore, OpCastore, OpSastore, OpFastore, OpAastore:
		f.popN(3)
	case OpLastore, OpDastore:
		f.popN(4)
	case OpPop, OpIfeq, OpIfne, OpIflt, OpIfge, OpIfgt, OpIfle, OpIreturn, OpFreturn, OpAreturn,
		OpTableswitch, OpLookupswitch, OpAthrow, OpMonitorenter, OpMonitorexit, OpIfnull, OpIfnonnull:
		f.popN(1)
	case OpPop2, OpIfIcmpeq, OpIfIcmpne, OpIfIcmplt, OpIfIcmpge, OpIfIcmpgt, OpIfIcmple,
		OpIfAcmpeq, OpIfAcmpne, OpLreturn, OpDreturn:
		f.popN(2)
	case OpDup:
		t1 := f.pop()
		f.push(t1)
		f.push(t1)
	case OpDupX1:
		t1, t2 := f.pop(), f.pop()
		f.push(t1)
		f.push(t2)
		f.push(t1)
	case OpDupX2:
		t1, t2, t3 := f.pop(), f.pop(), f.pop()
		f.push(t1)
		f.push(t3)
		f.push(t2)
		f.push(t1)
	case OpDup2:
		t1, t2 := f.pop(), f.pop()
		f.push(t2)
		f.push(t1)
		f.push(t2)
		f.push(t1)
	case OpDup2X1:
		t1, t2, t3 := f.pop(), f.pop(), f.pop()
		f.push(t2)
		f.push(t1)
		f.push(t3)
		f.push(t2)
		f.push(t1)
	case OpDup2X2:
		t1, t2, t3, t4 := f.pop(), f.pop(), f.pop(), f.pop()
		f.push(t2)
		f.push(t1)
		f.push(t4)
		f.push(t3)
		f.push(t2)
		f.push(t1)
	case OpSwap:
		t1, t2 := f.pop(), f.pop()
		f.push(t1)
		f.push(t2)
	case OpIadd, OpIsub, OpImul, OpIdiv, OpIrem, OpIand, OpIor, OpIxor, OpIshl, OpIshr, OpIushr,
		OpL2i, OpD2i, OpFcmpl, OpFcmpg:
		f.popN(2)
		f.push(frameInteger)
	case OpLadd, OpLsub, OpLmul, OpLdiv, OpLrem, OpLand, OpLor, OpLxor:
		f.popN(4)
		f.push(frameLong)
		f.push(frameTop)
	case OpFadd, OpFsub, OpFmul, OpFdiv, OpFrem, OpL2f, OpD2f:
		f.popN(2)
		f.push(frameFloat)
	case OpDadd, OpDsub, OpDmul, OpDdiv, OpDrem:
		f.popN(4)
		f.push(frameDouble)
		f.push(frameTop)
	case OpLshl, OpLshr, OpLushr:
		f.popN(3)
		f.push(frameLong)
		f.push(frameTop)
	case OpIinc:
		f.set(arg, frameInteger)
	case OpI2l, OpF2l:
		f.popN(1)
		f.push(frameLong)
		f.push(frameTop)
	case OpI2f:
		f.popN(1)
		f.push(frameFloat)
	case OpI2d, OpF2d:
		f.popN(1)
		f.push(frameDouble)
		f.push(frameTop)
	case OpF2i, OpArraylength, OpInstanceof:
		f.popN(1)
		f.push(frameInteger)
	case OpLcmp, OpDcmpl, OpDcmpg:
		f.popN(4)
		f.push(frameInteger)
	case OpJsr, OpRet:
		cw.setErr(errors.New(errors.J0300, "execute"))
	case OpGetstatic:
		f.pushDesc(cw, it.s3)
	case OpPutstatic:
		f.popDesc(it.s3)
	case OpGetfield:
		f.popN(1)
		f.pushDesc(cw, it.s3)
	case OpPutfield:
		f.popDesc(it.s3)
		f.pop()
	case OpInvokevirtual, OpInvokespecial, OpInvokestatic, OpInvokeinterface:
		f.popDesc(it.s3)
		if opcode != OpInvokestatic {
			t1 := f.pop()
			if opcode == OpInvokespecial && it.s2[0] == '<' {
				f.initType(t1)
			}
		}
		f.pushDesc(cw, it.s3)
	case OpInvokedynamic:
		f.popDesc(it.s2)
		f.pushDesc(cw, it.s2)
	case OpNew:
		f.push(frameUninitialized | uint32(cw.addUninitializedType(it.s1, arg)))
	case OpNewarray:
		f.pop()
		switch arg {
		case TBoolean:
			f.push(frameArrayOf | frameBoolean)
		case TChar:
			f.push(frameArrayOf | frameChar)
		case TByte:
			f.push(frameArrayOf | frameByte)
		case TShort:
			f.push(frameArrayOf | frameShort)
		case TInt:
			f.push(frameArrayOf | frameInteger)
		case TFloat:
			f.push(frameArrayOf | frameFloat)
		case TDouble:
			f.push(frameArrayOf | frameDouble)
		default:
			f.push(frameArrayOf | frameLong)
		}
	case OpAnewarray:
		s := it.s1
		f.pop()
		if s[0] == '[' {
			f.pushDesc(cw, "["+s)
		} else {
			f.push(frameArrayOf | frameObject | uint32(cw.addType(s)))
		}
	case OpCheckcast:
		s := it.s1
		f.pop()
		if s[0] == '[' {
			f.pushDesc(cw, s)
		} else {
			f.push(frameObject | uint32(cw.addType(s)))
		}
	default:
		// MULTIANEWARRAY
		f.popN(arg)
		f.pushDesc(cw, it.s1)
	}
	if f.inserted {
		f.collapse(cw)
	}
}

// invalidatePrevious 写入局部变量 arg 后，前一个槽若是 long/double 的前半部分则失效
func (f *Frame) invalidatePrevious(arg int) {
	if arg <= 0 {
		return
	}
	t2 := f.get(arg - 1)
	if t2 == frameLong || t2 == frameDouble {
		f.set(arg-1, frameTop)
	} else if t2&frameKind != frameBase {
		f.set(arg-1, t2|frameTopIfLongOrDouble)
	}
}

// collapse 把输出帧归并成新的输入帧，使每条指令之后的帧都是绝对的
func (f *Frame) collapse(cw *ClassWriter) {
	successor := &Frame{}
	f.merge(cw, successor, 0)
	f.copyFrom(successor)
	f.owner.inputStackTop = 0
}

// ============================================================================
// 归并
// ============================================================================

// resolveOutput 把相对输出类型换算成绝对类型
func (f *Frame) resolveOutput(s uint32) uint32 {
	dim := s & frameDim
	kind := s & frameKind
	if kind == frameBase {
		return s
	}
	var t uint32
	if kind == frameLocal {
		t = dim + f.inputLocals[s&frameValue]
	} else {
		t = dim + f.inputStack[len(f.inputStack)-int(s&frameValue)]
	}
	if s&frameTopIfLongOrDouble != 0 && (t == frameLong || t == frameDouble) {
		t = frameTop
	}
	return t
}

// merge 把本块执行后的帧归并进后继块的输入帧，edge 为异常类型或 0
func (f *Frame) merge(cw *ClassWriter, frame *Frame, edge int) bool {
	changed := false
	nLocal := len(f.inputLocals)
	if frame.inputLocals == nil {
		frame.inputLocals = make([]uint32, nLocal)
		changed = true
	}
	for i := 0; i < nLocal; i++ {
		var t uint32
		if i < len(f.outputLocals) {
			s := f.outputLocals[i]
			if s == 0 {
				t = f.inputLocals[i]
			} else {
				t = f.resolveOutput(s)
			}
		} else {
			t = f.inputLocals[i]
		}
		if f.initializations != nil {
			t = f.initialized(cw, t)
		}
		changed = mergeType(cw, t, frame.inputLocals, i) || changed
	}

	if edge > 0 {
		for i := 0; i < nLocal; i++ {
			changed = mergeType(cw, f.inputLocals[i], frame.inputLocals, i) || changed
		}
		if frame.inputStack == nil {
			frame.inputStack = make([]uint32, 1)
			changed = true
		}
		return mergeType(cw, uint32(edge), frame.inputStack, 0) || changed
	}

	nInputStack := len(f.inputStack) + f.owner.inputStackTop
	if frame.inputStack == nil {
		frame.inputStack = make([]uint32, nInputStack+f.outputStackTop)
		changed = true
	}
	for i := 0; i < nInputStack; i++ {
		t := f.inputStack[i]
		if f.initializations != nil {
			t = f.initialized(cw, t)
		}
		changed = mergeType(cw, t, frame.inputStack, i) || changed
	}
	for i := 0; i < f.outputStackTop; i++ {
		t := f.resolveOutput(f.outputStack[i])
		if f.initializations != nil {
			t = f.initialized(cw, t)
		}
		changed = mergeType(cw, t, frame.inputStack, nInputStack+i) || changed
	}
	return changed
}

// mergeType 把类型 t 归并进 types[index]，返回是否改变
func mergeType(cw *ClassWriter, t uint32, types []uint32, index int) bool {
	if index >= len(types) {
		return false
	}
	u := types[index]
	if u == t {
		return false
	}
	if t&^frameDim == frameNull {
		if u == frameNull {
			return false
		}
		t = frameNull
	}
	if u == 0 {
		types[index] = t
		return true
	}
	var v uint32
	switch {
	case u&frameBaseKind == frameObject || u&frameDim != 0:
		switch {
		case t == frameNull:
			return false
		case t&(frameDim|frameBaseKind) == u&(frameDim|frameBaseKind):
			if u&frameBaseKind == frameObject {
				v = t&frameDim | frameObject |
					uint32(cw.getMergedType(int(t&frameBaseValue), int(u&frameBaseValue)))
			} else {
				vdim := frameElementOf + t&frameDim
				v = vdim | frameObject | uint32(cw.addType("java/lang/Object"))
			}
		case t&frameBaseKind == frameObject || t&frameDim != 0:
			tdim := arrayDims(t)
			udim := arrayDims(u)
			d := tdim
			if int32(udim) < int32(tdim) {
				d = udim
			}
			v = d | frameObject | uint32(cw.addType("java/lang/Object"))
		default:
			v = frameTop
		}
	case u == frameNull:
		if t&frameBaseKind == frameObject || t&frameDim != 0 {
			v = t
		} else {
			v = frameTop
		}
	default:
		v = frameTop
	}
	if u != v {
		types[index] = v
		return true
	}
	return false
}

// arrayDims 返回与 Object 合并时保留的维度：基本类型数组少算一维
func arrayDims(t uint32) uint32 {
	var base uint32
	if t&frameDim != 0 && t&frameBaseKind != frameObject {
		base = frameElementOf
	}
	return base + t&frameDim
}
