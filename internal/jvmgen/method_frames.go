package jvmgen

import (
	"strings"

	"github.com/tangzhangming/jvmasm/internal/errors"
)

// ============================================================================
// 栈映射帧
// ============================================================================

// VisitFrame 显式帧
//
// 计算帧模式下忽略；FNew 帧按展开形式记录并在写出时压缩，其他类型按原样写入。
func (mw *MethodWriter) VisitFrame(typ, nLocal int, local []any, nStack int, stack []any) {
	if !mw.inCode("VisitFrame") {
		return
	}
	if nLocal < 0 || nStack < 0 || nLocal > len(local) || nStack > len(stack) {
		mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "frame element count"))
		return
	}
	switch mw.compute {
	case computeFrames:
		return
	case computeInsertedFrames:
		mw.visitInsertedFrame(typ, nLocal, local, nStack, stack)
	default:
		offset := mw.code.Len()
		if offset == mw.lastUserFrame {
			if typ == FSame {
				return
			}
			mw.cw.setErr(errors.New(errors.J0105, "VisitFrame", offset))
			return
		}
		mw.lastUserFrame = offset
		if typ == FNew {
			mw.visitExpandedFrame(nLocal, local, nStack, stack)
		} else if !mw.visitCompressedFrame(typ, nLocal, local, nStack, stack) {
			return
		}
	}
	if nStack > mw.maxStack {
		mw.maxStack = nStack
	}
	if mw.currentLocals > mw.maxLocals {
		mw.maxLocals = mw.currentLocals
	}
}

// visitInsertedFrame 加宽过程中重读代码时的帧：第一次调用建立入口帧，
// FNew 覆盖当前帧，FInsert 写出当前帧
func (mw *MethodWriter) visitInsertedFrame(typ, nLocal int, local []any, nStack int, stack []any) {
	block := mw.currentBlock
	if block.frame == nil {
		f := newFrame(block)
		f.inserted = true
		block.frame = f
		f.initInputFrame(mw.cw, mw.access, argumentTypes(mw.descriptor), nLocal)
		mw.visitImplicitFirstFrame()
		return
	}
	if typ == FNew {
		block.frame.setFrame(mw.cw, nLocal, local, nStack, stack)
	}
	mw.visitFrameOf(block.frame)
}

func (mw *MethodWriter) visitExpandedFrame(nLocal int, local []any, nStack int, stack []any) {
	if mw.previousFrame == nil {
		mw.visitImplicitFirstFrame()
	}
	mw.currentLocals = nLocal
	i := mw.startFrame(mw.code.Len(), nLocal, nStack)
	for _, v := range local[:nLocal] {
		mw.frame[i] = mw.frameValue(v)
		i++
	}
	for _, v := range stack[:nStack] {
		mw.frame[i] = mw.frameValue(v)
		i++
	}
	mw.endFrame()
}

// frameValue 把 VisitFrame 的一个元素转换成帧类型
func (mw *MethodWriter) frameValue(v any) uint32 {
	switch t := v.(type) {
	case int:
		return frameBase | uint32(t)
	case string:
		return frameTypeOf(mw.cw, GetObjectType(t).Descriptor())
	case *Label:
		if t.status&labelResolved == 0 {
			mw.cw.setErr(errors.New(errors.J0106, "VisitFrame", t))
			return frameTop
		}
		return frameUninitialized | uint32(mw.cw.addUninitializedType("", t.position))
	default:
		mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "frame element"))
		return frameTop
	}
}

// visitCompressedFrame 直接写入压缩帧，返回 false 表示帧被丢弃
func (mw *MethodWriter) visitCompressedFrame(typ, nLocal int, local []any, nStack int, stack []any) bool {
	var delta int
	if mw.stackMap == nil {
		mw.stackMap = NewByteVector()
		delta = mw.code.Len()
	} else {
		delta = mw.code.Len() - mw.previousFrameOffset - 1
		if delta < 0 {
			if typ == FSame {
				return false
			}
			mw.cw.setErr(errors.New(errors.J0105, "VisitFrame", mw.code.Len()))
			return false
		}
	}
	sm := mw.stackMap
	switch typ {
	case FFull:
		mw.currentLocals = nLocal
		sm.PutByte(fullFrame).PutShort(delta).PutShort(nLocal)
		for _, v := range local[:nLocal] {
			mw.writeFrameValue(v)
		}
		sm.PutShort(nStack)
		for _, v := range stack[:nStack] {
			mw.writeFrameValue(v)
		}
	case FAppend:
		if nLocal < 1 || nLocal > 3 {
			mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "append frame size"))
			return false
		}
		mw.currentLocals += nLocal
		sm.PutByte(sameFrameExtended + nLocal).PutShort(delta)
		for _, v := range local[:nLocal] {
			mw.writeFrameValue(v)
		}
	case FChop:
		if nLocal < 1 || nLocal > 3 {
			mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "chop frame size"))
			return false
		}
		mw.currentLocals -= nLocal
		sm.PutByte(sameFrameExtended - nLocal).PutShort(delta)
	case FSame:
		if delta < 64 {
			sm.PutByte(delta)
		} else {
			sm.PutByte(sameFrameExtended).PutShort(delta)
		}
	case FSame1:
		if nStack < 1 {
			mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "missing stack item"))
			return false
		}
		if delta < 64 {
			sm.PutByte(sameLocals1StackItemFrame + delta)
		} else {
			sm.PutByte(sameLocals1StackItemFrameExtended).PutShort(delta)
		}
		mw.writeFrameValue(stack[0])
	default:
		mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "frame type"))
		return false
	}
	mw.previousFrameOffset = mw.code.Len()
	mw.frameCount++
	return true
}

// writeFrameValue 写入压缩帧中的一个验证类型
func (mw *MethodWriter) writeFrameValue(v any) {
	switch t := v.(type) {
	case string:
		mw.stackMap.PutByte(itemObject).PutShort(mw.cw.NewClass(t))
	case int:
		mw.stackMap.PutByte(t)
	case *Label:
		if t.status&labelResolved == 0 {
			mw.cw.setErr(errors.New(errors.J0106, "VisitFrame", t))
		}
		mw.stackMap.PutByte(itemUninitialized).PutShort(t.position)
	default:
		mw.cw.setErr(errors.New(errors.J0108, "VisitFrame", "frame element"))
	}
}

// visitFrameOf 写出计算得到的帧，long/double 后面的 TOP 省略，末尾的 TOP 局部变量截断
func (mw *MethodWriter) visitFrameOf(f *Frame) {
	locals := f.inputLocals
	stacks := f.inputStack
	nTop, nLocal, nStack := 0, 0, 0
	for i := 0; i < len(locals); i++ {
		t := locals[i]
		if t == frameTop {
			nTop++
		} else {
			nLocal += nTop + 1
			nTop = 0
		}
		if t == frameLong || t == frameDouble {
			i++
		}
	}
	for i := 0; i < len(stacks); i++ {
		t := stacks[i]
		nStack++
		if t == frameLong || t == frameDouble {
			i++
		}
	}
	idx := mw.startFrame(f.owner.position, nLocal, nStack)
	for i := 0; nLocal > 0; i, nLocal = i+1, nLocal-1 {
		t := locals[i]
		mw.frame[idx] = t
		idx++
		if t == frameLong || t == frameDouble {
			i++
		}
	}
	for i := 0; i < len(stacks); i++ {
		t := stacks[i]
		mw.frame[idx] = t
		idx++
		if t == frameLong || t == frameDouble {
			i++
		}
	}
	mw.endFrame()
}

// visitImplicitFirstFrame 由描述符推出的入口帧，只作为压缩的基准，不写出。
// 数组参数与计算帧一样按维度编码
func (mw *MethodWriter) visitImplicitFirstFrame() {
	idx := mw.startFrame(0, len(mw.descriptor)+1, 0)
	if mw.access&AccStatic == 0 {
		if mw.access&accConstructor == 0 {
			mw.frame[idx] = frameObject | uint32(mw.cw.addType(mw.cw.thisName))
		} else {
			mw.frame[idx] = frameUninitializedThis
		}
		idx++
	}
	for _, arg := range argumentTypes(mw.descriptor) {
		mw.frame[idx] = frameTypeOf(mw.cw, arg.Descriptor())
		idx++
	}
	mw.frame[1] = uint32(idx - 3)
	mw.endFrame()
}

func (mw *MethodWriter) startFrame(offset, nLocal, nStack int) int {
	n := 3 + nLocal + nStack
	if len(mw.frame) < n {
		mw.frame = make([]uint32, n)
	}
	mw.frame[0] = uint32(offset)
	mw.frame[1] = uint32(nLocal)
	mw.frame[2] = uint32(nStack)
	return 3
}

// endFrame 压缩并写出当前帧，它成为下一帧的基准
func (mw *MethodWriter) endFrame() {
	if mw.previousFrame != nil {
		if mw.stackMap == nil {
			mw.stackMap = NewByteVector()
		}
		mw.writeFrame()
		mw.frameCount++
	}
	mw.previousFrame = mw.frame
	mw.frame = nil
}

func (mw *MethodWriter) writeFrame() {
	cur, prev := mw.frame, mw.previousFrame
	clocals := int(cur[1])
	cstack := int(cur[2])
	sm := mw.stackMap
	if mw.cw.version&0xFFFF < V1_6 {
		sm.PutShort(int(cur[0])).PutShort(clocals)
		mw.writeFrameTypes(3, 3+clocals)
		sm.PutShort(cstack)
		mw.writeFrameTypes(3+clocals, 3+clocals+cstack)
		return
	}
	locals := int(prev[1])
	typ := fullFrame
	k := 0
	var delta int
	if mw.frameCount == 0 {
		delta = int(cur[0])
	} else {
		delta = int(cur[0]) - int(prev[0]) - 1
	}
	if cstack == 0 {
		k = clocals - locals
		switch {
		case k >= -3 && k <= -1:
			typ = chopFrame
			locals = clocals
		case k == 0:
			typ = sameFrameExtended
			if delta < 64 {
				typ = sameFrame
			}
		case k >= 1 && k <= 3:
			typ = appendFrame
		}
	} else if clocals == locals && cstack == 1 {
		typ = sameLocals1StackItemFrameExtended
		if delta < 64 {
			typ = sameLocals1StackItemFrame
		}
	}
	if typ != fullFrame {
		for l := 3; l < 3+locals; l++ {
			if cur[l] != prev[l] {
				typ = fullFrame
				break
			}
		}
	}
	switch typ {
	case sameFrame:
		sm.PutByte(delta)
	case sameLocals1StackItemFrame:
		sm.PutByte(sameLocals1StackItemFrame + delta)
		mw.writeFrameTypes(3+clocals, 4+clocals)
	case sameLocals1StackItemFrameExtended:
		sm.PutByte(sameLocals1StackItemFrameExtended).PutShort(delta)
		mw.writeFrameTypes(3+clocals, 4+clocals)
	case sameFrameExtended:
		sm.PutByte(sameFrameExtended).PutShort(delta)
	case chopFrame:
		sm.PutByte(sameFrameExtended + k).PutShort(delta)
	case appendFrame:
		sm.PutByte(sameFrameExtended + k).PutShort(delta)
		mw.writeFrameTypes(3+locals, 3+clocals)
	default:
		sm.PutByte(fullFrame).PutShort(delta).PutShort(clocals)
		mw.writeFrameTypes(3, 3+clocals)
		sm.PutShort(cstack)
		mw.writeFrameTypes(3+clocals, 3+clocals+cstack)
	}
}

// writeFrameTypes 写出 frame[start:end] 的验证类型
func (mw *MethodWriter) writeFrameTypes(start, end int) {
	for i := start; i < end; i++ {
		t := mw.frame[i]
		dims := t & frameDim
		if dims == 0 {
			v := int(t & frameBaseValue)
			switch t & frameBaseKind {
			case frameObject:
				mw.stackMap.PutByte(itemObject).PutShort(mw.cw.NewClass(mw.cw.typeTable[v].s1))
			case frameUninitialized:
				mw.stackMap.PutByte(itemUninitialized).PutShort(int(mw.cw.typeTable[v].intVal))
			default:
				mw.stackMap.PutByte(v)
			}
			continue
		}
		var sb strings.Builder
		for d := dims >> 28; d > 0; d-- {
			sb.WriteByte('[')
		}
		if t&frameBaseKind == frameObject {
			sb.WriteByte('L')
			sb.WriteString(mw.cw.typeTable[t&frameBaseValue].s1)
			sb.WriteByte(';')
		} else {
			switch t & 0xF {
			case 1:
				sb.WriteByte('I')
			case 2:
				sb.WriteByte('F')
			case 3:
				sb.WriteByte('D')
			case 9:
				sb.WriteByte('Z')
			case 10:
				sb.WriteByte('B')
			case 11:
				sb.WriteByte('C')
			case 12:
				sb.WriteByte('S')
			default:
				sb.WriteByte('J')
			}
		}
		mw.stackMap.PutByte(itemObject).PutShort(mw.cw.NewClass(sb.String()))
	}
}
