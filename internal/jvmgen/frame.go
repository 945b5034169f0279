package jvmgen

import "github.com/tangzhangming/jvmasm/internal/errors"

// 帧类型编码
//
// 一个类型由 4 位数组维度、4 位种类和 24 位值组成。种类为 BASE 时值是基本类型或
// 类型表下标；LOCAL 和 STACK 表示“输入帧中某个局部变量/栈槽的类型”，用于在基本块
// 内相对地表示输出帧。
const (
	frameDim               = 0xF0000000
	frameArrayOf           = 0x10000000
	frameElementOf         = 0xF0000000
	frameKind              = 0xF000000
	frameTopIfLongOrDouble = 0x800000
	frameValue             = 0x7FFFFF
	frameBaseKind          = 0xFF00000
	frameBaseValue         = 0xFFFFF
	frameBase              = 0x1000000
	frameObject            = frameBase | 0x700000
	frameUninitialized     = frameBase | 0x800000
	frameLocal             = 0x2000000
	frameStack             = 0x3000000
	frameTop               = frameBase | 0
	frameBoolean           = frameBase | 9
	frameByte              = frameBase | 10
	frameChar              = frameBase | 11
	frameShort             = frameBase | 12
	frameInteger           = frameBase | 1
	frameFloat             = frameBase | 2
	frameDouble            = frameBase | 3
	frameLong              = frameBase | 4
	frameNull              = frameBase | 5
	frameUninitializedThis = frameBase | 6
)

// Frame 基本块的输入帧与相对输出帧
type Frame struct {
	owner *Label

	inputLocals []uint32
	inputStack  []uint32

	outputLocals   []uint32
	outputStack    []uint32
	outputStackTop int

	// 在本块中被构造方法调用初始化的类型
	initializations []uint32

	// inserted 为 true 时每条指令执行后立即归并，只用于加宽过程
	inserted bool
}

func newFrame(owner *Label) *Frame {
	return &Frame{owner: owner}
}

// frameTypeOf 把描述符转换成帧类型，void 返回 0
func frameTypeOf(cw *ClassWriter, desc string) uint32 {
	index := 0
	if desc[0] == '(' {
		for desc[index] != ')' {
			index++
		}
		index++
	}
	switch desc[index] {
	case 'V':
		return 0
	case 'Z', 'C', 'B', 'S', 'I':
		return frameInteger
	case 'F':
		return frameFloat
	case 'J':
		return frameLong
	case 'D':
		return frameDouble
	case 'L':
		return frameObject | uint32(cw.addType(desc[index+1:len(desc)-1]))
	default:
		dims := index + 1
		for desc[dims] == '[' {
			dims++
		}
		var data uint32
		switch desc[dims] {
		case 'Z':
			data = frameBoolean
		case 'C':
			data = frameChar
		case 'B':
			data = frameByte
		case 'S':
			data = frameShort
		case 'I':
			data = frameInteger
		case 'F':
			data = frameFloat
		case 'J':
			data = frameLong
		case 'D':
			data = frameDouble
		default:
			data = frameObject | uint32(cw.addType(desc[dims+1:len(desc)-1]))
		}
		return uint32(dims-index)<<28 | data
	}
}

// convertFrameValues 把 VisitFrame 的元素转换成帧类型，long/double 后补 TOP
func convertFrameValues(cw *ClassWriter, n int, input []any, output []uint32) int {
	i := 0
	for j := 0; j < n; j++ {
		switch v := input[j].(type) {
		case int:
			output[i] = frameBase | uint32(v)
			i++
			if v == Long || v == Double {
				output[i] = frameTop
				i++
			}
		case string:
			output[i] = frameTypeOf(cw, GetObjectType(v).Descriptor())
			i++
		case *Label:
			output[i] = frameUninitialized | uint32(cw.addUninitializedType("", v.position))
			i++
		default:
			cw.setErr(errors.New(errors.J0108, "VisitFrame", "frame element"))
			output[i] = frameTop
			i++
		}
	}
	return i
}

// setFrame 用显式帧覆盖输入帧，局部变量不足的部分补 TOP
func (f *Frame) setFrame(cw *ClassWriter, nLocal int, local []any, nStack int, stack []any) {
	if n := frameSlots(nLocal, local); n > len(f.inputLocals) {
		f.inputLocals = make([]uint32, n)
	}
	i := convertFrameValues(cw, nLocal, local, f.inputLocals)
	for i < len(f.inputLocals) {
		f.inputLocals[i] = frameTop
		i++
	}
	f.inputStack = make([]uint32, frameSlots(nStack, stack))
	convertFrameValues(cw, nStack, stack, f.inputStack)
	f.outputStackTop = 0
	f.initializations = nil
}

// frameSlots 返回 n 个帧元素占用的槽数
func frameSlots(n int, values []any) int {
	slots := n
	for j := 0; j < n; j++ {
		if v, ok := values[j].(int); ok && (v == Long || v == Double) {
			slots++
		}
	}
	return slots
}

// copyFrom 共享另一个帧的全部状态
func (f *Frame) copyFrom(o *Frame) {
	f.inputLocals = o.inputLocals
	f.inputStack = o.inputStack
	f.outputLocals = o.outputLocals
	f.outputStack = o.outputStack
	f.outputStackTop = o.outputStackTop
	f.initializations = o.initializations
}

func (f *Frame) get(local int) uint32 {
	if local >= len(f.outputLocals) {
		return frameLocal | uint32(local)
	}
	t := f.outputLocals[local]
	if t == 0 {
		t = frameLocal | uint32(local)
		f.outputLocals[local] = t
	}
	return t
}

func (f *Frame) set(local int, t uint32) {
	if local >= len(f.outputLocals) {
		n := 2 * len(f.outputLocals)
		if n < local+1 {
			n = local + 1
		}
		grown := make([]uint32, n)
		copy(grown, f.outputLocals)
		f.outputLocals = grown
	}
	f.outputLocals[local] = t
}

func (f *Frame) push(t uint32) {
	if f.outputStackTop >= len(f.outputStack) {
		n := 2 * len(f.outputStack)
		if n < f.outputStackTop+1 {
			n = f.outputStackTop + 1
		}
		grown := make([]uint32, n)
		copy(grown, f.outputStack)
		f.outputStack = grown
	}
	f.outputStack[f.outputStackTop] = t
	f.outputStackTop++
	if top := f.owner.inputStackTop + f.outputStackTop; top > f.owner.outputStackMax {
		f.owner.outputStackMax = top
	}
}

func (f *Frame) pushDesc(cw *ClassWriter, desc string) {
	t := frameTypeOf(cw, desc)
	if t != 0 {
		f.push(t)
		if t == frameLong || t == frameDouble {
			f.push(frameTop)
		}
	}
}

func (f *Frame) pop() uint32 {
	if f.outputStackTop > 0 {
		f.outputStackTop--
		return f.outputStack[f.outputStackTop]
	}
	f.owner.inputStackTop--
	return frameStack | uint32(-f.owner.inputStackTop)
}

func (f *Frame) popN(elements int) {
	if f.outputStackTop >= elements {
		f.outputStackTop -= elements
		return
	}
	f.owner.inputStackTop -= elements - f.outputStackTop
	f.outputStackTop = 0
}

func (f *Frame) popDesc(desc string) {
	switch desc[0] {
	case '(':
		f.popN((argumentsAndReturnSizes(desc) >> 2) - 1)
	case 'J', 'D':
		f.popN(2)
	default:
		f.popN(1)
	}
}

// initType 记录一个被构造方法调用初始化的类型
func (f *Frame) initType(v uint32) {
	f.initializations = append(f.initializations, v)
}

// initialized 若 t 在本块中被初始化，返回初始化后的类型
func (f *Frame) initialized(cw *ClassWriter, t uint32) uint32 {
	var s uint32
	switch {
	case t == frameUninitializedThis:
		s = frameObject | uint32(cw.addType(cw.thisName))
	case t&(frameDim|frameBaseKind) == frameUninitialized:
		s = frameObject | uint32(cw.addType(cw.typeTable[t&frameBaseValue].s1))
	default:
		return t
	}
	for _, u := range f.initializations {
		dim := u & frameDim
		kind := u & frameKind
		if kind == frameLocal {
			u = dim + f.inputLocals[u&frameValue]
		} else if kind == frameStack {
			u = dim + f.inputStack[len(f.inputStack)-int(u&frameValue)]
		}
		if t == u {
			return s
		}
	}
	return t
}

// initInputFrame 由方法描述符构造入口帧
func (f *Frame) initInputFrame(cw *ClassWriter, access int, args []Type, maxLocals int) {
	locals := make([]uint32, 0, maxLocals)
	if access&AccStatic == 0 {
		if access&accConstructor == 0 {
			locals = append(locals, frameObject|uint32(cw.addType(cw.thisName)))
		} else {
			locals = append(locals, frameUninitializedThis)
		}
	}
	for _, arg := range args {
		t := frameTypeOf(cw, arg.Descriptor())
		locals = append(locals, t)
		if t == frameLong || t == frameDouble {
			locals = append(locals, frameTop)
		}
	}
	for len(locals) < maxLocals {
		locals = append(locals, frameTop)
	}
	f.inputLocals = locals
	f.inputStack = []uint32{}
}
