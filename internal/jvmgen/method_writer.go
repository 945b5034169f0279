package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
)

// lineEntry LineNumberTable 的一行
type lineEntry struct {
	pc   int
	line int
}

// localVarEntry LocalVariable(Type)Table 的一行，name 与 desc 为常量池下标
type localVarEntry struct {
	start  int
	length int
	name   int
	desc   int
	index  int
}

// MethodWriter 生成一个 method_info 结构，包括 Code 属性
type MethodWriter struct {
	cw         *ClassWriter
	access     int
	name       int
	desc       int
	nameStr    string
	descriptor string
	signature  string
	exceptions []int

	parameters        *ByteVector
	parameterCount    int
	annotationDefault *ByteVector
	anns, ianns       []*AnnotationWriter
	tanns, itanns     []*AnnotationWriter
	panns, ipanns     [][]*AnnotationWriter
	synthetics        int
	attrs             []Attribute
	codeAttrs         []Attribute

	code          *ByteVector
	maxStack      int
	maxLocals     int
	currentLocals int

	// 栈映射帧
	frameCount          int
	stackMap            *ByteVector
	previousFrameOffset int
	previousFrame       []uint32
	frame               []uint32

	handlers      []*Handler
	localVars     []localVarEntry
	localVarTypes []localVarEntry
	lineNumbers   []lineEntry

	// 控制流分析
	compute       int
	subroutines   int
	labels        *Label // 入口基本块
	previousBlock *Label
	currentBlock  *Label
	stackSize     int
	maxStackSize  int

	forward       []*Label // 被引用但可能尚未访问的标签
	hasAsmInsns   bool     // 代码中有待加宽的伪操作码
	codeVisited   bool
	maxsVisited   bool
	ended         bool
	lastUserFrame int
}

func newMethodWriter(cw *ClassWriter, access int, name, desc, signature string, exceptions []string, compute int) *MethodWriter {
	mw := &MethodWriter{
		cw:            cw,
		access:        access,
		nameStr:       name,
		descriptor:    desc,
		signature:     signature,
		code:          NewByteVector(),
		compute:       compute,
		lastUserFrame: -1,
	}
	if name == "<init>" {
		mw.access |= accConstructor
	}
	mw.name = cw.NewUTF8(name)
	mw.desc = cw.NewUTF8(desc)
	for _, e := range exceptions {
		mw.exceptions = append(mw.exceptions, cw.NewClass(e))
	}
	mw.initCompute()
	return mw
}

// initCompute 按描述符设置初始局部变量数，并访问入口基本块
func (mw *MethodWriter) initCompute() {
	if mw.compute == computeNothing {
		return
	}
	size := argumentsAndReturnSizes(mw.descriptor) >> 2
	if mw.access&AccStatic != 0 {
		size--
	}
	mw.maxLocals = size
	mw.currentLocals = size
	mw.labels = NewLabel()
	mw.labels.status |= labelPushed
	mw.visitLabel(mw.labels)
}

// ============================================================================
// 状态检查
// ============================================================================

// live 检查方法是否还能接收非代码事件
func (mw *MethodWriter) live(op string) bool {
	if mw.cw.err != nil {
		return false
	}
	if mw.ended {
		mw.cw.setErr(errors.New(errors.J0104, op, op))
		return false
	}
	return true
}

// inCode 检查是否可以访问指令
func (mw *MethodWriter) inCode(op string) bool {
	if !mw.live(op) {
		return false
	}
	if !mw.codeVisited {
		mw.cw.setErr(errors.New(errors.J0103, op))
		return false
	}
	if mw.maxsVisited {
		mw.cw.setErr(errors.New(errors.J0104, op, op))
		return false
	}
	return true
}

// ============================================================================
// 非代码部分
// ============================================================================

// VisitParameter 记录 MethodParameters 中的一项，name 为空表示无名参数
func (mw *MethodWriter) VisitParameter(name string, access int) {
	if !mw.live("VisitParameter") {
		return
	}
	if mw.parameters == nil {
		mw.parameters = NewByteVector()
	}
	mw.parameterCount++
	n := 0
	if name != "" {
		n = mw.cw.NewUTF8(name)
	}
	mw.parameters.PutShort(n).PutShort(access)
}

// VisitAnnotationDefault 注解方法的默认值
func (mw *MethodWriter) VisitAnnotationDefault() AnnotationVisitor {
	if !mw.live("VisitAnnotationDefault") {
		return NopAnnotationVisitor{}
	}
	mw.annotationDefault = NewByteVector()
	return newAnnotationWriter(mw.cw, false, mw.annotationDefault, nil, 0)
}

// VisitAnnotation 方法注解
func (mw *MethodWriter) VisitAnnotation(desc string, visible bool) AnnotationVisitor {
	if !mw.live("VisitAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTopAnnotation(mw.cw, desc)
	if visible {
		mw.anns = append(mw.anns, aw)
	} else {
		mw.ianns = append(mw.ianns, aw)
	}
	return aw
}

// VisitTypeAnnotation 方法签名上的类型注解
func (mw *MethodWriter) VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor {
	if !mw.live("VisitTypeAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTypeAnnotation(mw.cw, typeRef, typePath, desc)
	if visible {
		mw.tanns = append(mw.tanns, aw)
	} else {
		mw.itanns = append(mw.itanns, aw)
	}
	return aw
}

// VisitParameterAnnotation 参数注解，Ljava/lang/Synthetic; 标记合成参数
func (mw *MethodWriter) VisitParameterAnnotation(parameter int, desc string, visible bool) AnnotationVisitor {
	if !mw.live("VisitParameterAnnotation") {
		return NopAnnotationVisitor{}
	}
	nargs := len(argumentTypes(mw.descriptor))
	if parameter < 0 || parameter >= nargs {
		mw.cw.setErr(errors.New(errors.J0108, "VisitParameterAnnotation", "parameter index"))
		return NopAnnotationVisitor{}
	}
	if desc == "Ljava/lang/Synthetic;" {
		if parameter+1 > mw.synthetics {
			mw.synthetics = parameter + 1
		}
		return newAnnotationWriter(mw.cw, false, NewByteVector(), nil, 0)
	}
	aw := newTopAnnotation(mw.cw, desc)
	if visible {
		if mw.panns == nil {
			mw.panns = make([][]*AnnotationWriter, nargs)
		}
		mw.panns[parameter] = append(mw.panns[parameter], aw)
	} else {
		if mw.ipanns == nil {
			mw.ipanns = make([][]*AnnotationWriter, nargs)
		}
		mw.ipanns[parameter] = append(mw.ipanns[parameter], aw)
	}
	return aw
}

// VisitAttribute 非标准属性，代码属性写入 Code 内部
func (mw *MethodWriter) VisitAttribute(attr Attribute) {
	if !mw.live("VisitAttribute") {
		return
	}
	if attr.IsCodeAttribute() {
		mw.codeAttrs = append(mw.codeAttrs, attr)
	} else {
		mw.attrs = append(mw.attrs, attr)
	}
}

// VisitCode 开始访问代码
func (mw *MethodWriter) VisitCode() {
	if !mw.live("VisitCode") {
		return
	}
	mw.codeVisited = true
}

// VisitEnd 结束方法
func (mw *MethodWriter) VisitEnd() {
	if !mw.live("VisitEnd") {
		return
	}
	mw.ended = true
}

// ============================================================================
// 指令
// ============================================================================

// simulating 当前是否在逐条模拟帧
func (mw *MethodWriter) simulating() bool {
	return mw.compute == computeFrames || mw.compute == computeInsertedFrames
}

// grow 按栈变化更新当前块的栈高度
func (mw *MethodWriter) grow(delta int) {
	size := mw.stackSize + delta
	if size > mw.maxStackSize {
		mw.maxStackSize = size
	}
	mw.stackSize = size
}

// VisitInsn 无操作数指令
func (mw *MethodWriter) VisitInsn(opcode int) {
	if !mw.inCode("VisitInsn") {
		return
	}
	mw.code.PutByte(opcode)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, 0, mw.cw, nil)
		} else {
			mw.grow(stackSizes[opcode])
		}
		if (opcode >= OpIreturn && opcode <= OpReturn) || opcode == OpAthrow {
			mw.noSuccessor()
		}
	}
}

// VisitIntInsn BIPUSH、SIPUSH 或 NEWARRAY
func (mw *MethodWriter) VisitIntInsn(opcode, operand int) {
	if !mw.inCode("VisitIntInsn") {
		return
	}
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, operand, mw.cw, nil)
		} else if opcode != OpNewarray {
			mw.grow(1)
		}
	}
	if opcode == OpSipush {
		mw.code.Put12(opcode, operand)
	} else {
		mw.code.Put11(opcode, operand)
	}
}

// VisitVarInsn 局部变量读写与 RET
func (mw *MethodWriter) VisitVarInsn(opcode, v int) {
	if !mw.inCode("VisitVarInsn") {
		return
	}
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, v, mw.cw, nil)
		} else if opcode == OpRet {
			mw.currentBlock.status |= labelRET
			mw.currentBlock.inputStackTop = mw.stackSize
			mw.noSuccessor()
		} else {
			mw.grow(stackSizes[opcode])
		}
	}
	if mw.compute != computeNothing {
		n := v + 1
		if opcode == OpLload || opcode == OpDload || opcode == OpLstore || opcode == OpDstore {
			n = v + 2
		}
		if n > mw.maxLocals {
			mw.maxLocals = n
		}
	}
	switch {
	case v < 4 && opcode != OpRet:
		if opcode < OpIstore {
			mw.code.PutByte(opIload0 + (opcode-OpIload)<<2 + v)
		} else {
			mw.code.PutByte(opIstore0 + (opcode-OpIstore)<<2 + v)
		}
	case v >= 256:
		mw.code.PutByte(opWide).Put12(opcode, v)
	default:
		mw.code.Put11(opcode, v)
	}
	if opcode >= OpIstore && mw.compute == computeFrames && len(mw.handlers) > 0 {
		mw.visitLabel(NewLabel())
	}
}

// VisitTypeInsn NEW、ANEWARRAY、CHECKCAST 或 INSTANCEOF
func (mw *MethodWriter) VisitTypeInsn(opcode int, typ string) {
	if !mw.inCode("VisitTypeInsn") {
		return
	}
	it := mw.cw.newClassItem(typ)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, mw.code.Len(), mw.cw, it)
		} else if opcode == OpNew {
			mw.grow(1)
		}
	}
	mw.code.Put12(opcode, it.index)
}

// VisitFieldInsn 字段访问
func (mw *MethodWriter) VisitFieldInsn(opcode int, owner, name, desc string) {
	if !mw.inCode("VisitFieldInsn") {
		return
	}
	it := mw.cw.newFieldItem(owner, name, desc)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, 0, mw.cw, it)
		} else {
			wide := desc[0] == 'D' || desc[0] == 'J'
			var delta int
			switch opcode {
			case OpGetstatic:
				delta = pick(wide, 2, 1)
			case OpPutstatic:
				delta = pick(wide, -2, -1)
			case OpGetfield:
				delta = pick(wide, 1, 0)
			default:
				delta = pick(wide, -3, -2)
			}
			mw.grow(delta)
		}
	}
	mw.code.Put12(opcode, it.index)
}

func pick(cond bool, a, b int) int {
	if cond {
		return a
	}
	return b
}

// VisitMethodInsn 方法调用
func (mw *MethodWriter) VisitMethodInsn(opcode int, owner, name, desc string, itf bool) {
	if !mw.inCode("VisitMethodInsn") {
		return
	}
	it := mw.cw.newMethodItem(owner, name, desc, itf)
	argSize := argumentsAndReturnSizes(desc)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(opcode, 0, mw.cw, it)
		} else {
			delta := -(argSize >> 2) + argSize&0x03
			if opcode == OpInvokestatic {
				delta++
			}
			mw.grow(delta)
		}
	}
	if opcode == OpInvokeinterface {
		mw.code.Put12(OpInvokeinterface, it.index).Put11(argSize>>2, 0)
	} else {
		mw.code.Put12(opcode, it.index)
	}
}

// VisitInvokeDynamicInsn invokedynamic 调用点
func (mw *MethodWriter) VisitInvokeDynamicInsn(name, desc string, bsm Handle, bsmArgs ...any) {
	if !mw.inCode("VisitInvokeDynamicInsn") {
		return
	}
	it := mw.cw.newInvokeDynamicItem(name, desc, bsm, bsmArgs...)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(OpInvokedynamic, 0, mw.cw, it)
		} else {
			argSize := argumentsAndReturnSizes(desc)
			mw.grow(-(argSize >> 2) + argSize&0x03 + 1)
		}
	}
	mw.code.Put12(OpInvokedynamic, it.index).PutShort(0)
}

// VisitJumpInsn 条件与无条件跳转，GOTO_W/JSR_W 按宽格式写出
func (mw *MethodWriter) VisitJumpInsn(opcode int, label *Label) {
	if !mw.inCode("VisitJumpInsn") {
		return
	}
	isWide := opcode >= OpGotoW
	if isWide {
		opcode -= 33
	}
	var nextInsn *Label
	if mw.currentBlock != nil {
		switch mw.compute {
		case computeFrames:
			mw.currentBlock.frame.execute(opcode, 0, mw.cw, nil)
			label.getFirst().status |= labelTarget
			mw.addSuccessor(edgeNormal, label)
			if opcode != OpGoto {
				nextInsn = NewLabel()
			}
		case computeInsertedFrames:
			mw.currentBlock.frame.execute(opcode, 0, mw.cw, nil)
		default:
			if opcode == OpJsr {
				if label.status&labelSubroutine == 0 {
					label.status |= labelSubroutine
					mw.subroutines++
				}
				mw.currentBlock.status |= labelJSR
				mw.addSuccessor(mw.stackSize+1, label)
				nextInsn = NewLabel()
			} else {
				mw.stackSize += stackSizes[opcode]
				mw.addSuccessor(mw.stackSize, label)
			}
		}
	}
	switch {
	case label.status&labelResolved != 0 && label.position-mw.code.Len() < -32768:
		// 已知的后向跳转超出 16 位范围，直接写宽格式
		switch opcode {
		case OpGoto:
			mw.code.PutByte(OpGotoW)
		case OpJsr:
			mw.code.PutByte(OpJsrW)
		default:
			if nextInsn != nil {
				nextInsn.status |= labelTarget
			}
			mw.code.PutByte(invertCondition(opcode)).PutShort(8)
			if mw.compute == computeFrames {
				mw.code.PutByte(OpGotoW)
			} else {
				// 由加宽过程改成 GOTO_W 并在其后补帧
				mw.code.PutByte(opAsmGotoW)
				mw.hasAsmInsns = true
			}
		}
		mw.putLabel(label, mw.code.Len()-1, true)
	case isWide:
		mw.code.PutByte(opcode + 33)
		mw.putLabel(label, mw.code.Len()-1, true)
	default:
		mw.code.PutByte(opcode)
		mw.putLabel(label, mw.code.Len()-1, false)
	}
	if mw.currentBlock != nil {
		if nextInsn != nil {
			mw.visitLabel(nextInsn)
		}
		if opcode == OpGoto {
			mw.noSuccessor()
		}
	}
}

// putLabel 写入跳转偏移并记下尚未解析的目标
func (mw *MethodWriter) putLabel(l *Label, source int, wide bool) {
	if l.status&labelResolved == 0 {
		mw.forward = append(mw.forward, l)
	}
	l.put(mw.code, source, wide)
}

// invertCondition 返回相反条件的跳转操作码
func invertCondition(opcode int) int {
	if opcode <= OpIfAcmpne {
		return ((opcode + 1) ^ 1) - 1
	}
	return opcode ^ 1
}

// VisitLabel 确定标签位置
func (mw *MethodWriter) VisitLabel(label *Label) {
	if !mw.inCode("VisitLabel") {
		return
	}
	if label.status&labelResolved != 0 {
		mw.cw.setErr(errors.New(errors.J0109, "VisitLabel", label))
		return
	}
	mw.visitLabel(label)
}

func (mw *MethodWriter) visitLabel(label *Label) {
	if label.resolve(mw.code.Len(), mw.code.data) {
		mw.hasAsmInsns = true
	}
	if label.status&labelDebug != 0 {
		return
	}
	switch mw.compute {
	case computeFrames:
		if mw.currentBlock != nil {
			if label.position == mw.currentBlock.position {
				mw.currentBlock.status |= label.status & labelTarget
				label.frame = mw.currentBlock.frame
				return
			}
			mw.addSuccessor(edgeNormal, label)
		}
		mw.currentBlock = label
		if label.frame == nil {
			label.frame = newFrame(label)
		}
		if mw.previousBlock != nil {
			if label.position == mw.previousBlock.position {
				mw.previousBlock.status |= label.status & labelTarget
				label.frame = mw.previousBlock.frame
				mw.currentBlock = mw.previousBlock
				return
			}
			mw.previousBlock.nextBlock = label
		}
		mw.previousBlock = label
	case computeInsertedFrames:
		if mw.currentBlock == nil {
			mw.currentBlock = label
		} else if mw.currentBlock.frame != nil {
			mw.currentBlock.frame.owner = label
		}
	case computeMaxs:
		if mw.currentBlock != nil {
			mw.currentBlock.outputStackMax = mw.maxStackSize
			mw.addSuccessor(mw.stackSize, label)
		}
		mw.currentBlock = label
		mw.stackSize = 0
		mw.maxStackSize = 0
		if mw.previousBlock != nil {
			mw.previousBlock.nextBlock = label
		}
		mw.previousBlock = label
	}
}

// VisitLdcInsn 常量加载，按下标和类型选择 LDC、LDC_W 或 LDC2_W
func (mw *MethodWriter) VisitLdcInsn(cst any) {
	if !mw.inCode("VisitLdcInsn") {
		return
	}
	it := mw.cw.newConstItem(cst)
	if it == nil {
		return
	}
	wide := it.typ == ConstantLong || it.typ == ConstantDouble
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(OpLdc, 0, mw.cw, it)
		} else {
			mw.grow(pick(wide, 2, 1))
		}
	}
	switch {
	case wide:
		mw.code.Put12(opLdc2W, it.index)
	case it.index >= 256:
		mw.code.Put12(opLdcW, it.index)
	default:
		mw.code.Put11(OpLdc, it.index)
	}
}

// VisitIincInsn 局部变量自增
func (mw *MethodWriter) VisitIincInsn(v, increment int) {
	if !mw.inCode("VisitIincInsn") {
		return
	}
	if mw.currentBlock != nil && mw.simulating() {
		mw.currentBlock.frame.execute(OpIinc, v, mw.cw, nil)
	}
	if mw.compute != computeNothing && v+1 > mw.maxLocals {
		mw.maxLocals = v + 1
	}
	if v > 255 || increment > 127 || increment < -128 {
		mw.code.PutByte(opWide).Put12(OpIinc, v).PutShort(increment)
	} else {
		mw.code.PutByte(OpIinc).Put11(v, increment)
	}
}

// VisitTableSwitchInsn TABLESWITCH
func (mw *MethodWriter) VisitTableSwitchInsn(min, max int, dflt *Label, labels ...*Label) {
	if !mw.inCode("VisitTableSwitchInsn") {
		return
	}
	source := mw.code.Len()
	mw.code.PutByte(OpTableswitch)
	mw.code.PutByteArray(nil, (4-mw.code.Len()%4)%4)
	mw.putLabel(dflt, source, true)
	mw.code.PutInt(min).PutInt(max)
	for _, l := range labels {
		mw.putLabel(l, source, true)
	}
	mw.visitSwitchInsn(dflt, labels)
}

// VisitLookupSwitchInsn LOOKUPSWITCH，keys 须升序
func (mw *MethodWriter) VisitLookupSwitchInsn(dflt *Label, keys []int, labels []*Label) {
	if !mw.inCode("VisitLookupSwitchInsn") {
		return
	}
	if len(keys) != len(labels) {
		mw.cw.setErr(errors.New(errors.J0108, "VisitLookupSwitchInsn", "keys and labels differ in length"))
		return
	}
	source := mw.code.Len()
	mw.code.PutByte(OpLookupswitch)
	mw.code.PutByteArray(nil, (4-mw.code.Len()%4)%4)
	mw.putLabel(dflt, source, true)
	mw.code.PutInt(len(labels))
	for i, l := range labels {
		mw.code.PutInt(keys[i])
		mw.putLabel(l, source, true)
	}
	mw.visitSwitchInsn(dflt, labels)
}

func (mw *MethodWriter) visitSwitchInsn(dflt *Label, labels []*Label) {
	if mw.currentBlock == nil {
		return
	}
	switch mw.compute {
	case computeFrames:
		mw.currentBlock.frame.execute(OpLookupswitch, 0, mw.cw, nil)
		mw.addSuccessor(edgeNormal, dflt)
		dflt.getFirst().status |= labelTarget
		for _, l := range labels {
			mw.addSuccessor(edgeNormal, l)
			l.getFirst().status |= labelTarget
		}
	case computeInsertedFrames:
		mw.currentBlock.frame.execute(OpLookupswitch, 0, mw.cw, nil)
	default:
		mw.stackSize--
		mw.addSuccessor(mw.stackSize, dflt)
		for _, l := range labels {
			mw.addSuccessor(mw.stackSize, l)
		}
	}
	mw.noSuccessor()
}

// VisitMultiANewArrayInsn MULTIANEWARRAY
func (mw *MethodWriter) VisitMultiANewArrayInsn(desc string, dims int) {
	if !mw.inCode("VisitMultiANewArrayInsn") {
		return
	}
	it := mw.cw.newClassItem(desc)
	if mw.currentBlock != nil {
		if mw.simulating() {
			mw.currentBlock.frame.execute(OpMultianewarray, dims, mw.cw, it)
		} else {
			mw.stackSize += 1 - dims
		}
	}
	mw.code.Put12(OpMultianewarray, it.index).PutByte(dims)
}

// VisitTryCatchBlock 异常处理器，typ 为空表示捕获任意异常
func (mw *MethodWriter) VisitTryCatchBlock(start, end, handler *Label, typ string) {
	if !mw.inCode("VisitTryCatchBlock") {
		return
	}
	h := &Handler{start: start, end: end, handler: handler, desc: typ}
	if typ != "" {
		h.typ = mw.cw.NewClass(typ)
	}
	mw.handlers = append(mw.handlers, h)
}

// VisitLocalVariable 局部变量调试信息，start 与 end 必须已确定位置
func (mw *MethodWriter) VisitLocalVariable(name, desc, signature string, start, end *Label, index int) {
	if !mw.inCode("VisitLocalVariable") {
		return
	}
	for _, l := range []*Label{start, end} {
		if l.status&labelResolved == 0 {
			mw.cw.setErr(errors.New(errors.J0106, "VisitLocalVariable", l))
			return
		}
	}
	if signature != "" {
		mw.localVarTypes = append(mw.localVarTypes, localVarEntry{
			start:  start.position,
			length: end.position - start.position,
			name:   mw.cw.NewUTF8(name),
			desc:   mw.cw.NewUTF8(signature),
			index:  index,
		})
	}
	mw.localVars = append(mw.localVars, localVarEntry{
		start:  start.position,
		length: end.position - start.position,
		name:   mw.cw.NewUTF8(name),
		desc:   mw.cw.NewUTF8(desc),
		index:  index,
	})
	if mw.compute != computeNothing {
		n := index + 1
		if desc[0] == 'J' || desc[0] == 'D' {
			n = index + 2
		}
		if n > mw.maxLocals {
			mw.maxLocals = n
		}
	}
}

// VisitLineNumber 行号调试信息
func (mw *MethodWriter) VisitLineNumber(line int, start *Label) {
	if !mw.inCode("VisitLineNumber") {
		return
	}
	if start.status&labelResolved == 0 {
		mw.cw.setErr(errors.New(errors.J0106, "VisitLineNumber", start))
		return
	}
	mw.lineNumbers = append(mw.lineNumbers, lineEntry{pc: start.position, line: line})
}

// ============================================================================
// 控制流图
// ============================================================================

func (mw *MethodWriter) addSuccessor(info int, successor *Label) {
	mw.currentBlock.successors = &Edge{
		info:      info,
		successor: successor,
		next:      mw.currentBlock.successors,
	}
}

// noSuccessor 当前块以无条件转移结束
func (mw *MethodWriter) noSuccessor() {
	if mw.compute == computeFrames {
		l := NewLabel()
		l.frame = newFrame(l)
		l.resolve(mw.code.Len(), mw.code.data)
		mw.previousBlock.nextBlock = l
		mw.previousBlock = l
	} else {
		mw.currentBlock.outputStackMax = mw.maxStackSize
	}
	if mw.compute != computeInsertedFrames {
		mw.currentBlock = nil
	}
}

var _ MethodVisitor = (*MethodWriter)(nil)
