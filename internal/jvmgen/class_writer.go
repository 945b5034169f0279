package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
	"go.uber.org/zap"
)

// maxWidenPasses 加宽过程的最大轮数，每轮只会增加宽跳转的数量
const maxWidenPasses = 8

// ClassWriter 以访问者方式构建一个完整的类文件
//
// ClassWriter 及其创建的 FieldWriter、MethodWriter、AnnotationWriter 共享一份
// 可变状态，不能并发使用。第一个错误会被记录下来，之后的访问都不再生效，
// 由 ToByteArray 或 Err 返回。
type ClassWriter struct {
	api       int
	compute   int
	logger    *zap.Logger
	hierarchy ClassHierarchy
	err       error

	version int

	// 常量池
	index     int
	pool      *ByteVector
	symbols   *symbolTable
	poolItems []*item

	// 帧计算使用的类型表
	types     *symbolTable
	typeTable []*item

	bootstrapMethods      *ByteVector
	bootstrapMethodsCount int

	access     int
	name       int
	thisName   string
	signature  int
	superName  int
	interfaces []int

	sourceFile           int
	sourceDebug          []byte
	enclosingMethodOwner int
	enclosingMethod      int

	anns, ianns   []*AnnotationWriter
	tanns, itanns []*AnnotationWriter
	attrs         []Attribute

	innerClasses      *ByteVector
	innerClassesCount int
	innerSeen         map[string]bool

	fields  []*FieldWriter
	methods []*MethodWriter

	ended bool
}

// NewClassWriter 创建 ClassWriter，flags 为 ComputeMaxsFlag、ComputeFramesFlag 的组合
func NewClassWriter(flags int, opts ...Option) *ClassWriter {
	cw := &ClassWriter{
		api:       API5,
		logger:    zap.NewNop(),
		index:     1,
		pool:      NewByteVector(),
		symbols:   newSymbolTable(),
		poolItems: []*item{nil},
		types:     newSymbolTable(),
		innerSeen: make(map[string]bool),
	}
	switch {
	case flags&ComputeFramesFlag != 0:
		cw.compute = computeFrames
	case flags&ComputeMaxsFlag != 0:
		cw.compute = computeMaxs
	default:
		cw.compute = computeNothing
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// API 返回访问者 API 级别
func (cw *ClassWriter) API() int {
	return cw.api
}

func (cw *ClassWriter) live(op string) bool {
	if cw.err != nil {
		return false
	}
	if cw.ended {
		cw.setErr(errors.New(errors.J0104, op, op))
		return false
	}
	return true
}

// ============================================================================
// ClassVisitor
// ============================================================================

// Visit 类头，version 的低 16 位为主版本号，高 16 位为次版本号
func (cw *ClassWriter) Visit(version, access int, name, signature, superName string, interfaces []string) {
	if !cw.live("Visit") {
		return
	}
	major := version & 0xFFFF
	if major < V1_1&0xFFFF || major > V1_8 {
		cw.setErr(errors.New(errors.J0101, "Visit", major, version>>16&0xFFFF))
		return
	}
	cw.version = version
	cw.access = access
	cw.thisName = name
	cw.name = cw.NewClass(name)
	if signature != "" {
		cw.signature = cw.NewUTF8(signature)
	}
	if superName != "" {
		cw.superName = cw.NewClass(superName)
	}
	cw.interfaces = cw.interfaces[:0]
	for _, itf := range interfaces {
		cw.interfaces = append(cw.interfaces, cw.NewClass(itf))
	}
	cw.logger.Debug("visit class",
		zap.String("name", name),
		zap.Int("major", major),
		zap.Int("compute", cw.compute))
}

// VisitSource 源文件名与 SourceDebugExtension 内容，空串表示没有
func (cw *ClassWriter) VisitSource(source, debug string) {
	if !cw.live("VisitSource") {
		return
	}
	if source != "" {
		cw.sourceFile = cw.NewUTF8(source)
	}
	if debug != "" {
		cw.sourceDebug = modifiedUTF8(debug)
	}
}

// VisitOuterClass 外围类与外围方法，name 和 desc 为空表示不在方法内
func (cw *ClassWriter) VisitOuterClass(owner, name, desc string) {
	if !cw.live("VisitOuterClass") {
		return
	}
	cw.enclosingMethodOwner = cw.NewClass(owner)
	if name != "" && desc != "" {
		cw.enclosingMethod = cw.NewNameType(name, desc)
	}
}

// VisitAnnotation 类注解
func (cw *ClassWriter) VisitAnnotation(desc string, visible bool) AnnotationVisitor {
	if !cw.live("VisitAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTopAnnotation(cw, desc)
	if visible {
		cw.anns = append(cw.anns, aw)
	} else {
		cw.ianns = append(cw.ianns, aw)
	}
	return aw
}

// VisitTypeAnnotation 类签名上的类型注解
func (cw *ClassWriter) VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor {
	if !cw.live("VisitTypeAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTypeAnnotation(cw, typeRef, typePath, desc)
	if visible {
		cw.tanns = append(cw.tanns, aw)
	} else {
		cw.itanns = append(cw.itanns, aw)
	}
	return aw
}

// VisitAttribute 非标准类属性
func (cw *ClassWriter) VisitAttribute(attr Attribute) {
	if !cw.live("VisitAttribute") {
		return
	}
	cw.attrs = append(cw.attrs, attr)
}

// VisitInnerClass 内部类，同名内部类只记录第一次
func (cw *ClassWriter) VisitInnerClass(name, outerName, innerName string, access int) {
	if !cw.live("VisitInnerClass") {
		return
	}
	if cw.innerClasses == nil {
		cw.innerClasses = NewByteVector()
	}
	n := cw.NewClass(name)
	if cw.innerSeen[name] {
		return
	}
	cw.innerSeen[name] = true
	cw.innerClassesCount++
	outer, inner := 0, 0
	if outerName != "" {
		outer = cw.NewClass(outerName)
	}
	if innerName != "" {
		inner = cw.NewUTF8(innerName)
	}
	cw.innerClasses.PutShort(n).PutShort(outer).PutShort(inner).PutShort(access)
}

// VisitField 添加字段，value 为 ConstantValue 常量或 nil
func (cw *ClassWriter) VisitField(access int, name, desc, signature string, value any) FieldVisitor {
	if !cw.live("VisitField") {
		return NopFieldVisitor{}
	}
	fw := newFieldWriter(cw, access, name, desc, signature, value)
	cw.fields = append(cw.fields, fw)
	return fw
}

// VisitMethod 添加方法
func (cw *ClassWriter) VisitMethod(access int, name, desc, signature string, exceptions []string) MethodVisitor {
	if !cw.live("VisitMethod") {
		return NopMethodVisitor{}
	}
	mw := newMethodWriter(cw, access, name, desc, signature, exceptions, cw.compute)
	cw.methods = append(cw.methods, mw)
	return mw
}

// VisitEnd 结束类
func (cw *ClassWriter) VisitEnd() {
	if !cw.live("VisitEnd") {
		return
	}
	cw.ended = true
}

var _ ClassVisitor = (*ClassWriter)(nil)

// ============================================================================
// 输出
// ============================================================================

// ToByteArray 返回类文件字节
//
// 先加宽仍含伪操作码的方法，再计算总大小、分配一次输出缓冲并写出。
func (cw *ClassWriter) ToByteArray() ([]byte, error) {
	if cw.err != nil {
		return nil, cw.err
	}
	cw.widen()
	if cw.err != nil {
		return nil, cw.err
	}

	size := 24 + 2*len(cw.interfaces)
	for _, fw := range cw.fields {
		size += fw.getSize()
	}
	for _, mw := range cw.methods {
		size += mw.getSize()
	}
	count := 0
	if cw.bootstrapMethods != nil {
		count++
		size += 8 + cw.bootstrapMethods.Len()
		cw.NewUTF8(attrBootstrapMethods)
	}
	if cw.signature != 0 {
		count++
		size += 8
		cw.NewUTF8(attrSignature)
	}
	if cw.sourceFile != 0 {
		count++
		size += 8
		cw.NewUTF8(attrSourceFile)
	}
	if cw.sourceDebug != nil {
		count++
		size += 6 + len(cw.sourceDebug)
		cw.NewUTF8(attrSourceDebugExtension)
	}
	if cw.enclosingMethodOwner != 0 {
		count++
		size += 10
		cw.NewUTF8(attrEnclosingMethod)
	}
	if cw.access&AccDeprecated != 0 {
		count++
		size += 6
		cw.NewUTF8(attrDeprecated)
	}
	if cw.hasSyntheticAttribute() {
		count++
		size += 6
		cw.NewUTF8(attrSynthetic)
	}
	if cw.innerClasses != nil {
		count++
		size += 8 + cw.innerClasses.Len()
		cw.NewUTF8(attrInnerClasses)
	}
	for _, a := range []struct {
		name string
		list []*AnnotationWriter
	}{
		{attrRuntimeVisibleAnnotations, cw.anns},
		{attrRuntimeInvisibleAnnotations, cw.ianns},
		{attrRuntimeVisibleTypeAnnotations, cw.tanns},
		{attrRuntimeInvisibleTypeAnnotations, cw.itanns},
	} {
		if n := annotationListSize(cw, a.name, a.list); n > 0 {
			count++
			size += n
		}
	}
	count += len(cw.attrs)
	size += attributesSize(cw, cw.attrs, nil, -1, -1)
	size += cw.pool.Len()
	if err := cw.failure(); err != nil {
		return nil, err
	}

	out := NewByteVectorSize(size)
	out.PutInt(ClassFileMagic).PutInt(cw.version)
	out.PutShort(cw.index).putByteVector(cw.pool)
	mask := AccDeprecated | AccSyntheticAttribute
	if cw.access&AccSyntheticAttribute != 0 {
		mask |= AccSynthetic
	}
	out.PutShort(cw.access &^ mask).PutShort(cw.name).PutShort(cw.superName)
	out.PutShort(len(cw.interfaces))
	for _, itf := range cw.interfaces {
		out.PutShort(itf)
	}
	out.PutShort(len(cw.fields))
	for _, fw := range cw.fields {
		fw.put(out)
	}
	out.PutShort(len(cw.methods))
	for _, mw := range cw.methods {
		mw.put(out)
	}
	out.PutShort(count)
	if cw.bootstrapMethods != nil {
		out.PutShort(cw.NewUTF8(attrBootstrapMethods)).PutInt(cw.bootstrapMethods.Len() + 2)
		out.PutShort(cw.bootstrapMethodsCount).putByteVector(cw.bootstrapMethods)
	}
	if cw.signature != 0 {
		out.PutShort(cw.NewUTF8(attrSignature)).PutInt(2).PutShort(cw.signature)
	}
	if cw.sourceFile != 0 {
		out.PutShort(cw.NewUTF8(attrSourceFile)).PutInt(2).PutShort(cw.sourceFile)
	}
	if cw.sourceDebug != nil {
		out.PutShort(cw.NewUTF8(attrSourceDebugExtension)).PutInt(len(cw.sourceDebug))
		out.PutByteArray(cw.sourceDebug, len(cw.sourceDebug))
	}
	if cw.enclosingMethodOwner != 0 {
		out.PutShort(cw.NewUTF8(attrEnclosingMethod)).PutInt(4)
		out.PutShort(cw.enclosingMethodOwner).PutShort(cw.enclosingMethod)
	}
	if cw.access&AccDeprecated != 0 {
		out.PutShort(cw.NewUTF8(attrDeprecated)).PutInt(0)
	}
	if cw.hasSyntheticAttribute() {
		out.PutShort(cw.NewUTF8(attrSynthetic)).PutInt(0)
	}
	if cw.innerClasses != nil {
		out.PutShort(cw.NewUTF8(attrInnerClasses)).PutInt(cw.innerClasses.Len() + 2)
		out.PutShort(cw.innerClassesCount).putByteVector(cw.innerClasses)
	}
	putAnnotationList(cw, attrRuntimeVisibleAnnotations, cw.anns, out)
	putAnnotationList(cw, attrRuntimeInvisibleAnnotations, cw.ianns, out)
	putAnnotationList(cw, attrRuntimeVisibleTypeAnnotations, cw.tanns, out)
	putAnnotationList(cw, attrRuntimeInvisibleTypeAnnotations, cw.itanns, out)
	putAttributes(cw, cw.attrs, nil, -1, -1, out)

	if err := cw.failure(); err != nil {
		return nil, err
	}
	if out.Len() != size {
		cw.setErr(errors.New(errors.J0900, "ToByteArray", size, out.Len()))
		return nil, cw.err
	}
	cw.logger.Debug("class written",
		zap.String("name", cw.thisName),
		zap.Int("bytes", size),
		zap.Int("constants", cw.index-1))
	return out.Bytes(), nil
}

// failure 汇总粘滞错误与缓冲区的编码错误
func (cw *ClassWriter) failure() error {
	if cw.err == nil {
		cw.setErr(cw.pool.Err())
	}
	if cw.err == nil && cw.bootstrapMethods != nil {
		cw.setErr(cw.bootstrapMethods.Err())
	}
	return cw.err
}

func (cw *ClassWriter) hasSyntheticAttribute() bool {
	if cw.access&AccSynthetic == 0 && cw.access&AccSyntheticAttribute == 0 {
		return false
	}
	return cw.version&0xFFFF < V1_5 || cw.access&AccSyntheticAttribute != 0
}

// widen 反复重写含伪操作码的方法，直到所有跳转都能正确编码
func (cw *ClassWriter) widen() {
	for pass := 1; cw.err == nil; pass++ {
		pending := false
		for i, mw := range cw.methods {
			if !mw.hasAsmInsns {
				continue
			}
			if pass > maxWidenPasses {
				cw.setErr(errors.New(errors.J0901, "ToByteArray", mw.nameStr, mw.descriptor, maxWidenPasses))
				return
			}
			pending = true
			cw.methods[i] = mw.widened()
			cw.logger.Debug("method widened",
				zap.String("method", mw.nameStr+mw.descriptor),
				zap.Int("pass", pass),
				zap.Int("before", mw.code.Len()),
				zap.Int("after", cw.methods[i].code.Len()))
		}
		if !pending {
			return
		}
	}
}

// widened 用代码读取器把方法重新访问到新的 MethodWriter，伪操作码展开成宽跳转
func (mw *MethodWriter) widened() *MethodWriter {
	compute := computeNothing
	if mw.cw.version&0xFFFF >= V1_6 {
		compute = computeInsertedFrames
	}
	n := &MethodWriter{
		cw:                mw.cw,
		access:            mw.access,
		name:              mw.name,
		desc:              mw.desc,
		nameStr:           mw.nameStr,
		descriptor:        mw.descriptor,
		signature:         mw.signature,
		exceptions:        mw.exceptions,
		parameters:        mw.parameters,
		parameterCount:    mw.parameterCount,
		annotationDefault: mw.annotationDefault,
		anns:              mw.anns,
		ianns:             mw.ianns,
		tanns:             mw.tanns,
		itanns:            mw.itanns,
		panns:             mw.panns,
		ipanns:            mw.ipanns,
		synthetics:        mw.synthetics,
		attrs:             mw.attrs,
		codeAttrs:         mw.codeAttrs,
		code:              NewByteVectorSize(mw.code.Len() + mw.code.Len()/4),
		compute:           compute,
		lastUserFrame:     -1,
		codeVisited:       true,
	}
	n.initCompute()
	readCode(mw, n, compute == computeInsertedFrames)
	n.ended = true
	return n
}
