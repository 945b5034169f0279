package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
)

// ============================================================================
// 输出
// ============================================================================

// getSize 计算 method_info 的字节数，同时登记属性名等常量
func (mw *MethodWriter) getSize() int {
	cw := mw.cw
	size := 8
	if n := mw.code.Len(); n > 0 {
		if n > 65535 {
			cw.setErr(errors.New(errors.J0202, "ToByteArray", mw.nameStr, mw.descriptor, n))
		}
		if mw.maxStack > 65535 {
			cw.setErr(errors.New(errors.J0204, "ToByteArray", mw.nameStr, mw.descriptor, "max_stack", mw.maxStack))
		}
		if mw.maxLocals > 65535 {
			cw.setErr(errors.New(errors.J0204, "ToByteArray", mw.nameStr, mw.descriptor, "max_locals", mw.maxLocals))
		}
		cw.NewUTF8(attrCode)
		size += 18 + n + 8*len(mw.handlers)
		if len(mw.localVars) > 0 {
			cw.NewUTF8(attrLocalVariableTable)
			size += 8 + 10*len(mw.localVars)
		}
		if len(mw.localVarTypes) > 0 {
			cw.NewUTF8(attrLocalVariableTypeTable)
			size += 8 + 10*len(mw.localVarTypes)
		}
		if len(mw.lineNumbers) > 0 {
			cw.NewUTF8(attrLineNumberTable)
			size += 8 + 4*len(mw.lineNumbers)
		}
		if mw.stackMap != nil {
			cw.NewUTF8(mw.stackMapName())
			size += 8 + mw.stackMap.Len()
		}
		size += attributesSize(cw, mw.codeAttrs, mw.code.Bytes(), mw.maxStack, mw.maxLocals)
	}
	if len(mw.exceptions) > 0 {
		cw.NewUTF8(attrExceptions)
		size += 8 + 2*len(mw.exceptions)
	}
	if mw.hasSyntheticAttribute() {
		cw.NewUTF8(attrSynthetic)
		size += 6
	}
	if mw.access&AccDeprecated != 0 {
		cw.NewUTF8(attrDeprecated)
		size += 6
	}
	if mw.signature != "" {
		cw.NewUTF8(attrSignature)
		cw.NewUTF8(mw.signature)
		size += 8
	}
	if mw.parameters != nil {
		cw.NewUTF8(attrMethodParameters)
		size += 7 + mw.parameters.Len()
	}
	if mw.annotationDefault != nil {
		cw.NewUTF8(attrAnnotationDefault)
		size += 6 + mw.annotationDefault.Len()
	}
	size += annotationListSize(cw, attrRuntimeVisibleAnnotations, mw.anns)
	size += annotationListSize(cw, attrRuntimeInvisibleAnnotations, mw.ianns)
	size += annotationListSize(cw, attrRuntimeVisibleTypeAnnotations, mw.tanns)
	size += annotationListSize(cw, attrRuntimeInvisibleTypeAnnotations, mw.itanns)
	if mw.panns != nil {
		cw.NewUTF8(attrRuntimeVisibleParameterAnnotations)
		size += 6 + parameterAnnotationsSize(mw.panns, mw.synthetics)
	}
	if mw.ipanns != nil {
		cw.NewUTF8(attrRuntimeInvisibleParameterAnnotations)
		size += 6 + parameterAnnotationsSize(mw.ipanns, mw.synthetics)
	}
	size += attributesSize(cw, mw.attrs, nil, -1, -1)
	return size
}

// annotationListSize 非空注解列表对应属性的字节数，并登记属性名
func annotationListSize(cw *ClassWriter, name string, list []*AnnotationWriter) int {
	if len(list) == 0 {
		return 0
	}
	cw.NewUTF8(name)
	return 8 + annotationsSize(list)
}

func (mw *MethodWriter) stackMapName() string {
	if mw.cw.version&0xFFFF >= V1_6 {
		return attrStackMapTable
	}
	return attrStackMap
}

func (mw *MethodWriter) hasSyntheticAttribute() bool {
	if mw.access&AccSynthetic == 0 && mw.access&AccSyntheticAttribute == 0 {
		return false
	}
	return mw.cw.version&0xFFFF < V1_5 || mw.access&AccSyntheticAttribute != 0
}

// put 写出 method_info，属性顺序与 getSize 一致
func (mw *MethodWriter) put(out *ByteVector) {
	cw := mw.cw
	mask := accConstructor | AccDeprecated | AccSyntheticAttribute
	if mw.access&AccSyntheticAttribute != 0 {
		mask |= AccSynthetic
	}
	out.PutShort(mw.access &^ mask).PutShort(mw.name).PutShort(mw.desc)

	count := 0
	if mw.code.Len() > 0 {
		count++
	}
	if len(mw.exceptions) > 0 {
		count++
	}
	if mw.hasSyntheticAttribute() {
		count++
	}
	if mw.access&AccDeprecated != 0 {
		count++
	}
	if mw.signature != "" {
		count++
	}
	if mw.parameters != nil {
		count++
	}
	if mw.annotationDefault != nil {
		count++
	}
	for _, list := range [][]*AnnotationWriter{mw.anns, mw.ianns, mw.tanns, mw.itanns} {
		if len(list) > 0 {
			count++
		}
	}
	if mw.panns != nil {
		count++
	}
	if mw.ipanns != nil {
		count++
	}
	count += len(mw.attrs)
	out.PutShort(count)

	if mw.code.Len() > 0 {
		mw.putCode(out)
	}
	if len(mw.exceptions) > 0 {
		out.PutShort(cw.NewUTF8(attrExceptions)).PutInt(2*len(mw.exceptions) + 2)
		out.PutShort(len(mw.exceptions))
		for _, e := range mw.exceptions {
			out.PutShort(e)
		}
	}
	if mw.hasSyntheticAttribute() {
		out.PutShort(cw.NewUTF8(attrSynthetic)).PutInt(0)
	}
	if mw.access&AccDeprecated != 0 {
		out.PutShort(cw.NewUTF8(attrDeprecated)).PutInt(0)
	}
	if mw.signature != "" {
		out.PutShort(cw.NewUTF8(attrSignature)).PutInt(2).PutShort(cw.NewUTF8(mw.signature))
	}
	if mw.parameters != nil {
		out.PutShort(cw.NewUTF8(attrMethodParameters)).PutInt(mw.parameters.Len() + 1)
		out.PutByte(mw.parameterCount).putByteVector(mw.parameters)
	}
	if mw.annotationDefault != nil {
		out.PutShort(cw.NewUTF8(attrAnnotationDefault)).PutInt(mw.annotationDefault.Len())
		out.putByteVector(mw.annotationDefault)
	}
	putAnnotationList(cw, attrRuntimeVisibleAnnotations, mw.anns, out)
	putAnnotationList(cw, attrRuntimeInvisibleAnnotations, mw.ianns, out)
	putAnnotationList(cw, attrRuntimeVisibleTypeAnnotations, mw.tanns, out)
	putAnnotationList(cw, attrRuntimeInvisibleTypeAnnotations, mw.itanns, out)
	if mw.panns != nil {
		out.PutShort(cw.NewUTF8(attrRuntimeVisibleParameterAnnotations))
		putParameterAnnotations(mw.panns, mw.synthetics, out)
	}
	if mw.ipanns != nil {
		out.PutShort(cw.NewUTF8(attrRuntimeInvisibleParameterAnnotations))
		putParameterAnnotations(mw.ipanns, mw.synthetics, out)
	}
	putAttributes(cw, mw.attrs, nil, -1, -1, out)
}

func putAnnotationList(cw *ClassWriter, name string, list []*AnnotationWriter, out *ByteVector) {
	if len(list) == 0 {
		return
	}
	out.PutShort(cw.NewUTF8(name))
	putAnnotations(list, out)
}

// putCode 写出 Code 属性及其子属性
func (mw *MethodWriter) putCode(out *ByteVector) {
	cw := mw.cw
	code := mw.code.Bytes()
	size := 12 + len(code) + 8*len(mw.handlers)
	count := 0
	if len(mw.localVars) > 0 {
		size += 8 + 10*len(mw.localVars)
		count++
	}
	if len(mw.localVarTypes) > 0 {
		size += 8 + 10*len(mw.localVarTypes)
		count++
	}
	if len(mw.lineNumbers) > 0 {
		size += 8 + 4*len(mw.lineNumbers)
		count++
	}
	if mw.stackMap != nil {
		size += 8 + mw.stackMap.Len()
		count++
	}
	size += attributesSize(cw, mw.codeAttrs, code, mw.maxStack, mw.maxLocals)
	count += len(mw.codeAttrs)

	out.PutShort(cw.NewUTF8(attrCode)).PutInt(size)
	out.PutShort(mw.maxStack).PutShort(mw.maxLocals)
	out.PutInt(len(code)).PutByteArray(code, len(code))
	out.PutShort(len(mw.handlers))
	for _, h := range mw.handlers {
		out.PutShort(h.start.position).PutShort(h.end.position).PutShort(h.handler.position).PutShort(h.typ)
	}
	out.PutShort(count)
	if len(mw.localVars) > 0 {
		putLocalVars(cw, attrLocalVariableTable, mw.localVars, out)
	}
	if len(mw.localVarTypes) > 0 {
		putLocalVars(cw, attrLocalVariableTypeTable, mw.localVarTypes, out)
	}
	if len(mw.lineNumbers) > 0 {
		out.PutShort(cw.NewUTF8(attrLineNumberTable)).PutInt(2 + 4*len(mw.lineNumbers))
		out.PutShort(len(mw.lineNumbers))
		for _, ln := range mw.lineNumbers {
			out.PutShort(ln.pc).PutShort(ln.line)
		}
	}
	if mw.stackMap != nil {
		out.PutShort(cw.NewUTF8(mw.stackMapName())).PutInt(2 + mw.stackMap.Len())
		out.PutShort(mw.frameCount).putByteVector(mw.stackMap)
	}
	putAttributes(cw, mw.codeAttrs, code, mw.maxStack, mw.maxLocals, out)
}

func putLocalVars(cw *ClassWriter, name string, vars []localVarEntry, out *ByteVector) {
	out.PutShort(cw.NewUTF8(name)).PutInt(2 + 10*len(vars))
	out.PutShort(len(vars))
	for _, v := range vars {
		out.PutShort(v.start).PutShort(v.length).PutShort(v.name).PutShort(v.desc).PutShort(v.index)
	}
}
