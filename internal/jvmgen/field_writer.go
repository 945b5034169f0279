package jvmgen

import "github.com/tangzhangming/jvmasm/internal/errors"

// FieldWriter 生成一个 field_info 结构
type FieldWriter struct {
	cw        *ClassWriter
	access    int
	name      int
	desc      int
	signature string
	value     int // ConstantValue 的常量池下标，0 表示没有

	anns, ianns   []*AnnotationWriter
	tanns, itanns []*AnnotationWriter
	attrs         []Attribute
	ended         bool
}

func newFieldWriter(cw *ClassWriter, access int, name, desc, signature string, value any) *FieldWriter {
	fw := &FieldWriter{
		cw:        cw,
		access:    access,
		name:      cw.NewUTF8(name),
		desc:      cw.NewUTF8(desc),
		signature: signature,
	}
	if signature != "" {
		cw.NewUTF8(signature)
	}
	if value != nil {
		fw.value = cw.NewConst(value)
	}
	return fw
}

func (fw *FieldWriter) live(op string) bool {
	if fw.cw.err != nil {
		return false
	}
	if fw.ended {
		fw.cw.setErr(errors.New(errors.J0104, op, op))
		return false
	}
	return true
}

// VisitAnnotation 字段注解
func (fw *FieldWriter) VisitAnnotation(desc string, visible bool) AnnotationVisitor {
	if !fw.live("VisitAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTopAnnotation(fw.cw, desc)
	if visible {
		fw.anns = append(fw.anns, aw)
	} else {
		fw.ianns = append(fw.ianns, aw)
	}
	return aw
}

// VisitTypeAnnotation 字段类型上的类型注解
func (fw *FieldWriter) VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor {
	if !fw.live("VisitTypeAnnotation") {
		return NopAnnotationVisitor{}
	}
	aw := newTypeAnnotation(fw.cw, typeRef, typePath, desc)
	if visible {
		fw.tanns = append(fw.tanns, aw)
	} else {
		fw.itanns = append(fw.itanns, aw)
	}
	return aw
}

// VisitAttribute 非标准属性
func (fw *FieldWriter) VisitAttribute(attr Attribute) {
	if !fw.live("VisitAttribute") {
		return
	}
	fw.attrs = append(fw.attrs, attr)
}

// VisitEnd 结束字段
func (fw *FieldWriter) VisitEnd() {
	if !fw.live("VisitEnd") {
		return
	}
	fw.ended = true
}

func (fw *FieldWriter) hasSyntheticAttribute() bool {
	if fw.access&AccSynthetic == 0 && fw.access&AccSyntheticAttribute == 0 {
		return false
	}
	return fw.cw.version&0xFFFF < V1_5 || fw.access&AccSyntheticAttribute != 0
}

func (fw *FieldWriter) getSize() int {
	cw := fw.cw
	size := 8
	if fw.value != 0 {
		cw.NewUTF8(attrConstantValue)
		size += 8
	}
	if fw.hasSyntheticAttribute() {
		cw.NewUTF8(attrSynthetic)
		size += 6
	}
	if fw.access&AccDeprecated != 0 {
		cw.NewUTF8(attrDeprecated)
		size += 6
	}
	if fw.signature != "" {
		cw.NewUTF8(attrSignature)
		size += 8
	}
	size += annotationListSize(cw, attrRuntimeVisibleAnnotations, fw.anns)
	size += annotationListSize(cw, attrRuntimeInvisibleAnnotations, fw.ianns)
	size += annotationListSize(cw, attrRuntimeVisibleTypeAnnotations, fw.tanns)
	size += annotationListSize(cw, attrRuntimeInvisibleTypeAnnotations, fw.itanns)
	size += attributesSize(cw, fw.attrs, nil, -1, -1)
	return size
}

func (fw *FieldWriter) put(out *ByteVector) {
	cw := fw.cw
	mask := AccDeprecated | AccSyntheticAttribute
	if fw.access&AccSyntheticAttribute != 0 {
		mask |= AccSynthetic
	}
	out.PutShort(fw.access &^ mask).PutShort(fw.name).PutShort(fw.desc)

	count := len(fw.attrs)
	if fw.value != 0 {
		count++
	}
	if fw.hasSyntheticAttribute() {
		count++
	}
	if fw.access&AccDeprecated != 0 {
		count++
	}
	if fw.signature != "" {
		count++
	}
	for _, list := range [][]*AnnotationWriter{fw.anns, fw.ianns, fw.tanns, fw.itanns} {
		if len(list) > 0 {
			count++
		}
	}
	out.PutShort(count)

	if fw.value != 0 {
		out.PutShort(cw.NewUTF8(attrConstantValue)).PutInt(2).PutShort(fw.value)
	}
	if fw.hasSyntheticAttribute() {
		out.PutShort(cw.NewUTF8(attrSynthetic)).PutInt(0)
	}
	if fw.access&AccDeprecated != 0 {
		out.PutShort(cw.NewUTF8(attrDeprecated)).PutInt(0)
	}
	if fw.signature != "" {
		out.PutShort(cw.NewUTF8(attrSignature)).PutInt(2).PutShort(cw.NewUTF8(fw.signature))
	}
	putAnnotationList(cw, attrRuntimeVisibleAnnotations, fw.anns, out)
	putAnnotationList(cw, attrRuntimeInvisibleAnnotations, fw.ianns, out)
	putAnnotationList(cw, attrRuntimeVisibleTypeAnnotations, fw.tanns, out)
	putAnnotationList(cw, attrRuntimeInvisibleTypeAnnotations, fw.itanns, out)
	putAttributes(cw, fw.attrs, nil, -1, -1, out)
}

var _ FieldVisitor = (*FieldWriter)(nil)
