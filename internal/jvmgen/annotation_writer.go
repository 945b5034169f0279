package jvmgen

import "github.com/tangzhangming/jvmasm/internal/errors"

// AnnotationWriter 把注解写成 element_value 结构
type AnnotationWriter struct {
	cw     *ClassWriter
	named  bool        // 元素值是否带名称（注解体为 true，数组为 false）
	size   int         // 已写入的元素个数
	bv     *ByteVector // 注解内容
	parent *ByteVector // 需要回填个数的缓冲
	offset int         // 个数在 parent 中的位置
}

func newAnnotationWriter(cw *ClassWriter, named bool, bv, parent *ByteVector, offset int) *AnnotationWriter {
	return &AnnotationWriter{cw: cw, named: named, bv: bv, parent: parent, offset: offset}
}

// newTopAnnotation 创建顶层注解：type_index 与元素个数占位
func newTopAnnotation(cw *ClassWriter, desc string) *AnnotationWriter {
	bv := NewByteVector()
	bv.PutShort(cw.NewUTF8(desc)).PutShort(0)
	return newAnnotationWriter(cw, true, bv, bv, 2)
}

// newTypeAnnotation 创建类型注解：target、type_path、type_index 与个数占位
func newTypeAnnotation(cw *ClassWriter, typeRef int, typePath *TypePath, desc string) *AnnotationWriter {
	bv := NewByteVector()
	putTarget(typeRef, typePath, bv)
	bv.PutShort(cw.NewUTF8(desc)).PutShort(0)
	return newAnnotationWriter(cw, true, bv, bv, bv.Len()-2)
}

func (aw *AnnotationWriter) putName(name string) {
	aw.size++
	if aw.named {
		aw.bv.PutShort(aw.cw.NewUTF8(name))
	}
}

// Visit 写入基本类型、字符串、Type 或基本类型数组
func (aw *AnnotationWriter) Visit(name string, value any) {
	cw := aw.cw
	bv := aw.bv
	aw.putName(name)
	switch v := value.(type) {
	case string:
		bv.Put12('s', cw.NewUTF8(v))
	case int8:
		bv.Put12('B', cw.NewInteger(int32(v)))
	case bool:
		bv.Put12('Z', cw.NewInteger(boolInt(v)))
	case Char:
		bv.Put12('C', cw.NewInteger(int32(v)))
	case int16:
		bv.Put12('S', cw.NewInteger(int32(v)))
	case int32:
		bv.Put12('I', cw.NewInteger(v))
	case int:
		bv.Put12('I', cw.NewInteger(int32(v)))
	case int64:
		bv.Put12('J', cw.NewLong(v))
	case float32:
		bv.Put12('F', cw.NewFloat(v))
	case float64:
		bv.Put12('D', cw.NewDouble(v))
	case Type:
		bv.Put12('c', cw.NewUTF8(v.Descriptor()))
	case []byte:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('B', cw.NewInteger(int32(int8(e))))
		}
	case []int8:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('B', cw.NewInteger(int32(e)))
		}
	case []bool:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('Z', cw.NewInteger(boolInt(e)))
		}
	case []int16:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('S', cw.NewInteger(int32(e)))
		}
	case []Char:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('C', cw.NewInteger(int32(e)))
		}
	case []int32:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('I', cw.NewInteger(e))
		}
	case []int64:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('J', cw.NewLong(e))
		}
	case []float32:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('F', cw.NewFloat(e))
		}
	case []float64:
		bv.Put12('[', len(v))
		for _, e := range v {
			bv.Put12('D', cw.NewDouble(e))
		}
	default:
		cw.setErr(errors.New(errors.J0110, "AnnotationVisitor.Visit", value))
		bv.Put12('I', cw.NewInteger(0))
	}
}

// VisitEnum 写入枚举常量
func (aw *AnnotationWriter) VisitEnum(name, desc, value string) {
	aw.putName(name)
	aw.bv.Put12('e', aw.cw.NewUTF8(desc)).PutShort(aw.cw.NewUTF8(value))
}

// VisitAnnotation 写入嵌套注解
func (aw *AnnotationWriter) VisitAnnotation(name, desc string) AnnotationVisitor {
	aw.putName(name)
	aw.bv.Put12('@', aw.cw.NewUTF8(desc)).PutShort(0)
	return newAnnotationWriter(aw.cw, true, aw.bv, aw.bv, aw.bv.Len()-2)
}

// VisitArray 写入数组，元素不带名称
func (aw *AnnotationWriter) VisitArray(name string) AnnotationVisitor {
	aw.putName(name)
	aw.bv.Put12('[', 0)
	return newAnnotationWriter(aw.cw, false, aw.bv, aw.bv, aw.bv.Len()-2)
}

// VisitEnd 回填元素个数，可重复调用
func (aw *AnnotationWriter) VisitEnd() {
	if aw.parent != nil {
		aw.parent.setShort(aw.offset, aw.size)
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// annotationsSize 返回一组注解的内容大小
func annotationsSize(list []*AnnotationWriter) int {
	size := 0
	for _, aw := range list {
		size += aw.bv.Len()
	}
	return size
}

// putAnnotations 写出 Runtime*Annotations 属性体：长度、个数与各注解
func putAnnotations(list []*AnnotationWriter, out *ByteVector) {
	out.PutInt(2 + annotationsSize(list)).PutShort(len(list))
	for _, aw := range list {
		aw.VisitEnd()
		out.putByteVector(aw.bv)
	}
}

// parameterAnnotationsSize 参数注解属性体的大小，off 为被跳过的合成参数个数
func parameterAnnotationsSize(panns [][]*AnnotationWriter, off int) int {
	size := 1 + 2*(len(panns)-off)
	for i := off; i < len(panns); i++ {
		size += annotationsSize(panns[i])
	}
	return size
}

// putParameterAnnotations 写出 Runtime*ParameterAnnotations 属性体
func putParameterAnnotations(panns [][]*AnnotationWriter, off int, out *ByteVector) {
	out.PutInt(parameterAnnotationsSize(panns, off)).PutByte(len(panns) - off)
	for i := off; i < len(panns); i++ {
		out.PutShort(len(panns[i]))
		for _, aw := range panns[i] {
			aw.VisitEnd()
			out.putByteVector(aw.bv)
		}
	}
}

// putTarget 按 typeRef 的种类写出 target_type 与 target_info，然后是 type_path
func putTarget(typeRef int, typePath *TypePath, out *ByteVector) {
	sort := int(uint32(typeRef) >> 24)
	switch sort {
	case 0x00, 0x01, 0x16:
		out.PutShort(int(uint32(typeRef) >> 16))
	case 0x13, 0x14, 0x15:
		out.PutByte(sort)
	case 0x47, 0x48, 0x49, 0x4A, 0x4B:
		out.PutInt(typeRef)
	default:
		out.Put12(sort, (typeRef&0xFFFF00)>>8)
	}
	typePath.put(out)
}

var _ AnnotationVisitor = (*AnnotationWriter)(nil)
