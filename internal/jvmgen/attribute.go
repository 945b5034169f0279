package jvmgen

// Attribute 非标准属性
//
// Write 返回属性内容（不含名称与长度），会被调用两次（计算大小与写出），
// 结果必须相同。code 只对代码属性有效，其余情况为 nil，maxStack/maxLocals 为 -1。
type Attribute interface {
	Type() string
	IsCodeAttribute() bool
	Write(cw *ClassWriter, code []byte, maxStack, maxLocals int) []byte
}

// RawAttribute 内容固定的属性
type RawAttribute struct {
	Name string
	Data []byte
	Code bool // 是否为 Code 属性的子属性
}

// Type 实现 Attribute
func (a *RawAttribute) Type() string { return a.Name }

// IsCodeAttribute 实现 Attribute
func (a *RawAttribute) IsCodeAttribute() bool { return a.Code }

// Write 实现 Attribute
func (a *RawAttribute) Write(*ClassWriter, []byte, int, int) []byte { return a.Data }

// attributesSize 登记属性名并返回属性总大小
func attributesSize(cw *ClassWriter, attrs []Attribute, code []byte, maxStack, maxLocals int) int {
	size := 0
	for _, attr := range attrs {
		cw.NewUTF8(attr.Type())
		size += len(attr.Write(cw, code, maxStack, maxLocals)) + 6
	}
	return size
}

// putAttributes 写出属性
func putAttributes(cw *ClassWriter, attrs []Attribute, code []byte, maxStack, maxLocals int, out *ByteVector) {
	for _, attr := range attrs {
		b := attr.Write(cw, code, maxStack, maxLocals)
		out.PutShort(cw.NewUTF8(attr.Type())).PutInt(len(b))
		out.PutByteArray(b, len(b))
	}
}
