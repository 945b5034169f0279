package jvmgen

// ============================================================================
// 访问者接口
// ============================================================================

// ClassVisitor 按顺序接收一个类的结构事件：
// Visit [VisitSource] [VisitOuterClass] (VisitAnnotation | VisitTypeAnnotation | VisitAttribute)*
// (VisitInnerClass | VisitField | VisitMethod)* VisitEnd
type ClassVisitor interface {
	Visit(version, access int, name, signature, superName string, interfaces []string)
	VisitSource(source, debug string)
	VisitOuterClass(owner, name, desc string)
	VisitAnnotation(desc string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor
	VisitAttribute(attr Attribute)
	VisitInnerClass(name, outerName, innerName string, access int)
	VisitField(access int, name, desc, signature string, value any) FieldVisitor
	VisitMethod(access int, name, desc, signature string, exceptions []string) MethodVisitor
	VisitEnd()
}

// FieldVisitor 接收字段的注解与属性
type FieldVisitor interface {
	VisitAnnotation(desc string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor
	VisitAttribute(attr Attribute)
	VisitEnd()
}

// MethodVisitor 接收方法的注解、属性与代码
//
// 代码部分的顺序为 VisitCode，指令与标签、异常处理器、调试信息，最后 VisitMaxs。
type MethodVisitor interface {
	VisitParameter(name string, access int)
	VisitAnnotationDefault() AnnotationVisitor
	VisitAnnotation(desc string, visible bool) AnnotationVisitor
	VisitTypeAnnotation(typeRef int, typePath *TypePath, desc string, visible bool) AnnotationVisitor
	VisitParameterAnnotation(parameter int, desc string, visible bool) AnnotationVisitor
	VisitAttribute(attr Attribute)
	VisitCode()
	VisitFrame(typ, nLocal int, local []any, nStack int, stack []any)
	VisitInsn(opcode int)
	VisitIntInsn(opcode, operand int)
	VisitVarInsn(opcode, v int)
	VisitTypeInsn(opcode int, typ string)
	VisitFieldInsn(opcode int, owner, name, desc string)
	VisitMethodInsn(opcode int, owner, name, desc string, itf bool)
	VisitInvokeDynamicInsn(name, desc string, bsm Handle, bsmArgs ...any)
	VisitJumpInsn(opcode int, label *Label)
	VisitLabel(label *Label)
	VisitLdcInsn(cst any)
	VisitIincInsn(v, increment int)
	VisitTableSwitchInsn(min, max int, dflt *Label, labels ...*Label)
	VisitLookupSwitchInsn(dflt *Label, keys []int, labels []*Label)
	VisitMultiANewArrayInsn(desc string, dims int)
	VisitTryCatchBlock(start, end, handler *Label, typ string)
	VisitLocalVariable(name, desc, signature string, start, end *Label, index int)
	VisitLineNumber(line int, start *Label)
	VisitMaxs(maxStack, maxLocals int)
	VisitEnd()
}

// AnnotationVisitor 接收注解元素值
type AnnotationVisitor interface {
	Visit(name string, value any)
	VisitEnum(name, desc, value string)
	VisitAnnotation(name, desc string) AnnotationVisitor
	VisitArray(name string) AnnotationVisitor
	VisitEnd()
}

// ============================================================================
// 空实现
// ============================================================================

// NopClassVisitor 忽略所有事件，可嵌入以只覆盖部分方法
type NopClassVisitor struct{}

func (NopClassVisitor) Visit(int, int, string, string, string, []string) {}
func (NopClassVisitor) VisitSource(string, string)                       {}
func (NopClassVisitor) VisitOuterClass(string, string, string)           {}
func (NopClassVisitor) VisitAnnotation(string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopClassVisitor) VisitTypeAnnotation(int, *TypePath, string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopClassVisitor) VisitAttribute(Attribute)                    {}
func (NopClassVisitor) VisitInnerClass(string, string, string, int) {}
func (NopClassVisitor) VisitField(int, string, string, string, any) FieldVisitor {
	return NopFieldVisitor{}
}
func (NopClassVisitor) VisitMethod(int, string, string, string, []string) MethodVisitor {
	return NopMethodVisitor{}
}
func (NopClassVisitor) VisitEnd() {}

// NopFieldVisitor 忽略所有字段事件
type NopFieldVisitor struct{}

func (NopFieldVisitor) VisitAnnotation(string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopFieldVisitor) VisitTypeAnnotation(int, *TypePath, string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopFieldVisitor) VisitAttribute(Attribute) {}
func (NopFieldVisitor) VisitEnd()                {}

// NopMethodVisitor 忽略所有方法事件
type NopMethodVisitor struct{}

func (NopMethodVisitor) VisitParameter(string, int)                {}
func (NopMethodVisitor) VisitAnnotationDefault() AnnotationVisitor { return NopAnnotationVisitor{} }
func (NopMethodVisitor) VisitAnnotation(string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopMethodVisitor) VisitTypeAnnotation(int, *TypePath, string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopMethodVisitor) VisitParameterAnnotation(int, string, bool) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopMethodVisitor) VisitAttribute(Attribute)                                       {}
func (NopMethodVisitor) VisitCode()                                                     {}
func (NopMethodVisitor) VisitFrame(int, int, []any, int, []any)                         {}
func (NopMethodVisitor) VisitInsn(int)                                                  {}
func (NopMethodVisitor) VisitIntInsn(int, int)                                          {}
func (NopMethodVisitor) VisitVarInsn(int, int)                                          {}
func (NopMethodVisitor) VisitTypeInsn(int, string)                                      {}
func (NopMethodVisitor) VisitFieldInsn(int, string, string, string)                     {}
func (NopMethodVisitor) VisitMethodInsn(int, string, string, string, bool)              {}
func (NopMethodVisitor) VisitInvokeDynamicInsn(string, string, Handle, ...any)          {}
func (NopMethodVisitor) VisitJumpInsn(int, *Label)                                      {}
func (NopMethodVisitor) VisitLabel(*Label)                                              {}
func (NopMethodVisitor) VisitLdcInsn(any)                                               {}
func (NopMethodVisitor) VisitIincInsn(int, int)                                         {}
func (NopMethodVisitor) VisitTableSwitchInsn(int, int, *Label, ...*Label)               {}
func (NopMethodVisitor) VisitLookupSwitchInsn(*Label, []int, []*Label)                  {}
func (NopMethodVisitor) VisitMultiANewArrayInsn(string, int)                            {}
func (NopMethodVisitor) VisitTryCatchBlock(*Label, *Label, *Label, string)              {}
func (NopMethodVisitor) VisitLocalVariable(string, string, string, *Label, *Label, int) {}
func (NopMethodVisitor) VisitLineNumber(int, *Label)                                    {}
func (NopMethodVisitor) VisitMaxs(int, int)                                             {}
func (NopMethodVisitor) VisitEnd()                                                      {}

// NopAnnotationVisitor 忽略所有注解事件
type NopAnnotationVisitor struct{}

func (NopAnnotationVisitor) Visit(string, any)                {}
func (NopAnnotationVisitor) VisitEnum(string, string, string) {}
func (NopAnnotationVisitor) VisitAnnotation(string, string) AnnotationVisitor {
	return NopAnnotationVisitor{}
}
func (NopAnnotationVisitor) VisitArray(string) AnnotationVisitor { return NopAnnotationVisitor{} }
func (NopAnnotationVisitor) VisitEnd()                           {}

var (
	_ ClassVisitor      = NopClassVisitor{}
	_ FieldVisitor      = NopFieldVisitor{}
	_ MethodVisitor     = NopMethodVisitor{}
	_ AnnotationVisitor = NopAnnotationVisitor{}
)
