package jvmgen

// ============================================================================
// 示例类生成
// ============================================================================

// HelloMessage 示例类 main 方法打印的文本
const HelloMessage = "Hello world!"

// GenerateHello 向 cv 发出示例类的全部事件：公共类 className，
// 一个默认构造方法，以及调用 System.out.println 的 main 方法
func GenerateHello(cv ClassVisitor, className, message string) {
	cv.Visit(V1_8, AccPublic, className, "", "java/lang/Object", nil)
	generateInitMethod(cv)
	generateMainMethod(cv, message)
	cv.VisitEnd()
}

// HelloWorld 用新的 ClassWriter 生成示例类
func HelloWorld(className string, flags int, opts ...Option) ([]byte, error) {
	cw := NewClassWriter(flags, opts...)
	GenerateHello(cw, className, HelloMessage)
	return cw.ToByteArray()
}

// generateInitMethod 生成调用 Object.<init> 的默认构造方法
func generateInitMethod(cv ClassVisitor) {
	mv := cv.VisitMethod(AccPublic, "<init>", "()V", "", nil)
	mv.VisitCode()
	mv.VisitVarInsn(OpAload, 0)
	mv.VisitMethodInsn(OpInvokespecial, "java/lang/Object", "<init>", "()V", false)
	mv.VisitInsn(OpReturn)
	mv.VisitMaxs(1, 1)
	mv.VisitEnd()
}

// generateMainMethod 生成 public static void main(String[])
func generateMainMethod(cv ClassVisitor, message string) {
	mv := cv.VisitMethod(AccPublic|AccStatic, "main", "([Ljava/lang/String;)V", "", nil)
	mv.VisitCode()
	mv.VisitFieldInsn(OpGetstatic, "java/lang/System", "out", "Ljava/io/PrintStream;")
	mv.VisitLdcInsn(message)
	mv.VisitMethodInsn(OpInvokevirtual, "java/io/PrintStream", "println", "(Ljava/lang/String;)V", false)
	mv.VisitInsn(OpReturn)
	mv.VisitMaxs(2, 2)
	mv.VisitEnd()
}
