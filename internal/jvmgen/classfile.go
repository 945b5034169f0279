// Package jvmgen 实现 JVM 类文件汇编：常量池、方法体、标签解析与栈映射帧计算
package jvmgen

// Class 文件常量
const (
	ClassFileMagic = 0xCAFEBABE
)

// 类文件版本，低 16 位为主版本号，高 16 位为次版本号
const (
	V1_1 = 3<<16 | 45
	V1_2 = 0<<16 | 46
	V1_3 = 0<<16 | 47
	V1_4 = 0<<16 | 48
	V1_5 = 0<<16 | 49
	V1_6 = 0<<16 | 50
	V1_7 = 0<<16 | 51
	V1_8 = 0<<16 | 52
)

// API 级别
const (
	API4 = 4 << 16
	API5 = 5 << 16
)

// 常量池标签
const (
	ConstantUtf8               = 1
	ConstantInteger            = 3
	ConstantFloat              = 4
	ConstantLong               = 5
	ConstantDouble             = 6
	ConstantClass              = 7
	ConstantString             = 8
	ConstantFieldref           = 9
	ConstantMethodref          = 10
	ConstantInterfaceMethodref = 11
	ConstantNameAndType        = 12
	ConstantMethodHandle       = 15
	ConstantMethodType         = 16
	ConstantInvokeDynamic      = 18
)

// 常量池之外的内部条目类型
const (
	itemHandleBase = 20 // ConstantMethodHandle 条目按 20+种类 区分
	itemTypeNormal = 30
	itemTypeUninit = 31
	itemTypeMerged = 32
	itemBootstrap  = 33
)

// 访问标志
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020
	AccSynchronized = 0x0020
	AccVolatile     = 0x0040
	AccBridge       = 0x0040
	AccVarargs      = 0x0080
	AccTransient    = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
	AccMandated     = 0x8000

	// AccDeprecated 伪标志，写成 Deprecated 属性
	AccDeprecated = 0x20000
	// AccSyntheticAttribute 伪标志，类版本低于 1.5 时写成 Synthetic 属性
	AccSyntheticAttribute = 0x40000
	// accConstructor 方法是 <init>，只在帧计算中使用
	accConstructor = 0x80000
)

// 属性名
const (
	attrCode                                 = "Code"
	attrConstantValue                        = "ConstantValue"
	attrExceptions                           = "Exceptions"
	attrSourceFile                           = "SourceFile"
	attrSourceDebugExtension                 = "SourceDebugExtension"
	attrLineNumberTable                      = "LineNumberTable"
	attrLocalVariableTable                   = "LocalVariableTable"
	attrLocalVariableTypeTable               = "LocalVariableTypeTable"
	attrStackMapTable                        = "StackMapTable"
	attrStackMap                             = "StackMap"
	attrInnerClasses                         = "InnerClasses"
	attrEnclosingMethod                      = "EnclosingMethod"
	attrSignature                            = "Signature"
	attrDeprecated                           = "Deprecated"
	attrSynthetic                            = "Synthetic"
	attrBootstrapMethods                     = "BootstrapMethods"
	attrMethodParameters                     = "MethodParameters"
	attrAnnotationDefault                    = "AnnotationDefault"
	attrRuntimeVisibleAnnotations            = "RuntimeVisibleAnnotations"
	attrRuntimeInvisibleAnnotations          = "RuntimeInvisibleAnnotations"
	attrRuntimeVisibleParameterAnnotations   = "RuntimeVisibleParameterAnnotations"
	attrRuntimeInvisibleParameterAnnotations = "RuntimeInvisibleParameterAnnotations"
	attrRuntimeVisibleTypeAnnotations        = "RuntimeVisibleTypeAnnotations"
	attrRuntimeInvisibleTypeAnnotations      = "RuntimeInvisibleTypeAnnotations"
)

// StackMapTable 压缩帧类型
const (
	sameFrame                         = 0  // 0..63
	sameLocals1StackItemFrame         = 64 // 64..127
	reservedFrame                     = 128
	sameLocals1StackItemFrameExtended = 247
	chopFrame                         = 248 // 248..250
	sameFrameExtended                 = 251
	appendFrame                       = 252 // 252..254
	fullFrame                         = 255
)

// 校验类型编码
const (
	itemTop               = 0
	itemInteger           = 1
	itemFloat             = 2
	itemDouble            = 3
	itemLong              = 4
	itemNull              = 5
	itemUninitializedThis = 6
	itemObject            = 7
	itemUninitialized     = 8
)

// 指令格式，用于计算指令长度和解码
const (
	insnNoArg    = iota // 无操作数
	insnImplVar         // 隐含局部变量的 xLOAD_n/xSTORE_n
	insnLabel           // 16 位跳转
	insnLabelW          // 32 位跳转
	insnWide            // WIDE 前缀
	insnSbyte           // 有符号字节操作数
	insnShort           // 有符号短整型操作数
	insnVar             // 局部变量下标
	insnLdc             // LDC
	insnLdcW            // LDC_W / LDC2_W
	insnField           // 字段访问
	insnMethod          // 非接口方法调用
	insnItfMeth         // INVOKEINTERFACE
	insnIndyMeth        // INVOKEDYNAMIC
	insnType            // 类型操作数
	insnIinc            // IINC
	insnTabl            // TABLESWITCH
	insnLook            // LOOKUPSWITCH
	insnMana            // MULTIANEWARRAY
)

// insnKinds 每个操作码（包括伪操作码）的指令格式
var insnKinds = buildInsnKinds()

func buildInsnKinds() [256]byte {
	var t [256]byte
	set := func(from, to int, kind byte) {
		for i := from; i <= to; i++ {
			t[i] = kind
		}
	}
	set(0x00, 0xFF, insnNoArg)
	t[OpBipush] = insnSbyte
	t[OpNewarray] = insnSbyte
	t[OpSipush] = insnShort
	t[OpLdc] = insnLdc
	t[opLdcW] = insnLdcW
	t[opLdc2W] = insnLdcW
	set(OpIload, OpAload, insnVar)
	set(OpIstore, OpAstore, insnVar)
	t[OpRet] = insnVar
	set(opIload0, opAload0+3, insnImplVar)
	set(opIstore0, opAstore0+3, insnImplVar)
	set(OpIfeq, OpJsr, insnLabel)
	t[OpIfnull] = insnLabel
	t[OpIfnonnull] = insnLabel
	t[OpGotoW] = insnLabelW
	t[OpJsrW] = insnLabelW
	t[opWide] = insnWide
	t[OpIinc] = insnIinc
	t[OpTableswitch] = insnTabl
	t[OpLookupswitch] = insnLook
	set(OpGetstatic, OpPutfield, insnField)
	set(OpInvokevirtual, OpInvokestatic, insnMethod)
	t[OpInvokeinterface] = insnItfMeth
	t[OpInvokedynamic] = insnIndyMeth
	t[OpNew] = insnType
	t[OpAnewarray] = insnType
	t[OpCheckcast] = insnType
	t[OpInstanceof] = insnType
	t[OpMultianewarray] = insnMana
	// 伪操作码
	set(OpIfeq+asmPseudoDelta, OpJsr+asmPseudoDelta, insnLabel)
	t[opAsmIfnull] = insnLabel
	t[opAsmIfnonnull] = insnLabel
	t[opAsmGotoW] = insnLabelW
	return t
}
