package jvmgen

// JVM 操作码常量
const (
	// 常量操作
	OpNop        = 0x00 // 空操作
	OpAconstNull = 0x01 // 将 null 压入栈
	OpIconstM1   = 0x02
	OpIconst0    = 0x03
	OpIconst1    = 0x04
	OpIconst2    = 0x05
	OpIconst3    = 0x06
	OpIconst4    = 0x07
	OpIconst5    = 0x08
	OpLconst0    = 0x09
	OpLconst1    = 0x0A
	OpFconst0    = 0x0B
	OpFconst1    = 0x0C
	OpFconst2    = 0x0D
	OpDconst0    = 0x0E
	OpDconst1    = 0x0F
	OpBipush     = 0x10 // 将单字节常量压入栈
	OpSipush     = 0x11 // 将短整型常量压入栈
	OpLdc        = 0x12 // 将常量池中的项压入栈
	opLdcW       = 0x13
	opLdc2W      = 0x14

	// 加载操作
	OpIload  = 0x15
	OpLload  = 0x16
	OpFload  = 0x17
	OpDload  = 0x18
	OpAload  = 0x19
	opIload0 = 0x1A
	opLload0 = 0x1E
	opFload0 = 0x22
	opDload0 = 0x26
	opAload0 = 0x2A
	OpIaload = 0x2E
	OpLaload = 0x2F
	OpFaload = 0x30
	OpDaload = 0x31
	OpAaload = 0x32
	OpBaload = 0x33
	OpCaload = 0x34
	OpSaload = 0x35

	// 存储操作
	OpIstore  = 0x36
	OpLstore  = 0x37
	OpFstore  = 0x38
	OpDstore  = 0x39
	OpAstore  = 0x3A
	opIstore0 = 0x3B
	opLstore0 = 0x3F
	opFstore0 = 0x43
	opDstore0 = 0x47
	opAstore0 = 0x4B
	OpIastore = 0x4F
	OpLastore = 0x50
	OpFastore = 0x51
	OpDastore = 0x52
	OpAastore = 0x53
	OpBastore = 0x54
	OpCastore = 0x55
	OpSastore = 0x56

	// 栈操作
	OpPop    = 0x57
	OpPop2   = 0x58
	OpDup    = 0x59
	OpDupX1  = 0x5A
	OpDupX2  = 0x5B
	OpDup2   = 0x5C
	OpDup2X1 = 0x5D
	OpDup2X2 = 0x5E
	OpSwap   = 0x5F

	// 算术操作
	OpIadd  = 0x60
	OpLadd  = 0x61
	OpFadd  = 0x62
	OpDadd  = 0x63
	OpIsub  = 0x64
	OpLsub  = 0x65
	OpFsub  = 0x66
	OpDsub  = 0x67
	OpImul  = 0x68
	OpLmul  = 0x69
	OpFmul  = 0x6A
	OpDmul  = 0x6B
	OpIdiv  = 0x6C
	OpLdiv  = 0x6D
	OpFdiv  = 0x6E
	OpDdiv  = 0x6F
	OpIrem  = 0x70
	OpLrem  = 0x71
	OpFrem  = 0x72
	OpDrem  = 0x73
	OpIneg  = 0x74
	OpLneg  = 0x75
	OpFneg  = 0x76
	OpDneg  = 0x77
	OpIshl  = 0x78
	OpLshl  = 0x79
	OpIshr  = 0x7A
	OpLshr  = 0x7B
	OpIushr = 0x7C
	OpLushr = 0x7D
	OpIand  = 0x7E
	OpLand  = 0x7F
	OpIor   = 0x80
	OpLor   = 0x81
	OpIxor  = 0x82
	OpLxor  = 0x83
	OpIinc  = 0x84

	// 类型转换
	OpI2l = 0x85
	OpI2f = 0x86
	OpI2d = 0x87
	OpL2i = 0x88
	OpL2f = 0x89
	OpL2d = 0x8A
	OpF2i = 0x8B
	OpF2l = 0x8C
	OpF2d = 0x8D
	OpD2i = 0x8E
	OpD2l = 0x8F
	OpD2f = 0x90
	OpI2b = 0x91
	OpI2c = 0x92
	OpI2s = 0x93

	// 比较
	OpLcmp  = 0x94
	OpFcmpl = 0x95
	OpFcmpg = 0x96
	OpDcmpl = 0x97
	OpDcmpg = 0x98

	// 控制流
	OpIfeq         = 0x99
	OpIfne         = 0x9A
	OpIflt         = 0x9B
	OpIfge         = 0x9C
	OpIfgt         = 0x9D
	OpIfle         = 0x9E
	OpIfIcmpeq     = 0x9F
	OpIfIcmpne     = 0xA0
	OpIfIcmplt     = 0xA1
	OpIfIcmpge     = 0xA2
	OpIfIcmpgt     = 0xA3
	OpIfIcmple     = 0xA4
	OpIfAcmpeq     = 0xA5
	OpIfAcmpne     = 0xA6
	OpGoto         = 0xA7
	OpJsr          = 0xA8
	OpRet          = 0xA9
	OpTableswitch  = 0xAA
	OpLookupswitch = 0xAB
	OpIreturn      = 0xAC
	OpLreturn      = 0xAD
	OpFreturn      = 0xAE
	OpDreturn      = 0xAF
	OpAreturn      = 0xB0
	OpReturn       = 0xB1

	// 字段操作
	OpGetstatic = 0xB2
	OpPutstatic = 0xB3
	OpGetfield  = 0xB4
	OpPutfield  = 0xB5

	// 方法调用
	OpInvokevirtual   = 0xB6
	OpInvokespecial   = 0xB7
	OpInvokestatic    = 0xB8
	OpInvokeinterface = 0xB9
	OpInvokedynamic   = 0xBA

	// 对象操作
	OpNew            = 0xBB
	OpNewarray       = 0xBC
	OpAnewarray      = 0xBD
	OpArraylength    = 0xBE
	OpAthrow         = 0xBF
	OpCheckcast      = 0xC0
	OpInstanceof     = 0xC1
	OpMonitorenter   = 0xC2
	OpMonitorexit    = 0xC3
	opWide           = 0xC4
	OpMultianewarray = 0xC5
	OpIfnull         = 0xC6
	OpIfnonnull      = 0xC7
	OpGotoW          = 0xC8
	OpJsrW           = 0xC9
)

// 伪操作码：超出 16 位范围的前向跳转在解析时改写成这些值，
// 由加宽过程展开成真正的宽跳转
const (
	asmPseudoDelta   = 49 // IFEQ..JSR
	asmPseudoDeltaNl = 20 // IFNULL / IFNONNULL
	opAsmIfeq        = OpIfeq + asmPseudoDelta
	opAsmGoto        = OpGoto + asmPseudoDelta
	opAsmJsr         = OpJsr + asmPseudoDelta
	opAsmIfnull      = OpIfnull + asmPseudoDeltaNl
	opAsmIfnonnull   = OpIfnonnull + asmPseudoDeltaNl
	opAsmGotoW       = 220 // 后面需要补帧的 GOTO_W
)

// newarray 的基本类型代码
const (
	TBoolean = 4
	TChar    = 5
	TFloat   = 6
	TDouble  = 7
	TByte    = 8
	TShort   = 9
	TInt     = 10
	TLong    = 11
)

// 方法句柄种类
const (
	HGetField         = 1
	HGetStatic        = 2
	HPutField         = 3
	HPutStatic        = 4
	HInvokeVirtual    = 5
	HInvokeStatic     = 6
	HInvokeSpecial    = 7
	HNewInvokeSpecial = 8
	HInvokeInterface  = 9
)

// VisitFrame 的帧种类
const (
	FNew    = -1 // 展开的完整帧
	FFull   = 0
	FAppend = 1
	FChop   = 2
	FSame   = 3
	FSame1  = 4
	// fInsert 只在加宽过程中使用，表示需要从上一帧推算
	fInsert = 256
)

// 帧中的基本类型元素
const (
	Top               = 0
	Integer           = 1
	Float             = 2
	Double            = 3
	Long              = 4
	Null              = 5
	UninitializedThis = 6
)
