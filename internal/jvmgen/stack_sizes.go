package jvmgen

// stackSizeNA 表示该操作码的栈变化依赖操作数，需要单独计算
const stackSizeNA = 1 << 10

// stackSizes 每个操作码对操作数栈的影响（以字为单位）
var stackSizes = buildStackSizes()

func buildStackSizes() [202]int {
	var s [202]int
	set := func(from, to, delta int) {
		for i := from; i <= to; i++ {
			s[i] = delta
		}
	}

	// 常量
	s[OpNop] = 0
	s[OpAconstNull] = 1
	set(OpIconstM1, OpIconst5, 1)
	set(OpLconst0, OpLconst1, 2)
	set(OpFconst0, OpFconst2, 1)
	set(OpDconst0, OpDconst1, 2)
	s[OpBipush] = 1
	s[OpSipush] = 1
	s[OpLdc] = 1
	s[opLdcW] = 1
	s[opLdc2W] = 2

	// 加载
	s[OpIload], s[OpLload], s[OpFload], s[OpDload], s[OpAload] = 1, 2, 1, 2, 1
	set(opIload0, opIload0+3, 1)
	set(opLload0, opLload0+3, 2)
	set(opFload0, opFload0+3, 1)
	set(opDload0, opDload0+3, 2)
	set(opAload0, opAload0+3, 1)
	set(OpIaload, OpSaload, -1)
	s[OpLaload] = 0
	s[OpDaload] = 0

	// 存储
	s[OpIstore], s[OpLstore], s[OpFstore], s[OpDstore], s[OpAstore] = -1, -2, -1, -2, -1
	set(opIstore0, opIstore0+3, -1)
	set(opLstore0, opLstore0+3, -2)
	set(opFstore0, opFstore0+3, -1)
	set(opDstore0, opDstore0+3, -2)
	set(opAstore0, opAstore0+3, -1)
	set(OpIastore, OpSastore, -3)
	s[OpLastore] = -4
	s[OpDastore] = -4

	// 栈操作
	s[OpPop], s[OpPop2] = -1, -2
	s[OpDup], s[OpDupX1], s[OpDupX2] = 1, 1, 1
	s[OpDup2], s[OpDup2X1], s[OpDup2X2] = 2, 2, 2
	s[OpSwap] = 0

	// 算术：int/float 弹出一个字，long/double 弹出两个字
	for op := OpIadd; op <= OpDrem; op += 4 {
		s[op], s[op+1], s[op+2], s[op+3] = -1, -2, -1, -2
	}
	set(OpIneg, OpDneg, 0)
	set(OpIshl, OpLushr, -1)
	s[OpIand], s[OpLand], s[OpIor], s[OpLor], s[OpIxor], s[OpLxor] = -1, -2, -1, -2, -1, -2
	s[OpIinc] = 0

	// 类型转换
	s[OpI2l], s[OpI2f], s[OpI2d] = 1, 0, 1
	s[OpL2i], s[OpL2f], s[OpL2d] = -1, -1, 0
	s[OpF2i], s[OpF2l], s[OpF2d] = 0, 1, 1
	s[OpD2i], s[OpD2l], s[OpD2f] = -1, 0, -1
	set(OpI2b, OpI2s, 0)

	// 比较
	s[OpLcmp] = -3
	s[OpFcmpl], s[OpFcmpg] = -1, -1
	s[OpDcmpl], s[OpDcmpg] = -3, -3

	// 控制流
	set(OpIfeq, OpIfle, -1)
	set(OpIfIcmpeq, OpIfAcmpne, -2)
	s[OpGoto] = 0
	s[OpJsr] = 1
	s[OpRet] = 0
	s[OpTableswitch], s[OpLookupswitch] = -1, -1
	s[OpIreturn], s[OpLreturn], s[OpFreturn], s[OpDreturn], s[OpAreturn], s[OpReturn] = -1, -2, -1, -2, -1, 0

	// 字段与方法调用依赖描述符
	set(OpGetstatic, OpInvokedynamic, stackSizeNA)

	// 对象
	s[OpNew] = 1
	s[OpNewarray], s[OpAnewarray], s[OpArraylength] = 0, 0, 0
	s[OpAthrow] = -1
	s[OpCheckcast], s[OpInstanceof] = 0, 0
	s[OpMonitorenter], s[OpMonitorexit] = -1, -1
	s[opWide] = stackSizeNA
	s[OpMultianewarray] = stackSizeNA
	s[OpIfnull], s[OpIfnonnull] = -1, -1
	s[OpGotoW] = 0
	s[OpJsrW] = 1
	return s
}
