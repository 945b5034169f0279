package jvmgen

// 控制流边的种类
const (
	edgeNormal    = 0
	edgeException = 0x7FFFFFFF
)

// Edge 控制流图中的一条边
//
// 计算 maxs 时 info 是进入后继时的栈高度（异常边为 edgeException）；
// 计算帧时 info 是 edgeNormal 或异常处理器捕获的类型。
type Edge struct {
	info      int
	successor *Label
	next      *Edge
}
