package jvmgen

import "fmt"

// Label 状态位
const (
	labelDebug      = 1    // 只用于调试信息的标签
	labelResolved   = 2    // 位置已确定
	labelPushed     = 8    // 已加入帧计算的工作列表
	labelTarget     = 16   // 跳转目标或异常处理器起点
	labelStore      = 32   // 需要写出栈映射帧
	labelReachable  = 64   // 可达
	labelJSR        = 128  // 以 JSR 结尾的基本块
	labelRET        = 256  // 以 RET 结尾的基本块
	labelSubroutine = 512  // 子程序入口
	labelVisited    = 1024 // 已归入某个子程序
	labelVisited2   = 2048 // 已在 RET 连边时访问
)

// labelRef 尚未解析的前向引用
type labelRef struct {
	source    int  // 跳转指令的偏移
	reference int  // 偏移量字段的位置
	wide      bool // 偏移量占 4 字节
}

// Label 字节码中的一个位置，同时是控制流图的基本块
type Label struct {
	// Info 供调用方挂载任意数据
	Info any

	status   int
	position int
	refs     []labelRef

	// 以下字段用于 maxs 与帧计算
	inputStackTop  int
	outputStackMax int
	frame          *Frame
	nextBlock      *Label // 按代码顺序的下一个基本块
	successors     *Edge
	subroutines    []uint32 // 所属子程序位集
	queued         bool
}

// NewLabel 创建标签
func NewLabel() *Label {
	return &Label{}
}

// Offset 返回标签的字节码偏移，未解析时返回 false
func (l *Label) Offset() (int, bool) {
	if l.status&labelResolved == 0 {
		return 0, false
	}
	return l.position, true
}

func (l *Label) String() string {
	if l.status&labelResolved == 0 {
		return fmt.Sprintf("L%p", l)
	}
	return fmt.Sprintf("L%d", l.position)
}

// getFirst 返回与本标签同一位置的第一个标签
func (l *Label) getFirst() *Label {
	if l.frame == nil {
		return l
	}
	return l.frame.owner
}

// put 写入跳转偏移，未解析时记录前向引用并写占位值
func (l *Label) put(out *ByteVector, source int, wide bool) {
	if l.status&labelResolved == 0 {
		l.refs = append(l.refs, labelRef{source: source, reference: out.Len(), wide: wide})
		if wide {
			out.PutInt(-1)
		} else {
			out.PutShort(-1)
		}
		return
	}
	if wide {
		out.PutInt(l.position - source)
	} else {
		out.PutShort(l.position - source)
	}
}

// resolve 确定标签位置并回填所有前向引用
//
// 超出 16 位范围的短跳转被改写成伪操作码，返回 true 表示需要加宽。
func (l *Label) resolve(position int, data []byte) bool {
	needUpdate := false
	l.status |= labelResolved
	l.position = position
	for _, r := range l.refs {
		if r.wide {
			offset := position - r.source
			data[r.reference] = byte(offset >> 24)
			data[r.reference+1] = byte(offset >> 16)
			data[r.reference+2] = byte(offset >> 8)
			data[r.reference+3] = byte(offset)
			continue
		}
		offset := position - r.source
		if offset < -32768 || offset > 32767 {
			opcode := int(data[r.reference-1])
			if opcode <= OpJsr {
				data[r.reference-1] = byte(opcode + asmPseudoDelta)
			} else {
				data[r.reference-1] = byte(opcode + asmPseudoDeltaNl)
			}
			needUpdate = true
		}
		data[r.reference] = byte(offset >> 8)
		data[r.reference+1] = byte(offset)
	}
	l.refs = nil
	return needUpdate
}

// ============================================================================
// 子程序
// ============================================================================

func subroutineBit(id int) (word int, mask uint32) {
	return id / 32, 1 << uint(id%32)
}

// inSubroutine 判断基本块是否属于子程序 id
func (l *Label) inSubroutine(id int) bool {
	if l.status&labelVisited == 0 {
		return false
	}
	w, m := subroutineBit(id)
	return l.subroutines[w]&m != 0
}

// inSameSubroutine 判断两个基本块是否至少同属一个子程序
func (l *Label) inSameSubroutine(block *Label) bool {
	if l.status&labelVisited == 0 || block.status&labelVisited == 0 {
		return false
	}
	for i := range l.subroutines {
		if l.subroutines[i]&block.subroutines[i] != 0 {
			return true
		}
	}
	return false
}

func (l *Label) addToSubroutine(id, nbSubroutines int) {
	if l.status&labelVisited == 0 {
		l.status |= labelVisited
		l.subroutines = make([]uint32, nbSubroutines/32+1)
	}
	w, m := subroutineBit(id)
	l.subroutines[w] |= m
}

// visitSubroutine 从本块出发标记子程序 id 的所有基本块；
// jsr 非空时改为给子程序中的 RET 块补上返回到调用点之后的边
func (l *Label) visitSubroutine(jsr *Label, id, nbSubroutines int) {
	stack := []*Label{l}
	l.queued = true
	for len(stack) > 0 {
		b := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b.queued = false
		if jsr != nil {
			if b.status&labelVisited2 != 0 {
				continue
			}
			b.status |= labelVisited2
			if b.status&labelRET != 0 && !b.inSameSubroutine(jsr) {
				b.successors = &Edge{
					info:      b.inputStackTop,
					successor: jsr.successors.successor,
					next:      b.successors,
				}
			}
		} else {
			if b.inSubroutine(id) {
				continue
			}
			b.addToSubroutine(id, nbSubroutines)
		}
		for e := b.successors; e != nil; e = e.next {
			if b.status&labelJSR != 0 && e == b.successors.next {
				continue
			}
			if !e.successor.queued {
				e.successor.queued = true
				stack = append(stack, e.successor)
			}
		}
	}
}
