package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
	"go.uber.org/zap"
)

// ============================================================================
// maxs 与帧计算
// ============================================================================

// VisitMaxs 结束代码，按计算模式确定 max_stack、max_locals 和栈映射帧
func (mw *MethodWriter) VisitMaxs(maxStack, maxLocals int) {
	if !mw.live("VisitMaxs") {
		return
	}
	if !mw.codeVisited {
		mw.cw.setErr(errors.New(errors.J0103, "VisitMaxs"))
		return
	}
	if mw.maxsVisited {
		mw.cw.setErr(errors.New(errors.J0107, "VisitMaxs"))
		return
	}
	mw.maxsVisited = true
	for _, l := range mw.forward {
		if l.status&labelResolved == 0 {
			mw.cw.setErr(errors.New(errors.J0106, "VisitMaxs", l))
			return
		}
	}
	mw.forward = nil
	for _, h := range mw.handlers {
		for _, l := range []*Label{h.start, h.end, h.handler} {
			if l.status&labelResolved == 0 {
				mw.cw.setErr(errors.New(errors.J0106, "VisitMaxs", l))
				return
			}
		}
	}
	switch mw.compute {
	case computeFrames:
		mw.computeFrames()
	case computeMaxs:
		mw.computeMaxStack()
		if maxStack > mw.maxStack {
			mw.maxStack = maxStack
		}
	default:
		mw.maxStack = maxStack
		mw.maxLocals = maxLocals
	}
	mw.cw.logger.Debug("method maxs",
		zap.String("method", mw.nameStr+mw.descriptor),
		zap.Int("maxStack", mw.maxStack),
		zap.Int("maxLocals", mw.maxLocals),
		zap.Int("frames", mw.frameCount))
}

// computeFrames 在控制流图上做不动点迭代，得到每个基本块的输入帧
func (mw *MethodWriter) computeFrames() {
	for _, h := range mw.handlers {
		l := h.start.getFirst()
		handler := h.handler.getFirst()
		end := h.end.getFirst()
		t := h.desc
		if t == "" {
			t = "java/lang/Throwable"
		}
		kind := frameObject | uint32(mw.cw.addType(t))
		handler.status |= labelTarget
		for ; l != nil && l != end; l = l.nextBlock {
			l.successors = &Edge{info: int(kind), successor: handler, next: l.successors}
		}
	}

	f := mw.labels.frame
	f.initInputFrame(mw.cw, mw.access, argumentTypes(mw.descriptor), mw.maxLocals)
	mw.visitFrameOf(f)

	max := 0
	worklist := []*Label{mw.labels}
	mw.labels.queued = true
	for len(worklist) > 0 {
		l := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		l.queued = false
		f := l.frame
		if l.status&labelTarget != 0 {
			l.status |= labelStore
		}
		l.status |= labelReachable
		if blockMax := len(f.inputStack) + l.outputStackMax; blockMax > max {
			max = blockMax
		}
		for e := l.successors; e != nil; e = e.next {
			n := e.successor.getFirst()
			if f.merge(mw.cw, n.frame, e.info) && !n.queued {
				n.queued = true
				worklist = append(worklist, n)
			}
		}
		if mw.cw.err != nil {
			return
		}
	}

	for l := mw.labels; l != nil; l = l.nextBlock {
		if l.status&labelStore != 0 {
			mw.visitFrameOf(l.frame)
		}
		if l.status&labelReachable != 0 {
			continue
		}
		// 不可达的基本块改写成 NOP ... ATHROW
		k := l.nextBlock
		start := l.position
		end := mw.code.Len() - 1
		if k != nil {
			end = k.position - 1
		}
		if end < start {
			continue
		}
		if max < 1 {
			max = 1
		}
		for i := start; i < end; i++ {
			mw.code.data[i] = OpNop
		}
		mw.code.data[end] = OpAthrow
		idx := mw.startFrame(start, 0, 1)
		mw.frame[idx] = frameObject | uint32(mw.cw.addType("java/lang/Throwable"))
		mw.endFrame()
		mw.handlers = removeRange(mw.handlers, l, k)
		mw.cw.logger.Debug("dead code replaced",
			zap.String("method", mw.nameStr+mw.descriptor),
			zap.Int("start", start), zap.Int("end", end))
	}
	mw.maxStack = max
}

// computeMaxStack 按基本块的栈高度估算最大栈深度，支持 JSR/RET 子程序
func (mw *MethodWriter) computeMaxStack() {
	for _, h := range mw.handlers {
		for l := h.start; l != nil && l != h.end; l = l.nextBlock {
			e := &Edge{info: edgeException, successor: h.handler}
			if l.status&labelJSR == 0 {
				e.next = l.successors
				l.successors = e
			} else {
				e.next = l.successors.next.next
				l.successors.next.next = e
			}
		}
	}

	if mw.subroutines > 0 {
		// 主程序编号 0，子程序从 1 开始编号
		id := 0
		mw.labels.visitSubroutine(nil, 0, mw.subroutines)
		for l := mw.labels; l != nil; l = l.nextBlock {
			if l.status&labelJSR == 0 {
				continue
			}
			sub := l.successors.next.successor
			if sub.status&labelVisited == 0 {
				id++
				sub.visitSubroutine(nil, id, mw.subroutines)
			}
		}
		for l := mw.labels; l != nil; l = l.nextBlock {
			if l.status&labelJSR == 0 {
				continue
			}
			for b := mw.labels; b != nil; b = b.nextBlock {
				b.status &^= labelVisited2
			}
			l.successors.next.successor.visitSubroutine(l, 0, mw.subroutines)
		}
	}

	max := 0
	stack := []*Label{mw.labels}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		start := l.inputStackTop
		if blockMax := start + l.outputStackMax; blockMax > max {
			max = blockMax
		}
		e := l.successors
		if l.status&labelJSR != 0 {
			// 第一条边是 JSR 之后的虚拟后继
			e = e.next
		}
		for ; e != nil; e = e.next {
			n := e.successor
			if n.status&labelPushed != 0 {
				continue
			}
			if e.info == edgeException {
				n.inputStackTop = 1
			} else {
				n.inputStackTop = start + e.info
			}
			n.status |= labelPushed
			stack = append(stack, n)
		}
	}
	mw.maxStack = max
}
