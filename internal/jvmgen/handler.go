package jvmgen

import "math"

// Handler 异常表中的一行
type Handler struct {
	start   *Label
	end     *Label
	handler *Label
	desc    string // 捕获类型的内部名，空串表示 finally
	typ     int    // 捕获类型的常量池下标，0 表示任意异常
}

// removeRange 从异常表中扣除 [start, end) 区间，end 为 nil 表示直到代码末尾
//
// 返回新的切片，原有 Handler 不被修改；被切成两段的行会复制出新的 Handler。
func removeRange(handlers []*Handler, start, end *Label) []*Handler {
	s := start.position
	e := math.MaxInt32
	if end != nil {
		e = end.position
	}
	out := make([]*Handler, 0, len(handlers))
	for _, h := range handlers {
		hstart := h.start.position
		hend := h.end.position
		if s >= hend || e <= hstart {
			out = append(out, h)
			continue
		}
		switch {
		case s <= hstart && e >= hend:
			// 整行被覆盖
		case s <= hstart:
			c := *h
			c.start = end
			out = append(out, &c)
		case e >= hend:
			c := *h
			c.end = start
			out = append(out, &c)
		default:
			head := *h
			head.end = start
			tail := *h
			tail.start = end
			out = append(out, &head, &tail)
		}
	}
	return out
}
