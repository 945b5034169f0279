package jvmgen

import "fmt"

// Handle 方法句柄常量
type Handle struct {
	Tag   int    // HGetField..HInvokeInterface
	Owner string // 所属类内部名
	Name  string
	Desc  string
	Itf   bool // Owner 是否为接口
}

// NewHandle 创建方法句柄，H_INVOKEINTERFACE 的 Itf 固定为 true
func NewHandle(tag int, owner, name, desc string, itf bool) Handle {
	if tag == HInvokeInterface {
		itf = true
	}
	return Handle{Tag: tag, Owner: owner, Name: name, Desc: desc, Itf: itf}
}

func (h Handle) String() string {
	s := fmt.Sprintf("%s.%s%s (%d)", h.Owner, h.Name, h.Desc, h.Tag)
	if h.Itf {
		s += " itf"
	}
	return s
}

// Char Java char 常量，与 int16 区分以选择注解元素类型
type Char uint16
