package jvmgen

// ClassHierarchy 为帧计算提供两个类的公共父类
//
// 返回 false 表示无法回答，此时类生成以 ErrCommonSuperClass 失败。
type ClassHierarchy interface {
	CommonSuperClass(type1, type2 string) (string, bool)
}

// HierarchyMap 基于映射表的类层次
type HierarchyMap struct {
	Supers     map[string]string // 内部名 -> 直接父类内部名
	Interfaces map[string]bool   // 接口内部名
}

// NewHierarchyMap 创建空的类层次
func NewHierarchyMap() *HierarchyMap {
	return &HierarchyMap{
		Supers:     make(map[string]string),
		Interfaces: make(map[string]bool),
	}
}

// Add 登记一个类及其父类
func (h *HierarchyMap) Add(name, super string) *HierarchyMap {
	h.Supers[name] = super
	return h
}

// AddInterface 登记一个接口
func (h *HierarchyMap) AddInterface(name string) *HierarchyMap {
	h.Interfaces[name] = true
	h.Supers[name] = "java/lang/Object"
	return h
}

// CommonSuperClass 实现 ClassHierarchy，接口与任何类合并为 java/lang/Object
func (h *HierarchyMap) CommonSuperClass(type1, type2 string) (string, bool) {
	const object = "java/lang/Object"
	if h.Interfaces[type1] || h.Interfaces[type2] {
		return object, true
	}
	ancestors := map[string]bool{}
	for t := type1; t != ""; {
		ancestors[t] = true
		if t == object {
			break
		}
		next, ok := h.Supers[t]
		if !ok {
			return "", false
		}
		t = next
	}
	for t := type2; t != ""; {
		if ancestors[t] {
			return t, true
		}
		next, ok := h.Supers[t]
		if !ok {
			return "", false
		}
		t = next
	}
	return "", false
}

// definedClass 在已有类层次之上登记正在生成的类
type definedClass struct {
	base        ClassHierarchy
	name, super string
	itf         bool
}

func (d *definedClass) CommonSuperClass(type1, type2 string) (string, bool) {
	if d.base != nil {
		if s, ok := d.base.CommonSuperClass(type1, type2); ok {
			return s, true
		}
	}
	var other string
	switch d.name {
	case type1:
		other = type2
	case type2:
		other = type1
	default:
		return "", false
	}
	if other == d.name {
		return other, true
	}
	if d.itf {
		return "java/lang/Object", true
	}
	if other == d.super {
		return other, true
	}
	if d.base == nil {
		return "", false
	}
	return d.base.CommonSuperClass(d.super, other)
}
