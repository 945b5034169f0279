package jvmgen

import "math"

// item 常量池、类型表或引导方法表中的一项
type item struct {
	index   int // 常量池下标、类型表下标或引导方法下标
	typ     int // 常量标签或内部条目类型
	intVal  int32
	longVal int64
	s1      string
	s2      string
	s3      string
	hash    int32 // 已屏蔽为非负
	chain   *item // 同一哈希桶中的下一项
}

func maskHash(h int32) int32 { return h & 0x7FFFFFFF }

func (i *item) setInt(v int32) {
	i.typ = ConstantInteger
	i.intVal = v
	i.hash = maskHash(int32(i.typ) + v)
}

func (i *item) setFloat(v float32) {
	i.typ = ConstantFloat
	i.intVal = int32(math.Float32bits(v))
	i.hash = maskHash(int32(i.typ) + i.intVal)
}

func (i *item) setLong(v int64) {
	i.typ = ConstantLong
	i.longVal = v
	i.hash = maskHash(int32(i.typ) + int32(v))
}

func (i *item) setDouble(v float64) {
	i.typ = ConstantDouble
	i.longVal = int64(math.Float64bits(v))
	i.hash = maskHash(int32(i.typ) + int32(i.longVal))
}

// setStrings 设置字符串类条目并计算哈希
func (i *item) setStrings(typ int, s1, s2, s3 string) {
	i.typ = typ
	i.s1, i.s2, i.s3 = s1, s2, s3
	switch typ {
	case ConstantClass, ConstantUtf8, ConstantString, ConstantMethodType, itemTypeNormal:
		i.hash = maskHash(int32(typ) + javaHash(s1))
	case ConstantNameAndType:
		i.hash = maskHash(int32(typ) + javaHash(s1)*javaHash(s2))
	default:
		i.hash = maskHash(int32(typ) + javaHash(s1)*javaHash(s2)*javaHash(s3))
	}
}

// setHandle 方法句柄条目，接口标志参与比较
func (i *item) setHandle(h Handle) {
	i.setStrings(itemHandleBase+h.Tag, h.Owner, h.Name, h.Desc)
	if h.Itf {
		i.intVal = 1
	} else {
		i.intVal = 0
	}
}

func (i *item) setInvokeDynamic(name, desc string, bsmIndex int) {
	i.typ = ConstantInvokeDynamic
	i.intVal = int32(bsmIndex)
	i.s1, i.s2 = name, desc
	i.hash = maskHash(int32(ConstantInvokeDynamic) + int32(bsmIndex)*javaHash(name)*javaHash(desc))
}

// setBootstrap 引导方法条目，intVal 为其在 BootstrapMethods 中的字节位置
func (i *item) setBootstrap(position int, hash int32) {
	i.typ = itemBootstrap
	i.intVal = int32(position)
	i.hash = maskHash(hash)
}

func (i *item) setUninitType(typ string, offset int) {
	i.typ = itemTypeUninit
	i.s1 = typ
	i.intVal = int32(offset)
	i.hash = maskHash(int32(itemTypeUninit) + javaHash(typ) + int32(offset))
}

func (i *item) setMergedType(type1, type2 int) {
	i.typ = itemTypeMerged
	i.longVal = int64(uint32(type1)) | int64(type2)<<32
	i.hash = maskHash(int32(itemTypeMerged) + int32(type1) + int32(type2))
}

// copyKey 复制键字段，不复制下标和链
func (i *item) copyKey(k *item) {
	i.typ = k.typ
	i.intVal = k.intVal
	i.longVal = k.longVal
	i.s1, i.s2, i.s3 = k.s1, k.s2, k.s3
	i.hash = k.hash
}

// isEqualTo 判断两项的键是否相同
func (i *item) isEqualTo(o *item) bool {
	switch i.typ {
	case ConstantUtf8, ConstantString, ConstantClass, ConstantMethodType, itemTypeNormal:
		return o.s1 == i.s1
	case itemTypeMerged, ConstantLong, ConstantDouble:
		return o.longVal == i.longVal
	case ConstantInteger, ConstantFloat:
		return o.intVal == i.intVal
	case itemTypeUninit:
		return o.intVal == i.intVal && o.s1 == i.s1
	case ConstantNameAndType:
		return o.s1 == i.s1 && o.s2 == i.s2
	case ConstantInvokeDynamic:
		return o.intVal == i.intVal && o.s1 == i.s1 && o.s2 == i.s2
	default:
		if i.typ > itemHandleBase && i.typ <= itemHandleBase+HInvokeInterface && o.intVal != i.intVal {
			return false
		}
		return o.s1 == i.s1 && o.s2 == i.s2 && o.s3 == i.s3
	}
}
