package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
	"go.uber.org/zap"
)

// ============================================================================
// 常量池
// ============================================================================

// maxPoolIndex constant_pool_count 的上限
const maxPoolIndex = 0xFFFF

// maxTypeTable 帧类型表的下标上限（20 位）
const maxTypeTable = 0xFFFFF

// lookup 在常量池中查找
func (cw *ClassWriter) lookup(key *item) *item {
	return cw.symbols.get(key)
}

// register 为新常量分配下标并登记，width 为占用的槽数
func (cw *ClassWriter) register(key *item, width int) *item {
	it := &item{index: cw.index}
	it.copyKey(key)
	cw.index += width
	if cw.index > maxPoolIndex {
		cw.setErr(errors.New(errors.J0200, "ConstantPool"))
	}
	cw.poolItems = append(cw.poolItems, it)
	if width == 2 {
		cw.poolItems = append(cw.poolItems, nil)
	}
	before := cw.symbols.rehashes
	cw.symbols.put(it, cw.index+len(cw.typeTable))
	if cw.symbols.rehashes != before {
		cw.logger.Debug("constant pool rehashed",
			zap.Int("entries", cw.index), zap.Int("buckets", len(cw.symbols.buckets)))
	}
	return it
}

// itemAt 按常量池下标取回条目
func (cw *ClassWriter) itemAt(index int) *item {
	if index <= 0 || index >= len(cw.poolItems) {
		return nil
	}
	return cw.poolItems[index]
}

// NewConst 登记一个数值、字符串、Type 或 Handle 常量，返回其下标
func (cw *ClassWriter) NewConst(value any) int {
	it := cw.newConstItem(value)
	if it == nil {
		return 0
	}
	return it.index
}

func (cw *ClassWriter) newConstItem(value any) *item {
	switch v := value.(type) {
	case int32:
		return cw.newIntegerItem(v)
	case int:
		return cw.newIntegerItem(int32(v))
	case int8:
		return cw.newIntegerItem(int32(v))
	case int16:
		return cw.newIntegerItem(int32(v))
	case Char:
		return cw.newIntegerItem(int32(v))
	case bool:
		if v {
			return cw.newIntegerItem(1)
		}
		return cw.newIntegerItem(0)
	case float32:
		return cw.newFloatItem(v)
	case int64:
		return cw.newLongItem(v)
	case float64:
		return cw.newDoubleItem(v)
	case string:
		return cw.newStringItem(v)
	case Type:
		switch v.Sort() {
		case SortObject:
			return cw.newClassItem(v.InternalName())
		case SortMethod:
			return cw.newMethodTypeItem(v.Descriptor())
		default:
			return cw.newClassItem(v.Descriptor())
		}
	case Handle:
		return cw.newHandleItem(v)
	default:
		cw.setErr(errors.New(errors.J0102, "NewConst", value))
		return nil
	}
}

// NewUTF8 登记 UTF8 常量
func (cw *ClassWriter) NewUTF8(value string) int {
	key := &item{}
	key.setStrings(ConstantUtf8, value, "", "")
	if it := cw.lookup(key); it != nil {
		return it.index
	}
	cw.pool.PutByte(ConstantUtf8).PutUTF8(value)
	return cw.register(key, 1).index
}

// NewClass 登记类常量
func (cw *ClassWriter) NewClass(internalName string) int {
	return cw.newClassItem(internalName).index
}

func (cw *ClassWriter) newClassItem(value string) *item {
	key := &item{}
	key.setStrings(ConstantClass, value, "", "")
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.Put12(ConstantClass, cw.NewUTF8(value))
	return cw.register(key, 1)
}

// NewMethodType 登记方法类型常量
func (cw *ClassWriter) NewMethodType(desc string) int {
	return cw.newMethodTypeItem(desc).index
}

func (cw *ClassWriter) newMethodTypeItem(desc string) *item {
	key := &item{}
	key.setStrings(ConstantMethodType, desc, "", "")
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.Put12(ConstantMethodType, cw.NewUTF8(desc))
	return cw.register(key, 1)
}

// NewHandle 登记方法句柄常量
func (cw *ClassWriter) NewHandle(tag int, owner, name, desc string, itf bool) int {
	return cw.newHandleItem(NewHandle(tag, owner, name, desc, itf)).index
}

func (cw *ClassWriter) newHandleItem(h Handle) *item {
	if h.Tag < HGetField || h.Tag > HInvokeInterface {
		cw.setErr(errors.New(errors.J0108, "NewHandle", "handle tag"))
		h.Tag = HInvokeStatic
	}
	key := &item{}
	key.setHandle(h)
	if it := cw.lookup(key); it != nil {
		return it
	}
	var ref int
	if h.Tag <= HPutStatic {
		ref = cw.NewField(h.Owner, h.Name, h.Desc)
	} else {
		ref = cw.NewMethod(h.Owner, h.Name, h.Desc, h.Itf)
	}
	cw.pool.Put11(ConstantMethodHandle, h.Tag).PutShort(ref)
	return cw.register(key, 1)
}

// NewInvokeDynamic 登记 invokedynamic 调用点，引导方法按编码字节去重
func (cw *ClassWriter) NewInvokeDynamic(name, desc string, bsm Handle, bsmArgs ...any) int {
	return cw.newInvokeDynamicItem(name, desc, bsm, bsmArgs...).index
}

func (cw *ClassWriter) newInvokeDynamicItem(name, desc string, bsm Handle, bsmArgs ...any) *item {
	if cw.bootstrapMethods == nil {
		cw.bootstrapMethods = NewByteVector()
	}
	bv := cw.bootstrapMethods
	position := bv.Len()
	bv.PutShort(cw.newHandleItem(bsm).index)
	bv.PutShort(len(bsmArgs))
	for _, arg := range bsmArgs {
		bv.PutShort(cw.NewConst(arg))
	}
	length := (2 + len(bsmArgs)) << 1
	encoded := bv.data[position : position+length]
	var h int32
	for _, b := range encoded {
		h = 31*h + int32(b)
	}
	hash := maskHash(int32(itemBootstrap) + h)

	var found *item
	for it := cw.symbols.buckets[int(hash)%len(cw.symbols.buckets)]; it != nil; it = it.chain {
		if it.typ != itemBootstrap || it.hash != hash {
			continue
		}
		p := int(it.intVal)
		if string(bv.data[p:p+length]) == string(encoded) {
			found = it
			break
		}
	}
	var bsmIndex int
	if found != nil {
		bsmIndex = found.index
		bv.length = position
	} else {
		bsmIndex = cw.bootstrapMethodsCount
		cw.bootstrapMethodsCount++
		it := &item{index: bsmIndex}
		it.setBootstrap(position, hash)
		cw.symbols.put(it, cw.index+len(cw.typeTable))
	}

	key := &item{}
	key.setInvokeDynamic(name, desc, bsmIndex)
	if it := cw.lookup(key); it != nil {
		return it
	}
	nt := cw.NewNameType(name, desc)
	cw.pool.Put12(ConstantInvokeDynamic, bsmIndex).PutShort(nt)
	return cw.register(key, 1)
}

// NewField 登记字段引用
func (cw *ClassWriter) NewField(owner, name, desc string) int {
	return cw.newFieldItem(owner, name, desc).index
}

func (cw *ClassWriter) newFieldItem(owner, name, desc string) *item {
	key := &item{}
	key.setStrings(ConstantFieldref, owner, name, desc)
	if it := cw.lookup(key); it != nil {
		return it
	}
	c := cw.NewClass(owner)
	nt := cw.NewNameType(name, desc)
	cw.pool.Put12(ConstantFieldref, c).PutShort(nt)
	return cw.register(key, 1)
}

// NewMethod 登记方法引用，itf 表示接口方法
func (cw *ClassWriter) NewMethod(owner, name, desc string, itf bool) int {
	return cw.newMethodItem(owner, name, desc, itf).index
}

func (cw *ClassWriter) newMethodItem(owner, name, desc string, itf bool) *item {
	typ := ConstantMethodref
	if itf {
		typ = ConstantInterfaceMethodref
	}
	key := &item{}
	key.setStrings(typ, owner, name, desc)
	if it := cw.lookup(key); it != nil {
		return it
	}
	c := cw.NewClass(owner)
	nt := cw.NewNameType(name, desc)
	cw.pool.Put12(typ, c).PutShort(nt)
	return cw.register(key, 1)
}

// NewInteger 登记 int 常量
func (cw *ClassWriter) NewInteger(v int32) int { return cw.newIntegerItem(v).index }

func (cw *ClassWriter) newIntegerItem(v int32) *item {
	key := &item{}
	key.setInt(v)
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.PutByte(ConstantInteger).PutInt(int(v))
	return cw.register(key, 1)
}

// NewFloat 登记 float 常量
func (cw *ClassWriter) NewFloat(v float32) int { return cw.newFloatItem(v).index }

func (cw *ClassWriter) newFloatItem(v float32) *item {
	key := &item{}
	key.setFloat(v)
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.PutByte(ConstantFloat).PutInt(int(key.intVal))
	return cw.register(key, 1)
}

// NewLong 登记 long 常量，占两个下标
func (cw *ClassWriter) NewLong(v int64) int { return cw.newLongItem(v).index }

func (cw *ClassWriter) newLongItem(v int64) *item {
	key := &item{}
	key.setLong(v)
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.PutByte(ConstantLong).PutLong(v)
	return cw.register(key, 2)
}

// NewDouble 登记 double 常量，占两个下标
func (cw *ClassWriter) NewDouble(v float64) int { return cw.newDoubleItem(v).index }

func (cw *ClassWriter) newDoubleItem(v float64) *item {
	key := &item{}
	key.setDouble(v)
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.PutByte(ConstantDouble).PutLong(key.longVal)
	return cw.register(key, 2)
}

// NewString 登记字符串常量
func (cw *ClassWriter) NewString(v string) int { return cw.newStringItem(v).index }

func (cw *ClassWriter) newStringItem(v string) *item {
	key := &item{}
	key.setStrings(ConstantString, v, "", "")
	if it := cw.lookup(key); it != nil {
		return it
	}
	cw.pool.Put12(ConstantString, cw.NewUTF8(v))
	return cw.register(key, 1)
}

// NewNameType 登记名称与类型常量
func (cw *ClassWriter) NewNameType(name, desc string) int {
	key := &item{}
	key.setStrings(ConstantNameAndType, name, desc, "")
	if it := cw.lookup(key); it != nil {
		return it.index
	}
	n := cw.NewUTF8(name)
	d := cw.NewUTF8(desc)
	cw.pool.Put12(ConstantNameAndType, n).PutShort(d)
	return cw.register(key, 1).index
}

// ============================================================================
// 帧类型表
// ============================================================================

// addType 登记普通类型，返回类型表下标
func (cw *ClassWriter) addType(typ string) int {
	key := &item{}
	key.setStrings(itemTypeNormal, typ, "", "")
	if it := cw.types.get(key); it != nil {
		return it.index
	}
	return cw.addTypeItem(key)
}

// addUninitializedType 登记 NEW 指令在 offset 处创建的未初始化类型
func (cw *ClassWriter) addUninitializedType(typ string, offset int) int {
	key := &item{}
	key.setUninitType(typ, offset)
	if it := cw.types.get(key); it != nil {
		return it.index
	}
	return cw.addTypeItem(key)
}

func (cw *ClassWriter) addTypeItem(key *item) int {
	if len(cw.typeTable) == 0 {
		cw.typeTable = append(cw.typeTable, nil)
	}
	it := &item{index: len(cw.typeTable)}
	it.copyKey(key)
	cw.typeTable = append(cw.typeTable, it)
	if it.index > maxTypeTable {
		cw.setErr(errors.New(errors.J0201, "addType"))
	}
	cw.types.put(it, len(cw.typeTable))
	return it.index
}

// getMergedType 返回两个类型表项的公共父类型
func (cw *ClassWriter) getMergedType(type1, type2 int) int {
	key := &item{}
	key.setMergedType(type1, type2)
	if it := cw.types.get(key); it != nil {
		return int(it.intVal)
	}
	t := cw.typeTable[type1].s1
	u := cw.typeTable[type2].s1
	it := &item{}
	it.copyKey(key)
	it.intVal = int32(cw.addType(cw.commonSuperClass(t, u)))
	cw.types.put(it, len(cw.typeTable))
	return int(it.intVal)
}

// commonSuperClass 计算两个内部名的公共父类
func (cw *ClassWriter) commonSuperClass(type1, type2 string) string {
	const object = "java/lang/Object"
	if type1 == type2 {
		return type1
	}
	if type1 == object || type2 == object {
		return object
	}
	if cw.hierarchy != nil {
		if s, ok := cw.hierarchy.CommonSuperClass(type1, type2); ok {
			return s
		}
	}
	cw.setErr(errors.New(errors.J0301, "getCommonSuperClass", type1, type2))
	return object
}
