package jvmgen

import "strings"

// Type 的种类
const (
	SortVoid = iota
	SortBoolean
	SortChar
	SortByte
	SortShort
	SortInt
	SortFloat
	SortLong
	SortDouble
	SortArray
	SortObject
	SortMethod
)

// Type Java 类型或方法类型，以描述符表示
type Type struct {
	sort int
	desc string
}

// 基本类型
var (
	VoidType    = Type{SortVoid, "V"}
	BooleanType = Type{SortBoolean, "Z"}
	CharType    = Type{SortChar, "C"}
	ByteType    = Type{SortByte, "B"}
	ShortType   = Type{SortShort, "S"}
	IntType     = Type{SortInt, "I"}
	FloatType   = Type{SortFloat, "F"}
	LongType    = Type{SortLong, "J"}
	DoubleType  = Type{SortDouble, "D"}
)

// GetType 根据字段或方法描述符构造类型
func GetType(desc string) Type {
	if desc == "" {
		return VoidType
	}
	switch desc[0] {
	case 'V':
		return VoidType
	case 'Z':
		return BooleanType
	case 'C':
		return CharType
	case 'B':
		return ByteType
	case 'S':
		return ShortType
	case 'I':
		return IntType
	case 'F':
		return FloatType
	case 'J':
		return LongType
	case 'D':
		return DoubleType
	case '[':
		return Type{SortArray, desc}
	case '(':
		return Type{SortMethod, desc}
	default:
		return Type{SortObject, desc}
	}
}

// GetObjectType 根据内部名构造类型，数组内部名即其描述符
func GetObjectType(internalName string) Type {
	if strings.HasPrefix(internalName, "[") {
		return Type{SortArray, internalName}
	}
	return Type{SortObject, "L" + internalName + ";"}
}

// GetMethodType 根据方法描述符构造方法类型
func GetMethodType(desc string) Type {
	return Type{SortMethod, desc}
}

// Sort 返回类型种类
func (t Type) Sort() int { return t.sort }

// Descriptor 返回描述符
func (t Type) Descriptor() string { return t.desc }

// InternalName 返回对象或数组类型的内部名
func (t Type) InternalName() string {
	if t.sort == SortObject {
		return t.desc[1 : len(t.desc)-1]
	}
	return t.desc
}

// Size 返回该类型值占用的字数
func (t Type) Size() int {
	switch t.sort {
	case SortVoid:
		return 0
	case SortLong, SortDouble:
		return 2
	default:
		return 1
	}
}

func (t Type) String() string { return t.desc }

// ArgumentTypes 返回方法类型的参数类型
func (t Type) ArgumentTypes() []Type {
	return argumentTypes(t.desc)
}

// ReturnType 返回方法类型的返回类型
func (t Type) ReturnType() Type {
	i := strings.IndexByte(t.desc, ')')
	return GetType(t.desc[i+1:])
}

func argumentTypes(desc string) []Type {
	var args []Type
	i := 1
	for i < len(desc) && desc[i] != ')' {
		end := descriptorEnd(desc, i)
		args = append(args, GetType(desc[i:end]))
		i = end
	}
	return args
}

// descriptorEnd 返回从 i 开始的单个字段描述符的结束位置
func descriptorEnd(desc string, i int) int {
	for desc[i] == '[' {
		i++
	}
	if desc[i] == 'L' {
		return strings.IndexByte(desc[i:], ';') + i + 1
	}
	return i + 1
}

// argumentsAndReturnSizes 返回 (参数字数+1)<<2 | 返回值字数，参数包含隐含的 this
func argumentsAndReturnSizes(desc string) int {
	n := 1
	i := 1
	for {
		c := desc[i]
		i++
		switch {
		case c == ')':
			c = desc[i]
			if c == 'V' {
				return n << 2
			}
			if c == 'D' || c == 'J' {
				return n<<2 | 2
			}
			return n<<2 | 1
		case c == 'L':
			i = strings.IndexByte(desc[i:], ';') + i + 1
			n++
		case c == '[':
			for desc[i] == '[' {
				i++
			}
			if desc[i] == 'L' {
				i = strings.IndexByte(desc[i:], ';') + i
			}
			i++
			n++
		case c == 'D' || c == 'J':
			n += 2
		default:
			n++
		}
	}
}
