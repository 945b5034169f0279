package jvmgen

import "unicode/utf16"

// utf16Units 把 Go 字符串转成 UTF-16 码元，增补字符拆成代理对
func utf16Units(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// javaHash 计算与 java.lang.String#hashCode 相同的哈希
func javaHash(s string) int32 {
	var h int32
	for _, c := range utf16Units(s) {
		h = 31*h + int32(c)
	}
	return h
}

// modifiedUTF8 返回不带长度前缀的 modified UTF-8 编码
func modifiedUTF8(s string) []byte {
	units := utf16Units(s)
	out := make([]byte, 0, len(units))
	for _, c := range units {
		switch {
		case c >= 0x01 && c <= 0x7F:
			out = append(out, byte(c))
		case c > 0x7FF:
			out = append(out, byte(0xE0|c>>12&0xF), byte(0x80|c>>6&0x3F), byte(0x80|c&0x3F))
		default:
			out = append(out, byte(0xC0|c>>6&0x1F), byte(0x80|c&0x3F))
		}
	}
	return out
}
