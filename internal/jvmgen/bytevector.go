package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
)

// ByteVector 可增长的大端字节缓冲
type ByteVector struct {
	data   []byte
	length int
	err    error
}

// NewByteVector 创建字节缓冲
func NewByteVector() *ByteVector {
	return &ByteVector{data: make([]byte, 64)}
}

// NewByteVectorSize 创建指定初始容量的字节缓冲
func NewByteVectorSize(initialSize int) *ByteVector {
	if initialSize < 1 {
		initialSize = 1
	}
	return &ByteVector{data: make([]byte, initialSize)}
}

// Len 返回已写入长度
func (b *ByteVector) Len() int { return b.length }

// Bytes 返回已写入内容
func (b *ByteVector) Bytes() []byte { return b.data[:b.length] }

// Err 返回写入过程中的容量错误
func (b *ByteVector) Err() error { return b.err }

func (b *ByteVector) enlarge(size int) {
	n := 2 * len(b.data)
	if need := b.length + size; need > n {
		n = need
	}
	nd := make([]byte, n)
	copy(nd, b.data[:b.length])
	b.data = nd
}

// PutByte 写入一个字节
func (b *ByteVector) PutByte(v int) *ByteVector {
	if b.length+1 > len(b.data) {
		b.enlarge(1)
	}
	b.data[b.length] = byte(v)
	b.length++
	return b
}

// Put11 写入两个单字节
func (b *ByteVector) Put11(b1, b2 int) *ByteVector {
	if b.length+2 > len(b.data) {
		b.enlarge(2)
	}
	b.data[b.length] = byte(b1)
	b.data[b.length+1] = byte(b2)
	b.length += 2
	return b
}

// PutShort 写入大端 16 位
func (b *ByteVector) PutShort(v int) *ByteVector {
	if b.length+2 > len(b.data) {
		b.enlarge(2)
	}
	b.data[b.length] = byte(v >> 8)
	b.data[b.length+1] = byte(v)
	b.length += 2
	return b
}

// Put12 写入一个字节和一个 16 位
func (b *ByteVector) Put12(b1, s int) *ByteVector {
	if b.length+3 > len(b.data) {
		b.enlarge(3)
	}
	b.data[b.length] = byte(b1)
	b.data[b.length+1] = byte(s >> 8)
	b.data[b.length+2] = byte(s)
	b.length += 3
	return b
}

// PutInt 写入大端 32 位
func (b *ByteVector) PutInt(v int) *ByteVector {
	if b.length+4 > len(b.data) {
		b.enlarge(4)
	}
	l := b.length
	b.data[l] = byte(v >> 24)
	b.data[l+1] = byte(v >> 16)
	b.data[l+2] = byte(v >> 8)
	b.data[l+3] = byte(v)
	b.length += 4
	return b
}

// PutLong 写入大端 64 位
func (b *ByteVector) PutLong(v int64) *ByteVector {
	if b.length+8 > len(b.data) {
		b.enlarge(8)
	}
	l := b.length
	for i := 0; i < 8; i++ {
		b.data[l+i] = byte(v >> (56 - 8*uint(i)))
	}
	b.length += 8
	return b
}

// PutByteArray 写入字节数组，src 为 nil 时写入 n 个零
func (b *ByteVector) PutByteArray(src []byte, n int) *ByteVector {
	if b.length+n > len(b.data) {
		b.enlarge(n)
	}
	if src != nil {
		copy(b.data[b.length:b.length+n], src[:n])
	} else {
		for i := b.length; i < b.length+n; i++ {
			b.data[i] = 0
		}
	}
	b.length += n
	return b
}

// PutUTF8 写入带长度前缀的 modified UTF-8 字符串
func (b *ByteVector) PutUTF8(s string) *ByteVector {
	units := utf16Units(s)
	charLength := len(units)
	if charLength > 65535 {
		b.fail(charLength)
		return b
	}
	if b.length+2+charLength > len(b.data) {
		b.enlarge(2 + charLength)
	}
	start := b.length
	b.data[start] = byte(charLength >> 8)
	b.data[start+1] = byte(charLength)
	l := start + 2
	for i, c := range units {
		if c >= 0x01 && c <= 0x7F {
			b.data[l] = byte(c)
			l++
			continue
		}
		b.length = l
		return b.encodeUTF8(units, i, start)
	}
	b.length = l
	return b
}

// encodeUTF8 从第 i 个码元开始走慢路径，最后回填长度前缀
func (b *ByteVector) encodeUTF8(units []uint16, i, start int) *ByteVector {
	byteLength := i
	for _, c := range units[i:] {
		switch {
		case c >= 0x01 && c <= 0x7F:
			byteLength++
		case c > 0x7FF:
			byteLength += 3
		default:
			byteLength += 2
		}
	}
	if byteLength > 65535 {
		b.length = start
		b.fail(byteLength)
		return b
	}
	b.data[start] = byte(byteLength >> 8)
	b.data[start+1] = byte(byteLength)
	if b.length+byteLength-i > len(b.data) {
		b.enlarge(byteLength - i)
	}
	l := b.length
	for _, c := range units[i:] {
		switch {
		case c >= 0x01 && c <= 0x7F:
			b.data[l] = byte(c)
			l++
		case c > 0x7FF:
			b.data[l] = byte(0xE0 | c>>12&0xF)
			b.data[l+1] = byte(0x80 | c>>6&0x3F)
			b.data[l+2] = byte(0x80 | c&0x3F)
			l += 3
		default:
			b.data[l] = byte(0xC0 | c>>6&0x1F)
			b.data[l+1] = byte(0x80 | c&0x3F)
			l += 2
		}
	}
	b.length = l
	return b
}

func (b *ByteVector) fail(n int) {
	if b.err == nil {
		b.err = errors.New(errors.J0203, "PutUTF8", n)
	}
}

// putByteVector 追加另一个缓冲的内容
func (b *ByteVector) putByteVector(o *ByteVector) *ByteVector {
	return b.PutByteArray(o.data, o.length)
}

// setShort 回填 16 位
func (b *ByteVector) setShort(index, v int) {
	b.data[index] = byte(v >> 8)
	b.data[index+1] = byte(v)
}
