package jvmgen

import (
	"strconv"
	"strings"
)

// TypePath 步骤种类
const (
	TypePathArrayElement = 0
	TypePathInnerType    = 1
	TypePathWildcard     = 2
	TypePathTypeArgument = 3
)

// TypePath 类型注解在类型内部的路径
type TypePath struct {
	steps []byte // 每步两个字节：种类、类型参数下标
}

// Len 返回路径步数
func (p *TypePath) Len() int {
	if p == nil {
		return 0
	}
	return len(p.steps) / 2
}

// Step 返回第 i 步的种类
func (p *TypePath) Step(i int) int { return int(p.steps[2*i]) }

// StepArgument 返回第 i 步的类型参数下标
func (p *TypePath) StepArgument(i int) int { return int(p.steps[2*i+1]) }

// TypePathFromString 解析 "[" "." "*" 与 "数字;" 组成的路径
func TypePathFromString(s string) *TypePath {
	if s == "" {
		return nil
	}
	p := &TypePath{}
	for i := 0; i < len(s); {
		c := s[i]
		i++
		switch {
		case c == '[':
			p.steps = append(p.steps, TypePathArrayElement, 0)
		case c == '.':
			p.steps = append(p.steps, TypePathInnerType, 0)
		case c == '*':
			p.steps = append(p.steps, TypePathWildcard, 0)
		case c >= '0' && c <= '9':
			j := i - 1
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			n, _ := strconv.Atoi(s[j:i])
			p.steps = append(p.steps, TypePathTypeArgument, byte(n))
			if i < len(s) && s[i] == ';' {
				i++
			}
		}
	}
	return p
}

func (p *TypePath) String() string {
	var sb strings.Builder
	for i := 0; i < p.Len(); i++ {
		switch p.Step(i) {
		case TypePathArrayElement:
			sb.WriteByte('[')
		case TypePathInnerType:
			sb.WriteByte('.')
		case TypePathWildcard:
			sb.WriteByte('*')
		case TypePathTypeArgument:
			sb.WriteString(strconv.Itoa(p.StepArgument(i)))
			sb.WriteByte(';')
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// put 写入 type_path 结构
func (p *TypePath) put(out *ByteVector) {
	if p == nil {
		out.PutByte(0)
		return
	}
	out.PutByte(p.Len())
	out.PutByteArray(p.steps, len(p.steps))
}
