package classdump

import (
	"fmt"
	"math"
	"strings"

	"github.com/tangzhangming/jvmasm/internal/jvmgen"
	parser "github.com/wreulicke/classfile-parser"
)

func u2(code []byte, off int) int {
	return int(code[off])<<8 | int(code[off+1])
}

func s4(code []byte, off int) int {
	return int(int32(uint32(code[off])<<24 | uint32(code[off+1])<<16 | uint32(code[off+2])<<8 | uint32(code[off+3])))
}

// disassemble 把字节码转成 javap 风格的文本，每条指令一行
func disassemble(code []byte, cp *parser.ConstantPool) []string {
	var lines []string
	for off := 0; off < len(code); {
		n := jvmgen.InsnLength(code, off)
		if off+n > len(code) {
			lines = append(lines, fmt.Sprintf("%4d: %s <truncated>", off, jvmgen.OpcodeName(int(code[off]))))
			break
		}
		lines = append(lines, formatInsn(code, off, cp))
		off += n
	}
	return lines
}

func formatInsn(code []byte, off int, cp *parser.ConstantPool) string {
	op := int(code[off])
	name := jvmgen.OpcodeName(op)
	line := func(format string, args ...interface{}) string {
		return fmt.Sprintf("%4d: %-16s ", off, name) + fmt.Sprintf(format, args...)
	}

	switch {
	case op == jvmgen.OpBipush:
		return line("%d", int8(code[off+1]))
	case op == jvmgen.OpSipush:
		return line("%d", int16(u2(code, off+1)))
	case op == jvmgen.OpNewarray:
		return line("%d", code[off+1])
	case op >= jvmgen.OpIload && op <= jvmgen.OpAload,
		op >= jvmgen.OpIstore && op <= jvmgen.OpAstore,
		op == jvmgen.OpRet:
		return line("%d", code[off+1])
	case op == jvmgen.OpLdc:
		idx := int(code[off+1])
		return line("#%d // %s", idx, resolveConstantRef(cp, idx))
	case op == jvmgen.OpLdc+1, op == jvmgen.OpLdc+2, // ldc_w, ldc2_w
		op >= jvmgen.OpGetstatic && op <= jvmgen.OpInvokestatic,
		op == jvmgen.OpNew, op == jvmgen.OpAnewarray,
		op == jvmgen.OpCheckcast, op == jvmgen.OpInstanceof:
		idx := u2(code, off+1)
		return line("#%d // %s", idx, resolveConstantRef(cp, idx))
	case op == jvmgen.OpInvokeinterface:
		idx := u2(code, off+1)
		return line("#%d, %d // %s", idx, code[off+3], resolveConstantRef(cp, idx))
	case op == jvmgen.OpInvokedynamic:
		idx := u2(code, off+1)
		return line("#%d // %s", idx, resolveConstantRef(cp, idx))
	case op == jvmgen.OpMultianewarray:
		idx := u2(code, off+1)
		return line("#%d, %d // %s", idx, code[off+3], resolveConstantRef(cp, idx))
	case op == jvmgen.OpIinc:
		return line("%d, %d", code[off+1], int8(code[off+2]))
	case op >= jvmgen.OpIfeq && op <= jvmgen.OpJsr,
		op == jvmgen.OpIfnull, op == jvmgen.OpIfnonnull:
		return line("%d", off+int(int16(u2(code, off+1))))
	case op == jvmgen.OpGotoW, op == jvmgen.OpJsrW:
		return line("%d", off+s4(code, off+1))
	case op == jvmgen.OpTableswitch:
		p := off + 4 - off&3
		lo, hi := s4(code, p+4), s4(code, p+8)
		var cases []string
		for k := lo; k <= hi; k++ {
			cases = append(cases, fmt.Sprintf("%d: %d", k, off+s4(code, p+12+4*(k-lo))))
		}
		cases = append(cases, fmt.Sprintf("default: %d", off+s4(code, p)))
		return line("{ %s }", strings.Join(cases, ", "))
	case op == jvmgen.OpLookupswitch:
		p := off + 4 - off&3
		n := s4(code, p+4)
		var cases []string
		for i := 0; i < n; i++ {
			q := p + 8 + 8*i
			cases = append(cases, fmt.Sprintf("%d: %d", s4(code, q), off+s4(code, q+4)))
		}
		cases = append(cases, fmt.Sprintf("default: %d", off+s4(code, p)))
		return line("{ %s }", strings.Join(cases, ", "))
	case op == 0xC4: // wide
		wop := int(code[off+1])
		if wop == jvmgen.OpIinc {
			return line("%s %d, %d", jvmgen.OpcodeName(wop), u2(code, off+2), int16(u2(code, off+4)))
		}
		return line("%s %d", jvmgen.OpcodeName(wop), u2(code, off+2))
	}
	return fmt.Sprintf("%4d: %s", off, name)
}

// resolveConstantRef 把常量池索引转成可读文本
func resolveConstantRef(cp *parser.ConstantPool, index int) string {
	if index < 1 || index > len(cp.Constants) {
		return fmt.Sprintf("#%d", index)
	}
	c := cp.Constants[index-1]
	if c == nil {
		return fmt.Sprintf("#%d", index)
	}

	switch v := c.(type) {
	case *parser.ConstantClass:
		if name := cp.LookupUtf8(v.NameIndex); name != nil {
			return name.String()
		}
	case *parser.ConstantString:
		if s := cp.LookupUtf8(v.StringIndex); s != nil {
			return fmt.Sprintf("%q", s.String())
		}
	case *parser.ConstantFieldref:
		return resolveRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantMethodref:
		return resolveRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantInterfaceMethodref:
		return resolveRef(cp, v.ClassIndex, v.NameAndTypeIndex)
	case *parser.ConstantNameAndType:
		name := cp.LookupUtf8(v.NameIndex)
		desc := cp.LookupUtf8(v.DescriptorIndex)
		if name != nil && desc != nil {
			return name.String() + ":" + desc.String()
		}
	case *parser.ConstantInteger:
		return fmt.Sprintf("%d", int32(v.Bytes))
	case *parser.ConstantFloat:
		return fmt.Sprintf("%gf", math.Float32frombits(uint32(v.Bytes)))
	case *parser.ConstantLong:
		return fmt.Sprintf("%dL", int64(v.HighBytes)<<32|int64(v.LowBytes))
	case *parser.ConstantUtf8:
		return v.String()
	case *parser.ConstantInvokeDynamic:
		return fmt.Sprintf("InvokeDynamic #%d:%s", v.BootstrapMethodAttrIndex, resolveConstantRef(cp, int(v.NameAndTypeIndex)))
	}
	return fmt.Sprintf("#%d", index)
}

func resolveRef(cp *parser.ConstantPool, classIndex, natIndex uint16) string {
	className, err := cp.GetClassName(classIndex)
	if err != nil {
		className = fmt.Sprintf("#%d", classIndex)
	}
	if int(natIndex) < 1 || int(natIndex) > len(cp.Constants) {
		return className + ".?"
	}
	nat, ok := cp.Constants[natIndex-1].(*parser.ConstantNameAndType)
	if !ok {
		return fmt.Sprintf("%s.#%d", className, natIndex)
	}
	name := cp.LookupUtf8(nat.NameIndex)
	desc := cp.LookupUtf8(nat.DescriptorIndex)
	if name != nil && desc != nil {
		return className + "." + name.String() + ":" + desc.String()
	}
	return className + ".?"
}
