package asmfile

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tangzhangming/jvmasm/internal/i18n"
	"github.com/tangzhangming/jvmasm/internal/jvmgen"
	"go.uber.org/multierr"
)

// 指令清单错误的分类
var (
	ErrUnknownInstruction = stderrors.New("unknown instruction")
	ErrBadOperand         = stderrors.New("bad operand")
	ErrUndefinedLabel     = stderrors.New("undefined label")
)

// LineError 指令清单中某一行的错误
type LineError struct {
	Method string // 方法名与描述符
	Line   int    // 清单中的行号，从 1 开始
	Err    error  // 错误分类
	msg    string
}

func (e *LineError) Error() string { return e.msg }

// Unwrap 返回错误分类
func (e *LineError) Unwrap() error { return e.Err }

// step 一条已解析的指令，对方法访问者发出对应事件
type step func(mv jvmgen.MethodVisitor)

// listing 一个方法的解析结果
type listing struct {
	steps     []step
	maxStack  int
	maxLocals int
}

// listingParser 解析单个方法的指令清单
type listingParser struct {
	method string
	line   int
	labels map[string]*jvmgen.Label
	errs   error
}

func (p *listingParser) fail(cause error, msgID string, args ...interface{}) {
	args = append([]interface{}{p.method, p.line}, args...)
	p.errs = multierr.Append(p.errs, &LineError{
		Method: p.method,
		Line:   p.line,
		Err:    cause,
		msg:    i18n.T(msgID, args...),
	})
}

func (p *listingParser) badOperand(format string, args ...interface{}) {
	p.fail(ErrBadOperand, i18n.ErrSourceOperand, fmt.Sprintf(format, args...))
}

// parseListing 解析指令清单；所有错误一并返回
func parseListing(method, code string) (*listing, error) {
	lines := strings.Split(code, "\n")
	p := &listingParser{method: method, labels: make(map[string]*jvmgen.Label)}

	// 第一遍收集标签定义，允许前向引用
	for i, raw := range lines {
		p.line = i + 1
		toks, err := tokenize(raw)
		if err != nil || len(toks) == 0 {
			continue
		}
		name, ok := labelDef(toks)
		if !ok {
			continue
		}
		if _, dup := p.labels[name]; dup {
			p.badOperand("label %s defined twice", name)
			continue
		}
		p.labels[name] = jvmgen.NewLabel()
	}

	l := &listing{}
	for i, raw := range lines {
		p.line = i + 1
		toks, err := tokenize(raw)
		if err != nil {
			p.badOperand("%v", err)
			continue
		}
		if len(toks) == 0 {
			continue
		}
		if name, ok := labelDef(toks); ok {
			lbl := p.labels[name]
			l.steps = append(l.steps, func(mv jvmgen.MethodVisitor) { mv.VisitLabel(lbl) })
			continue
		}
		if s := p.parseLine(l, toks); s != nil {
			l.steps = append(l.steps, s)
		}
	}
	return l, p.errs
}

// labelDef 识别 "label L0" 与 "L0:" 两种标签写法
func labelDef(toks []string) (string, bool) {
	if len(toks) == 2 && strings.ToLower(toks[0]) == "label" {
		return toks[1], true
	}
	if len(toks) == 1 && len(toks[0]) > 1 && strings.HasSuffix(toks[0], ":") {
		return strings.TrimSuffix(toks[0], ":"), true
	}
	return "", false
}

// tokenize 按空白切分一行，双引号字符串保持为一个词；# ; // 开头的行是注释
func tokenize(line string) ([]string, error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' || line[0] == ';' || strings.HasPrefix(line, "//") {
		return nil, nil
	}
	var toks []string
	for {
		line = strings.TrimLeft(line, " \t\r")
		if line == "" {
			return toks, nil
		}
		if line[0] == '"' {
			q, err := strconv.QuotedPrefix(line)
			if err != nil {
				return nil, fmt.Errorf("bad string literal %s", line)
			}
			toks = append(toks, q)
			line = line[len(q):]
			continue
		}
		end := strings.IndexAny(line, " \t\r")
		if end < 0 {
			end = len(line)
		}
		toks = append(toks, line[:end])
		line = line[end:]
	}
}

// parseLine 解析一条指令或伪指令
func (p *listingParser) parseLine(l *listing, toks []string) step {
	name := strings.ToLower(toks[0])
	args := toks[1:]

	switch name {
	case "maxs":
		if !p.arity(args, 2) {
			return nil
		}
		stack, ok1 := p.integer(args[0], 0, 0xFFFF)
		locals, ok2 := p.integer(args[1], 0, 0xFFFF)
		if ok1 && ok2 {
			l.maxStack, l.maxLocals = stack, locals
		}
		return nil
	case "line":
		if !p.arity(args, 2) {
			return nil
		}
		n, ok := p.integer(args[0], 0, 0xFFFF)
		lbl := p.label(args[1])
		if !ok || lbl == nil {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitLineNumber(n, lbl) }
	case "trycatch":
		if len(args) != 3 && len(args) != 4 {
			p.badOperand("trycatch takes start, end, handler and an optional type")
			return nil
		}
		start, end, handler := p.label(args[0]), p.label(args[1]), p.label(args[2])
		typ := ""
		if len(args) == 4 {
			typ = args[3]
		}
		if start == nil || end == nil || handler == nil {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitTryCatchBlock(start, end, handler, typ) }
	case "local":
		if len(args) != 5 && len(args) != 6 {
			p.badOperand("local takes name, desc, start, end, index and an optional signature")
			return nil
		}
		start, end := p.label(args[2]), p.label(args[3])
		index, ok := p.integer(args[4], 0, 0xFFFF)
		sig := ""
		if len(args) == 6 {
			sig = args[5]
		}
		if start == nil || end == nil || !ok {
			return nil
		}
		lname, desc := args[0], args[1]
		return func(mv jvmgen.MethodVisitor) { mv.VisitLocalVariable(lname, desc, sig, start, end, index) }
	}

	op, ok := jvmgen.LookupOpcode(name)
	if !ok {
		p.fail(ErrUnknownInstruction, i18n.ErrSourceInsn, toks[0])
		return nil
	}
	return p.parseInsn(op, args)
}

// parseInsn 按操作码的操作数形式解析
func (p *listingParser) parseInsn(op int, args []string) step {
	switch {
	case op == jvmgen.OpBipush || op == jvmgen.OpSipush:
		if !p.arity(args, 1) {
			return nil
		}
		lo, hi := -128, 127
		if op == jvmgen.OpSipush {
			lo, hi = -32768, 32767
		}
		n, ok := p.integer(args[0], lo, hi)
		if !ok {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitIntInsn(op, n) }

	case op == jvmgen.OpNewarray:
		if !p.arity(args, 1) {
			return nil
		}
		t, ok := arrayTypes[strings.ToLower(args[0])]
		if !ok {
			p.badOperand("unknown primitive array type %q", args[0])
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitIntInsn(op, t) }

	case op >= jvmgen.OpIload && op <= jvmgen.OpAload,
		op >= jvmgen.OpIstore && op <= jvmgen.OpAstore,
		op == jvmgen.OpRet:
		if !p.arity(args, 1) {
			return nil
		}
		n, ok := p.integer(args[0], 0, 0xFFFF)
		if !ok {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitVarInsn(op, n) }

	case op == jvmgen.OpNew, op == jvmgen.OpAnewarray,
		op == jvmgen.OpCheckcast, op == jvmgen.OpInstanceof:
		if !p.arity(args, 1) {
			return nil
		}
		typ := args[0]
		return func(mv jvmgen.MethodVisitor) { mv.VisitTypeInsn(op, typ) }

	case op >= jvmgen.OpGetstatic && op <= jvmgen.OpPutfield:
		if !p.arity(args, 3) {
			return nil
		}
		owner, name, desc := args[0], args[1], args[2]
		return func(mv jvmgen.MethodVisitor) { mv.VisitFieldInsn(op, owner, name, desc) }

	case op >= jvmgen.OpInvokevirtual && op <= jvmgen.OpInvokeinterface:
		if len(args) != 3 && !(len(args) == 4 && args[3] == "itf") {
			p.badOperand("%s takes owner, name, desc and an optional itf", jvmgen.OpcodeName(op))
			return nil
		}
		owner, name, desc := args[0], args[1], args[2]
		itf := op == jvmgen.OpInvokeinterface || len(args) == 4
		return func(mv jvmgen.MethodVisitor) { mv.VisitMethodInsn(op, owner, name, desc, itf) }

	case op == jvmgen.OpInvokedynamic:
		return p.parseInvokeDynamic(args)

	case op >= jvmgen.OpIfeq && op <= jvmgen.OpJsr,
		op == jvmgen.OpIfnull || op == jvmgen.OpIfnonnull:
		if !p.arity(args, 1) {
			return nil
		}
		lbl := p.label(args[0])
		if lbl == nil {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitJumpInsn(op, lbl) }

	case op == jvmgen.OpLdc:
		v, ok := p.constant(args)
		if !ok {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitLdcInsn(v) }

	case op == jvmgen.OpIinc:
		if !p.arity(args, 2) {
			return nil
		}
		v, ok1 := p.integer(args[0], 0, 0xFFFF)
		incr, ok2 := p.integer(args[1], -32768, 32767)
		if !ok1 || !ok2 {
			return nil
		}
		return func(mv jvmgen.MethodVisitor) { mv.VisitIincInsn(v, incr) }

	case op == jvmgen.OpTableswitch:
		return p.parseTableSwitch(args)

	case op == jvmgen.OpLookupswitch:
		return p.parseLookupSwitch(args)

	case op == jvmgen.OpMultianewarray:
		if !p.arity(args, 2) {
			return nil
		}
		dims, ok := p.integer(args[1], 1, 255)
		if !ok {
			return nil
		}
		desc := args[0]
		return func(mv jvmgen.MethodVisitor) { mv.VisitMultiANewArrayInsn(desc, dims) }
	}

	if !p.arity(args, 0) {
		return nil
	}
	return func(mv jvmgen.MethodVisitor) { mv.VisitInsn(op) }
}

// parseTableSwitch tableswitch min max dflt L...
func (p *listingParser) parseTableSwitch(args []string) step {
	if len(args) < 3 {
		p.badOperand("tableswitch takes min, max, default label and case labels")
		return nil
	}
	lo, ok1 := p.integer(args[0], -1<<31, 1<<31-1)
	hi, ok2 := p.integer(args[1], -1<<31, 1<<31-1)
	if !ok1 || !ok2 {
		return nil
	}
	if hi < lo || hi-lo+1 != len(args)-3 {
		p.badOperand("tableswitch %d..%d needs %d case labels, got %d", lo, hi, hi-lo+1, len(args)-3)
		return nil
	}
	dflt := p.label(args[2])
	cases := make([]*jvmgen.Label, 0, len(args)-3)
	for _, a := range args[3:] {
		cases = append(cases, p.label(a))
	}
	if dflt == nil || hasNil(cases) {
		return nil
	}
	return func(mv jvmgen.MethodVisitor) { mv.VisitTableSwitchInsn(lo, hi, dflt, cases...) }
}

// parseLookupSwitch lookupswitch dflt key:L ...
func (p *listingParser) parseLookupSwitch(args []string) step {
	if len(args) < 1 {
		p.badOperand("lookupswitch takes a default label and key:label pairs")
		return nil
	}
	dflt := p.label(args[0])
	keys := make([]int, 0, len(args)-1)
	cases := make([]*jvmgen.Label, 0, len(args)-1)
	for _, a := range args[1:] {
		k, l, found := strings.Cut(a, ":")
		if !found {
			p.badOperand("lookupswitch case %q is not key:label", a)
			return nil
		}
		key, ok := p.integer(k, -1<<31, 1<<31-1)
		if !ok {
			return nil
		}
		if len(keys) > 0 && key <= keys[len(keys)-1] {
			p.badOperand("lookupswitch keys must be increasing")
			return nil
		}
		keys = append(keys, key)
		cases = append(cases, p.label(l))
	}
	if dflt == nil || hasNil(cases) {
		return nil
	}
	return func(mv jvmgen.MethodVisitor) { mv.VisitLookupSwitchInsn(dflt, keys, cases) }
}

// parseInvokeDynamic invokedynamic name desc kind owner bsmName bsmDesc [args...]
func (p *listingParser) parseInvokeDynamic(args []string) step {
	if len(args) < 6 {
		p.badOperand("invokedynamic takes name, desc and a bootstrap handle kind, owner, name, desc")
		return nil
	}
	tag, ok := handleKinds[strings.ToLower(args[2])]
	if !ok {
		p.badOperand("unknown handle kind %q", args[2])
		return nil
	}
	bsm := jvmgen.NewHandle(tag, args[3], args[4], args[5], false)
	var bsmArgs []any
	for rest := args[6:]; len(rest) > 0; {
		n := 1
		if rest[0] == "class" || rest[0] == "methodtype" {
			n = 2
		}
		if len(rest) < n {
			p.badOperand("missing operand after %s", rest[0])
			return nil
		}
		v, ok := p.constant(rest[:n])
		if !ok {
			return nil
		}
		bsmArgs = append(bsmArgs, v)
		rest = rest[n:]
	}
	name, desc := args[0], args[1]
	return func(mv jvmgen.MethodVisitor) { mv.VisitInvokeDynamicInsn(name, desc, bsm, bsmArgs...) }
}

// constant 解析 ldc 常量：
//
//	"text"  123  123L  1.5f  2.5  class java/lang/String  methodtype (I)V
func (p *listingParser) constant(args []string) (any, bool) {
	switch {
	case len(args) == 2 && args[0] == "class":
		return jvmgen.GetObjectType(args[1]), true
	case len(args) == 2 && args[0] == "methodtype":
		return jvmgen.GetMethodType(args[1]), true
	case len(args) != 1:
		p.badOperand("ldc takes one constant")
		return nil, false
	}

	s := args[0]
	if s[0] == '"' {
		v, err := strconv.Unquote(s)
		if err != nil {
			p.badOperand("bad string literal %s", s)
			return nil, false
		}
		return v, true
	}
	if n, ok := strings.CutSuffix(s, "L"); ok {
		if v, err := strconv.ParseInt(n, 0, 64); err == nil {
			return v, true
		}
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		if v < -1<<31 || v > 1<<31-1 {
			p.badOperand("%s does not fit in an int, use %sL", s, s)
			return nil, false
		}
		return int32(v), true
	}
	if f, ok := strings.CutSuffix(strings.ToLower(s), "f"); ok && !strings.HasPrefix(f, "0x") {
		if v, err := strconv.ParseFloat(f, 32); err == nil {
			return float32(v), true
		}
	}
	if v, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(s), "d"), 64); err == nil {
		return v, true
	}
	p.badOperand("bad constant %s", s)
	return nil, false
}

func (p *listingParser) arity(args []string, n int) bool {
	if len(args) != n {
		p.badOperand("expected %d operands, got %d", n, len(args))
		return false
	}
	return true
}

func (p *listingParser) integer(s string, lo, hi int) (int, bool) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil || v < int64(lo) || v > int64(hi) {
		p.badOperand("%s is not an integer in [%d, %d]", s, lo, hi)
		return 0, false
	}
	return int(v), true
}

func (p *listingParser) label(name string) *jvmgen.Label {
	if l, ok := p.labels[name]; ok {
		return l
	}
	p.fail(ErrUndefinedLabel, i18n.ErrSourceNoLabel, name)
	return nil
}

func hasNil(labels []*jvmgen.Label) bool {
	for _, l := range labels {
		if l == nil {
			return true
		}
	}
	return false
}

// arrayTypes newarray 的元素类型名
var arrayTypes = map[string]int{
	"boolean": jvmgen.TBoolean,
	"char":    jvmgen.TChar,
	"float":   jvmgen.TFloat,
	"double":  jvmgen.TDouble,
	"byte":    jvmgen.TByte,
	"short":   jvmgen.TShort,
	"int":     jvmgen.TInt,
	"long":    jvmgen.TLong,
}

// handleKinds 方法句柄种类名
var handleKinds = map[string]int{
	"getfield":         jvmgen.HGetField,
	"getstatic":        jvmgen.HGetStatic,
	"putfield":         jvmgen.HPutField,
	"putstatic":        jvmgen.HPutStatic,
	"invokevirtual":    jvmgen.HInvokeVirtual,
	"invokestatic":     jvmgen.HInvokeStatic,
	"invokespecial":    jvmgen.HInvokeSpecial,
	"newinvokespecial": jvmgen.HNewInvokeSpecial,
	"invokeinterface":  jvmgen.HInvokeInterface,
}
