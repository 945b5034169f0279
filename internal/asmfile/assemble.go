package asmfile

import (
	stderrors "errors"
	"fmt"

	"github.com/tangzhangming/jvmasm/internal/i18n"
	"github.com/tangzhangming/jvmasm/internal/jvmgen"
	"go.uber.org/multierr"
)

// compiled 校验通过的类声明
type compiled struct {
	def     *ClassDef
	version int
	access  int
	fields  []compiledField
	methods []compiledMethod
}

type compiledField struct {
	def    *FieldDef
	access int
	value  any
}

type compiledMethod struct {
	def    *MethodDef
	access int
	code   *listing
}

// Validate 检查类声明并解析所有指令清单，返回全部错误
func Validate(def *ClassDef) error {
	_, err := compile(def)
	return err
}

func compile(def *ClassDef) (*compiled, error) {
	var errs error
	c := &compiled{def: def}

	if def.Name == "" {
		errs = multierr.Append(errs, stderrors.New(i18n.T(i18n.ErrSourceNoName)))
	}
	var err error
	if c.version, err = classVersion(def.Version); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.access, err = parseAccess(def.Access); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("class %s: %w", def.Name, err))
	}

	for i := range def.Fields {
		f := &def.Fields[i]
		cf := compiledField{def: f}
		if f.Name == "" || f.Desc == "" {
			errs = multierr.Append(errs, fmt.Errorf("field #%d: name and desc are required", i))
		}
		if cf.access, err = parseAccess(f.Access); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("field %s: %w", f.Name, err))
		}
		if cf.value, err = fieldValue(f.Desc, f.Value); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("field %s: %w", f.Name, err))
		}
		c.fields = append(c.fields, cf)
	}

	for i := range def.Methods {
		m := &def.Methods[i]
		cm := compiledMethod{def: m}
		if m.Name == "" || m.Desc == "" {
			errs = multierr.Append(errs, fmt.Errorf("method #%d: name and desc are required", i))
		}
		if cm.access, err = parseAccess(m.Access); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("method %s%s: %w", m.Name, m.Desc, err))
		}
		if m.Code != "" {
			if cm.code, err = parseListing(m.Name+m.Desc, m.Code); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		c.methods = append(c.methods, cm)
	}

	if errs != nil {
		return nil, errs
	}
	return c, nil
}

// Emit 把类声明作为访问事件发给 cv
func Emit(def *ClassDef, cv jvmgen.ClassVisitor) error {
	c, err := compile(def)
	if err != nil {
		return err
	}
	c.emit(cv)
	return nil
}

func (c *compiled) emit(cv jvmgen.ClassVisitor) {
	def := c.def
	cv.Visit(c.version, c.access, def.Name, def.Signature, c.superName(), def.Interfaces)
	if def.Source != "" {
		cv.VisitSource(def.Source, "")
	}

	for _, f := range c.fields {
		fv := cv.VisitField(f.access, f.def.Name, f.def.Desc, f.def.Signature, f.value)
		fv.VisitEnd()
	}

	for _, m := range c.methods {
		mv := cv.VisitMethod(m.access, m.def.Name, m.def.Desc, m.def.Signature, m.def.Exceptions)
		if m.code != nil {
			mv.VisitCode()
			for _, s := range m.code.steps {
				s(mv)
			}
			mv.VisitMaxs(m.code.maxStack, m.code.maxLocals)
		}
		mv.VisitEnd()
	}
	cv.VisitEnd()
}

// superName 未声明父类时默认 java/lang/Object
func (c *compiled) superName() string {
	if c.def.Super == "" && c.def.Name != "java/lang/Object" {
		return "java/lang/Object"
	}
	return c.def.Super
}

// Assemble 用新的 ClassWriter 汇编类声明
//
// 类本身会登记到 opts 给出的类层次中，帧计算可以合并 this 与其他类型。
func Assemble(def *ClassDef, flags int, opts ...jvmgen.Option) ([]byte, error) {
	c, err := compile(def)
	if err != nil {
		return nil, err
	}
	opts = append(opts[:len(opts):len(opts)],
		jvmgen.WithDefinedClass(def.Name, c.superName(), c.access&jvmgen.AccInterface != 0))
	cw := jvmgen.NewClassWriter(flags, opts...)
	c.emit(cw)
	return cw.ToByteArray()
}
