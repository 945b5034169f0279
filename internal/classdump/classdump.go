// Package classdump 解码类文件并生成摘要
package classdump

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/segmentio/encoding/json"
	parser "github.com/wreulicke/classfile-parser"
	"golang.org/x/crypto/blake2b"
)

// Summary 类文件摘要
type Summary struct {
	MajorVersion int      `json:"majorVersion"`
	MinorVersion int      `json:"minorVersion"`
	AccessFlags  []string `json:"accessFlags"`
	Name         string   `json:"name"`
	Super        string   `json:"super,omitempty"`
	Interfaces   []string `json:"interfaces"`
	SourceFile   string   `json:"sourceFile,omitempty"`
	Signature    string   `json:"signature,omitempty"`
	Deprecated   bool     `json:"deprecated,omitempty"`

	// PoolCount constant_pool_count，比实际条目数多 1
	PoolCount int `json:"poolCount"`

	Size   int    `json:"size"`
	Digest string `json:"digest"` // BLAKE2b-256，十六进制

	Fields  []Field  `json:"fields"`
	Methods []Method `json:"methods"`
}

// Field 字段摘要
type Field struct {
	AccessFlags []string `json:"accessFlags"`
	Name        string   `json:"name"`
	Descriptor  string   `json:"descriptor"`
	Signature   string   `json:"signature,omitempty"`
}

// Method 方法摘要
type Method struct {
	AccessFlags []string `json:"accessFlags"`
	Name        string   `json:"name"`
	Descriptor  string   `json:"descriptor"`
	Signature   string   `json:"signature,omitempty"`
	Exceptions  []string `json:"exceptions,omitempty"`
	MaxStack    int      `json:"maxStack"`
	MaxLocals   int      `json:"maxLocals"`
	CodeLength  int      `json:"codeLength"`
	Code        []string `json:"code,omitempty"`
}

// Digest 返回类文件内容的 BLAKE2b-256 摘要
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Summarize 解码类文件
func Summarize(data []byte) (*Summary, error) {
	cf, err := parser.New(bytes.NewReader(data)).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse class file: %w", err)
	}
	cp := cf.ConstantPool

	s := &Summary{
		MajorVersion: int(cf.MajorVersion),
		MinorVersion: int(cf.MinorVersion),
		AccessFlags:  classAccessFlags(cf.AccessFlags),
		Interfaces:   make([]string, 0, len(cf.Interfaces)),
		PoolCount:    len(cp.Constants) + 1,
		Size:         len(data),
		Digest:       Digest(data),
		Fields:       make([]Field, 0, len(cf.Fields)),
		Methods:      make([]Method, 0, len(cf.Methods)),
		Deprecated:   cf.Deprecated() != nil,
	}
	if s.Name, err = cf.ThisClassName(); err != nil {
		return nil, fmt.Errorf("failed to resolve class name: %w", err)
	}
	if cf.SuperClass != 0 {
		if s.Super, err = cf.SuperClassName(); err != nil {
			return nil, fmt.Errorf("failed to resolve super class: %w", err)
		}
	}
	for _, idx := range cf.Interfaces {
		name, err := cp.GetClassName(idx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve interface: %w", err)
		}
		s.Interfaces = append(s.Interfaces, name)
	}
	if sf := cf.SourceFile(); sf != nil {
		if utf8 := cp.LookupUtf8(sf.SourcefileIndex); utf8 != nil {
			s.SourceFile = utf8.String()
		}
	}
	if sig := cf.Signature(); sig != nil {
		if utf8 := cp.LookupUtf8(sig.Signature); utf8 != nil {
			s.Signature = utf8.String()
		}
	}

	for _, f := range cf.Fields {
		name, _ := f.Name(cp)
		desc, _ := f.Descriptor(cp)
		fi := Field{
			AccessFlags: fieldAccessFlags(f.AccessFlags),
			Name:        name,
			Descriptor:  desc,
		}
		if sig := f.Signature(); sig != nil {
			if utf8 := cp.LookupUtf8(sig.Signature); utf8 != nil {
				fi.Signature = utf8.String()
			}
		}
		s.Fields = append(s.Fields, fi)
	}

	for _, m := range cf.Methods {
		name, _ := m.Name(cp)
		desc, _ := m.Descriptor(cp)
		mi := Method{
			AccessFlags: methodAccessFlags(m.AccessFlags),
			Name:        name,
			Descriptor:  desc,
		}
		if exc := m.Exceptions(); exc != nil {
			for _, idx := range exc.ExceptionIndexes {
				if e, err := cp.GetClassName(idx); err == nil {
					mi.Exceptions = append(mi.Exceptions, e)
				}
			}
		}
		if sig := m.Signature(); sig != nil {
			if utf8 := cp.LookupUtf8(sig.Signature); utf8 != nil {
				mi.Signature = utf8.String()
			}
		}
		if code := m.Code(); code != nil {
			mi.MaxStack = int(code.MaxStack)
			mi.MaxLocals = int(code.MaxLocals)
			mi.CodeLength = len(code.Codes)
			mi.Code = disassemble(code.Codes, cp)
		}
		s.Methods = append(s.Methods, mi)
	}
	return s, nil
}

// ToJSON 把摘要编码为缩进的 JSON
func (s *Summary) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return data, nil
}

// WriteText 以文本形式输出摘要
func (s *Summary) WriteText(w io.Writer) {
	fmt.Fprintf(w, "class %s (version %d.%d, %d bytes)\n", s.Name, s.MajorVersion, s.MinorVersion, s.Size)
	fmt.Fprintf(w, "  access:     %s\n", strings.Join(s.AccessFlags, " "))
	if s.Super != "" {
		fmt.Fprintf(w, "  super:      %s\n", s.Super)
	}
	if len(s.Interfaces) > 0 {
		fmt.Fprintf(w, "  interfaces: %s\n", strings.Join(s.Interfaces, ", "))
	}
	if s.SourceFile != "" {
		fmt.Fprintf(w, "  source:     %s\n", s.SourceFile)
	}
	fmt.Fprintf(w, "  pool:       %d\n", s.PoolCount)
	fmt.Fprintf(w, "  blake2b:    %s\n", s.Digest)

	for _, f := range s.Fields {
		fmt.Fprintf(w, "\n  field %s %s [%s]\n", f.Name, f.Descriptor, strings.Join(f.AccessFlags, " "))
	}
	for _, m := range s.Methods {
		fmt.Fprintf(w, "\n  method %s%s [%s]\n", m.Name, m.Descriptor, strings.Join(m.AccessFlags, " "))
		if len(m.Exceptions) > 0 {
			fmt.Fprintf(w, "    throws %s\n", strings.Join(m.Exceptions, ", "))
		}
		if m.Code == nil {
			continue
		}
		fmt.Fprintf(w, "    stack=%d locals=%d length=%d\n", m.MaxStack, m.MaxLocals, m.CodeLength)
		for _, line := range m.Code {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}

func classAccessFlags(flags parser.AccessFlags) []string {
	result := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		result = append(result, "public")
	}
	if flags.Is(parser.ACC_FINAL) {
		result = append(result, "final")
	}
	if flags.Is(parser.ACC_SUPER) {
		result = append(result, "super")
	}
	if flags.Is(0x0200) {
		result = append(result, "interface")
	}
	if flags.Is(parser.ACC_ABSTRACT) {
		result = append(result, "abstract")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		result = append(result, "synthetic")
	}
	if flags.Is(parser.ACC_ANNOTATION) {
		result = append(result, "annotation")
	}
	if flags.Is(parser.ACC_ENUM) {
		result = append(result, "enum")
	}
	return result
}

func fieldAccessFlags(flags parser.AccessFlags) []string {
	result := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		result = append(result, "public")
	}
	if flags.Is(parser.ACC_PRIVATE) {
		result = append(result, "private")
	}
	if flags.Is(parser.ACC_PROTECTED) {
		result = append(result, "protected")
	}
	if flags.Is(parser.ACC_STATIC) {
		result = append(result, "static")
	}
	if flags.Is(parser.ACC_FINAL) {
		result = append(result, "final")
	}
	if flags.Is(parser.ACC_VOLATILE) {
		result = append(result, "volatile")
	}
	if flags.Is(parser.ACC_TRANSIENT) {
		result = append(result, "transient")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		result = append(result, "synthetic")
	}
	if flags.Is(parser.ACC_ENUM) {
		result = append(result, "enum")
	}
	return result
}

func methodAccessFlags(flags parser.AccessFlags) []string {
	result := make([]string, 0)
	if flags.Is(parser.ACC_PUBLIC) {
		result = append(result, "public")
	}
	if flags.Is(parser.ACC_PRIVATE) {
		result = append(result, "private")
	}
	if flags.Is(parser.ACC_PROTECTED) {
		result = append(result, "protected")
	}
	if flags.Is(parser.ACC_STATIC) {
		result = append(result, "static")
	}
	if flags.Is(parser.ACC_FINAL) {
		result = append(result, "final")
	}
	if flags.Is(parser.ACC_SYNCHRONIZED) {
		result = append(result, "synchronized")
	}
	if flags.Is(parser.ACC_BRIDGE) {
		result = append(result, "bridge")
	}
	if flags.Is(parser.ACC_VARARGS) {
		result = append(result, "varargs")
	}
	if flags.Is(parser.ACC_NATIVE) {
		result = append(result, "native")
	}
	if flags.Is(parser.ACC_ABSTRACT) {
		result = append(result, "abstract")
	}
	if flags.Is(parser.ACC_STRICT) {
		result = append(result, "strict")
	}
	if flags.Is(parser.ACC_SYNTHETIC) {
		result = append(result, "synthetic")
	}
	return result
}
