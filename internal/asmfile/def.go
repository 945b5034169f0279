// Package asmfile 读取声明式的类源文件（TOML 或 YAML）并汇编成类文件
package asmfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tangzhangming/jvmasm/internal/i18n"
	"gopkg.in/yaml.v3"
)

// 类源文件格式
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// ClassDef 一个类的声明
type ClassDef struct {
	// Version 主版本号，45 (JDK 1.1) 到 52 (Java 8)，为 0 时使用 52
	Version int `toml:"version" yaml:"version"`

	Access     []string `toml:"access" yaml:"access"`
	Name       string   `toml:"name" yaml:"name"`
	Signature  string   `toml:"signature" yaml:"signature"`
	Super      string   `toml:"super" yaml:"super"`
	Interfaces []string `toml:"interfaces" yaml:"interfaces"`

	// Source 源文件名，写成 SourceFile 属性
	Source string `toml:"source" yaml:"source"`

	Fields  []FieldDef  `toml:"fields" yaml:"fields"`
	Methods []MethodDef `toml:"methods" yaml:"methods"`
}

// FieldDef 字段声明
type FieldDef struct {
	Access    []string `toml:"access" yaml:"access"`
	Name      string   `toml:"name" yaml:"name"`
	Desc      string   `toml:"desc" yaml:"desc"`
	Signature string   `toml:"signature" yaml:"signature"`

	// Value 常量值，按 Desc 转换成 int/long/float/double/String
	Value any `toml:"value" yaml:"value"`
}

// MethodDef 方法声明
type MethodDef struct {
	Access     []string `toml:"access" yaml:"access"`
	Name       string   `toml:"name" yaml:"name"`
	Desc       string   `toml:"desc" yaml:"desc"`
	Signature  string   `toml:"signature" yaml:"signature"`
	Exceptions []string `toml:"exceptions" yaml:"exceptions"`

	// Code 指令清单，每行一条指令或伪指令，为空表示没有 Code 属性
	Code string `toml:"code" yaml:"code"`
}

// FormatOf 按扩展名判断格式
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%s", i18n.T(i18n.ErrSourceFormat, filepath.Ext(path)))
}

// Load 从文件读取类声明
func Load(path string) (*ClassDef, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read class source: %w", err)
	}
	def, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse 解析类声明，未知的键视为错误
func Parse(data []byte, format string) (*ClassDef, error) {
	var def ClassDef
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("failed to parse class source: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("failed to parse class source: %w", err)
		}
	default:
		return nil, fmt.Errorf("%s", i18n.T(i18n.ErrSourceFormat, format))
	}
	return &def, nil
}

// OutputPath 返回类文件在 dir 下的路径，包名对应子目录
func (d *ClassDef) OutputPath(dir string) string {
	return filepath.Join(dir, filepath.FromSlash(d.Name)+".class")
}
