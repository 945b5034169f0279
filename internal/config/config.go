// Package config 读取与保存 jvmasm 工具配置
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tangzhangming/jvmasm/internal/jvmgen"
	"github.com/tangzhangming/jvmasm/internal/logger"
	"gopkg.in/yaml.v3"
)

// 配置文件名
const (
	ConfigFileName     = "jvmasm.toml"
	YAMLConfigFileName = "jvmasm.yaml"
)

// 计算模式
const (
	ComputeNothing = "nothing"
	ComputeMaxs    = "maxs"
	ComputeFrames  = "frames"
)

// Config 工具配置
type Config struct {
	// OutputDir .class 文件输出目录
	OutputDir string `toml:"output_dir" yaml:"output_dir"`

	// Compute 计算模式：nothing, maxs, frames
	Compute string `toml:"compute" yaml:"compute"`

	LogLevel    string `toml:"log_level" yaml:"log_level"`
	Development bool   `toml:"development" yaml:"development"`

	// Interfaces 帧计算时当作接口的类型
	Interfaces []string `toml:"interfaces" yaml:"interfaces"`

	// Hierarchy 类内部名 -> 父类内部名，补充内置的 JDK 类层次
	Hierarchy map[string]string `toml:"hierarchy" yaml:"hierarchy"`
}

// Default 默认配置
func Default() *Config {
	return &Config{
		OutputDir: ".",
		Compute:   ComputeFrames,
		LogLevel:  "warn",
	}
}

// isYAML 按扩展名判断格式
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig 从文件加载配置，.yaml/.yml 按 YAML 解析，其余按 TOML 解析
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = toml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if _, err := c.Flags(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for name, super := range c.Hierarchy {
		if name == "" || super == "" {
			return fmt.Errorf("hierarchy entry %q = %q is incomplete", name, super)
		}
	}
	return nil
}

// Flags 把计算模式转换为 ClassWriter 标志
func (c *Config) Flags() (int, error) {
	switch strings.ToLower(c.Compute) {
	case "", ComputeNothing:
		return 0, nil
	case ComputeMaxs:
		return jvmgen.ComputeMaxsFlag, nil
	case ComputeFrames:
		return jvmgen.ComputeFramesFlag, nil
	}
	return 0, fmt.Errorf("unknown compute mode %q", c.Compute)
}

// ClassHierarchy 返回内置 JDK 类层次叠加配置中的条目
func (c *Config) ClassHierarchy() *jvmgen.HierarchyMap {
	h := jvmgen.NewJDKHierarchy()
	for _, name := range c.Interfaces {
		h.AddInterface(name)
	}
	for name, super := range c.Hierarchy {
		h.Add(name, super)
	}
	return h
}

// LoggerConfig 返回日志配置
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{Level: c.LogLevel, Development: c.Development}
}

// Options 返回 ClassWriter 选项
func (c *Config) Options() []jvmgen.Option {
	return []jvmgen.Option{jvmgen.WithClassHierarchy(c.ClassHierarchy())}
}

// Save 保存配置到文件
func (c *Config) Save(path string) error {
	var data []byte
	if isYAML(path) {
		out, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = out
	} else {
		data = []byte(generateConfigWithComments(c))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// generateConfigWithComments 生成带注释的 TOML 配置
func generateConfigWithComments(c *Config) string {
	var sb strings.Builder

	sb.WriteString("# .class 文件输出目录\n")
	sb.WriteString(fmt.Sprintf("output_dir = %q\n\n", c.OutputDir))
	sb.WriteString("# 计算模式：nothing, maxs, frames\n")
	sb.WriteString(fmt.Sprintf("compute = %q\n\n", c.Compute))
	sb.WriteString("# 日志级别：debug, info, warn, error\n")
	sb.WriteString(fmt.Sprintf("log_level = %q\n", c.LogLevel))
	sb.WriteString(fmt.Sprintf("development = %t\n\n", c.Development))

	sb.WriteString("# 帧计算时当作接口的类型\n")
	sb.WriteString("interfaces = [")
	for i, name := range c.Interfaces {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%q", name))
	}
	sb.WriteString("]\n\n")

	sb.WriteString("# 类内部名 = 父类内部名\n")
	sb.WriteString("[hierarchy]\n")
	names := make([]string, 0, len(c.Hierarchy))
	for name := range c.Hierarchy {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%q = %q\n", name, c.Hierarchy[name]))
	}

	return sb.String()
}

// FindConfigFile 从指定路径向上查找配置文件
// 返回配置文件的完整路径，如果找不到则返回空字符串
func FindConfigFile(startPath string) string {
	info, err := os.Stat(startPath)
	if err != nil {
		return ""
	}

	dir := startPath
	if !info.IsDir() {
		dir = filepath.Dir(startPath)
	}
	dir, err = filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
