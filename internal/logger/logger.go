// Package logger 构建 jvmasm 使用的 zap 日志记录器
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugEnv 强制开启调试日志的环境变量
const DebugEnv = "JVMASM_DEBUG"

// Config 日志配置
type Config struct {
	Level       string // debug, info, warn, error；为空时为 warn
	Development bool   // 开发模式使用彩色控制台输出
	File        string // 日志文件路径，为空时只输出到 stderr
}

// DebugEnabled 检查环境变量是否要求调试日志
func DebugEnabled() bool {
	switch strings.ToLower(os.Getenv(DebugEnv)) {
	case "1", "true", "on":
		return true
	}
	return false
}

// ParseLevel 解析日志级别
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.WarnLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// New 按配置创建日志记录器
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if DebugEnabled() {
		lvl = zapcore.DebugLevel
	}

	var zc zap.Config
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zc = zap.NewProductionConfig()
		zc.Sampling = nil
		zc.EncoderConfig.TimeKey = "time"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	if cfg.File != "" {
		zc.OutputPaths = append(zc.OutputPaths, cfg.File)
	}

	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// Must 与 New 相同，出错时退回到空日志记录器并把错误写到 stderr
func Must(cfg Config) *zap.Logger {
	l, err := New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return zap.NewNop()
	}
	return l
}
