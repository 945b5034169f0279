package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
	"go.uber.org/zap"
)

// ClassWriter 的计算模式标志
const (
	// ComputeMaxsFlag 自动计算最大栈深度与局部变量数
	ComputeMaxsFlag = 1
	// ComputeFramesFlag 自动计算栈映射帧，隐含 ComputeMaxsFlag
	ComputeFramesFlag = 2
)

// 方法的计算模式
const (
	computeNothing = iota
	computeMaxs
	computeFrames
	computeInsertedFrames
)

// Option ClassWriter 选项
type Option func(*ClassWriter)

// WithLogger 设置调试日志
func WithLogger(logger *zap.Logger) Option {
	return func(cw *ClassWriter) {
		if logger != nil {
			cw.logger = logger
		}
	}
}

// WithClassHierarchy 设置帧计算使用的类层次
func WithClassHierarchy(h ClassHierarchy) Option {
	return func(cw *ClassWriter) {
		cw.hierarchy = h
	}
}

// WithDefinedClass 把正在生成的类及其父类加入帧计算的类层次，
// 必须放在 WithClassHierarchy 之后
func WithDefinedClass(name, super string, itf bool) Option {
	return func(cw *ClassWriter) {
		cw.hierarchy = &definedClass{base: cw.hierarchy, name: name, super: super, itf: itf}
	}
}

// WithAPI 设置访问者 API 级别，只接受 API4 与 API5
func WithAPI(api int) Option {
	return func(cw *ClassWriter) {
		if api != API4 && api != API5 {
			cw.setErr(errors.New(errors.J0100, "NewClassWriter", api>>16))
			return
		}
		cw.api = api
	}
}
