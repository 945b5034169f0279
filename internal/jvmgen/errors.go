package jvmgen

import (
	"github.com/tangzhangming/jvmasm/internal/errors"
	"go.uber.org/zap"
)

// 便于调用方用 errors.Is 判断的错误分类
var (
	ErrUsage            = errors.ErrUsage
	ErrCapacity         = errors.ErrCapacity
	ErrUnsupported      = errors.ErrUnsupported
	ErrInternal         = errors.ErrInternal
	ErrCommonSuperClass = errors.ErrCommonSuperClass
)

// setErr 记录第一个错误，之后的访问都不再生效
func (cw *ClassWriter) setErr(err error) {
	if cw.err == nil && err != nil {
		cw.err = err
		cw.logger.Debug("class writer failed", zap.Error(err))
	}
}

// Err 返回已记录的第一个错误
func (cw *ClassWriter) Err() error {
	return cw.err
}
