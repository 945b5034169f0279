package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/tangzhangming/jvmasm/internal/i18n"
)

// ============================================================================
// 哨兵错误
// ============================================================================

// 按分类匹配的哨兵错误，配合 errors.Is 使用
var (
	ErrUsage       = stderrors.New("jvmasm: usage error")
	ErrCapacity    = stderrors.New("jvmasm: capacity exceeded")
	ErrUnsupported = stderrors.New("jvmasm: unsupported analysis")
	ErrInternal    = stderrors.New("jvmasm: internal error")

	// ErrCommonSuperClass 两个引用类型合并时无法得到公共父类
	ErrCommonSuperClass = stderrors.New("jvmasm: common super class unavailable")
)

// ============================================================================
// 汇编错误
// ============================================================================

// AsmError 汇编错误
type AsmError struct {
	Code    string // 错误码 (J0200)
	Kind    Kind   // 错误分类
	Op      string // 出错的操作，如 "NewUTF8"、"VisitJumpInsn"
	Message string // 已翻译的消息
}

// New 按错误码创建错误，args 用于格式化 i18n 消息
func New(code, op string, args ...interface{}) *AsmError {
	info, ok := asmErrors[code]
	if !ok {
		return &AsmError{Code: code, Kind: KindInternal, Op: op, Message: code}
	}
	return &AsmError{
		Code:    code,
		Kind:    info.Kind,
		Op:      op,
		Message: i18n.T(info.MessageID, args...),
	}
}

// Error 实现 error 接口
func (e *AsmError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s[%s]: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s[%s] %s: %s", e.Kind, e.Code, e.Op, e.Message)
}

// Is 让 errors.Is 能按分类匹配哨兵错误
func (e *AsmError) Is(target error) bool {
	switch target {
	case ErrUsage:
		return e.Kind == KindUsage
	case ErrCapacity:
		return e.Kind == KindCapacity
	case ErrUnsupported:
		return e.Kind == KindUnsupported
	case ErrInternal:
		return e.Kind == KindInternal
	case ErrCommonSuperClass:
		return e.Code == J0301
	}
	return false
}

// Hint 返回错误的修复建议，没有则返回空串
func (e *AsmError) Hint() string {
	info, ok := asmErrors[e.Code]
	if !ok || info.HintID == "" {
		return ""
	}
	return i18n.T(info.HintID)
}

// CodeOf 提取错误链中的错误码
func CodeOf(err error) string {
	var ae *AsmError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
