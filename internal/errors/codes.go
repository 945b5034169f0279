// Package errors 提供 jvmasm 汇编器的错误分类与错误码
package errors

// ============================================================================
// 错误分类
// ============================================================================

// Kind 错误分类
type Kind int

const (
	KindUsage       Kind = iota // 调用方违反使用约定
	KindCapacity                // 超出类文件格式容量
	KindUnsupported             // 不支持的分析
	KindInternal                // 内部一致性错误
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindCapacity:
		return "capacity"
	case KindUnsupported:
		return "unsupported"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// ============================================================================
// 汇编器错误码 (J 开头)
// ============================================================================

// 汇编器错误码常量
const (
	// J0100-J0199: 使用错误
	J0100 = "J0100" // 无效的 API 级别
	J0101 = "J0101" // 不支持的类文件版本
	J0102 = "J0102" // 无效的常量类型
	J0103 = "J0103" // VisitCode 之前访问指令
	J0104 = "J0104" // VisitEnd 之后继续访问
	J0105 = "J0105" // 同一偏移处出现两个帧
	J0106 = "J0106" // 调试表引用了未解析的标签
	J0107 = "J0107" // VisitMaxs 重复调用
	J0108 = "J0108" // 无效的参数
	J0109 = "J0109" // 标签重复解析
	J0110 = "J0110" // 无效的注解值

	// J0200-J0299: 容量错误
	J0200 = "J0200" // 常量池过大
	J0201 = "J0201" // 类型表过大
	J0202 = "J0202" // 方法代码过大
	J0203 = "J0203" // UTF8 字符串过长
	J0204 = "J0204" // 局部变量或操作数栈过大

	// J0300-J0399: 不支持
	J0300 = "J0300" // 帧计算模式下的 JSR/RET
	J0301 = "J0301" // 无法确定公共父类

	// J0900: 内部错误
	J0900 = "J0900" // 预测长度与写出长度不一致
	J0901 = "J0901" // 指令加宽没有进展
)

// ErrorInfo 错误码信息
type ErrorInfo struct {
	Code      string // 错误码
	Kind      Kind   // 错误分类
	MessageID string // i18n 消息 ID
	HintID    string // 修复建议消息 ID（可选）
}

// 错误码注册表
var asmErrors = map[string]ErrorInfo{
	J0100: {J0100, KindUsage, "asm.bad_api", ""},
	J0101: {J0101, KindUsage, "asm.bad_version", "hint.version"},
	J0102: {J0102, KindUsage, "asm.bad_constant", ""},
	J0103: {J0103, KindUsage, "asm.insn_before_code", "hint.visit_code"},
	J0104: {J0104, KindUsage, "asm.visit_after_end", ""},
	J0105: {J0105, KindUsage, "asm.duplicate_frame", ""},
	J0106: {J0106, KindUsage, "asm.unresolved_label", ""},
	J0107: {J0107, KindUsage, "asm.maxs_twice", ""},
	J0108: {J0108, KindUsage, "asm.bad_argument", ""},
	J0109: {J0109, KindUsage, "asm.label_twice", ""},
	J0110: {J0110, KindUsage, "asm.bad_annotation", ""},

	J0200: {J0200, KindCapacity, "asm.pool_too_large", ""},
	J0201: {J0201, KindCapacity, "asm.type_table_too_large", ""},
	J0202: {J0202, KindCapacity, "asm.code_too_large", "hint.split_method"},
	J0203: {J0203, KindCapacity, "asm.utf8_too_long", ""},
	J0204: {J0204, KindCapacity, "asm.frame_too_large", ""},

	J0300: {J0300, KindUnsupported, "asm.jsr_frames", "hint.jsr_frames"},
	J0301: {J0301, KindUnsupported, "asm.common_super", "hint.hierarchy"},

	J0900: {J0900, KindInternal, "asm.size_mismatch", ""},
	J0901: {J0901, KindInternal, "asm.widen_stalled", ""},
}

// GetErrorInfo 获取错误码信息
func GetErrorInfo(code string) (ErrorInfo, bool) {
	info, ok := asmErrors[code]
	return info, ok
}

// KindOf 返回错误码所属的分类，未知错误码视为内部错误
func KindOf(code string) Kind {
	if info, ok := asmErrors[code]; ok {
		return info.Kind
	}
	return KindInternal
}
