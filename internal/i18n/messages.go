package i18n

// 消息 ID
const (
	// ========== 汇编器错误 ==========
	ErrBadAPI            = "asm.bad_api"
	ErrBadVersion        = "asm.bad_version"
	ErrBadConstant       = "asm.bad_constant"
	ErrInsnBeforeCode    = "asm.insn_before_code"
	ErrVisitAfterEnd     = "asm.visit_after_end"
	ErrDuplicateFrame    = "asm.duplicate_frame"
	ErrUnresolvedLabel   = "asm.unresolved_label"
	ErrMaxsTwice         = "asm.maxs_twice"
	ErrBadArgument       = "asm.bad_argument"
	ErrLabelTwice        = "asm.label_twice"
	ErrBadAnnotation     = "asm.bad_annotation"
	ErrPoolTooLarge      = "asm.pool_too_large"
	ErrTypeTableTooLarge = "asm.type_table_too_large"
	ErrCodeTooLarge      = "asm.code_too_large"
	ErrUTF8TooLong       = "asm.utf8_too_long"
	ErrFrameTooLarge     = "asm.frame_too_large"
	ErrJSRFrames         = "asm.jsr_frames"
	ErrCommonSuper       = "asm.common_super"
	ErrSizeMismatch      = "asm.size_mismatch"
	ErrWidenStalled      = "asm.widen_stalled"

	// ========== 修复建议 ==========
	HintVersion     = "hint.version"
	HintVisitCode   = "hint.visit_code"
	HintSplitMethod = "hint.split_method"
	HintJSRFrames   = "hint.jsr_frames"
	HintHierarchy   = "hint.hierarchy"

	// ========== 类源文件 ==========
	ErrSourceFormat  = "source.format"
	ErrSourceInsn    = "source.insn"
	ErrSourceOperand = "source.operand"
	ErrSourceNoLabel = "source.no_label"
	ErrSourceNoName  = "source.no_name"

	// ========== 命令行 ==========
	CLIUsage        = "cli.usage"
	CLIWrote        = "cli.wrote"
	CLINoInput      = "cli.no_input"
	CLIUnknownCmd   = "cli.unknown_command"
	CLIBuildFailed  = "cli.build_failed"
	CLIConfigFailed = "cli.config_failed"
	CLIVersion      = "cli.version"
	CLIOptOutput    = "cli.opt_output"
	CLIOptCompute   = "cli.opt_compute"
	CLIOptJSON      = "cli.opt_json"
	CLIUsageBuild   = "cli.usage_build"
	CLIUsageHello   = "cli.usage_hello"
	CLIUsageDump    = "cli.usage_dump"
)
