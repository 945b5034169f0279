package i18n

var messagesEN = map[string]string{
	// ========== 汇编器错误 ==========
	ErrBadAPI:            "unsupported api level %d",
	ErrBadVersion:        "unsupported class file version %d.%d",
	ErrBadConstant:       "value of type %T cannot be a constant",
	ErrInsnBeforeCode:    "instruction visited before VisitCode",
	ErrVisitAfterEnd:     "%s visited after VisitEnd",
	ErrDuplicateFrame:    "two frames at bytecode offset %d",
	ErrUnresolvedLabel:   "label %s is not resolved",
	ErrMaxsTwice:         "VisitMaxs called more than once",
	ErrBadArgument:       "invalid argument: %s",
	ErrLabelTwice:        "label %s visited twice",
	ErrBadAnnotation:     "value of type %T is not a valid annotation element",
	ErrPoolTooLarge:      "constant pool has more than 65535 entries",
	ErrTypeTableTooLarge: "frame type table has more than 1048575 entries",
	ErrCodeTooLarge:      "code of method %s%s is %d bytes, limit is 65535",
	ErrUTF8TooLong:       "encoded string is %d bytes, limit is 65535",
	ErrFrameTooLarge:     "method %s%s needs %s %d, limit is 65535",
	ErrJSRFrames:         "JSR/RET cannot be analyzed when computing frames",
	ErrCommonSuper:       "no common super class for %s and %s",
	ErrSizeMismatch:      "predicted class size %d, wrote %d bytes",
	ErrWidenStalled:      "method %s%s still has unresolved wide jumps after %d passes",

	// ========== 修复建议 ==========
	HintVersion:     "class versions 45 (JDK 1.1) through 52 (Java 8) are supported",
	HintVisitCode:   "call VisitCode before the first instruction",
	HintSplitMethod: "split the method into smaller methods",
	HintJSRFrames:   "inline the subroutines or compute maxs only",
	HintHierarchy:   "pass WithClassHierarchy or list the types under [hierarchy] in the config",

	// ========== 类源文件 ==========
	ErrSourceFormat:  "unsupported class source format %q",
	ErrSourceInsn:    "%s line %d: unknown instruction %q",
	ErrSourceOperand: "%s line %d: %s",
	ErrSourceNoLabel: "%s line %d: undefined label %q",
	ErrSourceNoName:  "class source has no name",

	// ========== 命令行 ==========
	CLIUsage: `jvmasm - JVM class file assembler

Usage:
  jvmasm [--lang en|zh] [-config file] <command> [arguments]

Commands:
  build <file...>        assemble .toml/.yaml class sources into .class files
  hello                  write the Example.class hello world program
  dump [-json] <file>    decode a class file and print a summary
  version                print the version
  help                   print this help
`,
	CLIWrote:        "wrote %s (%d bytes)",
	CLINoInput:      "no input files",
	CLIUnknownCmd:   "unknown command: %s",
	CLIBuildFailed:  "%d of %d class sources failed",
	CLIConfigFailed: "failed to load config: %v",
	CLIVersion:      "jvmasm %s - JVM class file assembler (class versions 45-52)",
	CLIOptOutput:    "output directory",
	CLIOptCompute:   "compute mode: nothing, maxs or frames",
	CLIOptJSON:      "print the summary as JSON",
	CLIUsageBuild:   "Usage: jvmasm build [options] <file...>",
	CLIUsageHello:   "Usage: jvmasm hello [options]",
	CLIUsageDump:    "Usage: jvmasm dump [-json] <file.class>",
}
