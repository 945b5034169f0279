package i18n

var messagesZH = map[string]string{
	// ========== 汇编器错误 ==========
	ErrBadAPI:            "不支持的 API 级别 %d",
	ErrBadVersion:        "不支持的类文件版本 %d.%d",
	ErrBadConstant:       "类型 %T 的值不能作为常量",
	ErrInsnBeforeCode:    "在 VisitCode 之前访问了指令",
	ErrVisitAfterEnd:     "在 VisitEnd 之后调用了 %s",
	ErrDuplicateFrame:    "字节码偏移 %d 处有两个帧",
	ErrUnresolvedLabel:   "标签 %s 尚未解析",
	ErrMaxsTwice:         "VisitMaxs 被调用了多次",
	ErrBadArgument:       "无效的参数: %s",
	ErrLabelTwice:        "标签 %s 被访问了两次",
	ErrBadAnnotation:     "类型 %T 的值不能作为注解元素",
	ErrPoolTooLarge:      "常量池超过 65535 项",
	ErrTypeTableTooLarge: "帧类型表超过 1048575 项",
	ErrCodeTooLarge:      "方法 %s%s 的代码为 %d 字节，上限为 65535",
	ErrUTF8TooLong:       "编码后的字符串为 %d 字节，上限为 65535",
	ErrFrameTooLarge:     "方法 %s%s 需要的 %s 为 %d，上限为 65535",
	ErrJSRFrames:         "计算帧时无法分析 JSR/RET",
	ErrCommonSuper:       "无法确定 %s 和 %s 的公共父类",
	ErrSizeMismatch:      "预测类大小 %d，实际写出 %d 字节",
	ErrWidenStalled:      "方法 %s%s 经过 %d 轮后仍有未加宽的跳转",

	// ========== 修复建议 ==========
	HintVersion:     "支持的类版本为 45 (JDK 1.1) 到 52 (Java 8)",
	HintVisitCode:   "在第一条指令之前调用 VisitCode",
	HintSplitMethod: "把方法拆分成多个较小的方法",
	HintJSRFrames:   "内联子程序，或只计算 maxs",
	HintHierarchy:   "传入 WithClassHierarchy，或在配置的 [hierarchy] 中列出这些类型",

	// ========== 类源文件 ==========
	ErrSourceFormat:  "不支持的类源文件格式 %q",
	ErrSourceInsn:    "%s 第 %d 行: 未知指令 %q",
	ErrSourceOperand: "%s 第 %d 行: %s",
	ErrSourceNoLabel: "%s 第 %d 行: 未定义的标签 %q",
	ErrSourceNoName:  "类源文件缺少类名",

	// ========== 命令行 ==========
	CLIUsage: `jvmasm - JVM 类文件汇编器

用法:
  jvmasm [--lang en|zh] [-config 文件] <命令> [参数]

命令:
  build <文件...>        把 .toml/.yaml 类源文件汇编成 .class 文件
  hello                  生成 Example.class 示例程序
  dump [-json] <文件>    解析类文件并打印摘要
  version                显示版本
  help                   显示帮助
`,
	CLIWrote:        "已写出 %s (%d 字节)",
	CLINoInput:      "没有输入文件",
	CLIUnknownCmd:   "未知命令: %s",
	CLIBuildFailed:  "%d/%d 个类源文件失败",
	CLIConfigFailed: "加载配置失败: %v",
	CLIVersion:      "jvmasm %s - JVM 类文件汇编器（类版本 45-52）",
	CLIOptOutput:    "输出目录",
	CLIOptCompute:   "计算模式: nothing, maxs 或 frames",
	CLIOptJSON:      "以 JSON 输出摘要",
	CLIUsageBuild:   "用法: jvmasm build [选项] <文件...>",
	CLIUsageHello:   "用法: jvmasm hello [选项]",
	CLIUsageDump:    "用法: jvmasm dump [-json] <文件.class>",
}
