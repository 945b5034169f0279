package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
)

// ============================================================================
// 错误报告器
// ============================================================================

// Report 把错误（可能是 multierr 聚合的多个错误）写到 w
//
// 每个错误一行，汇编错误附带错误码与修复建议：
//
//	error[J0202]: VisitMaxs: code too large (70000 bytes)
//	  = help: split the method into smaller ones
func Report(w io.Writer, file string, err error) {
	for _, e := range multierr.Errors(err) {
		fmt.Fprintln(w, formatOne(file, e))
	}
}

func formatOne(file string, err error) string {
	var sb strings.Builder
	var ae *AsmError
	if stderrors.As(err, &ae) {
		sb.WriteString(Colorize("error["+ae.Code+"]", ColorBoldRed))
		sb.WriteString(": ")
		if file != "" {
			sb.WriteString(Colorize(file, ColorBoldWhite))
			sb.WriteString(": ")
		}
		if ae.Op != "" {
			sb.WriteString(ae.Op)
			sb.WriteString(": ")
		}
		sb.WriteString(ae.Message)
		if hint := ae.Hint(); hint != "" {
			sb.WriteString("\n  = ")
			sb.WriteString(Colorize("help", ColorCyan))
			sb.WriteString(": ")
			sb.WriteString(hint)
		}
		return sb.String()
	}
	sb.WriteString(Colorize("error", ColorBoldRed))
	sb.WriteString(": ")
	if file != "" {
		sb.WriteString(Colorize(file, ColorBoldWhite))
		sb.WriteString(": ")
	}
	sb.WriteString(err.Error())
	return sb.String()
}
