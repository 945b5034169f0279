package asmfile

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/jvmasm/internal/jvmgen"
)

// accessNames 访问标志名
var accessNames = map[string]int{
	"public":       jvmgen.AccPublic,
	"private":      jvmgen.AccPrivate,
	"protected":    jvmgen.AccProtected,
	"static":       jvmgen.AccStatic,
	"final":        jvmgen.AccFinal,
	"super":        jvmgen.AccSuper,
	"synchronized": jvmgen.AccSynchronized,
	"volatile":     jvmgen.AccVolatile,
	"bridge":       jvmgen.AccBridge,
	"varargs":      jvmgen.AccVarargs,
	"transient":    jvmgen.AccTransient,
	"native":       jvmgen.AccNative,
	"interface":    jvmgen.AccInterface,
	"abstract":     jvmgen.AccAbstract,
	"strict":       jvmgen.AccStrict,
	"synthetic":    jvmgen.AccSynthetic,
	"annotation":   jvmgen.AccAnnotation,
	"enum":         jvmgen.AccEnum,
	"mandated":     jvmgen.AccMandated,
	"deprecated":   jvmgen.AccDeprecated,
}

// parseAccess 把标志名列表合成访问标志
func parseAccess(names []string) (int, error) {
	access := 0
	for _, name := range names {
		flag, ok := accessNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("unknown access flag %q", name)
		}
		access |= flag
	}
	return access, nil
}

// classVersion 把主版本号转换成 Visit 使用的版本
func classVersion(major int) (int, error) {
	switch {
	case major == 0:
		return jvmgen.V1_8, nil
	case major == 45:
		return jvmgen.V1_1, nil
	case major > 45 && major <= 52:
		return major, nil
	}
	return 0, fmt.Errorf("unsupported class version %d", major)
}

// fieldValue 按字段描述符转换常量值
func fieldValue(desc string, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch desc {
	case "I", "S", "B", "C", "Z":
		if b, ok := v.(bool); ok && desc == "Z" {
			if b {
				return int32(1), nil
			}
			return int32(0), nil
		}
		n, ok := toInt64(v)
		if !ok || n < -1<<31 || n > 1<<31-1 {
			return nil, fmt.Errorf("field value %v is not a valid %s constant", v, desc)
		}
		return int32(n), nil
	case "J":
		n, ok := toInt64(v)
		if !ok {
			return nil, fmt.Errorf("field value %v is not a valid long constant", v)
		}
		return n, nil
	case "F", "D":
		var f float64
		switch x := v.(type) {
		case float64:
			f = x
		default:
			n, ok := toInt64(v)
			if !ok {
				return nil, fmt.Errorf("field value %v is not a valid %s constant", v, desc)
			}
			f = float64(n)
		}
		if desc == "F" {
			return float32(f), nil
		}
		return f, nil
	case "Ljava/lang/String;":
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("field value %v is not a string", v)
		}
		return s, nil
	}
	return nil, fmt.Errorf("field of type %s cannot have a constant value", desc)
}

// toInt64 TOML 解码出 int64，YAML 解码出 int
func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case uint64:
		return int64(x), x <= 1<<63-1
	}
	return 0, false
}
