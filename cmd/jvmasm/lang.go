package main

import (
	"os"
	"strings"

	"github.com/tangzhangming/jvmasm/internal/i18n"
)

// InitLanguage 初始化界面语言
// 优先级：--lang 参数 > JVMASM_LANG 环境变量 > 系统 locale > 英文
func InitLanguage(langOverride string) {
	if langOverride != "" {
		i18n.SetLanguageFromString(strings.ToLower(strings.TrimSpace(langOverride)))
		return
	}

	if envLang := os.Getenv("JVMASM_LANG"); envLang != "" {
		i18n.SetLanguageFromString(strings.ToLower(strings.TrimSpace(envLang)))
		return
	}

	if detectChineseLocale() {
		i18n.SetLanguage(i18n.LangChinese)
		return
	}

	i18n.SetLanguage(i18n.LangEnglish)
}

// detectChineseLocale 检查 locale 环境变量
func detectChineseLocale() bool {
	for _, v := range []string{"LC_ALL", "LC_MESSAGES", "LANGUAGE", "LANG"} {
		if val := strings.ToLower(os.Getenv(v)); val != "" {
			return strings.HasPrefix(val, "zh") || strings.Contains(val, "chinese")
		}
	}
	return false
}
