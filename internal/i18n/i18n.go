// Package i18n 提供错误信息与命令行文本的中英文翻译
package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Language 语言类型
type Language string

const (
	LangEnglish Language = "en"
	LangChinese Language = "zh"
)

// catalogs 各语言的消息表
var catalogs = map[Language]map[string]string{
	LangEnglish: messagesEN,
	LangChinese: messagesZH,
}

// 全局语言设置
var (
	currentLang Language = LangEnglish
	mu          sync.RWMutex
)

// SetLanguage 设置当前语言，未知语言按英文处理
func SetLanguage(lang Language) {
	if _, ok := catalogs[lang]; !ok {
		lang = LangEnglish
	}
	mu.Lock()
	defer mu.Unlock()
	currentLang = lang
}

// SetLanguageFromString 从字符串设置语言，如 "zh-CN"、"en_US.UTF-8"
func SetLanguageFromString(lang string) {
	lang = strings.ToLower(lang)
	if strings.HasPrefix(lang, "zh") || lang == "chinese" {
		SetLanguage(LangChinese)
		return
	}
	SetLanguage(LangEnglish)
}

// GetLanguage 获取当前语言
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return currentLang
}

// T 按当前语言翻译消息，缺少译文时回退到英文，再回退到消息 ID
func T(msgID string, args ...interface{}) string {
	return Translate(GetLanguage(), msgID, args...)
}

// Translate 按指定语言翻译消息
func Translate(lang Language, msgID string, args ...interface{}) string {
	msg, ok := catalogs[lang][msgID]
	if !ok {
		if msg, ok = messagesEN[msgID]; !ok {
			return msgID
		}
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// Has 检查消息在指定语言中是否有译文
func Has(lang Language, msgID string) bool {
	_, ok := catalogs[lang][msgID]
	return ok
}
