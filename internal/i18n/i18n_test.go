package i18n

import "testing"

func TestCatalogsComplete(t *testing.T) {
	for id := range messagesEN {
		if !Has(LangChinese, id) {
			t.Errorf("%s has no Chinese message", id)
		}
	}
	for id := range messagesZH {
		if !Has(LangEnglish, id) {
			t.Errorf("%s has no English message", id)
		}
	}
}

func TestTranslate(t *testing.T) {
	if got := Translate(LangEnglish, CLIWrote, "A.class", 12); got != "wrote A.class (12 bytes)" {
		t.Fatalf("got %q", got)
	}
	if got := Translate(LangChinese, CLIWrote, "A.class", 12); got != "已写出 A.class (12 字节)" {
		t.Fatalf("got %q", got)
	}
	if got := Translate(LangEnglish, "no.such.id"); got != "no.such.id" {
		t.Fatalf("unknown id: got %q", got)
	}
}

func TestSetLanguageFromString(t *testing.T) {
	defer SetLanguage(LangEnglish)
	tests := []struct {
		in   string
		want Language
	}{
		{"zh", LangChinese},
		{"zh_CN.UTF-8", LangChinese},
		{"Chinese", LangChinese},
		{"en", LangEnglish},
		{"fr", LangEnglish},
	}
	for _, tt := range tests {
		SetLanguageFromString(tt.in)
		if got := GetLanguage(); got != tt.want {
			t.Errorf("SetLanguageFromString(%q): got %s, want %s", tt.in, got, tt.want)
		}
	}
	SetLanguage("de")
	if GetLanguage() != LangEnglish {
		t.Errorf("unknown language should fall back to English")
	}
}
