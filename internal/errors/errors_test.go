package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tangzhangming/jvmasm/internal/i18n"
	"go.uber.org/multierr"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		code string
		kind Kind
		is   error
	}{
		{J0101, KindUsage, ErrUsage},
		{J0110, KindUsage, ErrUsage},
		{J0200, KindCapacity, ErrCapacity},
		{J0204, KindCapacity, ErrCapacity},
		{J0300, KindUnsupported, ErrUnsupported},
		{J0301, KindUnsupported, ErrCommonSuperClass},
		{J0900, KindInternal, ErrInternal},
	}
	for _, tt := range tests {
		if KindOf(tt.code) != tt.kind {
			t.Errorf("KindOf(%s) = %v, want %v", tt.code, KindOf(tt.code), tt.kind)
		}
		err := fmt.Errorf("wrapped: %w", New(tt.code, "Op"))
		if !stderrors.Is(err, tt.is) {
			t.Errorf("%s: errors.Is(%v) = false", tt.code, tt.is)
		}
		if CodeOf(err) != tt.code {
			t.Errorf("CodeOf = %q, want %q", CodeOf(err), tt.code)
		}
	}
	if stderrors.Is(New(J0300, ""), ErrCommonSuperClass) {
		t.Errorf("J0300 should not match ErrCommonSuperClass")
	}
	if KindOf("J9999") != KindInternal {
		t.Errorf("unknown code should be internal")
	}
}

func TestMessagesTranslated(t *testing.T) {
	defer i18n.SetLanguage(i18n.LangEnglish)
	for code, info := range asmErrors {
		for _, lang := range []i18n.Language{i18n.LangEnglish, i18n.LangChinese} {
			i18n.SetLanguage(lang)
			if msg := i18n.T(info.MessageID); msg == info.MessageID {
				t.Errorf("%s: no %s message for %s", code, lang, info.MessageID)
			}
			if info.HintID != "" && i18n.T(info.HintID) == info.HintID {
				t.Errorf("%s: no %s hint for %s", code, lang, info.HintID)
			}
		}
	}
}

func TestErrorString(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	e := New(J0202, "VisitMaxs", "m", "()V", 70000)
	want := "capacity[J0202] VisitMaxs: code of method m()V is 70000 bytes, limit is 65535"
	if e.Error() != want {
		t.Fatalf("got %q, want %q", e.Error(), want)
	}
	if e.Hint() == "" {
		t.Fatalf("J0202 should carry a hint")
	}
}

func TestReport(t *testing.T) {
	i18n.SetLanguage(i18n.LangEnglish)
	SetColorsEnabled(false)
	err := multierr.Combine(
		New(J0300, "VisitMaxs"),
		stderrors.New("plain failure"),
	)

	var buf bytes.Buffer
	Report(&buf, "A.toml", err)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "error[J0300]: A.toml: VisitMaxs: ") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  = help: ") {
		t.Errorf("line 1 = %q", lines[1])
	}
	if lines[2] != "error: A.toml: plain failure" {
		t.Errorf("line 2 = %q", lines[2])
	}
}

func TestColorize(t *testing.T) {
	defer SetColorsEnabled(ColorsEnabled())
	SetColorsEnabled(true)
	s := Colorize("x", ColorRed)
	if s == "x" || Strip(s) != "x" {
		t.Fatalf("Colorize/Strip: got %q, stripped %q", s, Strip(s))
	}
	SetColorsEnabled(false)
	if Colorize("x", ColorRed) != "x" {
		t.Fatalf("colors disabled should not colorize")
	}
}
