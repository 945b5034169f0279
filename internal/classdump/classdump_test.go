package classdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/tangzhangming/jvmasm/internal/jvmgen"
)

func hello(t *testing.T, flags int) []byte {
	t.Helper()
	b, err := jvmgen.HelloWorld("Example", flags)
	if err != nil {
		t.Fatalf("HelloWorld error: %v", err)
	}
	return b
}

func TestSummarizeHello(t *testing.T) {
	s, err := Summarize(hello(t, 0))
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if s.Name != "Example" || s.Super != "java/lang/Object" {
		t.Fatalf("names: got %s extends %s", s.Name, s.Super)
	}
	if s.MajorVersion != 52 || s.MinorVersion != 0 {
		t.Fatalf("version: got %d.%d, want 52.0", s.MajorVersion, s.MinorVersion)
	}
	if s.PoolCount != 26 || s.Size != 338 {
		t.Fatalf("pool/size: got %d/%d, want 26/338", s.PoolCount, s.Size)
	}
	if len(s.AccessFlags) != 1 || s.AccessFlags[0] != "public" {
		t.Fatalf("access: got %v, want [public]", s.AccessFlags)
	}
	if len(s.Methods) != 2 {
		t.Fatalf("methods: got %d, want 2", len(s.Methods))
	}

	main := s.Methods[1]
	if main.Name != "main" || main.Descriptor != "([Ljava/lang/String;)V" {
		t.Fatalf("method 1: got %s%s", main.Name, main.Descriptor)
	}
	if main.MaxStack != 2 || main.MaxLocals != 2 || main.CodeLength != 9 {
		t.Fatalf("main: got stack=%d locals=%d length=%d", main.MaxStack, main.MaxLocals, main.CodeLength)
	}
	if len(main.Code) != 4 {
		t.Fatalf("main code: got %d lines, want 4: %q", len(main.Code), main.Code)
	}
	checks := []struct {
		line int
		want []string
	}{
		{0, []string{"0: getstatic", "#16", "java/lang/System.out:Ljava/io/PrintStream;"}},
		{1, []string{"3: ldc", "#18", `"Hello world!"`}},
		{2, []string{"5: invokevirtual", "java/io/PrintStream.println:(Ljava/lang/String;)V"}},
		{3, []string{"8: return"}},
	}
	for _, c := range checks {
		for _, w := range c.want {
			if !strings.Contains(main.Code[c.line], w) {
				t.Errorf("line %d = %q, missing %q", c.line, main.Code[c.line], w)
			}
		}
	}
}

func TestSummarizeInvalid(t *testing.T) {
	if _, err := Summarize([]byte{0xCA, 0xFE}); err == nil {
		t.Fatalf("expected error for truncated class")
	}
}

func TestDigest(t *testing.T) {
	a := Digest(hello(t, 0))
	b := Digest(hello(t, 0))
	c := Digest(hello(t, jvmgen.ComputeMaxsFlag))
	if len(a) != 64 {
		t.Fatalf("digest length: got %d, want 64", len(a))
	}
	if a != b {
		t.Fatalf("same input gave different digests")
	}
	// 计算出的 main maxLocals 为 1，内容不同
	if a == c {
		t.Fatalf("different classes gave the same digest")
	}
}

func TestToJSON(t *testing.T) {
	s, err := Summarize(hello(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	data, err := s.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON error: %v", err)
	}

	var got Summary
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != s.Name || got.Digest != s.Digest || len(got.Methods) != len(s.Methods) {
		t.Fatalf("decoded summary differs: %+v", got)
	}
	if !bytes.Contains(data, []byte(`"maxStack": 2`)) {
		t.Fatalf("json missing maxStack: %s", data)
	}
}

func TestWriteText(t *testing.T) {
	s, err := Summarize(hello(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s.WriteText(&buf)
	out := buf.String()
	for _, want := range []string{"class Example (version 52.0, 338 bytes)", "blake2b:", "method main([Ljava/lang/String;)V", "stack=2 locals=2 length=9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDisassembleSwitch(t *testing.T) {
	code := []byte{0x1A, jvmgen.OpTableswitch, 0, 0,
		0, 0, 0, 30, 0, 0, 0, 0, 0, 0, 0, 1,
		0, 0, 0, 23, 0, 0, 0, 28}
	lines := disassemble(code, nil)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if lines[0] != "   0: iload_0" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "{ 0: 24, 1: 29, default: 31 }") {
		t.Fatalf("line 1 = %q", lines[1])
	}
}
