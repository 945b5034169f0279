package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/tangzhangming/jvmasm/internal/classdump"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--lang", "en"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// ============================================================================
// 参数处理
// ============================================================================

func TestPreprocessArgs(t *testing.T) {
	tests := []struct {
		args   []string
		rest   []string
		lang   string
		config string
	}{
		{[]string{"--lang", "zh", "build", "a.toml"}, []string{"build", "a.toml"}, "zh", ""},
		{[]string{"-lang=en", "-config", "x.yaml", "dump"}, []string{"dump"}, "en", "x.yaml"},
		{[]string{"--config=c.toml", "build", "-o", "out", "a.toml"}, []string{"build", "-o", "out", "a.toml"}, "", "c.toml"},
		{[]string{"dump", "-json", "A.class"}, []string{"dump", "-json", "A.class"}, "", ""},
	}
	for _, tt := range tests {
		c := &cli{}
		rest := c.preprocessArgs(tt.args)
		if strings.Join(rest, " ") != strings.Join(tt.rest, " ") || c.lang != tt.lang || c.configPath != tt.config {
			t.Errorf("preprocessArgs(%q) = %q lang=%q config=%q, want %q lang=%q config=%q",
				tt.args, rest, c.lang, c.configPath, tt.rest, tt.lang, tt.config)
		}
	}
}

func TestVersionAndHelp(t *testing.T) {
	code, out, _ := runCLI(t, "version")
	if code != 0 || !strings.Contains(out, Version) {
		t.Fatalf("version: code %d, output %q", code, out)
	}
	code, out, _ = runCLI(t, "help")
	if code != 0 || !strings.Contains(out, "build <file...>") {
		t.Fatalf("help: code %d, output %q", code, out)
	}
	code, _, errOut := runCLI(t, "frobnicate")
	if code != 1 || !strings.Contains(errOut, "unknown command: frobnicate") {
		t.Fatalf("unknown: code %d, stderr %q", code, errOut)
	}
}

// ============================================================================
// hello 与 dump
// ============================================================================

func TestHelloAndDump(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "jvmasm.toml")
	if err := os.WriteFile(cfg, []byte("compute = \"nothing\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCLI(t, "-config", cfg, "hello", "-o", dir)
	if code != 0 {
		t.Fatalf("hello: code %d, stderr %q", code, errOut)
	}
	path := filepath.Join(dir, "Example.class")
	if !strings.Contains(out, "wrote "+path+" (338 bytes)") {
		t.Fatalf("hello output = %q", out)
	}

	code, out, errOut = runCLI(t, "dump", path)
	if code != 0 {
		t.Fatalf("dump: code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "class Example (version 52.0, 338 bytes)") {
		t.Fatalf("dump output = %q", out)
	}

	code, out, _ = runCLI(t, "dump", "-json", path)
	if code != 0 {
		t.Fatalf("dump -json: code %d", code)
	}
	var s classdump.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("dump -json output is not JSON: %v", err)
	}
	if s.Name != "Example" || len(s.Methods) != 2 {
		t.Fatalf("decoded summary = %+v", s)
	}

	if code, _, _ := runCLI(t, "dump", filepath.Join(dir, "missing.class")); code != 1 {
		t.Fatalf("dump of missing file: code %d, want 1", code)
	}
}

// ============================================================================
// build
// ============================================================================

const pointSource = `name = "com/example/Point"
access = ["public", "super"]

[[fields]]
access = ["public"]
name = "x"
desc = "I"

[[methods]]
access = ["public"]
name = "getX"
desc = "()I"
code = """
aload 0
getfield com/example/Point x I
ireturn
"""
`

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "point.toml")
	if err := os.WriteFile(src, []byte(pointSource), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(dir, "jvmasm.yaml")
	out := filepath.Join(dir, "classes")
	if err := os.WriteFile(cfg, []byte("output_dir: "+out+"\ncompute: maxs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "-config", cfg, "build", src)
	if code != 0 {
		t.Fatalf("build: code %d, stderr %q", code, stderr)
	}
	path := filepath.Join(out, "com", "example", "Point.class")
	if !strings.Contains(stdout, path) {
		t.Fatalf("build output = %q, want %s", stdout, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read class: %v", err)
	}
	s, err := classdump.Summarize(data)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.Name != "com/example/Point" || len(s.Fields) != 1 || s.Methods[0].MaxStack != 1 || s.Methods[0].MaxLocals != 1 {
		t.Fatalf("summary = %+v", s)
	}
}

func TestBuildReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "point.toml")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(good, []byte(pointSource), 0644); err != nil {
		t.Fatal(err)
	}
	badSource := strings.Replace(pointSource, "ireturn", "ireturnx", 1)
	if err := os.WriteFile(bad, []byte(badSource), 0644); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "build", "-o", dir, good, bad)
	if code != 1 {
		t.Fatalf("code %d, want 1", code)
	}
	for _, want := range []string{"unknown instruction \"ireturnx\"", "getX()I line 3", "1 of 2 class sources failed"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "com", "example", "Point.class")); err != nil {
		t.Fatalf("good source was not written: %v", err)
	}

	if code, _, _ := runCLI(t, "build", "-compute", "everything", good); code != 1 {
		t.Fatalf("bad compute mode: code %d, want 1", code)
	}
	if code, _, _ := runCLI(t, "build"); code != 1 {
		t.Fatalf("no input: code %d, want 1", code)
	}
}
