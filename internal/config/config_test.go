package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tangzhangming/jvmasm/internal/jvmgen"
)

// ============================================================================
// 加载
// ============================================================================

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	src := `output_dir = "out"
compute = "maxs"
log_level = "debug"
interfaces = ["com/example/Shape"]

[hierarchy]
"com/example/Circle" = "com/example/Base"
"com/example/Base" = "java/lang/Object"
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if c.OutputDir != "out" || c.Compute != ComputeMaxs || c.LogLevel != "debug" {
		t.Fatalf("got %+v", c)
	}
	if flags, _ := c.Flags(); flags != jvmgen.ComputeMaxsFlag {
		t.Fatalf("Flags = %d, want %d", flags, jvmgen.ComputeMaxsFlag)
	}
	if c.Hierarchy["com/example/Circle"] != "com/example/Base" {
		t.Fatalf("hierarchy = %v", c.Hierarchy)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, YAMLConfigFileName)
	src := `output_dir: classes
compute: frames
development: true
hierarchy:
  com/example/Circle: com/example/Base
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if c.OutputDir != "classes" || !c.Development {
		t.Fatalf("got %+v", c)
	}
	// 未给出的字段保留默认值
	if c.LogLevel != "warn" {
		t.Fatalf("LogLevel = %q, want warn", c.LogLevel)
	}
	if flags, _ := c.Flags(); flags != jvmgen.ComputeFramesFlag {
		t.Fatalf("Flags = %d, want %d", flags, jvmgen.ComputeFramesFlag)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
	}{
		{"bad toml", "a.toml", "compute = "},
		{"bad compute", "b.toml", `compute = "everything"`},
		{"bad level", "c.yaml", "log_level: loud\n"},
		{"empty super", "d.toml", "[hierarchy]\n\"a/B\" = \"\"\n"},
	}
	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.src), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadConfig(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

// ============================================================================
// 保存
// ============================================================================

func TestSaveRoundTrip(t *testing.T) {
	c := Default()
	c.OutputDir = "build/classes"
	c.Interfaces = []string{"com/example/Shape"}
	c.Hierarchy = map[string]string{
		"com/example/Circle": "com/example/Base",
		"com/example/Base":   "java/lang/Object",
	}

	for _, name := range []string{ConfigFileName, YAMLConfigFileName} {
		path := filepath.Join(t.TempDir(), name)
		if err := c.Save(path); err != nil {
			t.Fatalf("Save(%s) error: %v", name, err)
		}
		got, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%s) error: %v", name, err)
		}
		if !reflect.DeepEqual(got, c) {
			t.Fatalf("%s: got %+v, want %+v", name, got, c)
		}
	}
}

func TestSaveHasComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := Default().Save(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if data[0] != '#' {
		t.Fatalf("config should start with a comment, got %q", data[:20])
	}
}

// ============================================================================
// 类层次
// ============================================================================

func TestClassHierarchy(t *testing.T) {
	c := Default()
	c.Interfaces = []string{"com/example/Shape"}
	c.Hierarchy = map[string]string{
		"com/example/Circle": "com/example/Base",
		"com/example/Square": "com/example/Base",
		"com/example/Base":   "java/lang/Object",
	}
	h := c.ClassHierarchy()

	tests := []struct {
		a, b string
		want string
	}{
		{"com/example/Circle", "com/example/Square", "com/example/Base"},
		{"com/example/Circle", "com/example/Shape", "java/lang/Object"},
		{"java/lang/Integer", "java/lang/Long", "java/lang/Number"},
	}
	for _, tt := range tests {
		got, ok := h.CommonSuperClass(tt.a, tt.b)
		if !ok || got != tt.want {
			t.Errorf("CommonSuperClass(%s, %s) = %q, %v, want %q", tt.a, tt.b, got, ok, tt.want)
		}
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, YAMLConfigFileName)
	if err := os.WriteFile(path, []byte("compute: maxs\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got := FindConfigFile(sub)
	want, _ := filepath.Abs(path)
	if got != want {
		t.Fatalf("FindConfigFile = %q, want %q", got, want)
	}
}
