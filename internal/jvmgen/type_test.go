package jvmgen

import (
	"bytes"
	"testing"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		desc     string
		sort     int
		size     int
		internal string
	}{
		{"I", SortInt, 1, "I"},
		{"J", SortLong, 2, "J"},
		{"D", SortDouble, 2, "D"},
		{"V", SortVoid, 0, "V"},
		{"[I", SortArray, 1, "[I"},
		{"Ljava/lang/String;", SortObject, 1, "java/lang/String"},
	}
	for _, tt := range tests {
		typ := GetType(tt.desc)
		if typ.Sort() != tt.sort || typ.Size() != tt.size {
			t.Fatalf("GetType(%s): got sort %d size %d, want %d %d", tt.desc, typ.Sort(), typ.Size(), tt.sort, tt.size)
		}
		if typ.InternalName() != tt.internal {
			t.Fatalf("GetType(%s).InternalName: got %s, want %s", tt.desc, typ.InternalName(), tt.internal)
		}
	}
	if got := GetObjectType("java/util/List").Descriptor(); got != "Ljava/util/List;" {
		t.Fatalf("GetObjectType: got %s", got)
	}
	if got := GetObjectType("[Ljava/lang/Object;"); got.Sort() != SortArray {
		t.Fatalf("array internal name should give an array type, got sort %d", got.Sort())
	}
}

func TestMethodType(t *testing.T) {
	m := GetMethodType("(IJLjava/lang/String;[[D)Ljava/lang/Object;")
	args := m.ArgumentTypes()
	want := []string{"I", "J", "Ljava/lang/String;", "[[D"}
	if len(args) != len(want) {
		t.Fatalf("arguments: got %d, want %d", len(args), len(want))
	}
	for i, a := range args {
		if a.Descriptor() != want[i] {
			t.Fatalf("argument %d: got %s, want %s", i, a.Descriptor(), want[i])
		}
	}
	if r := m.ReturnType(); r.InternalName() != "java/lang/Object" {
		t.Fatalf("return type: got %s", r)
	}
}

func TestArgumentsAndReturnSizes(t *testing.T) {
	tests := []struct {
		desc string
		args int // 含 this
		ret  int
	}{
		{"()V", 1, 0},
		{"(IJ)D", 4, 2},
		{"(Ljava/lang/Object;)J", 2, 2},
		{"([Ljava/lang/String;[[I)I", 3, 1},
		{"(ZBCSF)Ljava/lang/String;", 6, 1},
	}
	for _, tt := range tests {
		got := argumentsAndReturnSizes(tt.desc)
		if got>>2 != tt.args || got&3 != tt.ret {
			t.Fatalf("%s: got args %d ret %d, want %d %d", tt.desc, got>>2, got&3, tt.args, tt.ret)
		}
	}
}

// ============================================================================
// TypePath
// ============================================================================

func TestTypePath(t *testing.T) {
	p := TypePathFromString("[.*12;")
	if p.Len() != 4 {
		t.Fatalf("Len: got %d, want 4", p.Len())
	}
	kinds := []int{TypePathArrayElement, TypePathInnerType, TypePathWildcard, TypePathTypeArgument}
	for i, k := range kinds {
		if p.Step(i) != k {
			t.Fatalf("step %d: got %d, want %d", i, p.Step(i), k)
		}
	}
	if p.StepArgument(3) != 12 {
		t.Fatalf("type argument: got %d, want 12", p.StepArgument(3))
	}
	if p.String() != "[.*12;" {
		t.Fatalf("String: got %q", p.String())
	}
	bv := NewByteVector()
	p.put(bv)
	if want := []byte{4, 0, 0, 1, 0, 2, 0, 3, 12}; !bytes.Equal(bv.Bytes(), want) {
		t.Fatalf("put: got %v, want %v", bv.Bytes(), want)
	}
}

func TestEmptyTypePath(t *testing.T) {
	p := TypePathFromString("")
	if p != nil || p.Len() != 0 {
		t.Fatalf("empty path should be nil")
	}
	bv := NewByteVector()
	p.put(bv)
	if !bytes.Equal(bv.Bytes(), []byte{0}) {
		t.Fatalf("put: got %v, want [0]", bv.Bytes())
	}
}
