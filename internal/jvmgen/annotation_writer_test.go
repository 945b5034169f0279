package jvmgen

import (
	"bytes"
	"testing"

	"github.com/tangzhangming/jvmasm/internal/errors"
)

func u2(v int) []byte { return []byte{byte(v >> 8), byte(v)} }

func TestAnnotationWriterValues(t *testing.T) {
	cw := NewClassWriter(0)
	aw := newTopAnnotation(cw, "LA;")
	aw.Visit("v", 5)
	arr := aw.VisitArray("arr")
	arr.Visit("", "x")
	arr.VisitEnd()
	aw.VisitEnum("e", "LE;", "ONE")
	nested := aw.VisitAnnotation("n", "LB;")
	nested.Visit("flag", true)
	nested.VisitEnd()
	aw.VisitEnd()

	var want []byte
	want = append(want, u2(cw.NewUTF8("LA;"))...)
	want = append(want, 0, 4)
	want = append(want, u2(cw.NewUTF8("v"))...)
	want = append(want, 'I')
	want = append(want, u2(cw.NewInteger(5))...)
	want = append(want, u2(cw.NewUTF8("arr"))...)
	want = append(want, '[', 0, 1, 's')
	want = append(want, u2(cw.NewUTF8("x"))...)
	want = append(want, u2(cw.NewUTF8("e"))...)
	want = append(want, 'e')
	want = append(want, u2(cw.NewUTF8("LE;"))...)
	want = append(want, u2(cw.NewUTF8("ONE"))...)
	want = append(want, u2(cw.NewUTF8("n"))...)
	want = append(want, '@')
	want = append(want, u2(cw.NewUTF8("LB;"))...)
	want = append(want, 0, 1)
	want = append(want, u2(cw.NewUTF8("flag"))...)
	want = append(want, 'Z')
	want = append(want, u2(cw.NewInteger(1))...)

	if !bytes.Equal(aw.bv.Bytes(), want) {
		t.Fatalf("annotation: got %v, want %v", aw.bv.Bytes(), want)
	}
	if cw.Err() != nil {
		t.Fatalf("unexpected error: %v", cw.Err())
	}
}

func TestAnnotationPrimitiveArrays(t *testing.T) {
	cw := NewClassWriter(0)
	aw := newTopAnnotation(cw, "LA;")
	aw.Visit("l", []int64{7})
	aw.VisitEnd()

	l := cw.NewLong(7)
	want := append(u2(cw.NewUTF8("LA;")), 0, 1)
	want = append(want, u2(cw.NewUTF8("l"))...)
	want = append(want, '[', 0, 1, 'J')
	want = append(want, u2(l)...)
	if !bytes.Equal(aw.bv.Bytes(), want) {
		t.Fatalf("annotation: got %v, want %v", aw.bv.Bytes(), want)
	}
}

func TestAnnotationBadValue(t *testing.T) {
	cw := NewClassWriter(0)
	aw := newTopAnnotation(cw, "LA;")
	aw.Visit("bad", struct{}{})
	if errors.CodeOf(cw.Err()) != errors.J0110 {
		t.Fatalf("error: got %v, want J0110", cw.Err())
	}
}

func TestTypeAnnotationTarget(t *testing.T) {
	tests := []struct {
		name    string
		typeRef int
		want    []byte
	}{
		{"class type parameter", 0x00010000, []byte{0x00, 0x01}},
		{"field", 0x13000000, []byte{0x13}},
		{"method parameter", 0x16020000, []byte{0x16, 0x02}},
		{"supertype", 0x10FFFF00, []byte{0x10, 0xFF, 0xFF}},
		{"throws", 0x17000300, []byte{0x17, 0x00, 0x03}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bv := NewByteVector()
			putTarget(tt.typeRef, nil, bv)
			want := append(append([]byte{}, tt.want...), 0)
			if !bytes.Equal(bv.Bytes(), want) {
				t.Fatalf("target: got %v, want %v", bv.Bytes(), want)
			}
		})
	}
}

// ============================================================================
// 带注解的类整体写出
// ============================================================================

func TestAnnotatedClassSize(t *testing.T) {
	cw := NewClassWriter(ComputeMaxsFlag)
	cw.Visit(V1_8, AccPublic|AccAnnotation|AccInterface|AccAbstract, "p/Ann", "", "java/lang/Object", []string{"java/lang/annotation/Annotation"})
	av := cw.VisitAnnotation("Ljava/lang/annotation/Retention;", true)
	av.VisitEnum("value", "Ljava/lang/annotation/RetentionPolicy;", "RUNTIME")
	av.VisitEnd()
	cw.VisitTypeAnnotation(0x10FFFF00, TypePathFromString("*"), "LT;", false).VisitEnd()

	fv := cw.VisitField(AccPublic|AccStatic|AccFinal, "MAX", "I", "", int32(10))
	fv.VisitAnnotation("LF;", false).VisitEnd()
	fv.VisitEnd()

	mv := cw.VisitMethod(AccPublic|AccAbstract, "value", "()Ljava/lang/String;", "", nil)
	dv := mv.VisitAnnotationDefault()
	dv.Visit("", "none")
	dv.VisitEnd()
	mv.VisitEnd()

	mv = cw.VisitMethod(AccPublic|AccStatic, "check", "(ILjava/lang/String;)V", "", []string{"java/io/IOException"})
	mv.VisitParameter("count", 0)
	mv.VisitParameter("label", AccFinal)
	mv.VisitParameterAnnotation(0, "Ljava/lang/Synthetic;", false)
	mv.VisitParameterAnnotation(1, "LNotNull;", true).VisitEnd()
	mv.VisitAnnotation("Ljava/lang/Deprecated;", true).VisitEnd()
	mv.VisitAttribute(&RawAttribute{Name: "Custom", Data: []byte{1, 2, 3}})
	mv.VisitCode()
	mv.VisitInsn(OpReturn)
	mv.VisitMaxs(0, 0)
	mv.VisitEnd()
	cw.VisitEnd()

	b, err := cw.ToByteArray()
	if err != nil {
		t.Fatalf("ToByteArray failed: %v", err)
	}
	if !bytes.Contains(b, []byte("RuntimeVisibleParameterAnnotations")) {
		t.Fatalf("missing parameter annotations attribute")
	}
	if !bytes.Contains(b, []byte{0, 6, 'C', 'u', 's', 't', 'o', 'm'}) {
		t.Fatalf("missing custom attribute name")
	}
	fw := cw.fields[0]
	if fw.value != cw.NewInteger(10) {
		t.Fatalf("ConstantValue: got #%d, want #%d", fw.value, cw.NewInteger(10))
	}
	if m := cw.methods[1]; m.synthetics != 1 || m.parameterCount != 2 {
		t.Fatalf("synthetic parameters %d, parameter count %d", m.synthetics, m.parameterCount)
	}
}
