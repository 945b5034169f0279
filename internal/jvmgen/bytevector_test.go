package jvmgen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tangzhangming/jvmasm/internal/errors"
)

func TestByteVectorPut(t *testing.T) {
	bv := NewByteVectorSize(1)
	bv.PutByte(1).PutShort(0x0203).PutInt(0x04050607).PutLong(0x08090A0B0C0D0E0F)
	bv.Put11(0x10, 0x11).Put12(0x12, 0x1314)
	want := []byte{
		1, 2, 3, 4, 5, 6, 7,
		8, 9, 10, 11, 12, 13, 14, 15,
		0x10, 0x11, 0x12, 0x13, 0x14,
	}
	if !bytes.Equal(bv.Bytes(), want) {
		t.Fatalf("bytes: got %v, want %v", bv.Bytes(), want)
	}
	if bv.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", bv.Len(), len(want))
	}
}

func TestByteVectorPutByteArray(t *testing.T) {
	bv := NewByteVector()
	bv.PutByteArray([]byte{1, 2, 3, 4}, 2)
	bv.PutByteArray(nil, 3)
	if want := []byte{1, 2, 0, 0, 0}; !bytes.Equal(bv.Bytes(), want) {
		t.Fatalf("bytes: got %v, want %v", bv.Bytes(), want)
	}
}

func TestByteVectorGrowth(t *testing.T) {
	bv := NewByteVectorSize(2)
	for i := 0; i < 1000; i++ {
		bv.PutByte(i)
	}
	if bv.Len() != 1000 {
		t.Fatalf("Len: got %d, want 1000", bv.Len())
	}
	if bv.Bytes()[999] != byte(999%256) {
		t.Fatalf("last byte: got %d", bv.Bytes()[999])
	}
}

// ============================================================================
// modified UTF-8
// ============================================================================

func TestPutUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"ascii", "abc", []byte{0, 3, 'a', 'b', 'c'}},
		{"empty", "", []byte{0, 0}},
		{"two bytes", "é", []byte{0, 2, 0xC3, 0xA9}},
		{"nul", "\x00", []byte{0, 2, 0xC0, 0x80}},
		{"three bytes", "€", []byte{0, 3, 0xE2, 0x82, 0xAC}},
		{"surrogate pair", "😀", []byte{0, 6, 0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}},
		{"mixed", "aé", []byte{0, 3, 'a', 0xC3, 0xA9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bv := NewByteVector()
			bv.PutUTF8(tt.in)
			if bv.Err() != nil {
				t.Fatalf("unexpected error: %v", bv.Err())
			}
			if !bytes.Equal(bv.Bytes(), tt.want) {
				t.Fatalf("PutUTF8(%q): got %v, want %v", tt.in, bv.Bytes(), tt.want)
			}
			if got := modifiedUTF8(tt.in); !bytes.Equal(got, tt.want[2:]) && !(len(got) == 0 && len(tt.want) == 2) {
				t.Fatalf("modifiedUTF8(%q): got %v, want %v", tt.in, got, tt.want[2:])
			}
		})
	}
}

func TestPutUTF8TooLong(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"too many chars", strings.Repeat("a", 65536)},
		{"too many bytes", strings.Repeat("é", 40000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bv := NewByteVector()
			bv.PutByte(7)
			bv.PutUTF8(tt.in)
			if errors.CodeOf(bv.Err()) != errors.J0203 {
				t.Fatalf("error: got %v, want J0203", bv.Err())
			}
			if bv.Len() != 1 {
				t.Fatalf("failed string should not be written, Len %d", bv.Len())
			}
		})
	}
	bv := NewByteVector()
	bv.PutUTF8(strings.Repeat("é", 30000))
	if bv.Err() != nil || bv.Len() != 60002 {
		t.Fatalf("60000-byte string: got len %d err %v", bv.Len(), bv.Err())
	}
}
