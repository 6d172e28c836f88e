package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUTF16ToByteOffset(t *testing.T) {
	cases := []struct {
		name     string
		s        string
		utf16Col int
		want     int
	}{
		{"empty string", "", 0, 0},
		{"ascii", "hello world", 5, 5},
		{"past end clamps", "hello", 100, 5},
		{"emoji is two units four bytes", "👍 hello", 2, 4},
		{"emoji mid line", "hello 👍 world", 8, 10},
		{"cjk is one unit three bytes", "颜色", 2, 6},
		{"mixed emoji and cjk", "👍颜色🎨", 6, 14},
		{"source line with emoji comment", "/* 👍 */ var color: f32", 7, 9},
		{"negative clamps to zero", "hello", -1, 0},
		{"invalid utf8 byte counts as one unit", "hello\xFFworld", 7, 7},
		{"mid surrogate pair clamps to rune start", "👍hello", 1, 0},
		{"after surrogate pair", "👍hello", 2, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UTF16ToByteOffset(tc.s, tc.utf16Col))
		})
	}
}

func TestByteOffsetToUTF16(t *testing.T) {
	cases := []struct {
		name       string
		s          string
		byteOffset int
		want       int
	}{
		{"empty string", "", 0, 0},
		{"ascii", "hello world", 5, 5},
		{"past end clamps", "hello", 100, 5},
		{"after four byte emoji", "👍 hello", 4, 2},
		{"emoji mid line", "hello 👍 world", 10, 8},
		{"cjk", "颜色", 6, 2},
		{"negative clamps to zero", "hello", -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ByteOffsetToUTF16(tc.s, tc.byteOffset))
		})
	}
}

func TestStringLengthUTF16(t *testing.T) {
	cases := []struct {
		name string
		s    string
		want int
	}{
		{"empty string", "", 0},
		{"ascii", "hello world", 11},
		{"single emoji", "👍", 2},
		{"cjk", "颜色", 2},
		{"mixed", "hello 👍 world", 14},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StringLengthUTF16(tc.s))
		})
	}
}

// The two conversions must invert each other at rune boundaries.
func TestOffsetRoundTrip(t *testing.T) {
	cases := []struct {
		name      string
		s         string
		positions []int
	}{
		{"ascii", "var color: f32;", []int{0, 1, 4, 10, 14, 15}},
		{"emoji", "👍 shader", []int{0, 2, 3, 4, 9}},
		{"cjk", "颜色 shader", []int{0, 1, 2, 3, 8}},
		{"empty", "", []int{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, pos := range tc.positions {
				bytePos := UTF16ToByteOffset(tc.s, pos)
				assert.Equal(t, pos, ByteOffsetToUTF16(tc.s, bytePos),
					"round trip failed for position %d in %q", pos, tc.s)
			}
		})
	}
}
