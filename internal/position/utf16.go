// Package position converts between LSP's UTF-16 column offsets and the
// byte offsets the formatter works in.
package position

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 code unit offset within a line to a
// byte offset. An offset landing inside a surrogate pair clamps to the
// start of that rune; invalid UTF-8 bytes count as one unit each.
func UTF16ToByteOffset(s string, utf16Col int) int {
	if utf16Col <= 0 {
		return 0
	}

	units := 0
	byteOffset := 0

	for byteOffset < len(s) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(s[byteOffset:])
		if r == utf8.RuneError && size == 1 {
			byteOffset++
			units++
			continue
		}

		runeLen := utf16.RuneLen(r)
		if runeLen == 2 && units+1 == utf16Col {
			break
		}

		units += runeLen
		byteOffset += size
	}

	return byteOffset
}

// ByteOffsetToUTF16 is the inverse: it converts a byte offset within a
// line to a UTF-16 code unit offset. An offset landing mid-rune clamps to
// the start of that rune; offsets past the end clamp to the line length.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}

	units := 0
	for current := 0; current < byteOffset; {
		r, size := utf8.DecodeRuneInString(s[current:])
		if size == 0 || current+size > byteOffset {
			break
		}
		units += utf16.RuneLen(r)
		current += size
	}
	return units
}

// StringLengthUTF16 returns the length of a string in UTF-16 code units.
func StringLengthUTF16(s string) int {
	units := 0
	for _, r := range s {
		units += utf16.RuneLen(r)
	}
	return units
}
