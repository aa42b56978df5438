package mfm

import (
	"strings"
	"unicode/utf8"
)

// lineBreakAt returns the byte width of the line break starting at i: 1 for "\n", 2 for "\r\n",
// and 0 when there is none.
func lineBreakAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	switch s[i] {
	case '\n':
		return 1
	case '\r':
		if i+1 < len(s) && s[i+1] == '\n' {
			return 2
		}
	}
	return 0
}

// skipLineBreaks consumes up to limit line breaks starting at i and returns the new position.
func skipLineBreaks(s string, i, limit int) int {
	for n := 0; n < limit; n++ {
		w := lineBreakAt(s, i)
		if w == 0 {
			break
		}
		i += w
	}
	return i
}

// isLineBegin reports whether i is at the start of the input or right after a line break.
// A bare '\r' is not a line break, see [lineBreakAt].
func isLineBegin(s string, i int) bool {
	return i == 0 || s[i-1] == '\n'
}

// isLineEnd reports whether i is at the end of the input or in front of a line break.
func isLineEnd(s string, i int) bool {
	return i >= len(s) || lineBreakAt(s, i) > 0
}

// spaceAt returns the byte width of the horizontal space at i: U+0020, TAB or U+3000.
func spaceAt(s string, i int) int {
	if i >= len(s) {
		return 0
	}
	switch s[i] {
	case ' ', '\t':
		return 1
	}
	if strings.HasPrefix(s[i:], "\u3000") {
		return len("\u3000")
	}
	return 0
}

// isASCIIAlphanum return true if b is one of these symbols:
// 0 1 2 3 4 5 6 7 8 9
// a b c d e f g h i j k l m
// n o p q r s t u v w x y z
// A B C D E F G H I J K L M
// N O P Q R S T U V W X Y Z
func isASCIIAlphanum(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}

// precededByAlnum reports whether the byte right before i is an ASCII alphanumeric.
// The last byte of a multibyte code point is never ASCII, so looking at one byte is enough.
func precededByAlnum(s string, i int) bool {
	return i > 0 && isASCIIAlphanum(s[i-1])
}

// followedByAlnum reports whether the byte at i is an ASCII alphanumeric.
func followedByAlnum(s string, i int) bool {
	return i < len(s) && isASCIIAlphanum(s[i])
}

// runeWidth returns the byte count of the char at i. Invalid UTF-8 is consumed one byte at a time.
//
// WARNING: i must be less than len(s).
func runeWidth(s string, i int) int {
	if s[i] < utf8.RuneSelf {
		return 1
	}
	_, w := utf8.DecodeRuneInString(s[i:])
	return w
}

// scanBytes advances from i while accept holds for the current byte and returns the stop position.
func scanBytes(s string, i int, accept func(byte) bool) int {
	for i < len(s) && accept(s[i]) {
		i++
	}
	return i
}

// hasPrefixFold is like [strings.HasPrefix] but ignores ASCII case.
func hasPrefixFold(s string, i int, prefix string) bool {
	return len(s)-i >= len(prefix) && strings.EqualFold(s[i:i+len(prefix)], prefix)
}

// isEmojiNameChar matches [A-Za-z0-9_+-].
func isEmojiNameChar(b byte) bool {
	return isASCIIAlphanum(b) || b == '_' || b == '+' || b == '-'
}

// isUsernameChar matches [A-Za-z0-9_-].
func isUsernameChar(b byte) bool {
	return isASCIIAlphanum(b) || b == '_' || b == '-'
}

// isHostChar matches [A-Za-z0-9_.-].
func isHostChar(b byte) bool {
	return isUsernameChar(b) || b == '.'
}

// isFnNameChar matches [A-Za-z0-9_], which is also the alphabet of fn argument keys.
func isFnNameChar(b byte) bool {
	return isASCIIAlphanum(b) || b == '_'
}

// isFnValueChar matches [A-Za-z0-9_.-].
func isFnValueChar(b byte) bool {
	return isFnNameChar(b) || b == '.' || b == '-'
}

// isURLChar matches [.,a-zA-Z0-9_/:%#@$&?!~=+-].
func isURLChar(b byte) bool {
	if isASCIIAlphanum(b) {
		return true
	}
	return strings.IndexByte(".,_/:%#@$&?!~=+-", b) >= 0
}

// hashtagExcluded lists the chars which terminate a hashtag, besides spaces and line breaks.
const hashtagExcluded = ".,!?'\"#:/[]【】()「」（）<>"

// isHashtagCharAt reports whether the char at i may appear in a hashtag and returns its width.
func isHashtagCharAt(s string, i int) (width int, ok bool) {
	if i >= len(s) || spaceAt(s, i) > 0 || s[i] == '\n' || s[i] == '\r' {
		return 0, false
	}
	r, w := utf8.DecodeRuneInString(s[i:])
	if r != utf8.RuneError && strings.ContainsRune(hashtagExcluded, r) {
		return 0, false
	}
	return w, true
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
