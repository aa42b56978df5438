package mfm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/uax/emoji"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/rangetable"
)

const (
	variationText  = '\uFE0E'
	variationEmoji = '\uFE0F'
	keycapMark     = '\u20E3'
)

// newerPresentation lists the code points with emoji presentation which are missing from the uax
// tables, from the hindu temple (U+1F6D5) on.
var newerPresentation = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F6D5, Hi: 0x1F6D7, Stride: 1},
		{Lo: 0x1F6DC, Hi: 0x1F6DF, Stride: 1},
		{Lo: 0x1F6FA, Hi: 0x1F6FC, Stride: 1},
		{Lo: 0x1F7E0, Hi: 0x1F7EB, Stride: 1},
		{Lo: 0x1F7F0, Hi: 0x1F7F0, Stride: 1},
		{Lo: 0x1F90C, Hi: 0x1F90F, Stride: 1},
		{Lo: 0x1F93F, Hi: 0x1F93F, Stride: 1},
		{Lo: 0x1F971, Hi: 0x1F972, Stride: 1},
		{Lo: 0x1F977, Hi: 0x1F979, Stride: 1},
		{Lo: 0x1F97B, Hi: 0x1F97B, Stride: 1},
		{Lo: 0x1F9A3, Hi: 0x1F9AF, Stride: 1},
		{Lo: 0x1F9BA, Hi: 0x1F9BF, Stride: 1},
		{Lo: 0x1F9C3, Hi: 0x1F9CF, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FA7C, Stride: 1},
		{Lo: 0x1FA80, Hi: 0x1FA89, Stride: 1},
		{Lo: 0x1FA8F, Hi: 0x1FAC6, Stride: 1},
		{Lo: 0x1FACE, Hi: 0x1FADC, Stride: 1},
		{Lo: 0x1FADF, Hi: 0x1FAE9, Stride: 1},
		{Lo: 0x1FAF0, Hi: 0x1FAF8, Stride: 1},
	},
}

var (
	// emojiPresentation holds the code points rendered as emoji without a variation selector.
	emojiPresentation *unicode.RangeTable

	// pictographic holds the code points which become emoji when followed by U+FE0F,
	// e.g. "❤️" or "©️".
	pictographic *unicode.RangeTable
)

func init() {
	emoji.SetupEmojisClasses()
	emojiPresentation = rangetable.Merge(emoji.Emoji_Presentation, newerPresentation)
	pictographic = emoji.Extended_Pictographic
}

// isKeycapBase matches the chars which form a keycap sequence with U+20E3: [0-9#*].
func isKeycapBase(b byte) bool {
	return (b >= '0' && b <= '9') || b == '#' || b == '*'
}

// isRegionalIndicator matches U+1F1E6..U+1F1FF, the halves of a flag.
func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// emojiAt returns the emoji grapheme cluster starting at i, if there is one.
//
// A cluster counts as emoji when it is a keycap sequence, a pair of regional indicators, or is led
// by a code point with emoji presentation (by default or forced with U+FE0F).
func emojiAt(s string, i int) (string, bool) {
	if i >= len(s) {
		return "", false
	}

	// most of the input is ASCII text, which only matters as a keycap base
	b := s[i]
	if b < utf8.RuneSelf && !isKeycapBase(b) {
		return "", false
	}

	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(s[i:], -1)
	if cluster == "" {
		return "", false
	}

	if b < utf8.RuneSelf {
		if strings.ContainsRune(cluster, keycapMark) {
			return cluster, true
		}
		return "", false
	}

	lead, w := utf8.DecodeRuneInString(cluster)
	if lead == utf8.RuneError {
		return "", false
	}

	if isRegionalIndicator(lead) {
		next, _ := utf8.DecodeRuneInString(cluster[w:])
		if isRegionalIndicator(next) {
			return cluster, true
		}
		return "", false
	}

	if strings.ContainsRune(cluster, variationEmoji) && unicode.Is(pictographic, lead) {
		return cluster, true
	}

	if unicode.Is(emojiPresentation, lead) && !strings.ContainsRune(cluster, variationText) {
		return cluster, true
	}

	return "", false
}
