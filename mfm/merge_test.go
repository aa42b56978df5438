package mfm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeText(t *testing.T) {
	in := inl(
		txt("a"),
		txt("b"),
		Bold{Children: inl(txt("x"))},
		txt("c"),
		txt("d"),
		txt("e"),
	)

	want := inl(
		txt("ab"),
		Bold{Children: inl(txt("x"))},
		txt("cde"),
	)

	require.Equal(t, want, mergeText(in))
}

func TestMergeText_NoTexts(t *testing.T) {
	in := doc(EmojiCode{Name: "a"}, EmojiCode{Name: "b"})
	require.Equal(t, in, mergeText(in))
}

func TestMergeText_Short(t *testing.T) {
	require.Nil(t, mergeText[Node](nil))

	one := []Simple{txt("a")}
	require.Equal(t, one, mergeText(one))
}
