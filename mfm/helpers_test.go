package mfm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type parseCase struct {
	name  string
	input string
	want  []Node
}

func txt(s string) Text {
	return Text{Text: s}
}

func doc(n ...Node) []Node {
	return n
}

func inl(n ...Inline) []Inline {
	return n
}

func runParseCases(t *testing.T, nestLimit int, cases []parseCase) {
	t.Helper()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseWithNestLimit(tc.input, nestLimit)
			require.Equal(t, tc.want, got)
			requireMergedTexts(t, got)
		})
	}
}

// requireMergedTexts fails when two text nodes are neighbours anywhere in the tree.
func requireMergedTexts(t *testing.T, tree []Node) {
	t.Helper()

	requireNoTextRun(t, tree)
	Inspect(tree, func(n Node) bool {
		switch n := n.(type) {
		case Quote:
			requireNoTextRun(t, n.Children)
		case Center:
			requireNoTextRun(t, n.Children)
		case Bold:
			requireNoTextRun(t, n.Children)
		case Small:
			requireNoTextRun(t, n.Children)
		case Italic:
			requireNoTextRun(t, n.Children)
		case Strike:
			requireNoTextRun(t, n.Children)
		case Link:
			requireNoTextRun(t, n.Children)
		case Fn:
			requireNoTextRun(t, n.Children)
		}
		return true
	})
}

func requireNoTextRun[T textual](t *testing.T, level []T) {
	t.Helper()

	for i := 1; i < len(level); i++ {
		require.False(t,
			level[i-1].Type() == NodeText && level[i].Type() == NodeText,
			"adjacent texts at %d: %q %q", i, level[i-1].String(), level[i].String(),
		)
	}
}
