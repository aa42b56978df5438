package mfm

import "strings"

// ToString prints nodes back into MFM.
//
// A line break separates a block from its neighbours, since the grammar consumes the line breaks
// around a block. For a tree returned by [Parse] on canonical input the result equals that input.
func ToString(nodes []Node) string {
	var b strings.Builder

	prevBlock := false
	for i, n := range nodes {
		_, isBlock := n.(Block)
		if i > 0 && (isBlock || prevBlock) {
			b.WriteByte('\n')
		}
		b.WriteString(n.String())
		prevBlock = isBlock
	}

	return b.String()
}

// InlineString concatenates the printed inline nodes.
func InlineString(nodes []Inline) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.String())
	}
	return b.String()
}

// SimpleString concatenates the printed simple nodes.
func SimpleString(nodes []Simple) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.String())
	}
	return b.String()
}
