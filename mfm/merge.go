package mfm

// textual is satisfied by every node alphabet which has a Text variant:
// [Node], [Inline] and [Simple].
type textual interface {
	String() string
	Type() NodeType
}

// mergeText folds adjacent Text elements of nodes into one, keeping the order of
// everything else. The result never contains two neighbouring Text values.
func mergeText[T textual](nodes []T) []T {
	if len(nodes) < 2 {
		return nodes
	}

	out := make([]T, 0, len(nodes))

	// pending collects the run of adjacent texts, flushed on the first non-text
	var pending []byte
	inRun := false

	flush := func() {
		if !inRun {
			return
		}
		out = append(out, any(Text{Text: string(pending)}).(T))
		pending = pending[:0]
		inRun = false
	}

	for _, n := range nodes {
		if t, ok := any(n).(Text); ok {
			pending = append(pending, t.Text...)
			inRun = true
			continue
		}
		flush()
		out = append(out, n)
	}
	flush()

	return out
}
