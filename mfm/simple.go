package mfm

// ParseSimple builds a tree of the simple grammar, which only knows emoji and text. It is meant
// for short strings like display names, where no other markup is rendered.
func ParseSimple(input string) []Simple {
	var nodes []Simple

	for pos := 0; pos < len(input); {
		if e, ok := emojiAt(input, pos); ok {
			nodes = append(nodes, UnicodeEmoji{Emoji: e})
			pos += len(e)
			continue
		}

		if input[pos] == ':' {
			if e, next, ok := emojiCode(input, pos); ok {
				nodes = append(nodes, e)
				pos = next
				continue
			}
		}

		w := runeWidth(input, pos)
		nodes = append(nodes, Text{Text: input[pos : pos+w]})
		pos += w
	}

	return mergeText(nodes)
}
