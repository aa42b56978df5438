package mfm

import "strings"

// block tries the block productions at pos in priority order.
func (p Parser) block(input string, pos int) (Block, int, bool) {
	if q, next, ok := p.quote(input, pos); ok {
		return q, next, true
	}
	if s, next, ok := search(input, pos); ok {
		return s, next, true
	}
	if c, next, ok := codeBlock(input, pos); ok {
		return c, next, true
	}
	if m, next, ok := mathBlock(input, pos); ok {
		return m, next, true
	}
	if c, next, ok := p.center(input, pos); ok {
		return c, next, true
	}
	return nil, 0, false
}

// quoteLine matches a single '>' line at i and returns its content and the line end.
func quoteLine(input string, i int) (content string, end int, ok bool) {
	if i >= len(input) || input[i] != '>' {
		return "", 0, false
	}
	i++
	for w := spaceAt(input, i); w > 0; w = spaceAt(input, i) {
		i += w
	}

	start := i
	for !isLineEnd(input, i) {
		i++
	}

	return input[start:i], i, true
}

// quote matches consecutive '>' lines. The joined content is parsed again as a separate document.
func (p Parser) quote(input string, pos int) (Quote, int, bool) {
	i := skipLineBreaks(input, pos, 2)
	if i >= len(input) || !isLineBegin(input, i) {
		return Quote{}, 0, false
	}

	first, end, ok := quoteLine(input, i)
	if !ok {
		return Quote{}, 0, false
	}

	lines := []string{first}
	i = end
	for {
		w := lineBreakAt(input, i)
		if w == 0 {
			break
		}
		line, lineEnd, ok := quoteLine(input, i+w)
		if !ok {
			break
		}
		lines = append(lines, line)
		i = lineEnd
	}

	// a lone empty line is not a quote
	if len(lines) == 1 && lines[0] == "" {
		return Quote{}, 0, false
	}

	i = skipLineBreaks(input, i, 2)
	content := strings.Join(lines, "\n")

	inner, canNest := p.nest()
	if !canNest {
		return Quote{Children: []Node{Text{Text: content}}}, i, true
	}

	return Quote{Children: inner.Parse(content)}, i, true
}

// searchButtonAt returns the width of the search button at i, one of "[検索]", "[search]",
// "検索" or "search", where "search" ignores case.
func searchButtonAt(input string, i int) int {
	for _, b := range []string{"[検索]", "検索"} {
		if strings.HasPrefix(input[i:], b) {
			return len(b)
		}
	}
	for _, b := range []string{"[search]", "search"} {
		if hasPrefixFold(input, i, b) {
			return len(b)
		}
	}
	return 0
}

// searchTailAt returns the width of space + button at i when the button ends the line.
func searchTailAt(input string, i int) int {
	sw := spaceAt(input, i)
	if sw == 0 {
		return 0
	}
	bw := searchButtonAt(input, i+sw)
	if bw == 0 || !isLineEnd(input, i+sw+bw) {
		return 0
	}
	return sw + bw
}

// search matches a single line ending with a search button.
func search(input string, pos int) (Search, int, bool) {
	i := skipLineBreaks(input, pos, 1)
	if i >= len(input) || !isLineBegin(input, i) {
		return Search{}, 0, false
	}

	start := i
	tail := 0
	for i < len(input) && lineBreakAt(input, i) == 0 {
		if i > start {
			if tail = searchTailAt(input, i); tail > 0 {
				break
			}
		}
		i += runeWidth(input, i)
	}

	if tail == 0 {
		return Search{}, 0, false
	}

	query := input[start:i]
	end := i + tail

	return Search{
		Query:   query,
		Content: input[start:end],
	}, skipLineBreaks(input, end, 1), true
}

// fenceCloseAt reports whether a line break followed by "```" and a line end is at i,
// and returns the position after the fence.
func fenceCloseAt(input string, i int) (int, bool) {
	w := lineBreakAt(input, i)
	if w == 0 || !strings.HasPrefix(input[i+w:], "```") {
		return 0, false
	}
	end := i + w + len("```")
	return end, isLineEnd(input, end)
}

// codeBlock matches a "```" fenced block with an optional language tag.
func codeBlock(input string, pos int) (CodeBlock, int, bool) {
	i := skipLineBreaks(input, pos, 1)
	if !isLineBeginOf(input, i, "```") {
		return CodeBlock{}, 0, false
	}
	i += len("```")

	langStart := i
	for !isLineEnd(input, i) {
		i++
	}
	lang := input[langStart:i]

	w := lineBreakAt(input, i)
	if w == 0 {
		return CodeBlock{}, 0, false
	}
	i += w

	codeStart := i
	for i < len(input) {
		if end, ok := fenceCloseAt(input, i); ok {
			if i == codeStart {
				return CodeBlock{}, 0, false
			}
			return CodeBlock{
				Code: input[codeStart:i],
				Lang: lang,
			}, skipLineBreaks(input, end, 1), true
		}
		i += runeWidth(input, i)
	}

	return CodeBlock{}, 0, false
}

// isLineBeginOf reports whether open starts a line at i.
func isLineBeginOf(input string, i int, open string) bool {
	return i < len(input) && isLineBegin(input, i) && strings.HasPrefix(input[i:], open)
}

// closeAt reports whether an optional line break followed by close is at i and returns
// the position right after close.
func closeAt(input string, i int, close string) (int, bool) {
	i += lineBreakAt(input, i)
	if !strings.HasPrefix(input[i:], close) {
		return 0, false
	}
	return i + len(close), true
}

// delimitedBlock matches open, an optional line break, a non-empty body, an optional line break
// and close at the end of a line. It is the shape shared by the math and center blocks.
func delimitedBlock(input string, pos int, open, close string) (body string, next int, ok bool) {
	i := skipLineBreaks(input, pos, 1)
	if !isLineBeginOf(input, i, open) {
		return "", 0, false
	}
	i = skipLineBreaks(input, i+len(open), 1)

	start := i
	for i < len(input) {
		if end, found := closeAt(input, i, close); found {
			if i == start || !isLineEnd(input, end) {
				return "", 0, false
			}
			return input[start:i], skipLineBreaks(input, end, 1), true
		}
		i += runeWidth(input, i)
	}

	return "", 0, false
}

func mathBlock(input string, pos int) (MathBlock, int, bool) {
	formula, next, ok := delimitedBlock(input, pos, `\[`, `\]`)
	if !ok {
		return MathBlock{}, 0, false
	}
	return MathBlock{Formula: formula}, next, true
}

// center matches a "<center>" block. Only inline content is allowed inside.
func (p Parser) center(input string, pos int) (Center, int, bool) {
	body, next, ok := delimitedBlock(input, pos, "<center>", "</center>")
	if !ok {
		return Center{}, 0, false
	}

	inner, canNest := p.nest()
	if !canNest {
		return Center{Children: []Inline{Text{Text: body}}}, next, true
	}

	return Center{Children: inner.parseInlines(body)}, next, true
}
