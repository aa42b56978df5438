package mfm

import "strings"

// DefaultNestLimit is the nesting depth used by [Parse].
const DefaultNestLimit = 20

// Parser holds the configuration of the full grammar. It is an immutable value: recursion into a
// container works on a copy with an increased depth, so a Parser is safe for concurrent use.
type Parser struct {
	nestLimit int
	depth     int

	// linkLabel is set while parsing a link label, where mentions, hashtags, urls and links
	// are not recognized.
	linkLabel bool

	// failed is owned by a single Parse call.
	failed failures
}

// failures remembers the container spans which already failed during one parse. Unclosed openers
// would otherwise make every enclosing container rescan the rest of the input.
type failures map[failKey]struct{}

type failKey struct {
	pos         int
	depth       int
	close       string
	noLineBreak bool
	linkLabel   bool
}

// NewParser returns a Parser which re-parses the content of containers until the nesting depth
// reaches nestLimit. Deeper content is kept as plain text. Negative limits are treated as 0.
func NewParser(nestLimit int) Parser {
	return Parser{nestLimit: max(nestLimit, 0)}
}

// NestLimit returns the configured nesting limit.
func (p Parser) NestLimit() int {
	return p.nestLimit
}

// nest returns a copy of p one level deeper and reports whether content at that level may
// still be parsed.
func (p Parser) nest() (Parser, bool) {
	inner := p
	inner.depth++
	return inner, inner.depth < p.nestLimit
}

// inLabel returns a copy of p for parsing a link label.
func (p Parser) inLabel() Parser {
	inner := p
	inner.linkLabel = true
	return inner
}

// Parse builds the full MFM tree of input. It never fails: anything which does not form a
// construct ends up in a [Text] node.
func (p Parser) Parse(input string) []Node {
	p.failed = failures{}

	var nodes []Node

	for pos := 0; pos < len(input); {
		if b, next, ok := p.block(input, pos); ok {
			nodes = append(nodes, b)
			pos = next
			continue
		}

		n, next := p.inline(input, pos)
		nodes = append(nodes, n)
		pos = next
	}

	return mergeText(nodes)
}

// parseInlines runs the inline grammar over the whole input.
func (p Parser) parseInlines(input string) []Inline {
	p.failed = failures{}

	var nodes []Inline

	for pos := 0; pos < len(input); {
		n, next := p.inline(input, pos)
		nodes = append(nodes, n)
		pos = next
	}

	return mergeText(nodes)
}

// Parse builds the full MFM tree of input with [DefaultNestLimit].
func Parse(input string) []Node {
	return NewParser(DefaultNestLimit).Parse(input)
}

// ParseWithNestLimit builds the full MFM tree of input with a custom nesting limit.
func ParseWithNestLimit(input string, nestLimit int) []Node {
	return NewParser(nestLimit).Parse(input)
}

// span describes the inline content of a container: where it ends and what may not occur in it.
type span struct {
	close string

	// noLineBreak fails the span when a line break shows up at a child position.
	noLineBreak bool
}

// children scans the child inlines of a container from pos until sp.close shows up at a child
// boundary. It returns the children and the position right after the closer.
//
// At the nesting limit the content up to the closer becomes a single [Text] instead.
// The span fails when the closer is missing or no child precedes it.
func (p Parser) children(input string, pos int, sp span) ([]Inline, int, bool) {
	inner, canNest := p.nest()
	if !canNest {
		return literalChildren(input, pos, sp)
	}

	key := failKey{depth: p.depth, close: sp.close, noLineBreak: sp.noLineBreak, linkLabel: p.linkLabel}

	// a scan which fails reaches the same end from every boundary it passed, so all of them
	// are remembered as failed
	var visited []int
	fail := func() ([]Inline, int, bool) {
		if p.failed != nil {
			for _, at := range visited {
				key.pos = at
				p.failed[key] = struct{}{}
			}
		}
		return nil, 0, false
	}

	var nodes []Inline

	i := pos
	for {
		key.pos = i
		if _, seen := p.failed[key]; seen {
			return fail()
		}
		visited = append(visited, i)

		if i >= len(input) {
			return fail()
		}
		if strings.HasPrefix(input[i:], sp.close) {
			break
		}
		if sp.noLineBreak && (input[i] == '\n' || input[i] == '\r') {
			return fail()
		}

		n, after := inner.inline(input, i)
		nodes = append(nodes, n)
		i = after
	}

	if i == pos {
		return nil, 0, false
	}

	return mergeText(nodes), i + len(sp.close), true
}

// literalChildren captures the content up to the closer as text. The closers are ASCII, so a byte
// search never matches inside a multibyte char.
func literalChildren(input string, pos int, sp span) ([]Inline, int, bool) {
	end := strings.Index(input[pos:], sp.close)
	if end <= 0 {
		return nil, 0, false
	}

	body := input[pos : pos+end]
	if sp.noLineBreak && strings.ContainsAny(body, "\r\n") {
		return nil, 0, false
	}

	return []Inline{Text{Text: body}}, pos + end + len(sp.close), true
}

// container parses open, the children and the closer of sp. Once open has matched the production
// never fails: without a valid body open is yielded as text and the scan resumes behind it.
func (p Parser) container(input string, pos int, open string, sp span, build func([]Inline) Inline) (Inline, int, bool) {
	children, next, ok := p.children(input, pos+len(open), sp)
	if !ok {
		return Text{Text: open}, pos + len(open), true
	}
	return build(children), next, true
}
