package mfm

import "strings"

// inline parses one inline element at pos. The productions are tried in priority order and a
// single char of [Text] is the fallback, so inline always advances.
func (p Parser) inline(input string, pos int) (Inline, int) {
	if e, ok := emojiAt(input, pos); ok {
		return UnicodeEmoji{Emoji: e}, pos + len(e)
	}

	var (
		n    Inline
		next int
		ok   bool
	)

	// only productions which may start with the current byte are tried, in their relative order
	switch input[pos] {
	case ':':
		n, next, ok = emojiCodeInline(input, pos)
	case '<':
		n, next, ok = p.angle(input, pos)
	case '*':
		n, next, ok = p.asterisk(input, pos)
	case '_':
		n, next, ok = underscore(input, pos)
	case '~':
		if strings.HasPrefix(input[pos:], "~~") {
			n, next, ok = p.container(input, pos, "~~", span{close: "~~", noLineBreak: true}, strike)
		}
	case '`':
		n, next, ok = inlineCode(input, pos)
	case '\\':
		n, next, ok = mathInline(input, pos)
	case '@':
		n, next, ok = p.mention(input, pos)
	case '#':
		n, next, ok = p.hashtag(input, pos)
	case 'h':
		n, next, ok = p.url(input, pos)
	case '[', '?':
		n, next, ok = p.link(input, pos)
	case '$':
		n, next, ok = p.fn(input, pos)
	}

	if ok {
		return n, next
	}

	w := runeWidth(input, pos)
	return Text{Text: input[pos : pos+w]}, pos + w
}

func bold(children []Inline) Inline   { return Bold{Children: children} }
func small(children []Inline) Inline  { return Small{Children: children} }
func italic(children []Inline) Inline { return Italic{Children: children} }
func strike(children []Inline) Inline { return Strike{Children: children} }

func tada(children []Inline) Inline {
	return Fn{Name: "tada", Children: children}
}

// angle handles everything which starts with '<': plain, the tag forms and bracketed urls.
func (p Parser) angle(input string, pos int) (Inline, int, bool) {
	rest := input[pos:]

	switch {
	case strings.HasPrefix(rest, "<plain>"):
		return plain(input, pos)
	case strings.HasPrefix(rest, "<b>"):
		return p.container(input, pos, "<b>", span{close: "</b>"}, bold)
	case strings.HasPrefix(rest, "<small>"):
		return p.container(input, pos, "<small>", span{close: "</small>"}, small)
	case strings.HasPrefix(rest, "<i>"):
		return p.container(input, pos, "<i>", span{close: "</i>"}, italic)
	case strings.HasPrefix(rest, "<s>"):
		return p.container(input, pos, "<s>", span{close: "</s>"}, strike)
	}

	u, next, ok := p.bracketedURL(input, pos)
	if !ok {
		return nil, 0, false
	}
	return u, next, true
}

// asterisk handles big ("***"), bold ("**") and italic ("*").
func (p Parser) asterisk(input string, pos int) (Inline, int, bool) {
	rest := input[pos:]

	switch {
	case strings.HasPrefix(rest, "***"):
		return p.container(input, pos, "***", span{close: "***"}, tada)
	case strings.HasPrefix(rest, "**"):
		return p.container(input, pos, "**", span{close: "**"}, bold)
	}

	if precededByAlnum(input, pos) {
		return nil, 0, false
	}
	return markedRun(input, pos, "*", italic)
}

// underscore handles bold ("__") and italic ("_"). Both only hold ASCII alphanumerics and spaces.
func underscore(input string, pos int) (Inline, int, bool) {
	if strings.HasPrefix(input[pos:], "__") {
		if n, next, ok := markedRun(input, pos, "__", bold); ok {
			return n, next, true
		}
	}

	if precededByAlnum(input, pos) {
		return nil, 0, false
	}
	return markedRun(input, pos, "_", italic)
}

// markedRun matches mark, a non-empty run of ASCII alphanumerics and spaces, and mark again.
func markedRun(input string, pos int, mark string, build func([]Inline) Inline) (Inline, int, bool) {
	start := pos + len(mark)

	i := start
	for i < len(input) {
		if isASCIIAlphanum(input[i]) {
			i++
			continue
		}
		w := spaceAt(input, i)
		if w == 0 {
			break
		}
		i += w
	}

	if i == start || !strings.HasPrefix(input[i:], mark) {
		return nil, 0, false
	}

	return build([]Inline{Text{Text: input[start:i]}}), i + len(mark), true
}

// link matches "[label](url)" and the silent "?[label](url)".
func (p Parser) link(input string, pos int) (Inline, int, bool) {
	if p.linkLabel {
		return nil, 0, false
	}

	silent := false
	i := pos
	switch {
	case strings.HasPrefix(input[i:], "?["):
		silent = true
		i += 2
	case strings.HasPrefix(input[i:], "["):
		i++
	default:
		return nil, 0, false
	}

	label, next, ok := p.inLabel().children(input, i, span{close: "]", noLineBreak: true})
	if !ok || !strings.HasPrefix(input[next:], "(") {
		return nil, 0, false
	}

	u, after, ok := p.linkTarget(input, next+1)
	if !ok || !strings.HasPrefix(input[after:], ")") {
		return nil, 0, false
	}

	return Link{
		URL:      u.URL,
		Silent:   silent,
		Children: label,
	}, after + 1, true
}

// linkTarget matches the url of a link, bracketed or bare.
func (p Parser) linkTarget(input string, pos int) (URL, int, bool) {
	if u, next, ok := p.bracketedURL(input, pos); ok {
		return u, next, true
	}

	n, next, ok := p.url(input, pos)
	if !ok {
		return URL{}, 0, false
	}
	u, isURL := n.(URL)
	return u, next, isURL
}

// fn matches "$[name.arg1,arg2=value content]".
func (p Parser) fn(input string, pos int) (Inline, int, bool) {
	const open = "$["
	if !strings.HasPrefix(input[pos:], open) {
		return nil, 0, false
	}
	opener := Text{Text: open}
	i := pos + len(open)

	nameEnd := scanBytes(input, i, isFnNameChar)
	if nameEnd == i {
		return opener, i, true
	}
	name := input[i:nameEnd]
	i = nameEnd

	var args []FnArg
	if i < len(input) && input[i] == '.' {
		if parsed, next, ok := fnArgs(input, i+1); ok {
			args = parsed
			i = next
		}
	}

	if i >= len(input) || input[i] != ' ' {
		return opener, pos + len(open), true
	}

	children, next, ok := p.children(input, i+1, span{close: "]"})
	if !ok {
		return opener, pos + len(open), true
	}

	return Fn{Name: name, Args: args, Children: children}, next, true
}

// fnArgs matches a ','-separated list of "key" and "key=value" arguments.
func fnArgs(input string, pos int) ([]FnArg, int, bool) {
	var args []FnArg

	i := pos
	for {
		keyEnd := scanBytes(input, i, isFnNameChar)
		if keyEnd == i {
			break
		}
		arg := FnArg{Key: input[i:keyEnd]}
		i = keyEnd

		if i < len(input) && input[i] == '=' {
			valueEnd := scanBytes(input, i+1, isFnValueChar)
			if valueEnd > i+1 {
				arg.Value = input[i+1 : valueEnd]
				i = valueEnd
			}
		}
		args = append(args, arg)

		if i+1 < len(input) && input[i] == ',' && isFnNameChar(input[i+1]) {
			i++
			continue
		}
		break
	}

	if len(args) == 0 {
		return nil, 0, false
	}
	return args, i, true
}
