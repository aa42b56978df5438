package mfm

import "strings"

// emojiCode matches ":name:" when neither colon is glued to an ASCII alphanumeric.
func emojiCode(input string, pos int) (EmojiCode, int, bool) {
	if input[pos] != ':' || precededByAlnum(input, pos) {
		return EmojiCode{}, 0, false
	}

	start := pos + 1
	end := scanBytes(input, start, isEmojiNameChar)
	if end == start || end >= len(input) || input[end] != ':' {
		return EmojiCode{}, 0, false
	}

	if followedByAlnum(input, end+1) {
		return EmojiCode{}, 0, false
	}

	return EmojiCode{Name: input[start:end]}, end + 1, true
}

func emojiCodeInline(input string, pos int) (Inline, int, bool) {
	e, next, ok := emojiCode(input, pos)
	if !ok {
		return nil, 0, false
	}
	return e, next, true
}

// plain matches "<plain>" up to "</plain>". A line break right after the opener and right before
// the closer is not part of the body.
func plain(input string, pos int) (Inline, int, bool) {
	const open, close = "<plain>", "</plain>"

	i := skipLineBreaks(input, pos+len(open), 1)
	start := i
	for i < len(input) {
		if end, ok := closeAt(input, i, close); ok {
			if i == start {
				return nil, 0, false
			}
			return Plain{Body: Text{Text: input[start:i]}}, end, true
		}
		i += runeWidth(input, i)
	}

	return nil, 0, false
}

// inlineCode matches a single-line code span. The acute accent never appears inside because some
// keyboard layouts produce it instead of a backtick.
func inlineCode(input string, pos int) (Inline, int, bool) {
	start := pos + 1

	i := start
	for i < len(input) {
		switch {
		case input[i] == '`':
			if i == start {
				return nil, 0, false
			}
			return InlineCode{Code: input[start:i]}, i + 1, true
		case input[i] == '\n' || input[i] == '\r':
			return nil, 0, false
		case strings.HasPrefix(input[i:], "´"):
			return nil, 0, false
		}
		i += runeWidth(input, i)
	}

	return nil, 0, false
}

// mathInline matches `\(formula\)` on a single line.
func mathInline(input string, pos int) (Inline, int, bool) {
	const open, close = `\(`, `\)`
	if !strings.HasPrefix(input[pos:], open) {
		return nil, 0, false
	}

	start := pos + len(open)
	i := start
	for i < len(input) {
		if strings.HasPrefix(input[i:], close) {
			if i == start {
				return nil, 0, false
			}
			return MathInline{Formula: input[start:i]}, i + len(close), true
		}
		if input[i] == '\n' || input[i] == '\r' {
			return nil, 0, false
		}
		i += runeWidth(input, i)
	}

	return nil, 0, false
}

// mention matches "@user" and "@user@host".
//
// Trailing '.' and '-' are cut off the host, and trailing '-' off a local username, so that
// punctuation after a mention stays text. A malformed mention is consumed as plain text.
func (p Parser) mention(input string, pos int) (Inline, int, bool) {
	if p.linkLabel || precededByAlnum(input, pos) {
		return nil, 0, false
	}

	userStart := pos + 1
	userEnd := scanBytes(input, userStart, isUsernameChar)
	if userEnd == userStart {
		return nil, 0, false
	}
	username := input[userStart:userEnd]
	end := userEnd

	host, hasHost := "", false
	if end < len(input) && input[end] == '@' {
		hostEnd := scanBytes(input, end+1, isHostChar)
		if hostEnd > end+1 {
			host, hasHost = input[end+1:hostEnd], true
			end = hostEnd
		}
	}

	invalid := false
	if hasHost {
		host = strings.TrimRight(host, ".-")
		if host == "" {
			invalid = true
			hasHost = false
		}
	}

	if trimmed := strings.TrimRight(username, "-"); trimmed != username {
		if hasHost {
			// the username can't be shortened when a host follows it
			invalid = true
		} else {
			username = trimmed
		}
	}

	if username == "" || username[0] == '-' {
		invalid = true
	}
	if hasHost && (host[0] == '.' || host[0] == '-') {
		invalid = true
	}

	if invalid {
		return Text{Text: input[pos:end]}, end, true
	}

	acct := "@" + username
	if hasHost {
		acct += "@" + host
	}

	return Mention{
		Username: username,
		Host:     host,
		Acct:     acct,
	}, pos + len(acct), true
}

// bracketPair is an opening and a closing bracket allowed to nest inside a hashtag or url.
type bracketPair struct {
	open, close string
}

var (
	hashtagBrackets = []bracketPair{{"(", ")"}, {"[", "]"}, {"「", "」"}, {"（", "）"}}
	urlBrackets     = []bracketPair{{"(", ")"}, {"[", "]"}}
)

// bracketed scans a run of items from i and returns where it stops. An item is either a single
// char accepted by char, or a balanced bracket pair around more items. Bracket nesting counts
// towards the nesting limit.
func (p Parser) bracketed(input string, i int, pairs []bracketPair, char func(string, int) (int, bool)) int {
	for i < len(input) {
		next, ok := p.bracketItem(input, i, pairs, char)
		if !ok {
			break
		}
		i = next
	}
	return i
}

func (p Parser) bracketItem(input string, i int, pairs []bracketPair, char func(string, int) (int, bool)) (int, bool) {
	for _, pair := range pairs {
		if !strings.HasPrefix(input[i:], pair.open) {
			continue
		}
		inner, canNest := p.nest()
		if !canNest {
			break
		}
		end := inner.bracketed(input, i+len(pair.open), pairs, char)
		if strings.HasPrefix(input[end:], pair.close) {
			return end + len(pair.close), true
		}
		break
	}

	w, ok := char(input, i)
	if !ok {
		return 0, false
	}
	return i + w, true
}

// hashtag matches "#tag". Tags made only of digits are rejected.
func (p Parser) hashtag(input string, pos int) (Inline, int, bool) {
	if p.linkLabel || precededByAlnum(input, pos) {
		return nil, 0, false
	}

	start := pos + 1
	end := p.bracketed(input, start, hashtagBrackets, isHashtagCharAt)
	if end == start {
		return nil, 0, false
	}

	tag := input[start:end]
	if isDigits(tag) {
		return nil, 0, false
	}

	return Hashtag{Hashtag: tag}, end, true
}

func urlCharAt(input string, i int) (int, bool) {
	if i < len(input) && isURLChar(input[i]) {
		return 1, true
	}
	return 0, false
}

// urlSchemaAt returns the width of "https://" or "http://" at i.
func urlSchemaAt(input string, i int) int {
	for _, schema := range []string{"https://", "http://"} {
		if strings.HasPrefix(input[i:], schema) {
			return len(schema)
		}
	}
	return 0
}

// url matches a bare url. Trailing '.' and ',' are left out of it; a url made of nothing else is
// consumed as plain text.
func (p Parser) url(input string, pos int) (Inline, int, bool) {
	if p.linkLabel {
		return nil, 0, false
	}

	sw := urlSchemaAt(input, pos)
	if sw == 0 {
		return nil, 0, false
	}

	start := pos + sw
	end := p.bracketed(input, start, urlBrackets, urlCharAt)
	if end == start {
		return nil, 0, false
	}

	trimmed := strings.TrimRight(input[start:end], ".,")
	if trimmed == "" {
		return Text{Text: input[pos:end]}, end, true
	}

	next := start + len(trimmed)
	return URL{URL: input[pos:next]}, next, true
}

// bracketedURL matches "<http(s)://...>", which may hold any char except spaces and '>'.
func (p Parser) bracketedURL(input string, pos int) (URL, int, bool) {
	if p.linkLabel || !strings.HasPrefix(input[pos:], "<") {
		return URL{}, 0, false
	}

	start := pos + 1
	sw := urlSchemaAt(input, start)
	if sw == 0 {
		return URL{}, 0, false
	}

	i := start + sw
	for i < len(input) && input[i] != '>' && spaceAt(input, i) == 0 {
		i += runeWidth(input, i)
	}

	if i == start+sw || i >= len(input) || input[i] != '>' {
		return URL{}, 0, false
	}

	return URL{URL: input[start:i], Brackets: true}, i + 1, true
}
