package mfm

import (
	"reflect"
	"strings"
)

// NodeType identifies the kind of a node in the tree, e.g. "bold", "quote", "text".
// The values are also used as the "type" discriminator of the serialized tree.
type NodeType string

const (
	NodeQuote        NodeType = "quote"
	NodeSearch       NodeType = "search"
	NodeCodeBlock    NodeType = "blockCode"
	NodeMathBlock    NodeType = "mathBlock"
	NodeCenter       NodeType = "center"
	NodeUnicodeEmoji NodeType = "unicodeEmoji"
	NodeEmojiCode    NodeType = "emojiCode"
	NodeBold         NodeType = "bold"
	NodeSmall        NodeType = "small"
	NodeItalic       NodeType = "italic"
	NodeStrike       NodeType = "strike"
	NodeInlineCode   NodeType = "inlineCode"
	NodeMathInline   NodeType = "mathInline"
	NodeMention      NodeType = "mention"
	NodeHashtag      NodeType = "hashtag"
	NodeURL          NodeType = "url"
	NodeLink         NodeType = "link"
	NodeFn           NodeType = "fn"
	NodePlain        NodeType = "plain"
	NodeText         NodeType = "text"
)

// Node is a parsed element of an MFM tree: either a [Block] or an [Inline].
//
// The set of implementations is closed, so a type switch over the variants listed
// in this file is exhaustive.
type Node interface {
	// String returns the canonical MFM text of the node.
	String() string

	// Type returns the node's kind.
	Type() NodeType

	node()
}

// Block is a structural element that takes part in line-level layout:
// [Quote], [Search], [CodeBlock], [MathBlock] or [Center].
type Block interface {
	Node
	block()
}

// Inline is a character-level element embedded in running text.
type Inline interface {
	Node
	inline()
}

// Simple is the restricted alphabet produced by [ParseSimple]:
// [UnicodeEmoji], [EmojiCode] and [Text].
type Simple interface {
	String() string
	Type() NodeType
	simple()
}

// Quote wraps fully re-parsed quoted content.
type Quote struct {
	Children []Node
}

// Search is a single-line search box. Content keeps the whole matched line,
// since the trigger button has several spellings.
type Search struct {
	Query   string
	Content string
}

// CodeBlock is a fenced code block. Empty Lang means no language tag.
type CodeBlock struct {
	Code string
	Lang string
}

type MathBlock struct {
	Formula string
}

// Center holds inline content only.
type Center struct {
	Children []Inline
}

type UnicodeEmoji struct {
	Emoji string
}

// EmojiCode is a custom emoji reference like ":name:". The name is not
// validated against any emoji database.
type EmojiCode struct {
	Name string
}

type Bold struct {
	Children []Inline
}

type Small struct {
	Children []Inline
}

type Italic struct {
	Children []Inline
}

type Strike struct {
	Children []Inline
}

type InlineCode struct {
	Code string
}

type MathInline struct {
	Formula string
}

// Mention is a user mention. Empty Host means a local user.
// Acct is the full written form, e.g. "@ai@example.com".
type Mention struct {
	Username string
	Host     string
	Acct     string
}

type Hashtag struct {
	Hashtag string
}

// URL is a bare or angle-bracketed URL.
type URL struct {
	URL      string
	Brackets bool
}

// Link is a labeled link. A silent link is written with a leading '?'.
type Link struct {
	URL      string
	Silent   bool
	Children []Inline
}

// FnArg is a single function argument. Empty Value means a flag argument.
type FnArg struct {
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// Fn is a function call like "$[spin.speed=1s,alternate text]".
// Args keeps the written order and is nil when the call has no arguments.
type Fn struct {
	Name     string
	Args     []FnArg
	Children []Inline
}

// Plain holds a literal span which is never parsed further.
type Plain struct {
	Body Text
}

type Text struct {
	Text string
}

func (Quote) node()        {}
func (Search) node()       {}
func (CodeBlock) node()    {}
func (MathBlock) node()    {}
func (Center) node()       {}
func (UnicodeEmoji) node() {}
func (EmojiCode) node()    {}
func (Bold) node()         {}
func (Small) node()        {}
func (Italic) node()       {}
func (Strike) node()       {}
func (InlineCode) node()   {}
func (MathInline) node()   {}
func (Mention) node()      {}
func (Hashtag) node()      {}
func (URL) node()          {}
func (Link) node()         {}
func (Fn) node()           {}
func (Plain) node()        {}
func (Text) node()         {}

func (Quote) block()     {}
func (Search) block()    {}
func (CodeBlock) block() {}
func (MathBlock) block() {}
func (Center) block()    {}

func (UnicodeEmoji) inline() {}
func (EmojiCode) inline()    {}
func (Bold) inline()         {}
func (Small) inline()        {}
func (Italic) inline()       {}
func (Strike) inline()       {}
func (InlineCode) inline()   {}
func (MathInline) inline()   {}
func (Mention) inline()      {}
func (Hashtag) inline()      {}
func (URL) inline()          {}
func (Link) inline()         {}
func (Fn) inline()           {}
func (Plain) inline()        {}
func (Text) inline()         {}

func (UnicodeEmoji) simple() {}
func (EmojiCode) simple()    {}
func (Text) simple()         {}

func (Quote) Type() NodeType        { return NodeQuote }
func (Search) Type() NodeType       { return NodeSearch }
func (CodeBlock) Type() NodeType    { return NodeCodeBlock }
func (MathBlock) Type() NodeType    { return NodeMathBlock }
func (Center) Type() NodeType       { return NodeCenter }
func (UnicodeEmoji) Type() NodeType { return NodeUnicodeEmoji }
func (EmojiCode) Type() NodeType    { return NodeEmojiCode }
func (Bold) Type() NodeType         { return NodeBold }
func (Small) Type() NodeType        { return NodeSmall }
func (Italic) Type() NodeType       { return NodeItalic }
func (Strike) Type() NodeType       { return NodeStrike }
func (InlineCode) Type() NodeType   { return NodeInlineCode }
func (MathInline) Type() NodeType   { return NodeMathInline }
func (Mention) Type() NodeType      { return NodeMention }
func (Hashtag) Type() NodeType      { return NodeHashtag }
func (URL) Type() NodeType          { return NodeURL }
func (Link) Type() NodeType         { return NodeLink }
func (Fn) Type() NodeType           { return NodeFn }
func (Plain) Type() NodeType        { return NodePlain }
func (Text) Type() NodeType         { return NodeText }

// String prefixes every line of the printed content with "> ".
func (q Quote) String() string {
	lines := strings.Split(ToString(q.Children), "\n")

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("> ")
		b.WriteString(line)
	}

	return b.String()
}

func (s Search) String() string {
	return s.Content
}

func (c CodeBlock) String() string {
	return "```" + c.Lang + "\n" + c.Code + "\n```"
}

func (m MathBlock) String() string {
	return "\\[\n" + m.Formula + "\n\\]"
}

func (c Center) String() string {
	return "<center>\n" + InlineString(c.Children) + "\n</center>"
}

func (e UnicodeEmoji) String() string {
	return e.Emoji
}

func (e EmojiCode) String() string {
	return ":" + e.Name + ":"
}

func (b Bold) String() string {
	return "**" + InlineString(b.Children) + "**"
}

func (s Small) String() string {
	return "<small>" + InlineString(s.Children) + "</small>"
}

func (i Italic) String() string {
	return "<i>" + InlineString(i.Children) + "</i>"
}

func (s Strike) String() string {
	return "~~" + InlineString(s.Children) + "~~"
}

func (c InlineCode) String() string {
	return "`" + c.Code + "`"
}

func (m MathInline) String() string {
	return "\\(" + m.Formula + "\\)"
}

func (m Mention) String() string {
	return m.Acct
}

func (h Hashtag) String() string {
	return "#" + h.Hashtag
}

func (u URL) String() string {
	if u.Brackets {
		return "<" + u.URL + ">"
	}
	return u.URL
}

func (l Link) String() string {
	open := "["
	if l.Silent {
		open = "?["
	}
	return open + InlineString(l.Children) + "](" + l.URL + ")"
}

func (f Fn) String() string {
	var b strings.Builder
	b.WriteString("$[")
	b.WriteString(f.Name)

	for i, arg := range f.Args {
		if i == 0 {
			b.WriteByte('.')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(arg.Key)
		if arg.Value != "" {
			b.WriteByte('=')
			b.WriteString(arg.Value)
		}
	}

	b.WriteByte(' ')
	b.WriteString(InlineString(f.Children))
	b.WriteByte(']')

	return b.String()
}

// String always uses the two-line form, whatever the original spelling was.
func (p Plain) String() string {
	return "<plain>\n" + p.Body.Text + "\n</plain>"
}

func (t Text) String() string {
	return t.Text
}

// Equal reports whether two nodes are structurally equal.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}
