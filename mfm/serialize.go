package mfm

import "encoding/json"

// SerializableNode is the JSON shape of a node consumed by renderers:
// {"type": "bold", "children": [{"type": "text", "props": {"text": "hi"}}]}.
type SerializableNode struct {
	Type     NodeType           `json:"type"`
	Props    *Props             `json:"props,omitempty"`
	Children []SerializableNode `json:"children,omitempty"`
}

// Props holds the data of a serialized node. Only the fields of the node's type are set.
type Props struct {
	Query    string  `json:"query,omitempty"`
	Content  string  `json:"content,omitempty"`
	Code     string  `json:"code,omitempty"`
	Lang     string  `json:"lang,omitempty"`
	Formula  string  `json:"formula,omitempty"`
	Emoji    string  `json:"emoji,omitempty"`
	Name     string  `json:"name,omitempty"`
	Username string  `json:"username,omitempty"`
	Host     string  `json:"host,omitempty"`
	Acct     string  `json:"acct,omitempty"`
	Hashtag  string  `json:"hashtag,omitempty"`
	URL      string  `json:"url,omitempty"`
	Brackets bool    `json:"brackets,omitempty"`
	Silent   bool    `json:"silent,omitempty"`
	Args     []FnArg `json:"args,omitempty"`
	Text     string  `json:"text,omitempty"`
}

// Serialize converts a tree into its JSON shape. The result is never nil.
func Serialize(nodes []Node) []SerializableNode {
	out := make([]SerializableNode, len(nodes))
	for i, n := range nodes {
		out[i] = serializeNode(n)
	}
	return out
}

// SerializeSimple converts a simple tree into its JSON shape. The result is never nil.
func SerializeSimple(nodes []Simple) []SerializableNode {
	out := make([]SerializableNode, len(nodes))
	for i, n := range nodes {
		out[i] = serializeNode(n)
	}
	return out
}

// MarshalJSON serializes nodes straight to JSON.
func MarshalJSON(nodes []Node) ([]byte, error) {
	return json.Marshal(Serialize(nodes))
}

func serializeInlines(nodes []Inline) []SerializableNode {
	out := make([]SerializableNode, len(nodes))
	for i, n := range nodes {
		out[i] = serializeNode(n)
	}
	return out
}

// serializeNode panics with an [*InvariantError] for values outside of the node set.
func serializeNode(n any) SerializableNode {
	switch n := n.(type) {
	case Quote:
		return SerializableNode{Type: NodeQuote, Children: Serialize(n.Children)}
	case Search:
		return SerializableNode{Type: NodeSearch, Props: &Props{Query: n.Query, Content: n.Content}}
	case CodeBlock:
		return SerializableNode{Type: NodeCodeBlock, Props: &Props{Code: n.Code, Lang: n.Lang}}
	case MathBlock:
		return SerializableNode{Type: NodeMathBlock, Props: &Props{Formula: n.Formula}}
	case Center:
		return SerializableNode{Type: NodeCenter, Children: serializeInlines(n.Children)}
	case UnicodeEmoji:
		return SerializableNode{Type: NodeUnicodeEmoji, Props: &Props{Emoji: n.Emoji}}
	case EmojiCode:
		return SerializableNode{Type: NodeEmojiCode, Props: &Props{Name: n.Name}}
	case Bold:
		return SerializableNode{Type: NodeBold, Children: serializeInlines(n.Children)}
	case Small:
		return SerializableNode{Type: NodeSmall, Children: serializeInlines(n.Children)}
	case Italic:
		return SerializableNode{Type: NodeItalic, Children: serializeInlines(n.Children)}
	case Strike:
		return SerializableNode{Type: NodeStrike, Children: serializeInlines(n.Children)}
	case InlineCode:
		return SerializableNode{Type: NodeInlineCode, Props: &Props{Code: n.Code}}
	case MathInline:
		return SerializableNode{Type: NodeMathInline, Props: &Props{Formula: n.Formula}}
	case Mention:
		return SerializableNode{Type: NodeMention, Props: &Props{Username: n.Username, Host: n.Host, Acct: n.Acct}}
	case Hashtag:
		return SerializableNode{Type: NodeHashtag, Props: &Props{Hashtag: n.Hashtag}}
	case URL:
		return SerializableNode{Type: NodeURL, Props: &Props{URL: n.URL, Brackets: n.Brackets}}
	case Link:
		return SerializableNode{
			Type:     NodeLink,
			Props:    &Props{URL: n.URL, Silent: n.Silent},
			Children: serializeInlines(n.Children),
		}
	case Fn:
		return SerializableNode{
			Type:     NodeFn,
			Props:    &Props{Name: n.Name, Args: n.Args},
			Children: serializeInlines(n.Children),
		}
	case Plain:
		return SerializableNode{Type: NodePlain, Children: []SerializableNode{serializeNode(n.Body)}}
	case Text:
		return SerializableNode{Type: NodeText, Props: &Props{Text: n.Text}}
	default:
		panic(unexpectedNode(n))
	}
}
