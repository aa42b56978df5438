package mfm

import (
	"encoding/json"
	"fmt"
)

// Decode converts serialized nodes back into a tree. Adjacent text nodes are merged, so the result
// keeps the invariants of a parsed tree. The returned error is a [*DecodeError].
func Decode(nodes []SerializableNode) ([]Node, error) {
	return decodeNodes(nodes, "")
}

// DecodeJSON unmarshals and decodes a serialized tree.
func DecodeJSON(data []byte) ([]Node, error) {
	var nodes []SerializableNode
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, NewDecodeError(IssueInvalidJSON, "", err)
	}
	return Decode(nodes)
}

func childPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func decodeNodes(nodes []SerializableNode, path string) ([]Node, error) {
	out := make([]Node, 0, len(nodes))
	for i, sn := range nodes {
		n, err := decodeNode(sn, childPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return mergeText(out), nil
}

func decodeInlines(nodes []SerializableNode, path string) ([]Inline, error) {
	out := make([]Inline, 0, len(nodes))
	for i, sn := range nodes {
		n, err := decodeInline(sn, childPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return mergeText(out), nil
}

// decodeContainer decodes the inline children of a container, which must not be empty.
func decodeContainer(sn SerializableNode, path string) ([]Inline, error) {
	if len(sn.Children) == 0 {
		return nil, newMissingChildrenError(path, sn.Type)
	}
	return decodeInlines(sn.Children, path+".children")
}

func decodeNode(sn SerializableNode, path string) (Node, error) {
	switch sn.Type {
	case NodeQuote:
		if len(sn.Children) == 0 {
			return nil, newMissingChildrenError(path, sn.Type)
		}
		children, err := decodeNodes(sn.Children, path+".children")
		if err != nil {
			return nil, err
		}
		return Quote{Children: children}, nil

	case NodeSearch:
		props, err := leafProps(sn, path)
		if err != nil {
			return nil, err
		}
		if err := requiredField(sn, path, "query", props.Query); err != nil {
			return nil, err
		}
		if err := requiredField(sn, path, "content", props.Content); err != nil {
			return nil, err
		}
		return Search{Query: props.Query, Content: props.Content}, nil

	case NodeCodeBlock:
		props, err := leafProps(sn, path)
		if err != nil {
			return nil, err
		}
		if err := requiredField(sn, path, "code", props.Code); err != nil {
			return nil, err
		}
		return CodeBlock{Code: props.Code, Lang: props.Lang}, nil

	case NodeMathBlock:
		props, err := leafProps(sn, path)
		if err != nil {
			return nil, err
		}
		if err := requiredField(sn, path, "formula", props.Formula); err != nil {
			return nil, err
		}
		return MathBlock{Formula: props.Formula}, nil

	case NodeCenter:
		children, err := decodeContainer(sn, path)
		if err != nil {
			return nil, err
		}
		return Center{Children: children}, nil
	}

	return decodeInline(sn, path)
}

// leafProps returns the props of a node without children.
func leafProps(sn SerializableNode, path string) (*Props, error) {
	if len(sn.Children) > 0 {
		return nil, newUnexpectedChildrenError(path, sn.Type)
	}
	if sn.Props == nil {
		return nil, newMissingPropsError(path, sn.Type)
	}
	return sn.Props, nil
}

// requiredField returns a [*DecodeError] when the value of a required prop is empty.
func requiredField(sn SerializableNode, path string, field, value string) error {
	if value == "" {
		return newMissingFieldError(path, sn.Type, field)
	}
	return nil
}

func decodeInline(sn SerializableNode, path string) (Inline, error) {
	switch sn.Type {
	case NodeQuote, NodeSearch, NodeCodeBlock, NodeMathBlock, NodeCenter:
		return nil, NewDecodeError(IssueBlockInInline, path, fmt.Errorf("block node %q is not allowed here", sn.Type))

	case NodeBold, NodeSmall, NodeItalic, NodeStrike:
		children, err := decodeContainer(sn, path)
		if err != nil {
			return nil, err
		}
		switch sn.Type {
		case NodeBold:
			return Bold{Children: children}, nil
		case NodeSmall:
			return Small{Children: children}, nil
		case NodeItalic:
			return Italic{Children: children}, nil
		default:
			return Strike{Children: children}, nil
		}

	case NodeLink:
		if sn.Props == nil {
			return nil, newMissingPropsError(path, sn.Type)
		}
		if err := requiredField(sn, path, "url", sn.Props.URL); err != nil {
			return nil, err
		}
		children, err := decodeContainer(sn, path)
		if err != nil {
			return nil, err
		}
		return Link{URL: sn.Props.URL, Silent: sn.Props.Silent, Children: children}, nil

	case NodeFn:
		if sn.Props == nil {
			return nil, newMissingPropsError(path, sn.Type)
		}
		if err := requiredField(sn, path, "name", sn.Props.Name); err != nil {
			return nil, err
		}
		children, err := decodeContainer(sn, path)
		if err != nil {
			return nil, err
		}
		var args []FnArg
		if len(sn.Props.Args) > 0 {
			args = append(args, sn.Props.Args...)
		}
		return Fn{Name: sn.Props.Name, Args: args, Children: children}, nil

	case NodePlain:
		if len(sn.Children) != 1 || sn.Children[0].Type != NodeText {
			return nil, NewDecodeError(IssueInvalidPlain, path, errPlainShape)
		}
		body, err := decodeInline(sn.Children[0], childPath(path+".children", 0))
		if err != nil {
			return nil, err
		}
		return Plain{Body: body.(Text)}, nil
	}

	return decodeLeaf(sn, path)
}

func decodeLeaf(sn SerializableNode, path string) (Inline, error) {
	switch sn.Type {
	case NodeUnicodeEmoji, NodeEmojiCode, NodeInlineCode, NodeMathInline,
		NodeMention, NodeHashtag, NodeURL, NodeText:
	default:
		return nil, NewDecodeError(IssueUnknownNodeType, path, fmt.Errorf("unknown node type %q", sn.Type))
	}

	props, err := leafProps(sn, path)
	if err != nil {
		return nil, err
	}

	switch sn.Type {
	case NodeUnicodeEmoji:
		if err := requiredField(sn, path, "emoji", props.Emoji); err != nil {
			return nil, err
		}
		return UnicodeEmoji{Emoji: props.Emoji}, nil

	case NodeEmojiCode:
		if err := requiredField(sn, path, "name", props.Name); err != nil {
			return nil, err
		}
		return EmojiCode{Name: props.Name}, nil

	case NodeInlineCode:
		if err := requiredField(sn, path, "code", props.Code); err != nil {
			return nil, err
		}
		return InlineCode{Code: props.Code}, nil

	case NodeMathInline:
		if err := requiredField(sn, path, "formula", props.Formula); err != nil {
			return nil, err
		}
		return MathInline{Formula: props.Formula}, nil

	case NodeMention:
		if err := requiredField(sn, path, "username", props.Username); err != nil {
			return nil, err
		}
		acct := props.Acct
		if acct == "" {
			acct = "@" + props.Username
			if props.Host != "" {
				acct += "@" + props.Host
			}
		}
		return Mention{Username: props.Username, Host: props.Host, Acct: acct}, nil

	case NodeHashtag:
		if err := requiredField(sn, path, "hashtag", props.Hashtag); err != nil {
			return nil, err
		}
		return Hashtag{Hashtag: props.Hashtag}, nil

	case NodeURL:
		if err := requiredField(sn, path, "url", props.URL); err != nil {
			return nil, err
		}
		return URL{URL: props.URL, Brackets: props.Brackets}, nil

	default:
		if err := requiredField(sn, path, "text", props.Text); err != nil {
			return nil, err
		}
		return Text{Text: props.Text}, nil
	}
}
