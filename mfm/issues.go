package mfm

// Issue defines the kinds of problems found in a serialized tree, or in a tree built by hand.
// The grammar itself never reports issues.
type Issue int

const (
	// IssueUnknownNodeType means the "type" of a serialized node is not one of the [NodeType] values.
	IssueUnknownNodeType Issue = iota

	// IssueMissingProps means a node which carries data, like a mention or a code block, has no "props".
	IssueMissingProps

	// IssueMissingField means a required prop is empty, e.g. a link without url or a fn without name.
	IssueMissingField

	// IssueBlockInInline means a block node occurs where only inline nodes are allowed,
	// e.g. a quote inside a bold node or a center block.
	IssueBlockInInline

	// IssueMissingChildren occurs when a container node, like bold or a link, has no children.
	IssueMissingChildren

	// IssueUnexpectedChildren occurs when a leaf node, like text or a hashtag, has children.
	IssueUnexpectedChildren

	// IssueInvalidPlain occurs when a plain node doesn't hold exactly one text child.
	IssueInvalidPlain

	// IssueInvalidJSON means the serialized tree could not be unmarshalled at all.
	IssueInvalidJSON

	// IssueUnexpectedNode means a value outside of the closed set of node types reached a function
	// which switches over them. It is only ever raised as a panic.
	IssueUnexpectedNode
)

var issueNames = map[Issue]string{
	IssueUnknownNodeType:    "unknown node type",
	IssueMissingProps:       "missing props",
	IssueMissingField:       "missing field",
	IssueBlockInInline:      "block in inline context",
	IssueMissingChildren:    "missing children",
	IssueUnexpectedChildren: "unexpected children",
	IssueInvalidPlain:       "invalid plain",
	IssueInvalidJSON:        "invalid json",
	IssueUnexpectedNode:     "unexpected node",
}

func (i Issue) String() string {
	if name, ok := issueNames[i]; ok {
		return name
	}
	return "unknown issue"
}
