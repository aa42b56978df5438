package mfm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerialize(t *testing.T) {
	tree := Parse("**abc** @ai")

	out, err := json.Marshal(Serialize(tree))
	require.NoError(t, err)

	want := `[
		{"type": "bold", "children": [{"type": "text", "props": {"text": "abc"}}]},
		{"type": "text", "props": {"text": " "}},
		{"type": "mention", "props": {"username": "ai", "acct": "@ai"}}
	]`
	require.JSONEq(t, want, string(out))
}

func TestSerialize_Props(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			"fn with args",
			"$[spin.speed=1s,alternate Hello]",
			`[{"type": "fn",
				"props": {"name": "spin", "args": [{"key": "speed", "value": "1s"}, {"key": "alternate"}]},
				"children": [{"type": "text", "props": {"text": "Hello"}}]}]`,
		},
		{
			"plain",
			"<plain>**x**</plain>",
			`[{"type": "plain", "children": [{"type": "text", "props": {"text": "**x**"}}]}]`,
		},
		{
			"code block",
			"```js\nabc\n```",
			`[{"type": "blockCode", "props": {"code": "abc", "lang": "js"}}]`,
		},
		{
			"silent link",
			"?[a](https://example.com)",
			`[{"type": "link", "props": {"url": "https://example.com", "silent": true},
				"children": [{"type": "text", "props": {"text": "a"}}]}]`,
		},
		{
			"bracketed url",
			"<https://example.com>",
			`[{"type": "url", "props": {"url": "https://example.com", "brackets": true}}]`,
		},
		{
			"search",
			"abc 検索",
			`[{"type": "search", "props": {"query": "abc", "content": "abc 検索"}}]`,
		},
		{
			"quote",
			"> :x:",
			`[{"type": "quote", "children": [{"type": "emojiCode", "props": {"name": "x"}}]}]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := MarshalJSON(Parse(tc.input))
			require.NoError(t, err)
			require.JSONEq(t, tc.want, string(out))
		})
	}
}

func TestSerialize_Empty(t *testing.T) {
	out, err := MarshalJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", string(out))

	require.NotNil(t, SerializeSimple(nil))
}

func TestSerializeSimple(t *testing.T) {
	out, err := json.Marshal(SerializeSimple(ParseSimple("a:b:😇")))
	require.NoError(t, err)

	want := `[
		{"type": "text", "props": {"text": "a:b:"}},
		{"type": "unicodeEmoji", "props": {"emoji": "😇"}}
	]`
	require.JSONEq(t, want, string(out))
}

// bogus is a node outside of the closed set.
type bogus struct{}

func (bogus) String() string { return "" }
func (bogus) Type() NodeType { return "bogus" }
func (bogus) node()          {}

func TestSerialize_UnexpectedNode(t *testing.T) {
	require.PanicsWithError(t, "mfm invariant violated (unexpected node): unexpected node mfm.bogus", func() {
		Serialize([]Node{bogus{}})
	})
}
