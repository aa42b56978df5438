package mfm

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type corpusCase struct {
	Name      string     `yaml:"name"`
	Input     string     `yaml:"input"`
	Canonical string     `yaml:"canonical"`
	Types     []NodeType `yaml:"types"`
}

func loadCorpus(t *testing.T) []corpusCase {
	t.Helper()

	data, err := os.ReadFile("testdata/corpus.yaml")
	require.NoError(t, err)

	var cases []corpusCase
	require.NoError(t, yaml.Unmarshal(data, &cases))
	require.NotEmpty(t, cases)
	return cases
}

func TestCorpus(t *testing.T) {
	for _, tc := range loadCorpus(t) {
		t.Run(tc.Name, func(t *testing.T) {
			tree := Parse(tc.Input)

			types := make([]NodeType, len(tree))
			for i, n := range tree {
				types[i] = n.Type()
			}
			require.Equal(t, tc.Types, types)

			canonical := tc.Canonical
			if canonical == "" {
				canonical = tc.Input
			}
			require.Equal(t, canonical, ToString(tree))

			// the canonical spelling describes the same tree
			if diff := cmp.Diff(tree, Parse(canonical)); diff != "" {
				t.Fatalf("canonical form parses differently (-input +canonical):\n%s", diff)
			}

			decoded, err := Decode(Serialize(tree))
			require.NoError(t, err)
			if diff := cmp.Diff(tree, decoded); diff != "" {
				t.Fatalf("decoded tree differs (-parsed +decoded):\n%s", diff)
			}
		})
	}
}
