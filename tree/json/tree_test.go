package json

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fishModel() *tree.Model {
	return &tree.Model{
		ID:       "5f0c1a2e-7a51-4c43-9a3d-0f8a2c1b6d7e",
		Features: feature.Names{"surface", "flippers"},
		Label:    "fish",
		Root: tree.NewInternal("surface", []tree.Branch{
			{Value: "1", Subtree: tree.NewInternal("flippers", []tree.Branch{
				{Value: "1", Subtree: tree.NewLeaf("yes")},
				{Value: "0", Subtree: tree.NewLeaf("no")},
			})},
			{Value: "0", Subtree: tree.NewLeaf("no")},
		}),
	}
}

const fishDocument = `{"format":"id3/v1","id":"5f0c1a2e-7a51-4c43-9a3d-0f8a2c1b6d7e",` +
	`"features":["surface","flippers"],"label":"fish","root":` +
	`{"t":"internal","a":"surface","b":[` +
	`{"v":"1","n":{"t":"internal","a":"flippers","b":[{"v":"1","n":{"t":"leaf","l":"yes"}},{"v":"0","n":{"t":"leaf","l":"no"}}]}},` +
	`{"v":"0","n":{"t":"leaf","l":"no"}}]}}`

func TestEncode(t *testing.T) {
	data, err := NewEncodeDecoder().Encode(fishModel())
	require.NoError(t, err)
	assert.JSONEq(t, fishDocument, string(data))
}

func TestEncodeIsDeterministic(t *testing.T) {
	ed := NewEncodeDecoder()
	a, err := ed.Encode(fishModel())
	require.NoError(t, err)
	b, err := ed.Encode(fishModel())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecode(t *testing.T) {
	m, err := NewEncodeDecoder().Decode([]byte(fishDocument))
	require.NoError(t, err)
	expected := fishModel()
	assert.Equal(t, expected.ID, m.ID)
	assert.Equal(t, expected.Features, m.Features)
	assert.Equal(t, expected.Label, m.Label)
	assert.True(t, tree.Equal(expected.Root, m.Root))
}

func TestWriteReadModel(t *testing.T) {
	for _, m := range []*tree.Model{
		fishModel(),
		{ID: "leaf-only", Features: feature.Names{}, Root: tree.NewLeaf("no")},
		{ID: "empty label value", Features: feature.Names{"a"}, Root: tree.NewInternal("a", []tree.Branch{{Value: "", Subtree: tree.NewLeaf("")}})},
	} {
		buf := &bytes.Buffer{}
		require.NoError(t, WriteModel(buf, m))
		read, err := ReadModel(buf)
		require.NoError(t, err, m.ID)
		assert.Equal(t, m.ID, read.ID)
		assert.Equal(t, m.Features, read.Features)
		assert.True(t, tree.Equal(m.Root, read.Root), m.ID)
	}
}

func TestEncodeWithoutTree(t *testing.T) {
	_, err := NewEncodeDecoder().Encode(&tree.Model{ID: "x"})
	assert.Error(t, err)
	_, err = NewEncodeDecoder().Encode(&tree.Model{ID: "x", Root: tree.NewInternal("a", nil)})
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `surface: 1`},
		{"truncated", fishDocument[:len(fishDocument)-3]},
		{"wrong format", strings.Replace(fishDocument, "id3/v1", "id3/v0", 1)},
		{"missing root", `{"format":"id3/v1","id":"x","features":[]}`},
		{"unknown node type", `{"format":"id3/v1","id":"x","features":[],"root":{"t":"bush","l":"x"}}`},
		{"leaf without label", `{"format":"id3/v1","id":"x","features":[],"root":{"t":"leaf"}}`},
		{"internal without branches", `{"format":"id3/v1","id":"x","features":["a"],"root":{"t":"internal","a":"a","b":[]}}`},
		{"unknown attribute", `{"format":"id3/v1","id":"x","features":["a"],"root":{"t":"internal","a":"b","b":[{"v":"1","n":{"t":"leaf","l":"x"}}]}}`},
		{"duplicated branch", `{"format":"id3/v1","id":"x","features":["a"],"root":{"t":"internal","a":"a","b":[{"v":"1","n":{"t":"leaf","l":"x"}},{"v":"1","n":{"t":"leaf","l":"y"}}]}}`},
		{"numeric label", `{"format":"id3/v1","id":"x","features":[],"root":{"t":"leaf","l":1}}`},
		{"label among features", `{"format":"id3/v1","id":"x","features":["a"],"label":"a","root":{"t":"leaf","l":"x"}}`},
		{"duplicated features", `{"format":"id3/v1","id":"x","features":["a","a"],"root":{"t":"leaf","l":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncodeDecoder().Decode([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestEncodeRejectsUndecodableModels(t *testing.T) {
	leaf := tree.NewLeaf("yes")
	tests := []struct {
		name string
		m    *tree.Model
	}{
		{"latin-1 value", &tree.Model{ID: "x", Features: feature.Names{"season"}, Root: tree.NewInternal("season", []tree.Branch{{Value: "\xe9t\xe9", Subtree: leaf}})}},
		{"latin-1 leaf label", &tree.Model{ID: "x", Features: feature.Names{}, Root: tree.NewLeaf("\xe9t\xe9")}},
		{"latin-1 attribute", &tree.Model{ID: "x", Features: feature.Names{"\xe9"}, Root: tree.NewInternal("\xe9", []tree.Branch{{Value: "1", Subtree: leaf}})}},
		{"latin-1 label name", &tree.Model{ID: "x", Features: feature.Names{}, Label: "\xe9", Root: leaf}},
		{"repeated feature", &tree.Model{ID: "x", Features: feature.Names{"f", "f"}, Root: leaf}},
		{"label among features", &tree.Model{ID: "x", Features: feature.Names{"f"}, Label: "f", Root: leaf}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEncodeDecoder().Encode(tt.m)
			assert.Error(t, err)
		})
	}
}

func TestStoreRoundTripOfBuiltTrees(t *testing.T) {
	tests := []struct {
		name  string
		s     dataset.Dataset
		names feature.Names
		label string
	}{
		{"fish", dataset.Dataset{{"1", "1", "yes"}, {"1", "1", "yes"}, {"1", "0", "no"}, {"0", "1", "no"}, {"0", "1", "no"}}, feature.Names{"no surfacing", "flippers"}, "fish"},
		{"utf-8 text", dataset.Dataset{{"été", "oui"}, {"hiver", "non"}, {"春", "はい"}}, feature.Names{"saison"}, "réponse"},
		{"empty values", dataset.Dataset{{"", "a", ""}, {"x", "a", "y"}, {"x", "", "z"}}, feature.Names{"p", "q"}, ""},
		{"no features", dataset.Dataset{{"b"}, {"a"}, {"a"}}, feature.Names{}, "l"},
		{"quotes and escapes", dataset.Dataset{{"\"q\"", "\\"}, {"<tab>\t", "\n"}}, feature.Names{"k"}, "v"},
	}
	ctx := context.Background()
	store := tree.NewMemoryStore(NewEncodeDecoder())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := id3.New(nil).BuildModel(ctx, tt.s, tt.names, tt.label)
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, m, tt.name))
			loaded, err := store.Load(ctx, tt.name)
			require.NoError(t, err)
			assert.Equal(t, m.ID, loaded.ID)
			assert.Equal(t, m.Features, loaded.Features)
			assert.Equal(t, m.Label, loaded.Label)
			assert.True(t, tree.Equal(m.Root, loaded.Root), "saved\n%s\nloaded\n%s", m.Root, loaded.Root)
		})
	}
}

func TestStoreSaveOfLatin1TreeFails(t *testing.T) {
	ctx := context.Background()
	m, err := id3.New(nil).BuildModel(ctx, dataset.Dataset{{"\xe9t\xe9", "yes"}, {"hiver", "no"}}, feature.Names{"season"}, "")
	require.NoError(t, err)

	store := tree.NewMemoryStore(NewEncodeDecoder())
	err = store.Save(ctx, m, "seasons")
	var pe *tree.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "save", pe.Op)

	_, err = store.Load(ctx, "seasons")
	assert.ErrorIs(t, err, tree.ErrModelNotFound)
}
