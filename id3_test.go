package id3

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fishNames = feature.Names{"no surfacing", "flippers"}

func assertTree(t *testing.T, expected, actual tree.Node) {
	t.Helper()
	require.NotNil(t, actual)
	assert.True(t, tree.Equal(expected, actual), "expected\n%s\ngot\n%s", expected, actual)
}

func TestBuildFish(t *testing.T) {
	root, err := Build(context.Background(), fishDataset(), fishNames)
	require.NoError(t, err)

	expected := tree.NewInternal("no surfacing", []tree.Branch{
		{Value: "1", Subtree: tree.NewInternal("flippers", []tree.Branch{
			{Value: "1", Subtree: tree.NewLeaf("yes")},
			{Value: "0", Subtree: tree.NewLeaf("no")},
		})},
		{Value: "0", Subtree: tree.NewLeaf("no")},
	})
	assertTree(t, expected, root)

	for _, c := range []struct {
		sample []string
		want   string
	}{
		{[]string{"1", "1"}, "yes"},
		{[]string{"1", "0"}, "no"},
		{[]string{"0", "0"}, "no"},
	} {
		got, err := tree.Classify(root, fishNames, c.sample)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "sample %v", c.sample)
	}
}

func TestBuildClassifiesTrainingRows(t *testing.T) {
	s := fishDataset()
	root, err := Build(context.Background(), s, fishNames)
	require.NoError(t, err)
	rate, unseen, err := tree.Test(context.Background(), root, fishNames, s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
	assert.Equal(t, 0, unseen)
}

func TestBuildLeaves(t *testing.T) {
	tests := []struct {
		name  string
		s     dataset.Dataset
		names feature.Names
		want  string
	}{
		{"pure rows", dataset.Dataset{{"a", "x"}, {"b", "x"}}, feature.Names{"f"}, "x"},
		{"pure rows without features", dataset.Dataset{{"x"}, {"x"}}, feature.Names{}, "x"},
		{"majority without features", dataset.Dataset{{"no"}, {"yes"}, {"yes"}}, feature.Names{}, "yes"},
		{"tied majority goes to the first label seen", dataset.Dataset{{"no"}, {"yes"}, {"yes"}, {"no"}}, nil, "no"},
		{"single row", dataset.Dataset{{"a", "b", "x"}}, feature.Names{"f", "g"}, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(context.Background(), tt.s, tt.names)
			require.NoError(t, err)
			assertTree(t, tree.NewLeaf(tt.want), root)
		})
	}
}

func TestBuildExhaustedFeatures(t *testing.T) {
	s := dataset.Dataset{{"a", "L1"}, {"a", "L2"}, {"a", "L2"}}
	root, err := Build(context.Background(), s, feature.Names{"f"})
	require.NoError(t, err)
	expected := tree.NewInternal("f", []tree.Branch{{Value: "a", Subtree: tree.NewLeaf("L2")}})
	assertTree(t, expected, root)
}

func TestBuildSiblingsUseIndependentNames(t *testing.T) {
	s := dataset.Dataset{
		{"x", "p", "q", "L1"},
		{"x", "r", "q", "L2"},
		{"y", "p", "s", "L1"},
		{"y", "p", "t", "L2"},
		{"z", "p", "q", "L3"},
		{"z", "p", "q", "L3"},
	}
	names := feature.Names{"a", "b", "c"}
	root, err := Build(context.Background(), s, names)
	require.NoError(t, err)

	expected := tree.NewInternal("a", []tree.Branch{
		{Value: "x", Subtree: tree.NewInternal("b", []tree.Branch{
			{Value: "p", Subtree: tree.NewLeaf("L1")},
			{Value: "r", Subtree: tree.NewLeaf("L2")},
		})},
		{Value: "y", Subtree: tree.NewInternal("c", []tree.Branch{
			{Value: "s", Subtree: tree.NewLeaf("L1")},
			{Value: "t", Subtree: tree.NewLeaf("L2")},
		})},
		{Value: "z", Subtree: tree.NewLeaf("L3")},
	})
	assertTree(t, expected, root)
	assert.Equal(t, feature.Names{"a", "b", "c"}, names)

	label, err := tree.Classify(root, names, []string{"y", "r", "t"})
	require.NoError(t, err)
	assert.Equal(t, "L2", label)
}

func TestBuildLeavesDatasetUntouched(t *testing.T) {
	s := fishDataset()
	_, err := Build(context.Background(), s, fishNames)
	require.NoError(t, err)
	assert.Equal(t, fishDataset(), s)
}

func TestBuildErrors(t *testing.T) {
	var se *dataset.SchemaError

	root, err := Build(context.Background(), dataset.Dataset{{"1", "1", "yes"}, {"1", "no"}}, fishNames)
	assert.Nil(t, root)
	assert.True(t, errors.As(err, &se))

	root, err = Build(context.Background(), fishDataset(), feature.Names{"flippers"})
	assert.Nil(t, root)
	assert.True(t, errors.As(err, &se))

	root, err = Build(context.Background(), dataset.Dataset{{"x", "y", "L1"}, {"a", "y", "L2"}}, feature.Names{"f", "f"})
	assert.Nil(t, root)
	assert.True(t, errors.As(err, &se))

	root, err = Build(context.Background(), fishDataset(), feature.Names{"no surfacing", ""})
	assert.Nil(t, root)
	assert.True(t, errors.As(err, &se))

	root, err = Build(context.Background(), dataset.Dataset{}, fishNames)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	root, err = Build(ctx, fishDataset(), fishNames)
	assert.Nil(t, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildModel(t *testing.T) {
	m, err := New(nil).BuildModel(context.Background(), fishDataset(), fishNames, "fish")
	require.NoError(t, err)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, fishNames, m.Features)
	assert.Equal(t, "fish", m.Label)
	label, err := m.Classify([]string{"1", "1"})
	require.NoError(t, err)
	assert.Equal(t, "yes", label)
}

func TestBuildModelLabelIsFeature(t *testing.T) {
	m, err := New(nil).BuildModel(context.Background(), fishDataset(), fishNames, "flippers")
	assert.Nil(t, m)
	var se *dataset.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestBuilderLogsSplits(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m, err := New(logger).BuildModel(context.Background(), fishDataset(), fishNames, "fish")
	require.NoError(t, err)
	assert.Equal(t, "fish", m.Label)
	assert.Equal(t, fishNames, m.Features)
	assert.NotEmpty(t, m.ID)

	out := buf.String()
	assert.Contains(t, out, "msg=splitting")
	assert.Contains(t, out, `attribute=flippers`)
	assert.Contains(t, out, `path="no surfacing is 1"`)
	assert.Contains(t, out, "msg=\"grew tree\"")
}
