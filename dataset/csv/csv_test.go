package csv

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fishCSV = `no surfacing,flippers,fish
1,1,yes
1,1,yes
1,0,no
0,1,no
0,1,no
`

func TestReadDatasetWithoutMetadata(t *testing.T) {
	md, s, err := ReadDataset(strings.NewReader(fishCSV), nil)
	require.NoError(t, err)
	assert.Equal(t, feature.Names{"no surfacing", "flippers"}, md.Features)
	assert.Equal(t, "fish", md.Label)
	assert.Equal(t, dataset.Dataset{
		{"1", "1", "yes"},
		{"1", "1", "yes"},
		{"1", "0", "no"},
		{"0", "1", "no"},
		{"0", "1", "no"},
	}, s)
}

func TestReadDatasetWithMetadata(t *testing.T) {
	md := &feature.Metadata{Features: feature.Names{"flippers"}, Label: "fish"}
	read, s, err := ReadDataset(strings.NewReader("fish,id,flippers\nyes,1,1\nno,2,0\n"), md)
	require.NoError(t, err)
	assert.Same(t, md, read)
	assert.Equal(t, dataset.Dataset{{"1", "yes"}, {"0", "no"}}, s)
}

func TestReadDatasetHeaderOnly(t *testing.T) {
	md, s, err := ReadDataset(strings.NewReader("a,b,label\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "label", md.Label)
	assert.Empty(t, s)
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name   string
		csv    string
		md     *feature.Metadata
		schema bool
	}{
		{"empty stream", "", nil, false},
		{"short row", "a,b,label\n1,2,x\n1,2\n", nil, true},
		{"repeated column", "a,a,label\n1,2,x\n", nil, true},
		{"missing metadata column", "a,b,label\n1,2,x\n", &feature.Metadata{Features: feature.Names{"c"}, Label: "label"}, true},
		{"single column", "label\nx\n", nil, true},
		{"unterminated quote", "a,label\n\"1,x\n", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadDataset(strings.NewReader(tt.csv), tt.md)
			require.Error(t, err)
			var se *dataset.SchemaError
			assert.Equal(t, tt.schema, errors.As(err, &se))
		})
	}
}

func TestReadDatasetByRowStops(t *testing.T) {
	var seen []int
	_, err := ReadDatasetByRow(strings.NewReader(fishCSV), nil, func(i int, r dataset.Row) (bool, error) {
		seen = append(seen, i)
		return i < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestReadDatasetFromFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fish.csv")
	require.NoError(t, os.WriteFile(path, []byte(fishCSV), 0644))

	md, s, err := ReadDatasetFromFilePath(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "fish", md.Label)
	assert.Len(t, s, 5)

	_, _, err = ReadDatasetFromFilePath(filepath.Join(t.TempDir(), "missing.csv"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromFilePathLeavesStdinOpen(t *testing.T) {
	dir := t.TempDir()
	stdin := os.Stdin
	defer func() { os.Stdin = stdin }()

	path := filepath.Join(dir, "stdin.csv")
	require.NoError(t, os.WriteFile(path, []byte(fishCSV), 0644))
	f, err := os.Open(path)
	require.NoError(t, err)
	os.Stdin = f
	_, s, err := ReadDatasetFromFilePath("", nil)
	require.NoError(t, err)
	assert.Len(t, s, 5)
	assert.NoError(t, f.Close())

	f, err = os.Open(path)
	require.NoError(t, err)
	os.Stdin = f
	samples, err := ReadSamplesFromFilePath("", feature.Names{"flippers"})
	require.NoError(t, err)
	assert.Len(t, samples, 5)
	assert.NoError(t, f.Close())
}

func TestReadSamples(t *testing.T) {
	names := feature.Names{"no surfacing", "flippers"}
	samples, err := ReadSamples(strings.NewReader("flippers,no surfacing\n1,0\n0,1\n"), names)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"0", "1"}, {"1", "0"}}, samples)

	samples, err = ReadSamples(strings.NewReader(fishCSV), names)
	require.NoError(t, err)
	assert.Len(t, samples, 5)
	assert.Equal(t, []string{"1", "0"}, samples[2])

	_, err = ReadSamples(strings.NewReader("flippers\n1\n"), names)
	var se *dataset.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestWriteSamples(t *testing.T) {
	buf := &bytes.Buffer{}
	err := WriteSamples(buf, feature.Names{"no surfacing", "flippers"}, "fish", [][]string{{"1", "1"}, {"0", "1"}}, []string{"yes", "no"})
	require.NoError(t, err)
	assert.Equal(t, "no surfacing,flippers,fish\n1,1,yes\n0,1,no\n", buf.String())

	err = WriteSamples(buf, feature.Names{"a"}, "label", [][]string{{"1"}}, nil)
	assert.Error(t, err)
}

func TestWriteDataset(t *testing.T) {
	md, s, err := ReadDataset(strings.NewReader(fishCSV), nil)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	require.NoError(t, WriteDataset(buf, md, s))
	assert.Equal(t, fishCSV, buf.String())

	err = WriteDataset(buf, md, dataset.Dataset{{"1", "yes"}})
	var se *dataset.SchemaError
	assert.True(t, errors.As(err, &se))
}
