package id3

import (
	"errors"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fishDataset holds, for a handful of sea animals, whether they can
// survive without coming to the surface, whether they have flippers and
// whether they are fish.
func fishDataset() dataset.Dataset {
	return dataset.Dataset{
		{"1", "1", "yes"},
		{"1", "1", "yes"},
		{"1", "0", "no"},
		{"0", "1", "no"},
		{"0", "1", "no"},
	}
}

func TestInformationGain(t *testing.T) {
	s := fishDataset()

	gain, err := InformationGain(s, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.4199730940219749, gain, 1e-9)

	gain, err = InformationGain(s, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.17095059445466854, gain, 1e-9)
}

func TestInformationGainErrors(t *testing.T) {
	_, err := InformationGain(dataset.Dataset{}, 0)
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)

	_, err = InformationGain(fishDataset(), 2)
	var se *dataset.SchemaError
	assert.True(t, errors.As(err, &se))
}

func TestBestFeature(t *testing.T) {
	tests := []struct {
		name string
		s    dataset.Dataset
		want int
	}{
		{"fish", fishDataset(), 0},
		{"second column separates", dataset.Dataset{
			{"a", "x", "L1"},
			{"a", "y", "L2"},
			{"b", "x", "L1"},
			{"b", "y", "L2"},
		}, 1},
		{"tie goes to the lowest index", dataset.Dataset{
			{"a", "a", "L1"},
			{"b", "b", "L2"},
		}, 0},
		{"no gain anywhere", dataset.Dataset{
			{"a", "a", "L1"},
			{"a", "a", "L2"},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BestFeature(tt.s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBestFeatureErrors(t *testing.T) {
	_, err := BestFeature(dataset.Dataset{{"yes"}, {"no"}})
	assert.ErrorIs(t, err, ErrNoFeatures)

	_, err = BestFeature(dataset.Dataset{})
	assert.ErrorIs(t, err, dataset.ErrEmptyDataset)
}
