package id3

import (
	"fmt"

	"github.com/pbanos/id3/dataset"
)

// BuildError represents an error growing a tree
type BuildError string

/*
ErrNoFeatures is the error returned by BestFeature when the dataset has
no feature columns to choose from.
*/
const ErrNoFeatures = BuildError("dataset has no feature columns")

func (be BuildError) Error() string {
	return string(be)
}

/*
InformationGain takes a dataset and the index of one of its feature
columns and returns the reduction in label entropy obtained by
partitioning the dataset on every distinct value of the column:

	gain = entropy(s) - sum over v of |s_v|/|s| * entropy(s_v)

It returns dataset.ErrEmptyDataset for a dataset without rows and a
*dataset.SchemaError if the index is not that of a feature column.
*/
func InformationGain(s dataset.Dataset, index int) (float64, error) {
	gain, err := s.Entropy()
	if err != nil {
		return 0.0, err
	}
	if index < 0 || index >= s.FeatureCount() {
		return 0.0, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("feature column %d out of range [0, %d)", index, s.FeatureCount())}
	}
	total := float64(s.Count())
	for _, v := range s.Values(index) {
		p, err := s.Partition(index, v)
		if err != nil {
			return 0.0, err
		}
		pEntropy, err := p.Entropy()
		if err != nil {
			return 0.0, err
		}
		gain -= pEntropy * float64(p.Count()) / total
	}
	return gain, nil
}

/*
BestFeature takes a dataset and returns the index of the feature column
with the greatest information gain. Columns are examined from left to
right and a column only replaces the current choice if its gain is
strictly greater, so ties go to the lowest index and a dataset where no
column yields any gain selects column 0.

It returns ErrNoFeatures if the dataset has no feature columns and
dataset.ErrEmptyDataset if it has no rows.
*/
func BestFeature(s dataset.Dataset) (int, error) {
	if len(s) == 0 {
		return -1, dataset.ErrEmptyDataset
	}
	n := s.FeatureCount()
	if n == 0 {
		return -1, ErrNoFeatures
	}
	best := 0
	bestGain, err := InformationGain(s, 0)
	if err != nil {
		return -1, err
	}
	for i := 1; i < n; i++ {
		gain, err := InformationGain(s, i)
		if err != nil {
			return -1, err
		}
		if gain > bestGain {
			best, bestGain = i, gain
		}
	}
	return best, nil
}
