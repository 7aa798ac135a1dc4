package dataset

import (
	"fmt"
	"math"

	"github.com/pbanos/id3/feature"
)

/*
Row is a training sample: the values for each feature column in
order, followed by the label as the last value.
*/
type Row []string

/*
Dataset represents an ordered collection of rows, all of the same
width.

Its Entropy method returns the entropy of the labels of the dataset: a
measure of the disinformation we have on the classes of the rows that
belong to it.

Its Partition method takes a feature column and a value and returns the
subset of rows taking that value, without that column.

Datasets are treated as immutable: no method modifies the receiver or
the rows in it.
*/
type Dataset []Row

/*
New takes a slice of rows and the names of their feature columns and
returns a dataset with them or a *SchemaError if they do not conform to
the same shape (see Validate).
*/
func New(rows []Row, names feature.Names) (Dataset, error) {
	s := Dataset(rows)
	if err := s.Validate(names); err != nil {
		return nil, err
	}
	return s, nil
}

/*
Validate takes the names of the feature columns of the dataset and
returns a *SchemaError if any row is empty, if rows differ in width or
if the number of names does not equal the number of feature columns.
An empty dataset is valid.
*/
func (s Dataset) Validate(names feature.Names) error {
	if len(s) == 0 {
		return nil
	}
	width := len(s[0])
	for i, r := range s {
		if len(r) == 0 {
			return schemaErrorf(i, "row has no label")
		}
		if len(r) != width {
			return schemaErrorf(i, "row has %d values, expected %d", len(r), width)
		}
	}
	if len(names) != width-1 {
		return schemaErrorf(-1, "%d feature names given for %d feature columns", len(names), width-1)
	}
	return nil
}

// Count returns the number of rows in the dataset.
func (s Dataset) Count() int {
	return len(s)
}

/*
FeatureCount returns the number of feature columns of the dataset, that
is, the width of its rows minus the label column. It returns 0 for an
empty dataset.
*/
func (s Dataset) FeatureCount() int {
	if len(s) == 0 || len(s[0]) == 0 {
		return 0
	}
	return len(s[0]) - 1
}

// Label returns the last value of the row.
func (r Row) Label() string {
	return r[len(r)-1]
}

/*
Entropy returns the Shannon entropy in bits of the distribution of labels
in the dataset or ErrEmptyDataset if the dataset has no rows.
*/
func (s Dataset) Entropy() (float64, error) {
	if len(s) == 0 {
		return 0.0, ErrEmptyDataset
	}
	var result float64
	labelCounts := make(map[string]int)
	for _, r := range s {
		labelCounts[r.Label()]++
	}
	count := float64(len(s))
	for _, c := range labelCounts {
		probValue := float64(c) / count
		result -= probValue * math.Log2(probValue)
	}
	return result, nil
}

/*
Partition takes the index of a feature column and a value and returns a
new dataset with the rows whose value on that column is the given one, in
their original order, each with the column removed. The label stays as
the last value of every row.

An index that does not refer to a feature column returns a *SchemaError.
*/
func (s Dataset) Partition(index int, value string) (Dataset, error) {
	if index < 0 || index >= s.FeatureCount() {
		return nil, schemaErrorf(-1, "feature column %d out of range [0, %d)", index, s.FeatureCount())
	}
	var result Dataset
	for _, r := range s {
		if r[index] != value {
			continue
		}
		reduced := make(Row, 0, len(r)-1)
		reduced = append(reduced, r[:index]...)
		reduced = append(reduced, r[index+1:]...)
		result = append(result, reduced)
	}
	return result, nil
}

/*
Values takes the index of a feature column and returns the distinct
values the rows take on it, in the order in which they first appear.
*/
func (s Dataset) Values(index int) []string {
	result := []string{}
	encountered := make(map[string]bool)
	for _, r := range s {
		v := r[index]
		if !encountered[v] {
			encountered[v] = true
			result = append(result, v)
		}
	}
	return result
}

/*
Pure returns whether every row has the same label as the first one.
An empty dataset is not pure.
*/
func (s Dataset) Pure() bool {
	if len(s) == 0 {
		return false
	}
	first := s[0].Label()
	for _, r := range s[1:] {
		if r.Label() != first {
			return false
		}
	}
	return true
}

/*
MajorityLabel returns the most frequent label in the dataset. When several
labels share the highest count, the one appearing first in row order is
returned. It returns ErrEmptyDataset for a dataset without rows.
*/
func (s Dataset) MajorityLabel() (string, error) {
	if len(s) == 0 {
		return "", ErrEmptyDataset
	}
	counts := make(map[string]int)
	var order []string
	for _, r := range s {
		l := r.Label()
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	result := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[result] {
			result = l
		}
	}
	return result, nil
}

func (s Dataset) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}
