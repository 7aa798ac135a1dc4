package feature

import "fmt"

/*
Names is the ordered list of names of the features (attributes) of
a dataset, one per feature column and in column order. The label
column is never part of it.

A Names value is never modified in place by this package: methods
that derive a new list of names always return a newly allocated
slice.
*/
type Names []string

/*
IndexOf takes a feature name and returns its position in the list
or -1 if no feature has that name.
*/
func (ns Names) IndexOf(name string) int {
	for i, n := range ns {
		if n == name {
			return i
		}
	}
	return -1
}

/*
Without takes an index and returns a new Names with the name at that
index removed. The receiver is left untouched, so the result can be
handed to a recursive call without any other call observing the
removal. An out of range index returns a plain copy.
*/
func (ns Names) Without(i int) Names {
	result := make(Names, 0, len(ns))
	for j, n := range ns {
		if j != i {
			result = append(result, n)
		}
	}
	return result
}

// Clone returns a copy of the names backed by a new array.
func (ns Names) Clone() Names {
	return append(make(Names, 0, len(ns)), ns...)
}

/*
Validate returns an error if any name is empty or appears more than
once.
*/
func (ns Names) Validate() error {
	seen := make(map[string]bool, len(ns))
	for i, n := range ns {
		if n == "" {
			return fmt.Errorf("feature %d has an empty name", i)
		}
		if seen[n] {
			return fmt.Errorf("feature %s is defined more than once", n)
		}
		seen[n] = true
	}
	return nil
}

/*
Metadata describes the columns of a source of training data: the
features to learn from, in the order they will be laid out in the
dataset rows, and the name of the column holding the label.
*/
type Metadata struct {
	Features Names
	Label    string
}

/*
Validate returns an error describing the first problem found with
the metadata: no features, invalid feature names, a missing label
or a label that is also declared as a feature.
*/
func (md *Metadata) Validate() error {
	if len(md.Features) == 0 {
		return fmt.Errorf("metadata declares no features")
	}
	if err := md.Features.Validate(); err != nil {
		return fmt.Errorf("invalid metadata: %w", err)
	}
	if md.Label == "" {
		return fmt.Errorf("metadata declares no label")
	}
	if md.Features.IndexOf(md.Label) >= 0 {
		return fmt.Errorf("label %s is also declared as a feature", md.Label)
	}
	return nil
}

// Columns returns the feature names followed by the label name.
func (md *Metadata) Columns() []string {
	return append(md.Features.Clone(), md.Label)
}
