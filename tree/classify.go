package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
)

/*
UnseenValueError is the error returned by Classify when a sample takes
a value on an attribute for which the node asking about it has no
branch, because the value never reached that node during training.
*/
type UnseenValueError struct {
	Attribute string
	Value     string
}

func (uve *UnseenValueError) Error() string {
	return fmt.Sprintf("no branch for value %q of attribute %s", uve.Value, uve.Attribute)
}

/*
SampleError is the error returned by Classify when the sample cannot be
matched against the tree: the tree asks about an attribute missing from
the feature names, or the sample has no value at the attribute's
position.
*/
type SampleError struct {
	Attribute string
	Reason    string
}

func (se *SampleError) Error() string {
	return fmt.Sprintf("classifying sample on attribute %s: %s", se.Attribute, se.Reason)
}

/*
Classify takes the root of a tree, the feature names used to grow it and
a sample, and returns the label the tree predicts for the sample.

The sample must hold the values of the features in the same order as
names, which must be the complete list of features of the training
dataset in its original order. Internal nodes are resolved by attribute
name: the position of the value to check is the position of the
attribute in names.

If the sample takes a value with no branch on a traversed node, an
*UnseenValueError is returned. If the sample cannot be matched against
the tree a *SampleError is returned.
*/
func Classify(root Node, names feature.Names, sample []string) (string, error) {
	n := root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Internal:
			i := names.IndexOf(node.Attribute)
			if i < 0 {
				return "", &SampleError{node.Attribute, "attribute is not among the feature names"}
			}
			if i >= len(sample) {
				return "", &SampleError{node.Attribute, fmt.Sprintf("sample has %d values, attribute is at position %d", len(sample), i)}
			}
			child, ok := node.Child(sample[i])
			if !ok {
				return "", &UnseenValueError{node.Attribute, sample[i]}
			}
			n = child
		default:
			return "", fmt.Errorf("unknown type of node %T", n)
		}
	}
}

/*
Test takes a context, the root of a tree, the feature names used to grow
it and a dataset whose rows follow that same feature order, and returns
three values:
  - the prediction success rate of the tree over the dataset
  - the number of rows for which no prediction could be made because
    of an *UnseenValueError. These count as failed predictions.
  - an error if a prediction could not be made for other reasons or
    the dataset does not match the names. If this is not nil, the other
    values will be 0.0 and 0 respectively
*/
func Test(ctx context.Context, root Node, names feature.Names, s dataset.Dataset) (float64, int, error) {
	if len(s) == 0 {
		return 0.0, 0, nil
	}
	err := s.Validate(names)
	if err != nil {
		return 0.0, 0, err
	}
	var hits float64
	var unseen int
	for _, r := range s {
		if err = ctx.Err(); err != nil {
			return 0.0, 0, err
		}
		label, err := Classify(root, names, r[:len(r)-1])
		if err != nil {
			var uve *UnseenValueError
			if !errors.As(err, &uve) {
				return 0.0, 0, err
			}
			unseen++
			continue
		}
		if label == r.Label() {
			hits += 1.0
		}
	}
	return hits / float64(len(s)), unseen, nil
}

/*
ClassifyBy takes the root of a tree and a function returning the value
of a sample for an attribute, and returns the label the tree predicts
for the sample. The function is only called for the attributes of the
nodes on the path to the leaf, along with the values those nodes have
branches for. A value without a branch returns an *UnseenValueError.
*/
func ClassifyBy(root Node, valueFor func(attribute string, values []string) (string, error)) (string, error) {
	n := root
	for {
		switch node := n.(type) {
		case *Leaf:
			return node.Label, nil
		case *Internal:
			v, err := valueFor(node.Attribute, node.Values())
			if err != nil {
				return "", err
			}
			child, ok := node.Child(v)
			if !ok {
				return "", &UnseenValueError{node.Attribute, v}
			}
			n = child
		default:
			return "", fmt.Errorf("unknown type of node %T", n)
		}
	}
}
