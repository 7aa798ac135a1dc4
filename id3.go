/*
Package id3 grows decision trees from labeled categorical datasets with
the ID3 algorithm: at every node the feature column with the greatest
information gain is chosen to split the rows, and a branch is grown for
each value it takes, until the rows reaching a node share their label or
no feature columns are left.

The trees are made of the nodes in package tree, which also provides
classification of new samples and model stores.
*/
package id3

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

/*
Builder grows decision trees. Its Logger, if not nil, receives a debug
record for every node that is split and every leaf that is made.
*/
type Builder struct {
	Logger *slog.Logger
}

// New returns a Builder logging on the given logger, which may be nil.
func New(logger *slog.Logger) *Builder {
	return &Builder{logger}
}

/*
Build takes a context, a dataset and the names of its feature columns
and returns the root of a decision tree grown from them with the
default Builder. See (*Builder).Build.
*/
func Build(ctx context.Context, s dataset.Dataset, names feature.Names) (tree.Node, error) {
	return New(nil).Build(ctx, s, names)
}

/*
Build takes a context, a dataset and the names of its feature columns,
in column order, and returns the root of a decision tree grown from
them.

  - If every row has the same label, the result is a leaf with it.
  - If the rows have no feature columns, the result is a leaf with the
    majority label. When several labels are tied for the majority, the
    one appearing first in row order wins.
  - Otherwise the column returned by BestFeature becomes an internal
    node with a branch for each value the rows take on it, in the order
    the values first appear. Each branch is grown from the rows with
    that value, without the column, and with its own copy of the
    remaining names.

A *dataset.SchemaError is returned if a name is empty or repeated, the
rows differ in width or the number of names does not match the number of
feature columns. dataset.ErrEmptyDataset is returned if the dataset has
no rows. The context is
checked before growing each node, so cancelling it aborts the build
with the context's error. No tree is returned along with an error.
*/
func (b *Builder) Build(ctx context.Context, s dataset.Dataset, names feature.Names) (tree.Node, error) {
	err := names.Validate()
	if err != nil {
		return nil, &dataset.SchemaError{Row: -1, Reason: err.Error()}
	}
	err = s.Validate(names)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, dataset.ErrEmptyDataset
	}
	root, err := b.build(ctx, s, names, nil)
	if err != nil {
		return nil, err
	}
	return root, nil
}

/*
BuildModel grows a tree like Build and returns it as a model predicting
the given label, ready to be saved on a tree.ModelStore. The label may be
empty, but it cannot be one of the names.
*/
func (b *Builder) BuildModel(ctx context.Context, s dataset.Dataset, names feature.Names, label string) (*tree.Model, error) {
	if label != "" && names.IndexOf(label) >= 0 {
		return nil, &dataset.SchemaError{Row: -1, Reason: fmt.Sprintf("label %s is also a feature", label)}
	}
	root, err := b.Build(ctx, s, names)
	if err != nil {
		return nil, err
	}
	m := tree.NewModel(root, names, label)
	b.logger().Info("grew tree", "model", m.ID, "rows", len(s), "features", len(names))
	return m, nil
}

func (b *Builder) build(ctx context.Context, s dataset.Dataset, names feature.Names, p tree.Path) (tree.Node, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}
	logger := b.logger()
	if s.Pure() {
		logger.Debug("pure rows", "path", p.String(), "rows", len(s), "label", s[0].Label())
		return tree.NewLeaf(s[0].Label()), nil
	}
	if s.FeatureCount() == 0 {
		label, err := s.MajorityLabel()
		if err != nil {
			return nil, err
		}
		logger.Debug("no features left", "path", p.String(), "rows", len(s), "label", label)
		return tree.NewLeaf(label), nil
	}
	best, err := BestFeature(s)
	if err != nil {
		return nil, err
	}
	attribute := names[best]
	values := s.Values(best)
	logger.Debug("splitting", "path", p.String(), "rows", len(s), "attribute", attribute, "values", len(values))
	branches := make([]tree.Branch, 0, len(values))
	for _, v := range values {
		subset, err := s.Partition(best, v)
		if err != nil {
			return nil, err
		}
		sp := append(p[:len(p):len(p)], tree.Condition{Attribute: attribute, Value: v})
		child, err := b.build(ctx, subset, names.Without(best), sp)
		if err != nil {
			return nil, err
		}
		branches = append(branches, tree.Branch{Value: v, Subtree: child})
	}
	return tree.NewInternal(attribute, branches), nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}
