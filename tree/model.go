package tree

import (
	"github.com/google/uuid"
	"github.com/pbanos/id3/feature"
)

/*
Model is a grown decision tree along with what is needed to use it on
new samples: the names of the features in the order samples must
provide their values, and the name of the label it predicts. Models
are the unit handled by a ModelStore.
*/
type Model struct {
	// ID identifies the model. NewModel sets it to a random UUID.
	ID string
	// Features holds the names of the features of the dataset the
	// tree was grown from, in their original order.
	Features feature.Names
	// Label is the name of the predicted column. It may be empty
	// if the training data did not name it.
	Label string
	// Root is the root node of the tree
	Root Node
}

/*
NewModel takes the root of a tree, the names of the features it was
grown with and the name of the label it predicts and returns a model
for them with a new random ID. The feature names are copied.
*/
func NewModel(root Node, features feature.Names, label string) *Model {
	return &Model{
		ID:       uuid.NewString(),
		Features: features.Clone(),
		Label:    label,
		Root:     root,
	}
}

/*
Classify takes a sample with a value for each of the model's features,
in the same order, and returns the label predicted for it. See Classify.
*/
func (m *Model) Classify(sample []string) (string, error) {
	return Classify(m.Root, m.Features, sample)
}

func (m *Model) String() string {
	return m.Root.String()
}
