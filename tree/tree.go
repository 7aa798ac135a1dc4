package tree

import (
	"context"
	"fmt"
	"strings"
)

/*
Node is a node of a decision tree. It is either a *Leaf, holding the
label predicted for the samples that reach it, or an *Internal node,
holding the attribute it asks about and a subtree for every value of
that attribute observed during training.

Nodes are built once and not modified afterwards: a tree can be
walked, rendered, classified with and stored concurrently.
*/
type Node interface {
	// IsLeaf returns true for *Leaf nodes and false for
	// *Internal nodes
	IsLeaf() bool
	String() string
	node()
}

// Leaf is a terminal node of the tree
type Leaf struct {
	// The label predicted for samples reaching this node
	Label string
}

/*
Internal is a node of the tree that splits samples according to the
value they take on an attribute.
*/
type Internal struct {
	// The name of the attribute whose value selects the branch
	// to follow
	Attribute string
	// The branches of the node, one per attribute value observed
	// in the training data for the node, in the order the values
	// were first found in it
	Branches []Branch
}

// Branch links an attribute value to the subtree for it
type Branch struct {
	Value   string
	Subtree Node
}

// NewLeaf returns a leaf predicting the given label
func NewLeaf(label string) *Leaf {
	return &Leaf{label}
}

// NewInternal returns an internal node for the attribute with the given branches
func NewInternal(attribute string, branches []Branch) *Internal {
	return &Internal{attribute, branches}
}

func (l *Leaf) IsLeaf() bool {
	return true
}

func (l *Leaf) node() {}

func (l *Leaf) String() string {
	return l.Label
}

func (in *Internal) IsLeaf() bool {
	return false
}

func (in *Internal) node() {}

/*
Child takes an attribute value and returns the subtree for it and
true, or nil and false if no branch exists for the value.
*/
func (in *Internal) Child(value string) (Node, bool) {
	for _, b := range in.Branches {
		if b.Value == value {
			return b.Subtree, true
		}
	}
	return nil, false
}

// Values returns the attribute values with a branch on the node, in branch order
func (in *Internal) Values() []string {
	values := make([]string, 0, len(in.Branches))
	for _, b := range in.Branches {
		values = append(values, b.Value)
	}
	return values
}

func (in *Internal) String() string {
	result := fmt.Sprintf("%s\n", in.Attribute)
	for i, b := range in.Branches {
		for j, line := range strings.Split(b.Subtree.String(), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s: %s\n", result, b.Value, line)
			} else {
				if i == len(in.Branches)-1 {
					result = fmt.Sprintf("%s   %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				}
			}
		}
	}
	return result
}

/*
Equal returns whether the two given trees have the same structure: the
same kind of node at every position, the same labels on leaves and the
same attributes and branch values, in the same order, on internal
nodes.
*/
func Equal(a, b Node) bool {
	switch a := a.(type) {
	case *Leaf:
		b, ok := b.(*Leaf)
		return ok && a != nil && b != nil && a.Label == b.Label
	case *Internal:
		b, ok := b.(*Internal)
		if !ok || a == nil || b == nil {
			return false
		}
		if a.Attribute != b.Attribute || len(a.Branches) != len(b.Branches) {
			return false
		}
		for i := range a.Branches {
			if a.Branches[i].Value != b.Branches[i].Value || !Equal(a.Branches[i].Subtree, b.Branches[i].Subtree) {
				return false
			}
		}
		return true
	}
	return false
}

// Condition is the attribute value required to follow a branch
type Condition struct {
	Attribute string
	Value     string
}

// Path is the sequence of conditions leading from the root of a tree to a node
type Path []Condition

func (p Path) String() string {
	conditions := make([]string, 0, len(p))
	for _, c := range p {
		conditions = append(conditions, fmt.Sprintf("%s is %s", c.Attribute, c.Value))
	}
	return strings.Join(conditions, " and ")
}

/*
Walk takes a context, the root of a tree, a bottomup boolean and an
error-returning function that takes a context, a path and a node as
parameters, and goes through the tree running the function with the
context, every traversed node and the path of conditions leading to it.
Walk will call the function with a parent node before calling it for its
children if bottomup is false, and call it after its children if
bottomup is true. Children are visited in branch order.
If the given context times out or is cancelled, the context error is
returned. If the call to the function returns an error, the walk is
aborted and the error is returned. Otherwise, when the walk is over,
nil is returned.

The function must not keep the path beyond the call, as it is reused
for sibling nodes.
*/
func Walk(ctx context.Context, root Node, bottomup bool, f func(context.Context, Path, Node) error) error {
	return walk(ctx, nil, root, bottomup, f)
}

func walk(ctx context.Context, p Path, n Node, bottomup bool, f func(context.Context, Path, Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, p, n)
		if err != nil {
			return err
		}
	}
	if in, ok := n.(*Internal); ok {
		for _, b := range in.Branches {
			err = walk(ctx, append(p, Condition{in.Attribute, b.Value}), b.Subtree, bottomup, f)
			if err != nil {
				return err
			}
		}
	}
	if bottomup {
		err = f(ctx, p, n)
	}
	return err
}
