package json

import (
	"fmt"
	"unicode/utf8"

	"github.com/pbanos/id3/tree"
)

const (
	leafType     = "leaf"
	internalType = "internal"
)

type node struct {
	Type      string    `json:"t"`
	Label     *string   `json:"l,omitempty"`
	Attribute *string   `json:"a,omitempty"`
	Branches  []*branch `json:"b,omitempty"`
}

type branch struct {
	Value string `json:"v"`
	Node  *node  `json:"n"`
}

func encodeNode(n tree.Node) (*node, error) {
	switch n := n.(type) {
	case *tree.Leaf:
		label := n.Label
		if !utf8.ValidString(label) {
			return nil, fmt.Errorf("leaf label %q is not valid UTF-8", label)
		}
		return &node{Type: leafType, Label: &label}, nil
	case *tree.Internal:
		if len(n.Branches) == 0 {
			return nil, fmt.Errorf("internal node for attribute %s has no branches", n.Attribute)
		}
		attribute := n.Attribute
		if !utf8.ValidString(attribute) {
			return nil, fmt.Errorf("attribute %q is not valid UTF-8", attribute)
		}
		jn := &node{Type: internalType, Attribute: &attribute, Branches: make([]*branch, 0, len(n.Branches))}
		for _, b := range n.Branches {
			if !utf8.ValidString(b.Value) {
				return nil, fmt.Errorf("value %q of attribute %s is not valid UTF-8", b.Value, attribute)
			}
			jst, err := encodeNode(b.Subtree)
			if err != nil {
				return nil, err
			}
			jn.Branches = append(jn.Branches, &branch{b.Value, jst})
		}
		return jn, nil
	default:
		return nil, fmt.Errorf("unknown type of tree.Node %T", n)
	}
}

/*
decode rebuilds the tree from its JSON form. Documents reaching it
have already been validated against the model schema, but the checks
that schema cannot express are done here: internal nodes must ask about
known features, and no node may have two branches for the same value.
*/
func (jn *node) decode(features map[string]bool) (tree.Node, error) {
	switch jn.Type {
	case leafType:
		if jn.Label == nil {
			return nil, fmt.Errorf("leaf node without label")
		}
		return tree.NewLeaf(*jn.Label), nil
	case internalType:
		if jn.Attribute == nil {
			return nil, fmt.Errorf("internal node without attribute")
		}
		attribute := *jn.Attribute
		if !features[attribute] {
			return nil, fmt.Errorf("internal node for unknown feature %s", attribute)
		}
		branches := make([]tree.Branch, 0, len(jn.Branches))
		values := make(map[string]bool, len(jn.Branches))
		for _, jb := range jn.Branches {
			if values[jb.Value] {
				return nil, fmt.Errorf("internal node for %s has more than one branch for value %q", attribute, jb.Value)
			}
			values[jb.Value] = true
			if jb.Node == nil {
				return nil, fmt.Errorf("branch for value %q of %s has no node", jb.Value, attribute)
			}
			st, err := jb.Node.decode(features)
			if err != nil {
				return nil, err
			}
			branches = append(branches, tree.Branch{Value: jb.Value, Subtree: st})
		}
		return tree.NewInternal(attribute, branches), nil
	}
	return nil, fmt.Errorf("unknown node type '%s'", jn.Type)
}
