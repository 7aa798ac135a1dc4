package json

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
)

// Format identifies the version of the model document
const Format = "id3/v1"

const schemaURL = "schema://id3-model.json"

//go:embed model.schema.json
var modelSchema []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

type model struct {
	Format   string   `json:"format"`
	ID       string   `json:"id"`
	Features []string `json:"features"`
	Label    string   `json:"label,omitempty"`
	Root     *node    `json:"root"`
}

type encodeDecoder struct{}

/*
NewEncodeDecoder returns a tree.EncodeDecoder that serializes models as
JSON documents with the following fields:
  - "format": always "id3/v1"
  - "id": the ID of the model
  - "features": an array with the feature names in their original order
  - "label": the name of the predicted column, omitted when empty
  - "root": the root node of the tree

Nodes are objects with a "t" field telling their type. Leaves are
{"t":"leaf","l":label} and internal nodes are
{"t":"internal","a":attribute,"b":[{"v":value,"n":node},...]} with the
branches in the order of the tree.

JSON strings only hold UTF-8 text, so encoding fails for models with a
name, value or label that is not valid UTF-8 instead of altering it.
Encoding also fails for models that could not be decoded back: repeated
feature names or a label that is also a feature.

Decoding validates the document against the schema of the format
before building the model.
*/
func NewEncodeDecoder() tree.EncodeDecoder {
	return encodeDecoder{}
}

func (encodeDecoder) Encode(m *tree.Model) ([]byte, error) {
	if m == nil || m.Root == nil {
		return nil, fmt.Errorf("cannot encode a model without a tree")
	}
	features := []string(m.Features)
	if features == nil {
		features = []string{}
	}
	seen := make(map[string]bool, len(features))
	for _, f := range features {
		if !utf8.ValidString(f) {
			return nil, fmt.Errorf("feature name %q is not valid UTF-8", f)
		}
		if seen[f] {
			return nil, fmt.Errorf("feature %s appears more than once", f)
		}
		seen[f] = true
	}
	if !utf8.ValidString(m.Label) {
		return nil, fmt.Errorf("label name %q is not valid UTF-8", m.Label)
	}
	if m.Label != "" && seen[m.Label] {
		return nil, fmt.Errorf("label %s is also a feature", m.Label)
	}
	if !utf8.ValidString(m.ID) {
		return nil, fmt.Errorf("model ID %q is not valid UTF-8", m.ID)
	}
	root, err := encodeNode(m.Root)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&model{
		Format:   Format,
		ID:       m.ID,
		Features: features,
		Label:    m.Label,
		Root:     root,
	})
}

func (encodeDecoder) Decode(data []byte) (*tree.Model, error) {
	err := validate(data)
	if err != nil {
		return nil, err
	}
	jm := &model{}
	err = json.Unmarshal(data, jm)
	if err != nil {
		return nil, err
	}
	features := make(map[string]bool, len(jm.Features))
	for _, f := range jm.Features {
		features[f] = true
	}
	if jm.Label != "" && features[jm.Label] {
		return nil, fmt.Errorf("label %s is also a feature", jm.Label)
	}
	root, err := jm.Root.decode(features)
	if err != nil {
		return nil, err
	}
	return &tree.Model{
		ID:       jm.ID,
		Features: feature.Names(jm.Features),
		Label:    jm.Label,
		Root:     root,
	}, nil
}

/*
WriteModel takes an io.Writer and a model and writes the model on the
writer in the format described on NewEncodeDecoder.
*/
func WriteModel(w io.Writer, m *tree.Model) error {
	data, err := encodeDecoder{}.Encode(m)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadModel takes an io.Reader and reads a model from it in the format
described on NewEncodeDecoder.
*/
func ReadModel(r io.Reader) (*tree.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return encodeDecoder{}.Decode(data)
}

func validate(data []byte) error {
	sch, err := schema()
	if err != nil {
		return fmt.Errorf("compiling model schema: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	err = sch.Validate(inst)
	if err != nil {
		return fmt.Errorf("invalid model document: %w", err)
	}
	return nil
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var parsed any
		parsed, compileErr = jsonschema.UnmarshalJSON(bytes.NewReader(modelSchema))
		if compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		compileErr = c.AddResource(schemaURL, parsed)
		if compileErr != nil {
			return
		}
		compiledSchema, compileErr = c.Compile(schemaURL)
	})
	return compiledSchema, compileErr
}
