/*
Package yaml provides methods to parse feature.Metadata specifications
from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/id3/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object with a features property holding the
list of feature names in column order, and a label property with the name of
the column to predict:

	features: [outlook, temperature, humidity, windy]
	label: play

Scalars that YAML would resolve as numbers or booleans are kept in the
textual form they have in the document.
*/
func ReadMetadata(md []byte) (*feature.Metadata, error) {
	doc := struct {
		Features []string `yaml:"features"`
		Label    string   `yaml:"label"`
	}{}
	err := yaml.Unmarshal(md, &doc)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %w", err)
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	result := &feature.Metadata{Features: feature.Names(doc.Features), Label: doc.Label}
	if err = result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*feature.Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %w", filepath, err)
	}
	result, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %w", filepath, err)
	}
	return result, err
}
