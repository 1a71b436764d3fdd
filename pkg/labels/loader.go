package labels

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type overrideDocument struct {
	Descriptions  map[string]string `yaml:"descriptions"`
	BooleanValues map[string]string `yaml:"boolean_values"`
}

// LoadYAML reads label overrides and merges them on top of the defaults.
//
//	descriptions:
//	  tags: Tags
//	boolean_values:
//	  "15": Meals
func LoadYAML(r io.Reader) (Set, error) {
	if r == nil {
		return Set{}, errors.New("labels: missing reader")
	}
	var doc overrideDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Defaults(), nil
		}
		return Set{}, fmt.Errorf("labels: decode overrides: %w", err)
	}

	set := Defaults()
	set.Descriptions = set.Descriptions.Merge(doc.Descriptions)
	set.BooleanValues = set.BooleanValues.Merge(doc.BooleanValues)
	return set, nil
}

// LoadFile reads label overrides from path.
func LoadFile(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("labels: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return LoadYAML(f)
}
