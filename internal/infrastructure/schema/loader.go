// Package schema loads contract expectations from YAML files while
// preserving the declaration order of fields.
package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/springprobe/internal/domain"
)

// LoadFile reads a flat "field: type" YAML mapping into an ordered
// ContractExpectation. Decoding goes through yaml.Node because a plain map
// would lose the field order the validator's output must preserve.
func LoadFile(path string) (domain.ContractExpectation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML schema bytes into an ordered ContractExpectation.
func Parse(data []byte) (domain.ContractExpectation, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema must be a flat field: type mapping")
	}

	var expectation domain.ContractExpectation
	seen := map[string]bool{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("schema field %q: type must be a scalar tag", keyNode.Value)
		}
		if seen[keyNode.Value] {
			return nil, fmt.Errorf("duplicate schema field %q", keyNode.Value)
		}
		seen[keyNode.Value] = true

		coarse, err := domain.ParseCoarseType(valueNode.Value)
		if err != nil {
			return nil, fmt.Errorf("schema field %q: %w", keyNode.Value, err)
		}
		expectation = append(expectation, domain.FieldExpectation{
			Name: keyNode.Value,
			Type: coarse,
		})
	}
	return expectation, nil
}
