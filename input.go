// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apimd

package apimd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// InputFormatAuto selects decoder by source file extension, JSON by default.
	InputFormatAuto InputFormat = "auto"
	// InputFormatJSON decodes input as JSON array.
	InputFormatJSON InputFormat = "json"
	// InputFormatYAML decodes input as YAML sequence.
	InputFormatYAML InputFormat = "yaml"
)

// InputFormat configures endpoint document decoding.
type InputFormat string

// errEmptyYAML is returned for YAML input without any document.
var errEmptyYAML = errors.New("empty yaml document")

// decodeInput converts input bytes of any supported format into JSON bytes.
func decodeInput(data []byte, format InputFormat, sourcePath string) ([]byte, error) {
	format, err := resolveInputFormat(format, sourcePath)
	if err != nil {
		return nil, err
	}

	if format == InputFormatJSON {
		return data, nil
	}

	converted, err := yamlToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeInput, err)
	}

	return converted, nil
}

// resolveInputFormat validates format and resolves auto mode by file extension.
func resolveInputFormat(format InputFormat, sourcePath string) (InputFormat, error) {
	switch InputFormat(strings.ToLower(strings.TrimSpace(string(format)))) {
	case "", InputFormatAuto:
		switch strings.ToLower(filepath.Ext(strings.TrimSpace(sourcePath))) {
		case ".yaml", ".yml":
			return InputFormatYAML, nil
		default:
			return InputFormatJSON, nil
		}
	case InputFormatJSON:
		return InputFormatJSON, nil
	case InputFormatYAML:
		return InputFormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownInputFormat, format)
	}
}

// yamlToJSON decodes one YAML document and re-encodes it as JSON keeping mapping order.
func yamlToJSON(data []byte) ([]byte, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, err
	}

	if len(document.Content) == 0 {
		return nil, errEmptyYAML
	}

	var out bytes.Buffer
	if err := writeYAMLNodeJSON(&out, &document); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// writeYAMLNodeJSON writes yaml.Node subtree as compact JSON.
func writeYAMLNodeJSON(out *bytes.Buffer, node *yaml.Node) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			out.WriteString("null")
			return nil
		}

		return writeYAMLNodeJSON(out, node.Content[0])

	case yaml.AliasNode:
		return writeYAMLNodeJSON(out, node.Alias)

	case yaml.MappingNode:
		members, err := yamlMappingMembers(node)
		if err != nil {
			return err
		}

		out.WriteByte('{')
		for i, member := range members {
			if i > 0 {
				out.WriteByte(',')
			}

			key, err := marshalJSONValue(member.key)
			if err != nil {
				return err
			}

			out.Write(key)
			out.WriteByte(':')
			if err := writeYAMLNodeJSON(out, member.value); err != nil {
				return err
			}
		}
		out.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		out.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				out.WriteByte(',')
			}

			if err := writeYAMLNodeJSON(out, item); err != nil {
				return err
			}
		}
		out.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return writeYAMLScalarJSON(out, node)

	default:
		return fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// yamlMember is one mapping entry after merge key expansion.
type yamlMember struct {
	key   string
	value *yaml.Node
}

// yamlMappingMembers lists mapping entries in document order with "<<" merge keys expanded.
// Explicit keys win over merged ones; earlier merged mappings win over later ones.
func yamlMappingMembers(node *yaml.Node) ([]yamlMember, error) {
	explicit := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !isYAMLMergeKey(node.Content[i]) {
			explicit[yamlKeyString(node.Content[i])] = struct{}{}
		}
	}

	members := make([]yamlMember, 0, len(node.Content)/2)
	merged := make(map[string]struct{})
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if !isYAMLMergeKey(key) {
			members = append(members, yamlMember{key: yamlKeyString(key), value: value})
			continue
		}

		sources, err := yamlMergeSources(value)
		if err != nil {
			return nil, err
		}

		for _, source := range sources {
			sourceMembers, err := yamlMappingMembers(source)
			if err != nil {
				return nil, err
			}

			for _, member := range sourceMembers {
				if _, ok := explicit[member.key]; ok {
					continue
				}
				if _, ok := merged[member.key]; ok {
					continue
				}

				merged[member.key] = struct{}{}
				members = append(members, member)
			}
		}
	}

	return members, nil
}

// isYAMLMergeKey reports whether key node is the "<<" merge key.
func isYAMLMergeKey(key *yaml.Node) bool {
	return key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge"
}

// yamlMergeSources resolves merge value into mappings: one mapping or a sequence of mappings.
func yamlMergeSources(value *yaml.Node) ([]*yaml.Node, error) {
	value = resolveYAMLAlias(value)

	switch value.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{value}, nil

	case yaml.SequenceNode:
		sources := make([]*yaml.Node, 0, len(value.Content))
		for _, item := range value.Content {
			item = resolveYAMLAlias(item)
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: merge sequence item is not a mapping", item.Line)
			}

			sources = append(sources, item)
		}

		return sources, nil

	default:
		return nil, fmt.Errorf("line %d: merge value is not a mapping", value.Line)
	}
}

// resolveYAMLAlias follows alias nodes to their anchored node.
func resolveYAMLAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

// writeYAMLScalarJSON writes one scalar; tags other than null/bool/int/float become strings.
// Numbers already spelled as JSON literals are written verbatim to keep their precision.
func writeYAMLScalarJSON(out *bytes.Buffer, node *yaml.Node) error {
	var value any = node.Value

	switch node.ShortTag() {
	case "!!int", "!!float":
		if literal := []byte(node.Value); rawKind(literal) == kindNumber && json.Valid(literal) {
			out.Write(literal)
			return nil
		}

		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}

	case "!!null", "!!bool":
		if err := node.Decode(&value); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	}

	data, err := marshalJSONValue(value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	out.Write(data)
	return nil
}

// yamlKeyString stringifies mapping key node, following aliases.
func yamlKeyString(node *yaml.Node) string {
	return resolveYAMLAlias(node).Value
}

// marshalJSONValue encodes value as compact JSON without HTML escaping.
func marshalJSONValue(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(out.Bytes(), []byte("\n")), nil
}
