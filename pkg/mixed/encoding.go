// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mixed

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText implements encoding.TextMarshaler using the canonical text.
func (n Number) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using Parse.
func (n *Number) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// MarshalJSON encodes n as a JSON string holding its canonical text.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON accepts a JSON string literal or a bare JSON number.
// Numbers are parsed from their exact text, so 0.1 is 1/10. A null is
// malformed; use a *Number field when the value is optional.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return &ParseError{Literal: "null", Err: ErrMalformedLiteral}
	}

	text := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode mixed number: %w", err)
		}
	}
	return n.UnmarshalText([]byte(text))
}

// MarshalYAML emits integers as plain YAML ints and everything else as a
// string scalar holding the canonical text.
func (n Number) MarshalYAML() (any, error) {
	node := &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: n.String(),
	}
	if n.IsInt() {
		node.Tag = "!!int"
	}
	return node, nil
}

// UnmarshalYAML parses a scalar node from its raw text, so `amount: 1.5`
// and `amount: "2 1/3"` are both exact. yaml.v3 does not call it for null
// nodes; a null leaves a Number untouched and a *Number nil.
func (n *Number) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: %w: expected a number, got %s", node.Line, ErrMalformedLiteral, describeNode(node))
	}
	v, err := Parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*n = v
	return nil
}

func describeNode(node *yaml.Node) string {
	switch node.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	}
	return fmt.Sprintf("%q", node.Value)
}
