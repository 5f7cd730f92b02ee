package schema

import (
	"slices"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"fieldmodel/internal/common"
)

// --- StringOrArray YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return errors.Newf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML implements custom YAML marshaling for StringOrArray.
// Outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains the given string.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}

// --- MutatorRef YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for MutatorRef.
// Accepts a mutator name or a {func, expr} mapping.
func (m *MutatorRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*m = MutatorRef{}
		return node.Decode(&m.Func)

	case yaml.MappingNode:
		type plain MutatorRef

		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}

		*m = MutatorRef(p)

		return nil

	default:
		return errors.Newf("line %d: expected mutator name or {func|expr} mapping", node.Line)
	}
}

// MarshalYAML implements custom YAML marshaling for MutatorRef.
// Outputs the bare function name when there is no expression.
func (m MutatorRef) MarshalYAML() (any, error) {
	if m.Expr == "" {
		return m.Func, nil
	}

	type plain MutatorRef

	return plain(m), nil
}
