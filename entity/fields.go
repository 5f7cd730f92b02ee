package entity

import (
	"bytes"
	"encoding/json"
	"iter"
	"sort"
)

// Field is a single named value.
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered name to value mapping. Order is storage order: the
// order in which names were first inserted.
type Fields []Field

// FieldsFromMap returns the entries of m ordered by name.
func FieldsFromMap(m map[string]any) Fields {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make(Fields, 0, len(names))
	for _, name := range names {
		out = append(out, Field{Name: name, Value: m[name]})
	}

	return out
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (any, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Value, true
		}
	}

	return nil, false
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}

	return names
}

// Map returns the fields as an unordered map.
func (f Fields) Map() map[string]any {
	out := make(map[string]any, len(f))
	for _, field := range f {
		out[field.Name] = field.Value
	}

	return out
}

// All returns a restartable iterator over the fields in order.
func (f Fields) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, field := range f {
			if !yield(field.Name, field.Value) {
				return
			}
		}
	}
}

// MarshalJSON encodes the fields as a JSON object preserving their order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(field.Name)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}
