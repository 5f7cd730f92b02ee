package mutator

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"fieldmodel/primitive"
)

// ErrDuplicate is returned when a name is registered twice in a Library.
var ErrDuplicate = errors.New("mutator already registered")

// Library is a set of named mutators a schema may refer to.
type Library struct {
	funcs map[string]Func
}

// NewLibrary creates a new empty library.
func NewLibrary() *Library {
	return &Library{funcs: make(map[string]Func)}
}

// Register adds fn under name. fn is adapted with Wrap.
func (l *Library) Register(name string, fn any) error {
	if _, exists := l.funcs[name]; exists {
		return errors.Wrapf(ErrDuplicate, "%q", name)
	}

	f, err := Wrap(fn)
	if err != nil {
		return errors.Wrapf(err, "mutator %q", name)
	}

	l.funcs[name] = f

	return nil
}

// Lookup returns the mutator registered under name.
func (l *Library) Lookup(name string) (Func, bool) {
	if l == nil {
		return nil, false
	}

	f, ok := l.funcs[name]

	return f, ok
}

// Has returns true if a mutator with the given name exists.
func (l *Library) Has(name string) bool {
	_, ok := l.Lookup(name)
	return ok
}

// Names returns all registered names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.funcs))
	for name := range l.funcs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Builtins returns a library holding the general purpose mutators:
// trim, lower, upper, int, float and bool. Each one tolerates nil.
func Builtins() *Library {
	l := NewLibrary()
	for name, fn := range map[string]Func{
		"trim":  stringMutator(strings.TrimSpace),
		"lower": stringMutator(strings.ToLower),
		"upper": stringMutator(strings.ToUpper),
		"int":   toInt,
		"float": toFloat,
		"bool":  toBool,
	} {
		l.funcs[name] = fn
	}

	return l
}

func stringMutator(fn func(string) string) Func {
	return func(value any) (any, error) {
		if value == nil {
			return "", nil
		}

		s, ok := value.(string)
		if !ok {
			return nil, errors.Newf("expected string, got %T", value)
		}

		return fn(s), nil
	}
}

func toInt(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	default:
		out, err := primitive.Coerce(value, intType)
		if err != nil {
			return nil, err
		}
		return out.Interface(), nil
	}
}

func toFloat(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return float64(0), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		out, err := primitive.Coerce(value, floatType)
		if err != nil {
			return nil, err
		}
		return out.Interface(), nil
	}
}

func toBool(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		if primitive.FromValue(value).IsInteger() {
			out, err := primitive.Coerce(value, intType)
			if err != nil {
				return nil, err
			}
			return out.Int() != 0, nil
		}
		return nil, errors.Newf("expected bool, got %T", value)
	}
}
