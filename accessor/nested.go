package accessor

import (
	"reflect"

	"github.com/cockroachdb/errors"

	"fieldmodel/entity"
)

// NestedOf returns a constructor embedding a document as an entity configured
// with opts. The raw document is mass assigned, so the nested fill policy
// applies to it. Register it under a kind of its own:
//
//	entity.Register(reg, "address", accessor.NestedOf(entity.WithSchema(addressModel), entity.WithKind("address")))
func NestedOf(opts ...entity.Option) func(raw any, ctx entity.Context) (*entity.Entity, error) {
	return func(raw any, _ entity.Context) (*entity.Entity, error) {
		if !isDocument(raw) {
			return nil, errors.Newf("expected a document, got %T", raw)
		}

		return entity.New(nil, opts...).SetFields(raw, false), nil
	}
}

// HydratedOf is like NestedOf but stores the raw document verbatim. Use it
// for trusted data, such as documents loaded from storage.
func HydratedOf(opts ...entity.Option) func(raw any, ctx entity.Context) (*entity.Entity, error) {
	return func(raw any, _ entity.Context) (*entity.Entity, error) {
		if !isDocument(raw) {
			return nil, errors.Newf("expected a document, got %T", raw)
		}

		fields, err := documentFields(raw)
		if err != nil {
			return nil, err
		}

		return entity.NewOrdered(fields, opts...), nil
	}
}

func isDocument(raw any) bool {
	switch raw.(type) {
	case nil, entity.Fields, map[string]any:
		return true
	}

	rv := reflect.ValueOf(raw)

	return rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String
}

func documentFields(raw any) (entity.Fields, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case entity.Fields:
		return v, nil
	case map[string]any:
		return entity.FieldsFromMap(v), nil
	}

	values, err := toMap(raw)
	if err != nil {
		return nil, err
	}

	return entity.FieldsFromMap(values), nil
}
