package entity_test

import (
	"fmt"
	"strings"

	"fieldmodel/accessor"
	"fieldmodel/entity"
	"fieldmodel/mutator"
)

func Example() {
	s := testSchema{
		accessors: map[string]string{"tags": accessor.KindList},
		setters:   map[string]mutator.Func{"name": mutator.MustWrap(strings.TrimSpace)},
		fillable:  map[string]bool{"name": true, "tags": true},
	}

	e := entity.New(map[string]any{"id": 7}, entity.WithSchema(s), entity.WithFactory(accessor.NewRegistry()))
	defer e.Dispose()

	e.SetFields(map[string]any{
		"id":   1,
		"name": "  dave ",
		"tags": []string{"admin"},
	}, false)

	data, _ := e.MarshalJSON()
	fmt.Println(string(data))
	// Output:
	// {"id":7,"name":"dave","tags":["admin"]}
}
