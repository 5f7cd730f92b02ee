package primitive_test

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/primitive"
)

func TestCoerce(t *testing.T) {
	type Status string

	tests := []struct {
		name    string
		in      any
		to      reflect.Type
		want    any
		wantErr bool
	}{
		{name: "nil to string", in: nil, to: reflect.TypeOf(""), want: ""},
		{name: "assignable", in: "x", to: reflect.TypeOf(""), want: "x"},
		{name: "assignable to interface", in: 3, to: reflect.TypeOf((*any)(nil)).Elem(), want: 3},
		{name: "exact int widening", in: int8(7), to: reflect.TypeOf(int64(0)), want: int64(7)},
		{name: "exact float to int", in: float64(42), to: reflect.TypeOf(0), want: 42},
		{name: "lossy float to int", in: 4.5, to: reflect.TypeOf(0), wantErr: true},
		{name: "overflow", in: 300, to: reflect.TypeOf(uint8(0)), wantErr: true},
		{name: "negative to unsigned", in: -1, to: reflect.TypeOf(uint(0)), wantErr: true},
		{name: "string to enum", in: "active", to: reflect.TypeOf(Status("")), want: Status("active")},
		{name: "enum to string", in: Status("active"), to: reflect.TypeOf(""), want: "active"},
		{name: "int to string is refused", in: 65, to: reflect.TypeOf(""), wantErr: true},
		{name: "string to int is refused", in: "65", to: reflect.TypeOf(0), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := primitive.Coerce(tt.in, tt.to)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, primitive.ErrNotCoercible))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Interface())
		})
	}
}
