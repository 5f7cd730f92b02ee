package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldmodel/policy"
)

func TestLists(t *testing.T) {
	tests := []struct {
		name   string
		lists  policy.Lists
		field  string
		expect bool
	}{
		{name: "empty lists fill everything", lists: policy.Lists{}, field: "x", expect: true},
		{name: "fillable wildcard", lists: policy.Lists{Fillable: []string{"*"}, Secured: []string{"x"}}, field: "x", expect: true},
		{name: "fillable listed", lists: policy.Lists{Fillable: []string{"name"}}, field: "name", expect: true},
		{name: "fillable not listed", lists: policy.Lists{Fillable: []string{"name"}}, field: "id", expect: false},
		{name: "secured wildcard", lists: policy.Lists{Secured: []string{"*"}}, field: "name", expect: false},
		{name: "secured listed", lists: policy.Lists{Secured: []string{"id"}}, field: "id", expect: false},
		{name: "secured not listed", lists: policy.Lists{Secured: []string{"id"}}, field: "name", expect: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.lists.IsFillable(tt.field))
		})
	}
}

func TestSet(t *testing.T) {
	s := policy.NewSet("age", "nickname")

	assert.True(t, s.IsNullable("age"))
	assert.True(t, s.IsFillable("nickname"))
	assert.False(t, s.Has("name"))
	assert.False(t, policy.Set(nil).IsNullable("age"))
}

func TestEnforced(t *testing.T) {
	enforcer, err := policy.NewEnforcer(
		[]policy.Rule{
			{Subject: "editor", Model: "user", Fields: []string{"name", "profile.*"}},
			{Subject: "admin", Model: "user", Fields: []string{"*"}},
		},
		[]policy.Role{{Subject: "alice", Role: "editor"}},
	)
	require.NoError(t, err)

	alice := policy.NewEnforced(enforcer, "alice", "user", nil)
	assert.True(t, alice.IsFillable("name"))
	assert.True(t, alice.IsFillable("profile.bio"))
	assert.False(t, alice.IsFillable("role"))

	admin := policy.NewEnforced(enforcer, "admin", "user", nil)
	assert.True(t, admin.IsFillable("role"))

	other := policy.NewEnforced(enforcer, "admin", "invoice", nil)
	assert.False(t, other.IsFillable("total"))

	nobody := policy.NewEnforced(enforcer, "mallory", "user", nil)
	assert.False(t, nobody.IsFillable("name"))
}
