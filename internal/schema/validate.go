package schema

import (
	"fmt"
	"maps"
	"slices"

	"fieldmodel/internal/common"
	"fieldmodel/internal/diagnostic"
	"fieldmodel/internal/match"
	"fieldmodel/policy"
)

// Validate checks a schema against the environment. This is a structural
// validation step: mutators are looked up and expressions compiled, but
// nothing is evaluated.
func (env *Environment) Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if len(f.Models) == 0 {
		res.AddWarning("no_models", "schema declares no models", "", "")
	}

	seen := map[string]struct{}{}
	names := make([]string, 0, len(f.Models))

	for i := range f.Models {
		name := f.Models[i].Name

		switch {
		case name == "":
			res.AddError("model_name_missing", fmt.Sprintf("model #%d has no name", i+1), "", "")
			continue
		case env.Registry.Has(name):
			res.AddError("model_shadows_accessor",
				fmt.Sprintf("model %q has the name of a registered accessor kind", name), name, "")
			continue
		}

		if _, ok := seen[name]; ok {
			res.AddError("duplicate_model", fmt.Sprintf("duplicate model %q", name), name, "")
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	kinds := append(env.Registry.Kinds(), names...)

	for i := range f.Models {
		env.validateModel(res, &f.Models[i], kinds)
	}

	validatePermissions(res, f, names)

	return res
}

func (env *Environment) validateModel(res *diagnostic.Diagnostics, m *ModelDef, kinds []string) {
	for _, dup := range common.Duplicates(m.Fields) {
		res.AddError("duplicate_field", fmt.Sprintf("field %q is declared more than once", dup), m.Name, dup)
	}

	if !m.Fillable.IsEmpty() && !m.Secured.IsEmpty() && !m.Secured.Contains(policy.Wildcard) {
		res.AddWarning("fillable_overrides_secured",
			"secured fields are ignored when fillable fields are listed", m.Name, "")
	}

	for _, field := range sortedKeys(m.Accessors) {
		kind := m.Accessors[field]
		if !slices.Contains(kinds, kind) {
			res.AddError("unknown_accessor", fmt.Sprintf("unknown accessor kind %q", kind), m.Name, field,
				match.Suggest(kind, kinds)...)
		}

		if _, ok := m.Getters[field]; ok {
			res.AddWarning("accessor_shadows_getter", "field has an accessor, its getter is never applied", m.Name, field)
		}

		if _, ok := m.Setters[field]; ok {
			res.AddWarning("accessor_shadows_setter", "field has an accessor, its setter is never applied", m.Name, field)
		}
	}

	for _, field := range sortedKeys(m.Getters) {
		env.validateMutator(res, m.Name, field, m.Getters[field])
	}

	for _, field := range sortedKeys(m.Setters) {
		env.validateMutator(res, m.Name, field, m.Setters[field])
	}

	validateReferences(res, m)
}

func (env *Environment) validateMutator(res *diagnostic.Diagnostics, model, field string, ref MutatorRef) {
	switch {
	case ref.Func != "" && ref.Expr != "":
		res.AddError("ambiguous_mutator", "mutator has both func and expr", model, field)
	case ref.Func == "" && ref.Expr == "":
		res.AddError("empty_mutator", "mutator has neither func nor expr", model, field)
	case ref.Expr != "":
		if err := env.Exprs.Check(ref.Expr); err != nil {
			res.AddError("invalid_expression", err.Error(), model, field)
		}
	case !env.Library.Has(ref.Func):
		res.AddError("unknown_mutator", fmt.Sprintf("unknown mutator %q", ref.Func), model, field,
			match.Suggest(ref.Func, env.Library.Names())...)
	}
}

// validateReferences warns about fields referenced but not declared. Models
// without declared fields are not checked.
func validateReferences(res *diagnostic.Diagnostics, m *ModelDef) {
	if len(m.Fields) == 0 {
		return
	}

	var refs []string
	refs = append(refs, m.Fillable...)
	refs = append(refs, m.Secured...)
	refs = append(refs, m.Nullable...)
	refs = append(refs, sortedKeys(m.Accessors)...)
	refs = append(refs, sortedKeys(m.Getters)...)
	refs = append(refs, sortedKeys(m.Setters)...)

	reported := map[string]struct{}{}

	for _, field := range refs {
		if field == policy.Wildcard || slices.Contains(m.Fields, field) {
			continue
		}

		if _, ok := reported[field]; ok {
			continue
		}

		reported[field] = struct{}{}
		res.AddWarning("undeclared_field", fmt.Sprintf("field %q is not declared", field), m.Name, field,
			match.Suggest(field, m.Fields)...)
	}
}

func validatePermissions(res *diagnostic.Diagnostics, f *File, models []string) {
	for _, p := range f.Permissions {
		if p.Subject == "" {
			res.AddError("permission_subject_missing", "permission has no subject", p.Model, "")
		}

		if !slices.Contains(models, p.Model) {
			res.AddError("unknown_model", fmt.Sprintf("permission references unknown model %q", p.Model), p.Model, "",
				match.Suggest(p.Model, models)...)
		}

		if len(p.Fields) == 0 {
			res.AddWarning("permission_without_fields", fmt.Sprintf("permission of %q grants no field", p.Subject), p.Model, "")
		}
	}

	for _, r := range f.Roles {
		if r.Subject == "" || r.Role == "" {
			res.AddError("role_incomplete", "role needs both subject and role", "", "")
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
