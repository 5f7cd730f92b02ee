package schema

import (
	"maps"
	"slices"

	"github.com/casbin/casbin/v2"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"fieldmodel/accessor"
	"fieldmodel/entity"
	"fieldmodel/mutator"
	"fieldmodel/policy"
)

var (
	// ErrInvalidSchema is returned by Compile for schemas with error diagnostics.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrUnknownModel is returned when a catalog has no model of a name.
	ErrUnknownModel = errors.New("unknown model")
	// ErrNoPermissions is returned when fill authorization is asked for a
	// subject but the schema grants no permissions.
	ErrNoPermissions = errors.New("schema declares no permissions")
	// ErrUnknownMutator is returned when a mutator name is not in the library.
	ErrUnknownMutator = errors.New("unknown mutator")
)

func errUnknownMutator(name string) error {
	return errors.Wrapf(ErrUnknownMutator, "%q", name)
}

// Model is a compiled model definition. It answers the entity's three
// collaborator contracts: mutator resolution, fill policy and nullability.
type Model struct {
	name      string
	fields    []string
	accessors map[string]string
	getters   map[string]mutator.Func
	setters   map[string]mutator.Func
	fill      policy.Lists
	nullable  policy.Set
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// Fields returns the declared field names.
func (m *Model) Fields() []string { return slices.Clone(m.fields) }

// Resolve implements entity.Resolver.
func (m *Model) Resolve(field string, kind entity.MutatorKind) (entity.Descriptor, bool) {
	switch kind {
	case entity.MutatorAccessor:
		if name, ok := m.accessors[field]; ok {
			return entity.Descriptor{Kind: kind, Accessor: name}, true
		}
	case entity.MutatorGetter:
		if fn, ok := m.getters[field]; ok {
			return entity.Descriptor{Kind: kind, Func: fn}, true
		}
	case entity.MutatorSetter:
		if fn, ok := m.setters[field]; ok {
			return entity.Descriptor{Kind: kind, Func: fn}, true
		}
	}

	return entity.Descriptor{}, false
}

// IsFillable implements entity.FillPolicy.
func (m *Model) IsFillable(field string) bool { return m.fill.IsFillable(field) }

// IsNullable implements entity.NullabilityPolicy.
func (m *Model) IsNullable(field string) bool { return m.nullable.IsNullable(field) }

// Catalog holds the compiled models of a schema file and the accessor
// registry they share. Every model is registered in it as an accessor kind
// embedding that model.
type Catalog struct {
	Version string

	models   map[string]*Model
	order    []string
	registry *entity.Registry
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

// Compile validates f and compiles its models.
func (env *Environment) Compile(f *File) (*Catalog, error) {
	diags := env.Validate(f)
	for _, w := range diags.Warnings {
		env.Logger.Warn("schema warning", zap.String("diagnostic", w.String()))
	}

	if diags.HasErrors() {
		return nil, errors.Mark(errors.Wrap(diags.Error(), "compile"), ErrInvalidSchema)
	}

	c := &Catalog{
		Version:  f.Version,
		models:   make(map[string]*Model, len(f.Models)),
		registry: env.Registry.Clone(),
		logger:   env.Logger,
	}

	for i := range f.Models {
		m, err := env.compileModel(&f.Models[i])
		if err != nil {
			return nil, errors.Wrapf(err, "model %q", f.Models[i].Name)
		}

		c.models[m.name] = m
		c.order = append(c.order, m.name)
	}

	for _, name := range c.order {
		if err := entity.Register(c.registry, name, accessor.NestedOf(c.options(c.models[name])...)); err != nil {
			return nil, err
		}
	}

	if len(f.Permissions) > 0 {
		enforcer, err := newEnforcer(f)
		if err != nil {
			return nil, err
		}
		c.enforcer = enforcer
	}

	env.Logger.Debug("schema compiled", zap.Strings("models", c.order))

	return c, nil
}

func (env *Environment) compileModel(def *ModelDef) (*Model, error) {
	m := &Model{
		name:      def.Name,
		fields:    slices.Clone(def.Fields),
		accessors: maps.Clone(def.Accessors),
		getters:   make(map[string]mutator.Func, len(def.Getters)),
		setters:   make(map[string]mutator.Func, len(def.Setters)),
		fill:      policy.Lists{Fillable: def.Fillable, Secured: def.Secured},
		nullable:  policy.NewSet(def.Nullable...),
	}

	for field, ref := range def.Getters {
		fn, err := env.mutator(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "getter of %q", field)
		}
		m.getters[field] = fn
	}

	for field, ref := range def.Setters {
		fn, err := env.mutator(ref)
		if err != nil {
			return nil, errors.Wrapf(err, "setter of %q", field)
		}
		m.setters[field] = fn
	}

	return m, nil
}

func newEnforcer(f *File) (*casbin.Enforcer, error) {
	rules := make([]policy.Rule, 0, len(f.Permissions))
	for _, p := range f.Permissions {
		rules = append(rules, policy.Rule{Subject: p.Subject, Model: p.Model, Fields: p.Fields})
	}

	roles := make([]policy.Role, 0, len(f.Roles))
	for _, r := range f.Roles {
		roles = append(roles, policy.Role{Subject: r.Subject, Role: r.Role})
	}

	return policy.NewEnforcer(rules, roles)
}

// Model returns the compiled model called name.
func (c *Catalog) Model(name string) (*Model, bool) {
	m, ok := c.models[name]
	return m, ok
}

// Names returns the model names in declaration order.
func (c *Catalog) Names() []string { return slices.Clone(c.order) }

// Registry returns the accessor registry of the catalog.
func (c *Catalog) Registry() *entity.Registry { return c.registry }

// Options returns the entity options for model name. With a subject, fill
// authorization is answered by the schema permissions instead of the
// model's lists.
func (c *Catalog) Options(name, subject string) ([]entity.Option, error) {
	m, ok := c.models[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q", name)
	}

	opts := c.options(m)
	if subject == "" {
		return opts, nil
	}

	if c.enforcer == nil {
		return nil, ErrNoPermissions
	}

	return append(opts, entity.WithFillPolicy(policy.NewEnforced(c.enforcer, subject, name, c.logger))), nil
}

// New hydrates an entity of model name with data, verbatim.
func (c *Catalog) New(name string, data map[string]any) (*entity.Entity, error) {
	opts, err := c.Options(name, "")
	if err != nil {
		return nil, err
	}

	return entity.New(data, opts...), nil
}

// Fill creates an entity of model name and mass assigns source to it on
// behalf of subject. An empty subject uses the model's fill lists.
func (c *Catalog) Fill(name, subject string, source any) (*entity.Entity, error) {
	opts, err := c.Options(name, subject)
	if err != nil {
		return nil, err
	}

	return entity.New(nil, opts...).SetFields(source, false), nil
}

func (c *Catalog) options(m *Model) []entity.Option {
	return []entity.Option{
		entity.WithSchema(m),
		entity.WithKind(m.name),
		entity.WithFactory(c.registry),
		entity.WithLogger(c.logger.With(zap.String("model", m.name))),
	}
}
