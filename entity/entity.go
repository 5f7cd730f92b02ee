package entity

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fieldmodel/mutator"
)

// Entity stores named field values and routes every access through the
// transformations its Resolver associates with each field.
type Entity struct {
	id     uuid.UUID
	keys   []string
	fields map[string]any

	resolver Resolver
	fill     FillPolicy
	nullable NullabilityPolicy
	factory  AccessorFactory
	logger   *zap.Logger

	// kind names the accessor kind the entity stands for, if any.
	kind string

	// parent is set when the entity itself lives in another entity's field.
	parent   Context
	disposed bool
}

// Option configures an Entity.
type Option func(*Entity)

// WithSchema uses s as resolver, fill policy and nullability policy.
func WithSchema(s Schema) Option {
	return func(e *Entity) {
		e.resolver = s
		e.fill = s
		e.nullable = s
	}
}

// WithResolver sets the mutator resolver. Without one no field is transformed.
func WithResolver(r Resolver) Option {
	return func(e *Entity) { e.resolver = r }
}

// WithFillPolicy sets the mass assignment policy. Without one no field is
// fillable unless mass assignment is told to fill all fields.
func WithFillPolicy(p FillPolicy) Option {
	return func(e *Entity) { e.fill = p }
}

// WithNullability sets the nullability policy. Without one no field is nullable.
func WithNullability(p NullabilityPolicy) Option {
	return func(e *Entity) { e.nullable = p }
}

// WithFactory sets the accessor factory.
func WithFactory(f AccessorFactory) Option {
	return func(e *Entity) { e.factory = f }
}

// WithLogger sets the logger absorbed faults are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(e *Entity) { e.logger = l }
}

// WithKind tags the entity with an accessor kind. A registry then treats the
// entity as compatible with that kind only.
func WithKind(kind string) Option {
	return func(e *Entity) { e.kind = kind }
}

// WithID overrides the generated entity ID.
func WithID(id uuid.UUID) Option {
	return func(e *Entity) { e.id = id }
}

// New creates an entity holding data verbatim. Names are stored in sorted
// order; use NewOrdered to control storage order.
func New(data map[string]any, opts ...Option) *Entity {
	return NewOrdered(FieldsFromMap(data), opts...)
}

// NewOrdered creates an entity holding fields verbatim, in the given order.
// No transformation is applied: this is the hydration path for trusted data.
func NewOrdered(fields Fields, opts ...Option) *Entity {
	e := &Entity{
		id:       uuid.New(),
		fields:   make(map[string]any, len(fields)),
		resolver: noResolver{},
		fill:     denyAll{},
		nullable: neverNull{},
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, f := range fields {
		if a, ok := f.Value.(Accessor); ok {
			e.adopt(f.Name, a.Clone())
			continue
		}
		e.store(f.Name, f.Value)
	}

	return e
}

// ID returns the entity ID accessors use to refer to their owner.
func (e *Entity) ID() uuid.UUID { return e.id }

// Kind returns the accessor kind set by WithKind.
func (e *Entity) Kind() string { return e.kind }

// Disposed reports whether Dispose was called.
func (e *Entity) Disposed() bool { return e.disposed }

// Keys returns the stored field names in storage order.
func (e *Entity) Keys() []string { return slices.Clone(e.keys) }

// HasField reports semantic presence: name is stored and its value is not
// nil, or nil is a legitimate value for it.
func (e *Entity) HasField(name string) bool {
	value, ok := e.fields[name]
	if !ok {
		return false
	}

	return value != nil || e.nullable.IsNullable(name)
}

// Get returns the filtered value of name, or nil when it is not stored.
func (e *Entity) Get(name string) (any, error) {
	return e.GetField(name, nil, true)
}

// Set writes value to name through the field's transformations.
func (e *Entity) Set(name string, value any) error {
	return e.SetField(name, value, true)
}

// GetField returns the value of name, or def when name is not stored. A nil
// stored in a field that is not nullable counts as unset: def takes its place
// and goes through the field's accessor or getter.
//
// Accessors and nil values of nullable fields are returned as stored. A field
// with an accessor descriptor has its raw value wrapped, and the accessor is
// memoized in the field slot. Otherwise, when filter is true, the field's
// getter is applied to the raw value.
func (e *Entity) GetField(name string, def any, filter bool) (any, error) {
	if e.disposed {
		return nil, &AccessError{Field: name, Err: ErrDisposed}
	}

	value, ok := e.fields[name]
	if !ok {
		return def, nil
	}

	nullable := e.nullable.IsNullable(name)
	if value == nil && !nullable {
		value = def
	}

	if _, isAccessor := value.(Accessor); isAccessor || (value == nil && nullable) {
		return value, nil
	}

	if d, ok := e.resolve(name, MutatorAccessor); ok {
		a, err := e.construct(d, name, value)
		if err != nil {
			return nil, err
		}

		e.fields[name] = a

		return a, nil
	}

	return e.getMutated(name, filter, value), nil
}

// SetField writes value to name.
//
// Accessors are cloned into the slot untouched. When filter is false, or a nil
// value is written to a nullable field, value is stored verbatim. Otherwise the
// field's accessor wraps the value, or its setter transforms it. A faulting
// setter leaves the field unchanged. Only accessor failures are returned.
func (e *Entity) SetField(name string, value any, filter bool) error {
	if e.disposed {
		return &AccessError{Field: name, Err: ErrDisposed}
	}

	if a, ok := value.(Accessor); ok {
		e.adopt(name, a.Clone())
		return nil
	}

	if !filter || (value == nil && e.nullable.IsNullable(name)) {
		e.store(name, value)
		return nil
	}

	if d, ok := e.resolve(name, MutatorAccessor); ok {
		return e.wrapOrUpdate(d, name, value)
	}

	e.setMutated(name, value)

	return nil
}

// Unset removes name entirely.
func (e *Entity) Unset(name string) {
	if _, ok := e.fields[name]; !ok {
		return
	}

	delete(e.fields, name)
	e.keys = slices.DeleteFunc(e.keys, func(k string) bool { return k == name })
}

// SetFields mass assigns source. Unless allowAll is set, names the fill
// policy does not authorize are skipped. Each field is set independently and
// its failure, of any kind, is absorbed; SetFields never fails.
//
// source may be a Fields, a map with string keys, an iter.Seq2[string, any]
// or an *Entity (its packed fields). Anything else is ignored.
func (e *Entity) SetFields(source any, allowAll bool) *Entity {
	if e.disposed {
		return e
	}

	pairs, ok := fieldPairs(source)
	if !ok {
		return e
	}

	for name, value := range pairs {
		if !allowAll && !e.fill.IsFillable(name) {
			e.logger.Debug("field is not fillable, skipping", zap.String("field", name))
			continue
		}

		if err := e.trySetField(name, value); err != nil {
			e.logger.Debug("mass assignment skipped field", zap.String("field", name), zap.Error(err))
		}
	}

	return e
}

// GetFields returns every stored field through GetField, in storage order.
func (e *Entity) GetFields(filter bool) (Fields, error) {
	if e.disposed {
		return nil, &AccessError{Err: ErrDisposed}
	}

	out := make(Fields, 0, len(e.keys))
	for _, name := range slices.Clone(e.keys) {
		value, err := e.GetField(name, nil, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, Field{Name: name, Value: value})
	}

	return out, nil
}

// DirtyFields returns, in storage order, the names of accessor backed fields
// whose accessor reports a modification.
func (e *Entity) DirtyFields() []string {
	var out []string
	for _, name := range e.keys {
		if d, ok := e.fields[name].(Dirtier); ok && d.Dirty() {
			out = append(out, name)
		}
	}

	return out
}

// Dispose clears every field and disposes accessors that require it. After
// Dispose, contexts handed to accessors no longer resolve the entity and
// field access fails with ErrDisposed. Calling it again does nothing.
func (e *Entity) Dispose() {
	if e.disposed {
		return
	}

	e.disposed = true

	for _, name := range e.keys {
		if d, ok := e.fields[name].(Disposer); ok {
			d.Dispose()
		}
	}

	e.keys = nil
	e.fields = map[string]any{}
}

func (e *Entity) trySetField(name string, value any) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Newf("panic setting field: %s", fmt.Sprint(p))
		}
	}()

	return e.SetField(name, value, true)
}

func (e *Entity) resolve(name string, kind MutatorKind) (Descriptor, bool) {
	d, ok := e.resolver.Resolve(name, kind)
	if !ok {
		return Descriptor{}, false
	}

	if kind != MutatorAccessor && d.Func == nil {
		return Descriptor{}, false
	}

	return d, true
}

func (e *Entity) construct(d Descriptor, name string, raw any) (Accessor, error) {
	if e.factory == nil {
		return nil, &AccessError{Field: name, Accessor: d.Accessor, Err: ErrUnknownAccessor}
	}

	a, err := e.factory.Construct(d, name, raw, newContext(e, name))
	if err != nil {
		if IsAccessError(err) {
			return nil, err
		}
		return nil, &AccessError{Field: name, Accessor: d.Accessor, Err: errors.Mark(err, ErrAccessorConstruct)}
	}

	if b, ok := a.(Binder); ok {
		b.Bind(newContext(e, name))
	}

	return a, nil
}

// wrapOrUpdate updates a compatible stored accessor in place, keeping its
// identity, and constructs a fresh one otherwise.
func (e *Entity) wrapOrUpdate(d Descriptor, name string, value any) error {
	if current, ok := e.fields[name].(Accessor); ok && e.factory != nil && e.factory.Compatible(d, current) {
		if err := current.SetValue(value); err != nil {
			return &AccessError{Field: name, Accessor: d.Accessor, Err: errors.Mark(err, ErrAccessorValue)}
		}
		return nil
	}

	a, err := e.construct(d, name, value)
	if err != nil {
		return err
	}

	e.store(name, a)

	return nil
}

func (e *Entity) getMutated(name string, filter bool, value any) any {
	if !filter {
		return value
	}

	d, ok := e.resolve(name, MutatorGetter)
	if !ok {
		return value
	}

	res := mutator.Invoke(d.Func, value)
	if !res.Failed() {
		return res.Value
	}

	e.logger.Debug("getter fault, retrying with nil", zap.String("field", name), zap.Error(res.Err))

	res = mutator.Invoke(d.Func, nil)
	if res.Failed() {
		e.logger.Debug("getter fault on nil", zap.String("field", name), zap.Error(res.Err))
		return nil
	}

	return res.Value
}

func (e *Entity) setMutated(name string, value any) {
	d, ok := e.resolve(name, MutatorSetter)
	if !ok {
		e.store(name, value)
		return
	}

	res := mutator.Invoke(d.Func, value)
	if res.Failed() {
		e.logger.Debug("setter fault, keeping prior value", zap.String("field", name), zap.Error(res.Err))
		return
	}

	e.store(name, res.Value)
}

// adopt stores an accessor the entity did not construct, binding it to its
// new slot.
func (e *Entity) adopt(name string, a Accessor) {
	if b, ok := a.(Binder); ok {
		b.Bind(newContext(e, name))
	}

	e.store(name, a)
}

func (e *Entity) store(name string, value any) {
	if _, ok := e.fields[name]; !ok {
		e.keys = append(e.keys, name)
	}

	e.fields[name] = value
}
