package schema

// File represents the root of a YAML schema file.
type File struct {
	// Version of the schema format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Models is the list of model definitions.
	Models []ModelDef `yaml:"models"`

	// Permissions grant subjects the right to fill fields of a model.
	Permissions []Permission `yaml:"permissions,omitempty"`

	// Roles make subjects inherit the permissions of other subjects.
	Roles []Role `yaml:"roles,omitempty"`
}

// ModelDef defines one kind of entity.
type ModelDef struct {
	// Name identifies the model. Other models embed it by using the name as
	// an accessor kind.
	Name string `yaml:"name"`

	// Fields lists the declared field names. It is informative: entities may
	// store undeclared fields, validation only warns about references to them.
	Fields []string `yaml:"fields,omitempty"`

	// Fillable lists the fields mass assignment may write. When non-empty it
	// is authoritative and Secured is ignored. "*" allows every field.
	Fillable StringOrArray `yaml:"fillable,omitempty"`

	// Secured lists the fields mass assignment may not write. "*" denies
	// every field. Defaults to "*" when Fillable is empty too.
	Secured StringOrArray `yaml:"secured,omitempty"`

	// Nullable lists the fields for which nil is a legitimate value.
	Nullable StringOrArray `yaml:"nullable,omitempty"`

	// Accessors maps field names to accessor kinds.
	Accessors map[string]string `yaml:"accessors,omitempty"`

	// Getters maps field names to the mutator applied on read.
	Getters map[string]MutatorRef `yaml:"getters,omitempty"`

	// Setters maps field names to the mutator applied on write.
	Setters map[string]MutatorRef `yaml:"setters,omitempty"`
}

// MutatorRef names a mutator from the library or carries a CEL expression.
// YAML formats supported:
//   - Simple string: "trim"
//   - Explicit: {func: trim} or {expr: "value.lowerAscii()"}
type MutatorRef struct {
	Func string `yaml:"func,omitempty"`
	Expr string `yaml:"expr,omitempty"`
}

// String returns the function name or the expression.
func (m MutatorRef) String() string {
	if m.Expr != "" {
		return "expr(" + m.Expr + ")"
	}

	return m.Func
}

// StringOrArray represents a value that can be either a single string or an
// array of strings.
type StringOrArray []string

// Permission allows Subject to fill Fields of Model. Fields may end with a
// "*" wildcard.
type Permission struct {
	Subject string   `yaml:"subject"`
	Model   string   `yaml:"model"`
	Fields  []string `yaml:"fields"`
}

// Role makes Subject inherit the permissions of Role.
type Role struct {
	Subject string `yaml:"subject"`
	Role    string `yaml:"role"`
}
