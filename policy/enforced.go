package policy

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// ActionFill is the casbin action checked for mass assignment.
const ActionFill = "fill"

// FillModel is the casbin model fill rules are evaluated against. A request
// is (subject, model, field, action); fields in rules may end with a "*"
// wildcard and subjects inherit the rules of their roles.
const FillModel = `
[request_definition]
r = sub, obj, field, act

[policy_definition]
p = sub, obj, field, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && keyMatch(r.field, p.field) && r.act == p.act
`

// Rule allows Subject to fill Fields of Model.
type Rule struct {
	Subject string
	Model   string
	Fields  []string
}

// Role makes Subject inherit the rules of Role.
type Role struct {
	Subject string
	Role    string
}

// NewEnforcer builds an in-memory casbin enforcer over FillModel.
func NewEnforcer(rules []Rule, roles []Role) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(FillModel)
	if err != nil {
		return nil, errors.Wrap(err, "fill model")
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, errors.Wrap(err, "fill enforcer")
	}

	for _, r := range rules {
		for _, field := range r.Fields {
			if _, err := enforcer.AddPolicy(r.Subject, r.Model, field, ActionFill); err != nil {
				return nil, errors.Wrapf(err, "rule %s/%s/%s", r.Subject, r.Model, field)
			}
		}
	}

	for _, r := range roles {
		if _, err := enforcer.AddGroupingPolicy(r.Subject, r.Role); err != nil {
			return nil, errors.Wrapf(err, "role %s/%s", r.Subject, r.Role)
		}
	}

	return enforcer, nil
}

// Enforced is a FillPolicy answered by a casbin enforcer on behalf of one
// subject, for one model.
type Enforced struct {
	enforcer *casbin.Enforcer
	subject  string
	model    string
	logger   *zap.Logger
}

// NewEnforced creates a fill policy for subject writing entities of model.
func NewEnforced(enforcer *casbin.Enforcer, subject, model string, logger *zap.Logger) *Enforced {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Enforced{enforcer: enforcer, subject: subject, model: model, logger: logger}
}

// IsFillable implements entity.FillPolicy. Enforcement errors deny.
func (p *Enforced) IsFillable(field string) bool {
	ok, err := p.enforcer.Enforce(p.subject, p.model, field, ActionFill)
	if err != nil {
		p.logger.Warn("fill enforcement failed",
			zap.String("subject", p.subject),
			zap.String("model", p.model),
			zap.String("field", field),
			zap.Error(err),
		)
		return false
	}

	return ok
}
