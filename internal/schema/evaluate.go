package schema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule names reported on violations.
const (
	RuleRequired = "required"
	RuleType     = "type"
	RuleUnknown  = "unknown"
)

// validate is shared by all schemas; validator.Validate is safe for concurrent use.
var validate = validator.New()

// EvalOptions tunes a single evaluation.
type EvalOptions struct {
	// SkipMissingProperties leaves absent fields unchecked (partial updates).
	SkipMissingProperties bool
	// ForbidUnknownFields reports every input key the schema does not declare.
	ForbidUnknownFields bool
}

// Violation is one failed constraint on one field.
type Violation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is the ordered result of an evaluation.
type Violations []Violation

// Message joins every violation message with ", ".
func (vs Violations) Message() string {
	msgs := make([]string, len(vs))
	for i, v := range vs {
		msgs[i] = v.Message
	}
	return strings.Join(msgs, ", ")
}

// Fields returns the field name of each violation, in order.
func (vs Violations) Fields() []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Field
	}
	return out
}

// Evaluate checks every declared field of inst and returns all violations in
// declaration order, followed by unknown-field violations when
// opts.ForbidUnknownFields is set. It never stops at the first failure.
// A field is absent when its key is missing or its value is null.
func (s *Schema) Evaluate(ctx context.Context, inst Instance, opts EvalOptions) Violations {
	var out Violations

	for _, f := range s.fields {
		if !inst.IsSet(f.Name) {
			if f.Required() && !opts.SkipMissingProperties {
				out = append(out, Violation{
					Field:   f.Name,
					Rule:    RuleRequired,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
			}
			continue
		}
		out = append(out, evaluateField(ctx, f, inst.values[f.Name])...)
	}

	if opts.ForbidUnknownFields {
		for _, key := range inst.unknown {
			out = append(out, Violation{
				Field:   key,
				Rule:    RuleUnknown,
				Message: fmt.Sprintf("property %s should not exist", key),
			})
		}
	}

	return out
}

// Check is Coerce followed by Evaluate.
func (s *Schema) Check(ctx context.Context, raw map[string]any, opts EvalOptions) (Instance, Violations) {
	inst := s.Coerce(raw)
	return inst, s.Evaluate(ctx, inst, opts)
}

func evaluateField(ctx context.Context, f Field, value any) Violations {
	var out Violations

	for _, c := range f.Constraints {
		if c.kind != constraintType {
			continue
		}
		if !c.typ.Matches(value) {
			// A value of the wrong category cannot be checked by later rules.
			return append(out, Violation{
				Field:   f.Name,
				Rule:    RuleType,
				Message: fmt.Sprintf("%s must be %s", f.Name, c.typ.phrase()),
			})
		}
	}

	for _, c := range f.Constraints {
		if c.kind != constraintRule {
			continue
		}
		if err := runRule(ctx, value, c.rule); err != nil {
			out = append(out, ruleViolations(f.Name, value, err)...)
		}
	}

	return out
}

// errUnmeasurable reports a value the rule cannot be applied to, such as a
// length rule on a boolean.
var errUnmeasurable = errors.New("rule cannot be applied to value")

// runRule applies one validator tag to value. validator panics on values it
// cannot measure; that is reported as errUnmeasurable.
func runRule(ctx context.Context, value any, tag string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errUnmeasurable, r)
		}
	}()
	return validate.VarCtx(ctx, value, tag)
}

func ruleViolations(field string, value any, err error) Violations {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Unmeasurable value or validator error; still a violation, never dropped.
		return Violations{{
			Field:   field,
			Rule:    "invalid",
			Message: fmt.Sprintf("%s could not be validated", field),
		}}
	}

	out := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{
			Field:   field,
			Rule:    fe.Tag(),
			Message: ruleMessage(field, fe.Tag(), fe.Param(), value),
		})
	}
	return out
}

// ruleMessage maps validator tags to client-facing messages.
func ruleMessage(field, tag, param string, value any) string {
	_, isText := value.(string)
	switch tag {
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must not be less than %s", field, param)
	case "max":
		if isText {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must not be greater than %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have length %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "email":
		return fmt.Sprintf("%s must be an email", field)
	case "url":
		return fmt.Sprintf("%s must be a URL address", field)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a UUID", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, tag)
	}
}
