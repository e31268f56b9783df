package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the harness sections of opts against their struct tags.
// Experiment keys are validated field by field when a Configuration is built.
func Validate(opts *Options) error {
	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value %v)", fe.Namespace(), ruleOf(fe), fe.Value()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// checkVar validates value against rule and reports a KindValidation error
// naming field on failure.
func checkVar(field string, value any, rule string) error {
	err := validate.Var(value, rule)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &Error{
			Kind:    KindValidation,
			Field:   field,
			Value:   value,
			Message: describeRule(verrs[0]),
		}
	}
	return &Error{Kind: KindValidation, Field: field, Value: value, Message: err.Error(), Err: err}
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

// describeRule renders the comparison tags used by the setters.
func describeRule(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be > " + fe.Param()
	case "gte", "min":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte", "max":
		return "must be <= " + fe.Param()
	case "required":
		return "must be set"
	default:
		return "failed '" + ruleOf(fe) + "'"
	}
}
