// Package validator implements [ports.Validator] with
// github.com/go-playground/validator/v10. Rules use the library's tag
// syntax, one tag string per field:
//
//	domain.RuleSet{"email": "required,email", "password": "required,min=8"}
//
// Failure messages resolve in order: messages["field.tag"], messages["tag"],
// the built-in default for the tag. ":attribute" is replaced with the
// field's display name and ":param" with the tag parameter.
package validator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// Compile-time interface check.
var _ ports.Validator = (*Validator)(nil)

var defaultMessages = map[string]string{
	"required": "The :attribute field is required.",
	"email":    "The :attribute field must be a valid email address.",
	"min":      "The :attribute field must be at least :param.",
	"max":      "The :attribute field must not be greater than :param.",
	"len":      "The :attribute field must be :param long.",
	"eqfield":  "The :attribute field must match :param.",
	"oneof":    "The :attribute field must be one of: :param.",
	"numeric":  "The :attribute field must be a number.",
	"number":   "The :attribute field must be a number.",
	"alpha":    "The :attribute field must only contain letters.",
	"alphanum": "The :attribute field must only contain letters and numbers.",
	"url":      "The :attribute field must be a valid URL.",
	"uuid":     "The :attribute field must be a valid UUID.",
	"gt":       "The :attribute field must be greater than :param.",
	"gte":      "The :attribute field must be greater than or equal to :param.",
	"lt":       "The :attribute field must be less than :param.",
	"lte":      "The :attribute field must be less than or equal to :param.",
}

const fallbackMessage = "The :attribute field is invalid."

// Validator checks map input against tag rules.
type Validator struct {
	validate *playground.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements ports.Validator. The validated fields are the input
// entries that have a rule. An unknown rule tag is reported through the
// error return.
func (v *Validator) Validate(
	ctx context.Context,
	input map[string]any,
	rules domain.RuleSet,
	messages domain.Messages,
	attributes domain.Attributes,
) (fields domain.ValidatedFields, fieldErrs map[string]string, err error) {
	ruleMap := make(map[string]any, len(rules))
	for field, rule := range rules {
		ruleMap[field] = rule
	}

	data := make(map[string]any, len(rules))
	for field := range rules {
		if value, ok := input[field]; ok {
			data[field] = value
		}
	}

	// The library panics on undefined tags.
	defer func() {
		if r := recover(); r != nil {
			fields, fieldErrs = domain.ValidatedFields{}, nil
			err = fmt.Errorf("invalid rule set: %v", r)
		}
	}()

	failures := v.validate.ValidateMapCtx(ctx, data, ruleMap)
	if len(failures) == 0 {
		return domain.NewValidatedFields(data), nil, nil
	}

	fieldErrs = make(map[string]string, len(failures))
	for field, failure := range failures {
		fieldErrs[field] = message(field, failure, messages, attributes)
	}
	return domain.ValidatedFields{}, fieldErrs, nil
}

func message(field string, failure any, messages domain.Messages, attributes domain.Attributes) string {
	tag, param := "", ""

	var verrs playground.ValidationErrors
	if err, ok := failure.(error); ok && errors.As(err, &verrs) && len(verrs) > 0 {
		tag, param = verrs[0].Tag(), verrs[0].Param()
	}

	msg, ok := messages[field+"."+tag]
	if !ok {
		msg, ok = messages[tag]
	}
	if !ok {
		msg, ok = defaultMessages[tag]
	}
	if !ok {
		msg = fallbackMessage
	}

	name := attributes[field]
	if name == "" {
		name = strings.ReplaceAll(field, "_", " ")
	}
	return strings.NewReplacer(":attribute", name, ":param", param).Replace(msg)
}
