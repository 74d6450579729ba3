package ports

import (
	"context"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
)

// Validator checks raw input against a rule set.
// Implemented by the validator adapter; called by the validation gate.
type Validator interface {
	// Validate returns the validated fields when input passes, or a
	// non-empty field error map when it does not. The error return is
	// reserved for failures of the validator itself, such as an unknown
	// rule, and is never used for field-level failures.
	Validate(
		ctx context.Context,
		input map[string]any,
		rules domain.RuleSet,
		messages domain.Messages,
		attributes domain.Attributes,
	) (domain.ValidatedFields, map[string]string, error)
}
