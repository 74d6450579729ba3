// Package validation provides the gate that sits between raw input and an
// action's business logic. A Gate delegates rule checking to the Validator
// port, keeps the last successfully validated field set, and shapes
// failures according to what the caller can handle: a structured
// *domain.ValidationError, or a *domain.Redirect carrying the errors and
// the submitted input back to a form.
package validation

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/jsamuelsen11/go-action-resolver/internal/domain"
	"github.com/jsamuelsen11/go-action-resolver/internal/platform/logging"
	"github.com/jsamuelsen11/go-action-resolver/internal/ports"
)

// dontFlash lists input fields that are never echoed back in a Redirect.
var dontFlash = []string{"password", "password_confirmation", "current_password"}

// Outcome is the result of a successful gate call. Exactly one of Fields
// (validation passed) or Redirect (validation failed, redirect expected)
// is meaningful.
type Outcome struct {
	Fields   domain.ValidatedFields
	Redirect *domain.Redirect
}

// Redirected reports whether the outcome is a redirect.
func (o Outcome) Redirected() bool { return o.Redirect != nil }

// Option customizes a single Validate call.
type Option func(*callOptions)

type callOptions struct {
	messages   domain.Messages
	attributes domain.Attributes
}

// WithMessages sets custom failure messages keyed by "field.rule" or "rule".
func WithMessages(m domain.Messages) Option {
	return func(o *callOptions) { o.messages = m }
}

// WithAttributes sets display names used in failure messages.
func WithAttributes(a domain.Attributes) Option {
	return func(o *callOptions) { o.attributes = a }
}

// Gate validates input for one action. Not safe for concurrent use.
type Gate struct {
	validator       ports.Validator
	forceStructured bool
	logger          *slog.Logger

	validated domain.ValidatedFields
}

// New creates a Gate. When forceStructured is set every call behaves as if
// the caller expected structured errors.
func New(v ports.Validator, forceStructured bool, logger *slog.Logger) *Gate {
	return &Gate{
		validator:       v,
		forceStructured: forceStructured,
		logger:          logging.OrDiscard(logger),
	}
}

// Validate checks input against rules.
//
// On success the validated fields are stored and returned in the Outcome.
// On failure the result depends on expect: ExpectStructured returns a
// *domain.ValidationError, ExpectRedirect returns an Outcome with a
// Redirect and a nil error. A failed call never replaces previously stored
// fields. Any other error comes from the validator itself.
func (g *Gate) Validate(
	ctx context.Context,
	expect domain.ResponseExpectation,
	input map[string]any,
	rules domain.RuleSet,
	opts ...Option,
) (Outcome, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	fields, fieldErrs, err := g.validator.Validate(ctx, input, rules, o.messages, o.attributes)
	if err != nil {
		g.logger.ErrorContext(ctx, "validator failed",
			slog.String("operation", "Gate.Validate"),
			slog.Any("error", err),
		)
		return Outcome{}, fmt.Errorf("validating input: %w", err)
	}

	if len(fieldErrs) > 0 {
		g.logger.DebugContext(ctx, "validation failed",
			slog.String("expect", g.expectation(expect).String()),
			slog.Any("fields", slices.Sorted(maps.Keys(fieldErrs))),
		)

		if g.expectation(expect) == domain.ExpectStructured {
			return Outcome{}, &domain.ValidationError{Fields: maps.Clone(fieldErrs)}
		}
		return Outcome{Redirect: &domain.Redirect{
			Errors: maps.Clone(fieldErrs),
			Input:  flashable(input),
		}}, nil
	}

	g.validated = fields
	return Outcome{Fields: fields}, nil
}

// ValidateRequest authorizes req and validates its input with its own rules
// and messages. An unauthorized request fails with domain.ErrForbidden
// before any validation runs.
func (g *Gate) ValidateRequest(ctx context.Context, expect domain.ResponseExpectation, req domain.FormRequest) (Outcome, error) {
	if !req.Authorize(ctx) {
		g.logger.WarnContext(ctx, "form request not authorized",
			slog.String("operation", "Gate.ValidateRequest"),
		)
		return Outcome{}, fmt.Errorf("%w: you are unauthorized to access this resource", domain.ErrForbidden)
	}
	return g.Validate(ctx, expect, req.Input(), req.Rules(), WithMessages(req.Messages()))
}

// ValidatedData returns the fields stored by the last successful call, or
// an empty set if no call has succeeded yet.
func (g *Gate) ValidatedData() domain.ValidatedFields {
	return g.validated
}

func (g *Gate) expectation(expect domain.ResponseExpectation) domain.ResponseExpectation {
	if g.forceStructured {
		return domain.ExpectStructured
	}
	return expect
}

func flashable(input map[string]any) map[string]any {
	out := maps.Clone(input)
	if out == nil {
		return map[string]any{}
	}
	for _, field := range dontFlash {
		delete(out, field)
	}
	return out
}
