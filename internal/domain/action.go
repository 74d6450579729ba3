package domain

import "context"

// Action is a unit of business logic guarded by a rule check.
//
// Action is defined in the domain layer so that domain services can declare
// actions without depending on the application layer that runs them.
type Action[T any] interface {
	// Rules checks the action's input. A non-nil error aborts the action
	// before any business logic or transaction begins.
	Rules(ctx context.Context) error

	// Handle performs the business logic. When the action runs inside a
	// transaction, ctx carries it and store calls made with ctx join it.
	Handle(ctx context.Context) (T, error)

	// Description returns a human-readable description of the action for
	// logging purposes (e.g., "create invoice for customer 7").
	Description() string
}
