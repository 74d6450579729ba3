package action_test

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-action-resolver/internal/app/action"
	"github.com/jsamuelsen11/go-action-resolver/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// stubAction records the order of lifecycle calls.
type stubAction struct {
	rulesErr error
	handle   func(ctx context.Context) (int, error)
	calls    []string
}

func (a *stubAction) Rules(context.Context) error {
	a.calls = append(a.calls, "rules")
	return a.rulesErr
}

func (a *stubAction) Handle(ctx context.Context) (int, error) {
	a.calls = append(a.calls, "handle")
	if a.handle == nil {
		return 1, nil
	}
	return a.handle(ctx)
}

func (a *stubAction) Description() string { return "stub action" }

type txKey struct{}

func phases(p ...action.Phase) []action.Phase { return p }

func assertHistory(t *testing.T, exec interface{ History() []action.Phase }, want []action.Phase) {
	t.Helper()
	if got := exec.History(); !slices.Equal(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
}

func TestExecutor_WithoutTransaction(t *testing.T) {
	t.Parallel()

	a := &stubAction{}
	exec := action.New[int](a, action.WithLogger(discardLogger()))

	if exec.UsingTransaction() {
		t.Fatal("UsingTransaction() = true, want false")
	}

	got, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != 1 {
		t.Errorf("Execute() = %d, want 1", got)
	}
	if !slices.Equal(a.calls, []string{"rules", "handle"}) {
		t.Errorf("calls = %v, want [rules handle]", a.calls)
	}
	assertHistory(t, exec, phases(
		action.PhaseCreated, action.PhaseRulesChecked, action.PhaseExecuting, action.PhaseCompleted,
	))
}

func TestExecutor_TransactionCommits(t *testing.T) {
	t.Parallel()

	tx := mocks.NewMockTx(t)
	tx.EXPECT().Commit().Return(nil).Once()

	txCtx := context.WithValue(context.Background(), txKey{}, "tx-1")
	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(txCtx, tx, nil).Once()

	var sawTx any
	a := &stubAction{handle: func(ctx context.Context) (int, error) {
		sawTx = ctx.Value(txKey{})
		return 42, nil
	}}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	got, err := exec.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if got != 42 {
		t.Errorf("Execute() = %d, want 42", got)
	}
	if sawTx != "tx-1" {
		t.Errorf("Handle ctx tx = %v, want tx-1", sawTx)
	}
	if exec.Phase() != action.PhaseCompleted {
		t.Errorf("Phase() = %v, want completed", exec.Phase())
	}
	assertHistory(t, exec, phases(
		action.PhaseCreated, action.PhaseRulesChecked, action.PhaseTransactionBegun,
		action.PhaseExecuting, action.PhaseCommitted, action.PhaseCompleted,
	))
}

func TestExecutor_HandleErrorRollsBackAndReturnsOriginal(t *testing.T) {
	t.Parallel()

	tx := mocks.NewMockTx(t)
	tx.EXPECT().Rollback().Return(nil).Once()

	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(context.Background(), tx, nil).Once()

	handleErr := errors.New("insufficient balance")
	a := &stubAction{handle: func(context.Context) (int, error) { return 0, handleErr }}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	_, err := exec.Execute(context.Background())
	if err != handleErr {
		t.Fatalf("Execute() error = %v, want the original %v", err, handleErr)
	}
	assertHistory(t, exec, phases(
		action.PhaseCreated, action.PhaseRulesChecked, action.PhaseTransactionBegun,
		action.PhaseExecuting, action.PhaseRolledBack, action.PhaseCompleted,
	))
}

func TestExecutor_RollbackFailureKeepsOriginalError(t *testing.T) {
	t.Parallel()

	tx := mocks.NewMockTx(t)
	tx.EXPECT().Rollback().Return(errors.New("connection reset")).Once()

	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(context.Background(), tx, nil)

	handleErr := errors.New("duplicate invoice number")
	a := &stubAction{handle: func(context.Context) (int, error) { return 0, handleErr }}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	if _, err := exec.Execute(context.Background()); err != handleErr {
		t.Errorf("Execute() error = %v, want %v", err, handleErr)
	}
	if exec.Phase() != action.PhaseCompleted {
		t.Errorf("Phase() = %v, want completed", exec.Phase())
	}
}

func TestExecutor_RulesFailureSkipsTransaction(t *testing.T) {
	t.Parallel()

	// No expectations: Begin must not be called.
	transactor := mocks.NewMockTransactor(t)

	rulesErr := errors.New("invoice already paid")
	a := &stubAction{rulesErr: rulesErr}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	_, err := exec.Execute(context.Background())
	if !errors.Is(err, rulesErr) {
		t.Fatalf("Execute() error = %v, want %v", err, rulesErr)
	}
	if !slices.Equal(a.calls, []string{"rules"}) {
		t.Errorf("calls = %v, want [rules]", a.calls)
	}
	assertHistory(t, exec, phases(action.PhaseCreated, action.PhaseCompleted))
}

func TestExecutor_CommitFailure(t *testing.T) {
	t.Parallel()

	commitErr := errors.New("database is locked")
	tx := mocks.NewMockTx(t)
	tx.EXPECT().Commit().Return(commitErr).Once()

	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(context.Background(), tx, nil)

	exec := action.New[int](&stubAction{}, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	_, err := exec.Execute(context.Background())
	if !errors.Is(err, commitErr) {
		t.Fatalf("Execute() error = %v, want wrapped %v", err, commitErr)
	}
	assertHistory(t, exec, phases(
		action.PhaseCreated, action.PhaseRulesChecked, action.PhaseTransactionBegun,
		action.PhaseExecuting, action.PhaseRolledBack, action.PhaseCompleted,
	))
}

func TestExecutor_BeginFailure(t *testing.T) {
	t.Parallel()

	beginErr := errors.New("too many connections")
	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(nil, nil, beginErr)

	a := &stubAction{}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	_, err := exec.Execute(context.Background())
	if !errors.Is(err, beginErr) {
		t.Fatalf("Execute() error = %v, want wrapped %v", err, beginErr)
	}
	if slices.Contains(a.calls, "handle") {
		t.Error("Handle ran without a transaction")
	}
}

func TestExecutor_CancelledContextRollsBack(t *testing.T) {
	t.Parallel()

	tx := mocks.NewMockTx(t)
	tx.EXPECT().Rollback().Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(ctx, tx, nil)

	a := &stubAction{handle: func(context.Context) (int, error) {
		cancel()
		return 7, nil
	}}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	_, err := exec.Execute(context.Background())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if exec.History()[len(exec.History())-2] != action.PhaseRolledBack {
		t.Errorf("History() = %v, want rolled_back before completed", exec.History())
	}
}

func TestExecutor_PanicRollsBack(t *testing.T) {
	t.Parallel()

	tx := mocks.NewMockTx(t)
	tx.EXPECT().Rollback().Return(nil).Once()

	transactor := mocks.NewMockTransactor(t)
	transactor.EXPECT().Begin(mock.Anything).Return(context.Background(), tx, nil)

	a := &stubAction{handle: func(context.Context) (int, error) { panic("boom") }}
	exec := action.New[int](a, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recover() = %v, want boom", r)
		}
		if exec.Phase() != action.PhaseCompleted {
			t.Errorf("Phase() = %v, want completed", exec.Phase())
		}
	}()
	_, _ = exec.Execute(context.Background())
}

func TestExecutor_ValidateAndHandleNeverOpensTransaction(t *testing.T) {
	t.Parallel()

	transactor := mocks.NewMockTransactor(t)
	exec := action.New[int](&stubAction{}, action.WithTransaction(transactor), action.WithLogger(discardLogger()))

	if !exec.UsingTransaction() {
		t.Fatal("UsingTransaction() = false, want true")
	}
	if _, err := exec.ValidateAndHandle(context.Background()); err != nil {
		t.Fatalf("ValidateAndHandle() error = %v", err)
	}
	assertHistory(t, exec, phases(
		action.PhaseCreated, action.PhaseRulesChecked, action.PhaseExecuting, action.PhaseCompleted,
	))
}

func TestExecutor_SingleUse(t *testing.T) {
	t.Parallel()

	a := &stubAction{}
	exec := action.New[int](a, action.WithLogger(discardLogger()))

	if _, err := exec.Execute(context.Background()); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if _, err := exec.Execute(context.Background()); !errors.Is(err, action.ErrAlreadyExecuted) {
		t.Errorf("second Execute() error = %v, want ErrAlreadyExecuted", err)
	}
	if _, err := exec.ValidateAndHandle(context.Background()); !errors.Is(err, action.ErrAlreadyExecuted) {
		t.Errorf("ValidateAndHandle() after Execute error = %v, want ErrAlreadyExecuted", err)
	}
	if len(a.calls) != 2 {
		t.Errorf("calls = %v, want one rules and one handle", a.calls)
	}
}

func TestExecutor_NilAction(t *testing.T) {
	t.Parallel()

	exec := action.New[int](nil, action.WithLogger(discardLogger()))
	if _, err := exec.Execute(context.Background()); !errors.Is(err, action.ErrNilAction) {
		t.Errorf("Execute() error = %v, want ErrNilAction", err)
	}
}

func TestPhase_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phase action.Phase
		want  string
	}{
		{action.PhaseCreated, "created"},
		{action.PhaseTransactionBegun, "transaction_begun"},
		{action.PhaseRolledBack, "rolled_back"},
		{action.PhaseCompleted, "completed"},
		{action.Phase(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
