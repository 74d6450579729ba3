package action

// Phase is a step in an executor's lifecycle.
type Phase int

const (
	PhaseCreated Phase = iota
	PhaseRulesChecked
	PhaseTransactionBegun
	PhaseExecuting
	PhaseCommitted
	PhaseRolledBack
	PhaseCompleted
)

var phaseNames = [...]string{
	PhaseCreated:          "created",
	PhaseRulesChecked:     "rules_checked",
	PhaseTransactionBegun: "transaction_begun",
	PhaseExecuting:        "executing",
	PhaseCommitted:        "committed",
	PhaseRolledBack:       "rolled_back",
	PhaseCompleted:        "completed",
}

// String implements fmt.Stringer.
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}
