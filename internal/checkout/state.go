package checkout

// State is the explicit position of one checkout flow. Keeping the position
// explicit is what lets "payment captured but unverified" stay distinguishable
// from "order never placed".
type State string

const (
	StateIdle             State = "idle"
	StateSubmittingOrder  State = "submitting_order"
	StateAwaitingPayment  State = "awaiting_payment"
	StateVerifyingPayment State = "verifying_payment"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

func (s State) IsTerminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

// legalTransitions is the full transition relation. Everything else is a
// programming error, not a user-visible failure.
var legalTransitions = map[State][]State{
	StateIdle:             {StateSubmittingOrder},
	StateSubmittingOrder:  {StateAwaitingPayment, StateFailed},
	StateAwaitingPayment:  {StateVerifyingPayment},
	StateVerifyingPayment: {StateSucceeded, StateFailed},
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to State) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
