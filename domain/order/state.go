package order

// State is a step in the customer order lifecycle.
type State string

const (
	StateWaitingForPayment State = "WAITING_FOR_PAYMENT"
	StatePaid              State = "PAID"
	StateConfirmed         State = "CONFIRMED"
	StateCompleted         State = "COMPLETED"
	StateCancelled         State = "CANCELLED"
)

type stateRule struct {
	active bool
	next   []State
}

// transitions is the whole lifecycle. Anything not listed is rejected.
var transitions = map[State]stateRule{
	StateWaitingForPayment: {active: true, next: []State{StatePaid}},
	StatePaid:              {active: true, next: []State{StateConfirmed, StateCancelled}},
	StateConfirmed:         {active: true, next: []State{StateCompleted}},
	StateCompleted:         {active: false},
	StateCancelled:         {active: false},
}

// CanChangeTo reports whether next is an allowed successor of s.
func (s State) CanChangeTo(next State) bool {
	for _, candidate := range transitions[s].next {
		if candidate == next {
			return true
		}
	}
	return false
}

// Active is false for terminal states.
func (s State) Active() bool {
	return transitions[s].active
}

// IsValid reports whether s is a known state.
func (s State) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// States lists every state, in lifecycle order.
func States() []State {
	return []State{StateWaitingForPayment, StatePaid, StateConfirmed, StateCompleted, StateCancelled}
}
