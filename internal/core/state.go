package core

import "fmt"

// State is the lifecycle position of a process inside one simulation run.
type State string

const (
	StatePending   State = "pending"   // not arrived, or arrived but never considered
	StateReady     State = "ready"     // eligible and waiting for the cpu
	StateRunning   State = "running"   // holding the cpu
	StateCompleted State = "completed" // remaining time reached zero
)

var validTransitions = map[State]map[State]bool{
	StatePending: {
		StateReady: true,
	},
	StateReady: {
		StateRunning: true,
	},
	StateRunning: {
		StateReady:     true, // preempted or quantum expired
		StateCompleted: true,
	},
	StateCompleted: {},
}

// ValidateTransition checks if a state transition is valid
func ValidateTransition(from, to State) error {
	allowed, ok := validTransitions[from]
	if !ok {
		return fmt.Errorf("unknown source state: %s", from)
	}
	if !allowed[to] {
		return fmt.Errorf("invalid transition from %s to %s", from, to)
	}
	return nil
}

// IsTerminalState returns true if no further transitions are possible
func IsTerminalState(s State) bool {
	return s == StateCompleted
}
