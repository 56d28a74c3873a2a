package core

import (
	"testing"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr bool
	}{
		{"Pending to Ready", StatePending, StateReady, false},
		{"Ready to Running", StateReady, StateRunning, false},
		{"Running to Ready", StateRunning, StateReady, false},
		{"Running to Completed", StateRunning, StateCompleted, false},

		{"Pending to Running", StatePending, StateRunning, true},
		{"Ready to Completed", StateReady, StateCompleted, true},
		{"Completed to Ready", StateCompleted, StateReady, true},
		{"Unknown source", State("zombie"), StateReady, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTransition(%v, %v) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}

func TestIsTerminalState(t *testing.T) {
	for _, s := range []State{StatePending, StateReady, StateRunning} {
		if IsTerminalState(s) {
			t.Errorf("IsTerminalState(%s) = true", s)
		}
	}
	if !IsTerminalState(StateCompleted) {
		t.Error("completed should be terminal")
	}
}
