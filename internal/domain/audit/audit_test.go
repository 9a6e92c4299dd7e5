package audit

import (
	"testing"
	"time"
)

func TestNewEvent_Builders(t *testing.T) {
	at := time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC)
	e := NewEvent("e1", at, ActionPINReset).WithTeam("t1").WithDescription("PIN reset by admin").WithIP("10.0.0.1")

	if e.ID != "e1" || !e.Timestamp.Equal(at) || e.Action != ActionPINReset {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.TeamID != "t1" || e.Description != "PIN reset by admin" || e.IPAddress != "10.0.0.1" {
		t.Errorf("builders not applied: %+v", e)
	}
	if err := e.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name string
		e    Event
		want error
	}{
		{"missing id", Event{Action: ActionAdminLogin}, ErrIDRequired},
		{"missing action", Event{ID: "e1"}, ErrActionRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.e.Validate(); err != tt.want {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
