package booking

import (
	"errors"
	"testing"
)

func TestTransitionAllowed(t *testing.T) {
	cases := []struct {
		name   string
		from   Status
		action Action
		role   Role
		want   Status
	}{
		{"owner accepts pending", StatusPending, ActionAccept, RoleOwner, StatusConfirmed},
		{"owner declines pending", StatusPending, ActionDecline, RoleOwner, StatusCancelled},
		{"renter cancels pending", StatusPending, ActionCancel, RoleRenter, StatusCancelled},
		{"admin completes confirmed", StatusConfirmed, ActionComplete, RoleAdmin, StatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.from, tc.action, tc.role)
			if err != nil {
				t.Fatalf("Transition: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTransitionRejected(t *testing.T) {
	cases := []struct {
		name   string
		from   Status
		action Action
		role   Role
	}{
		{"renter cannot accept", StatusPending, ActionAccept, RoleRenter},
		{"owner cannot cancel for the renter", StatusPending, ActionCancel, RoleOwner},
		{"renter cannot cancel a confirmed booking", StatusConfirmed, ActionCancel, RoleRenter},
		{"completed is terminal", StatusCompleted, ActionAccept, RoleOwner},
		{"cancelled is terminal", StatusCancelled, ActionComplete, RoleAdmin},
		{"cannot complete a pending booking", StatusPending, ActionComplete, RoleAdmin},
		{"unknown action", StatusPending, Action("reopen"), RoleAdmin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Transition(tc.from, tc.action, tc.role); err == nil {
				t.Fatalf("expected transition to be rejected")
			} else {
				var te *TransitionError
				if !errors.As(err, &te) {
					t.Fatalf("expected *TransitionError, got %T", err)
				}
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("  Confirmed ")
	if err != nil || s != StatusConfirmed {
		t.Fatalf("ParseStatus = %q, %v", s, err)
	}
	// legacy wire values parse but stay non-canonical
	s, err = ParseStatus("paid")
	if err != nil {
		t.Fatalf("ParseStatus(paid): %v", err)
	}
	if s.Canonical() {
		t.Fatalf("paid must not be canonical")
	}
	if _, err := ParseStatus("bogus"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestTerminal(t *testing.T) {
	if !StatusCancelled.Terminal() || !StatusCompleted.Terminal() {
		t.Fatalf("cancelled and completed are terminal")
	}
	if StatusPending.Terminal() || StatusConfirmed.Terminal() {
		t.Fatalf("pending and confirmed are not terminal")
	}
}
