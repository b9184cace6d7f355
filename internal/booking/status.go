// Package booking owns the booking lifecycle: the status enum, the
// role-gated transition rules between statuses, and the projections
// (filtering and dashboard aggregates) computed over booking
// collections.
package booking

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a booking, persisted as a string.
type Status string

const (
	StatusPending   Status = "pending"   // created by a renter, awaiting the owner
	StatusConfirmed Status = "confirmed" // accepted by the owner
	StatusCancelled Status = "cancelled" // declined by the owner or withdrawn by the renter
	StatusCompleted Status = "completed" // rental period elapsed

	// Legacy wire values.  They appear in older client payloads and are
	// accepted by ParseStatus for compatibility, but no transition ever
	// produces or consumes them.
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// Role mirrors the users.role column values.
type Role string

const (
	RoleRenter Role = "renter"
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
)

// Action is a lifecycle operation requested by a caller.
type Action string

const (
	ActionAccept   Action = "accept"   // owner confirms a pending request
	ActionDecline  Action = "decline"  // owner rejects a pending request
	ActionCancel   Action = "cancel"   // renter withdraws a pending request
	ActionComplete Action = "complete" // admin closes a confirmed rental
)

// Canonical reports whether s is one of the four statuses a booking
// can actually hold.
func (s Status) Canonical() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus normalizes a wire status value.  Unknown values are
// rejected; the legacy accepted/rejected/paid values parse but remain
// non-canonical.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted,
		StatusAccepted, StatusRejected, StatusPaid:
		return s, nil
	}
	return "", fmt.Errorf("unknown booking status %q", raw)
}

// ValidRole reports whether raw is one of the accepted role values.
func ValidRole(raw string) bool {
	switch Role(raw) {
	case RoleRenter, RoleOwner, RoleAdmin:
		return true
	}
	return false
}

// TransitionError explains why a requested lifecycle action was
// rejected.  Handlers map it to 409 Conflict (wrong source state) or
// 403 Forbidden (wrong role).
type TransitionError struct {
	From   Status
	Action Action
	Role   Role
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking in status %q as %s: %s", e.Action, e.From, e.Role, e.Reason)
}

// rule pins an action to the single role allowed to perform it and
// the single source status it applies to.
type rule struct {
	role Role
	from Status
	to   Status
}

var transitions = map[Action]rule{
	ActionAccept:   {role: RoleOwner, from: StatusPending, to: StatusConfirmed},
	ActionDecline:  {role: RoleOwner, from: StatusPending, to: StatusCancelled},
	ActionCancel:   {role: RoleRenter, from: StatusPending, to: StatusCancelled},
	ActionComplete: {role: RoleAdmin, from: StatusConfirmed, to: StatusCompleted},
}

// Transition applies action to a booking currently in state current on
// behalf of role.  It returns the resulting status, or a
// *TransitionError when the action is unknown, the role is not
// entitled to it, or the booking is not in the required source state.
// Transitions like completed -> pending are unreachable by
// construction: every action names exactly one source status.
func Transition(current Status, action Action, role Role) (Status, error) {
	r, ok := transitions[action]
	if !ok {
		return "", &TransitionError{From: current, Action: action, Role: role, Reason: "unknown action"}
	}
	if role != r.role {
		return "", &TransitionError{From: current, Action: action, Role: role,
			Reason: fmt.Sprintf("only %s may %s", r.role, action)}
	}
	if current != r.from {
		return "", &TransitionError{From: current, Action: action, Role: role,
			Reason: fmt.Sprintf("requires status %q", r.from)}
	}
	return r.to, nil
}
