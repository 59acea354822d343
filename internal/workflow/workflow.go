// Package workflow holds the issue lifecycle rules: the legal status
// transition graph and the role-based authorization policy. It has no
// storage or HTTP dependencies, so the rules are testable in isolation.
package workflow

import (
	"errors"

	"bugdesk.app/tracker/internal/model"
)

var (
	// ErrForbidden means the actor's role or relation to the issue does not
	// permit the requested operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidTransition means the requested status edge is not in the
	// lifecycle graph. Illegal transitions are rejected, never clamped.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Operation is a state-machine trigger.
type Operation string

const (
	OpTake         Operation = "take"
	OpAssign       Operation = "assign"
	OpChangeStatus Operation = "change_status"
)

// transitions is the complete lifecycle graph. Any edge not listed here is
// illegal, including self-edges.
var transitions = map[model.Status][]model.Status{
	model.StatusNew:        {model.StatusInProgress},
	model.StatusInProgress: {model.StatusReadyForQA},
	model.StatusReadyForQA: {model.StatusClosed},
	model.StatusClosed:     {model.StatusReopened},
	model.StatusReopened:   {model.StatusInProgress},
}

// CanTransition reports whether from→to is a legal edge.
func CanTransition(from, to model.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the legal targets from the given status.
func NextStatuses(from model.Status) []model.Status {
	return transitions[from]
}

// Authorize applies the role/relation policy for op against the issue as the
// actor currently sees it. It gates permission only; status preconditions are
// re-validated at commit time by the store's conditional updates.
func Authorize(actor model.Actor, issue *model.Issue, op Operation) error {
	switch op {
	case OpTake:
		// Developers pull unclaimed work for themselves.
		if actor.Role != model.RoleDev {
			return ErrForbidden
		}
		if issue.Status != model.StatusNew || issue.AssigneeID != nil {
			return ErrForbidden
		}
		return nil

	case OpAssign:
		// QA and PM hand work to developers.
		if actor.Role != model.RoleQA && actor.Role != model.RolePM {
			return ErrForbidden
		}
		return nil

	case OpChangeStatus:
		if actor.Role == model.RoleQA || actor.Role == model.RolePM {
			return nil
		}
		if issue.AssigneeID != nil && *issue.AssigneeID == actor.UserID {
			return nil
		}
		return ErrForbidden
	}

	return ErrForbidden
}

// ValidateTransition rejects from→to unless it is a legal edge.
func ValidateTransition(from, to model.Status) error {
	if !CanTransition(from, to) {
		return ErrInvalidTransition
	}
	return nil
}
