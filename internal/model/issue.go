package model

import "time"

type (
	Status   string
	Priority string
	Severity string
)

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReadyForQA Status = "READY_FOR_QA"
	StatusClosed     Status = "CLOSED"
	StatusReopened   Status = "REOPENED"
)

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

const (
	SeverityMinor    Severity = "MINOR"
	SeverityMajor    Severity = "MAJOR"
	SeverityCritical Severity = "CRITICAL"
	SeverityBlocker  Severity = "BLOCKER"
)

// ValidStatus reports whether s is a member of the closed status set.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusInProgress, StatusReadyForQA, StatusClosed, StatusReopened:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func ValidSeverity(s Severity) bool {
	switch s {
	case SeverityMinor, SeverityMajor, SeverityCritical, SeverityBlocker:
		return true
	}
	return false
}

// Issue is a tracked defect. The human-readable key (BUG-42) is assigned from
// a database sequence at creation and never changes; the snowflake ID is the
// surrogate key used for foreign keys and URLs.
type Issue struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Severity    Severity  `json:"severity"`
	Environment *string   `json:"environment,omitempty"`
	ReporterID  int64     `json:"reporter_id"`
	AssigneeID  *int64    `json:"assignee_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
