package store

import (
	"context"
	"errors"
	"time"

	"bugdesk.app/tracker/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a conditional update found its precondition no
// longer true (e.g. the issue was taken by someone else first).
var ErrConflict = errors.New("conflict")

// IssueFilter narrows List results. Zero values mean "no filter".
type IssueFilter struct {
	Status     model.Status
	AssigneeID *int64
	ReporterID *int64
	WatcherID  *int64
	Search     string
	Page       int
	PageSize   int
}

// Normalize clamps pagination to sane bounds and returns the adjusted filter.
// Callers echo the result back so clients see the page they actually got.
func (f IssueFilter) Normalize() IssueFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.PageSize > 100 {
		f.PageSize = 100
	}
	return f
}

// IssueStore defines the contract for issue data access.
//
// The conditional mutators (TakeIfNew, UpdateStatusIf) re-validate their
// precondition inside the UPDATE itself and return ErrConflict when zero rows
// match, which is what makes racing duplicate triggers safe across instances.
type IssueStore interface {
	Create(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	GetByID(ctx context.Context, id int64) (*model.Issue, error)
	GetByKey(ctx context.Context, key string) (*model.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]model.Issue, int64, error)
	UpdateDetails(ctx context.Context, issue *model.Issue) (*model.Issue, error)
	TakeIfNew(ctx context.Context, id, assigneeID int64) (*model.Issue, error)
	Assign(ctx context.Context, id, assigneeID int64) (*model.Issue, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error)
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role   model.Role
	Active *bool
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
}

type SessionStore interface {
	// GetUserByToken resolves a bearer token to its user. Expired or unknown
	// tokens return ErrNotFound.
	GetUserByToken(ctx context.Context, token string, now time.Time) (*model.User, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	GetByID(ctx context.Context, id int64) (*model.Comment, error)
	Update(ctx context.Context, id int64, body string) (*model.Comment, error)
	ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error)
}

type CodeChangeStore interface {
	// Upsert inserts or refreshes the record for (Type, ExternalID) in a
	// single atomic statement, preserving the surrogate ID on conflict.
	Upsert(ctx context.Context, change *model.CodeChange) (*model.CodeChange, error)
	GetByID(ctx context.Context, id int64) (*model.CodeChange, error)
	ListByIssue(ctx context.Context, issueID int64) ([]model.CodeChange, error)
}

type IssueLinkStore interface {
	// Attach links a code change to an issue. It reports false when the link
	// already existed; a duplicate is not an error.
	Attach(ctx context.Context, issueID, codeChangeID int64) (bool, error)
}

type IssueWatcherStore interface {
	// Subscribe adds the user as a watcher of the issue. It reports false when
	// the subscription already existed; a duplicate is not an error.
	Subscribe(ctx context.Context, issueID, userID int64) (bool, error)
}

type WebhookDeliveryStore interface {
	// Record stores a delivery keyed by its GUID and reports false when the
	// same GUID was already recorded.
	Record(ctx context.Context, delivery *model.WebhookDelivery) (bool, error)
}
