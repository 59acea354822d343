package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bugdesk.app/tracker/common/id"
	"bugdesk.app/tracker/internal/model"
	"bugdesk.app/tracker/internal/store"
	"bugdesk.app/tracker/internal/workflow"
)

var (
	// ErrInvalidAssignee means the target user does not exist, is inactive,
	// or does not hold the developer role.
	ErrInvalidAssignee = errors.New("assignee must be an active developer")

	// ErrSameStatus rejects a status change to the issue's current status.
	ErrSameStatus = errors.New("issue already has that status")
)

type CreateIssueParams struct {
	Title       string
	Description string
	Priority    model.Priority
	Severity    model.Severity
	Environment *string
}

type UpdateIssueParams struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	Severity    *model.Severity
	Environment *string
}

type IssueService interface {
	Create(ctx context.Context, actor model.Actor, params CreateIssueParams) (*model.Issue, error)
	Get(ctx context.Context, issueID int64) (*model.Issue, error)
	List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error)
	Update(ctx context.Context, actor model.Actor, issueID int64, params UpdateIssueParams) (*model.Issue, error)
	Take(ctx context.Context, actor model.Actor, issueID int64) (*model.Issue, error)
	Assign(ctx context.Context, actor model.Actor, issueID, assigneeID int64) (*model.Issue, error)
	ChangeStatus(ctx context.Context, actor model.Actor, issueID int64, to model.Status) (*model.Issue, error)
	Subscribe(ctx context.Context, actor model.Actor, issueID int64) error
}

type issueService struct {
	issues   store.IssueStore
	users    store.UserStore
	watchers store.IssueWatcherStore
	logger   *slog.Logger
}

func NewIssueService(issues store.IssueStore, users store.UserStore, watchers store.IssueWatcherStore, logger *slog.Logger) IssueService {
	if logger == nil {
		logger = slog.Default()
	}
	return &issueService{issues: issues, users: users, watchers: watchers, logger: logger}
}

func (s *issueService) Create(ctx context.Context, actor model.Actor, params CreateIssueParams) (*model.Issue, error) {
	issue := &model.Issue{
		ID:          id.New(),
		Title:       params.Title,
		Description: params.Description,
		Status:      model.StatusNew,
		Priority:    params.Priority,
		Severity:    params.Severity,
		Environment: params.Environment,
		ReporterID:  actor.UserID,
	}

	created, err := s.issues.Create(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("creating issue: %w", err)
	}

	s.logger.InfoContext(ctx, "issue created", "issue_id", created.ID, "key", created.Key, "reporter_id", actor.UserID)
	return created, nil
}

func (s *issueService) Get(ctx context.Context, issueID int64) (*model.Issue, error) {
	return s.issues.GetByID(ctx, issueID)
}

func (s *issueService) List(ctx context.Context, filter store.IssueFilter) ([]model.Issue, int64, error) {
	return s.issues.List(ctx, filter)
}

func (s *issueService) Update(ctx context.Context, actor model.Actor, issueID int64, params UpdateIssueParams) (*model.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		issue.Title = *params.Title
	}
	if params.Description != nil {
		issue.Description = *params.Description
	}
	if params.Priority != nil {
		issue.Priority = *params.Priority
	}
	if params.Severity != nil {
		issue.Severity = *params.Severity
	}
	if params.Environment != nil {
		issue.Environment = params.Environment
	}

	return s.issues.UpdateDetails(ctx, issue)
}

// Take lets a developer claim a NEW, unassigned issue for themselves. The
// precondition is checked twice: here against the loaded row for a precise
// error, and again inside the conditional UPDATE so a racing take cannot
// slip through.
func (s *issueService) Take(ctx context.Context, actor model.Actor, issueID int64) (*model.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if err := workflow.Authorize(actor, issue, workflow.OpTake); err != nil {
		return nil, err
	}

	taken, err := s.issues.TakeIfNew(ctx, issueID, actor.UserID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "issue taken", "issue_id", issueID, "assignee_id", actor.UserID)
	return taken, nil
}

func (s *issueService) Assign(ctx context.Context, actor model.Actor, issueID, assigneeID int64) (*model.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if err := workflow.Authorize(actor, issue, workflow.OpAssign); err != nil {
		return nil, err
	}

	assignee, err := s.users.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if !assignee.Active || assignee.Role != model.RoleDev {
		return nil, ErrInvalidAssignee
	}

	assigned, err := s.issues.Assign(ctx, issueID, assigneeID)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "issue assigned",
		"issue_id", issueID, "assignee_id", assigneeID, "assigned_by", actor.UserID)
	return assigned, nil
}

// Subscribe adds the actor as a watcher of the issue. Subscribing twice is a
// no-op, so clients can treat the call as a toggle-on regardless of state.
func (s *issueService) Subscribe(ctx context.Context, actor model.Actor, issueID int64) error {
	if _, err := s.issues.GetByID(ctx, issueID); err != nil {
		return err
	}

	added, err := s.watchers.Subscribe(ctx, issueID, actor.UserID)
	if err != nil {
		return fmt.Errorf("subscribing to issue: %w", err)
	}
	if added {
		s.logger.InfoContext(ctx, "issue subscribed", "issue_id", issueID, "user_id", actor.UserID)
	}
	return nil
}

func (s *issueService) ChangeStatus(ctx context.Context, actor model.Actor, issueID int64, to model.Status) (*model.Issue, error) {
	issue, err := s.issues.GetByID(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if to == issue.Status {
		return nil, ErrSameStatus
	}

	if err := workflow.Authorize(actor, issue, workflow.OpChangeStatus); err != nil {
		return nil, err
	}
	if err := workflow.ValidateTransition(issue.Status, to); err != nil {
		return nil, err
	}

	updated, err := s.issues.UpdateStatusIf(ctx, issueID, issue.Status, to)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "issue status changed",
		"issue_id", issueID, "from", issue.Status, "to", to, "user_id", actor.UserID)
	return updated, nil
}
