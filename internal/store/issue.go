package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"bugdesk.app/tracker/core/db"
	"bugdesk.app/tracker/internal/model"
)

const issueColumns = `id, key, title, description, status, priority, severity,
	environment, reporter_id, assignee_id, created_at, updated_at`

type issueStore struct {
	q db.Querier
}

func (s *issueStore) Create(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	// The key is derived from a database sequence inside the INSERT, so
	// concurrent creates on different instances never collide.
	row := s.q.QueryRow(ctx, `
		INSERT INTO issues (id, key, title, description, status, priority, severity, environment, reporter_id)
		VALUES ($1, 'BUG-' || nextval('issue_key_seq'), $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+issueColumns,
		issue.ID, issue.Title, issue.Description, issue.Status,
		issue.Priority, issue.Severity, issue.Environment, issue.ReporterID,
	)
	return scanIssue(row)
}

func (s *issueStore) GetByID(ctx context.Context, id int64) (*model.Issue, error) {
	row := s.q.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	return scanIssue(row)
}

func (s *issueStore) GetByKey(ctx context.Context, key string) (*model.Issue, error) {
	row := s.q.QueryRow(ctx, `SELECT `+issueColumns+` FROM issues WHERE key = $1`, key)
	return scanIssue(row)
}

func (s *issueStore) List(ctx context.Context, filter IssueFilter) ([]model.Issue, int64, error) {
	filter = filter.Normalize()

	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(cond string, arg any) {
		args = append(args, arg)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.AssigneeID != nil {
		add("assignee_id = $%d", *filter.AssigneeID)
	}
	if filter.ReporterID != nil {
		add("reporter_id = $%d", *filter.ReporterID)
	}
	if filter.WatcherID != nil {
		add("EXISTS (SELECT 1 FROM issue_watchers w WHERE w.issue_id = issues.id AND w.user_id = $%d)", *filter.WatcherID)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR key ILIKE $%d)", n, n, n))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := s.q.QueryRow(ctx, `SELECT count(*) FROM issues`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query := fmt.Sprintf(
		`SELECT `+issueColumns+` FROM issues%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clause, len(args)-1, len(args),
	)

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var issues []model.Issue
	for rows.Next() {
		issue, err := scanIssue(rows)
		if err != nil {
			return nil, 0, err
		}
		issues = append(issues, *issue)
	}
	return issues, total, rows.Err()
}

func (s *issueStore) UpdateDetails(ctx context.Context, issue *model.Issue) (*model.Issue, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE issues
		SET title = $2, description = $3, priority = $4, severity = $5,
		    environment = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+issueColumns,
		issue.ID, issue.Title, issue.Description, issue.Priority,
		issue.Severity, issue.Environment,
	)
	return scanIssue(row)
}

func (s *issueStore) TakeIfNew(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	// The NEW-and-unassigned precondition is part of the UPDATE, so of two
	// racing takes exactly one matches a row.
	row := s.q.QueryRow(ctx, `
		UPDATE issues
		SET assignee_id = $2, status = $3, updated_at = now()
		WHERE id = $1 AND status = $4 AND assignee_id IS NULL
		RETURNING `+issueColumns,
		id, assigneeID, model.StatusInProgress, model.StatusNew,
	)
	issue, err := scanIssue(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrConflict
	}
	return issue, err
}

func (s *issueStore) Assign(ctx context.Context, id, assigneeID int64) (*model.Issue, error) {
	// Assignment on a NEW issue also advances it; the CASE keeps that
	// decision inside the same atomic statement.
	row := s.q.QueryRow(ctx, `
		UPDATE issues
		SET assignee_id = $2,
		    status = CASE WHEN status = $3 THEN $4 ELSE status END,
		    updated_at = now()
		WHERE id = $1
		RETURNING `+issueColumns,
		id, assigneeID, model.StatusNew, model.StatusInProgress,
	)
	return scanIssue(row)
}

func (s *issueStore) UpdateStatusIf(ctx context.Context, id int64, from, to model.Status) (*model.Issue, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE issues
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2
		RETURNING `+issueColumns,
		id, from, to,
	)
	issue, err := scanIssue(row)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrConflict
	}
	return issue, err
}

func scanIssue(row pgx.Row) (*model.Issue, error) {
	var issue model.Issue
	err := row.Scan(
		&issue.ID, &issue.Key, &issue.Title, &issue.Description,
		&issue.Status, &issue.Priority, &issue.Severity, &issue.Environment,
		&issue.ReporterID, &issue.AssigneeID, &issue.CreatedAt, &issue.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &issue, nil
}
