package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"bugdesk.app/tracker/core/db"
	"bugdesk.app/tracker/internal/model"
)

type commentStore struct {
	q db.Querier
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	row := s.q.QueryRow(ctx, `
		INSERT INTO comments (id, issue_id, author_id, body, is_system)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, issue_id, author_id, body, is_system, created_at, updated_at`,
		comment.ID, comment.IssueID, comment.AuthorID, comment.Body, comment.IsSystem,
	)
	return scanComment(row)
}

func (s *commentStore) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	row := s.q.QueryRow(ctx, `
		SELECT c.id, c.issue_id, c.author_id, c.body, c.is_system, c.created_at, c.updated_at, u.name
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.id = $1`, id)
	return scanCommentWithAuthor(row)
}

func (s *commentStore) Update(ctx context.Context, id int64, body string) (*model.Comment, error) {
	row := s.q.QueryRow(ctx, `
		UPDATE comments SET body = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, issue_id, author_id, body, is_system, created_at, updated_at`,
		id, body,
	)
	return scanComment(row)
}

func (s *commentStore) ListByIssue(ctx context.Context, issueID int64) ([]model.Comment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT c.id, c.issue_id, c.author_id, c.body, c.is_system, c.created_at, c.updated_at, u.name
		FROM comments c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.issue_id = $1
		ORDER BY c.created_at`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		comment, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *comment)
	}
	return comments, rows.Err()
}

func scanComment(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.IssueID, &c.AuthorID, &c.Body, &c.IsSystem, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanCommentWithAuthor(row pgx.Row) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.IssueID, &c.AuthorID, &c.Body, &c.IsSystem, &c.CreatedAt, &c.UpdatedAt, &c.AuthorName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
