package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"bugdesk.app/tracker/core/db"
	"bugdesk.app/tracker/internal/model"
)

const codeChangeColumns = `id, type, external_id, title, url, author, occurred_at, created_at, updated_at`

type codeChangeStore struct {
	q db.Querier
}

func (s *codeChangeStore) Upsert(ctx context.Context, change *model.CodeChange) (*model.CodeChange, error) {
	// Single statement: concurrent deliveries of the same change race on the
	// (type, external_id) constraint instead of on a find-then-create gap.
	// The surrogate ID sticks with the first insert.
	row := s.q.QueryRow(ctx, `
		INSERT INTO code_changes (id, type, external_id, title, url, author, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (type, external_id) DO UPDATE
		SET title = EXCLUDED.title,
		    url = EXCLUDED.url,
		    author = EXCLUDED.author,
		    occurred_at = EXCLUDED.occurred_at,
		    updated_at = now()
		RETURNING `+codeChangeColumns,
		change.ID, change.Type, change.ExternalID, change.Title,
		change.URL, change.Author, change.OccurredAt,
	)
	return scanCodeChange(row)
}

func (s *codeChangeStore) GetByID(ctx context.Context, id int64) (*model.CodeChange, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+codeChangeColumns+`
		FROM code_changes
		WHERE id = $1`, id)
	return scanCodeChange(row)
}

func (s *codeChangeStore) ListByIssue(ctx context.Context, issueID int64) ([]model.CodeChange, error) {
	rows, err := s.q.Query(ctx, `
		SELECT cc.id, cc.type, cc.external_id, cc.title, cc.url, cc.author,
		       cc.occurred_at, cc.created_at, cc.updated_at
		FROM issue_code_changes link
		JOIN code_changes cc ON cc.id = link.code_change_id
		WHERE link.issue_id = $1
		ORDER BY cc.occurred_at DESC`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []model.CodeChange
	for rows.Next() {
		change, err := scanCodeChange(rows)
		if err != nil {
			return nil, err
		}
		changes = append(changes, *change)
	}
	return changes, rows.Err()
}

type issueLinkStore struct {
	q db.Querier
}

func (s *issueLinkStore) Attach(ctx context.Context, issueID, codeChangeID int64) (bool, error) {
	tag, err := s.q.Exec(ctx, `
		INSERT INTO issue_code_changes (issue_id, code_change_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		issueID, codeChangeID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type webhookDeliveryStore struct {
	q db.Querier
}

func (s *webhookDeliveryStore) Record(ctx context.Context, delivery *model.WebhookDelivery) (bool, error) {
	tag, err := s.q.Exec(ctx, `
		INSERT INTO webhook_deliveries (delivery_id, event)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		delivery.DeliveryID, delivery.Event,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanCodeChange(row pgx.Row) (*model.CodeChange, error) {
	var change model.CodeChange
	err := row.Scan(
		&change.ID, &change.Type, &change.ExternalID, &change.Title,
		&change.URL, &change.Author, &change.OccurredAt,
		&change.CreatedAt, &change.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &change, nil
}
