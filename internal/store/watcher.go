package store

import (
	"context"

	"bugdesk.app/tracker/core/db"
)

type issueWatcherStore struct {
	q db.Querier
}

func (s *issueWatcherStore) Subscribe(ctx context.Context, issueID, userID int64) (bool, error) {
	tag, err := s.q.Exec(ctx, `
		INSERT INTO issue_watchers (issue_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		issueID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
