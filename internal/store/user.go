package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"bugdesk.app/tracker/core/db"
	"bugdesk.app/tracker/internal/model"
)

const userColumns = `id, name, email, role, active, created_at, updated_at`

type userStore struct {
	q db.Querier
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if filter.Role != "" {
		args = append(args, filter.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		where = append(where, fmt.Sprintf("active = $%d", len(args)))
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

type sessionStore struct {
	q db.Querier
}

func (s *sessionStore) GetUserByToken(ctx context.Context, token string, now time.Time) (*model.User, error) {
	row := s.q.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.role, u.active, u.created_at, u.updated_at
		FROM sessions se
		JOIN users u ON u.id = se.user_id
		WHERE se.token = $1 AND (se.expires_at IS NULL OR se.expires_at > $2)`,
		token, now,
	)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.Role,
		&user.Active, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
