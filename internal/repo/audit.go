package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/household-api/internal/model"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{
		pool: pool,
	}
}

func (r *AuditRepo) Append(ctx context.Context, e model.AuditEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log (task_name, user_email, house_key, action, action_timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, e.TaskName, e.UserEmail, e.HouseKey, e.Action, e.Timestamp)
	return mapError(err)
}

func (r *AuditRepo) Recent(ctx context.Context, houseKey string, limit int) ([]model.AuditEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_name, user_email, house_key, action, action_timestamp
		FROM audit_log
		WHERE house_key = $1
		ORDER BY action_timestamp DESC, id DESC
		LIMIT $2
	`, houseKey, limit)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	entries := make([]model.AuditEntry, 0, limit)
	for rows.Next() {
		var e model.AuditEntry
		if err := rows.Scan(&e.ID, &e.TaskName, &e.UserEmail, &e.HouseKey, &e.Action, &e.Timestamp); err != nil {
			return nil, mapError(err)
		}
		entries = append(entries, e)
	}
	return entries, mapError(rows.Err())
}
