package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/household-api/internal/model"
)

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) List(ctx context.Context, houseKey string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, house_key, name, frequency, is_completed, last_reset, created_at
		FROM tasks
		WHERE house_key = $1
		ORDER BY created_at, id
	`, houseKey)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, mapError(rows.Err())
}

func (r *TaskRepo) GetScoped(ctx context.Context, id uuid.UUID, houseKey string) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, house_key, name, frequency, is_completed, last_reset, created_at
		FROM tasks
		WHERE id = $1 AND house_key = $2
	`, id, houseKey)
	return scanTask(row)
}

func (r *TaskRepo) Insert(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, house_key, name, frequency, is_completed, last_reset)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, t.ID, t.HouseKey, t.Name, t.Frequency, t.IsCompleted, t.LastReset.Time()).Scan(&t.CreatedAt)
	return t, mapError(err)
}

// SetCompletion меняет флаг и дату последней активности одним UPDATE -
// наполовину применённое переключение увидеть нельзя
func (r *TaskRepo) SetCompletion(ctx context.Context, id uuid.UUID, houseKey string, completed bool, day model.Date) (model.Task, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET is_completed = $3, last_reset = $4
		WHERE id = $1 AND house_key = $2
		RETURNING id, house_key, name, frequency, is_completed, last_reset, created_at
	`, id, houseKey, completed, day.Time())
	return scanTask(row)
}

// ApplyReset - атомарный сброс: оба поля в одном UPDATE
func (r *TaskRepo) ApplyReset(ctx context.Context, id uuid.UUID, houseKey string, day model.Date) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks
		SET is_completed = false, last_reset = $3
		WHERE id = $1 AND house_key = $2
	`, id, houseKey, day.Time())
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID, houseKey string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND house_key = $2", id, houseKey)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t         model.Task
		lastReset time.Time
	)
	err := row.Scan(&t.ID, &t.HouseKey, &t.Name, &t.Frequency, &t.IsCompleted, &lastReset, &t.CreatedAt)
	if err != nil {
		return t, mapError(err)
	}
	t.LastReset = model.DateOf(lastReset)
	return t, nil
}
