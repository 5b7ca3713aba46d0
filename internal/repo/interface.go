package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/household-api/internal/model"
)

// TaskRepository определяет интерфейс хранилища задач. Каждый запрос
// обязан фильтровать по house_key: чужая задача неотличима от несуществующей.
type TaskRepository interface {
	List(ctx context.Context, houseKey string) ([]model.Task, error)
	GetScoped(ctx context.Context, id uuid.UUID, houseKey string) (model.Task, error)
	Insert(ctx context.Context, t model.Task) (model.Task, error)
	SetCompletion(ctx context.Context, id uuid.UUID, houseKey string, completed bool, day model.Date) (model.Task, error)
	ApplyReset(ctx context.Context, id uuid.UUID, houseKey string, day model.Date) error
	Delete(ctx context.Context, id uuid.UUID, houseKey string) error
}

// AuditRepository - append-only журнал переключений
type AuditRepository interface {
	Append(ctx context.Context, e model.AuditEntry) error
	Recent(ctx context.Context, houseKey string, limit int) ([]model.AuditEntry, error)
}

type UserRepository interface {
	Insert(ctx context.Context, u model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}
