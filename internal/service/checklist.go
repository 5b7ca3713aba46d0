package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/household-api/internal/auth"
	"github.com/BuzzLyutic/household-api/internal/model"
	"github.com/BuzzLyutic/household-api/internal/repo"
	"github.com/BuzzLyutic/household-api/internal/reset"
)

var (
	ErrValidation = errors.New("validation error")
)

// лимит журнала на выдачу
const defaultRecentLimit = 15

// ChecklistService не хранит собственного состояния - всё заново
// выводится из хранилища на каждый вызов
type ChecklistService struct {
	tasks  repo.TaskRepository
	audit  repo.AuditRepository
	logger *zap.Logger
}

func NewChecklistService(tasks repo.TaskRepository, audit repo.AuditRepository, logger *zap.Logger) *ChecklistService {
	return &ChecklistService{
		tasks:  tasks,
		audit:  audit,
		logger: logger,
	}
}

// Sync - ленивый проход сброса: расписания нет, просроченные задачи
// сбрасываются в момент чтения списка. Повторный вызов в тот же день
// не делает ни одной записи. Сбой сброса одной задачи не прерывает
// обработку остальных.
func (s *ChecklistService) Sync(ctx context.Context, sess auth.Session, now time.Time) ([]model.Task, error) {
	today := model.DateOf(now.UTC())

	var tasks []model.Task
	err := s.withRetry(func() error {
		var err error
		tasks, err = s.tasks.List(ctx, sess.HouseKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		t := &tasks[i]
		if !reset.Due(t.Frequency, t.LastReset, today) {
			continue
		}

		err := s.withRetry(func() error {
			return s.tasks.ApplyReset(ctx, t.ID, sess.HouseKey, today)
		})
		if err != nil {
			s.logger.Error("failed to reset task",
				zap.String("task_id", t.ID.String()),
				zap.Error(err),
			)
			continue
		}

		t.IsCompleted = false
		t.LastReset = today
	}

	return tasks, nil
}

// Toggle переключает выполнение. Снятие галочки тоже двигает last_reset
// на сегодня - поле отмечает последнюю активность, а не только сброс.
// Совпадающее значение - no-op без записи и без аудита.
func (s *ChecklistService) Toggle(ctx context.Context, sess auth.Session, id uuid.UUID, completed bool, now time.Time) (model.Task, error) {
	today := model.DateOf(now.UTC())

	var t model.Task
	err := s.withRetry(func() error {
		var err error
		t, err = s.tasks.GetScoped(ctx, id, sess.HouseKey)
		return err
	})
	if err != nil {
		return t, err
	}

	if t.IsCompleted == completed {
		return t, nil
	}

	err = s.withRetry(func() error {
		var err error
		t, err = s.tasks.SetCompletion(ctx, id, sess.HouseKey, completed, today)
		return err
	})
	if err != nil {
		return t, err
	}

	action := model.ActionUnchecked
	if completed {
		action = model.ActionCompleted
	}
	err = s.withRetry(func() error {
		return s.audit.Append(ctx, model.AuditEntry{
			TaskName:  t.Name,
			UserEmail: sess.Email,
			HouseKey:  sess.HouseKey,
			Action:    action,
			Timestamp: now.UTC().Truncate(time.Second),
		})
	})
	if err != nil {
		s.logger.Error("failed to append audit entry",
			zap.String("task_id", t.ID.String()),
			zap.Error(err),
		)
		return t, err
	}

	return t, nil
}

func (s *ChecklistService) Create(ctx context.Context, sess auth.Session, name string, freq model.Frequency, now time.Time) (model.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Task{}, ErrValidation
	}
	if !freq.Valid() {
		return model.Task{}, ErrValidation
	}

	t := model.Task{
		HouseKey:    sess.HouseKey,
		Name:        name,
		Frequency:   freq,
		IsCompleted: false,
		LastReset:   model.DateOf(now.UTC()),
	}

	err := s.withRetry(func() error {
		var err error
		t, err = s.tasks.Insert(ctx, t)
		return err
	})
	return t, err
}

// Delete удаляет задачу навсегда, записи аудита с её именем остаются
func (s *ChecklistService) Delete(ctx context.Context, sess auth.Session, id uuid.UUID) error {
	return s.withRetry(func() error {
		return s.tasks.Delete(ctx, id, sess.HouseKey)
	})
}

func (s *ChecklistService) Recent(ctx context.Context, sess auth.Session, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > defaultRecentLimit {
		limit = defaultRecentLimit
	}

	var entries []model.AuditEntry
	err := s.withRetry(func() error {
		var err error
		entries, err = s.audit.Recent(ctx, sess.HouseKey, limit)
		return err
	})
	return entries, err
}

// withRetry повторяет вызов ровно один раз и только на временных
// ошибках хранилища
func (s *ChecklistService) withRetry(fn func() error) error {
	err := fn()
	if errors.Is(err, repo.ErrorTransient) {
		return fn()
	}
	return err
}
