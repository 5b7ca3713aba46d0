package model

import "time"

type AuditAction string

const (
	ActionCompleted AuditAction = "Completed"
	ActionUnchecked AuditAction = "Unchecked"
)

// AuditEntry неизменяема после записи, обновлений и удалений нет
type AuditEntry struct {
	ID        int64       `json:"id"`
	TaskName  string      `json:"task_name"`
	UserEmail string      `json:"user_email"`
	HouseKey  string      `json:"house_key"`
	Action    AuditAction `json:"action"`
	Timestamp time.Time   `json:"action_timestamp"`
}
