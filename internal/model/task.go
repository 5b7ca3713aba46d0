package model

import (
	"time"

	"github.com/google/uuid"
)

type Frequency string

const (
	FrequencyOneTime Frequency = "one_time"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyOneTime, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Task - задача домохозяйства. LastReset двигается и при авто-сбросе,
// и при любом ручном переключении (включая снятие галочки).
type Task struct {
	ID          uuid.UUID `json:"id"`
	HouseKey    string    `json:"house_key"`
	Name        string    `json:"name"`
	Frequency   Frequency `json:"frequency"`
	IsCompleted bool      `json:"is_completed"`
	LastReset   Date      `json:"last_reset"`
	CreatedAt   time.Time `json:"created_at"`
}
