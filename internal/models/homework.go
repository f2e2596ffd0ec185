package models

import "time"

const DefaultMaxAttempts = 3

type Homework struct {
	ID          int64     `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Deadline    time.Time `json:"deadline" db:"deadline"`
	MaxAttempts int       `json:"max_attempts" db:"max_attempts"`
	Active      bool      `json:"active" db:"active"`
	TeacherID   int64     `json:"teacher_id" db:"teacher_id"`
}

func (h *Homework) DeadlinePassed(now time.Time) bool {
	return now.After(h.Deadline)
}
