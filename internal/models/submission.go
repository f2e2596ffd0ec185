package models

import (
	"strings"
	"time"
)

type Submission struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   int64     `json:"student_id" db:"student_id"`
	HomeworkID  int64     `json:"homework_id" db:"homework_id"`
	FileIDs     []string  `json:"file_ids" db:"file_ids"`
	FileNames   []string  `json:"file_names" db:"file_names"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Grade       *int      `json:"grade,omitempty" db:"grade"`
	BonusPoints int       `json:"bonus_points" db:"bonus_points"`
	IsReviewed  bool      `json:"is_reviewed" db:"is_reviewed"`
}

type SubmissionWithStudent struct {
	Submission
	StudentFirstName string `json:"student_first_name" db:"student_first_name"`
	StudentLastName  string `json:"student_last_name" db:"student_last_name"`
}

func (s *SubmissionWithStudent) StudentName() string {
	return strings.TrimSpace(s.StudentFirstName + " " + s.StudentLastName)
}
