package models

import "time"

// Data Transfer Objects

type RegisterStudentRequest struct {
	TelegramID  string `json:"telegram_id" validate:"required,max=50"`
	PhoneNumber string `json:"phone_number" validate:"required,max=15"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"max=50"`
	Username    string `json:"username" validate:"max=50"`
}

type RegisterTeacherRequest struct {
	TelegramID string `json:"telegram_id" validate:"required,max=50"`
	Name       string `json:"name" validate:"required,max=100"`
}

type CreateHomeworkRequest struct {
	TeacherID   int64     `json:"teacher_id" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	MaxAttempts int       `json:"max_attempts" validate:"gte=0"`
}

type FinalizeSubmissionRequest struct {
	StudentTelegramID string   `json:"student_telegram_id" validate:"required"`
	FileIDs           []string `json:"file_ids" validate:"required,min=1"`
	FileNames         []string `json:"file_names" validate:"required,min=1"`
}

type GradeSubmissionRequest struct {
	SubmissionID int64 `json:"submission_id" validate:"required"`
	Grade        int   `json:"grade"`
}
