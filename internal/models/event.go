package models

type SubmissionCreatedEvent struct {
	EventID      string   `json:"event_id"`
	SubmissionID int64    `json:"submission_id"`
	StudentID    int64    `json:"student_id"`
	HomeworkID   int64    `json:"homework_id"`
	FileNames    []string `json:"file_names"`
	Timestamp    int64    `json:"timestamp"`
}

type SubmissionGradedEvent struct {
	EventID      string `json:"event_id"`
	SubmissionID int64  `json:"submission_id"`
	StudentID    int64  `json:"student_id"`
	HomeworkID   int64  `json:"homework_id"`
	Grade        int    `json:"grade"`
	BonusPoints  int    `json:"bonus_points"`
	Timestamp    int64  `json:"timestamp"`
}
