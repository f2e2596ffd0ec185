package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByFileName(ctx context.Context, fileName string) (*models.Submission, error)
	GetByHomeworkID(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error)
	CountByStudentAndHomework(ctx context.Context, studentID, homeworkID int64) (int, error)
	SetGrade(ctx context.Context, id int64, grade, bonusPoints int) error
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (student_id, homework_id, file_ids, file_names, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		submission.StudentID,
		submission.HomeworkID,
		pq.Array(submission.FileIDs),
		pq.Array(submission.FileNames),
		submission.CreatedAt,
	).Scan(&submission.ID)
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT id, student_id, homework_id, file_ids, file_names, created_at, grade, bonus_points, is_reviewed
		FROM submissions
		WHERE id = $1
	`

	return r.scanSubmission(r.db.QueryRowContext(ctx, query, id))
}

func (r *submissionRepository) GetByFileName(ctx context.Context, fileName string) (*models.Submission, error) {
	query := `
		SELECT id, student_id, homework_id, file_ids, file_names, created_at, grade, bonus_points, is_reviewed
		FROM submissions
		WHERE $1 = ANY(file_names)
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanSubmission(r.db.QueryRowContext(ctx, query, fileName))
}

func (r *submissionRepository) GetByHomeworkID(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error) {
	query := `
		SELECT
			sub.id, sub.student_id, sub.homework_id, sub.file_ids, sub.file_names,
			sub.created_at, sub.grade, sub.bonus_points, sub.is_reviewed,
			s.first_name AS student_first_name, s.last_name AS student_last_name
		FROM submissions sub
		JOIN students s ON sub.student_id = s.id
		WHERE sub.homework_id = $1
		ORDER BY sub.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, homeworkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []models.SubmissionWithStudent
	for rows.Next() {
		var submission models.SubmissionWithStudent
		err := rows.Scan(
			&submission.ID,
			&submission.StudentID,
			&submission.HomeworkID,
			pq.Array(&submission.FileIDs),
			pq.Array(&submission.FileNames),
			&submission.CreatedAt,
			&submission.Grade,
			&submission.BonusPoints,
			&submission.IsReviewed,
			&submission.StudentFirstName,
			&submission.StudentLastName,
		)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, rows.Err()
}

func (r *submissionRepository) CountByStudentAndHomework(ctx context.Context, studentID, homeworkID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM submissions
		WHERE student_id = $1 AND homework_id = $2
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, studentID, homeworkID).Scan(&count)
	return count, err
}

func (r *submissionRepository) SetGrade(ctx context.Context, id int64, grade, bonusPoints int) error {
	query := `
		UPDATE submissions
		SET grade = $1, bonus_points = $2, is_reviewed = TRUE
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, grade, bonusPoints, id)
	return err
}

func (r *submissionRepository) scanSubmission(row *sql.Row) (*models.Submission, error) {
	submission := &models.Submission{}
	err := row.Scan(
		&submission.ID,
		&submission.StudentID,
		&submission.HomeworkID,
		pq.Array(&submission.FileIDs),
		pq.Array(&submission.FileNames),
		&submission.CreatedAt,
		&submission.Grade,
		&submission.BonusPoints,
		&submission.IsReviewed,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}
