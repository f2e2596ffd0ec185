package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
	AddPoints(ctx context.Context, id int64, delta int) error
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (telegram_id, phone_number, first_name, last_name, username, total_points)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		student.TelegramID,
		student.PhoneNumber,
		student.FirstName,
		student.LastName,
		student.Username,
		student.TotalPoints,
	).Scan(&student.ID)
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := `
		SELECT id, telegram_id, phone_number, first_name, last_name, COALESCE(username, ''), total_points
		FROM students
		WHERE id = $1
	`

	return r.scanStudent(r.db.QueryRowContext(ctx, query, id))
}

func (r *studentRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error) {
	query := `
		SELECT id, telegram_id, phone_number, first_name, last_name, COALESCE(username, ''), total_points
		FROM students
		WHERE telegram_id = $1
	`

	return r.scanStudent(r.db.QueryRowContext(ctx, query, telegramID))
}

func (r *studentRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	query := `
		SELECT id, telegram_id, phone_number, first_name, last_name, COALESCE(username, ''), total_points
		FROM students
		ORDER BY last_name, first_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var student models.Student
		err := rows.Scan(
			&student.ID,
			&student.TelegramID,
			&student.PhoneNumber,
			&student.FirstName,
			&student.LastName,
			&student.Username,
			&student.TotalPoints,
		)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	return students, rows.Err()
}

func (r *studentRepository) AddPoints(ctx context.Context, id int64, delta int) error {
	query := `
		UPDATE students
		SET total_points = total_points + $1
		WHERE id = $2
	`

	_, err := r.db.ExecContext(ctx, query, delta, id)
	return err
}

func (r *studentRepository) scanStudent(row *sql.Row) (*models.Student, error) {
	student := &models.Student{}
	err := row.Scan(
		&student.ID,
		&student.TelegramID,
		&student.PhoneNumber,
		&student.FirstName,
		&student.LastName,
		&student.Username,
		&student.TotalPoints,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return student, err
}
