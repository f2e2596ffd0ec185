package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
)

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error)
}

type teacherRepository struct {
	*PostgresRepository
}

func NewTeacherRepository(db *sql.DB, logger zerolog.Logger) TeacherRepository {
	return &teacherRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (telegram_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		teacher.TelegramID,
		teacher.Name,
	).Scan(&teacher.ID)
}

func (r *teacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT id, telegram_id, name
		FROM teachers
		WHERE id = $1
	`

	teacher := &models.Teacher{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.TelegramID,
		&teacher.Name,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return teacher, err
}

func (r *teacherRepository) GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error) {
	query := `
		SELECT id, telegram_id, name
		FROM teachers
		WHERE telegram_id = $1
	`

	teacher := &models.Teacher{}
	err := r.db.QueryRowContext(ctx, query, telegramID).Scan(
		&teacher.ID,
		&teacher.TelegramID,
		&teacher.Name,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return teacher, err
}
