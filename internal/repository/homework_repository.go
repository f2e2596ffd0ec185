package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
)

type HomeworkRepository interface {
	Create(ctx context.Context, homework *models.Homework) error
	GetByID(ctx context.Context, id int64) (*models.Homework, error)
	GetActive(ctx context.Context) (*models.Homework, error)
	GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error)
	GetAll(ctx context.Context) ([]models.Homework, error)
}

type homeworkRepository struct {
	*PostgresRepository
}

func NewHomeworkRepository(db *sql.DB, logger zerolog.Logger) HomeworkRepository {
	return &homeworkRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Create сохраняет новое задание и в той же транзакции снимает флаг active
// с предыдущих заданий учителя: активным может быть только одно задание.
func (r *homeworkRepository) Create(ctx context.Context, homework *models.Homework) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deactivateQuery := `
		UPDATE homeworks
		SET active = FALSE
		WHERE teacher_id = $1 AND active = TRUE
	`

	if _, err := tx.ExecContext(ctx, deactivateQuery, homework.TeacherID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO homeworks (description, deadline, max_attempts, active, teacher_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRowContext(ctx, insertQuery,
		homework.Description,
		homework.Deadline,
		homework.MaxAttempts,
		homework.Active,
		homework.TeacherID,
	).Scan(&homework.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *homeworkRepository) GetByID(ctx context.Context, id int64) (*models.Homework, error) {
	query := `
		SELECT id, description, deadline, max_attempts, active, teacher_id
		FROM homeworks
		WHERE id = $1
	`

	return r.scanHomework(r.db.QueryRowContext(ctx, query, id))
}

func (r *homeworkRepository) GetActive(ctx context.Context) (*models.Homework, error) {
	query := `
		SELECT id, description, deadline, max_attempts, active, teacher_id
		FROM homeworks
		WHERE active = TRUE
		ORDER BY id DESC
		LIMIT 1
	`

	return r.scanHomework(r.db.QueryRowContext(ctx, query))
}

func (r *homeworkRepository) GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error) {
	query := `
		SELECT id, description, deadline, max_attempts, active, teacher_id
		FROM homeworks
		WHERE active = TRUE AND teacher_id = $1
		ORDER BY id DESC
		LIMIT 1
	`

	return r.scanHomework(r.db.QueryRowContext(ctx, query, teacherID))
}

func (r *homeworkRepository) GetAll(ctx context.Context) ([]models.Homework, error) {
	query := `
		SELECT id, description, deadline, max_attempts, active, teacher_id
		FROM homeworks
		ORDER BY deadline
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var homeworks []models.Homework
	for rows.Next() {
		var homework models.Homework
		err := rows.Scan(
			&homework.ID,
			&homework.Description,
			&homework.Deadline,
			&homework.MaxAttempts,
			&homework.Active,
			&homework.TeacherID,
		)
		if err != nil {
			return nil, err
		}
		homeworks = append(homeworks, homework)
	}

	return homeworks, rows.Err()
}

func (r *homeworkRepository) scanHomework(row *sql.Row) (*models.Homework, error) {
	homework := &models.Homework{}
	err := row.Scan(
		&homework.ID,
		&homework.Description,
		&homework.Deadline,
		&homework.MaxAttempts,
		&homework.Active,
		&homework.TeacherID,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return homework, err
}
