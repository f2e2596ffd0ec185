package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/repository"
)

type HomeworkService interface {
	Create(ctx context.Context, req *models.CreateHomeworkRequest) (*models.Homework, error)
	GetActive(ctx context.Context) (*models.Homework, error)
	GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error)
	GetAll(ctx context.Context) ([]models.Homework, error)
}

type homeworkService struct {
	homeworkRepo repository.HomeworkRepository
	validate     *validator.Validate
	logger       zerolog.Logger
	now          func() time.Time
}

func NewHomeworkService(homeworkRepo repository.HomeworkRepository, logger zerolog.Logger) HomeworkService {
	return &homeworkService{
		homeworkRepo: homeworkRepo,
		validate:     validator.New(),
		logger:       logger,
		now:          time.Now,
	}
}

func (s *homeworkService) Create(ctx context.Context, req *models.CreateHomeworkRequest) (*models.Homework, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid create homework request: %w", err)
	}

	if !req.Deadline.After(s.now()) {
		return nil, ErrDeadlineInPast
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = models.DefaultMaxAttempts
	}

	homework := &models.Homework{
		Description: req.Description,
		Deadline:    req.Deadline,
		MaxAttempts: maxAttempts,
		Active:      true,
		TeacherID:   req.TeacherID,
	}

	if err := s.homeworkRepo.Create(ctx, homework); err != nil {
		return nil, fmt.Errorf("failed to create homework: %w", err)
	}

	s.logger.Info().
		Int64("homework_id", homework.ID).
		Int64("teacher_id", homework.TeacherID).
		Time("deadline", homework.Deadline).
		Msg("Homework created")

	return homework, nil
}

func (s *homeworkService) GetActive(ctx context.Context) (*models.Homework, error) {
	homework, err := s.homeworkRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active homework: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error) {
	homework, err := s.homeworkRepo.GetActiveByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active homework: %w", err)
	}
	return homework, nil
}

func (s *homeworkService) GetAll(ctx context.Context) ([]models.Homework, error) {
	homeworks, err := s.homeworkRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get homeworks: %w", err)
	}
	return homeworks, nil
}
