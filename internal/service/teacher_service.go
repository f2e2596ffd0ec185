package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/repository"
)

type TeacherService interface {
	Register(ctx context.Context, req *models.RegisterTeacherRequest) (*models.Teacher, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error)
}

type teacherService struct {
	teacherRepo repository.TeacherRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewTeacherService(teacherRepo repository.TeacherRepository, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teacherRepo: teacherRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (s *teacherService) Register(ctx context.Context, req *models.RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid register teacher request: %w", err)
	}

	existing, err := s.teacherRepo.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing teacher: %w", err)
	}
	if existing != nil {
		return existing, ErrAlreadyRegistered
	}

	teacher := &models.Teacher{
		TelegramID: req.TelegramID,
		Name:       req.Name,
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}

	s.logger.Info().
		Int64("teacher_id", teacher.ID).
		Str("telegram_id", teacher.TelegramID).
		Msg("Teacher registered")

	return teacher, nil
}

func (s *teacherService) GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	return teacher, nil
}
