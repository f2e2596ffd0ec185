package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/repository"
)

type StudentService interface {
	Register(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error)
	GetAll(ctx context.Context) ([]models.Student, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (s *studentService) Register(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid register student request: %w", err)
	}

	existing, err := s.studentRepo.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return existing, ErrAlreadyRegistered
	}

	student := &models.Student{
		TelegramID:  req.TelegramID,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("telegram_id", student.TelegramID).
		Msg("Student registered")

	return student, nil
}

func (s *studentService) GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error) {
	student, err := s.studentRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) GetAll(ctx context.Context) ([]models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}
	return students, nil
}
