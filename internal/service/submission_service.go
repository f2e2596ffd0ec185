package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/repository"
	"github.com/rasulq/homework-bot/internal/service/integration"
)

// FinalizeResult содержит все стороны завершенной отправки: ее нужно
// показать студенту и разослать уведомление учителю задания.
type FinalizeResult struct {
	Submission *models.Submission
	Homework   *models.Homework
	Student    *models.Student
	Teacher    *models.Teacher
}

type GradeResult struct {
	Submission *models.Submission
	Student    *models.Student
	Homework   *models.Homework
}

// ReviewOverview — разбиение студентов на сдавших и не сдавших решение
// по активному заданию учителя, плюс сами отправки для выбора.
type ReviewOverview struct {
	Homework     *models.Homework
	Submitted    []models.Student
	NotSubmitted []models.Student
	Submissions  []models.SubmissionWithStudent
}

type SubmissionService interface {
	Finalize(ctx context.Context, req *models.FinalizeSubmissionRequest) (*FinalizeResult, error)
	Review(ctx context.Context, teacherTelegramID string) (*ReviewOverview, error)
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	FindByFileName(ctx context.Context, fileName string) (*models.Submission, error)
	Grade(ctx context.Context, req *models.GradeSubmissionRequest) (*GradeResult, error)
	ListByHomework(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	studentRepo    repository.StudentRepository
	teacherRepo    repository.TeacherRepository
	homeworkRepo   repository.HomeworkRepository
	events         integration.EventPublisher
	validate       *validator.Validate
	logger         zerolog.Logger
	now            func() time.Time
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	studentRepo repository.StudentRepository,
	teacherRepo repository.TeacherRepository,
	homeworkRepo repository.HomeworkRepository,
	events integration.EventPublisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		studentRepo:    studentRepo,
		teacherRepo:    teacherRepo,
		homeworkRepo:   homeworkRepo,
		events:         events,
		validate:       validator.New(),
		logger:         logger,
		now:            time.Now,
	}
}

func (s *submissionService) Finalize(ctx context.Context, req *models.FinalizeSubmissionRequest) (*FinalizeResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid finalize request: %w", err)
	}

	if len(req.FileIDs) == 0 || len(req.FileIDs) != len(req.FileNames) {
		return nil, ErrNoFiles
	}

	homework, err := s.homeworkRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active homework: %w", err)
	}
	if homework == nil {
		return nil, ErrNoActiveHomework
	}

	student, err := s.studentRepo.GetByTelegramID(ctx, req.StudentTelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	count, err := s.submissionRepo.CountByStudentAndHomework(ctx, student.ID, homework.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	if count >= homework.MaxAttempts {
		return nil, ErrAttemptsExhausted
	}

	submission := &models.Submission{
		StudentID:  student.ID,
		HomeworkID: homework.ID,
		FileIDs:    req.FileIDs,
		FileNames:  req.FileNames,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	teacher, err := s.teacherRepo.GetByID(ctx, homework.TeacherID)
	if err != nil {
		s.logger.Error().Err(err).Int64("teacher_id", homework.TeacherID).Msg("Failed to load homework teacher")
	}

	s.publishCreated(ctx, submission)

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("student_id", student.ID).
		Int64("homework_id", homework.ID).
		Int("files", len(submission.FileIDs)).
		Msg("Submission finalized")

	return &FinalizeResult{
		Submission: submission,
		Homework:   homework,
		Student:    student,
		Teacher:    teacher,
	}, nil
}

func (s *submissionService) Review(ctx context.Context, teacherTelegramID string) (*ReviewOverview, error) {
	teacher, err := s.teacherRepo.GetByTelegramID(ctx, teacherTelegramID)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, ErrTeacherNotFound
	}

	homework, err := s.homeworkRepo.GetActiveByTeacher(ctx, teacher.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active homework: %w", err)
	}
	if homework == nil {
		return nil, ErrNoActiveHomework
	}

	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get students: %w", err)
	}

	submissions, err := s.submissionRepo.GetByHomeworkID(ctx, homework.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}

	submittedIDs := make(map[int64]struct{}, len(submissions))
	for _, submission := range submissions {
		submittedIDs[submission.StudentID] = struct{}{}
	}

	overview := &ReviewOverview{
		Homework:    homework,
		Submissions: submissions,
	}
	for _, student := range students {
		if _, ok := submittedIDs[student.ID]; ok {
			overview.Submitted = append(overview.Submitted, student)
		} else {
			overview.NotSubmitted = append(overview.NotSubmitted, student)
		}
	}

	return overview, nil
}

func (s *submissionService) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *submissionService) FindByFileName(ctx context.Context, fileName string) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByFileName(ctx, fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}
	return submission, nil
}

// Grade записывает оценку и бонусные баллы, помечает отправку проверенной
// и корректирует накопленные баллы студента. Повторная проверка заменяет
// прежнюю оценку; баллы студента меняются на разницу бонусов.
func (s *submissionService) Grade(ctx context.Context, req *models.GradeSubmissionRequest) (*GradeResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid grade request: %w", err)
	}

	submission, err := s.submissionRepo.GetByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	bonus := BonusPoints(req.Grade)

	prevBonus := 0
	if submission.IsReviewed {
		prevBonus = submission.BonusPoints
	}

	if err := s.submissionRepo.SetGrade(ctx, submission.ID, req.Grade, bonus); err != nil {
		return nil, fmt.Errorf("failed to set grade: %w", err)
	}

	if delta := bonus - prevBonus; delta != 0 {
		if err := s.studentRepo.AddPoints(ctx, submission.StudentID, delta); err != nil {
			s.logger.Error().Err(err).Int64("student_id", submission.StudentID).Msg("Failed to update student points")
		}
	}

	grade := req.Grade
	submission.Grade = &grade
	submission.BonusPoints = bonus
	submission.IsReviewed = true

	student, err := s.studentRepo.GetByID(ctx, submission.StudentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("student_id", submission.StudentID).Msg("Failed to load graded student")
	}

	homework, err := s.homeworkRepo.GetByID(ctx, submission.HomeworkID)
	if err != nil {
		s.logger.Error().Err(err).Int64("homework_id", submission.HomeworkID).Msg("Failed to load graded homework")
	}

	s.publishGraded(ctx, submission)

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int("grade", req.Grade).
		Int("bonus_points", bonus).
		Msg("Submission graded")

	return &GradeResult{
		Submission: submission,
		Student:    student,
		Homework:   homework,
	}, nil
}

func (s *submissionService) ListByHomework(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error) {
	submissions, err := s.submissionRepo.GetByHomeworkID(ctx, homeworkID)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return submissions, nil
}

func (s *submissionService) publishCreated(ctx context.Context, submission *models.Submission) {
	if s.events == nil {
		return
	}

	event := &models.SubmissionCreatedEvent{
		EventID:      uuid.New().String(),
		SubmissionID: submission.ID,
		StudentID:    submission.StudentID,
		HomeworkID:   submission.HomeworkID,
		FileNames:    submission.FileNames,
		Timestamp:    s.now().Unix(),
	}

	if err := s.events.PublishSubmissionCreated(ctx, event); err != nil {
		s.logger.Error().Err(err).Msg("Failed to publish submission created event")
	}
}

func (s *submissionService) publishGraded(ctx context.Context, submission *models.Submission) {
	if s.events == nil {
		return
	}

	grade := 0
	if submission.Grade != nil {
		grade = *submission.Grade
	}

	event := &models.SubmissionGradedEvent{
		EventID:      uuid.New().String(),
		SubmissionID: submission.ID,
		StudentID:    submission.StudentID,
		HomeworkID:   submission.HomeworkID,
		Grade:        grade,
		BonusPoints:  submission.BonusPoints,
		Timestamp:    s.now().Unix(),
	}

	if err := s.events.PublishSubmissionGraded(ctx, event); err != nil {
		s.logger.Error().Err(err).Msg("Failed to publish submission graded event")
	}
}
