package telegram

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
)

// Заглушки транспорта, хранилища и сервисов для тестов обработчиков.

type sentMessage struct {
	chatID int64
	text   string
	markup interface{}
}

type sentDocument struct {
	chatID  int64
	fileID  string
	caption string
}

type fakeGateway struct {
	messages  []sentMessage
	documents []sentDocument
	answers   []string
	files     map[string]string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{files: make(map[string]string)}
}

func (g *fakeGateway) SendMessage(chatID int64, text string, markup interface{}) error {
	g.messages = append(g.messages, sentMessage{chatID: chatID, text: text, markup: markup})
	return nil
}

func (g *fakeGateway) SendDocument(chatID int64, fileID, caption string) error {
	g.documents = append(g.documents, sentDocument{chatID: chatID, fileID: fileID, caption: caption})
	return nil
}

func (g *fakeGateway) AnswerCallback(callbackID, text string) error {
	g.answers = append(g.answers, text)
	return nil
}

func (g *fakeGateway) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	content, ok := g.files[fileID]
	if !ok {
		content = "stub"
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (g *fakeGateway) lastMessage() string {
	if len(g.messages) == 0 {
		return ""
	}
	return g.messages[len(g.messages)-1].text
}

func (g *fakeGateway) hasMessage(text string) bool {
	for _, msg := range g.messages {
		if msg.text == text {
			return true
		}
	}
	return false
}

type memStorage struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{saved: make(map[string][]byte)}
}

func (s *memStorage) Save(ctx context.Context, name string, data io.Reader, size int64) error {
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[name] = content
	return nil
}

func (s *memStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(bytes.NewReader(s.saved[name])), nil
}

type stubTeacherService struct {
	teachers map[string]*models.Teacher
}

func newStubTeacherService() *stubTeacherService {
	return &stubTeacherService{teachers: make(map[string]*models.Teacher)}
}

func (s *stubTeacherService) Register(ctx context.Context, req *models.RegisterTeacherRequest) (*models.Teacher, error) {
	if existing, ok := s.teachers[req.TelegramID]; ok {
		return existing, service.ErrAlreadyRegistered
	}
	teacher := &models.Teacher{ID: int64(len(s.teachers) + 1), TelegramID: req.TelegramID, Name: req.Name}
	s.teachers[req.TelegramID] = teacher
	return teacher, nil
}

func (s *stubTeacherService) GetByTelegramID(ctx context.Context, telegramID string) (*models.Teacher, error) {
	return s.teachers[telegramID], nil
}

type stubStudentService struct {
	students map[string]*models.Student
}

func newStubStudentService() *stubStudentService {
	return &stubStudentService{students: make(map[string]*models.Student)}
}

func (s *stubStudentService) Register(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	if existing, ok := s.students[req.TelegramID]; ok {
		return existing, service.ErrAlreadyRegistered
	}
	student := &models.Student{
		ID:          int64(len(s.students) + 1),
		TelegramID:  req.TelegramID,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
	}
	s.students[req.TelegramID] = student
	return student, nil
}

func (s *stubStudentService) GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error) {
	return s.students[telegramID], nil
}

func (s *stubStudentService) GetAll(ctx context.Context) ([]models.Student, error) {
	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		students = append(students, *student)
	}
	return students, nil
}

type stubHomeworkService struct {
	active    *models.Homework
	homeworks []models.Homework
	createErr error
}

func (s *stubHomeworkService) Create(ctx context.Context, req *models.CreateHomeworkRequest) (*models.Homework, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if !req.Deadline.After(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)) {
		return nil, service.ErrDeadlineInPast
	}
	homework := &models.Homework{
		ID:          int64(len(s.homeworks) + 1),
		Description: req.Description,
		Deadline:    req.Deadline,
		MaxAttempts: models.DefaultMaxAttempts,
		Active:      true,
		TeacherID:   req.TeacherID,
	}
	s.active = homework
	s.homeworks = append(s.homeworks, *homework)
	return homework, nil
}

func (s *stubHomeworkService) GetActive(ctx context.Context) (*models.Homework, error) {
	return s.active, nil
}

func (s *stubHomeworkService) GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error) {
	if s.active != nil && s.active.TeacherID == teacherID {
		return s.active, nil
	}
	return nil, nil
}

func (s *stubHomeworkService) GetAll(ctx context.Context) ([]models.Homework, error) {
	return s.homeworks, nil
}

type stubSubmissionService struct {
	finalizeReqs   []*models.FinalizeSubmissionRequest
	finalizeResult *service.FinalizeResult
	finalizeErr    error
	gradeReqs      []*models.GradeSubmissionRequest
	gradeResult    *service.GradeResult
	gradeErr       error
	reviewResult   *service.ReviewOverview
	reviewErr      error
	submissions    map[int64]*models.Submission
}

func (s *stubSubmissionService) Finalize(ctx context.Context, req *models.FinalizeSubmissionRequest) (*service.FinalizeResult, error) {
	s.finalizeReqs = append(s.finalizeReqs, req)
	if s.finalizeErr != nil {
		return nil, s.finalizeErr
	}
	return s.finalizeResult, nil
}

func (s *stubSubmissionService) Review(ctx context.Context, teacherTelegramID string) (*service.ReviewOverview, error) {
	if s.reviewErr != nil {
		return nil, s.reviewErr
	}
	return s.reviewResult, nil
}

func (s *stubSubmissionService) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	submission, ok := s.submissions[id]
	if !ok {
		return nil, service.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *stubSubmissionService) FindByFileName(ctx context.Context, fileName string) (*models.Submission, error) {
	for _, submission := range s.submissions {
		for _, name := range submission.FileNames {
			if name == fileName {
				return submission, nil
			}
		}
	}
	return nil, service.ErrSubmissionNotFound
}

func (s *stubSubmissionService) Grade(ctx context.Context, req *models.GradeSubmissionRequest) (*service.GradeResult, error) {
	s.gradeReqs = append(s.gradeReqs, req)
	if s.gradeErr != nil {
		return nil, s.gradeErr
	}
	return s.gradeResult, nil
}

func (s *stubSubmissionService) ListByHomework(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error) {
	return nil, nil
}

type botFixture struct {
	bot         *Bot
	gw          *fakeGateway
	sessions    session.Store
	teachers    *stubTeacherService
	students    *stubStudentService
	homeworks   *stubHomeworkService
	submissions *stubSubmissionService
	storage     *memStorage
}

func newBotFixture(now time.Time) *botFixture {
	gw := newFakeGateway()
	sessions := session.NewMemoryStore()
	teachers := newStubTeacherService()
	students := newStubStudentService()
	homeworks := &stubHomeworkService{}
	submissions := &stubSubmissionService{submissions: make(map[int64]*models.Submission)}
	files := newMemStorage()

	bot := NewBot(gw, sessions, teachers, students, homeworks, submissions, files, zerolog.Nop())
	bot.now = func() time.Time { return now }

	return &botFixture{
		bot:         bot,
		gw:          gw,
		sessions:    sessions,
		teachers:    teachers,
		students:    students,
		homeworks:   homeworks,
		submissions: submissions,
		storage:     files,
	}
}
