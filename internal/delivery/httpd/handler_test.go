package httpd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
)

type stubHomeworkService struct {
	homeworks []models.Homework
	active    *models.Homework
}

func (s *stubHomeworkService) Create(ctx context.Context, req *models.CreateHomeworkRequest) (*models.Homework, error) {
	return nil, nil
}

func (s *stubHomeworkService) GetActive(ctx context.Context) (*models.Homework, error) {
	return s.active, nil
}

func (s *stubHomeworkService) GetActiveByTeacher(ctx context.Context, teacherID int64) (*models.Homework, error) {
	return s.active, nil
}

func (s *stubHomeworkService) GetAll(ctx context.Context) ([]models.Homework, error) {
	return s.homeworks, nil
}

type stubStudentService struct {
	students []models.Student
}

func (s *stubStudentService) Register(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	return nil, nil
}

func (s *stubStudentService) GetByTelegramID(ctx context.Context, telegramID string) (*models.Student, error) {
	return nil, nil
}

func (s *stubStudentService) GetAll(ctx context.Context) ([]models.Student, error) {
	return s.students, nil
}

type stubSubmissionService struct {
	submissions []models.SubmissionWithStudent
}

func (s *stubSubmissionService) Finalize(ctx context.Context, req *models.FinalizeSubmissionRequest) (*service.FinalizeResult, error) {
	return nil, nil
}

func (s *stubSubmissionService) Review(ctx context.Context, teacherTelegramID string) (*service.ReviewOverview, error) {
	return nil, nil
}

func (s *stubSubmissionService) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	return nil, nil
}

func (s *stubSubmissionService) FindByFileName(ctx context.Context, fileName string) (*models.Submission, error) {
	return nil, nil
}

func (s *stubSubmissionService) Grade(ctx context.Context, req *models.GradeSubmissionRequest) (*service.GradeResult, error) {
	return nil, nil
}

func (s *stubSubmissionService) ListByHomework(ctx context.Context, homeworkID int64) ([]models.SubmissionWithStudent, error) {
	return s.submissions, nil
}

func newTestRouter(homeworks *stubHomeworkService, students *stubStudentService, submissions *stubSubmissionService) chi.Router {
	handler := NewHandler(homeworks, students, submissions, zerolog.Nop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(&stubHomeworkService{}, &stubStudentService{}, &stubSubmissionService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v, want healthy", body["status"])
	}
}

func TestGetAllHomeworks(t *testing.T) {
	homeworks := &stubHomeworkService{
		homeworks: []models.Homework{
			{ID: 1, Description: "Первое задание", Deadline: time.Now().Add(time.Hour)},
			{ID: 2, Description: "Второе задание", Deadline: time.Now().Add(2 * time.Hour), Active: true},
		},
	}
	router := newTestRouter(homeworks, &stubStudentService{}, &stubSubmissionService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/homeworks/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data.Total != 2 {
		t.Errorf("body = %+v, want success with total 2", body)
	}
}

func TestGetActiveHomework(t *testing.T) {
	t.Run("active exists", func(t *testing.T) {
		homeworks := &stubHomeworkService{
			active: &models.Homework{ID: 2, Description: "Второе задание", Active: true},
		}
		router := newTestRouter(homeworks, &stubStudentService{}, &stubSubmissionService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/homeworks/active", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("no active homework", func(t *testing.T) {
		router := newTestRouter(&stubHomeworkService{}, &stubStudentService{}, &stubSubmissionService{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/homeworks/active", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestGetHomeworkSubmissions(t *testing.T) {
	submissions := &stubSubmissionService{
		submissions: []models.SubmissionWithStudent{
			{
				Submission:       models.Submission{ID: 5, HomeworkID: 3, FileNames: []string{"a.pdf"}},
				StudentFirstName: "Ivan",
				StudentLastName:  "Petrov",
			},
		},
	}
	router := newTestRouter(&stubHomeworkService{}, &stubStudentService{}, submissions)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/homeworks/3/submissions", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/homeworks/abc/submissions", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status for bad id = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
