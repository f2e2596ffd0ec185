package httpd

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/pkg/utils"
)

// Handler — служебный HTTP API для наблюдения за заданиями и отправками.
// Только чтение: все изменения проходят через бота.
type Handler struct {
	homeworkService   service.HomeworkService
	studentService    service.StudentService
	submissionService service.SubmissionService
	logger            zerolog.Logger
}

func NewHandler(
	homeworkService service.HomeworkService,
	studentService service.StudentService,
	submissionService service.SubmissionService,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		homeworkService:   homeworkService,
		studentService:    studentService,
		submissionService: submissionService,
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/homeworks", func(r chi.Router) {
			r.Get("/", h.GetAllHomeworks)
			r.Get("/active", h.GetActiveHomework)
			r.Get("/{id}/submissions", h.GetHomeworkSubmissions)
		})

		api.Get("/students", h.GetAllStudents)
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "homework-bot",
		"timestamp": time.Now().UTC(),
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) GetAllHomeworks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	homeworks, err := h.homeworkService.GetAll(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get homeworks")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to get homeworks")
		return
	}

	utils.SuccessResponse(w, map[string]interface{}{
		"homeworks": homeworks,
		"total":     len(homeworks),
	})
}

func (h *Handler) GetActiveHomework(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	homework, err := h.homeworkService.GetActive(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get active homework")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to get active homework")
		return
	}

	if homework == nil {
		utils.ErrorResponse(w, http.StatusNotFound, "No active homework")
		return
	}

	utils.SuccessResponse(w, homework)
}

func (h *Handler) GetHomeworkSubmissions(w http.ResponseWriter, r *http.Request) {
	homeworkID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid homework ID")
		return
	}

	ctx := r.Context()
	submissions, err := h.submissionService.ListByHomework(ctx, homeworkID)
	if err != nil {
		h.logger.Error().Err(err).Int64("homework_id", homeworkID).Msg("Failed to get submissions")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to get submissions")
		return
	}

	utils.SuccessResponse(w, map[string]interface{}{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	students, err := h.studentService.GetAll(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get students")
		utils.ErrorResponse(w, http.StatusInternalServerError, "Failed to get students")
		return
	}

	utils.SuccessResponse(w, map[string]interface{}{
		"students": students,
		"total":    len(students),
	})
}
