package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/config"
	"github.com/rasulq/homework-bot/internal/delivery/httpd"
	"github.com/rasulq/homework-bot/internal/delivery/telegram"
	"github.com/rasulq/homework-bot/internal/repository"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/service/integration"
	"github.com/rasulq/homework-bot/internal/session"
	"github.com/rasulq/homework-bot/internal/storage"
)

type App struct {
	server *http.Server
	api    *tgbotapi.BotAPI
	bot    *telegram.Bot
	events integration.EventPublisher
	logger zerolog.Logger
	config *config.Config
	db     *sql.DB
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	// Хранилище файлов решений
	files, err := storage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	events, err := integration.NewRabbitMQPublisher(cfg.RabbitMQ, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ publisher")
		// Продолжаем без RabbitMQ, это допустимо для разработки
		events = nil
	}

	// Создаем репозитории
	teacherRepo := repository.NewTeacherRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	homeworkRepo := repository.NewHomeworkRepository(db, log)
	submissionRepo := repository.NewSubmissionRepository(db, log)

	// Создаем сервисы
	teacherService := service.NewTeacherService(teacherRepo, log)
	studentService := service.NewStudentService(studentRepo, log)
	homeworkService := service.NewHomeworkService(homeworkRepo, log)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		studentRepo,
		teacherRepo,
		homeworkRepo,
		events,
		log,
	)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}
	api.Debug = cfg.Telegram.Debug

	bot := telegram.NewBot(
		telegram.NewBotGateway(api),
		session.NewMemoryStore(),
		teacherService,
		studentService,
		homeworkService,
		submissionService,
		files,
		log,
	)

	handler := httpd.NewHandler(homeworkService, studentService, submissionService, log)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server: server,
		api:    api,
		bot:    bot,
		events: events,
		logger: log,
		config: cfg,
		db:     db,
	}, nil
}

// Run запускает цикл обновлений бота и HTTP сервер. Блокируется до
// остановки сервера.
func (a *App) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = a.config.Telegram.PollTimeout

	updates := a.api.GetUpdatesChan(updateConfig)
	go a.bot.Run(ctx, updates)

	a.logger.Info().
		Str("address", a.config.Server.Address).
		Str("bot", a.api.Self.UserName).
		Msg("Starting homework bot")

	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down homework bot...")

	a.api.StopReceivingUpdates()

	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
