package telegram

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
	"github.com/rasulq/homework-bot/internal/storage"
)

const (
	msgDatabaseError = "Ошибка базы данных. Попробуйте позже."
	msgNotTeacher    = "Вы не зарегистрированы как учитель."
	msgNotStudent    = "Вы не зарегистрированы как студент."
)

var numericPattern = regexp.MustCompile(`^\d+$`)

// Bot — конечный автомат диалога: входящее событие классифицируется по
// текущей фазе пользователя и содержимому сообщения, после чего попадает
// в обработчик соответствующего сценария.
type Bot struct {
	gw          Gateway
	sessions    session.Store
	teachers    service.TeacherService
	students    service.StudentService
	homeworks   service.HomeworkService
	submissions service.SubmissionService
	files       storage.Storage
	logger      zerolog.Logger
	now         func() time.Time
}

func NewBot(
	gw Gateway,
	sessions session.Store,
	teachers service.TeacherService,
	students service.StudentService,
	homeworks service.HomeworkService,
	submissions service.SubmissionService,
	files storage.Storage,
	logger zerolog.Logger,
) *Bot {
	return &Bot{
		gw:          gw,
		sessions:    sessions,
		teachers:    teachers,
		students:    students,
		homeworks:   homeworks,
		submissions: submissions,
		files:       files,
		logger:      logger,
		now:         time.Now,
	}
}

// Run обрабатывает обновления по одному, в порядке поступления.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	userID := msg.From.ID

	if msg.IsCommand() && msg.Command() == "start" {
		b.handleStart(ctx, msg)
		return
	}

	switch b.sessions.Get(userID).Phase {
	case session.PhaseAwaitingPhone:
		b.handlePhoneNumber(ctx, msg)
		return
	case session.PhaseAwaitingName:
		b.handleFullName(ctx, msg)
		return
	case session.PhaseAwaitingDescription:
		b.handleDescription(ctx, msg)
		return
	case session.PhaseAwaitingDeadline:
		b.handleDeadline(ctx, msg)
		return
	}

	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}

	switch msg.Text {
	case btnRegisterTeacher:
		b.handleRegisterTeacher(ctx, msg)
	case btnCreateHomework:
		b.handleCreateHomework(ctx, msg)
	case btnViewHomework:
		b.handleViewHomework(ctx, msg)
	case btnReviewHomework:
		b.handleReviewSubmissions(ctx, msg)
	case btnSubmitSolution:
		b.handleStartSubmission(ctx, msg)
	case btnFinishSubmission:
		b.handleFinalizeSubmission(ctx, msg)
	default:
		switch {
		case numericPattern.MatchString(msg.Text):
			b.handleGrade(ctx, msg)
		case strings.HasPrefix(msg.Text, downloadPrefix):
			b.handleDownloadByName(ctx, msg)
		}
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.replyMarkup(chatID, text, nil)
}

func (b *Bot) replyMarkup(chatID int64, text string, markup interface{}) {
	if err := b.gw.SendMessage(chatID, text, markup); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) answerCallback(callbackID, text string) {
	if err := b.gw.AnswerCallback(callbackID, text); err != nil {
		b.logger.Error().Err(err).Msg("Failed to answer callback")
	}
}

func telegramID(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
