package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
)

// handleReviewSubmissions показывает учителю сводку по активному заданию:
// кто сдал, кто нет, и кнопки для выбора решения на проверку.
func (b *Bot) handleReviewSubmissions(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	overview, err := b.submissions.Review(ctx, telegramID(msg.From.ID))
	switch {
	case errors.Is(err, service.ErrTeacherNotFound):
		b.reply(chatID, msgNotTeacher)
		return
	case errors.Is(err, service.ErrNoActiveHomework):
		b.reply(chatID, "Нет активных домашних заданий для проверки.")
		return
	case err != nil:
		b.logger.Error().Err(err).Msg("Failed to build review overview")
		b.reply(chatID, "Ошибка при получении данных. Попробуйте позже.")
		return
	}

	b.reply(chatID, fmt.Sprintf("Студенты, отправившие решения:\n%s\n\nСтуденты, не отправившие решения:\n%s",
		studentList(overview.Submitted), studentList(overview.NotSubmitted)))

	if len(overview.Submissions) == 0 {
		b.reply(chatID, "Для этого задания еще нет отправленных решений.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(overview.Submissions))
	for i := range overview.Submissions {
		submission := &overview.Submissions[i]
		payload := models.CallbackPayload{Action: models.ActionSelectSubmission, ID: submission.ID}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s (от %s)", strings.Join(submission.FileNames, ", "), submission.StudentName()),
				payload.Encode(),
			),
		))
	}

	b.replyMarkup(chatID, "Выберите файл для скачивания:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// handleSelectSubmission запоминает выбранное решение и присылает его файлы.
func (b *Bot) handleSelectSubmission(ctx context.Context, query *tgbotapi.CallbackQuery, submissionID int64) {
	chatID := query.Message.Chat.ID

	submission, err := b.submissions.GetByID(ctx, submissionID)
	if errors.Is(err, service.ErrSubmissionNotFound) {
		b.answerCallback(query.ID, "Решение не найдено.")
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Int64("submission_id", submissionID).Msg("Failed to get submission")
		b.answerCallback(query.ID, "Ошибка!")
		return
	}

	b.sessions.Update(query.From.ID, func(data *session.Data) {
		data.SelectedSubmissionID = submission.ID
	})

	b.sendSubmissionFiles(chatID, submission.FileIDs, submission.FileNames)

	gradePayload := models.CallbackPayload{Action: models.ActionGradeSubmission}
	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btnGrade, gradePayload.Encode()),
		),
	)

	b.replyMarkup(chatID,
		fmt.Sprintf("Вы выбрали решение #%d. Нажмите на кнопку ниже, чтобы оценить.", submission.ID),
		markup)
	b.answerCallback(query.ID, "")
}

func (b *Bot) handleGradePrompt(query *tgbotapi.CallbackQuery) {
	data := b.sessions.Get(query.From.ID)
	if data.SelectedSubmissionID == 0 {
		b.answerCallback(query.ID, "Сначала выберите решение для оценки.")
		return
	}

	b.reply(query.Message.Chat.ID, "Введите оценку.")
	b.answerCallback(query.ID, "")
}

// handleGrade принимает числовое сообщение учителя как оценку для
// ранее выбранного решения.
func (b *Bot) handleGrade(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	data := b.sessions.Get(msg.From.ID)
	if data.SelectedSubmissionID == 0 {
		b.reply(chatID, "Сначала выберите решение для оценки.")
		return
	}

	grade, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil {
		b.reply(chatID, "Оценка должна быть числом.")
		return
	}

	result, err := b.submissions.Grade(ctx, &models.GradeSubmissionRequest{
		SubmissionID: data.SelectedSubmissionID,
		Grade:        grade,
	})
	if errors.Is(err, service.ErrSubmissionNotFound) {
		b.reply(chatID, "Решение не найдено.")
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Int64("submission_id", data.SelectedSubmissionID).Msg("Failed to grade submission")
		b.reply(chatID, msgDatabaseError)
		return
	}

	b.sessions.Update(msg.From.ID, func(data *session.Data) {
		data.SelectedSubmissionID = 0
	})

	b.reply(chatID, fmt.Sprintf("Решение #%d оценено на %d баллов и начислено %d бонусных баллов.",
		result.Submission.ID, grade, result.Submission.BonusPoints))

	b.notifyStudentGraded(result)
}

func (b *Bot) notifyStudentGraded(result *service.GradeResult) {
	if result.Student == nil || result.Homework == nil {
		return
	}

	studentChatID, err := strconv.ParseInt(result.Student.TelegramID, 10, 64)
	if err != nil {
		b.logger.Error().Err(err).Str("telegram_id", result.Student.TelegramID).Msg("Invalid student telegram id")
		return
	}

	grade := 0
	if result.Submission.Grade != nil {
		grade = *result.Submission.Grade
	}

	text := fmt.Sprintf("Ваше решение по заданию «%s» оценено на %d. Бонусные баллы: %d.",
		result.Homework.Description, grade, result.Submission.BonusPoints)

	if err := b.gw.SendMessage(studentChatID, text, nil); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", studentChatID).Msg("Failed to notify student")
	}
}

func studentList(students []models.Student) string {
	if len(students) == 0 {
		return "—"
	}

	lines := make([]string, 0, len(students))
	for i := range students {
		lines = append(lines, students[i].FullName())
	}
	return strings.Join(lines, "\n")
}
