package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
)

const deadlineLayout = "2006-01-02 15:04"

func parseDeadline(text string) (time.Time, error) {
	return time.ParseInLocation(deadlineLayout, strings.TrimSpace(text), time.Local)
}

func (b *Bot) handleCreateHomework(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	teacher, err := b.teachers.GetByTelegramID(ctx, telegramID(msg.From.ID))
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to look up teacher")
		b.reply(chatID, msgDatabaseError)
		return
	}
	if teacher == nil {
		b.reply(chatID, msgNotTeacher)
		return
	}

	b.sessions.SetPhase(msg.From.ID, session.PhaseAwaitingDescription)
	b.reply(chatID, "Введите описание домашнего задания:")
}

func (b *Bot) handleDescription(ctx context.Context, msg *tgbotapi.Message) {
	description := msg.Text
	b.sessions.Update(msg.From.ID, func(data *session.Data) {
		data.Description = description
		data.Phase = session.PhaseAwaitingDeadline
	})

	b.reply(msg.Chat.ID, "Теперь укажите дедлайн для домашнего задания (в формате: YYYY-MM-DD HH:MM):")
}

// handleDeadline завершает создание задания. Нераспознанная дата и дата в
// прошлом оставляют пользователя в той же фазе для повторного ввода.
func (b *Bot) handleDeadline(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	deadline, err := parseDeadline(msg.Text)
	if err != nil {
		b.reply(chatID, "Некорректный формат даты. Укажите дату в формате: YYYY-MM-DD HH:MM")
		return
	}

	teacher, err := b.teachers.GetByTelegramID(ctx, telegramID(msg.From.ID))
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to look up teacher")
		b.reply(chatID, msgDatabaseError)
		return
	}
	if teacher == nil {
		b.sessions.Clear(msg.From.ID)
		b.reply(chatID, msgNotTeacher)
		return
	}

	data := b.sessions.Get(msg.From.ID)

	homework, err := b.homeworks.Create(ctx, &models.CreateHomeworkRequest{
		TeacherID:   teacher.ID,
		Description: data.Description,
		Deadline:    deadline,
	})
	if errors.Is(err, service.ErrDeadlineInPast) {
		b.reply(chatID, "Дедлайн должен быть в будущем. Попробуйте снова:")
		return
	}
	if err != nil {
		// Состояние диалога сохраняется: учитель может повторить ввод дедлайна.
		b.logger.Error().Err(err).Msg("Failed to create homework")
		b.reply(chatID, "Ошибка при создании задания. Попробуйте позже.")
		return
	}

	b.sessions.Clear(msg.From.ID)
	b.replyMarkup(chatID, "Домашнее задание успешно создано!", teacherMenu)

	b.logger.Info().
		Int64("homework_id", homework.ID).
		Int64("teacher_id", teacher.ID).
		Msg("Homework created via bot")
}

func (b *Bot) handleViewHomework(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	homeworks, err := b.homeworks.GetAll(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to get homeworks")
		b.reply(chatID, "Ошибка при получении данных. Попробуйте позже.")
		return
	}

	if len(homeworks) == 0 {
		b.reply(chatID, "На данный момент нет активных домашних заданий.")
		return
	}

	lines := make([]string, 0, len(homeworks))
	for _, homework := range homeworks {
		lines = append(lines, fmt.Sprintf("Описание: %s, Срок сдачи: %s",
			homework.Description, homework.Deadline.Format(deadlineLayout)))
	}

	b.reply(chatID, "Домашние задания:\n"+strings.Join(lines, "\n"))
}
