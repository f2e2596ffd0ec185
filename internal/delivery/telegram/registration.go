package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
)

// handleStart встречает пользователя по роли; незнакомцу запускает
// регистрацию студента с запроса номера телефона.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := telegramID(msg.From.ID)

	teacher, err := b.teachers.GetByTelegramID(ctx, tgID)
	if err != nil {
		b.logger.Error().Err(err).Str("telegram_id", tgID).Msg("Failed to look up teacher")
		b.reply(chatID, msgDatabaseError)
		return
	}
	if teacher != nil {
		b.replyMarkup(chatID, "Добро пожаловать, учитель!", teacherMenu)
		return
	}

	student, err := b.students.GetByTelegramID(ctx, tgID)
	if err != nil {
		b.logger.Error().Err(err).Str("telegram_id", tgID).Msg("Failed to look up student")
		b.reply(chatID, msgDatabaseError)
		return
	}
	if student != nil {
		b.replyMarkup(chatID, "Привет! Вы можете посмотреть или сдать домашнее задание.", studentMenu)
		return
	}

	b.replyMarkup(chatID, "Пожалуйста, отправьте ваш номер телефона.", requestPhoneMenu)
	b.sessions.SetPhase(msg.From.ID, session.PhaseAwaitingPhone)
}

// handlePhoneNumber принимает только контакт самого отправителя.
func (b *Bot) handlePhoneNumber(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Contact == nil || msg.Contact.UserID != msg.From.ID {
		b.reply(chatID, "Пожалуйста, используйте кнопку для отправки номера телефона.")
		return
	}

	phone := msg.Contact.PhoneNumber
	b.sessions.Update(msg.From.ID, func(data *session.Data) {
		data.PhoneNumber = phone
		data.Phase = session.PhaseAwaitingName
	})

	b.replyMarkup(chatID, "Спасибо! Теперь отправьте ваше имя и фамилию (например, Иван Иванов).",
		tgbotapi.NewRemoveKeyboard(false))
}

func (b *Bot) handleFullName(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	firstName, lastName := models.SplitFullName(msg.Text)
	if firstName == "" {
		b.reply(chatID, "Пожалуйста, отправьте ваше имя и фамилию (например, Иван Иванов).")
		return
	}

	data := b.sessions.Get(msg.From.ID)

	student, err := b.students.Register(ctx, &models.RegisterStudentRequest{
		TelegramID:  telegramID(msg.From.ID),
		PhoneNumber: data.PhoneNumber,
		FirstName:   firstName,
		LastName:    lastName,
		Username:    msg.From.UserName,
	})
	if errors.Is(err, service.ErrAlreadyRegistered) {
		b.sessions.Clear(msg.From.ID)
		b.replyMarkup(chatID, "Вы уже зарегистрированы как студент!", studentMenu)
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to register student")
		b.reply(chatID, msgDatabaseError)
		return
	}

	b.sessions.Clear(msg.From.ID)
	b.replyMarkup(chatID, "Регистрация завершена! Вы можете посмотреть или сдать домашнее задание.", studentMenu)

	b.logger.Info().
		Int64("student_id", student.ID).
		Str("telegram_id", student.TelegramID).
		Msg("Student registration completed")
}

func (b *Bot) handleRegisterTeacher(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	name := strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	if name == "" {
		name = "Unknown"
	}

	_, err := b.teachers.Register(ctx, &models.RegisterTeacherRequest{
		TelegramID: telegramID(msg.From.ID),
		Name:       name,
	})
	if errors.Is(err, service.ErrAlreadyRegistered) {
		b.replyMarkup(chatID, "Вы уже зарегистрированы как учитель!", teacherMenu)
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to register teacher")
		b.reply(chatID, "Ошибка при регистрации. Попробуйте позже.")
		return
	}

	b.replyMarkup(chatID, "Вы успешно зарегистрированы как учитель!", teacherMenu)
}
