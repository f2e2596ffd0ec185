package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/models"
	"github.com/rasulq/homework-bot/internal/service"
	"github.com/rasulq/homework-bot/internal/session"
	"github.com/rasulq/homework-bot/internal/storage"
)

// handleStartSubmission открывает сбор файлов: требуется активное задание,
// зарегистрированный студент и неистекший дедлайн.
func (b *Bot) handleStartSubmission(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	homework, student, ok := b.submissionPreconditions(ctx, msg)
	if !ok {
		return
	}

	b.sessions.Update(msg.From.ID, func(data *session.Data) {
		data.Phase = session.PhaseCollecting
		data.SubmissionInProgress = true
		data.FileIDs = nil
		data.FileNames = nil
	})

	b.logger.Info().
		Int64("homework_id", homework.ID).
		Int64("student_id", student.ID).
		Msg("Submission collection started")

	b.reply(chatID, "Отправьте файлы с решением в формате документа. Вы можете отправить несколько файлов.")
}

// handleDocument принимает очередной файл решения. Дедлайн и признак
// начатой отправки перепроверяются на каждом документе.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	doc := msg.Document

	homework, student, ok := b.submissionPreconditions(ctx, msg)
	if !ok {
		return
	}

	data := b.sessions.Get(msg.From.ID)
	if !data.SubmissionInProgress {
		b.reply(chatID, "Сначала начните отправку решения, нажав «Отправить решение».")
		return
	}

	// Файл сохраняется до изменения состояния диалога: при ошибке
	// сохранения список собранных файлов остается прежним.
	if err := b.storeDocument(ctx, student.ID, homework.ID, doc); err != nil {
		b.logger.Error().Err(err).Str("file_name", doc.FileName).Msg("Failed to store document")
		b.reply(chatID, "Ошибка при сохранении. Попробуйте позже.")
		return
	}

	b.sessions.Update(msg.From.ID, func(data *session.Data) {
		data.FileIDs = append(data.FileIDs, doc.FileID)
		data.FileNames = append(data.FileNames, doc.FileName)
	})

	b.reply(chatID, fmt.Sprintf(
		"Файл '%s' успешно загружен. Отправьте другие файлы или отправьте <%s> чтоб завершить процесс.",
		doc.FileName, btnFinishSubmission))
}

func (b *Bot) handleFinalizeSubmission(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	data := b.sessions.Get(msg.From.ID)
	if len(data.FileIDs) == 0 {
		b.reply(chatID, "Вы не загрузили ни одного файла.")
		return
	}

	result, err := b.submissions.Finalize(ctx, &models.FinalizeSubmissionRequest{
		StudentTelegramID: telegramID(msg.From.ID),
		FileIDs:           data.FileIDs,
		FileNames:         data.FileNames,
	})
	switch {
	case errors.Is(err, service.ErrNoActiveHomework):
		b.reply(chatID, "На данный момент нет активных домашних заданий.")
		return
	case errors.Is(err, service.ErrStudentNotFound):
		b.reply(chatID, msgNotStudent)
		return
	case errors.Is(err, service.ErrAttemptsExhausted):
		b.reply(chatID, "Вы использовали все попытки отправки.")
		return
	case err != nil:
		b.logger.Error().Err(err).Msg("Failed to finalize submission")
		b.reply(chatID, "Ошибка при сохранении. Попробуйте позже.")
		return
	}

	b.notifyTeacher(result)

	b.sessions.Clear(msg.From.ID)
	b.reply(chatID, "Ваше решение успешно отправлено и сохранено.")
}

// submissionPreconditions проверяет общие условия приема решения.
// При нарушении отвечает пользователю и возвращает ok=false.
func (b *Bot) submissionPreconditions(ctx context.Context, msg *tgbotapi.Message) (*models.Homework, *models.Student, bool) {
	chatID := msg.Chat.ID

	homework, err := b.homeworks.GetActive(ctx)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to get active homework")
		b.reply(chatID, "Ошибка при проверке домашнего задания. Попробуйте позже.")
		return nil, nil, false
	}
	if homework == nil {
		b.reply(chatID, "На данный момент нет активных домашних заданий.")
		return nil, nil, false
	}

	student, err := b.students.GetByTelegramID(ctx, telegramID(msg.From.ID))
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to look up student")
		b.reply(chatID, msgDatabaseError)
		return nil, nil, false
	}
	if student == nil {
		b.reply(chatID, msgNotStudent)
		return nil, nil, false
	}

	if homework.DeadlinePassed(b.now()) {
		b.reply(chatID, fmt.Sprintf(
			"Срок сдачи задания истек (%s). Вы не можете отправить решение.",
			homework.Deadline.Format(deadlineLayout)))
		return nil, nil, false
	}

	return homework, student, true
}

func (b *Bot) storeDocument(ctx context.Context, studentID, homeworkID int64, doc *tgbotapi.Document) error {
	body, err := b.gw.DownloadFile(ctx, doc.FileID)
	if err != nil {
		return err
	}
	defer body.Close()

	name := storage.ObjectName(studentID, homeworkID, doc.FileName)
	return b.files.Save(ctx, name, body, int64(doc.FileSize))
}

func (b *Bot) notifyTeacher(result *service.FinalizeResult) {
	if result.Teacher == nil {
		return
	}

	teacherChatID, err := strconv.ParseInt(result.Teacher.TelegramID, 10, 64)
	if err != nil {
		b.logger.Error().Err(err).Str("telegram_id", result.Teacher.TelegramID).Msg("Invalid teacher telegram id")
		return
	}

	text := fmt.Sprintf("Студент %s отправил решение по заданию «%s».",
		result.Student.FullName(), result.Homework.Description)

	if err := b.gw.SendMessage(teacherChatID, text, nil); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", teacherChatID).Msg("Failed to notify teacher")
	}
}
