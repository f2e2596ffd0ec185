package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/service"
)

// handleDownloadCallback пересылает файлы решения, выбранного по кнопке.
func (b *Bot) handleDownloadCallback(ctx context.Context, query *tgbotapi.CallbackQuery, submissionID int64) {
	chatID := query.Message.Chat.ID

	submission, err := b.submissions.GetByID(ctx, submissionID)
	if errors.Is(err, service.ErrSubmissionNotFound) {
		b.reply(chatID, "Файл не найден.")
		b.answerCallback(query.ID, "Ошибка!")
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Int64("submission_id", submissionID).Msg("Failed to get submission")
		b.answerCallback(query.ID, "Ошибка!")
		return
	}

	b.sendSubmissionFiles(chatID, submission.FileIDs, submission.FileNames)
	b.answerCallback(query.ID, "Файл отправлен!")
}

// handleDownloadByName находит решение по имени файла из текста кнопки.
func (b *Bot) handleDownloadByName(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	fileName := strings.TrimPrefix(msg.Text, downloadPrefix)

	submission, err := b.submissions.FindByFileName(ctx, fileName)
	if errors.Is(err, service.ErrSubmissionNotFound) {
		b.reply(chatID, "Файл не найден.")
		return
	}
	if err != nil {
		b.logger.Error().Err(err).Str("file_name", fileName).Msg("Failed to find submission by file name")
		b.reply(chatID, msgDatabaseError)
		return
	}

	b.sendSubmissionFiles(chatID, submission.FileIDs, submission.FileNames)
	b.reply(chatID, "Файл успешно отправлен.")
}

func (b *Bot) sendSubmissionFiles(chatID int64, fileIDs, fileNames []string) {
	for i, fileID := range fileIDs {
		caption := ""
		if i < len(fileNames) {
			caption = fmt.Sprintf("Файл: %s", fileNames[i])
		}
		if err := b.gw.SendDocument(chatID, fileID, caption); err != nil {
			b.logger.Error().Err(err).Str("file_id", fileID).Msg("Failed to send document")
		}
	}
}
