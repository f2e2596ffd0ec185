package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rasulq/homework-bot/internal/models"
)

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		return
	}

	payload, err := models.ParseCallback(query.Data)
	if err != nil {
		b.logger.Warn().Err(err).Str("data", query.Data).Msg("Invalid callback payload")
		b.answerCallback(query.ID, "Ошибка обработки данных.")
		return
	}

	switch payload.Action {
	case models.ActionSelectSubmission:
		b.handleSelectSubmission(ctx, query, payload.ID)
	case models.ActionGradeSubmission:
		b.handleGradePrompt(query)
	case models.ActionDownload:
		b.handleDownloadCallback(ctx, query, payload.ID)
	}
}
