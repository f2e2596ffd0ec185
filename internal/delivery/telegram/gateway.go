package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Gateway — транспорт чата. Обработчики работают только через этот
// интерфейс, поэтому в тестах бот поднимается на заглушке без сети.
type Gateway interface {
	SendMessage(chatID int64, text string, markup interface{}) error
	SendDocument(chatID int64, fileID, caption string) error
	AnswerCallback(callbackID, text string) error
	DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error)
}

type botGateway struct {
	api *tgbotapi.BotAPI
}

func NewBotGateway(api *tgbotapi.BotAPI) Gateway {
	return &botGateway{api: api}
}

func (g *botGateway) SendMessage(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	_, err := g.api.Send(msg)
	return err
}

func (g *botGateway) SendDocument(chatID int64, fileID, caption string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(fileID))
	doc.Caption = caption

	_, err := g.api.Send(doc)
	return err
}

func (g *botGateway) AnswerCallback(callbackID, text string) error {
	_, err := g.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

func (g *botGateway) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	file, err := g.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(g.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d while downloading file", resp.StatusCode)
	}

	return resp.Body, nil
}
