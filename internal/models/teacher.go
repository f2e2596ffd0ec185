package models

type Teacher struct {
	ID         int64  `json:"id" db:"id"`
	TelegramID string `json:"telegram_id" db:"telegram_id"`
	Name       string `json:"name" db:"name"`
}
