package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const (
	btnCreateHomework   = "Создать домашнее задание"
	btnReviewHomework   = "Проверить домашки"
	btnViewHomework     = "Посмотреть домашнее задание"
	btnSubmitSolution   = "Отправить решение"
	btnFinishSubmission = "Завершить отправку"
	btnSendPhone        = "Отправить номер телефона"
	btnRegisterTeacher  = "Регистрация учителя"
	btnGrade            = "Оценить"

	downloadPrefix = "Скачать "
)

var teacherMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnCreateHomework)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnReviewHomework)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnViewHomework)),
)

var studentMenu = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnViewHomework)),
	tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(btnSubmitSolution)),
)

var requestPhoneMenu = tgbotapi.ReplyKeyboardMarkup{
	Keyboard: [][]tgbotapi.KeyboardButton{
		{tgbotapi.NewKeyboardButtonContact(btnSendPhone)},
	},
	ResizeKeyboard:  true,
	OneTimeKeyboard: true,
}
