package models

import "strings"

type Student struct {
	ID          int64  `json:"id" db:"id"`
	TelegramID  string `json:"telegram_id" db:"telegram_id"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
	FirstName   string `json:"first_name" db:"first_name"`
	LastName    string `json:"last_name" db:"last_name"`
	Username    string `json:"username,omitempty" db:"username"`
	TotalPoints int    `json:"total_points" db:"total_points"`
}

func (s *Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// SplitFullName разбивает введенное имя на имя и фамилию по первому пробелу.
// Если пробела нет, фамилия остается пустой.
func SplitFullName(fullName string) (firstName, lastName string) {
	fullName = strings.TrimSpace(fullName)
	if i := strings.IndexAny(fullName, " \t"); i >= 0 {
		return fullName[:i], strings.TrimSpace(fullName[i+1:])
	}
	return fullName, ""
}
