package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxUsernameLength ограничивает длину имени пользователя
const MaxUsernameLength = 150

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           int64     `json:"id" db:"id" gorm:"primaryKey"`
	Username     string    `json:"username" db:"username" gorm:"column:username"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"column:password_hash"`
	CreatedAt    time.Time `json:"-" db:"created_at" gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeUsername обрезает пробелы и проверяет имя пользователя.
func NormalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", NewValidationError("username", "This field is required.")
	}
	if strings.ContainsRune(username, 0) {
		return "", NewValidationError("username", "Null characters are not allowed.")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return "", NewValidationError("username", "Ensure this field has no more than 150 characters.")
	}
	return username, nil
}

// ValidatePassword проверяет, что пароль передан.
func ValidatePassword(password string) error {
	if password == "" {
		return NewValidationError("password", "This field is required.")
	}
	return nil
}
