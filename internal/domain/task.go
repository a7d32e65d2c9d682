package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLength ограничивает длину описания задачи
const MaxDescriptionLength = 120

// TaskStatus — код статуса задачи в том виде, в котором он хранится и отдаётся клиенту.
type TaskStatus string

const (
	StatusActive    TaskStatus = "ACT"
	StatusOnHold    TaskStatus = "HOL"
	StatusCompleted TaskStatus = "COM"
)

// ParseTaskStatus принимает код (ACT, HOL, COM) или имя (ACTIVE, ON_HOLD, COMPLETED).
// Пустая строка означает статус по умолчанию.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ACT", "ACTIVE":
		return StatusActive, nil
	case "HOL", "ON_HOLD":
		return StatusOnHold, nil
	case "COM", "COMPLETED":
		return StatusCompleted, nil
	}
	return "", NewValidationError("task_status", `"`+s+`" is not a valid choice.`)
}

// Task представляет задачу пользователя,
// соответствует таблице tasks в бд
type Task struct {
	ID          int64      `db:"id" gorm:"primaryKey"`
	UserID      int64      `db:"user_id" gorm:"column:user_id"`
	Description string     `db:"description" gorm:"column:description"`
	CreatedAt   time.Time  `db:"created_at" gorm:"column:created_at"`
	DueAt       *time.Time `db:"due_at" gorm:"column:due_at"`
	Status      TaskStatus `db:"status" gorm:"column:status"`
}

func (Task) TableName() string {
	return "tasks"
}

// NewTaskInput — данные для создания задачи, владелец передаётся отдельно.
type NewTaskInput struct {
	Description string
	DueAt       *time.Time
	Status      string
}

// NormalizeDescription обрезает пробелы и проверяет длину описания.
func NormalizeDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", NewValidationError("task_description", "This field is required.")
	}
	if strings.ContainsRune(description, 0) {
		return "", NewValidationError("task_description", "Null characters are not allowed.")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return "", NewValidationError("task_description", "Ensure this field has no more than 120 characters.")
	}
	return description, nil
}

// dueLayouts — допустимые форматы срока выполнения, наивное время считается UTC.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseDueTime разбирает срок выполнения. Пустая строка означает отсутствие срока.
func ParseDueTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC().Truncate(time.Microsecond)
			return &t, nil
		}
	}
	return nil, NewValidationError("task_due_datetime", "Datetime has wrong format. Use ISO-8601.")
}
