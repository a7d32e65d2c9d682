package domain

import "errors"

// Ошибки предметной области. Хранилища и usecase-слой оборачивают их через %w,
// обработчики HTTP сопоставляют их со статусами через errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrNotFound           = errors.New("not found")
)

// ValidationError описывает некорректное или отсутствующее поле запроса.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is позволяет проверять ошибку через errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError создаёт ошибку валидации для поля.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
