package usecase

import (
	"errors"
	"fmt"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher хэширует и проверяет пароли
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
	// CompareDummy тратит столько же времени, сколько Compare, и всегда возвращает false.
	// Используется, когда пользователь не найден.
	CompareDummy(password string)
}

// BcryptHasher реализует PasswordHasher поверх bcrypt
type BcryptHasher struct {
	cost  int
	dummy []byte
}

// NewBcryptHasher создаёт хэшер с заданной стоимостью.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("dummy-password"), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}
	return &BcryptHasher{cost: cost, dummy: dummy}, nil
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password", "Ensure this field has no more than 72 bytes.")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// maxPasswordBytes — bcrypt не учитывает байты после 72-го
const maxPasswordBytes = 72

func (h *BcryptHasher) Compare(hash, password string) bool {
	if len(password) > maxPasswordBytes {
		h.CompareDummy(password[:maxPasswordBytes])
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *BcryptHasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
