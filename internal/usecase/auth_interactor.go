package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	users  ports.UserStorage
	tokens ports.TokenStorage
	hasher PasswordHasher
	newKey KeyGenerator
	logger *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase
func NewAuthUseCase(
	users ports.UserStorage,
	tokens ports.TokenStorage,
	hasher PasswordHasher,
	newKey KeyGenerator,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		users:  users,
		tokens: tokens,
		hasher: hasher,
		newKey: newKey,
		logger: logger,
	}
}

// Authenticate не различает "нет такого пользователя" и "неверный пароль".
func (uc *authUseCase) Authenticate(ctx context.Context, username, password string) (*domain.Token, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.NewValidationError("", `Must include "username" and "password".`)
	}

	user, err := uc.users.GetUserByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		uc.hasher.CompareDummy(password)
		uc.logger.Info("login failed", "reason", "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске пользователя: %w", err)
	}

	if !uc.hasher.Compare(user.PasswordHash, password) {
		uc.logger.Info("login failed", "reason", "invalid credentials")
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.IssueOrGetToken(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("login succeeded", "user_id", user.ID)
	return token, nil
}

// IssueOrGetToken идемпотентен: повторный вызов возвращает тот же ключ
func (uc *authUseCase) IssueOrGetToken(ctx context.Context, user *domain.User) (*domain.Token, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	key, err := uc.newKey()
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}
	token, err := uc.tokens.GetOrCreateToken(ctx, user.ID, key)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при выдаче токена пользователю %d: %w", user.ID, err)
	}
	return token, nil
}

// ResolveToken находит пользователя по ключу токена
func (uc *authUseCase) ResolveToken(ctx context.Context, key string) (*domain.User, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.tokens.GetUserByToken(ctx, key)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при проверке токена: %w", err)
	}
	return user, nil
}
