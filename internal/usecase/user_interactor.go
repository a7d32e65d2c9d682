package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// userUseCase implements UserUseCase
type userUseCase struct {
	users  ports.UserStorage
	hasher PasswordHasher
	newKey KeyGenerator
	logger *slog.Logger
	now    func() time.Time
}

// NewUserUseCase создает новый экземпляр UserUseCase
func NewUserUseCase(users ports.UserStorage, hasher PasswordHasher, newKey KeyGenerator, logger *slog.Logger) UserUseCase {
	return &userUseCase{
		users:  users,
		hasher: hasher,
		newKey: newKey,
		logger: logger,
		now:    time.Now,
	}
}

// Register проверяет входные данные, хэширует пароль и сохраняет пользователя
// вместе с токеном в одной транзакции. Гонка двух регистраций с одним именем
// разрешается ограничением уникальности в хранилище.
func (uc *userUseCase) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username, err := domain.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	key, err := uc.newKey()
	if err != nil {
		return nil, fmt.Errorf("usecase: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    uc.now().UTC(),
	}
	if err := uc.users.CreateUserWithToken(ctx, user, key); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			uc.logger.Info("registration rejected, username taken", "username", username)
			return nil, err
		}
		return nil, fmt.Errorf("usecase: ошибка при создании пользователя: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// ListUsers возвращает всех пользователей
func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении списка пользователей: %w", err)
	}
	return users, nil
}
