package ports

import (
	"context"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// Уникальность username обеспечивается самим хранилищем (ограничение UNIQUE),
// а не проверкой перед вставкой.
type UserStorage interface {
	// CreateUserWithToken атомарно создаёт пользователя и его токен.
	// Возвращает domain.ErrAlreadyExists, если имя занято; в этом случае ничего не сохраняется.
	CreateUserWithToken(ctx context.Context, user *domain.User, tokenKey string) error
	// GetUserByUsername возвращает domain.ErrNotFound, если пользователя нет.
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// ListUsers возвращает всех пользователей в порядке возрастания id.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// TokenStorage определяет методы для работы с токенами доступа.
type TokenStorage interface {
	// GetOrCreateToken возвращает существующий токен пользователя или сохраняет candidateKey.
	// Безопасен при конкурентных вызовах: у пользователя остаётся ровно один токен.
	GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error)
	// GetUserByToken возвращает владельца токена или domain.ErrNotFound.
	GetUserByToken(ctx context.Context, key string) (*domain.User, error)
}

// TaskStorage определяет методы для работы с задачами.
type TaskStorage interface {
	// SaveTask сохраняет задачу и заполняет task.ID.
	SaveTask(ctx context.Context, task *domain.Task) error
	// ListTasksByUser возвращает задачи владельца в порядке возрастания id.
	ListTasksByUser(ctx context.Context, userID int64) ([]domain.Task, error)
}

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Storage объединяет все хранилища одного бэкенда.
type Storage interface {
	UserStorage
	TokenStorage
	TaskStorage
	Pinger
	Close() error
}
