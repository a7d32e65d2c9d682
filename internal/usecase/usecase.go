package usecase

import (
	"context"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// UserUseCase определяет бизнес-логику регистрации и просмотра пользователей
type UserUseCase interface {
	// Register создаёт пользователя вместе с его токеном.
	// Возвращает domain.ErrAlreadyExists, если имя уже занято.
	Register(ctx context.Context, username, password string) (*domain.User, error)

	// ListUsers возвращает всех пользователей в порядке регистрации
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// AuthUseCase определяет выдачу и проверку токенов
type AuthUseCase interface {
	// Authenticate проверяет логин и пароль и возвращает токен пользователя.
	// Для неизвестного имени и неверного пароля возвращается одна и та же
	// ошибка domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.Token, error)

	// IssueOrGetToken возвращает существующий токен пользователя или создаёт новый
	IssueOrGetToken(ctx context.Context, user *domain.User) (*domain.Token, error)

	// ResolveToken находит владельца токена; пустой или неизвестный ключ даёт domain.ErrUnauthenticated
	ResolveToken(ctx context.Context, key string) (*domain.User, error)
}

// TaskUseCase определяет работу с задачами текущего пользователя.
// Владелец всегда передаётся явно и никогда не берётся из тела запроса.
type TaskUseCase interface {
	CreateTask(ctx context.Context, owner *domain.User, in domain.NewTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, owner *domain.User) ([]domain.Task, error)
}

// ArchiveUseCase сохраняет копии созданных задач во внешнее хранилище (режим worker)
type ArchiveUseCase interface {
	ArchiveTask(ctx context.Context, payload payloads.TaskCreatedPayload) error
}
