// Package memory содержит хранилище в памяти процесса. Используется в тестах
// и для локального запуска без базы данных (STORAGE_BACKEND=memory).
package memory

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// Storage реализует ports.Storage. Мьютекс играет роль транзакции:
// проверка уникальности и вставка выполняются под одной блокировкой.
type Storage struct {
	mu     sync.RWMutex
	logger *slog.Logger

	nextUserID int64
	nextTaskID int64

	users       map[int64]domain.User
	byUsername  map[string]int64
	tokens      map[string]domain.Token
	tokenByUser map[int64]string
	tasks       []domain.Task
}

func NewStorage(logger *slog.Logger) *Storage {
	return &Storage{
		logger:      logger,
		users:       make(map[int64]domain.User),
		byUsername:  make(map[string]int64),
		tokens:      make(map[string]domain.Token),
		tokenByUser: make(map[int64]string),
	}
}

func (s *Storage) CreateUserWithToken(ctx context.Context, user *domain.User, tokenKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byUsername[user.Username]; ok {
		return domain.ErrAlreadyExists
	}
	if _, ok := s.tokens[tokenKey]; ok {
		return domain.ErrAlreadyExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	s.users[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	s.tokens[tokenKey] = domain.Token{Key: tokenKey, UserID: user.ID, CreatedAt: user.CreatedAt}
	s.tokenByUser[user.ID] = tokenKey

	s.logger.Debug("user stored in memory", "user_id", user.ID)
	return nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *Storage) GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.tokenByUser[userID]; ok {
		token := s.tokens[key]
		return &token, nil
	}
	user, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if _, taken := s.tokens[candidateKey]; taken {
		return nil, domain.ErrAlreadyExists
	}

	token := domain.Token{Key: candidateKey, UserID: user.ID, CreatedAt: user.CreatedAt}
	s.tokens[candidateKey] = token
	s.tokenByUser[userID] = candidateKey
	return &token, nil
}

func (s *Storage) GetUserByToken(ctx context.Context, key string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.tokens[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	user, ok := s.users[token.UserID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &user, nil
}

func (s *Storage) SaveTask(ctx context.Context, task *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[task.UserID]; !ok {
		return domain.ErrNotFound
	}
	s.nextTaskID++
	task.ID = s.nextTaskID

	stored := *task
	if task.DueAt != nil {
		due := *task.DueAt
		stored.DueAt = &due
	}
	s.tasks = append(s.tasks, stored)
	return nil
}

func (s *Storage) ListTasksByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, t := range s.tasks {
		if t.UserID == userID {
			if t.DueAt != nil {
				due := *t.DueAt
				t.DueAt = &due
			}
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// DeleteToken удаляет токен пользователя. Нужен тестам, которые проверяют
// ленивую выдачу токена при первом входе.
func (s *Storage) DeleteToken(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.tokenByUser[userID]; ok {
		delete(s.tokens, key)
		delete(s.tokenByUser, userID)
	}
}
