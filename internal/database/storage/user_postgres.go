package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// CreateUserWithToken сохраняет пользователя и его токен в одной транзакции.
// Дубликат имени ловится ограничением users_username_key.
func (s *PostgresStorage) CreateUserWithToken(ctx context.Context, user *domain.User, tokenKey string) error {
	start := time.Now()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, user.Username, user.PasswordHash, user.CreatedAt).Scan(&id)
	if isUniqueViolation(err) {
		s.logger.Warn("username already exists", "username", user.Username)
		return domain.ErrAlreadyExists
	}
	if err != nil {
		s.logger.Error("failed to insert user", "username", user.Username, "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tokens (key, user_id, created_at)
		VALUES ($1, $2, $3)
	`, tokenKey, id, user.CreatedAt)
	if err != nil {
		s.logger.Error("failed to insert token", "user_id", id, "error", err)
		return fmt.Errorf("insert token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit user creation", "username", user.Username, "error", err)
		return fmt.Errorf("commit user: %w", err)
	}

	user.ID = id
	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// GetUserByUsername получает пользователя по имени
func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to select user by username", "error", err)
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &user, nil
}

// ListUsers возвращает всех пользователей в порядке id
func (s *PostgresStorage) ListUsers(ctx context.Context) ([]domain.User, error) {
	start := time.Now()

	users := []domain.User{}
	if err := s.db.SelectContext(ctx, &users, `
		SELECT id, username, password_hash, created_at
		FROM users
		ORDER BY id
	`); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	s.logger.Debug("listed users",
		"count", len(users),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return users, nil
}
