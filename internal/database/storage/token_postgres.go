package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// GetOrCreateToken вставляет токен, если у пользователя его ещё нет, и читает актуальный.
// ON CONFLICT по user_id делает операцию безопасной при одновременных входах.
func (s *PostgresStorage) GetOrCreateToken(ctx context.Context, userID int64, candidateKey string) (*domain.Token, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tokens (key, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`, candidateKey, userID, time.Now().UTC())
	if isForeignKeyViolation(err) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to insert token", "user_id", userID, "error", err)
		return nil, fmt.Errorf("insert token: %w", err)
	}

	var token domain.Token
	err = s.db.GetContext(ctx, &token, `
		SELECT key, user_id, created_at
		FROM tokens
		WHERE user_id = $1
	`, userID)
	if err != nil {
		s.logger.Error("failed to select token", "user_id", userID, "error", err)
		return nil, fmt.Errorf("select token: %w", err)
	}
	return &token, nil
}

// GetUserByToken возвращает владельца токена
func (s *PostgresStorage) GetUserByToken(ctx context.Context, key string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `
		SELECT u.id, u.username, u.password_hash, u.created_at
		FROM tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.key = $1
	`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to resolve token", "error", err)
		return nil, fmt.Errorf("select user by token: %w", err)
	}
	return &user, nil
}
