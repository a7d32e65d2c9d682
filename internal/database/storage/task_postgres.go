package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// SaveTask сохраняет задачу и записывает присвоенный id
func (s *PostgresStorage) SaveTask(ctx context.Context, task *domain.Task) error {
	start := time.Now()

	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO tasks (user_id, description, created_at, due_at, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, task.UserID, task.Description, task.CreatedAt, task.DueAt, string(task.Status)).Scan(&task.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to save task", "user_id", task.UserID, "error", err)
		return fmt.Errorf("insert task: %w", err)
	}

	s.logger.Info("task saved successfully",
		"task_id", task.ID,
		"user_id", task.UserID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// ListTasksByUser получает задачи пользователя в порядке id
func (s *PostgresStorage) ListTasksByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	start := time.Now()

	tasks := []domain.Task{}
	if err := s.db.SelectContext(ctx, &tasks, `
		SELECT id, user_id, description, created_at, due_at, status
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, userID); err != nil {
		s.logger.Error("failed to list tasks", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	s.logger.Debug("listed tasks",
		"user_id", userID,
		"count", len(tasks),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return tasks, nil
}
