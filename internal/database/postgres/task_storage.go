package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"gorm.io/gorm"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

// SaveTask сохраняет задачу с помощью GORM
func (s *GormStorage) SaveTask(ctx context.Context, task *domain.Task) error {
	err := s.db.WithContext(ctx).Create(task).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrNotFound
	}
	if err != nil {
		s.logger.Error("failed to save task", "user_id", task.UserID, "error", err)
		return fmt.Errorf("ошибка при сохранении задачи с GORM: %w", err)
	}
	s.logger.Info("task saved successfully", "task_id", task.ID, "user_id", task.UserID)
	return nil
}

// ListTasksByUser получает задачи пользователя с помощью GORM
func (s *GormStorage) ListTasksByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	tasks := []domain.Task{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении задач с GORM: %w", err)
	}
	return tasks, nil
}
