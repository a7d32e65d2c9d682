package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// runWorker читает события task.created из RabbitMQ и архивирует задачи в MinIO
func (a *App) runWorker(ctx context.Context) error {
	if a.taskConsumer == nil || a.archiveUseCase == nil {
		return errors.New("режим worker требует RABBITMQ_URL и MINIO_ENDPOINT")
	}

	messageHandler := func(ctx context.Context, payload payloads.TaskCreatedPayload) error {
		a.logger.Debug("processing task event", "task_id", payload.TaskID, "user_id", payload.UserID)
		if err := a.archiveUseCase.ArchiveTask(ctx, payload); err != nil {
			a.logger.Error("failed to archive task", "task_id", payload.TaskID, "error", err)
			return err
		}
		return nil
	}

	if err := a.taskConsumer.StartConsumingTaskEvents(ctx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	a.logger.Info("worker started, waiting for task events")
	<-ctx.Done()
	a.logger.Info("shutdown signal received, stopping worker")
	return nil
}
