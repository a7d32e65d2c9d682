package ports

import (
	"context"

	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// TaskEventPublisher публикует события о созданных задачах.
// Используется usecase-слоем после успешного сохранения задачи.
type TaskEventPublisher interface {
	PublishTaskCreated(ctx context.Context, payload payloads.TaskCreatedPayload) error
}

// TaskEventConsumer определяет методы для потребления событий задач воркером.
type TaskEventConsumer interface {
	// StartConsumingTaskEvents начинает прослушивание очереди и вызывает handler
	// для каждого полученного сообщения
	StartConsumingTaskEvents(ctx context.Context, handler func(context.Context, payloads.TaskCreatedPayload) error) error
}

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO)
type FileStorage interface {
	// UploadObject загружает объект и возвращает его адрес.
	UploadObject(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
