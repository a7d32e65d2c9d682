package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// archiveUseCase implements ArchiveUseCase
type archiveUseCase struct {
	files  ports.FileStorage
	logger *slog.Logger
}

// NewArchiveUseCase создает новый экземпляр ArchiveUseCase
func NewArchiveUseCase(files ports.FileStorage, logger *slog.Logger) ArchiveUseCase {
	return &archiveUseCase{files: files, logger: logger}
}

// ArchiveObjectKey возвращает ключ объекта для задачи. Ключ детерминирован,
// поэтому повторная обработка сообщения перезаписывает тот же объект.
func ArchiveObjectKey(userID, taskID int64) string {
	return fmt.Sprintf("tasks/%d/%d.json", userID, taskID)
}

// ArchiveTask сериализует событие в JSON и загружает его в хранилище
func (uc *archiveUseCase) ArchiveTask(ctx context.Context, payload payloads.TaskCreatedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("usecase: ошибка сериализации задачи %d: %w", payload.TaskID, err)
	}

	key := ArchiveObjectKey(payload.UserID, payload.TaskID)
	location, err := uc.files.UploadObject(ctx, key, body, "application/json")
	if err != nil {
		return fmt.Errorf("usecase: ошибка загрузки задачи %d в архив: %w", payload.TaskID, err)
	}

	uc.logger.Info("task archived", "task_id", payload.TaskID, "user_id", payload.UserID, "location", location)
	return nil
}
