package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// taskUseCase implements TaskUseCase
type taskUseCase struct {
	tasks     ports.TaskStorage
	publisher ports.TaskEventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// TaskOption настраивает TaskUseCase
type TaskOption func(*taskUseCase)

// WithClock подменяет источник времени (используется в тестах)
func WithClock(now func() time.Time) TaskOption {
	return func(uc *taskUseCase) {
		uc.now = now
	}
}

// NewTaskUseCase создает новый экземпляр TaskUseCase.
// publisher может быть nil, тогда события не публикуются.
func NewTaskUseCase(tasks ports.TaskStorage, publisher ports.TaskEventPublisher, logger *slog.Logger, opts ...TaskOption) TaskUseCase {
	uc := &taskUseCase{
		tasks:     tasks,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateTask создаёт задачу от имени owner. Дубликаты описаний допускаются:
// каждый вызов создаёт отдельную запись.
func (uc *taskUseCase) CreateTask(ctx context.Context, owner *domain.User, in domain.NewTaskInput) (*domain.Task, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}

	description, err := domain.NormalizeDescription(in.Description)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseTaskStatus(in.Status)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      owner.ID,
		Description: description,
		CreatedAt:   uc.now().UTC().Truncate(time.Microsecond),
		DueAt:       in.DueAt,
		Status:      status,
	}
	if err := uc.tasks.SaveTask(ctx, task); err != nil {
		return nil, fmt.Errorf("usecase: ошибка при сохранении задачи: %w", err)
	}

	uc.publishCreated(ctx, task)
	return task, nil
}

// publishCreated отправляет событие; ошибка публикации не отменяет созданную задачу
func (uc *taskUseCase) publishCreated(ctx context.Context, task *domain.Task) {
	if uc.publisher == nil {
		return
	}
	payload := payloads.TaskCreatedPayload{
		TaskID:      task.ID,
		UserID:      task.UserID,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		DueAt:       task.DueAt,
	}
	if err := uc.publisher.PublishTaskCreated(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish task created event", "task_id", task.ID, "error", err)
	}
}

// ListTasks возвращает только задачи owner
func (uc *taskUseCase) ListTasks(ctx context.Context, owner *domain.User) ([]domain.Task, error) {
	if owner == nil {
		return nil, domain.ErrUnauthenticated
	}
	tasks, err := uc.tasks.ListTasksByUser(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при получении задач пользователя %d: %w", owner.ID, err)
	}
	return tasks, nil
}
