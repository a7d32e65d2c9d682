package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/TasksAPI/internal/adapter/storage/minio"
	"github.com/GoArmGo/TasksAPI/internal/app"
	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/database/client"
	"github.com/GoArmGo/TasksAPI/internal/database/memory"
	"github.com/GoArmGo/TasksAPI/internal/database/migrations"
	"github.com/GoArmGo/TasksAPI/internal/database/postgres"
	"github.com/GoArmGo/TasksAPI/internal/database/storage"
	"github.com/GoArmGo/TasksAPI/internal/logger"
	"github.com/GoArmGo/TasksAPI/internal/rabbitmq"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp(ctx context.Context, mode string) (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Хранилище
	store, err := buildStorage(ctx, cfg, slogger)
	if err != nil {
		return nil, err
	}
	var opened resources
	opened.add("storage", store.Close)

	// 3. RabbitMQ: publisher в режиме server, consumer в режиме worker
	var (
		taskPublisher ports.TaskEventPublisher = rabbitmq.NopPublisher{}
		taskConsumer  ports.TaskEventConsumer
	)
	if cfg.RabbitMQEnabled() {
		rabbitMQClient, err := rabbitmq.NewClient(cfg.RabbitMQ.RabbitMQURL, cfg.RabbitMQ.RabbitMQQueueName, slogger)
		if err != nil {
			opened.closeAll(slogger)
			return nil, err
		}
		opened.add("rabbitmq", rabbitMQClient.Close)
		taskPublisher = rabbitMQClient
		taskConsumer = rabbitMQClient
	} else {
		slogger.Info("RABBITMQ_URL is empty, task events are disabled")
	}

	// 4. Архив задач (S3 / MinIO) нужен только воркеру
	var archiveUseCase usecase.ArchiveUseCase
	if mode == app.ModeWorker && cfg.ArchiveEnabled() {
		fileStorage, err := minio.NewMinioClient(ctx, cfg, slogger)
		if err != nil {
			opened.closeAll(slogger)
			return nil, err
		}
		archiveUseCase = usecase.NewArchiveUseCase(fileStorage, slogger)
	}

	// 5. Бизнес-логика
	hasher, err := usecase.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		opened.closeAll(slogger)
		return nil, err
	}

	application := app.NewApp(app.Deps{
		Config:         cfg,
		Logger:         slogger,
		Store:          store,
		UserUseCase:    usecase.NewUserUseCase(store, hasher, usecase.RandomKey, slogger),
		AuthUseCase:    usecase.NewAuthUseCase(store, store, hasher, usecase.RandomKey, slogger),
		TaskUseCase:    usecase.NewTaskUseCase(store, taskPublisher, slogger),
		ArchiveUseCase: archiveUseCase,
		TaskPublisher:  taskPublisher,
		TaskConsumer:   taskConsumer,
	})

	slogger.Info("all dependencies initialized", "storage", cfg.StorageBackend, "mode", mode)
	return application, nil
}

// buildStorage выбирает реализацию хранилища по STORAGE_BACKEND
func buildStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return memory.NewStorage(logger), nil

	case config.BackendSQLX, config.BackendGorm:
		if cfg.MigrationsEnabled {
			if err := migrations.Apply(cfg.DatabaseURL, logger); err != nil {
				return nil, err
			}
		}
		if cfg.StorageBackend == config.BackendGorm {
			gormStorage, err := postgres.Open(ctx, cfg.DatabaseURL, logger)
			if err != nil {
				return nil, err
			}
			return gormStorage, nil
		}
		dbClient, err := client.NewClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresStorage(dbClient.DB, logger), nil

	default:
		return nil, fmt.Errorf("неизвестный STORAGE_BACKEND: %s", cfg.StorageBackend)
	}
}

// resources — уже открытые соединения, которые нужно закрыть,
// если сборка приложения прервалась на следующем шаге
type resources struct {
	names   []string
	closers []func() error
}

func (r *resources) add(name string, closer func() error) {
	r.names = append(r.names, name)
	r.closers = append(r.closers, closer)
}

// closeAll закрывает ресурсы в обратном порядке открытия
func (r *resources) closeAll(logger *slog.Logger) {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			logger.Warn("failed to close resource", "resource", r.names[i], "error", err)
		}
	}
	r.names, r.closers = nil, nil
}
