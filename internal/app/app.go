package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/core/ports"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// Режимы запуска
const (
	ModeServer = "server"
	ModeWorker = "worker"
)

type App struct {
	Config         *config.Config
	logger         *slog.Logger
	store          ports.Storage
	userUseCase    usecase.UserUseCase
	authUseCase    usecase.AuthUseCase
	taskUseCase    usecase.TaskUseCase
	archiveUseCase usecase.ArchiveUseCase
	taskPublisher  ports.TaskEventPublisher
	taskConsumer   ports.TaskEventConsumer
}

// Deps — собранные зависимости приложения. ArchiveUseCase и TaskConsumer
// нужны только в режиме worker.
type Deps struct {
	Config         *config.Config
	Logger         *slog.Logger
	Store          ports.Storage
	UserUseCase    usecase.UserUseCase
	AuthUseCase    usecase.AuthUseCase
	TaskUseCase    usecase.TaskUseCase
	ArchiveUseCase usecase.ArchiveUseCase
	TaskPublisher  ports.TaskEventPublisher
	TaskConsumer   ports.TaskEventConsumer
}

func NewApp(d Deps) *App {
	return &App{
		Config:         d.Config,
		logger:         d.Logger,
		store:          d.Store,
		userUseCase:    d.UserUseCase,
		authUseCase:    d.AuthUseCase,
		taskUseCase:    d.TaskUseCase,
		archiveUseCase: d.ArchiveUseCase,
		taskPublisher:  d.TaskPublisher,
		taskConsumer:   d.TaskConsumer,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("app starting", "mode", mode, "storage", a.Config.StorageBackend)

	var err error
	switch mode {
	case ModeServer:
		err = a.runServer(ctx)
	case ModeWorker:
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", mode)
	}

	// аккуратно закрываем ресурсы
	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown failed", "error", closeErr)
	}
	if err != nil {
		return err
	}

	a.logger.Info("app stopped")
	return nil
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	var errs []error

	// если publisher/consumer имеют методы Close — вызываем их
	if closer, ok := a.taskPublisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия publisher: %w", err))
		}
	}
	if closer, ok := a.taskConsumer.(interface{ Close() error }); ok && any(a.taskConsumer) != any(a.taskPublisher) {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия consumer: %w", err))
		}
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ошибка закрытия хранилища: %w", err))
		}
	}
	return errors.Join(errs...)
}
