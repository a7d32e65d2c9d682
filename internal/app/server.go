package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/GoArmGo/TasksAPI/internal/handler"
)

// runServer запускает HTTP сервер и ждёт отмены ctx
func (a *App) runServer(ctx context.Context) error {
	router := handler.NewRouter(handler.RouterDeps{
		Users:          a.userUseCase,
		Auth:           a.authUseCase,
		Tasks:          a.taskUseCase,
		Store:          a.store,
		Logger:         a.logger,
		RequestTimeout: a.Config.RequestTimeout,
	})

	serverAddr := fmt.Sprintf(":%s", a.Config.ServerPort)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: a.Config.RequestTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutdown signal received, stopping http server")

	// ctx уже отменён, поэтому таймаут отсчитывается от нового контекста
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.Config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	a.logger.Info("http server stopped")
	return nil
}
