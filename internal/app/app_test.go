package app

import (
	"context"
	"errors"
	"testing"

	"github.com/GoArmGo/TasksAPI/internal/config"
	"github.com/GoArmGo/TasksAPI/internal/database/memory"
	"github.com/GoArmGo/TasksAPI/internal/logger"
	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

type failingStore struct {
	*memory.Storage
	closed int
}

func (s *failingStore) Close() error {
	s.closed++
	return errors.New("boom")
}

type closingClient struct {
	closed int
}

func (c *closingClient) PublishTaskCreated(context.Context, payloads.TaskCreatedPayload) error {
	return nil
}

func (c *closingClient) StartConsumingTaskEvents(context.Context, func(context.Context, payloads.TaskCreatedPayload) error) error {
	return nil
}

func (c *closingClient) Close() error {
	c.closed++
	return nil
}

func TestRunRejectsUnknownMode(t *testing.T) {
	a := NewApp(Deps{
		Config: &config.Config{StorageBackend: config.BackendMemory},
		Logger: logger.Discard(),
	})
	if err := a.Run(context.Background(), "cron"); err == nil {
		t.Fatal("Run with unknown mode should fail")
	}
}

func TestWorkerRequiresConsumerAndArchive(t *testing.T) {
	a := NewApp(Deps{
		Config: &config.Config{StorageBackend: config.BackendMemory},
		Logger: logger.Discard(),
	})
	if err := a.Run(context.Background(), ModeWorker); err == nil {
		t.Fatal("worker without RabbitMQ and MinIO should fail")
	}
}

func TestShutdownClosesSharedClientOnce(t *testing.T) {
	rmq := &closingClient{}
	a := NewApp(Deps{
		Config:        &config.Config{},
		Logger:        logger.Discard(),
		TaskPublisher: rmq,
		TaskConsumer:  rmq,
	})
	if err := a.Shutdown(); err != nil {
		t.Fatalf("Shutdown error = %v", err)
	}
	if rmq.closed != 1 {
		t.Fatalf("client closed %d times, want 1", rmq.closed)
	}
}

func TestShutdownReportsStoreError(t *testing.T) {
	store := &failingStore{Storage: memory.NewStorage(logger.Discard())}
	a := NewApp(Deps{Config: &config.Config{}, Logger: logger.Discard(), Store: store})
	if err := a.Shutdown(); err == nil {
		t.Fatal("Shutdown should surface store close error")
	}
	if store.closed != 1 {
		t.Fatalf("store closed %d times, want 1", store.closed)
	}
}
