package rabbitmq

import (
	"context"

	"github.com/GoArmGo/TasksAPI/internal/messaging/payloads"
)

// NopPublisher используется, когда RABBITMQ_URL не задан
type NopPublisher struct{}

func (NopPublisher) PublishTaskCreated(context.Context, payloads.TaskCreatedPayload) error {
	return nil
}
