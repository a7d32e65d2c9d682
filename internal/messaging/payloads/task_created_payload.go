package payloads

import "time"

// TaskCreatedPayload — событие о созданной задаче, передаётся через RabbitMQ.
type TaskCreatedPayload struct {
	TaskID      int64      `json:"task_id"`
	UserID      int64      `json:"user_id"`
	Description string     `json:"task_description"`
	Status      string     `json:"task_status"`
	CreatedAt   time.Time  `json:"task_created_datetime"`
	DueAt       *time.Time `json:"task_due_datetime"`
}
