package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// TaskHandler — обработчик HTTP-запросов для задач текущего пользователя.
// Маршруты должны быть закрыты AuthMiddleware.RequireToken.
type TaskHandler struct {
	tasks  usecase.TaskUseCase
	logger *slog.Logger
}

func NewTaskHandler(tasks usecase.TaskUseCase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

// createTaskRequest принимает и полные имена полей (task_*), и короткие.
// Поле user из тела игнорируется.
type createTaskRequest struct {
	TaskDescription *string `json:"task_description"`
	Description     *string `json:"description"`
	TaskDueDatetime *string `json:"task_due_datetime"`
	DueAt           *string `json:"due_at"`
	TaskStatus      *string `json:"task_status"`
	Status          *string `json:"status"`
}

type taskResponse struct {
	User                int64   `json:"user"`
	TaskDescription     string  `json:"task_description"`
	TaskCreatedDatetime string  `json:"task_created_datetime"`
	TaskDueDatetime     *string `json:"task_due_datetime"`
	TaskStatus          string  `json:"task_status"`
}

type taskCreatedResponse struct {
	Message string       `json:"message"`
	Result  taskResponse `json:"result"`
}

func firstSet(values ...*string) string {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return ""
}

// formatTimestamp — ISO-8601 в UTC с суффиксом Z, микросекунды выводятся только если не нулевые
func formatTimestamp(t time.Time) string {
	t = t.UTC()
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02T15:04:05Z")
	}
	return t.Format("2006-01-02T15:04:05.000000Z")
}

func toTaskResponse(t domain.Task) taskResponse {
	resp := taskResponse{
		User:                t.UserID,
		TaskDescription:     t.Description,
		TaskCreatedDatetime: formatTimestamp(t.CreatedAt),
		TaskStatus:          string(t.Status),
	}
	if t.DueAt != nil {
		due := formatTimestamp(*t.DueAt)
		resp.TaskDueDatetime = &due
	}
	return resp
}

// List — GET /api/tasks/
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		respondUnauthenticated(w, h.logger)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), user)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	respondWithJSON(w, http.StatusOK, out, h.logger)
}

// Create — POST /api/tasks/
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		respondUnauthenticated(w, h.logger)
		return
	}

	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	due, err := domain.ParseDueTime(firstSet(req.TaskDueDatetime, req.DueAt))
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), user, domain.NewTaskInput{
		Description: firstSet(req.TaskDescription, req.Description),
		DueAt:       due,
		Status:      firstSet(req.TaskStatus, req.Status),
	})
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	h.logger.Info("task created", "task_id", task.ID, "user_id", user.ID)
	respondWithJSON(w, http.StatusOK, taskCreatedResponse{
		Message: "Task created successfully",
		Result:  toTaskResponse(*task),
	}, h.logger)
}
