package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// UserHandler — обработчик HTTP-запросов для регистрации и списка пользователей.
// Оба метода публичные.
type UserHandler struct {
	users  usecase.UserUseCase
	logger *slog.Logger
}

func NewUserHandler(users usecase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse никогда не содержит пароль или его хэш
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type userCreatedResponse struct {
	Message string       `json:"message"`
	Data    userResponse `json:"data"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username}
}

// List — GET /api/users/
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respondWithJSON(w, http.StatusOK, out, h.logger)
}

// Create — POST /api/users/
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, userCreatedResponse{
		Message: "User created successfully",
		Data:    toUserResponse(*user),
	}, h.logger)
}
