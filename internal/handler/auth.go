package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoArmGo/TasksAPI/internal/usecase"
)

// AuthHandler выдаёт токен по логину и паролю
type AuthHandler struct {
	auth   usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthHandler(auth usecase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type tokenResponse struct {
	Token string `json:"token"`
}

// ObtainToken — POST /auth/
func (h *AuthHandler) ObtainToken(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	token, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	respondWithJSON(w, http.StatusOK, tokenResponse{Token: token.Key}, h.logger)
}
