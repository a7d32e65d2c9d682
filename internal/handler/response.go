package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/TasksAPI/internal/domain"
)

// Тексты ответов об ошибках
const (
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Unable to log in with provided credentials."
	msgNotAuthenticated   = "Authentication credentials were not provided."
	msgInternal           = "Internal server error"
)

const maxBodyBytes = 1 << 20

// errorResponse — тело ответа с ошибкой
type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"` + msgInternal + `"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет JSON-ответ с ошибкой.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, errorResponse{Message: message}, logger)
}

// respondUnauthenticated — 401 с заголовком WWW-Authenticate для схемы Token
func respondUnauthenticated(w http.ResponseWriter, logger *slog.Logger) {
	w.Header().Set("WWW-Authenticate", tokenScheme)
	respondWithError(w, http.StatusUnauthorized, msgNotAuthenticated, logger)
}

// writeError сопоставляет ошибку домена со статусом HTTP.
// Ошибки, не относящиеся к домену, скрываются за 500 и пишутся в лог.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{
			Message: validationErr.Message,
			Field:   validationErr.Field,
		}, logger)
	case errors.Is(err, domain.ErrAlreadyExists):
		respondWithError(w, http.StatusBadRequest, msgUserExists, logger)
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondWithError(w, http.StatusBadRequest, msgInvalidCredentials, logger)
	case errors.Is(err, domain.ErrUnauthenticated):
		respondUnauthenticated(w, logger)
	default:
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithError(w, http.StatusInternalServerError, msgInternal, logger)
	}
}

// decodeJSON читает тело запроса в dst. Некорректный JSON — ошибка валидации.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("", fmt.Sprintf("JSON parse error - %v", err))
	}
	return nil
}
