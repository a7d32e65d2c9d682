package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/TasksAPI/internal/domain"
	"github.com/GoArmGo/TasksAPI/internal/usecase"
	"github.com/go-chi/chi/v5/middleware"
)

const tokenScheme = "Token"

type contextKey string

const currentUserKey contextKey = "currentUser"

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"request_id", middleware.GetReqID(r.Context()),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// TokenFromHeader извлекает ключ из заголовка "Authorization: Token <key>".
// Схема сравнивается без учёта регистра; любой другой формат даёт пустую строку.
func TokenFromHeader(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], tokenScheme) {
		return ""
	}
	return parts[1]
}

// AuthMiddleware разрешает токен в пользователя на время обработки запроса
type AuthMiddleware struct {
	auth   usecase.AuthUseCase
	logger *slog.Logger
}

func NewAuthMiddleware(auth usecase.AuthUseCase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

// RequireToken отклоняет запросы без действительного токена. Отсутствующий
// и неизвестный токен обрабатываются одинаково.
func (m *AuthMiddleware) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := TokenFromHeader(r.Header.Get("Authorization"))
		user, err := m.auth.ResolveToken(r.Context(), key)
		if err != nil {
			if key != "" {
				m.logger.Info("rejected unknown token", "path", r.URL.Path)
			}
			writeError(w, r, err, m.logger)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser возвращает пользователя, установленного RequireToken
func CurrentUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*domain.User)
	return user, ok && user != nil
}
