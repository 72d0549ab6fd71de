package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// HeaderRequestID заголовок идентификатора запроса
const HeaderRequestID = "X-Request-ID"

type requestIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// RequestID берет X-Request-ID из запроса или генерирует новый, возвращает его в ответе
// и пишет строку лога по завершении запроса
func RequestID(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqID := r.Header.Get(HeaderRequestID)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, reqID)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))

			logger.Info("%s %s - status=%d, duration_ms=%d, request_id=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(), reqID)
		})
	}
}

// GetRequestID возвращает идентификатор запроса из контекста
func GetRequestID(ctx context.Context) (string, bool) {
	reqID, ok := ctx.Value(requestIDKey{}).(string)
	return reqID, ok
}
