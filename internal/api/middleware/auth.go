package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TurnosService/internal/api/handlers"
)

// HeaderOperatorKey заголовок с ключом оператора
const HeaderOperatorKey = "X-Operator-Key"

const (
	msgMissingOperatorKey = "отсутствует ключ оператора"
	msgInvalidOperatorKey = "неверный ключ оператора"
)

// OperatorAuth защищает изменяющие операции ключом оператора.
// Пустой key выключает проверку.
func OperatorAuth(key string, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(HeaderOperatorKey)
			if got == "" {
				logger.Warn("%s %s - Missing operator key", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingOperatorKey)
				return
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				logger.Warn("%s %s - Invalid operator key", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgInvalidOperatorKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
