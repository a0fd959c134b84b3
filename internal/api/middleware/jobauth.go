package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-PaymentService/internal/api/handlers"
)

// JobAuth защищает служебные ручки джобов статическим bearer-токеном.
// Сравнение токенов выполняется за постоянное время
func JobAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				handlers.RespondUnauthorized(w, "отсутствует bearer-токен")
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				handlers.RespondForbidden(w, "неверный токен")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
