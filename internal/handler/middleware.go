package handler

import (
	"net/http"
	"strings"

	"github.com/BuzzLyutic/household-api/internal/auth"
	"github.com/BuzzLyutic/household-api/pkg/respond"
)

// HouseKeyHeader несёт общий секрет домохозяйства на каждом запросе
const HouseKeyHeader = "X-House-Key"

// RequireSession собирает Session из bearer-токена и ключа дома.
// Сессия живёт один запрос и передаётся дальше через context.
func RequireSession(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respond.Error(w, r, http.StatusUnauthorized, "authorization required")
				return
			}

			email, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			scope, err := auth.ResolveScope(r.Header.Get(HouseKeyHeader))
			if err != nil {
				respond.Error(w, r, http.StatusBadRequest, "house key must be at least 4 characters")
				return
			}

			sess := auth.Session{Email: email, HouseKey: scope}
			next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), sess)))
		})
	}
}
