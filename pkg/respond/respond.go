package respond

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// Error добавляет request_id, чтобы ошибку можно было найти в логах
func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	payload := map[string]string{"error": message}
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		payload["request_id"] = reqID
	}
	JSON(w, r, code, payload)
}
