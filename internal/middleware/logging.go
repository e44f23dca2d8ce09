package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging logs every request with method, path, status, user, and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Milliseconds()
		userID := GetUserID(r.Context()) // empty if pre-auth
		if rec.status >= 500 {
			slog.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else if rec.status >= 400 {
			slog.Warn("request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else {
			slog.Info("request ok",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		}
	})
}

// CORS adds the headers needed for browser access.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
