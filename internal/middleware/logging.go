package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// userIDSlot is a mutable cell Logging plants in the request context so the
// auth middleware, which runs deeper in the chain, can report the
// authenticated user back out.
type userIDSlot struct {
	id string
}

const userIDSlotKey contextKey = "user_id_slot"

// recordUserID fills the slot if the request passed through Logging.
func recordUserID(ctx context.Context, userID string) {
	if slot, ok := ctx.Value(userIDSlotKey).(*userIDSlot); ok {
		slot.id = userID
	}
}

// Logging logs every request with its method, path, status, authenticated
// user (if any), and duration.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		slot := &userIDSlot{}
		r = r.WithContext(context.WithValue(r.Context(), userIDSlotKey, slot))

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Milliseconds()
		userID := slot.id // empty on public routes and auth failures

		if rec.status >= http.StatusInternalServerError {
			slog.Error("Request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else if rec.status >= http.StatusBadRequest {
			slog.Warn("Request rejected",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		} else {
			slog.Info("Request ok",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"user_id", userID,
				"duration_ms", duration,
			)
		}
	})
}
