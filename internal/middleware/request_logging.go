package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/crackwatch/monitor-service/internal/utils"
)

type contextKey string

// ContextKeyRequestID carries the per-request correlation ID.
const ContextKeyRequestID = contextKey("requestID")

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogging assigns every request a correlation ID and logs
// method, path, status and latency once the handler returns.
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		ctx := context.WithValue(r.Context(), ContextKeyRequestID, reqID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		utils.Logger.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Debug("Handled request")
	})
}
