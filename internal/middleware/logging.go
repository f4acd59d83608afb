package middleware

import (
	"net/http"

	"superapp-be/internal/logger"
	"superapp-be/internal/metrics"
	"superapp-be/internal/utils"

	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// Logging writes one structured line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartTimer()

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.HTTPRequests.Inc()
		if rec.statusCode >= 500 {
			metrics.HTTPErrors.Inc()
		}

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", timer.Duration()),
			zap.String("remote_ip", r.RemoteAddr),
			zap.Bool("internal", utils.IsInternalRequest(r.Context())),
		}

		l := logger.FromCtx(r.Context())
		switch {
		case rec.statusCode >= 500:
			l.Error("http request", fields...)
		case rec.statusCode >= 400:
			l.Warn("http request", fields...)
		default:
			l.Info("http request", fields...)
		}
	})
}
