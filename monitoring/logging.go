package monitoring

import (
	"net/http"
	"os"
	"time"

	"tinydb/auth"

	"github.com/sirupsen/logrus"
)

// SetupLogger configures the global logger
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)
}

// LoggerMiddleware returns middleware for logging
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start)

		var userID string
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			userID = claims.UserID
		}

		logrus.WithFields(logrus.Fields{
			"timestamp":   start.Format(time.RFC3339),
			"method":      r.Method,
			"path":        r.URL.Path,
			"status_code": rw.StatusCode,
			"duration_ms": duration.Milliseconds(),
			"client_ip":   getClientIP(r),
			"user_id":     userID,
			"user_agent":  r.UserAgent(),
		}).Info("HTTP request")
	})
}

// ResponseWriter to intercept the status code
type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(code int) {
	rw.StatusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP retrieves the client's real IP
func getClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
