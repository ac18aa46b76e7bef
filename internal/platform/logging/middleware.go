package logging

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger enriches the request context with a zap logger that embeds Cloud Trace metadata.
// When no trace can be derived the request ID doubles as the correlation ID.
func RequestLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(traceparentHeader)
			projectID := resolveProjectID()
			reqID := chimiddleware.GetReqID(r.Context())

			traceID := traceResource(header, projectID)
			if traceID == "" && reqID != "" {
				traceID = reqID
			}
			logger := loggerWithTrace(Logger(), header, projectID, reqID)
			ctx := r.Context()
			ctx = contextWithTraceID(ctx, traceID)
			ctx = contextWithLogger(ctx, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccessLogger writes one structured summary per request using the request-scoped logger.
// Server errors are logged at error level and client errors at warning level.
func AccessLogger() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			LoggerFromContext(r.Context()).Log(
				accessLevel(status),
				"request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.String("remoteIp", r.RemoteAddr),
				zap.String("userAgent", r.UserAgent()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func accessLevel(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
