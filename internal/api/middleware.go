package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID returns the id assigned by requestIDMiddleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDMiddleware keeps an incoming X-Request-ID or assigns a new one and
// echoes it on the response.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// accessLog writes one zap line per request through gorilla/handlers.
func accessLog(log *zap.Logger, next http.Handler) http.Handler {
	return handlers.CustomLoggingHandler(io.Discard, next, func(_ io.Writer, p handlers.LogFormatterParams) {
		log.Info("request",
			zap.String("method", p.Request.Method),
			zap.String("path", p.URL.Path),
			zap.Int("status", p.StatusCode),
			zap.Int("size", p.Size),
			zap.Duration("duration", time.Since(p.TimeStamp)),
			zap.String("remote_addr", p.Request.RemoteAddr),
			zap.String("request_id", RequestID(p.Request.Context())),
		)
	})
}
