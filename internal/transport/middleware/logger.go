package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code and duration. request_id and user_id are added from the context,
// and report_kind with report_id when the path addresses a report.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			requestID := ctxutil.RequestIDFromCtx(r.Context())
			userID, _ := ctxutil.UserIDFromCtx(r.Context())

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", duration),
				slog.String("request_id", requestID),
			}
			if userID != uuid.Nil {
				attrs = append(attrs, slog.String("user_id", userID.String()))
			}
			if kind, id, ok := reportFromPath(r.URL.Path); ok {
				attrs = append(attrs, slog.String("report_kind", kind.String()))
				if id != 0 {
					attrs = append(attrs, slog.Int64("report_id", id))
				}
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// reportFromPath finds the report collection segment in p and the numeric id
// following it, if any. id is 0 for collection routes.
func reportFromPath(p string) (domain.ReportKind, int64, bool) {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, seg := range segments {
		kind, ok := domain.ReportKindFromPath(seg)
		if !ok {
			continue
		}
		if i+1 < len(segments) {
			if id, err := strconv.ParseInt(segments[i+1], 10, 64); err == nil && id > 0 {
				return kind, id, true
			}
		}
		return kind, 0, true
	}
	return "", 0, false
}

// statusWriter wraps http.ResponseWriter to capture the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
