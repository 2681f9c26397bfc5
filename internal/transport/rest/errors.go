package rest

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/media"
	"github.com/heartmarshall/ireporter-backend/internal/service/report"
)

// handleError maps service errors to HTTP responses. Unknown errors are
// logged and reported as 500 without detail.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, report.ErrNotDraft):
		writeError(w, http.StatusForbidden, "cannot modify record under investigation, rejected, or resolved")
	case errors.Is(err, report.ErrNotOwner):
		writeError(w, http.StatusForbidden, "only the owner can modify this record")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func validationMessage(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		parts := make([]string, 0, len(ve.Errors))
		for _, fe := range ve.Errors {
			parts = append(parts, fe.Field+": "+fe.Message)
		}
		return strings.Join(parts, "; ")
	}
	if errors.Is(err, media.ErrNoFiles) {
		return "no files uploaded"
	}
	return "invalid request"
}
