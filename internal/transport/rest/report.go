package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/report"
)

// mediaField is the multipart field carrying uploaded files.
const mediaField = "media"

// reportService defines the report lifecycle operations used by ReportHandler.
type reportService interface {
	Create(ctx context.Context, input report.CreateInput) (*domain.Report, error)
	Get(ctx context.Context, kind domain.ReportKind, id int64) (*domain.ReportView, error)
	List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error)
	UpdateLocation(ctx context.Context, input report.UpdateLocationInput) (*domain.Report, error)
	UpdateComment(ctx context.Context, input report.UpdateCommentInput) (*domain.Report, error)
	Update(ctx context.Context, input report.UpdateInput) (*domain.Report, error)
	AddMedia(ctx context.Context, input report.AddMediaInput) (*domain.Report, error)
	TransitionStatus(ctx context.Context, input report.TransitionInput) (*domain.Report, error)
	Delete(ctx context.Context, kind domain.ReportKind, id int64) error
}

// uploadStore persists multipart files before they reach the service.
type uploadStore interface {
	SaveParts(ctx context.Context, parts []*multipart.FileHeader) ([]domain.MediaFile, error)
	Remove(files ...domain.MediaFile)
}

// ReportHandler serves the report endpoints for both kinds.
type ReportHandler struct {
	svc      reportService
	uploads  uploadStore
	maxBytes int64
	log      *slog.Logger
}

// NewReportHandler creates a ReportHandler. maxBytes caps request bodies.
func NewReportHandler(svc reportService, uploads uploadStore, maxBytes int64, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		svc:      svc,
		uploads:  uploads,
		maxBytes: maxBytes,
		log:      logger.With("handler", "report"),
	}
}

type reportResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Status      string    `json:"status"`
	Images      []string  `json:"images"`
	Videos      []string  `json:"videos"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	CreatedOn   time.Time `json:"createdOn"`
	UpdatedOn   time.Time `json:"updatedOn"`
	OwnerName   string    `json:"ownerName,omitempty"`
	OwnerEmail  string    `json:"ownerEmail,omitempty"`
}

func toReportResponse(r *domain.Report) reportResponse {
	return reportResponse{
		ID:          r.ID,
		Type:        r.Kind.String(),
		Title:       r.Title,
		Description: r.Description,
		Latitude:    r.Location.Latitude,
		Longitude:   r.Location.Longitude,
		Status:      r.Status.String(),
		Images:      r.Images,
		Videos:      r.Videos,
		CreatedBy:   r.OwnerID,
		CreatedOn:   r.CreatedAt,
		UpdatedOn:   r.UpdatedAt,
	}
}

// reportFields is the body of create and full-update requests. Every field
// is optional at this layer; the service decides what is required.
type reportFields struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type commentRequest struct {
	Comment string `json:"comment"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// List handles GET /{kind}s.
func (h *ReportHandler) List(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reports, err := h.svc.List(r.Context(), kind)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		items := make([]any, 0, len(reports))
		for _, rep := range reports {
			items = append(items, toReportResponse(rep))
		}
		writeData(w, http.StatusOK, items...)
	}
}

// Get handles GET /{kind}s/{id}.
func (h *ReportHandler) Get(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		view, err := h.svc.Get(r.Context(), kind, id)
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		resp := toReportResponse(&view.Report)
		resp.OwnerName = view.OwnerName
		resp.OwnerEmail = view.OwnerEmail
		writeData(w, http.StatusOK, resp)
	}
}

// Create handles POST /{kind}s with a JSON or multipart body.
func (h *ReportHandler) Create(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields, files, ok := h.readReportBody(w, r)
		if !ok {
			return
		}

		created, err := h.svc.Create(r.Context(), report.CreateInput{
			Kind:        kind,
			Title:       deref(fields.Title),
			Description: deref(fields.Description),
			Latitude:    fields.Latitude,
			Longitude:   fields.Longitude,
			Files:       files,
		})
		if err != nil {
			h.uploads.Remove(files...)
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusCreated, message{
			ID:      created.ID,
			Message: fmt.Sprintf("Created %s record", kind),
		})
	}
}

// UpdateLocation handles PATCH /{kind}s/{id}/location.
func (h *ReportHandler) UpdateLocation(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req locationRequest
		if !h.readJSON(w, r, &req) {
			return
		}

		updated, err := h.svc.UpdateLocation(r.Context(), report.UpdateLocationInput{
			Kind:      kind,
			ID:        id,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      updated.ID,
			Message: fmt.Sprintf("Updated %s record's location", kind),
		})
	}
}

// UpdateComment handles PATCH /{kind}s/{id}/comment.
func (h *ReportHandler) UpdateComment(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req commentRequest
		if !h.readJSON(w, r, &req) {
			return
		}

		updated, err := h.svc.UpdateComment(r.Context(), report.UpdateCommentInput{
			Kind:    kind,
			ID:      id,
			Comment: req.Comment,
		})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      updated.ID,
			Message: fmt.Sprintf("Updated %s record's comment", kind),
		})
	}
}

// UpdateStatus handles PATCH /{kind}s/{id}/status. Admin only; the router
// enforces the role.
func (h *ReportHandler) UpdateStatus(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		var req statusRequest
		if !h.readJSON(w, r, &req) {
			return
		}

		updated, err := h.svc.TransitionStatus(r.Context(), report.TransitionInput{
			Kind:   kind,
			ID:     id,
			Status: domain.ReportStatus(strings.TrimSpace(req.Status)),
		})
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      updated.ID,
			Message: fmt.Sprintf("Updated %s record's status", kind),
		})
	}
}

// AddMedia handles PATCH /{kind}s/{id}/media. New files are appended.
func (h *ReportHandler) AddMedia(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		if !isMultipart(r) {
			writeError(w, http.StatusBadRequest, "expected multipart/form-data with field \""+mediaField+"\"")
			return
		}
		_, files, ok := h.readReportBody(w, r)
		if !ok {
			return
		}

		updated, err := h.svc.AddMedia(r.Context(), report.AddMediaInput{
			Kind:  kind,
			ID:    id,
			Files: files,
		})
		if err != nil {
			h.uploads.Remove(files...)
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      updated.ID,
			Message: fmt.Sprintf("Added media to %s record", kind),
		})
	}
}

// Update handles PUT /{kind}s/{id}. Uploaded files replace existing media.
func (h *ReportHandler) Update(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}
		fields, files, ok := h.readReportBody(w, r)
		if !ok {
			return
		}

		updated, err := h.svc.Update(r.Context(), report.UpdateInput{
			Kind:        kind,
			ID:          id,
			Title:       fields.Title,
			Description: fields.Description,
			Latitude:    fields.Latitude,
			Longitude:   fields.Longitude,
			Files:       files,
		})
		if err != nil {
			h.uploads.Remove(files...)
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      updated.ID,
			Message: fmt.Sprintf("Updated %s record", kind),
		})
	}
}

// Delete handles DELETE /{kind}s/{id}.
func (h *ReportHandler) Delete(kind domain.ReportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := h.pathID(w, r)
		if !ok {
			return
		}

		if err := h.svc.Delete(r.Context(), kind, id); err != nil {
			handleError(h.log, w, r, err)
			return
		}

		writeData(w, http.StatusOK, message{
			ID:      id,
			Message: fmt.Sprintf("%s record has been deleted", kind),
		})
	}
}

func (h *ReportHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id: must be a positive integer")
		return 0, false
	}
	return id, true
}

func (h *ReportHandler) readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := decodeJSON(r, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// readReportBody parses a JSON or multipart body. Multipart files are
// stored before returning; callers remove them if the operation fails.
func (h *ReportHandler) readReportBody(w http.ResponseWriter, r *http.Request) (reportFields, []domain.MediaFile, bool) {
	var fields reportFields
	if !isMultipart(r) {
		return fields, nil, h.readJSON(w, r, &fields)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("upload exceeds %d bytes", h.maxBytes))
		} else {
			writeError(w, http.StatusBadRequest, "invalid multipart body")
		}
		return fields, nil, false
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	var errs []domain.FieldError
	fields.Title = formString(r, "title")
	fields.Description = formString(r, "description")
	fields.Latitude, errs = formFloat(r, "latitude", errs)
	fields.Longitude, errs = formFloat(r, "longitude", errs)
	if len(errs) > 0 {
		writeError(w, http.StatusBadRequest, validationMessage(domain.NewValidationErrors(errs)))
		return fields, nil, false
	}

	files, err := h.uploads.SaveParts(r.Context(), r.MultipartForm.File[mediaField])
	if err != nil {
		handleError(h.log, w, r, err)
		return fields, nil, false
	}
	return fields, files, true
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

func formString(r *http.Request, key string) *string {
	vals, ok := r.MultipartForm.Value[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func formFloat(r *http.Request, key string, errs []domain.FieldError) (*float64, []domain.FieldError) {
	s := formString(r, key)
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, errs
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, append(errs, domain.FieldError{Field: key, Message: "must be a number"})
	}
	return &v, errs
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
