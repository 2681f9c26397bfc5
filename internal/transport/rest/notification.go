package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/service/notification"
)

type notificationService interface {
	List(ctx context.Context) (*notification.Inbox, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
}

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	svc notificationService
	log *slog.Logger
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(svc notificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{svc: svc, log: logger.With("handler", "notification")}
}

type notificationResponse struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Type              string    `json:"type"`
	RelatedEntityType string    `json:"relatedEntityType"`
	RelatedEntityID   int64     `json:"relatedEntityId"`
	IsRead            bool      `json:"isRead"`
	CreatedAt         time.Time `json:"createdAt"`
}

type inboxResponse struct {
	Unread        int                    `json:"unread"`
	Notifications []notificationResponse `json:"notifications"`
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:                n.ID,
		Title:             n.Title,
		Message:           n.Message,
		Type:              n.Type.String(),
		RelatedEntityType: n.RelatedEntityType.String(),
		RelatedEntityID:   n.RelatedEntityID,
		IsRead:            n.IsRead,
		CreatedAt:         n.CreatedAt,
	}
}

// List handles GET /notifications.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	inbox, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := inboxResponse{
		Unread:        inbox.Unread,
		Notifications: make([]notificationResponse, 0, len(inbox.Items)),
	}
	for _, n := range inbox.Items {
		resp.Notifications = append(resp.Notifications, toNotificationResponse(n))
	}
	writeData(w, http.StatusOK, resp)
}

// MarkRead handles PATCH /notifications/{id}/read.
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id: must be a uuid")
		return
	}

	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, message{ID: id, Message: "Notification marked as read"})
}

// MarkAllRead handles PATCH /notifications/read-all.
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.MarkAllRead(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"updated": n,
		"message": "All notifications marked as read",
	})
}
