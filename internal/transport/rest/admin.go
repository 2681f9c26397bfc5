package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
)

type userAdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
}

// AdminHandler serves admin user management endpoints.
type AdminHandler struct {
	users userAdminService
	log   *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(users userAdminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		users: users,
		log:   logger.With("handler", "admin"),
	}
}

type userListResponse struct {
	Total int            `json:"total"`
	Users []userResponse `json:"users"`
}

type roleRequest struct {
	Role string `json:"role"`
}

// ListUsers returns a page of users.
// GET /admin/users?limit=50&offset=0
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	users, total, err := h.users.ListUsers(r.Context(), limit, offset)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := userListResponse{Total: total, Users: make([]userResponse, 0, len(users))}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	writeData(w, http.StatusOK, resp)
}

// SetRole changes a user's role.
// PATCH /admin/users/{id}/role
func (h *AdminHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id: must be a uuid")
		return
	}

	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.users.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeData(w, http.StatusOK, toUserResponse(u))
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
