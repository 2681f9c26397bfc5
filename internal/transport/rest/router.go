package rest

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/heartmarshall/ireporter-backend/internal/domain"
	"github.com/heartmarshall/ireporter-backend/internal/transport/middleware"
)

// APIPrefix is the base path of every API route.
const APIPrefix = "/api/v1"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health        *HealthHandler
	Auth          *AuthHandler
	Reports       *ReportHandler
	Notifications *NotificationHandler
	Admin         *AdminHandler

	// UploadDir is served read-only under UploadPath when both are set.
	UploadDir  string
	UploadPath string
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST "+APIPrefix+"/auth/signup", h.Auth.Signup)
	mux.HandleFunc("POST "+APIPrefix+"/auth/login", h.Auth.Login)
	mux.Handle("GET "+APIPrefix+"/auth/me", middleware.RequireAuth(http.HandlerFunc(h.Auth.Me)))

	for _, kind := range []domain.ReportKind{domain.ReportKindRedFlag, domain.ReportKindIntervention} {
		base := APIPrefix + "/" + kind.PathSegment()
		item := base + "/{id}"

		mux.Handle("GET "+base, authed(h.Reports.List(kind)))
		mux.Handle("POST "+base, authed(h.Reports.Create(kind)))
		mux.Handle("GET "+item, authed(h.Reports.Get(kind)))
		mux.Handle("PUT "+item, authed(h.Reports.Update(kind)))
		mux.Handle("DELETE "+item, authed(h.Reports.Delete(kind)))
		mux.Handle("PATCH "+item+"/location", authed(h.Reports.UpdateLocation(kind)))
		mux.Handle("PATCH "+item+"/comment", authed(h.Reports.UpdateComment(kind)))
		mux.Handle("PATCH "+item+"/media", authed(h.Reports.AddMedia(kind)))
		mux.Handle("PATCH "+item+"/status", middleware.RequireAdmin(h.Reports.UpdateStatus(kind)))
	}

	mux.Handle("GET "+APIPrefix+"/notifications", authed(h.Notifications.List))
	mux.Handle("PATCH "+APIPrefix+"/notifications/read-all", authed(h.Notifications.MarkAllRead))
	mux.Handle("PATCH "+APIPrefix+"/notifications/{id}/read", authed(h.Notifications.MarkRead))

	mux.Handle("GET "+APIPrefix+"/admin/users", middleware.RequireAdmin(http.HandlerFunc(h.Admin.ListUsers)))
	mux.Handle("PATCH "+APIPrefix+"/admin/users/{id}/role", middleware.RequireAdmin(http.HandlerFunc(h.Admin.SetRole)))

	if h.UploadDir != "" && h.UploadPath != "" {
		mux.Handle("GET "+h.UploadPath, http.StripPrefix(h.UploadPath, uploadsHandler(h.UploadDir)))
	}

	return mux
}

func authed(fn http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(fn)
}

// uploadsHandler serves stored media files without directory listings. The
// Content-Type comes from the file's content, and anything that is not an
// image or video is sent as an attachment.
func uploadsHandler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || r.URL.Path[len(r.URL.Path)-1] == '/' {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")

		name := filepath.FromSlash(path.Clean("/" + r.URL.Path))
		if mt, err := mimetype.DetectFile(filepath.Join(dir, name)); err == nil {
			w.Header().Set("Content-Type", mt.String())
			if !inlineMedia(mt.String()) {
				w.Header().Set("Content-Disposition", "attachment")
			}
		}
		files.ServeHTTP(w, r)
	})
}

// inlineMedia reports whether a type may be rendered by the browser. SVG is
// excluded because it can carry script.
func inlineMedia(mimeType string) bool {
	mt := strings.ToLower(mimeType)
	if strings.HasPrefix(mt, "image/svg") {
		return false
	}
	return strings.HasPrefix(mt, "image/") || strings.HasPrefix(mt, "video/")
}
