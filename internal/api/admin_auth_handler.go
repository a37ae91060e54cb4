package api

import (
	"net/http"

	"go.uber.org/zap"

	"scheduler/internal/auth"
	"scheduler/internal/service"
)

const adminPanelPath = "/admin_panel/"

type AdminAuthHandler struct {
	service  service.OwnerAuthService
	sessions *auth.SessionManager
	views    *Renderer
	log      *zap.Logger
}

func NewAdminAuthHandler(svc service.OwnerAuthService, sessions *auth.SessionManager, views *Renderer, log *zap.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc, sessions: sessions, views: views, log: log}
}

func (h *AdminAuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, http.StatusOK, "login.html", map[string]any{"Failed": false})
}

// Login grants the owner flag on the correct password and shows the form
// again otherwise.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if !h.service.AttemptLogin(r.PostFormValue("password")) {
		h.log.Info("owner login failed", zap.String("remote_addr", r.RemoteAddr))
		h.views.Render(w, r, http.StatusOK, "login.html", map[string]any{"Failed": true})
		return
	}

	if err := h.sessions.IssueOwner(w); err != nil {
		h.views.fail(w, r, err)
		return
	}
	h.log.Info("owner logged in", zap.String("remote_addr", r.RemoteAddr))
	http.Redirect(w, r, adminPanelPath, http.StatusFound)
}
