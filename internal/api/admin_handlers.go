package api

import (
	"errors"
	"net/http"

	"scheduler/internal/entities"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/service"
)

type AdminHandler struct {
	Service *service.SlotService
	views   *Renderer
}

func NewAdminHandler(svc *service.SlotService, views *Renderer) *AdminHandler {
	return &AdminHandler{Service: svc, views: views}
}

func (h *AdminHandler) Panel(w http.ResponseWriter, r *http.Request) {
	h.renderPanel(w, r)
}

// CreateSlot adds a slot from the "date" and "time" fields, then shows the
// updated list.
func (h *AdminHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req, err := entities.ParseSlotForm(r.PostForm)
	if err != nil {
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			apperrors.Write(w, apperrors.ErrBadRequest(verr.Error()))
			return
		}
		h.views.fail(w, r, err)
		return
	}
	if _, err := h.Service.CreateSlot(r.Context(), req); err != nil {
		h.views.fail(w, r, err)
		return
	}
	h.renderPanel(w, r)
}

func (h *AdminHandler) renderPanel(w http.ResponseWriter, r *http.Request) {
	slots, err := h.Service.ListSlots(r.Context())
	if err != nil {
		h.views.fail(w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "admin_panel.html", map[string]any{"Slots": slots})
}
