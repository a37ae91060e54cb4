package api

import (
	"net/http"

	"scheduler/internal/service"
)

type CalendarHandler struct {
	Service *service.CalendarService
	views   *Renderer
}

func NewCalendarHandler(svc *service.CalendarService, views *Renderer) *CalendarHandler {
	return &CalendarHandler{Service: svc, views: views}
}

// Index renders the current month. Only open slots are linked.
func (h *CalendarHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, err := h.Service.CurrentMonth(r.Context())
	if err != nil {
		h.views.fail(w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "calendar.html", map[string]any{"Calendar": view})
}
