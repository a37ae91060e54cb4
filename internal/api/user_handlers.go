package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"scheduler/internal/entities"
	apperrors "scheduler/internal/errors"
	"scheduler/internal/service"
)

type UserBookingHandler struct {
	Service *service.BookingService
	views   *Renderer
}

func NewUserBookingHandler(svc *service.BookingService, views *Renderer) *UserBookingHandler {
	return &UserBookingHandler{Service: svc, views: views}
}

func (h *UserBookingHandler) BookingForm(w http.ResponseWriter, r *http.Request) {
	id, ok := slotID(r)
	if !ok {
		apperrors.Write(w, apperrors.ErrNotFound("Slot not found"))
		return
	}
	slot, err := h.Service.GetBookableSlot(r.Context(), id)
	if err != nil {
		h.writeErr(w, r, err)
		return
	}
	h.views.Render(w, r, http.StatusOK, "book.html", map[string]any{"Slot": slot})
}

// CreateBooking books the slot and sends the requester back to the calendar.
func (h *UserBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := slotID(r)
	if !ok {
		apperrors.Write(w, apperrors.ErrNotFound("Slot not found"))
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	req, err := entities.ParseBookingForm(r.PostForm)
	if err != nil {
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			apperrors.Write(w, apperrors.ErrBadRequest(verr.Error()))
			return
		}
		h.views.fail(w, r, err)
		return
	}
	if _, err := h.Service.CreateBooking(r.Context(), id, req); err != nil {
		h.writeErr(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *UserBookingHandler) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrSlotNotFound) {
		apperrors.Write(w, apperrors.ErrNotFound("Slot not found"))
		return
	}
	h.views.fail(w, r, err)
}

func slotID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["slot_id"], 10, strconv.IntSize)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
