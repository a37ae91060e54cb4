package api

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"scheduler/internal/auth"
	"scheduler/internal/templates"
)

type Handlers struct {
	Calendar *CalendarHandler
	Auth     *AdminAuthHandler
	Admin    *AdminHandler
	Booking  *UserBookingHandler
}

// NewRouter registers the page routes. Paths end in a slash; StrictSlash
// redirects the bare form.
func NewRouter(h Handlers, sessions *auth.SessionManager) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)

	// Public endpoints
	r.HandleFunc("/", h.Calendar.Index).Methods(http.MethodGet)
	r.HandleFunc("/login/", h.Auth.LoginForm).Methods(http.MethodGet)
	r.HandleFunc("/login/", h.Auth.Login).Methods(http.MethodPost)
	r.HandleFunc("/book/{slot_id:[0-9]+}/", h.Booking.BookingForm).Methods(http.MethodGet)
	r.HandleFunc("/book/{slot_id:[0-9]+}/", h.Booking.CreateBooking).Methods(http.MethodPost)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(templates.Static()))))

	// Owner endpoints (protected)
	admin := r.PathPrefix("/admin_panel").Subrouter()
	admin.Use(sessions.OwnerAuthMiddleware)
	admin.HandleFunc("/", h.Admin.Panel).Methods(http.MethodGet)
	admin.HandleFunc("/", h.Admin.CreateSlot).Methods(http.MethodPost)

	return r
}

type Options struct {
	// CSRFKey enables CSRF protection on every unsafe request when set.
	CSRFKey       []byte
	SecureCookies bool
	Log           *zap.Logger
}

// NewHandler wraps the router in the middleware stack used by the server.
func NewHandler(router http.Handler, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	h := router
	if len(opts.CSRFKey) > 0 {
		h = csrf.Protect(opts.CSRFKey,
			csrf.Secure(opts.SecureCookies),
			csrf.Path("/"),
			csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log.Warn("csrf check failed",
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestID(r.Context())),
					zap.Error(csrf.FailureReason(r)),
				)
				http.Error(w, "Forbidden", http.StatusForbidden)
			})),
		)(h)
	}
	h = handlers.CompressHandler(h)
	h = accessLog(log, h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(log)),
		handlers.PrintRecoveryStack(true),
	)(h)
	h = handlers.ProxyHeaders(h)
	return requestIDMiddleware(h)
}
