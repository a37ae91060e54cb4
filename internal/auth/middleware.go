package auth

import (
	"net/http"
)

const LoginPath = "/login/"

// OwnerAuthMiddleware sends requests without an owner session to the login
// page. It never touches the request body, so nothing is stored.
func (m *SessionManager) OwnerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.IsOwner(r) {
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
