package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "scheduler_session"

// SessionClaims is the payload of the session cookie. IsOwner is only ever
// set after the owner password was accepted.
type SessionClaims struct {
	IsOwner bool `json:"is_owner"`
	jwt.RegisteredClaims
}

// SessionManager issues and reads HS256-signed session cookies.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

// IssueOwner marks the caller's session as owner.
func (m *SessionManager) IssueOwner(w http.ResponseWriter) error {
	now := m.now()
	claims := SessionClaims{
		IsOwner: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// IsOwner reports whether the request carries a valid owner session.
func (m *SessionManager) IsOwner(r *http.Request) bool {
	claims, err := m.parse(r)
	return err == nil && claims.IsOwner
}

func (m *SessionManager) parse(r *http.Request) (*SessionClaims, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, err
	}
	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !claims.IsOwner {
		return nil, errors.New("not an owner session")
	}
	return claims, nil
}
