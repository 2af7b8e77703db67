package utils

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

const sessionName = "crudclinic_session"

// SessionUser is the summary stored server-side after a successful login.
type SessionUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func init() {
	gob.Register(SessionUser{})
}

// SessionStore wraps the cookie store. Session lifetime is configured
// independently of the JWT expiry and the two can drift.
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(secret string, maxAge int) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		// Secure stays false for plain-HTTP development deployments.
	}
	return &SessionStore{store: store}
}

func (s *SessionStore) SaveUser(w http.ResponseWriter, r *http.Request, user SessionUser) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values["user"] = user
	return session.Save(r, w)
}

func (s *SessionStore) User(r *http.Request) (SessionUser, bool) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return SessionUser{}, false
	}
	user, ok := session.Values["user"].(SessionUser)
	return user, ok
}

// Destroy invalidates the session cookie.
func (s *SessionStore) Destroy(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	delete(session.Values, "user")
	return session.Save(r, w)
}
