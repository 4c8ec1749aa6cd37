package session

import (
	"net/http"
)

// CookieName is the cookie carrying the session id.
const CookieName = "metricboard_session"

// Load returns the request's session, starting a new one (and setting its
// cookie) when the request has none or it has expired.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, err := s.Get(c.Value); err == nil {
			return sess
		}
	}

	sess := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}
