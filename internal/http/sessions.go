package http

import (
	"net/http"

	"recycling/internal/log"
	"recycling/internal/session"
)

const sessionCookie = "recycling_session"

// sessionFor returns the caller's live session, starting a new one (and a
// dataset refresh, when configured) if the cookie is missing or expired.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) session.State {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if st, ok := s.sessions.Get(c.Value); ok {
			return st
		}
	}

	st := s.sessions.Start()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    st.ID,
		Path:     "/",
		MaxAge:   int(s.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	if s.opts.ReloadOnSession {
		s.holder.Refresh()
	}
	log.FromContext(r.Context()).DebugContext(r.Context(), "Session started",
		log.FieldSessionID, st.ID, log.FieldClientIP, clientIP(r))
	return st
}
