package http

import (
	"context"
	"net/http"
	"time"

	"recycling/internal/dataset"
	"recycling/internal/identity"
	"recycling/internal/log"
	"recycling/internal/session"
)

type readyResponse struct {
	Status   string    `json:"status"`
	LoadedAt time.Time `json:"loadedAt"`
	Failed   []string  `json:"failed,omitempty"`
}

type logoutResponse struct {
	Status string `json:"status"`
	Page   int    `json:"page"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// handleReady reports 503 until the first dataset load has completed.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	snap := s.holder.Snapshot()
	if !snap.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Status: "loading"})
		return
	}
	resp := readyResponse{Status: "ready", LoadedAt: snap.LoadedAt}
	for _, ds := range snap.Failed {
		resp.Failed = append(resp.Failed, string(ds))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	ctx := r.Context()
	creds, err := parseCredentials(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	st := s.sessionFor(w, r)
	snap := s.snapshot(ctx)

	id, err := identity.Resolve(creds, snap.Users)
	if err != nil {
		s.audit.LogLogin(ctx, creds.UserID, "", false)
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	st, ok := s.sessions.Login(st.ID, id)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Session expired")
		return
	}
	s.audit.LogLogin(ctx, id.UserID(), id.Role.String(), true)
	s.writeDashboard(ctx, w, st, snap)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	st := s.sessionFor(w, r)
	if st.LoggedIn() {
		log.FromContext(r.Context()).InfoContext(r.Context(), "User signed out",
			log.FieldUserID, st.Identity.UserID(), log.FieldOperation, log.OpLogout)
	}
	st, _ = s.sessions.Logout(st.ID)
	writeJSON(w, http.StatusOK, logoutResponse{Status: "logged_out", Page: st.Pager.Current()})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	st := s.sessionFor(w, r)
	if !st.LoggedIn() {
		writeError(w, http.StatusUnauthorized, "Not signed in")
		return
	}
	s.writeDashboard(r.Context(), w, st, s.snapshot(r.Context()))
}

// handlePage moves the session's page with move and returns the dashboard.
func (s *Server) handlePage(move func(string) (session.State, bool)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		st := s.sessionFor(w, r)
		if !st.LoggedIn() {
			writeError(w, http.StatusUnauthorized, "Not signed in")
			return
		}
		st, ok := move(st.ID)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Session expired")
			return
		}
		log.FromContext(r.Context()).DebugContext(r.Context(), "Page changed",
			log.FieldSessionID, st.ID, log.FieldPage, st.Pager.Current(), log.FieldOperation, log.OpPaginate)
		s.writeDashboard(r.Context(), w, st, s.snapshot(r.Context()))
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	s.holder.Refresh()
	log.FromContext(r.Context()).InfoContext(r.Context(), "Dataset reload requested", log.FieldOperation, log.OpReload)
	writeJSON(w, http.StatusAccepted, statusResponse{Status: "reloading"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not found")
}

// snapshot returns the current datasets, waiting for the first load if
// none has completed. The wait is detached from the request so a client
// disconnect does not abort a load other requests share.
func (s *Server) snapshot(ctx context.Context) *dataset.Snapshot {
	if snap := s.holder.Snapshot(); snap.Loaded() {
		return snap
	}
	return s.holder.Reload(context.WithoutCancel(ctx))
}

func (s *Server) writeDashboard(ctx context.Context, w http.ResponseWriter, st session.State, snap *dataset.Snapshot) {
	v := s.engine.Aggregate(*st.Identity, snap.Transactions, snap.Dropboxes, s.opts.Now())
	log.FromContext(ctx).DebugContext(ctx, "Dashboard computed",
		log.FieldUserID, st.Identity.UserID(),
		log.FieldRole, v.Role.String(),
		log.FieldOutcome, v.Outcome.String(),
		log.FieldOperation, log.OpAggregate)
	writeJSON(w, http.StatusOK, renderDashboard(st, v, s.opts.PageSize, s.engine.Config().Location))
}
