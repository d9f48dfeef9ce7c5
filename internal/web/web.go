package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"agendacal/internal/agenda"
	"agendacal/internal/config"
	"agendacal/internal/dates"
	appLog "agendacal/internal/log"
	"agendacal/internal/store"
)

// Server serves the agenda as JSON and HTML.
type Server struct {
	cfg   *config.Config
	view  *agenda.View
	store *store.Store
	loc   *time.Location
	mux   *http.ServeMux

	// now is replaceable in tests.
	now func() time.Time
}

// NewServer constructs a Server rendering st's events with view.
func NewServer(cfg *config.Config, view *agenda.View, st *store.Store) *Server {
	s := &Server{
		cfg:   cfg,
		view:  view,
		store: st,
		loc:   cfg.Location(),
		mux:   http.NewServeMux(),
		now:   time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the root handler, wrapped in basic auth when configured.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// Empty username or password means disabled.
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware guards every path except /health.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="agendacal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/agenda", s.handleAgendaJSON)
	s.mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	s.mux.HandleFunc("GET /agenda", s.handleAgendaHTML)
	s.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/agenda", http.StatusFound)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// agendaQuery is the parsed query of an agenda request.
//
//	GET /api/agenda?date=2024-01-10&days=7&nav=NEXT
//	  - date: anchor day (YYYY-MM-DD), default today
//	  - days: window length, default from config, at most max_length_days
//	  - nav:  PREV / NEXT / TODAY applied to date
type agendaQuery struct {
	anchor time.Time
	days   int
}

var errBadDate = errors.New("invalid date, expected YYYY-MM-DD")

func (s *Server) parseQuery(r *http.Request) (agendaQuery, error) {
	q := r.URL.Query()
	today := dates.StartOfDay(s.now().In(s.loc))

	out := agendaQuery{anchor: today, days: s.view.Length()}
	if v := q.Get("date"); v != "" {
		d, err := time.ParseInLocation("2006-01-02", v, s.loc)
		if err != nil {
			return out, errBadDate
		}
		out.anchor = d
	}
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return out, errors.New("invalid days")
		}
		if n > s.cfg.MaxLengthDays {
			return out, fmt.Errorf("days must be at most %d", s.cfg.MaxLengthDays)
		}
		out.days = n
	}

	switch dir := agenda.Direction(q.Get("nav")); dir {
	case agenda.Today:
		out.anchor = today
	default:
		out.anchor = agenda.Navigate(out.anchor, dir, out.days)
	}
	return out, nil
}

func (s *Server) buildAgenda(r *http.Request) (agenda.Agenda, int, error) {
	q, err := s.parseQuery(r)
	if err != nil {
		return agenda.Agenda{}, http.StatusBadRequest, err
	}
	a, err := s.view.BuildLength(q.anchor, q.days, s.store.Events())
	if err != nil {
		appLog.Error("agenda build failed", err)
		return agenda.Agenda{}, http.StatusInternalServerError, errors.New("failed to build agenda")
	}
	appLog.Debug("agenda built",
		"anchor", q.anchor.Format("2006-01-02"),
		"days", q.days,
		"empty", a.Empty,
	)
	return a, http.StatusOK, nil
}

// agendaResponse is the JSON shape of /api/agenda.
type agendaResponse struct {
	agenda.Agenda
	Prev            string    `json:"prev"`
	Next            string    `json:"next"`
	DisplayTimeZone string    `json:"display_timezone"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (s *Server) handleAgendaJSON(w http.ResponseWriter, r *http.Request) {
	a, status, err := s.buildAgenda(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, agendaResponse{
		Agenda:          a,
		Prev:            agenda.Navigate(a.Window.Start, agenda.Previous, a.Length).Format("2006-01-02"),
		Next:            agenda.Navigate(a.Window.Start, agenda.Next, a.Length).Format("2006-01-02"),
		DisplayTimeZone: s.loc.String(),
		UpdatedAt:       s.store.Snapshot().UpdatedAt,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Refresh(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, "refresh failed")
		return
	}
	snap := s.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"event_count": len(snap.Events),
		"updated_at":  snap.UpdatedAt,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
