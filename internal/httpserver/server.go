// Package httpserver exposes the solitaire engine over HTTP and
// WebSockets.
//
//   - POST /api/games              → create a session (new deal or share code)
//   - GET  /api/games/{id}         → current state (resumes from the store)
//   - POST /api/games/{id}/move    → apply a move
//   - POST /api/games/{id}/draw    → draw from the stock (Klondike)
//   - POST /api/games/{id}/automove→ sweep safe cards to the foundations
//   - POST /api/games/{id}/undo    → step back
//   - POST /api/games/{id}/redo    → step forward
//   - POST /api/games/{id}/destinations → legal targets for a pickup
//   - GET  /api/games/{id}/share   → export the position as a share code
//   - POST /api/games/{id}/save    → persist the undo history
//   - DELETE /api/games/{id}       → drop the session and its save
//   - GET  /api/daily              → today's deterministic deal seed
//   - POST /api/daily/result       → record a daily finish
//   - GET  /api/daily/leaderboard  → top daily finishes
//   - GET  /ws/{id}                → live command stream for a session
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mikhaidn/PlokminFun-sub002/internal/store"
	"github.com/mikhaidn/PlokminFun-sub002/internal/table"
)

// Server bundles the router, session manager, and persistence.
type Server struct {
	r      *chi.Mux
	tables *table.Manager
	store  *store.Store
	salt   string
	log    *logrus.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(tables *table.Manager, st *store.Store, dailySalt string, log *logrus.Logger) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		tables: tables,
		store:  st,
		salt:   dailySalt,
		log:    log,
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)

	// Websockets are long-lived, so the request timeout only wraps
	// the plain HTTP API.
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(15 * time.Second))
		r.Use(jsonContentType)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		r.Route("/api/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGame)
				r.Delete("/", s.handleDeleteGame)
				r.Post("/move", s.handleMove)
				r.Post("/draw", s.handleDraw)
				r.Post("/automove", s.handleAutoMove)
				r.Post("/undo", s.handleUndo)
				r.Post("/redo", s.handleRedo)
				r.Post("/destinations", s.handleDestinations)
				r.Get("/share", s.handleShare)
				r.Post("/save", s.handleSave)
			})
		})

		s.mountDaily(r)
	})

	s.r.Get("/ws/{id}", s.handleWebsocket)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return s
}

// Router exposes the internal router for tests.
func (s *Server) Router() chi.Router { return s.r }

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	s.log.WithField("addr", addr).Info("http server listening")
	return http.ListenAndServe(addr, s.r)
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// session resolves {id} to a live session, resuming from the store
// when the session is not in memory.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*table.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	sess, err := s.tables.Resume(r.Context(), id)
	if err != nil {
		if errors.Is(err, table.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
		} else {
			s.log.WithField("session_id", id).Errorf("resume: %v", err)
			writeError(w, http.StatusInternalServerError, "resume failed")
		}
		return nil, false
	}
	return sess, true
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	sess, err := s.tables.Resume(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Debugf("websocket accept: %v", err)
		return
	}
	sess.ServeConn(r.Context(), conn)
}
