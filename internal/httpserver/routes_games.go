package httpserver

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mikhaidn/PlokminFun-sub002/engine"
	"github.com/mikhaidn/PlokminFun-sub002/internal/table"
)

// createGameReq starts a session. Exactly one of seed or shareCode is
// consulted; a missing seed gets a random one.
type createGameReq struct {
	GameType  string  `json:"gameType"`
	Seed      *uint64 `json:"seed,omitempty"`
	DrawCount int     `json:"drawCount,omitempty"`
	ShareCode string  `json:"shareCode,omitempty"`
}

// createGameRes wraps the new session's ID and initial state.
type createGameRes struct {
	ID    uuid.UUID   `json:"id"`
	Event table.Event `json:"event"`
}

func randomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}
	return binary.BigEndian.Uint64(b[:])
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var sess *table.Session
	switch {
	case req.ShareCode != "":
		imported, err := s.tables.CreateFromShareCode(req.ShareCode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		sess = imported
	case req.GameType == engine.GameFreeCell.String():
		seed := randomSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		sess = s.tables.CreateFreeCell(seed)
	case req.GameType == engine.GameKlondike.String():
		seed := randomSeed()
		if req.Seed != nil {
			seed = *req.Seed
		}
		rules := engine.DefaultKlondikeRules()
		if req.DrawCount != 0 {
			if req.DrawCount != 1 && req.DrawCount != 3 {
				writeError(w, http.StatusBadRequest, "drawCount must be 1 or 3")
				return
			}
			rules.DrawCount = uint8(req.DrawCount)
		}
		sess = s.tables.CreateKlondike(seed, rules)
	default:
		writeError(w, http.StatusBadRequest, "gameType must be freecell or klondike")
		return
	}

	writeJSON(w, http.StatusCreated, createGameRes{ID: sess.ID, Event: sess.Snapshot()})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	if err := s.tables.Remove(r.Context(), id); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// moveReq addresses a single move.
type moveReq struct {
	From engine.Location `json:"from"`
	To   engine.Location `json:"to"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req moveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ev := sess.Apply(table.Command{Action: table.ActionMove, From: &req.From, To: &req.To})
	writeJSON(w, eventStatus(ev), ev)
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	s.applySimple(w, r, table.ActionDraw)
}

func (s *Server) handleAutoMove(w http.ResponseWriter, r *http.Request) {
	s.applySimple(w, r, table.ActionAutoMove)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.applySimple(w, r, table.ActionUndo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.applySimple(w, r, table.ActionRedo)
}

func (s *Server) applySimple(w http.ResponseWriter, r *http.Request, action table.Action) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	ev := sess.Apply(table.Command{Action: action})
	writeJSON(w, eventStatus(ev), ev)
}

// destinationsReq asks where a pickup may land.
type destinationsReq struct {
	From engine.Location `json:"from"`
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req destinationsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, sess.Destinations(req.From))
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"shareCode": sess.ShareCode()})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.tables.Persist(r.Context(), sess.ID); err != nil {
		s.log.WithField("session_id", sess.ID).Errorf("persist: %v", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// eventStatus maps a rejected command to 422 so clients can tell an
// illegal move from a transport error.
func eventStatus(ev table.Event) int {
	if ev.Type == table.EventMoveRejected {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}
