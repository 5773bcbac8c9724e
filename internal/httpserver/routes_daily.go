package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mikhaidn/PlokminFun-sub002/internal/daily"
	"github.com/mikhaidn/PlokminFun-sub002/internal/store"
)

// mountDaily registers the daily-deal routes. Everyone who asks on the
// same UTC date gets the same seed, so results are comparable.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/api/daily", func(r chi.Router) {
		r.Get("/", s.handleDaily)
		r.Post("/result", s.handleDailyResult)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyRes describes today's deterministic deal.
type dailyRes struct {
	Date string `json:"date"`
	Seed uint64 `json:"seed"`
}

func (s *Server) handleDaily(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	writeJSON(w, http.StatusOK, dailyRes{
		Date: daily.DateKey(now),
		Seed: daily.Seed(now, s.salt),
	})
}

type dailyResultReq struct {
	Player string `json:"player"`
	Moves  int    `json:"moves"`
	Won    bool   `json:"won"`
}

func (s *Server) handleDailyResult(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	var req dailyResultReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Player == "" || req.Moves < 0 {
		writeError(w, http.StatusBadRequest, "player and non-negative moves required")
		return
	}
	res := store.DailyResult{
		Date:   daily.DateKey(time.Now().UTC()),
		Player: req.Player,
		Moves:  req.Moves,
		Won:    req.Won,
	}
	if err := s.store.RecordDailyResult(r.Context(), res); err != nil {
		s.log.Errorf("record daily result: %v", err)
		writeError(w, http.StatusInternalServerError, "record failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(time.Now().UTC())
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.store.DailyLeaderboard(r.Context(), date, limit)
	if err != nil {
		s.log.Errorf("daily leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "leaderboard failed")
		return
	}
	if rows == nil {
		rows = []store.DailyResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "results": rows})
}
