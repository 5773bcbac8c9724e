package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mikhaidn/PlokminFun-sub002/engine"
	"github.com/mikhaidn/PlokminFun-sub002/internal/store"
)

// ErrSessionNotFound is returned when no live or saved session
// matches the requested ID.
var ErrSessionNotFound = errors.New("session not found")

// Manager owns all live sessions and their persistence.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	store        *store.Store
	historyLimit int
	log          *logrus.Entry
}

// NewManager wires a session manager over the given store. The store
// may be nil, in which case sessions are memory-only.
func NewManager(st *store.Store, historyLimit int, log *logrus.Logger) *Manager {
	return &Manager{
		sessions:     make(map[uuid.UUID]*Session),
		store:        st,
		historyLimit: historyLimit,
		log:          log.WithField("component", "table"),
	}
}

// CreateFreeCell starts a new FreeCell session from seed.
func (m *Manager) CreateFreeCell(seed uint64) *Session {
	return m.add(NewFreeCell(seed, m.historyLimit))
}

// CreateKlondike starts a new Klondike session from seed under rules.
func (m *Manager) CreateKlondike(seed uint64, rules engine.KlondikeRules) *Session {
	return m.add(NewKlondike(seed, rules, m.historyLimit))
}

// CreateFromShareCode imports a shared position into a new session.
func (m *Manager) CreateFromShareCode(code string) (*Session, error) {
	typ, err := engine.ShareCodeType(code)
	if err != nil {
		return nil, err
	}
	switch typ {
	case engine.GameFreeCell:
		state, err := engine.DecodeFreeCellShareCode(code)
		if err != nil {
			return nil, err
		}
		return m.add(NewFreeCellFromState(state, m.historyLimit)), nil
	case engine.GameKlondike:
		state, err := engine.DecodeKlondikeShareCode(code)
		if err != nil {
			return nil, err
		}
		return m.add(NewKlondikeFromState(state, m.historyLimit)), nil
	default:
		return nil, fmt.Errorf("unsupported game type %v", typ)
	}
}

func (m *Manager) add(g Game) *Session {
	id := uuid.New()
	s := newSession(id, g, m.log)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.log.WithFields(logrus.Fields{
		"session_id": id,
		"game_type":  g.Type().String(),
	}).Info("session created")
	return s
}

// Get returns the live session with the given ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Remove drops a session from memory and deletes its saved state.
func (m *Manager) Remove(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	if m.store != nil {
		return m.store.DeleteGame(ctx, id.String())
	}
	return nil
}

// Persist writes a session's undo history to the store so it can be
// resumed after a restart.
func (m *Manager) Persist(ctx context.Context, id uuid.UUID) error {
	s, err := m.Get(id)
	if err != nil {
		return err
	}
	if m.store == nil {
		return errors.New("no store configured")
	}
	hist, code, err := s.serializeHistory()
	if err != nil {
		return fmt.Errorf("serialize session %s: %w", id, err)
	}
	return m.store.SaveGame(ctx, store.SavedGame{
		ID:        id.String(),
		GameType:  s.GameType(),
		History:   hist,
		ShareCode: code,
		UpdatedAt: time.Now().UTC(),
	})
}

// Resume rebuilds a session from its saved history. A corrupt save is
// not fatal: the share code still identifies the deal, so the session
// restarts from the imported position with an empty history.
func (m *Manager) Resume(ctx context.Context, id uuid.UUID) (*Session, error) {
	if s, err := m.Get(id); err == nil {
		return s, nil
	}
	if m.store == nil {
		return nil, ErrSessionNotFound
	}
	saved, err := m.store.LoadGame(ctx, id.String())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var g Game
	switch saved.GameType {
	case engine.GameFreeCell.String():
		state, derr := engine.DecodeFreeCellShareCode(saved.ShareCode)
		if derr != nil {
			return nil, fmt.Errorf("saved game %s: %w", id, derr)
		}
		g = NewFreeCellFromState(state, m.historyLimit)
	case engine.GameKlondike.String():
		state, derr := engine.DecodeKlondikeShareCode(saved.ShareCode)
		if derr != nil {
			return nil, fmt.Errorf("saved game %s: %w", id, derr)
		}
		g = NewKlondikeFromState(state, m.historyLimit)
	default:
		return nil, fmt.Errorf("saved game %s: unknown game type %q", id, saved.GameType)
	}

	if rerr := g.RestoreHistory(saved.History); rerr != nil {
		m.log.WithField("session_id", id).Warnf("history restore failed, resuming from share code: %v", rerr)
	}

	s := newSession(id, g, m.log)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()
	m.log.WithFields(logrus.Fields{
		"session_id": id,
		"game_type":  saved.GameType,
	}).Info("session resumed")
	return s, nil
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// PruneIdle drops sessions untouched for longer than maxIdle from
// memory. Saved games stay in the store, so a pruned session can
// still be resumed. Returns the number of sessions dropped.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	if n > 0 {
		m.log.WithField("pruned", n).Info("idle sessions dropped")
	}
	return n
}
