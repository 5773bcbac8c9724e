package table

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mikhaidn/PlokminFun-sub002/engine"
)

// Session binds one game to an ID and serializes all access to it.
// Commands may arrive from HTTP handlers and a websocket concurrently.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	game     Game
	lastUsed time.Time
	log      *logrus.Entry
}

func newSession(id uuid.UUID, g Game, log *logrus.Entry) *Session {
	return &Session{
		ID:       id,
		game:     g,
		lastUsed: time.Now(),
		log:      log.WithField("session_id", id),
	}
}

// Apply runs a command against the session's game and returns the
// resulting event. Rejected commands never mutate the game.
func (s *Session) Apply(cmd Command) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	switch cmd.Action {
	case ActionMove:
		if cmd.From == nil || cmd.To == nil {
			return s.rejectLocked("move requires from and to")
		}
		if err := s.game.Move(*cmd.From, *cmd.To); err != nil {
			s.log.WithField("action", cmd.Action).Debugf("move rejected: %v", err)
			return s.rejectLocked(err.Error())
		}
		return s.eventLocked(EventMoveApplied)
	case ActionDraw:
		if err := s.game.Draw(); err != nil {
			return s.rejectLocked(err.Error())
		}
		return s.eventLocked(EventMoveApplied)
	case ActionAutoMove:
		if !s.game.AutoMove() {
			return s.rejectLocked("no safe foundation moves available")
		}
		return s.eventLocked(EventMoveApplied)
	case ActionUndo:
		if !s.game.Undo() {
			return s.rejectLocked("nothing to undo")
		}
		return s.eventLocked(EventStateSync)
	case ActionRedo:
		if !s.game.Redo() {
			return s.rejectLocked("nothing to redo")
		}
		return s.eventLocked(EventStateSync)
	case ActionSync:
		return s.eventLocked(EventStateSync)
	default:
		return s.rejectLocked(fmt.Sprintf("unknown action %q", cmd.Action))
	}
}

// Destinations answers a destination query without touching history.
func (s *Session) Destinations(from engine.Location) DestinationsResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return DestinationsResult{
		Type: EventDestinations,
		From: from,
		To:   s.game.Destinations(from),
	}
}

// Snapshot returns a full state event for the session.
func (s *Session) Snapshot() Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.eventLocked(EventStateSync)
}

// ShareCode exports the current position.
func (s *Session) ShareCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.ShareCode()
}

// GameType reports which variant this session runs.
func (s *Session) GameType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Type().String()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// serializeHistory snapshots the undo history for persistence.
func (s *Session) serializeHistory() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := s.game.SerializeHistory()
	if err != nil {
		return nil, "", err
	}
	return data, s.game.ShareCode(), nil
}

func (s *Session) eventLocked(t EventType) Event {
	won := s.game.Won()
	if won && t == EventMoveApplied {
		t = EventGameWon
	}
	ev := Event{
		Type:     t,
		GameType: s.game.Type().String(),
		Moves:    s.game.Moves(),
		CanUndo:  s.game.CanUndo(),
		CanRedo:  s.game.CanRedo(),
		Won:      won,
	}
	state, err := s.game.StateJSON()
	if err != nil {
		s.log.Errorf("marshal state: %v", err)
	} else {
		ev.State = state
	}
	if won {
		ev.ShareCode = s.game.ShareCode()
	}
	return ev
}

func (s *Session) rejectLocked(reason string) Event {
	return Event{
		Type:     EventMoveRejected,
		GameType: s.game.Type().String(),
		Moves:    s.game.Moves(),
		CanUndo:  s.game.CanUndo(),
		CanRedo:  s.game.CanRedo(),
		Won:      s.game.Won(),
		Reason:   reason,
	}
}

func (s *Session) rejectWith(reason string) Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rejectLocked(reason)
}

// ServeConn pumps commands from a websocket until the client leaves
// or ctx is canceled. Every command gets exactly one reply; an initial
// state sync is pushed on attach.
func (s *Session) ServeConn(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close(websocket.StatusNormalClosure, "session detached")

	if err := wsjson.Write(ctx, conn, s.Snapshot()); err != nil {
		s.log.Debugf("initial sync failed: %v", err)
		return
	}

	for {
		var cmd Command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway ||
				errors.Is(err, context.Canceled) {
				return
			}
			s.log.Debugf("read command: %v", err)
			return
		}

		var reply any
		if cmd.Action == ActionDestinations {
			if cmd.From == nil {
				reply = s.rejectWith("destinations requires from")
			} else {
				reply = s.Destinations(*cmd.From)
			}
		} else {
			reply = s.Apply(cmd)
		}
		if err := wsjson.Write(ctx, conn, reply); err != nil {
			s.log.Debugf("write reply: %v", err)
			return
		}
	}
}
