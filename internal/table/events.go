package table

import (
	"encoding/json"

	"github.com/mikhaidn/PlokminFun-sub002/engine"
)

// EventType tags game events pushed to clients over WebSockets.
type EventType string

const (
	EventStateSync    EventType = "state_sync"    // Full state after create, resume, undo/redo.
	EventMoveApplied  EventType = "move_applied"  // A move, draw, or auto-move changed the state.
	EventMoveRejected EventType = "move_rejected" // A command was refused; state unchanged.
	EventGameWon      EventType = "game_won"      // All foundations complete.
)

// Event is the wire structure sent to clients for every state change.
type Event struct {
	Type      EventType       `json:"type"`
	GameType  string          `json:"gameType"`
	State     json.RawMessage `json:"state,omitempty"`
	Moves     uint16          `json:"moves"`
	CanUndo   bool            `json:"canUndo"`
	CanRedo   bool            `json:"canRedo"`
	Won       bool            `json:"won"`
	ShareCode string          `json:"shareCode,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}

// Action names the commands a client may issue against a session.
type Action string

const (
	ActionMove         Action = "move"
	ActionDraw         Action = "draw"
	ActionAutoMove     Action = "auto_move"
	ActionUndo         Action = "undo"
	ActionRedo         Action = "redo"
	ActionDestinations Action = "destinations"
	ActionSync         Action = "sync"
)

// Command is the wire structure for client requests. From and To are
// only consulted for move and destinations actions.
type Command struct {
	Action Action           `json:"action"`
	From   *engine.Location `json:"from,omitempty"`
	To     *engine.Location `json:"to,omitempty"`
}

// DestinationsResult answers an ActionDestinations query.
type DestinationsResult struct {
	Type EventType         `json:"type"`
	From engine.Location   `json:"from"`
	To   []engine.Location `json:"to"`
}

// EventDestinations carries the valid targets for a picked-up card.
const EventDestinations EventType = "destinations"
