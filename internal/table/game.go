// Package table runs live solitaire sessions: one player, one game,
// one bounded undo history, optionally one websocket pushing state.
package table

import (
	"encoding/json"
	"fmt"

	"github.com/mikhaidn/PlokminFun-sub002/engine"
)

// Game abstracts the two variants behind the operations a session
// needs. Each implementation wraps its explicit engine state plus a
// history of snapshots; the engine types themselves stay separate per
// variant.
type Game interface {
	Type() engine.GameType
	// Move validates and applies from → to; an illegal move is an
	// error and leaves the game untouched.
	Move(from, to engine.Location) error
	// Draw advances the stock (Klondike); FreeCell rejects it.
	Draw() error
	// AutoMove sweeps safely playable cards onto the foundations and
	// reports whether anything moved.
	AutoMove() bool
	Undo() bool
	Redo() bool
	CanUndo() bool
	CanRedo() bool
	Destinations(from engine.Location) []engine.Location
	Moves() uint16
	Won() bool
	ShareCode() string
	// StateJSON renders the current engine state for clients.
	StateJSON() (json.RawMessage, error)
	// SerializeHistory / RestoreHistory round-trip the undo history
	// for persistence. RestoreHistory fails closed: on corrupt input
	// the game stays at its current position with an empty history.
	SerializeHistory() ([]byte, error)
	RestoreHistory(data []byte) error
}

// ---------------------------------------------------------------------------
// FreeCell
// ---------------------------------------------------------------------------

type freecellGame struct {
	state engine.FreeCellState
	hist  *engine.History[engine.FreeCellState]
}

// NewFreeCell starts a FreeCell game from seed.
func NewFreeCell(seed uint64, historyLimit int) Game {
	g := &freecellGame{
		state: engine.NewFreeCellGame(seed),
		hist:  engine.NewHistory[engine.FreeCellState](historyLimit),
	}
	g.hist.Push(g.state)
	return g
}

// NewFreeCellFromState starts a session at an imported position.
func NewFreeCellFromState(state engine.FreeCellState, historyLimit int) Game {
	g := &freecellGame{
		state: state,
		hist:  engine.NewHistory[engine.FreeCellState](historyLimit),
	}
	g.hist.Push(g.state)
	return g
}

func (g *freecellGame) Type() engine.GameType { return engine.GameFreeCell }

func (g *freecellGame) Move(from, to engine.Location) error {
	next, err := g.state.ExecuteMove(from, to)
	if err != nil {
		return err
	}
	g.state = next
	g.hist.Push(next)
	return nil
}

func (g *freecellGame) Draw() error {
	return fmt.Errorf("freecell has no stock to draw from")
}

func (g *freecellGame) AutoMove() bool {
	next := g.state.AutoMoveToFoundations()
	if next == g.state {
		return false
	}
	g.state = next
	g.hist.Push(next)
	return true
}

func (g *freecellGame) Undo() bool {
	prev, ok := g.hist.Undo()
	if ok {
		g.state = prev
	}
	return ok
}

func (g *freecellGame) Redo() bool {
	next, ok := g.hist.Redo()
	if ok {
		g.state = next
	}
	return ok
}

func (g *freecellGame) CanUndo() bool { return g.hist.CanUndo() }
func (g *freecellGame) CanRedo() bool { return g.hist.CanRedo() }

func (g *freecellGame) Destinations(from engine.Location) []engine.Location {
	return g.state.ValidDestinations(from)
}

func (g *freecellGame) Moves() uint16     { return g.state.Moves }
func (g *freecellGame) Won() bool         { return g.state.IsWon() }
func (g *freecellGame) ShareCode() string { return g.state.EncodeShareCode() }

func (g *freecellGame) StateJSON() (json.RawMessage, error) {
	return json.Marshal(g.state)
}

func (g *freecellGame) SerializeHistory() ([]byte, error) {
	return g.hist.Serialize()
}

func (g *freecellGame) RestoreHistory(data []byte) error {
	if err := g.hist.Deserialize(data); err != nil {
		// Fail closed: the history is gone but the position stands.
		g.hist.Push(g.state)
		return err
	}
	if cur, ok := g.hist.Current(); ok {
		g.state = cur
	}
	return nil
}

// ---------------------------------------------------------------------------
// Klondike
// ---------------------------------------------------------------------------

type klondikeGame struct {
	state engine.KlondikeState
	hist  *engine.History[engine.KlondikeState]
}

// NewKlondike starts a Klondike game from seed under rules.
func NewKlondike(seed uint64, rules engine.KlondikeRules, historyLimit int) Game {
	g := &klondikeGame{
		state: engine.NewKlondikeGame(seed, rules),
		hist:  engine.NewHistory[engine.KlondikeState](historyLimit),
	}
	g.hist.Push(g.state)
	return g
}

// NewKlondikeFromState starts a session at an imported position.
func NewKlondikeFromState(state engine.KlondikeState, historyLimit int) Game {
	g := &klondikeGame{
		state: state,
		hist:  engine.NewHistory[engine.KlondikeState](historyLimit),
	}
	g.hist.Push(g.state)
	return g
}

func (g *klondikeGame) Type() engine.GameType { return engine.GameKlondike }

func (g *klondikeGame) Move(from, to engine.Location) error {
	next, err := g.state.ExecuteMove(from, to)
	if err != nil {
		return err
	}
	g.state = next
	g.hist.Push(next)
	return nil
}

func (g *klondikeGame) Draw() error {
	next := g.state.Draw()
	if next == g.state {
		return nil // both piles empty: a no-op, not an error
	}
	g.state = next
	g.hist.Push(next)
	return nil
}

func (g *klondikeGame) AutoMove() bool {
	next := g.state.AutoMoveToFoundations()
	if next == g.state {
		return false
	}
	g.state = next
	g.hist.Push(next)
	return true
}

func (g *klondikeGame) Undo() bool {
	prev, ok := g.hist.Undo()
	if ok {
		g.state = prev
	}
	return ok
}

func (g *klondikeGame) Redo() bool {
	next, ok := g.hist.Redo()
	if ok {
		g.state = next
	}
	return ok
}

func (g *klondikeGame) CanUndo() bool { return g.hist.CanUndo() }
func (g *klondikeGame) CanRedo() bool { return g.hist.CanRedo() }

func (g *klondikeGame) Destinations(from engine.Location) []engine.Location {
	return g.state.ValidDestinations(from)
}

func (g *klondikeGame) Moves() uint16     { return g.state.Moves }
func (g *klondikeGame) Won() bool         { return g.state.IsWon() }
func (g *klondikeGame) ShareCode() string { return g.state.EncodeShareCode() }

func (g *klondikeGame) StateJSON() (json.RawMessage, error) {
	return json.Marshal(g.state)
}

func (g *klondikeGame) SerializeHistory() ([]byte, error) {
	return g.hist.Serialize()
}

func (g *klondikeGame) RestoreHistory(data []byte) error {
	if err := g.hist.Deserialize(data); err != nil {
		g.hist.Push(g.state)
		return err
	}
	if cur, ok := g.hist.Current(); ok {
		g.state = cur
	}
	return nil
}
