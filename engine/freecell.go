package engine

import "fmt"

const (
	// FreeCellColumns is the number of tableau columns in FreeCell.
	FreeCellColumns = 8
	// FreeCellCells is the number of free cells.
	FreeCellCells = 4

	// tableauCap bounds a tableau column: at most 6 buried cards under
	// a full King-to-Ace run.
	tableauCap = 19

	// maxRunLen is the longest possible run (King down to Ace).
	maxRunLen = 13
)

// FreeCellState is the complete state of a FreeCell game. It is a flat
// value type: assignment copies the whole game, and every transition
// returns a fresh copy, leaving the receiver untouched.
type FreeCellState struct {
	Tableau     [FreeCellColumns][tableauCap]Card `json:"tableau"`
	TabLen      [FreeCellColumns]uint8            `json:"tabLen"`
	Cells       [FreeCellCells]Card               `json:"cells"` // EmptyCard = vacant
	Foundations [NumSuits]uint8                   `json:"foundations"`
	Seed        uint64                            `json:"seed"`
	Moves       uint16                            `json:"moves"`
	Rules       FreeCellRules                     `json:"rules"`
}

// NewFreeCellGame deals a fresh game from seed: the shuffled deck is
// dealt round-robin across the eight columns (columns 0-3 get seven
// cards, 4-7 get six), cells and foundations start empty.
func NewFreeCellGame(seed uint64) FreeCellState {
	g := NewFreeCellGameFromDeck(ShuffledDeck(seed))
	g.Seed = seed
	return g
}

// NewFreeCellGameFromDeck deals from a fixed card arrangement, used for
// scripted tests and reproducible daily deals.
func NewFreeCellGameFromDeck(deck Deck) FreeCellState {
	var g FreeCellState
	g.Rules = DefaultFreeCellRules()
	for i := range g.Cells {
		g.Cells[i] = EmptyCard
	}
	for i, c := range deck {
		col := i % FreeCellColumns
		g.Tableau[col][g.TabLen[col]] = c
		g.TabLen[col]++
	}
	return g
}

// column returns a read-only view of column i's cards, bottom first.
func (g *FreeCellState) column(i uint8) []Card {
	return g.Tableau[i][:g.TabLen[i]]
}

// tableauTop returns the exposed card of column i, or EmptyCard.
func (g *FreeCellState) tableauTop(i uint8) Card {
	if g.TabLen[i] == 0 {
		return EmptyCard
	}
	return g.Tableau[i][g.TabLen[i]-1]
}

// emptyCells returns the number of vacant free cells.
func (g *FreeCellState) emptyCells() int {
	n := 0
	for _, c := range g.Cells {
		if c == EmptyCard {
			n++
		}
	}
	return n
}

// emptyColumnsExcluding counts empty tableau columns, skipping the
// source and destination of the move under consideration.
func (g *FreeCellState) emptyColumnsExcluding(src, dst Location) int {
	n := 0
	for i := uint8(0); i < FreeCellColumns; i++ {
		if g.TabLen[i] != 0 {
			continue
		}
		if src.Zone == ZoneTableau && src.Index == i {
			continue
		}
		if dst.Zone == ZoneTableau && dst.Index == i {
			continue
		}
		n++
	}
	return n
}

// IsWon reports whether all four foundations are complete.
func (g *FreeCellState) IsWon() bool {
	for _, f := range g.Foundations {
		if f != RankKing {
			return false
		}
	}
	return true
}

// sourceRun resolves the run of cards addressed by from, exposed card
// last. The returned slice aliases g and must not be retained across
// mutations.
func (g *FreeCellState) sourceRun(from Location) ([]Card, error) {
	n := from.count()
	switch from.Zone {
	case ZoneTableau:
		if from.Index >= FreeCellColumns {
			return nil, fmt.Errorf("tableau index %d out of range", from.Index)
		}
		if n > g.TabLen[from.Index] {
			return nil, fmt.Errorf("column %d has %d cards, want %d", from.Index, g.TabLen[from.Index], n)
		}
		return g.Tableau[from.Index][g.TabLen[from.Index]-n : g.TabLen[from.Index]], nil
	case ZoneFreeCell:
		if from.Index >= FreeCellCells {
			return nil, fmt.Errorf("free cell index %d out of range", from.Index)
		}
		if n != 1 {
			return nil, fmt.Errorf("free cell holds a single card, cannot take %d", n)
		}
		if g.Cells[from.Index] == EmptyCard {
			return nil, fmt.Errorf("free cell %d is empty", from.Index)
		}
		return g.Cells[from.Index : from.Index+1], nil
	case ZoneFoundation:
		if from.Index >= NumSuits {
			return nil, fmt.Errorf("foundation index %d out of range", from.Index)
		}
		if n != 1 {
			return nil, fmt.Errorf("foundation moves are single-card, cannot take %d", n)
		}
		if g.Foundations[from.Index] == 0 {
			return nil, fmt.Errorf("foundation %d is empty", from.Index)
		}
		// Foundation piles are counters; materialize the top card.
		top := NewCard(from.Index, g.Foundations[from.Index])
		buf := []Card{top}
		return buf, nil
	default:
		return nil, fmt.Errorf("cannot move from %s", from.Zone)
	}
}

// checkMove runs the full validation pipeline without mutating.
func (g *FreeCellState) checkMove(from, to Location) error {
	if from.Zone == to.Zone && from.Index == to.Index {
		return fmt.Errorf("source and destination are the same pile")
	}
	run, err := g.sourceRun(from)
	if err != nil {
		return err
	}
	n := from.count()
	if n > 1 {
		if to.Zone != ZoneTableau {
			return fmt.Errorf("multi-card moves may only target the tableau")
		}
		if !IsValidRun(run, DescendingAlternating) {
			return fmt.Errorf("cards are not a descending alternating run")
		}
	}

	switch to.Zone {
	case ZoneFoundation:
		if to.Index >= NumSuits {
			return fmt.Errorf("foundation index %d out of range", to.Index)
		}
		if !CanStackOnFoundation(run[len(run)-1], g.Foundations[to.Index], to.Index, true) {
			return fmt.Errorf("%s does not continue foundation %d", run[len(run)-1], to.Index)
		}
	case ZoneFreeCell:
		if to.Index >= FreeCellCells {
			return fmt.Errorf("free cell index %d out of range", to.Index)
		}
		if n != 1 {
			return fmt.Errorf("free cell holds a single card")
		}
		if g.Cells[to.Index] != EmptyCard {
			return fmt.Errorf("free cell %d is occupied", to.Index)
		}
	case ZoneTableau:
		if to.Index >= FreeCellColumns {
			return fmt.Errorf("tableau index %d out of range", to.Index)
		}
		// Any card or run may land on an empty column in FreeCell.
		if !CanStackDescending(run[0], g.tableauTop(to.Index), true, true) {
			return fmt.Errorf("%s does not stack on %s", run[0], g.tableauTop(to.Index))
		}
		if from.Zone == ZoneTableau && n > 1 {
			limit := MaxMovable(g.emptyCells(), g.emptyColumnsExcluding(from, to))
			if int(n) > limit {
				return fmt.Errorf("run of %d exceeds supermove limit %d", n, limit)
			}
		}
	default:
		return fmt.Errorf("cannot move to %s", to.Zone)
	}
	return nil
}

// ValidateMove reports whether moving from → to would be legal.
func (g *FreeCellState) ValidateMove(from, to Location) bool {
	return g.checkMove(from, to) == nil
}

// ExecuteMove validates the move end-to-end and, on success, returns
// the resulting state with the move counter advanced. On failure the
// zero state and an error are returned; the receiver is never touched.
func (g *FreeCellState) ExecuteMove(from, to Location) (FreeCellState, error) {
	if err := g.checkMove(from, to); err != nil {
		return FreeCellState{}, err
	}
	next := *g
	n := from.count()

	// Lift the run into a scratch buffer before either pile changes.
	var buf [maxRunLen]Card
	run, _ := next.sourceRun(from)
	copy(buf[:], run)

	switch from.Zone {
	case ZoneTableau:
		next.TabLen[from.Index] -= n
	case ZoneFreeCell:
		next.Cells[from.Index] = EmptyCard
	case ZoneFoundation:
		next.Foundations[from.Index]--
	}

	switch to.Zone {
	case ZoneTableau:
		for i := uint8(0); i < n; i++ {
			next.Tableau[to.Index][next.TabLen[to.Index]] = buf[i]
			next.TabLen[to.Index]++
		}
	case ZoneFreeCell:
		next.Cells[to.Index] = buf[0]
	case ZoneFoundation:
		next.Foundations[to.Index]++
	}

	next.Moves++
	return next, nil
}
