package engine

import "fmt"

const (
	// KlondikeColumns is the number of tableau columns in Klondike.
	KlondikeColumns = 7
	// stockCap is the stock/waste capacity: 52 minus the 28 dealt cards.
	stockCap = 24
)

// KlondikeState is the complete state of a Klondike game. Like
// FreeCellState it is a flat value type; transitions copy it wholesale.
//
// FaceUp[i] counts the visible cards at the exposed end of column i.
// Only cards within that suffix are ever eligible as move sources.
type KlondikeState struct {
	Tableau     [KlondikeColumns][tableauCap]Card `json:"tableau"`
	TabLen      [KlondikeColumns]uint8            `json:"tabLen"`
	FaceUp      [KlondikeColumns]uint8            `json:"faceUp"`
	Stock       [stockCap]Card                    `json:"stock"`
	StockLen    uint8                             `json:"stockLen"`
	Waste       [stockCap]Card                    `json:"waste"`
	WasteLen    uint8                             `json:"wasteLen"`
	Foundations [NumSuits]uint8                   `json:"foundations"`
	Seed        uint64                            `json:"seed"`
	Moves       uint16                            `json:"moves"`
	Rules       KlondikeRules                     `json:"rules"`
}

// NewKlondikeGame deals a fresh game from seed under rules: column i
// receives i+1 cards with only the last face-up, and the remaining 24
// cards form the face-down stock.
func NewKlondikeGame(seed uint64, rules KlondikeRules) KlondikeState {
	g := NewKlondikeGameFromDeck(ShuffledDeck(seed), rules)
	g.Seed = seed
	return g
}

// NewKlondikeGameFromDeck deals from a fixed card arrangement, used for
// scripted tests and reproducible daily deals.
func NewKlondikeGameFromDeck(deck Deck, rules KlondikeRules) KlondikeState {
	var g KlondikeState
	g.Rules = rules
	idx := 0
	for col := uint8(0); col < KlondikeColumns; col++ {
		for k := uint8(0); k <= col; k++ {
			g.Tableau[col][k] = deck[idx]
			idx++
		}
		g.TabLen[col] = col + 1
		g.FaceUp[col] = 1
	}
	for ; idx < DeckSize; idx++ {
		g.Stock[g.StockLen] = deck[idx]
		g.StockLen++
	}
	return g
}

// column returns a read-only view of column i's cards, bottom first.
func (g *KlondikeState) column(i uint8) []Card {
	return g.Tableau[i][:g.TabLen[i]]
}

// tableauTop returns the exposed card of column i, or EmptyCard.
func (g *KlondikeState) tableauTop(i uint8) Card {
	if g.TabLen[i] == 0 {
		return EmptyCard
	}
	return g.Tableau[i][g.TabLen[i]-1]
}

// wasteTop returns the top of the waste pile, or EmptyCard.
func (g *KlondikeState) wasteTop() Card {
	if g.WasteLen == 0 {
		return EmptyCard
	}
	return g.Waste[g.WasteLen-1]
}

// IsWon reports whether all four foundations are complete.
func (g *KlondikeState) IsWon() bool {
	for _, f := range g.Foundations {
		if f != RankKing {
			return false
		}
	}
	return true
}

// Draw turns cards from the stock onto the waste: min(DrawCount,
// stock) cards flip over, the most recently drawn ending on top. An
// empty stock is first rebuilt by reversing the waste; recycling does
// not itself advance the move counter, the draw does. When both piles
// are empty the state is returned unchanged (a no-op, not an error).
func (g *KlondikeState) Draw() KlondikeState {
	if g.StockLen == 0 && g.WasteLen == 0 {
		return *g
	}
	next := *g
	if next.StockLen == 0 {
		for i := uint8(0); i < g.WasteLen; i++ {
			next.Stock[i] = g.Waste[g.WasteLen-1-i]
		}
		next.StockLen = g.WasteLen
		next.WasteLen = 0
	}
	n := next.Rules.drawCount()
	if n > next.StockLen {
		n = next.StockLen
	}
	for i := uint8(0); i < n; i++ {
		next.StockLen--
		next.Waste[next.WasteLen] = next.Stock[next.StockLen]
		next.WasteLen++
	}
	next.Moves++
	return next
}

// sourceRun resolves the run of cards addressed by from, exposed card
// last. Tableau sources must lie within the face-up suffix.
func (g *KlondikeState) sourceRun(from Location) ([]Card, error) {
	n := from.count()
	switch from.Zone {
	case ZoneTableau:
		if from.Index >= KlondikeColumns {
			return nil, fmt.Errorf("tableau index %d out of range", from.Index)
		}
		if n > g.FaceUp[from.Index] {
			return nil, fmt.Errorf("column %d has %d face-up cards, want %d", from.Index, g.FaceUp[from.Index], n)
		}
		return g.Tableau[from.Index][g.TabLen[from.Index]-n : g.TabLen[from.Index]], nil
	case ZoneWaste:
		if n != 1 {
			return nil, fmt.Errorf("waste moves are single-card, cannot take %d", n)
		}
		if g.WasteLen == 0 {
			return nil, fmt.Errorf("waste is empty")
		}
		return g.Waste[g.WasteLen-1 : g.WasteLen], nil
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
		return []Card{NewCard(from.Index, g.Foundations[from.Index])}, nil
	case ZoneStock:
		return nil, fmt.Errorf("cards leave the stock only by drawing")
	default:
		return nil, fmt.Errorf("cannot move from %s", from.Zone)
	}
}

// checkMove runs the full validation pipeline without mutating.
func (g *KlondikeState) checkMove(from, to Location) error {
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
	case ZoneTableau:
		if to.Index >= KlondikeColumns {
			return fmt.Errorf("tableau index %d out of range", to.Index)
		}
		if g.TabLen[to.Index] == 0 {
			// Empty columns accept only a King or a King-headed run.
			if run[0].Rank() != RankKing {
				return fmt.Errorf("only a King may start an empty column")
			}
		} else if !CanStackDescending(run[0], g.tableauTop(to.Index), true, false) {
			return fmt.Errorf("%s does not stack on %s", run[0], g.tableauTop(to.Index))
		}
	default:
		return fmt.Errorf("cannot move to %s", to.Zone)
	}
	return nil
}

// ValidateMove reports whether moving from → to would be legal.
func (g *KlondikeState) ValidateMove(from, to Location) bool {
	return g.checkMove(from, to) == nil
}

// ExecuteMove validates the move end-to-end and, on success, returns
// the resulting state: the run is relocated, a newly exposed face-down
// card is revealed, and the move counter advances. On failure the zero
// state and an error are returned; the receiver is never touched.
func (g *KlondikeState) ExecuteMove(from, to Location) (KlondikeState, error) {
	if err := g.checkMove(from, to); err != nil {
		return KlondikeState{}, err
	}
	next := *g
	n := from.count()

	var buf [maxRunLen]Card
	run, _ := next.sourceRun(from)
	copy(buf[:], run)

	switch from.Zone {
	case ZoneTableau:
		next.TabLen[from.Index] -= n
		next.FaceUp[from.Index] -= n
		if next.FaceUp[from.Index] == 0 && next.TabLen[from.Index] > 0 {
			next.FaceUp[from.Index] = 1 // reveal
		}
	case ZoneWaste:
		next.WasteLen--
	case ZoneFoundation:
		next.Foundations[from.Index]--
	}

	switch to.Zone {
	case ZoneTableau:
		for i := uint8(0); i < n; i++ {
			next.Tableau[to.Index][next.TabLen[to.Index]] = buf[i]
			next.TabLen[to.Index]++
		}
		next.FaceUp[to.Index] += n
	case ZoneFoundation:
		next.Foundations[to.Index]++
	}

	next.Moves++
	return next, nil
}
