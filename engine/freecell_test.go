package engine

import "testing"

// fcScripted builds a FreeCell position with the given columns and no
// cards anywhere else. Scripted positions need not hold a full deck;
// the executors never assume one.
func fcScripted(cols map[int][]Card) FreeCellState {
	var g FreeCellState
	for i := range g.Cells {
		g.Cells[i] = EmptyCard
	}
	for i, cards := range cols {
		copy(g.Tableau[i][:], cards)
		g.TabLen[i] = uint8(len(cards))
	}
	return g
}

// fcMultiset collects every card in the state, foundation counters
// expanded into their implied cards.
func fcMultiset(g *FreeCellState) map[Card]int {
	m := make(map[Card]int)
	for i := uint8(0); i < FreeCellColumns; i++ {
		for _, c := range g.column(i) {
			m[c]++
		}
	}
	for _, c := range g.Cells {
		if c != EmptyCard {
			m[c]++
		}
	}
	for suit, top := range g.Foundations {
		for rank := RankAce; rank <= top; rank++ {
			m[NewCard(uint8(suit), rank)]++
		}
	}
	return m
}

// assertFullDeck fails unless m is exactly one standard deck.
func assertFullDeck(t *testing.T, m map[Card]int) {
	t.Helper()
	if len(m) != DeckSize {
		t.Fatalf("state holds %d distinct cards, want %d", len(m), DeckSize)
	}
	for c, n := range m {
		if n != 1 {
			t.Fatalf("card %s appears %d times", c, n)
		}
	}
}

// TestFreeCellDealShape verifies the 7/6 column split and empty cells.
func TestFreeCellDealShape(t *testing.T) {
	g := NewFreeCellGame(99)
	for i := uint8(0); i < FreeCellColumns; i++ {
		want := uint8(6)
		if i < 4 {
			want = 7
		}
		if g.TabLen[i] != want {
			t.Errorf("column %d has %d cards, want %d", i, g.TabLen[i], want)
		}
	}
	for i, c := range g.Cells {
		if c != EmptyCard {
			t.Errorf("cell %d dealt a card", i)
		}
	}
	for i, f := range g.Foundations {
		if f != 0 {
			t.Errorf("foundation %d dealt %d", i, f)
		}
	}
	if g.Seed != 99 {
		t.Errorf("Seed = %d, want 99", g.Seed)
	}
	assertFullDeck(t, fcMultiset(&g))
}

// TestFreeCellSimpleTableauMove: column 0 = [8♠], column 1 = [7♥];
// moving the 7♥ onto the 8♠ succeeds.
func TestFreeCellSimpleTableauMove(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitSpades, RankEight)},
		1: {NewCard(SuitHearts, RankSeven)},
	})
	next, err := g.ExecuteMove(Tableau(1), Tableau(0))
	if err != nil {
		t.Fatalf("ExecuteMove: %v", err)
	}
	if next.TabLen[0] != 2 || next.TabLen[1] != 0 {
		t.Fatalf("column lengths = %d,%d, want 2,0", next.TabLen[0], next.TabLen[1])
	}
	if next.Tableau[0][1] != NewCard(SuitHearts, RankSeven) {
		t.Errorf("top of column 0 = %s, want 7♥", next.Tableau[0][1])
	}
	if next.Moves != 1 {
		t.Errorf("Moves = %d, want 1", next.Moves)
	}
	// The receiver must be observably unchanged.
	if g.TabLen[0] != 1 || g.TabLen[1] != 1 || g.Moves != 0 {
		t.Error("ExecuteMove mutated its receiver")
	}
}

// TestFreeCellSameColorRejected: 7♣ onto 8♠ fails, both black.
func TestFreeCellSameColorRejected(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitSpades, RankEight)},
		1: {NewCard(SuitClubs, RankSeven)},
	})
	if _, err := g.ExecuteMove(Tableau(1), Tableau(0)); err == nil {
		t.Fatal("same-color stack should be rejected")
	}
	if g.ValidateMove(Tableau(1), Tableau(0)) {
		t.Error("ValidateMove should agree with ExecuteMove")
	}
}

// TestFreeCellFoundationMonotonic: with hearts at 2, the only card any
// foundation-bound move accepts onto that pile is the 3♥.
func TestFreeCellFoundationMonotonic(t *testing.T) {
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			candidate := NewCard(suit, rank)
			g := fcScripted(map[int][]Card{0: {candidate}})
			g.Foundations[SuitHearts] = 2
			ok := g.ValidateMove(Tableau(0), Foundation(SuitHearts))
			want := suit == SuitHearts && rank == RankThree
			if ok != want {
				t.Errorf("%s onto hearts@2: got %v, want %v", candidate, ok, want)
			}
		}
	}
}

// TestFreeCellCellRoundTrip moves a card to a cell and back.
func TestFreeCellCellRoundTrip(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitSpades, RankEight)},
		1: {NewCard(SuitHearts, RankSeven)},
	})
	g2, err := g.ExecuteMove(Tableau(1), FreeCell(2))
	if err != nil {
		t.Fatalf("to cell: %v", err)
	}
	if g2.Cells[2] != NewCard(SuitHearts, RankSeven) || g2.TabLen[1] != 0 {
		t.Fatal("card did not land in cell 2")
	}
	// Occupied cell rejects.
	g2.TabLen[1] = 1 // restore a card to move
	g2.Tableau[1][0] = NewCard(SuitDiamonds, RankFour)
	if _, err := g2.ExecuteMove(Tableau(1), FreeCell(2)); err == nil {
		t.Fatal("occupied cell should reject")
	}
	g3, err := g2.ExecuteMove(FreeCell(2), Tableau(0))
	if err != nil {
		t.Fatalf("from cell: %v", err)
	}
	if g3.Cells[2] != EmptyCard || g3.tableauTop(0) != NewCard(SuitHearts, RankSeven) {
		t.Fatal("card did not return from cell 2")
	}
}

// TestFreeCellMultiCardRules: multi-card moves must be valid runs and
// may only target the tableau.
func TestFreeCellMultiCardRules(t *testing.T) {
	run := []Card{
		NewCard(SuitDiamonds, RankNine),
		NewCard(SuitSpades, RankEight),
		NewCard(SuitHearts, RankSeven),
	}
	g := fcScripted(map[int][]Card{
		0: run,
		1: {NewCard(SuitClubs, RankTen)},
	})
	if !g.ValidateMove(TableauRun(0, 3), Tableau(1)) {
		t.Error("9♦8♠7♥ onto 10♣ should be legal")
	}
	if g.ValidateMove(TableauRun(0, 3), FreeCell(0)) {
		t.Error("multi-card move into a cell should be rejected")
	}
	if g.ValidateMove(TableauRun(0, 3), Foundation(SuitHearts)) {
		t.Error("multi-card move onto a foundation should be rejected")
	}
	if g.ValidateMove(TableauRun(0, 4), Tableau(1)) {
		t.Error("taking more cards than the column holds should be rejected")
	}

	// Break the run: same colors adjacent.
	g.Tableau[0][1] = NewCard(SuitHearts, RankEight)
	if g.ValidateMove(TableauRun(0, 3), Tableau(1)) {
		t.Error("broken run should be rejected")
	}
}

// TestFreeCellSupermoveLimit: with no spare cells or columns only one
// card may move at a time.
func TestFreeCellSupermoveLimit(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitClubs, RankTen)},
		1: {NewCard(SuitDiamonds, RankNine), NewCard(SuitSpades, RankEight)},
		2: {NewCard(SuitHearts, RankTwo)},
		3: {NewCard(SuitHearts, RankThree)},
		4: {NewCard(SuitHearts, RankFour)},
		5: {NewCard(SuitHearts, RankFive)},
		6: {NewCard(SuitHearts, RankSix)},
		7: {NewCard(SuitDiamonds, RankTwo)},
	})
	// Occupy all four cells.
	g.Cells = [FreeCellCells]Card{
		NewCard(SuitClubs, RankAce),
		NewCard(SuitClubs, RankTwo),
		NewCard(SuitClubs, RankThree),
		NewCard(SuitClubs, RankFour),
	}
	if g.ValidateMove(TableauRun(1, 2), Tableau(0)) {
		t.Fatal("2-card run with capacity 1 should be rejected")
	}
	// Free one cell: capacity (1+1)*2^0 = 2.
	g.Cells[0] = EmptyCard
	if !g.ValidateMove(TableauRun(1, 2), Tableau(0)) {
		t.Fatal("2-card run with capacity 2 should be accepted")
	}
}

// TestFreeCellSupermoveEmptyDestinationExcluded: the empty column being
// moved onto does not count as spare capacity.
func TestFreeCellSupermoveEmptyDestinationExcluded(t *testing.T) {
	g := fcScripted(map[int][]Card{
		1: {NewCard(SuitDiamonds, RankNine), NewCard(SuitSpades, RankEight)},
		2: {NewCard(SuitHearts, RankTwo)},
		3: {NewCard(SuitHearts, RankThree)},
		4: {NewCard(SuitHearts, RankFour)},
		5: {NewCard(SuitHearts, RankFive)},
		6: {NewCard(SuitHearts, RankSix)},
		7: {NewCard(SuitDiamonds, RankTwo)},
	})
	g.Cells = [FreeCellCells]Card{
		NewCard(SuitClubs, RankAce),
		NewCard(SuitClubs, RankTwo),
		NewCard(SuitClubs, RankThree),
		NewCard(SuitClubs, RankFour),
	}
	// Column 0 is empty and is the destination: capacity stays 1.
	if g.ValidateMove(TableauRun(1, 2), Tableau(0)) {
		t.Fatal("empty destination column must not raise the limit")
	}
	// A second empty column (not source, not destination) doubles it.
	g.TabLen[7] = 0
	if !g.ValidateMove(TableauRun(1, 2), Tableau(0)) {
		t.Fatal("spare empty column should raise the limit to 2")
	}
}

// TestFreeCellEmptyColumnAcceptsAny: FreeCell has no King restriction.
func TestFreeCellEmptyColumnAcceptsAny(t *testing.T) {
	g := fcScripted(map[int][]Card{0: {NewCard(SuitDiamonds, RankFive)}})
	if !g.ValidateMove(Tableau(0), Tableau(3)) {
		t.Error("any card should be allowed onto an empty FreeCell column")
	}
}

// TestFreeCellConservation plays legal moves from a real deal and
// verifies the 52-card multiset is preserved throughout.
func TestFreeCellConservation(t *testing.T) {
	g := NewFreeCellGame(7)
	for step := 0; step < 40; step++ {
		var applied bool
		for i := uint8(0); i < FreeCellColumns && !applied; i++ {
			if g.TabLen[i] == 0 {
				continue
			}
			for _, to := range g.ValidDestinations(Tableau(i)) {
				next, err := g.ExecuteMove(Tableau(i), to)
				if err != nil {
					t.Fatalf("enumerated destination %s failed: %v", to, err)
				}
				g = next
				applied = true
				break
			}
		}
		assertFullDeck(t, fcMultiset(&g))
		if !applied {
			break
		}
	}
}

// TestFreeCellWin verifies win detection.
func TestFreeCellWin(t *testing.T) {
	var g FreeCellState
	if g.IsWon() {
		t.Error("empty foundations should not be a win")
	}
	g.Foundations = [NumSuits]uint8{13, 13, 13, 13}
	if !g.IsWon() {
		t.Error("four complete foundations should be a win")
	}
}
