package engine

import "testing"

// TestFreeCellAutoMoveSweep: the sweep chains moves until nothing is
// safely playable, pulling from both tableau and cells.
func TestFreeCellAutoMoveSweep(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitHearts, RankAce)},
		1: {NewCard(SuitHearts, RankTwo)},
		2: {NewCard(SuitSpades, RankAce)},
	})
	g.Cells[0] = NewCard(SuitHearts, RankThree)
	g.Rules.SafeAutoMargin = 0 // no safety limit

	got := g.AutoMoveToFoundations()
	if got.Foundations[SuitHearts] != 3 {
		t.Errorf("hearts foundation = %d, want 3", got.Foundations[SuitHearts])
	}
	if got.Foundations[SuitSpades] != 1 {
		t.Errorf("spades foundation = %d, want 1", got.Foundations[SuitSpades])
	}
	if got.Cells[0] != EmptyCard {
		t.Error("3♥ should have left its cell")
	}
	if got.Moves != 4 {
		t.Errorf("Moves = %d, want 4", got.Moves)
	}
}

// TestFreeCellAutoMoveSafeMargin: a card above min+margin stays put.
func TestFreeCellAutoMoveSafeMargin(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitHearts, RankFive)},
	})
	g.Foundations = [NumSuits]uint8{4, 2, 2, 2} // hearts at 4, min 2
	g.Rules.SafeAutoMargin = 2

	got := g.AutoMoveToFoundations()
	if got.Foundations[SuitHearts] != 4 {
		t.Error("5♥ exceeds min+2 and must not be auto-moved")
	}

	// Raising the lagging foundations brings it within the margin.
	g.Foundations = [NumSuits]uint8{4, 3, 3, 3}
	got = g.AutoMoveToFoundations()
	if got.Foundations[SuitHearts] != 5 {
		t.Error("5♥ within min+2 should be auto-moved")
	}
}

// TestKlondikeAutoMoveWastePriority: the waste top is checked before
// the tableau on each pass.
func TestKlondikeAutoMoveWastePriority(t *testing.T) {
	g := kScripted(map[int][]Card{
		0: {NewCard(SuitHearts, RankAce)},
	})
	g.Waste = [stockCap]Card{NewCard(SuitSpades, RankAce)}
	g.WasteLen = 1
	g.Rules.SafeAutoMargin = 0

	got := g.AutoMoveToFoundations()
	if got.Foundations[SuitSpades] != 1 || got.Foundations[SuitHearts] != 1 {
		t.Fatalf("foundations = %v, want both aces up", got.Foundations)
	}
	if got.WasteLen != 0 {
		t.Error("waste ace should have been swept")
	}
	if got.Moves != 2 {
		t.Errorf("Moves = %d, want 2", got.Moves)
	}
}

// TestKlondikeAutoMoveRevealsAndContinues: sweeping a column's last
// face-up card reveals the next and can keep the chain going.
func TestKlondikeAutoMoveRevealsAndContinues(t *testing.T) {
	g := kScripted(nil)
	g.Tableau[0][0] = NewCard(SuitClubs, RankTwo)
	g.Tableau[0][1] = NewCard(SuitClubs, RankAce)
	g.TabLen[0] = 2
	g.FaceUp[0] = 1 // 2♣ face-down beneath the ace
	g.Rules.SafeAutoMargin = 0

	got := g.AutoMoveToFoundations()
	if got.Foundations[SuitClubs] != 2 {
		t.Errorf("clubs foundation = %d, want 2 (ace then revealed two)", got.Foundations[SuitClubs])
	}
	if got.TabLen[0] != 0 {
		t.Errorf("column 0 still holds %d cards", got.TabLen[0])
	}
}
