package engine

import (
	"reflect"
	"testing"
)

// TestFreeCellDestinationsOrder verifies the deterministic enumeration
// order: foundations, cells, tableau.
func TestFreeCellDestinationsOrder(t *testing.T) {
	// A♥ on column 0: legal onto its foundation, every empty cell, and
	// every other column in FreeCell (2♠ on column 1 also accepts it).
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitHearts, RankAce)},
		1: {NewCard(SuitSpades, RankTwo)},
	})
	g.Cells[1] = NewCard(SuitClubs, RankNine) // cell 1 occupied

	got := g.ValidDestinations(Tableau(0))
	want := []Location{
		Foundation(SuitHearts),
		FreeCell(0), FreeCell(2), FreeCell(3),
		Tableau(1), Tableau(2), Tableau(3), Tableau(4),
		Tableau(5), Tableau(6), Tableau(7),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("destinations = %v, want %v", got, want)
	}
}

// TestFreeCellDestinationsExcludeSource: the source pile never appears.
func TestFreeCellDestinationsExcludeSource(t *testing.T) {
	g := fcScripted(map[int][]Card{0: {NewCard(SuitDiamonds, RankFive)}})
	for _, to := range g.ValidDestinations(Tableau(0)) {
		if to.Zone == ZoneTableau && to.Index == 0 {
			t.Fatal("source column enumerated as its own destination")
		}
	}
}

// TestFreeCellDestinationsMultiCard: runs skip foundations and cells
// by cardinality, keeping only tableau targets.
func TestFreeCellDestinationsMultiCard(t *testing.T) {
	g := fcScripted(map[int][]Card{
		0: {NewCard(SuitDiamonds, RankTwo), NewCard(SuitSpades, RankAce)},
		1: {NewCard(SuitClubs, RankThree)},
	})
	got := g.ValidDestinations(TableauRun(0, 2))
	for _, to := range got {
		if to.Zone != ZoneTableau {
			t.Errorf("multi-card run offered non-tableau destination %s", to)
		}
	}
	found := false
	for _, to := range got {
		if to.Zone == ZoneTableau && to.Index == 1 {
			found = true
		}
	}
	if !found {
		t.Error("2♦A♠ onto 3♣ missing from destinations")
	}
}

// TestKlondikeDestinations: no-legal-move and single-destination cases.
func TestKlondikeDestinations(t *testing.T) {
	g := kScripted(map[int][]Card{
		0: {NewCard(SuitSpades, RankEight)},
		1: {NewCard(SuitHearts, RankSeven)},
	})
	got := g.ValidDestinations(Tableau(1))
	want := []Location{Tableau(0)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("destinations = %v, want %v", got, want)
	}

	// 8♠ has nowhere to go: no empty-column King rule match, no
	// foundation, nothing to stack on.
	if dests := g.ValidDestinations(Tableau(0)); len(dests) != 0 {
		t.Errorf("8♠ destinations = %v, want none", dests)
	}
}

// TestDestinationsPure: enumeration never mutates the state.
func TestDestinationsPure(t *testing.T) {
	g := NewFreeCellGame(3)
	before := g
	for i := uint8(0); i < FreeCellColumns; i++ {
		g.ValidDestinations(Tableau(i))
	}
	if g != before {
		t.Error("ValidDestinations mutated the state")
	}

	k := NewKlondikeGame(3, DefaultKlondikeRules())
	kBefore := k
	for i := uint8(0); i < KlondikeColumns; i++ {
		k.ValidDestinations(Tableau(i))
	}
	if k != kBefore {
		t.Error("ValidDestinations mutated the state")
	}
}
