package engine

// Valid-destination enumeration drives tap-to-move UX: exactly one
// destination auto-executes, several get highlighted, none means the
// selection has no legal move. Enumeration runs the validation phase
// only and never mutates; the order is deterministic — foundations,
// then free cells, then tableau columns ascending, source excluded.

// ValidDestinations returns every destination the addressed card or
// run could legally move to right now.
func (g *FreeCellState) ValidDestinations(from Location) []Location {
	var dests []Location
	for i := uint8(0); i < NumSuits; i++ {
		if to := Foundation(i); g.checkMove(from, to) == nil {
			dests = append(dests, to)
		}
	}
	for i := uint8(0); i < FreeCellCells; i++ {
		if to := FreeCell(i); g.checkMove(from, to) == nil {
			dests = append(dests, to)
		}
	}
	for i := uint8(0); i < FreeCellColumns; i++ {
		if to := Tableau(i); g.checkMove(from, to) == nil {
			dests = append(dests, to)
		}
	}
	return dests
}

// ValidDestinations returns every destination the addressed card or
// run could legally move to right now.
func (g *KlondikeState) ValidDestinations(from Location) []Location {
	var dests []Location
	for i := uint8(0); i < NumSuits; i++ {
		if to := Foundation(i); g.checkMove(from, to) == nil {
			dests = append(dests, to)
		}
	}
	for i := uint8(0); i < KlondikeColumns; i++ {
		if to := Tableau(i); g.checkMove(from, to) == nil {
			dests = append(dests, to)
		}
	}
	return dests
}
