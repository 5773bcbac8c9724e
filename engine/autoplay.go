package engine

// Auto-move sweeps: repeatedly scan the exposed cards for one that can
// land on its suit's foundation, apply it, and restart, until a full
// pass applies nothing. The scan order is fixed (Klondike checks the
// waste before the tableau; FreeCell checks the tableau before the
// cells) so scripted games replay identically.
//
// The safe margin keeps the sweep from burying cards the player may
// still need: a card is swept only while its rank is within
// SafeAutoMargin of the lowest foundation. Margin 0 disables the
// check entirely.

// safeToAuto applies the margin policy for a candidate card.
func safeToAuto(card Card, foundations [NumSuits]uint8, margin uint8) bool {
	if margin == 0 {
		return true
	}
	min := foundations[0]
	for _, f := range foundations[1:] {
		if f < min {
			min = f
		}
	}
	return card.Rank() <= min+margin
}

// AutoMoveToFoundations returns the state after sweeping every safely
// auto-movable card onto the foundations.
func (g *FreeCellState) AutoMoveToFoundations() FreeCellState {
	cur := *g
	for {
		moved := false
		for i := uint8(0); i < FreeCellColumns && !moved; i++ {
			top := cur.tableauTop(i)
			if top == EmptyCard || !safeToAuto(top, cur.Foundations, cur.Rules.SafeAutoMargin) {
				continue
			}
			if next, err := cur.ExecuteMove(Tableau(i), Foundation(top.Suit())); err == nil {
				cur = next
				moved = true
			}
		}
		for i := uint8(0); i < FreeCellCells && !moved; i++ {
			c := cur.Cells[i]
			if c == EmptyCard || !safeToAuto(c, cur.Foundations, cur.Rules.SafeAutoMargin) {
				continue
			}
			if next, err := cur.ExecuteMove(FreeCell(i), Foundation(c.Suit())); err == nil {
				cur = next
				moved = true
			}
		}
		if !moved {
			return cur
		}
	}
}

// AutoMoveToFoundations returns the state after sweeping every safely
// auto-movable card onto the foundations, checking the waste top
// before the tableau on each pass.
func (g *KlondikeState) AutoMoveToFoundations() KlondikeState {
	cur := *g
	for {
		moved := false
		if top := cur.wasteTop(); top != EmptyCard && safeToAuto(top, cur.Foundations, cur.Rules.SafeAutoMargin) {
			if next, err := cur.ExecuteMove(Waste(), Foundation(top.Suit())); err == nil {
				cur = next
				moved = true
			}
		}
		for i := uint8(0); i < KlondikeColumns && !moved; i++ {
			top := cur.tableauTop(i)
			if top == EmptyCard || !safeToAuto(top, cur.Foundations, cur.Rules.SafeAutoMargin) {
				continue
			}
			if next, err := cur.ExecuteMove(Tableau(i), Foundation(top.Suit())); err == nil {
				cur = next
				moved = true
			}
		}
		if !moved {
			return cur
		}
	}
}
