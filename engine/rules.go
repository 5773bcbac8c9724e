package engine

// FreeCellRules holds configurable FreeCell rule settings.
type FreeCellRules struct {
	SafeAutoMargin uint8 // auto-move only ranks ≤ min foundation + margin; 0 = no limit
}

// DefaultFreeCellRules returns the standard FreeCell rules.
func DefaultFreeCellRules() FreeCellRules {
	return FreeCellRules{
		SafeAutoMargin: 2,
	}
}

// KlondikeRules holds configurable Klondike rule settings.
type KlondikeRules struct {
	DrawCount      uint8 // cards per draw: 1 or 3
	SafeAutoMargin uint8 // auto-move only ranks ≤ min foundation + margin; 0 = no limit
}

// DefaultKlondikeRules returns standard draw-1 Klondike rules.
func DefaultKlondikeRules() KlondikeRules {
	return KlondikeRules{
		DrawCount:      1,
		SafeAutoMargin: 2,
	}
}

// drawCount returns the effective cards-per-draw, treating 0 as 1.
func (r *KlondikeRules) drawCount() uint8 {
	if r.DrawCount == 0 {
		return 1
	}
	return r.DrawCount
}
