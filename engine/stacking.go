package engine

// Stacking predicates shared by both variants. All of these are pure;
// game-specific policy (empty-column rules, supermove bounds) lives in
// the per-variant executors.

// CanStackDescending reports whether card may sit on target at the end
// of a tableau run. A target of EmptyCard stands for an empty column
// and is accepted only when allowEmpty is set. When requireAlt is set
// the two cards must additionally alternate in color.
func CanStackDescending(card, target Card, requireAlt, allowEmpty bool) bool {
	if target == EmptyCard {
		return allowEmpty
	}
	if card.Rank() != target.Rank()-1 {
		return false
	}
	if requireAlt && !AlternatesColor(card, target) {
		return false
	}
	return true
}

// CanStackOnFoundation reports whether card may be played onto the
// foundation pile for pileSuit whose top rank is topRank (0 = empty
// pile, which accepts only an Ace). sameSuit is the usual rule; a
// variant running suit-agnostic foundations may clear it.
func CanStackOnFoundation(card Card, topRank uint8, pileSuit uint8, sameSuit bool) bool {
	if sameSuit && card.Suit() != pileSuit {
		return false
	}
	return card.Rank() == topRank+1
}

// PairPredicate tests one adjacent pair of a run, upper being the card
// nearer the exposed end (upper sits on lower).
type PairPredicate func(upper, lower Card) bool

// DescendingAlternating is the tableau run rule shared by FreeCell and
// Klondike: each card one rank below, opposite color of the card
// beneath it.
func DescendingAlternating(upper, lower Card) bool {
	return upper.Rank() == lower.Rank()-1 && AlternatesColor(upper, lower)
}

// AscendingSameSuit is the foundation-direction run rule, for variants
// that relocate partial foundation piles.
func AscendingSameSuit(upper, lower Card) bool {
	return upper.Rank() == lower.Rank()+1 && SameSuit(upper, lower)
}

// IsValidRun reports whether cards forms a legal run under pair.
// cards is ordered bottom-to-top (exposed card last). Zero or one card
// is trivially valid; otherwise every adjacent pair must hold, with no
// partial credit.
func IsValidRun(cards []Card, pair PairPredicate) bool {
	for i := 1; i < len(cards); i++ {
		if !pair(cards[i], cards[i-1]) {
			return false
		}
	}
	return true
}
