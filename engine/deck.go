package engine

// Deck is a full ordering of the 52 standard cards.
type Deck [DeckSize]Card

// NewDeck returns the deck in canonical order: suits ascending, ranks
// ascending within each suit.
func NewDeck() Deck {
	var d Deck
	idx := 0
	for suit := uint8(0); suit < NumSuits; suit++ {
		for rank := RankAce; rank <= RankKing; rank++ {
			d[idx] = NewCard(suit, rank)
			idx++
		}
	}
	return d
}

// xorshift64 is the deterministic RNG used for dealing. Seed 0 is
// remapped to 1 (xorshift has a fixed point at 0).
type xorshift64 uint64

func newRNG(seed uint64) xorshift64 {
	if seed == 0 {
		seed = 1
	}
	return xorshift64(seed)
}

func (r *xorshift64) next() uint64 {
	x := uint64(*r)
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	*r = xorshift64(x)
	return x
}

// randN returns a random number in [0, n).
func (r *xorshift64) randN(n uint64) uint64 {
	return r.next() % n
}

// ShuffledDeck returns the canonical deck permuted by a Fisher-Yates
// shuffle driven by seed. The same seed always yields the same deal.
func ShuffledDeck(seed uint64) Deck {
	d := NewDeck()
	rng := newRNG(seed)
	for i := DeckSize - 1; i > 0; i-- {
		j := int(rng.randN(uint64(i + 1)))
		d[i], d[j] = d[j], d[i]
	}
	return d
}
