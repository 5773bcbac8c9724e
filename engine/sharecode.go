package engine

import (
	"encoding/base64"
	"fmt"
)

// Share codes are compact, URL-embeddable position encodings: a
// 3-byte header (version, game type, variant config) followed by a
// bit-packed body, base64url-encoded without padding. Cards take 6
// bits (4-bit rank, 2-bit suit); every zone is length-prefixed before
// its card list. The leading version byte keeps future layouts
// backward-readable.

// GameType tags the variant a share code (or saved game) encodes.
type GameType uint8

const (
	GameFreeCell GameType = 1
	GameKlondike GameType = 2
)

// String returns the variant name.
func (t GameType) String() string {
	switch t {
	case GameFreeCell:
		return "freecell"
	case GameKlondike:
		return "klondike"
	}
	return fmt.Sprintf("gametype(%d)", uint8(t))
}

const (
	shareCodeVersion = 1

	cardBits    = 6
	tabLenBits  = 5 // tableau column length, ≤ tableauCap
	pileLenBits = 5 // stock/waste length, ≤ stockCap
	rankBits    = 4 // foundation top rank, ≤ 13
	seedBits    = 64
	movesBits   = 16
)

// ---------------------------------------------------------------------------
// Bit-level writer / reader
// ---------------------------------------------------------------------------

type bitWriter struct {
	buf  []byte
	used uint // bits written into the last byte, 0-7
}

// write appends the low n bits of v, most significant first.
func (w *bitWriter) write(v uint64, n uint) {
	for n > 0 {
		if w.used == 0 {
			w.buf = append(w.buf, 0)
		}
		free := 8 - w.used
		take := n
		if take > free {
			take = free
		}
		bits := (v >> (n - take)) & ((1 << take) - 1)
		w.buf[len(w.buf)-1] |= byte(bits << (free - take))
		w.used = (w.used + take) % 8
		n -= take
	}
}

type bitReader struct {
	buf []byte
	pos uint // absolute bit position
}

// read consumes n bits, most significant first.
func (r *bitReader) read(n uint) (uint64, error) {
	if r.pos+n > uint(len(r.buf))*8 {
		return 0, fmt.Errorf("share code truncated")
	}
	var v uint64
	for n > 0 {
		byteIdx := r.pos / 8
		bitOff := r.pos % 8
		avail := 8 - bitOff
		take := n
		if take > avail {
			take = avail
		}
		bits := (uint64(r.buf[byteIdx]) >> (avail - take)) & ((1 << take) - 1)
		v = v<<take | bits
		r.pos += take
		n -= take
	}
	return v, nil
}

func writeCard(w *bitWriter, c Card) {
	w.write(uint64(c.Rank())<<2|uint64(c.Suit()), cardBits)
}

func readCard(r *bitReader) (Card, error) {
	v, err := r.read(cardBits)
	if err != nil {
		return EmptyCard, err
	}
	c := NewCard(uint8(v&0x3), uint8(v>>2))
	if !c.IsValid() {
		return EmptyCard, fmt.Errorf("share code contains invalid card %#02x", uint8(c))
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Encoding
// ---------------------------------------------------------------------------

// EncodeShareCode renders a FreeCell position as a share code.
func (g *FreeCellState) EncodeShareCode() string {
	w := &bitWriter{buf: []byte{shareCodeVersion, byte(GameFreeCell), FreeCellCells}}
	w.write(g.Seed, seedBits)
	w.write(uint64(g.Moves), movesBits)
	for _, f := range g.Foundations {
		w.write(uint64(f), rankBits)
	}
	for _, c := range g.Cells {
		if c == EmptyCard {
			w.write(0, 1)
			continue
		}
		w.write(1, 1)
		writeCard(w, c)
	}
	for i := uint8(0); i < FreeCellColumns; i++ {
		w.write(uint64(g.TabLen[i]), tabLenBits)
		for _, c := range g.column(i) {
			writeCard(w, c)
		}
	}
	return base64.RawURLEncoding.EncodeToString(w.buf)
}

// EncodeShareCode renders a Klondike position as a share code. The
// config byte carries the draw count.
func (g *KlondikeState) EncodeShareCode() string {
	w := &bitWriter{buf: []byte{shareCodeVersion, byte(GameKlondike), g.Rules.drawCount()}}
	w.write(g.Seed, seedBits)
	w.write(uint64(g.Moves), movesBits)
	for _, f := range g.Foundations {
		w.write(uint64(f), rankBits)
	}
	w.write(uint64(g.StockLen), pileLenBits)
	for _, c := range g.Stock[:g.StockLen] {
		writeCard(w, c)
	}
	w.write(uint64(g.WasteLen), pileLenBits)
	for _, c := range g.Waste[:g.WasteLen] {
		writeCard(w, c)
	}
	for i := uint8(0); i < KlondikeColumns; i++ {
		w.write(uint64(g.TabLen[i]), tabLenBits)
		w.write(uint64(g.FaceUp[i]), tabLenBits)
		for _, c := range g.column(i) {
			writeCard(w, c)
		}
	}
	return base64.RawURLEncoding.EncodeToString(w.buf)
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

// ShareCodeType peeks a share code's header and returns the variant it
// encodes, rejecting unknown versions and game types.
func ShareCodeType(code string) (GameType, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return 0, fmt.Errorf("decode share code: %w", err)
	}
	if len(raw) < 3 {
		return 0, fmt.Errorf("share code too short")
	}
	if raw[0] != shareCodeVersion {
		return 0, fmt.Errorf("unsupported share code version %d", raw[0])
	}
	t := GameType(raw[1])
	if t != GameFreeCell && t != GameKlondike {
		return 0, fmt.Errorf("unknown game type %d", raw[1])
	}
	return t, nil
}

// openShareCode validates the header and returns a reader over the
// bit-packed body plus the config byte.
func openShareCode(code string, want GameType) (*bitReader, uint8, error) {
	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return nil, 0, fmt.Errorf("decode share code: %w", err)
	}
	if len(raw) < 3 {
		return nil, 0, fmt.Errorf("share code too short")
	}
	if raw[0] != shareCodeVersion {
		return nil, 0, fmt.Errorf("unsupported share code version %d", raw[0])
	}
	if GameType(raw[1]) != want {
		return nil, 0, fmt.Errorf("share code is a %s game, not %s", GameType(raw[1]), want)
	}
	return &bitReader{buf: raw[3:]}, raw[2], nil
}

// conservation tracks which of the 52 cards have been seen.
type conservation [DeckSize]bool

func (cv *conservation) add(c Card) error {
	idx := int(c.Suit())*13 + int(c.Rank()) - 1
	if cv[idx] {
		return fmt.Errorf("duplicate card %s", c)
	}
	cv[idx] = true
	return nil
}

func (cv *conservation) complete() error {
	for i, seen := range cv {
		if !seen {
			c := NewCard(uint8(i/13), uint8(i%13)+1)
			return fmt.Errorf("missing card %s", c)
		}
	}
	return nil
}

// addFoundations accounts for the cards implied by foundation counters.
func (cv *conservation) addFoundations(foundations [NumSuits]uint8) error {
	for suit, top := range foundations {
		if top > RankKing {
			return fmt.Errorf("foundation %d above King", suit)
		}
		for rank := RankAce; rank <= top; rank++ {
			if err := cv.add(NewCard(uint8(suit), rank)); err != nil {
				return err
			}
		}
	}
	return nil
}

// DecodeFreeCellShareCode rebuilds a FreeCell position from a share
// code, verifying the header, all zone bounds and full 52-card
// conservation before returning. Any violation is an error and no
// partial state escapes.
func DecodeFreeCellShareCode(code string) (FreeCellState, error) {
	r, cells, err := openShareCode(code, GameFreeCell)
	if err != nil {
		return FreeCellState{}, err
	}
	if cells != FreeCellCells {
		return FreeCellState{}, fmt.Errorf("unsupported free cell count %d", cells)
	}

	var g FreeCellState
	g.Rules = DefaultFreeCellRules()
	var cv conservation

	seed, err := r.read(seedBits)
	if err != nil {
		return FreeCellState{}, err
	}
	g.Seed = seed
	moves, err := r.read(movesBits)
	if err != nil {
		return FreeCellState{}, err
	}
	g.Moves = uint16(moves)

	for i := range g.Foundations {
		v, err := r.read(rankBits)
		if err != nil {
			return FreeCellState{}, err
		}
		g.Foundations[i] = uint8(v)
	}
	if err := cv.addFoundations(g.Foundations); err != nil {
		return FreeCellState{}, err
	}

	for i := range g.Cells {
		present, err := r.read(1)
		if err != nil {
			return FreeCellState{}, err
		}
		if present == 0 {
			g.Cells[i] = EmptyCard
			continue
		}
		c, err := readCard(r)
		if err != nil {
			return FreeCellState{}, err
		}
		if err := cv.add(c); err != nil {
			return FreeCellState{}, err
		}
		g.Cells[i] = c
	}

	for i := uint8(0); i < FreeCellColumns; i++ {
		n, err := r.read(tabLenBits)
		if err != nil {
			return FreeCellState{}, err
		}
		if n > tableauCap {
			return FreeCellState{}, fmt.Errorf("column %d length %d out of range", i, n)
		}
		for k := uint64(0); k < n; k++ {
			c, err := readCard(r)
			if err != nil {
				return FreeCellState{}, err
			}
			if err := cv.add(c); err != nil {
				return FreeCellState{}, err
			}
			g.Tableau[i][g.TabLen[i]] = c
			g.TabLen[i]++
		}
	}

	if err := cv.complete(); err != nil {
		return FreeCellState{}, err
	}
	return g, nil
}

// DecodeKlondikeShareCode rebuilds a Klondike position from a share
// code under the same fail-closed validation as the FreeCell decoder.
func DecodeKlondikeShareCode(code string) (KlondikeState, error) {
	r, draw, err := openShareCode(code, GameKlondike)
	if err != nil {
		return KlondikeState{}, err
	}
	if draw != 1 && draw != 3 {
		return KlondikeState{}, fmt.Errorf("unsupported draw count %d", draw)
	}

	var g KlondikeState
	g.Rules = DefaultKlondikeRules()
	g.Rules.DrawCount = draw
	var cv conservation

	seed, err := r.read(seedBits)
	if err != nil {
		return KlondikeState{}, err
	}
	g.Seed = seed
	moves, err := r.read(movesBits)
	if err != nil {
		return KlondikeState{}, err
	}
	g.Moves = uint16(moves)

	for i := range g.Foundations {
		v, err := r.read(rankBits)
		if err != nil {
			return KlondikeState{}, err
		}
		g.Foundations[i] = uint8(v)
	}
	if err := cv.addFoundations(g.Foundations); err != nil {
		return KlondikeState{}, err
	}

	readPile := func(pile *[stockCap]Card, length *uint8) error {
		n, err := r.read(pileLenBits)
		if err != nil {
			return err
		}
		if n > stockCap {
			return fmt.Errorf("pile length %d out of range", n)
		}
		for k := uint64(0); k < n; k++ {
			c, err := readCard(r)
			if err != nil {
				return err
			}
			if err := cv.add(c); err != nil {
				return err
			}
			pile[*length] = c
			*length++
		}
		return nil
	}
	if err := readPile(&g.Stock, &g.StockLen); err != nil {
		return KlondikeState{}, err
	}
	if err := readPile(&g.Waste, &g.WasteLen); err != nil {
		return KlondikeState{}, err
	}

	for i := uint8(0); i < KlondikeColumns; i++ {
		n, err := r.read(tabLenBits)
		if err != nil {
			return KlondikeState{}, err
		}
		faceUp, err := r.read(tabLenBits)
		if err != nil {
			return KlondikeState{}, err
		}
		if n > tableauCap {
			return KlondikeState{}, fmt.Errorf("column %d length %d out of range", i, n)
		}
		if faceUp > n || (n > 0 && faceUp == 0) {
			return KlondikeState{}, fmt.Errorf("column %d face-up count %d inconsistent with length %d", i, faceUp, n)
		}
		g.FaceUp[i] = uint8(faceUp)
		for k := uint64(0); k < n; k++ {
			c, err := readCard(r)
			if err != nil {
				return KlondikeState{}, err
			}
			if err := cv.add(c); err != nil {
				return KlondikeState{}, err
			}
			g.Tableau[i][g.TabLen[i]] = c
			g.TabLen[i]++
		}
	}

	if err := cv.complete(); err != nil {
		return KlondikeState{}, err
	}
	return g, nil
}
