package engine

import "fmt"

// Zone identifies the kind of pile a Location addresses.
type Zone uint8

const (
	ZoneTableau    Zone = iota // main playing columns
	ZoneFoundation             // per-suit ascending piles
	ZoneFreeCell               // single-card holding slots (FreeCell only)
	ZoneStock                  // face-down draw pile (Klondike only)
	ZoneWaste                  // face-up discard pile (Klondike only)
)

// String returns the zone name.
func (z Zone) String() string {
	switch z {
	case ZoneTableau:
		return "tableau"
	case ZoneFoundation:
		return "foundation"
	case ZoneFreeCell:
		return "freecell"
	case ZoneStock:
		return "stock"
	case ZoneWaste:
		return "waste"
	}
	return fmt.Sprintf("zone(%d)", uint8(z))
}

// Location addresses a card or run of cards within a game state.
// Count is the number of cards addressed, counted from the exposed end
// of a tableau column; it is meaningful only for tableau sources and is
// at least 1 everywhere else.
type Location struct {
	Zone  Zone  `json:"zone"`
	Index uint8 `json:"index"`
	Count uint8 `json:"count"`
}

// Tableau addresses the single top card of tableau column i.
func Tableau(i uint8) Location { return Location{Zone: ZoneTableau, Index: i, Count: 1} }

// TableauRun addresses the top n cards of tableau column i as a unit.
func TableauRun(i, n uint8) Location { return Location{Zone: ZoneTableau, Index: i, Count: n} }

// Foundation addresses foundation pile i (one pile per suit).
func Foundation(i uint8) Location { return Location{Zone: ZoneFoundation, Index: i, Count: 1} }

// FreeCell addresses free cell i.
func FreeCell(i uint8) Location { return Location{Zone: ZoneFreeCell, Index: i, Count: 1} }

// Waste addresses the top of the waste pile.
func Waste() Location { return Location{Zone: ZoneWaste, Count: 1} }

// Stock addresses the stock pile. Cards never move directly out of the
// stock; it exists as a location so clients can name it in draw events.
func Stock() Location { return Location{Zone: ZoneStock, Count: 1} }

// String renders the location, e.g. "tableau[3]x2" or "waste".
func (l Location) String() string {
	switch l.Zone {
	case ZoneStock, ZoneWaste:
		return l.Zone.String()
	}
	if l.Count > 1 {
		return fmt.Sprintf("%s[%d]x%d", l.Zone, l.Index, l.Count)
	}
	return fmt.Sprintf("%s[%d]", l.Zone, l.Index)
}

// count normalizes a Location's Count, treating 0 as 1.
func (l Location) count() uint8 {
	if l.Count == 0 {
		return 1
	}
	return l.Count
}
