package engine

// MaxMovable returns the largest run that can be relocated as one unit
// given freeCells empty holding cells and emptyCols empty tableau
// columns: (freeCells+1) * 2^emptyCols.
//
// Callers must exclude capacity the move itself consumes: cells the run
// would land in, and the source and destination columns. An empty
// destination column is not spare capacity for the move landing in it.
// Variants without holding cells pass freeCells = 0.
func MaxMovable(freeCells, emptyCols int) int {
	if freeCells < 0 {
		freeCells = 0
	}
	if emptyCols < 0 {
		emptyCols = 0
	}
	if emptyCols > 30 {
		emptyCols = 30 // clamp; 2^30 already dwarfs any real deck
	}
	return (freeCells + 1) << uint(emptyCols)
}
