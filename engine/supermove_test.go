package engine

import "testing"

// TestMaxMovable verifies the closed-form (cells+1)·2^cols bound.
func TestMaxMovable(t *testing.T) {
	cases := []struct {
		cells, cols, want int
	}{
		{0, 0, 1},
		{1, 0, 2},
		{4, 0, 5},
		{0, 1, 2},
		{0, 2, 4},
		{1, 2, 8},
		{3, 1, 8},
		{2, 3, 24},
		{4, 4, 80},
	}
	for _, c := range cases {
		if got := MaxMovable(c.cells, c.cols); got != c.want {
			t.Errorf("MaxMovable(%d,%d) = %d, want %d", c.cells, c.cols, got, c.want)
		}
	}
}

// TestMaxMovableClamps verifies negative inputs are treated as zero.
func TestMaxMovableClamps(t *testing.T) {
	if got := MaxMovable(-3, -1); got != 1 {
		t.Errorf("MaxMovable(-3,-1) = %d, want 1", got)
	}
}
