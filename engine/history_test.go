package engine

import "testing"

// TestHistoryPushUndoRedo verifies the core round trip: undo returns
// the state prior to the last push, redo returns it again.
func TestHistoryPushUndoRedo(t *testing.T) {
	h := NewHistory[int](8)
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history should have nothing to undo or redo")
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("undo on empty history should fail")
	}

	h.Push(1)
	h.Push(2)
	h.Push(3)
	if got, _ := h.Current(); got != 3 {
		t.Fatalf("Current = %d, want 3", got)
	}

	got, ok := h.Undo()
	if !ok || got != 2 {
		t.Fatalf("Undo = %d,%v, want 2,true", got, ok)
	}
	got, ok = h.Redo()
	if !ok || got != 3 {
		t.Fatalf("Redo = %d,%v, want 3,true", got, ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo past the end should fail")
	}
}

// TestHistoryPushDiscardsRedo: pushing after an undo discards the
// previously available redo target.
func TestHistoryPushDiscardsRedo(t *testing.T) {
	h := NewHistory[int](8)
	h.Push(1)
	h.Push(2)
	h.Push(3)
	h.Undo() // back to 2
	h.Push(9)
	if h.CanRedo() {
		t.Fatal("redo branch should be discarded by push")
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	got, _ := h.Undo()
	if got != 2 {
		t.Fatalf("Undo after branch push = %d, want 2", got)
	}
}

// TestHistoryEviction: pushing past capacity drops the oldest snapshot
// and keeps the cursor on the newest.
func TestHistoryEviction(t *testing.T) {
	h := NewHistory[int](3)
	for i := 1; i <= 5; i++ {
		h.Push(i)
	}
	if h.Len() != 3 {
		t.Fatalf("Len = %d, want 3", h.Len())
	}
	if got, _ := h.Current(); got != 5 {
		t.Fatalf("Current = %d, want 5", got)
	}
	// Undo twice reaches the oldest retained snapshot (3), then stops.
	h.Undo()
	got, _ := h.Undo()
	if got != 3 {
		t.Fatalf("oldest retained = %d, want 3", got)
	}
	if h.CanUndo() {
		t.Fatal("evicted snapshots should not be undoable")
	}
}

// TestHistorySerializeRoundTrip: serialize → deserialize preserves the
// sequence and cursor, including an undo position mid-stream.
func TestHistorySerializeRoundTrip(t *testing.T) {
	h := NewHistory[FreeCellState](16)
	g := NewFreeCellGame(21)
	h.Push(g)
	g2, err := g.ExecuteMove(Tableau(0), FreeCell(0))
	if err != nil {
		t.Fatalf("setup move: %v", err)
	}
	h.Push(g2)
	h.Undo()

	data, err := h.Serialize()
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	h2 := NewHistory[FreeCellState](16)
	if err := h2.Deserialize(data); err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	if h2.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h2.Len())
	}
	cur, ok := h2.Current()
	if !ok || cur != g {
		t.Fatal("cursor state did not survive the round trip")
	}
	re, ok := h2.Redo()
	if !ok || re != g2 {
		t.Fatal("redo target did not survive the round trip")
	}
}

// TestHistoryDeserializeFailsClosed: malformed input clears the
// history and reports an error instead of panicking or half-loading.
func TestHistoryDeserializeFailsClosed(t *testing.T) {
	cases := map[string]string{
		"garbage":          "{not json",
		"cursorPastEnd":    `{"limit":4,"cursor":2,"snapshots":[1,2]}`,
		"cursorNegative":   `{"limit":4,"cursor":-2,"snapshots":[1]}`,
		"overCapacity":     `{"limit":1,"cursor":2,"snapshots":[1,2,3]}`,
		"emptyWithCursor":  `{"limit":4,"cursor":0,"snapshots":[]}`,
		"danglingSnapshot": `{"limit":4,"cursor":-1,"snapshots":[1]}`,
	}
	for name, data := range cases {
		h := NewHistory[int](4)
		h.Push(7)
		if err := h.Deserialize([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
		if h.Len() != 0 || h.CanUndo() || h.CanRedo() {
			t.Errorf("%s: history not cleared after failure", name)
		}
	}
}
