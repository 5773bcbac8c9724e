package engine

import (
	"encoding/json"
	"fmt"
)

// DefaultHistoryLimit bounds a history when the caller passes no limit.
const DefaultHistoryLimit = 128

// History is a bounded sequence of state snapshots with a cursor,
// generic over the snapshot type. Pushing past the capacity evicts the
// oldest snapshot in O(1); pushing after an undo discards the redo
// branch. The zero cursor convention: cur == -1 means the history is
// empty.
type History[T any] struct {
	buf   []T
	start int // ring offset of the logical first snapshot
	size  int // number of live snapshots
	cur   int // logical index of the current snapshot, -1 when empty
}

// NewHistory returns a history holding at most limit snapshots.
// A non-positive limit falls back to DefaultHistoryLimit.
func NewHistory[T any](limit int) *History[T] {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History[T]{buf: make([]T, limit), cur: -1}
}

// at returns the snapshot at logical index i.
func (h *History[T]) at(i int) T {
	return h.buf[(h.start+i)%len(h.buf)]
}

// Len returns the number of snapshots currently held.
func (h *History[T]) Len() int { return h.size }

// Current returns the snapshot under the cursor, if any.
func (h *History[T]) Current() (T, bool) {
	if h.cur < 0 {
		var zero T
		return zero, false
	}
	return h.at(h.cur), true
}

// Push appends s after the cursor, discarding any redo branch. When
// the history is full the oldest snapshot falls off the front.
func (h *History[T]) Push(s T) {
	h.size = h.cur + 1 // truncate redo branch
	if h.size == len(h.buf) {
		h.start = (h.start + 1) % len(h.buf)
		h.size--
		h.cur--
	}
	h.buf[(h.start+h.size)%len(h.buf)] = s
	h.size++
	h.cur++
}

// CanUndo reports whether a prior snapshot exists.
func (h *History[T]) CanUndo() bool { return h.cur > 0 }

// CanRedo reports whether an undone snapshot can be restored.
func (h *History[T]) CanRedo() bool { return h.cur >= 0 && h.cur < h.size-1 }

// Undo steps the cursor back and returns that snapshot. When nothing
// can be undone it reports false and leaves the cursor alone.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		var zero T
		return zero, false
	}
	h.cur--
	return h.at(h.cur), true
}

// Redo steps the cursor forward and returns that snapshot. When
// nothing can be redone it reports false and leaves the cursor alone.
func (h *History[T]) Redo() (T, bool) {
	if !h.CanRedo() {
		var zero T
		return zero, false
	}
	h.cur++
	return h.at(h.cur), true
}

// Clear empties the history.
func (h *History[T]) Clear() {
	h.start, h.size, h.cur = 0, 0, -1
}

// historyRecord is the at-rest form of a History.
type historyRecord[T any] struct {
	Limit     int `json:"limit"`
	Cursor    int `json:"cursor"`
	Snapshots []T `json:"snapshots"`
}

// Serialize renders the full snapshot sequence and cursor as JSON.
func (h *History[T]) Serialize() ([]byte, error) {
	rec := historyRecord[T]{Limit: len(h.buf), Cursor: h.cur}
	rec.Snapshots = make([]T, 0, h.size)
	for i := 0; i < h.size; i++ {
		rec.Snapshots = append(rec.Snapshots, h.at(i))
	}
	return json.Marshal(rec)
}

// Deserialize replaces the history with the serialized sequence.
// Malformed input fails closed: the history is cleared and the error
// returned, so the caller can seed a fresh initial state instead of
// replaying a corrupt one.
func (h *History[T]) Deserialize(data []byte) error {
	var rec historyRecord[T]
	if err := json.Unmarshal(data, &rec); err != nil {
		h.Clear()
		return fmt.Errorf("decode history: %w", err)
	}
	if rec.Limit <= 0 || len(rec.Snapshots) > rec.Limit ||
		rec.Cursor < -1 || rec.Cursor >= len(rec.Snapshots) ||
		(rec.Cursor == -1 && len(rec.Snapshots) > 0) {
		h.Clear()
		return fmt.Errorf("decode history: inconsistent record (limit=%d cursor=%d snapshots=%d)",
			rec.Limit, rec.Cursor, len(rec.Snapshots))
	}
	h.buf = make([]T, rec.Limit)
	h.start = 0
	h.size = copy(h.buf, rec.Snapshots)
	h.cur = rec.Cursor
	return nil
}
