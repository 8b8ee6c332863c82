package terminal

import (
	"maps"

	"wired/core"
)

// historySize is the number of layouts the viewer can undo through.
const historySize = 50

// layout records where every component sits.
type layout map[string]core.Point

// history keeps recent layouts for undo and redo.
type history struct {
	states  []layout
	current int
	max     int
}

// newHistory creates a history holding at most max layouts.
func newHistory(max int) *history {
	if max <= 0 {
		max = historySize
	}
	return &history{
		states:  make([]layout, 0, max),
		current: -1,
		max:     max,
	}
}

// Save records l as the newest layout, dropping anything that was undone.
func (h *history) Save(l layout) {
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, maps.Clone(l))
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
}

// CanUndo reports whether an older layout exists.
func (h *history) CanUndo() bool {
	return h.current > 0
}

// CanRedo reports whether an undone layout can be restored.
func (h *history) CanRedo() bool {
	return h.current < len(h.states)-1
}

// Undo steps back one layout.
func (h *history) Undo() (layout, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.current--
	return h.states[h.current], true
}

// Redo steps forward one layout.
func (h *history) Redo() (layout, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.current++
	return h.states[h.current], true
}

// Stats returns the current position and the number of layouts kept.
func (h *history) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
