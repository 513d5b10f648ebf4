package editor

// historyEntry pairs a document snapshot with the selection at snapshot
// time, so undo restores the caret too.
type historyEntry struct {
	doc Document
	sel Selection
}

// History is a bounded snapshot stack with a redo branch. Recording a new
// state discards the redo branch, matching every mainstream editor.
type History struct {
	past   []historyEntry
	future []historyEntry
	limit  int
}

// NewHistory builds a history keeping at most limit undo steps.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	return &History{limit: limit}
}

// Record pushes the state that is about to be replaced.
func (h *History) Record(doc Document, sel Selection) {
	h.past = append(h.past, historyEntry{doc: doc.Clone(), sel: sel})
	if len(h.past) > h.limit {
		h.past = h.past[1:]
	}
	h.future = nil
}

// Undo exchanges current for the most recent snapshot. Returns false when
// there is nothing to undo.
func (h *History) Undo(current Document, sel Selection) (Document, Selection, bool) {
	if len(h.past) == 0 {
		return current, sel, false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, historyEntry{doc: current.Clone(), sel: sel})
	return last.doc, last.sel, true
}

// Redo reapplies the last undone state. Returns false when the redo branch
// is empty.
func (h *History) Redo(current Document, sel Selection) (Document, Selection, bool) {
	if len(h.future) == 0 {
		return current, sel, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, historyEntry{doc: current.Clone(), sel: sel})
	return next.doc, next.sel, true
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }
