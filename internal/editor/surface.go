package editor

// Surface is one editing view over a document: the current snapshot, the
// selection, the undo history and view-only presentation state. It is not
// safe for concurrent use; an authoring session owns exactly one surface.
type Surface struct {
	doc      Document
	sel      Selection
	history  *History
	fontSize int
}

// DefaultFontSize matches the editor's initial text size.
const DefaultFontSize = 14

func NewSurface() *Surface {
	return &Surface{
		doc:      NewDocument(),
		sel:      Caret(Position{}),
		history:  NewHistory(100),
		fontSize: DefaultFontSize,
	}
}

// Load replaces the surface content with parsed markup and clears history.
func (s *Surface) Load(content string) {
	s.doc = ParseHTML(content)
	s.sel = Caret(Position{}).clamp(s.doc)
	s.history = NewHistory(100)
}

// Apply runs a command against the current state and records the previous
// state for undo.
func (s *Surface) Apply(cmd Command) {
	s.history.Record(s.doc, s.sel)
	s.doc, s.sel = cmd(s.doc, s.sel)
	s.sel = s.sel.clamp(s.doc)
}

// Select moves the selection without touching the document or history.
func (s *Surface) Select(sel Selection) {
	s.sel = sel.clamp(s.doc)
}

// Undo restores the previous snapshot. Returns false at the bottom of the
// stack.
func (s *Surface) Undo() bool {
	doc, sel, ok := s.history.Undo(s.doc, s.sel)
	if ok {
		s.doc, s.sel = doc, sel.clamp(doc)
	}
	return ok
}

// Redo reapplies the last undone snapshot.
func (s *Surface) Redo() bool {
	doc, sel, ok := s.history.Redo(s.doc, s.sel)
	if ok {
		s.doc, s.sel = doc, sel.clamp(doc)
	}
	return ok
}

// Document returns a copy of the current snapshot.
func (s *Surface) Document() Document {
	return s.doc.Clone()
}

// Selection returns the current selection.
func (s *Surface) Selection() Selection {
	return s.sel
}

// HTML serializes the current snapshot.
func (s *Surface) HTML() string {
	return RenderHTML(s.doc)
}

// PlainText returns the snapshot's text content.
func (s *Surface) PlainText() string {
	return s.doc.PlainText()
}

// SetFontSize adjusts the view's text size. Presentation state only: it does
// not touch the document and is not undoable.
func (s *Surface) SetFontSize(px int) {
	switch px {
	case 13, 14, 15, 16:
		s.fontSize = px
	}
}

// FontSize returns the view's text size in pixels.
func (s *Surface) FontSize() int {
	return s.fontSize
}
