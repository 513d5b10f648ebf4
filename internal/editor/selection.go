package editor

// Position addresses one caret slot: rune offset Offset inside block Block.
type Position struct {
	Block  int
	Offset int
}

func (p Position) before(q Position) bool {
	if p.Block != q.Block {
		return p.Block < q.Block
	}
	return p.Offset < q.Offset
}

// Selection is a range between two positions. Anchor is where the selection
// started, Focus where it ends; Focus may precede Anchor.
type Selection struct {
	Anchor Position
	Focus  Position
}

// Caret returns a collapsed selection at p.
func Caret(p Position) Selection {
	return Selection{Anchor: p, Focus: p}
}

// IsCaret reports whether the selection is collapsed.
func (s Selection) IsCaret() bool {
	return s.Anchor == s.Focus
}

// Ordered returns the selection's start and end in document order.
func (s Selection) Ordered() (Position, Position) {
	if s.Focus.before(s.Anchor) {
		return s.Focus, s.Anchor
	}
	return s.Anchor, s.Focus
}

// clamp snaps the selection inside the document's bounds.
func (s Selection) clamp(d Document) Selection {
	s.Anchor = clampPosition(d, s.Anchor)
	s.Focus = clampPosition(d, s.Focus)
	return s
}

func clampPosition(d Document, p Position) Position {
	if len(d.Blocks) == 0 {
		return Position{}
	}
	if p.Block < 0 {
		p.Block = 0
	}
	if p.Block >= len(d.Blocks) {
		p.Block = len(d.Blocks) - 1
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if max := d.Blocks[p.Block].Length(); p.Offset > max {
		p.Offset = max
	}
	return p
}
