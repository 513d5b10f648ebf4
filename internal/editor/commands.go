package editor

import (
	"regexp"
	"strings"
)

// Command is a pure document transformation. Commands never mutate their
// input; they return the next document state and selection.
type Command func(Document, Selection) (Document, Selection)

// InsertText inserts text at the selection, replacing it when it spans a
// range. The inserted run inherits the formatting to its left.
func InsertText(text string) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d, sel = deleteSelection(d.Clone(), sel.clamp(d))
		p := sel.Anchor

		b := d.Blocks[p.Block]
		if !b.Kind.IsText() {
			return d, sel
		}

		left, right := splitInlinesAt(b.Inlines, p.Offset)
		run := Inline{Text: text}
		if n := len(left); n > 0 {
			run.Marks = left[n-1].Marks
			run.LinkHref = left[n-1].LinkHref
		}
		b.Inlines = append(append(left, run), right...)
		d.Blocks[p.Block] = b

		caret := Position{Block: p.Block, Offset: p.Offset + len([]rune(text))}
		return d.normalize(), Caret(caret)
	}
}

// DeleteRange removes the selected range. A caret selection is a no-op.
func DeleteRange() Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d, sel = deleteSelection(d.Clone(), sel.clamp(d))
		return d.normalize(), sel
	}
}

// SplitBlock breaks the block at the caret, carrying trailing text into a
// new block of the same kind. Splitting a heading yields a paragraph, the
// way editors return to body text after a title.
func SplitBlock() Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d, sel = deleteSelection(d.Clone(), sel.clamp(d))
		p := sel.Anchor

		b := d.Blocks[p.Block]
		if !b.Kind.IsText() {
			nb := Block{Kind: KindParagraph}
			d.Blocks = insertBlock(d.Blocks, p.Block+1, nb)
			return d.normalize(), Caret(Position{Block: p.Block + 1})
		}

		left, right := splitInlinesAt(b.Inlines, p.Offset)
		kind := b.Kind
		if kind == KindHeading1 || kind == KindHeading2 || kind == KindHeading3 {
			kind = KindParagraph
		}

		d.Blocks[p.Block].Inlines = left
		d.Blocks = insertBlock(d.Blocks, p.Block+1, Block{Kind: kind, Inlines: right})
		return d.normalize(), Caret(Position{Block: p.Block + 1})
	}
}

// ToggleMark toggles a formatting mark over the selection. When every
// character in the range already carries the mark it is removed, otherwise
// it is applied everywhere.
func ToggleMark(mark Mark) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d = d.Clone()
		sel = sel.clamp(d)
		if sel.IsCaret() {
			return d, sel
		}

		all := true
		forEachSelectedRun(&d, sel, func(in *Inline) {
			if !in.Marks.Has(mark) {
				all = false
			}
		})
		forEachSelectedRun(&d, sel, func(in *Inline) {
			if all {
				in.Marks &^= mark
			} else {
				in.Marks |= mark
			}
		})
		return d.normalize(), sel.clamp(d)
	}
}

// SetLink wraps the selection in a link. An empty href removes links.
func SetLink(href string) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d = d.Clone()
		sel = sel.clamp(d)
		if sel.IsCaret() {
			return d, sel
		}
		forEachSelectedRun(&d, sel, func(in *Inline) {
			in.LinkHref = href
		})
		return d.normalize(), sel.clamp(d)
	}
}

// ClearFormatting strips marks and links from the selection.
func ClearFormatting() Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d = d.Clone()
		sel = sel.clamp(d)
		forEachSelectedRun(&d, sel, func(in *Inline) {
			in.Marks = 0
			in.LinkHref = ""
		})
		return d.normalize(), sel.clamp(d)
	}
}

// SetBlockKind changes every text block touched by the selection to the
// given kind. Media blocks in the range are left alone.
func SetBlockKind(kind BlockKind) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d = d.Clone()
		sel = sel.clamp(d)
		start, end := sel.Ordered()
		for i := start.Block; i <= end.Block; i++ {
			if d.Blocks[i].Kind.IsText() && kind.IsText() {
				d.Blocks[i].Kind = kind
			}
		}
		return d.normalize(), sel
	}
}

// ToggleList turns the selected blocks into list items of the given kind,
// or back into paragraphs when they already are.
func ToggleList(kind BlockKind) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		if !kind.IsList() {
			return d, sel
		}
		d = d.Clone()
		sel = sel.clamp(d)
		start, end := sel.Ordered()

		all := true
		for i := start.Block; i <= end.Block; i++ {
			if d.Blocks[i].Kind.IsText() && d.Blocks[i].Kind != kind {
				all = false
			}
		}
		for i := start.Block; i <= end.Block; i++ {
			if !d.Blocks[i].Kind.IsText() {
				continue
			}
			if all {
				d.Blocks[i].Kind = KindParagraph
			} else {
				d.Blocks[i].Kind = kind
			}
		}
		return d.normalize(), sel
	}
}

// InsertRule inserts a horizontal rule after the caret's block.
func InsertRule() Command {
	return insertMediaBlock(Block{Kind: KindRule})
}

// InsertImage inserts an image block.
func InsertImage(src string) Command {
	return insertMediaBlock(Block{Kind: KindImage, SourceURL: src})
}

// InsertAudio inserts an audio player block.
func InsertAudio(src string) Command {
	return insertMediaBlock(Block{Kind: KindAudio, SourceURL: src})
}

// InsertVideo inserts a video player block.
func InsertVideo(src string) Command {
	return insertMediaBlock(Block{Kind: KindVideo, SourceURL: src})
}

// InsertYouTube inserts a responsive YouTube embed. Accepts watch, share and
// embed URL forms; an unrecognized URL is a no-op.
func InsertYouTube(url string) Command {
	id := ExtractYouTubeID(url)
	if id == "" {
		return func(d Document, sel Selection) (Document, Selection) { return d, sel }
	}
	return insertMediaBlock(Block{Kind: KindYouTube, SourceURL: "https://www.youtube.com/embed/" + id})
}

// InsertButton inserts a call-to-action button linking to href. Variant is
// "primary" or "outline".
func InsertButton(label, href, variant string) Command {
	if strings.TrimSpace(label) == "" {
		label = "Clique Aqui"
	}
	if variant != "outline" {
		variant = "primary"
	}
	return insertMediaBlock(Block{Kind: KindButton, SourceURL: href, Label: label, Variant: variant})
}

var youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{11})`)

// ExtractYouTubeID pulls the 11-character video id out of a YouTube URL.
func ExtractYouTubeID(url string) string {
	m := youtubeIDPattern.FindStringSubmatch(url)
	if len(m) != 2 {
		return ""
	}
	return m[1]
}

func insertMediaBlock(nb Block) Command {
	return func(d Document, sel Selection) (Document, Selection) {
		d = d.Clone()
		sel = sel.clamp(d)
		_, end := sel.Ordered()

		at := end.Block + 1
		d.Blocks = insertBlock(d.Blocks, at, nb)
		// Keep a paragraph after trailing media so the caret has a home.
		if at == len(d.Blocks)-1 {
			d.Blocks = append(d.Blocks, Block{Kind: KindParagraph})
		}
		return d.normalize(), Caret(Position{Block: at + 1})
	}
}

// deleteSelection removes the selected range and returns a caret at its
// start. Operates on an already-cloned document.
func deleteSelection(d Document, sel Selection) (Document, Selection) {
	if sel.IsCaret() {
		return d, Caret(sel.Anchor)
	}
	start, end := sel.Ordered()

	if start.Block == end.Block {
		b := d.Blocks[start.Block]
		if b.Kind.IsText() {
			left, _ := splitInlinesAt(b.Inlines, start.Offset)
			_, right := splitInlinesAt(b.Inlines, end.Offset)
			b.Inlines = append(left, right...)
			d.Blocks[start.Block] = b
		}
		return d, Caret(start)
	}

	first := d.Blocks[start.Block]
	last := d.Blocks[end.Block]

	var merged Block
	if first.Kind.IsText() {
		merged = first
		merged.Inlines, _ = splitInlinesAt(first.Inlines, start.Offset)
	} else {
		merged = Block{Kind: KindParagraph}
		start.Offset = 0
	}
	if last.Kind.IsText() {
		_, tail := splitInlinesAt(last.Inlines, end.Offset)
		merged.Inlines = append(merged.Inlines, tail...)
	}

	blocks := append([]Block{}, d.Blocks[:start.Block]...)
	blocks = append(blocks, merged)
	blocks = append(blocks, d.Blocks[end.Block+1:]...)
	d.Blocks = blocks
	return d, Caret(start)
}

// forEachSelectedRun splits inline runs at the selection boundaries, then
// visits every run fully inside the selection.
func forEachSelectedRun(d *Document, sel Selection, visit func(*Inline)) {
	start, end := sel.Ordered()
	for i := start.Block; i <= end.Block; i++ {
		b := &d.Blocks[i]
		if !b.Kind.IsText() {
			continue
		}

		from := 0
		to := b.Length()
		if i == start.Block {
			from = start.Offset
		}
		if i == end.Block {
			to = end.Offset
		}
		if from >= to {
			continue
		}

		left, rest := splitInlinesAt(b.Inlines, from)
		mid, right := splitInlinesAt(rest, to-from)
		for j := range mid {
			visit(&mid[j])
		}
		b.Inlines = append(append(left, mid...), right...)
	}
}

// splitInlinesAt cuts a run list at a rune offset, splitting the run that
// straddles it.
func splitInlinesAt(inlines []Inline, offset int) (left, right []Inline) {
	remaining := offset
	for i, in := range inlines {
		runes := []rune(in.Text)
		if remaining >= len(runes) {
			remaining -= len(runes)
			continue
		}

		left = append([]Inline{}, inlines[:i]...)
		if remaining > 0 {
			head := in
			head.Text = string(runes[:remaining])
			left = append(left, head)
		}
		tail := in
		tail.Text = string(runes[remaining:])
		right = append([]Inline{tail}, inlines[i+1:]...)
		return left, right
	}
	return append([]Inline{}, inlines...), nil
}

func insertBlock(blocks []Block, at int, nb Block) []Block {
	if at < 0 {
		at = 0
	}
	if at > len(blocks) {
		at = len(blocks)
	}
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:at]...)
	out = append(out, nb)
	out = append(out, blocks[at:]...)
	return out
}
