package editor

// Mark is a character-level formatting flag. Marks combine as a bitmask on
// each inline run.
type Mark uint8

const (
	MarkBold Mark = 1 << iota
	MarkItalic
	MarkStrikethrough
	MarkUnderline
)

func (m Mark) Has(flag Mark) bool { return m&flag != 0 }

// Inline is a run of text with uniform formatting. A run with a non-empty
// LinkHref renders as an anchor.
type Inline struct {
	Text     string
	Marks    Mark
	LinkHref string
}

// BlockKind identifies what a block is. Text kinds carry inline runs; media
// kinds carry attributes only.
type BlockKind string

const (
	KindParagraph BlockKind = "paragraph"
	KindHeading1  BlockKind = "heading1"
	KindHeading2  BlockKind = "heading2"
	KindHeading3  BlockKind = "heading3"
	KindQuote     BlockKind = "quote"
	KindCode      BlockKind = "code"
	KindBulleted  BlockKind = "bulleted"
	KindNumbered  BlockKind = "numbered"
	KindRule      BlockKind = "rule"
	KindImage     BlockKind = "image"
	KindAudio     BlockKind = "audio"
	KindVideo     BlockKind = "video"
	KindYouTube   BlockKind = "youtube"
	KindButton    BlockKind = "button"
)

// IsText reports whether the kind holds editable inline runs.
func (k BlockKind) IsText() bool {
	switch k {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3,
		KindQuote, KindCode, KindBulleted, KindNumbered:
		return true
	}
	return false
}

// IsList reports whether the kind is a list item.
func (k BlockKind) IsList() bool {
	return k == KindBulleted || k == KindNumbered
}

// Block is one top-level unit of the document. Consecutive list items of the
// same kind render as one list.
type Block struct {
	Kind    BlockKind
	Inlines []Inline

	// Media attributes. SourceURL is the src/href of image, audio, video,
	// youtube and button blocks; Label is the visible text of a button and
	// Variant picks its visual style ("primary" or "outline").
	SourceURL string
	Label     string
	Variant   string
}

// Text returns the concatenated inline text of the block.
func (b Block) Text() string {
	var out string
	for _, in := range b.Inlines {
		out += in.Text
	}
	return out
}

// Length is the block's text length in runes. Media blocks occupy a single
// caret position.
func (b Block) Length() int {
	if !b.Kind.IsText() {
		return 1
	}
	n := 0
	for _, in := range b.Inlines {
		n += len([]rune(in.Text))
	}
	return n
}

// Document is an ordered sequence of blocks. The zero value is not usable;
// NewDocument returns the canonical empty document.
type Document struct {
	Blocks []Block
}

// NewDocument returns a document holding a single empty paragraph.
func NewDocument() Document {
	return Document{Blocks: []Block{{Kind: KindParagraph}}}
}

// Clone deep-copies the document. Commands never mutate their input, and
// history snapshots rely on clones being independent.
func (d Document) Clone() Document {
	blocks := make([]Block, len(d.Blocks))
	for i, b := range d.Blocks {
		nb := b
		nb.Inlines = make([]Inline, len(b.Inlines))
		copy(nb.Inlines, b.Inlines)
		blocks[i] = nb
	}
	return Document{Blocks: blocks}
}

// PlainText returns the document text with blocks joined by newlines. Media
// blocks contribute nothing.
func (d Document) PlainText() string {
	var out string
	for i, b := range d.Blocks {
		if !b.Kind.IsText() {
			continue
		}
		if i > 0 && out != "" {
			out += "\n"
		}
		out += b.Text()
	}
	return out
}

// normalize ensures the document never becomes empty and merges adjacent
// inlines with identical formatting.
func (d Document) normalize() Document {
	if len(d.Blocks) == 0 {
		return NewDocument()
	}
	for i := range d.Blocks {
		d.Blocks[i].Inlines = mergeInlines(d.Blocks[i].Inlines)
	}
	return d
}

func mergeInlines(inlines []Inline) []Inline {
	var out []Inline
	for _, in := range inlines {
		if in.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Marks == in.Marks && out[n-1].LinkHref == in.LinkHref {
			out[n-1].Text += in.Text
			continue
		}
		out = append(out, in)
	}
	return out
}
