package editor

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML reads previously rendered content back into a document. The
// parser is tolerant: unknown elements contribute their text, unrecognized
// structure degrades to paragraphs, and malformed markup never fails (the
// worst input yields an empty document).
func ParseHTML(content string) Document {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return NewDocument()
	}

	p := &htmlParser{}
	p.walk(root)
	p.flush()
	return Document{Blocks: p.blocks}.normalize()
}

type htmlParser struct {
	blocks  []Block
	current *Block
}

func (p *htmlParser) walk(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.node(c)
	}
}

func (p *htmlParser) node(n *html.Node) {
	if n.Type == html.TextNode {
		if text := collapseSpace(n.Data); text != "" {
			p.appendInline(Inline{Text: text})
		}
		return
	}
	if n.Type != html.ElementNode {
		p.walk(n)
		return
	}

	switch n.Data {
	case "p", "div":
		if kind, ok := youTubeEmbed(n); ok {
			p.pushBlock(kind)
			return
		}
		p.flush()
		p.walk(n)
		p.flush()
	case "h1":
		p.textBlock(KindHeading1, n)
	case "h2":
		p.textBlock(KindHeading2, n)
	case "h3", "h4", "h5", "h6":
		p.textBlock(KindHeading3, n)
	case "blockquote":
		p.textBlock(KindQuote, n)
	case "pre":
		p.textBlock(KindCode, n)
	case "ul":
		p.list(KindBulleted, n)
	case "ol":
		p.list(KindNumbered, n)
	case "hr":
		p.pushBlock(Block{Kind: KindRule})
	case "img":
		p.pushBlock(Block{Kind: KindImage, SourceURL: attr(n, "src")})
	case "audio":
		p.pushBlock(Block{Kind: KindAudio, SourceURL: attr(n, "src")})
	case "video":
		p.pushBlock(Block{Kind: KindVideo, SourceURL: attr(n, "src")})
	case "iframe":
		if src := attr(n, "src"); strings.Contains(src, "youtube.com/embed/") {
			p.pushBlock(Block{Kind: KindYouTube, SourceURL: src})
		}
	case "br":
		// Soft breaks inside a block start a new paragraph.
		p.flush()
	case "a":
		if isButtonAnchor(n) {
			p.pushBlock(Block{
				Kind:      KindButton,
				SourceURL: attr(n, "href"),
				Label:     strings.TrimSpace(collapseSpace(textContent(n))),
				Variant:   buttonVariant(attr(n, "style")),
			})
			return
		}
		p.inlineRun(n, func(in *Inline) { in.LinkHref = attr(n, "href") })
	case "b", "strong":
		p.inlineRun(n, func(in *Inline) { in.Marks |= MarkBold })
	case "i", "em":
		p.inlineRun(n, func(in *Inline) { in.Marks |= MarkItalic })
	case "strike", "s", "del":
		p.inlineRun(n, func(in *Inline) { in.Marks |= MarkStrikethrough })
	case "u":
		p.inlineRun(n, func(in *Inline) { in.Marks |= MarkUnderline })
	default:
		p.walk(n)
	}
}

// inlineRun parses children, then applies a formatting adjustment to every
// inline produced inside the element.
func (p *htmlParser) inlineRun(n *html.Node, apply func(*Inline)) {
	if p.current == nil {
		p.current = &Block{Kind: KindParagraph}
	}
	from := len(p.current.Inlines)
	target := p.current
	p.walk(n)
	// Nested block elements may have flushed; apply only when the run stayed
	// inside the same block.
	if p.current == target {
		for i := from; i < len(p.current.Inlines); i++ {
			apply(&p.current.Inlines[i])
		}
	}
}

func (p *htmlParser) textBlock(kind BlockKind, n *html.Node) {
	p.flush()
	p.current = &Block{Kind: kind}
	p.walk(n)
	p.flush()
}

func (p *htmlParser) list(kind BlockKind, n *html.Node) {
	p.flush()
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			p.current = &Block{Kind: kind}
			p.walk(c)
			p.flush()
		}
	}
}

func (p *htmlParser) appendInline(in Inline) {
	if p.current == nil {
		p.current = &Block{Kind: KindParagraph}
	}
	p.current.Inlines = append(p.current.Inlines, in)
}

func (p *htmlParser) pushBlock(b Block) {
	p.flush()
	p.blocks = append(p.blocks, b)
}

// flush commits the block under construction, dropping empty paragraphs.
func (p *htmlParser) flush() {
	if p.current == nil {
		return
	}
	b := *p.current
	p.current = nil
	if b.Kind == KindParagraph && strings.TrimSpace(b.Text()) == "" {
		return
	}
	p.blocks = append(p.blocks, b)
}

// youTubeEmbed recognizes the responsive wrapper div around an iframe.
func youTubeEmbed(n *html.Node) (Block, bool) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "iframe" {
			if src := attr(c, "src"); strings.Contains(src, "youtube.com/embed/") {
				return Block{Kind: KindYouTube, SourceURL: src}, true
			}
		}
	}
	return Block{}, false
}

func isButtonAnchor(n *html.Node) bool {
	return strings.Contains(attr(n, "style"), "display: inline-block")
}

func buttonVariant(style string) string {
	if strings.Contains(style, "border: 2px solid") {
		return "outline"
	}
	return "primary"
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(m *html.Node) {
		if m.Type == html.TextNode {
			sb.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

// collapseSpace folds whitespace runs to single spaces, keeping one leading
// or trailing space so runs split across tags rejoin correctly.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	if strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\t") {
		out = " " + out
	}
	if strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, "\t") {
		out += " "
	}
	return out
}
