package editor

import (
	"html"
	"strings"
)

const (
	audioStyle   = "width: 100%; margin: 10px 0; border-radius: 12px;"
	videoStyle   = "width: 100%; margin: 10px 0; border-radius: 16px;"
	embedWrapper = "position: relative; padding-bottom: 56.25%; height: 0; margin: 20px 0; border-radius: 16px; overflow: hidden;"
	embedFrame   = "position: absolute; top: 0; left: 0; width: 100%; height: 100%;"

	buttonPrimaryStyle = "background: #f45d2f; color: white; padding: 12px 24px; border-radius: 12px; font-weight: bold; text-decoration: none; display: inline-block; margin: 10px 0;"
	buttonOutlineStyle = "background: transparent; color: #f45d2f; border: 2px solid #f45d2f; padding: 10px 22px; border-radius: 12px; font-weight: bold; text-decoration: none; display: inline-block; margin: 10px 0;"
)

// RenderHTML serializes a document to the HTML dialect the read views
// consume. Consecutive list items collapse into a single list element.
func RenderHTML(d Document) string {
	var sb strings.Builder

	for i := 0; i < len(d.Blocks); i++ {
		b := d.Blocks[i]
		if b.Kind.IsList() {
			tag := "ul"
			if b.Kind == KindNumbered {
				tag = "ol"
			}
			sb.WriteString("<" + tag + ">")
			for ; i < len(d.Blocks) && d.Blocks[i].Kind == b.Kind; i++ {
				sb.WriteString("<li>")
				renderInlines(&sb, d.Blocks[i].Inlines)
				sb.WriteString("</li>")
			}
			i--
			sb.WriteString("</" + tag + ">")
			continue
		}
		renderBlock(&sb, b)
	}
	return sb.String()
}

func renderBlock(sb *strings.Builder, b Block) {
	switch b.Kind {
	case KindParagraph:
		renderTextBlock(sb, "p", b)
	case KindHeading1:
		renderTextBlock(sb, "h1", b)
	case KindHeading2:
		renderTextBlock(sb, "h2", b)
	case KindHeading3:
		renderTextBlock(sb, "h3", b)
	case KindQuote:
		renderTextBlock(sb, "blockquote", b)
	case KindCode:
		renderTextBlock(sb, "pre", b)
	case KindRule:
		sb.WriteString("<hr/>")
	case KindImage:
		sb.WriteString(`<img src="` + html.EscapeString(b.SourceURL) + `"/>`)
	case KindAudio:
		sb.WriteString(`<audio src="` + html.EscapeString(b.SourceURL) + `" controls style="` + audioStyle + `"></audio><br/>`)
	case KindVideo:
		sb.WriteString(`<video src="` + html.EscapeString(b.SourceURL) + `" controls style="` + videoStyle + `"></video><br/>`)
	case KindYouTube:
		sb.WriteString(`<div style="` + embedWrapper + `"><iframe src="` + html.EscapeString(b.SourceURL) +
			`" style="` + embedFrame + `" frameborder="0" allowfullscreen></iframe></div><br/>`)
	case KindButton:
		style := buttonPrimaryStyle
		if b.Variant == "outline" {
			style = buttonOutlineStyle
		}
		sb.WriteString(`<a href="` + html.EscapeString(b.SourceURL) + `" target="_blank" style="` + style + `">` +
			html.EscapeString(b.Label) + `</a>&nbsp;`)
	}
}

func renderTextBlock(sb *strings.Builder, tag string, b Block) {
	sb.WriteString("<" + tag + ">")
	if len(b.Inlines) == 0 {
		sb.WriteString("<br/>")
	} else {
		renderInlines(sb, b.Inlines)
	}
	sb.WriteString("</" + tag + ">")
}

func renderInlines(sb *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		text := html.EscapeString(in.Text)
		if in.Marks.Has(MarkBold) {
			text = "<b>" + text + "</b>"
		}
		if in.Marks.Has(MarkItalic) {
			text = "<i>" + text + "</i>"
		}
		if in.Marks.Has(MarkStrikethrough) {
			text = "<strike>" + text + "</strike>"
		}
		if in.Marks.Has(MarkUnderline) {
			text = "<u>" + text + "</u>"
		}
		if in.LinkHref != "" {
			text = `<a href="` + html.EscapeString(in.LinkHref) + `">` + text + `</a>`
		}
		sb.WriteString(text)
	}
}
