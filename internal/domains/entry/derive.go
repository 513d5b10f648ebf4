package entry

import "strings"

// DeriveTitle fills an empty title from the metadata variant. Biblioteca and
// Pensamento entries can be published without a typed title; Escrita and
// Projeto keep whatever the author wrote (possibly empty).
func DeriveTitle(title string, meta Metadata) string {
	if strings.TrimSpace(title) != "" {
		return title
	}

	switch v := meta.(type) {
	case BookInfo:
		if strings.TrimSpace(v.Title) == "" {
			return "Notas de Leitura"
		}
		return "Notas de Leitura: " + v.Title
	case ThoughtInfo:
		insight := strings.TrimSpace(v.CoreInsight)
		if insight == "" {
			return "Nova Reflexão"
		}
		runes := []rune(insight)
		if len(runes) > 50 {
			return "Reflexão: " + string(runes[:50]) + "..."
		}
		return "Reflexão: " + insight
	default:
		return title
	}
}

// DeriveExcerpt fills an empty excerpt from the metadata variant.
func DeriveExcerpt(excerpt string, meta Metadata) string {
	if strings.TrimSpace(excerpt) != "" {
		return excerpt
	}

	switch v := meta.(type) {
	case BookInfo:
		author := strings.TrimSpace(v.Author)
		if author == "" {
			author = "Autor desconhecido"
		}
		return author + " - " + string(v.Status)
	case ThoughtInfo:
		return v.CoreInsight
	default:
		return excerpt
	}
}
