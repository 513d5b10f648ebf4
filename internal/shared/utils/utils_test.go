package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "A Arquitetura do Silêncio", "a-arquitetura-do-silncio"},
		{"punctuation stripped", "Oatmeal & Abs!", "oatmeal-abs"},
		{"collapses separators", "foo   bar__baz--qux", "foo-bar-baz-qux"},
		{"trims hyphens", "- - hello - -", "hello"},
		{"already a slug", "hello-world", "hello-world"},
		{"uppercase folded", "HELLO World", "hello-world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestGenerateSlugEmptyFallsBack(t *testing.T) {
	for _, title := range []string{"", "   ", "!!!", "???"} {
		slug := GenerateSlug(title)
		assert.True(t, strings.HasPrefix(slug, "rascunho-"), "got %q for title %q", slug, title)
	}
}

func TestGenerateSlugNeverRecomputed(t *testing.T) {
	// Same input, same output: the caller owns immutability, the generator
	// must at least be deterministic for non-empty titles.
	assert.Equal(t, GenerateSlug("Minha Primeira Reflexão"), GenerateSlug("Minha Primeira Reflexão"))
}

func TestWordCountStripsMarkup(t *testing.T) {
	assert.Equal(t, 4, WordCount("<p>one <b>two</b> three</p><p>four</p>"))
	assert.Equal(t, 0, WordCount("<p><br/></p>"))
	assert.Equal(t, 2, WordCount("hello world"))
}

func TestReadTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "1 min"},
		{1, "1 min"},
		{200, "1 min"},
		{201, "2 min"},
		{399, "2 min"},
		{1000, "5 min"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReadTime(tt.words), "words=%d", tt.words)
	}
}

func TestReadTimeForEmptyContent(t *testing.T) {
	assert.Equal(t, "1 min", ReadTimeFor(""))
}

func TestFormatDisplayDate(t *testing.T) {
	d := time.Date(2024, time.October, 24, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "24 Out, 2024", FormatDisplayDate(d))

	d = time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "03 Fev, 2025", FormatDisplayDate(d))
}
