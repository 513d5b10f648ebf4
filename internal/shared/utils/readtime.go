package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// StripTags removes markup tags, leaving a space where each tag stood.
func StripTags(content string) string {
	return htmlTags.ReplaceAllString(content, " ")
}

// WordCount counts whitespace-separated words in content after stripping
// markup tags.
func WordCount(content string) int {
	return len(strings.Fields(StripTags(content)))
}

// ReadTime derives the display string for a word count: one minute per 200
// words, never less than one minute.
func ReadTime(words int) string {
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", minutes)
}

// ReadTimeFor derives the read-time display string straight from content.
func ReadTimeFor(content string) string {
	return ReadTime(WordCount(content))
}
