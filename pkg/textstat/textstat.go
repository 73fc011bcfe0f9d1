// Package textstat derives lightweight draft statistics from free text.
package textstat

import (
	"strings"
	"unicode"

	prose "github.com/jdkato/prose/v2"
)

type Stats struct {
	Words     int
	Sentences int
}

// Measure tokenizes and segments the text. Tagging and entity extraction are
// disabled; the counter only needs token and sentence boundaries.
func Measure(text string) Stats {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Stats{}
	}

	doc, err := prose.NewDocument(trimmed,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return fallback(trimmed)
	}

	words := 0
	for _, tok := range doc.Tokens() {
		if isWord(tok.Text) {
			words++
		}
	}

	return Stats{
		Words:     words,
		Sentences: len(doc.Sentences()),
	}
}

// isWord filters out punctuation-only tokens.
func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func fallback(text string) Stats {
	words := len(strings.Fields(text))
	sentences := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			sentences++
		}
	}
	if sentences == 0 && words > 0 {
		sentences = 1
	}
	return Stats{Words: words, Sentences: sentences}
}
