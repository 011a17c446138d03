// Package tokenizer turns extracted page text into positioned words.
package tokenizer

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/models"
)

// Tokenizer reads page text from Source and positions words with Scheme.
type Tokenizer struct {
	Source extractor.TextSource
	Scheme Scheme
}

// New returns a tokenizer over source using scheme.
func New(source extractor.TextSource, scheme Scheme) *Tokenizer {
	return &Tokenizer{Source: source, Scheme: scheme}
}

// Tokenize extracts every page of the PDF at path and returns its words.
// Any extraction failure fails the whole call.
func (t *Tokenizer) Tokenize(path string) ([]models.Word, error) {
	pages, err := t.Source.PageTexts(path)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}
	return TokenizePages(pages, t.Scheme), nil
}

// TokenizePages positions the words of already extracted pages; pages are
// numbered from 0.
func TokenizePages(pages []string, scheme Scheme) []models.Word {
	var words []models.Word
	for i, text := range pages {
		words = append(words, TokenizePage(i, text, scheme)...)
	}
	return words
}

// TokenizePage splits one page into lines and lines into blank- or
// tab-separated words. Words of one line share a row and have strictly
// increasing columns.
func TokenizePage(page int, text string, scheme Scheme) []models.Word {
	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var words []models.Word
	for lineIdx, line := range strings.Split(text, "\n") {
		row := scheme.row(lineIdx)
		ordinal := 0
		start := -1
		offset := 0
		var sb strings.Builder
		emit := func() {
			if start < 0 {
				return
			}
			words = append(words, models.Word{
				Text: sb.String(),
				Pos:  models.At(page, row, scheme.column(start, ordinal)),
			})
			ordinal++
			start = -1
			sb.Reset()
		}
		for _, r := range line {
			if isBlank(r) {
				emit()
			} else {
				if start < 0 {
					start = offset
				}
				sb.WriteRune(r)
			}
			offset++
		}
		emit()
	}
	return words
}

// isBlank reports the separators between words: spaces, tabs and the
// no-break space some extractors emit for layout padding.
func isBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\u00a0' || r == '\f' || r == '\v'
}
