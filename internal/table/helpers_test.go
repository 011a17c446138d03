package table

import (
	"strings"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// word builds a positioned word on page 0.
func word(text string, row, col int) models.Word {
	return models.Word{Text: text, Pos: models.At(0, row, col)}
}

// row builds a table row on page 0 from (text, column) pairs.
func row(r int, pairs ...any) models.TableRow {
	tr := models.TableRow{Row: r}
	for i := 0; i+1 < len(pairs); i += 2 {
		tr.Words = append(tr.Words, word(pairs[i].(string), r, pairs[i+1].(int)))
	}
	return tr
}

// line renders (column, text) pairs as one line of page text.
func line(pairs ...any) string {
	var sb strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		col := pairs[i].(int)
		for sb.Len() < col {
			sb.WriteByte(' ')
		}
		sb.WriteString(pairs[i+1].(string))
	}
	return sb.String()
}

func texts(words []models.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Text
	}
	return out
}
