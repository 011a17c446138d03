package table

import (
	"math"
	"sort"
	"strings"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// Unbounded is the cutoff of the last column.
const Unbounded = math.MaxInt

// Anchors locates every keyword in the header row. Keywords are matched in
// order as exact, case-insensitive word sequences, each search starting after
// the previous match. A keyword that cannot be found is anchored at the search
// cursor so every keyword always gets a phrase.
func Anchors(header models.TableRow, keywords []string) []*models.Phrase {
	words := header.Words
	cursor := 0
	phrases := make([]*models.Phrase, 0, len(keywords))

	for _, kw := range keywords {
		parts := strings.Fields(kw)
		start := matchSequence(words, parts, cursor)
		if start < 0 {
			pos := models.At(header.Page, header.Row, cursorColumn(words, cursor))
			phrases = append(phrases, models.NewPhrase(kw, pos))
			continue
		}

		first := words[start].Pos
		p := models.NewPhrase(kw, models.At(first.Page, first.Row, first.Column))
		for _, w := range words[start : start+len(parts)] {
			p.Append(w)
		}
		phrases = append(phrases, p)
		cursor = start + len(parts)
	}
	return phrases
}

// matchSequence returns the index of the first run of words, at or after
// from, equal to parts ignoring case; -1 when there is none.
func matchSequence(words []models.Word, parts []string, from int) int {
	if len(parts) == 0 {
		return -1
	}
	for i := from; i+len(parts) <= len(words); i++ {
		matched := true
		for j, p := range parts {
			if !equalFold(words[i+j].Text, p) {
				matched = false
				break
			}
		}
		if matched {
			return i
		}
	}
	return -1
}

// cursorColumn is the column a degenerate anchor takes: the column of the
// word at the cursor, one past the last word when the cursor ran off the row,
// 0 for an empty row.
func cursorColumn(words []models.Word, cursor int) int {
	switch {
	case len(words) == 0:
		return 0
	case cursor < len(words):
		return words[cursor].Column()
	default:
		return words[len(words)-1].Column() + 1
	}
}

// AnchorColumns returns the columns of the phrases.
func AnchorColumns(phrases []*models.Phrase) []int {
	cols := make([]int, len(phrases))
	for i, p := range phrases {
		if pos, ok := p.Position(); ok {
			cols[i] = pos.Column
		}
	}
	return cols
}

// Cutoffs computes the right boundary of each column from the anchor
// columns. A word belongs to the first column whose cutoff is greater than
// the word's column; the last cutoff is Unbounded.
func Cutoffs(layout models.ColumnLayout, anchors []int) []int {
	if len(anchors) == 0 {
		return nil
	}
	cutoffs := make([]int, len(anchors))
	for i := 0; i+1 < len(anchors); i++ {
		if layout.Kind == models.LayoutUniformLeft {
			cutoffs[i] = cutoff(models.AlignLeft, models.AlignLeft, anchors[i], anchors[i+1])
			continue
		}
		cutoffs[i] = cutoff(layout.Align(i), layout.Align(i+1), anchors[i], anchors[i+1])
	}
	cutoffs[len(cutoffs)-1] = Unbounded
	return cutoffs
}

// cutoff places the boundary between two columns. A left-aligned right
// neighbour pulls the boundary up to just before its anchor; a right-aligned
// left column pushes it towards the right neighbour, whose values end under
// its header.
func cutoff(left, right models.Alignment, l, r int) int {
	span := r - l
	switch left {
	case models.AlignRight:
		switch right {
		case models.AlignLeft:
			return l + span*3/4
		case models.AlignRight:
			return l + span*2/3
		default:
			return l + span*3/5
		}
	case models.AlignCenter:
		if right == models.AlignLeft {
			return r - max(1, span/6)
		}
		return l + span/2
	default:
		switch right {
		case models.AlignRight:
			return r - max(1, span/10)
		case models.AlignCenter:
			return r - max(1, span/8)
		default:
			return r - max(1, span/20)
		}
	}
}

// Classify returns the index of the column holding a word at column, or -1
// when there are no columns. Words left of the first anchor fall in column 0.
func Classify(cutoffs []int, column int) int {
	for i, c := range cutoffs {
		if c > column {
			return i
		}
	}
	return -1
}

// SplitColumns assigns the words of each row to the columns bounded by
// cutoffs. Every returned row has len(headers) slots, each sorted by column.
func SplitColumns(rows []models.TableRow, headers []string, cutoffs []int) []models.ColumnRow {
	out := make([]models.ColumnRow, 0, len(rows))
	for _, r := range rows {
		cols := make([][]models.Word, len(headers))
		for _, w := range r.Words {
			i := Classify(cutoffs, w.Column())
			if i < 0 || i >= len(cols) {
				continue
			}
			cols[i] = append(cols[i], w)
		}
		for _, c := range cols {
			sort.SliceStable(c, func(a, b int) bool { return c[a].Column() < c[b].Column() })
		}
		out = append(out, models.ColumnRow{Page: r.Page, Row: r.Row, Columns: cols, Headers: headers})
	}
	return out
}
