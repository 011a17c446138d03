package table

import (
	"github.com/insightdelivered/statement-tables/internal/models"
)

// Merge joins wrapped rows in a single left-to-right pass. A merged row keeps
// the page and row of its first physical row; words are appended in the order
// met, not re-sorted.
func Merge(rows []models.TableRow, strategy models.MergeStrategy) []models.TableRow {
	if strategy.Kind == models.MergeNever || len(rows) < 2 {
		return rows
	}

	out := make([]models.TableRow, 0, len(rows))
	cur := cloneRow(rows[0])
	for _, next := range rows[1:] {
		if ShouldMerge(strategy, cur, next) {
			cur.Words = append(cur.Words, next.Words...)
			continue
		}
		out = append(out, cur)
		cur = cloneRow(next)
	}
	return append(out, cur)
}

// ShouldMerge reports whether next continues cur under strategy.
//
// For MergeColumnAlignment a row continues the previous one when its first
// word starts within Tolerance columns of the previous row's first word.
func ShouldMerge(strategy models.MergeStrategy, cur, next models.TableRow) bool {
	if cur.Empty() || next.Empty() {
		return false
	}
	switch strategy.Kind {
	case models.MergeAlways:
		return true
	case models.MergeColumnAlignment:
		d := next.Words[0].Column() - cur.Words[0].Column()
		if d < 0 {
			d = -d
		}
		return d <= strategy.Tolerance
	default:
		return false
	}
}

func cloneRow(r models.TableRow) models.TableRow {
	words := make([]models.Word, len(r.Words))
	copy(words, r.Words)
	return models.TableRow{Page: r.Page, Row: r.Row, Words: words}
}
