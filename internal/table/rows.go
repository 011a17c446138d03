// Package table recovers table rows and columns from positioned words.
//
// The pipeline is: group words into rows, find the header row, collect the
// body rows up to a stop word, merge wrapped rows and finally split every
// row into the header's columns.
package table

import (
	"sort"

	"github.com/insightdelivered/statement-tables/internal/models"
)

type rowKey struct{ page, row int }

// GroupRows groups positioned words by (page, row). Rows are ordered by page
// then row, words inside a row by column. Unpositioned words are dropped.
func GroupRows(words []models.Word) []models.TableRow {
	groups := make(map[rowKey][]models.Word)
	for _, w := range words {
		pos, ok := w.Position()
		if !ok {
			continue
		}
		k := rowKey{pos.Page, pos.Row}
		groups[k] = append(groups[k], w)
	}

	keys := make([]rowKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].page != keys[j].page {
			return keys[i].page < keys[j].page
		}
		return keys[i].row < keys[j].row
	})

	rows := make([]models.TableRow, 0, len(keys))
	for _, k := range keys {
		ws := groups[k]
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].Pos.Column < ws[j].Pos.Column })
		rows = append(rows, models.TableRow{Page: k.page, Row: k.row, Words: ws})
	}
	return rows
}
