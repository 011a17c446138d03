package models

import (
	"strings"

	"golang.org/x/text/cases"
)

// TableRow is one physical (or merged) line of a table, words ordered by column.
type TableRow struct {
	Page  int    `json:"page"`
	Row   int    `json:"row"`
	Words []Word `json:"words"`
}

// Text joins the row's words with single spaces.
func (r TableRow) Text() string {
	return JoinWords(r.Words)
}

// Empty reports whether the row has no words.
func (r TableRow) Empty() bool {
	return len(r.Words) == 0
}

// ColumnRow is a data row split into one slot per declared header.
// Headers is shared with the owning ColumnTable and is never modified.
type ColumnRow struct {
	Page    int      `json:"page"`
	Row     int      `json:"row"`
	Columns [][]Word `json:"columns"`
	Headers []string `json:"-"`
}

// Column returns the text in the slot of the header named name, compared
// case-insensitively. Unknown names yield "".
func (r ColumnRow) Column(name string) string {
	i := HeaderIndex(r.Headers, name)
	if i < 0 || i >= len(r.Columns) {
		return ""
	}
	return JoinWords(r.Columns[i])
}

// ColumnAt returns the text in slot i, or "" when out of range.
func (r ColumnRow) ColumnAt(i int) string {
	if i < 0 || i >= len(r.Columns) {
		return ""
	}
	return JoinWords(r.Columns[i])
}

// Texts returns every slot's text in header order.
func (r ColumnRow) Texts() []string {
	out := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		out[i] = JoinWords(c)
	}
	return out
}

// ColumnTable is the result of a header-aligned extraction. A table that was
// not found in the document has a nil Header and no Rows.
type ColumnTable struct {
	Header    []*Phrase   `json:"header"`
	HeaderRow TableRow    `json:"headerRow"`
	Rows      []ColumnRow `json:"rows"`
}

// Found reports whether the header row was located.
func (t *ColumnTable) Found() bool {
	return t != nil && len(t.Header) > 0
}

// Headers returns the keywords of the table's header in order.
func (t *ColumnTable) Headers() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Header))
	for i, p := range t.Header {
		out[i] = p.Keyword
	}
	return out
}

// HeaderIndex returns the index of name in headers, ignoring case, or -1.
func HeaderIndex(headers []string, name string) int {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(name))
	for i, h := range headers {
		if fold.String(h) == want {
			return i
		}
	}
	return -1
}

// JoinWords joins word texts with single spaces.
func JoinWords(words []Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}
