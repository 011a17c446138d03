package models

import "fmt"

// Position locates a word on the character grid of a page.
//
// Row and Column are ordinals derived from the extracted text (line index and
// character offset, possibly scaled), not physical PDF coordinates.
type Position struct {
	Page   int `json:"page"`
	Row    int `json:"row"`
	Column int `json:"column"`
}

// At is shorthand for building a *Position inline.
func At(page, row, column int) *Position {
	return &Position{Page: page, Row: row, Column: column}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d:%d", p.Page, p.Row, p.Column)
}
