package models

// Token is either a leaf Word or a composite Phrase.
type Token interface {
	String() string
	Position() (Position, bool)
}

// Word is a single whitespace-delimited piece of page text.
// A Word without a position cannot be placed in any row or column.
type Word struct {
	Text string    `json:"text"`
	Pos  *Position `json:"pos,omitempty"`
}

func (w Word) String() string { return w.Text }

// Position returns the word's position and whether it has one.
func (w Word) Position() (Position, bool) {
	if w.Pos == nil {
		return Position{}, false
	}
	return *w.Pos, true
}

// Column returns the word's column, or -1 when it is unpositioned.
func (w Word) Column() int {
	if w.Pos == nil {
		return -1
	}
	return w.Pos.Column
}

// Phrase groups several tokens under one logical label, typically a
// multi-word header keyword such as "Transaction Type".
type Phrase struct {
	Keyword  string    `json:"keyword"`
	Pos      *Position `json:"pos,omitempty"`
	Children []Token   `json:"-"`
}

// NewPhrase returns an empty phrase for keyword.
func NewPhrase(keyword string, pos *Position) *Phrase {
	return &Phrase{Keyword: keyword, Pos: pos}
}

// Append adds a child token.
func (p *Phrase) Append(t Token) {
	p.Children = append(p.Children, t)
}

func (p *Phrase) String() string { return p.Keyword }

// Position returns the phrase's position and whether it has one.
func (p *Phrase) Position() (Position, bool) {
	if p.Pos == nil {
		return Position{}, false
	}
	return *p.Pos, true
}

// Words flattens the phrase into its leaf words, depth first.
func (p *Phrase) Words() []Word {
	var out []Word
	for _, c := range p.Children {
		switch t := c.(type) {
		case Word:
			out = append(out, t)
		case *Phrase:
			out = append(out, t.Words()...)
		}
	}
	return out
}
