package tokenizer

import (
	"strings"

	"github.com/pkg/errors"
)

// Scheme maps a word's line index and place in the line to a Position.
//
// Index: row is the line index, column the rune offset of the word.
// Scaled: row is line index × LineHeight, column is word ordinal × CharWidth.
//
// MergeTolerance is the column distance under which two rows' first words
// count as aligned; it is expressed in the scheme's own units.
type Scheme struct {
	Name           string
	Scaled         bool
	LineHeight     int
	CharWidth      int
	MergeTolerance int
}

// Index is the raw line/character-offset scheme.
var Index = Scheme{
	Name:           "index",
	MergeTolerance: 10,
}

// Scaled is the pseudo-pixel scheme: 12 units per line, 8 per word.
var Scaled = Scheme{
	Name:           "scaled",
	Scaled:         true,
	LineHeight:     12,
	CharWidth:      8,
	MergeTolerance: 10,
}

// ParseScheme returns the scheme registered under name ("" means index).
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", Index.Name:
		return Index, nil
	case Scaled.Name:
		return Scaled, nil
	default:
		return Scheme{}, errors.Errorf("unknown position scheme %q (want index or scaled)", name)
	}
}

func (s Scheme) row(line int) int {
	if s.Scaled {
		return line * s.LineHeight
	}
	return line
}

func (s Scheme) column(offset, ordinal int) int {
	if s.Scaled {
		return ordinal * s.CharWidth
	}
	return offset
}
