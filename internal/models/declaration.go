package models

import "github.com/pkg/errors"

// Alignment is how a column's values line up under its header keyword.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "left"
	}
}

// ParseAlignment maps "left", "right" or "center" to an Alignment.
// The empty string is left.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "left", "l":
		return AlignLeft, nil
	case "right", "r":
		return AlignRight, nil
	case "center", "centre", "c":
		return AlignCenter, nil
	default:
		return AlignLeft, errors.Errorf("unknown alignment %q", s)
	}
}

// MergeKind selects how physically adjacent rows are joined.
type MergeKind int

const (
	MergeNever MergeKind = iota
	MergeAlways
	MergeColumnAlignment
)

func (k MergeKind) String() string {
	switch k {
	case MergeAlways:
		return "always"
	case MergeColumnAlignment:
		return "column-alignment"
	default:
		return "never"
	}
}

// MergeStrategy decides whether two adjacent rows are one wrapped row.
// Tolerance is only used by MergeColumnAlignment; zero means "use the
// tokenizer scheme's default".
type MergeStrategy struct {
	Kind      MergeKind
	Tolerance int
}

// Never keeps one physical row per logical row.
func Never() MergeStrategy { return MergeStrategy{Kind: MergeNever} }

// Always merges every non-empty row into its predecessor.
func Always() MergeStrategy { return MergeStrategy{Kind: MergeAlways} }

// ColumnAligned merges a row into the previous one when their first words
// start within tolerance columns of each other.
func ColumnAligned(tolerance int) MergeStrategy {
	return MergeStrategy{Kind: MergeColumnAlignment, Tolerance: tolerance}
}

// ParseMerge maps a merge name to its strategy.
func ParseMerge(s string, tolerance int) (MergeStrategy, error) {
	switch s {
	case "", "never", "none":
		return Never(), nil
	case "always":
		return Always(), nil
	case "column-alignment", "column", "aligned":
		return ColumnAligned(tolerance), nil
	default:
		return Never(), errors.Errorf("unknown merge strategy %q", s)
	}
}

// LayoutKind selects how column cutoffs are computed from anchors.
type LayoutKind int

const (
	LayoutUniformLeft LayoutKind = iota
	LayoutMixed
)

// ColumnLayout is the column-alignment strategy of a table.
type ColumnLayout struct {
	Kind       LayoutKind
	Alignments []Alignment
}

// UniformLeft treats every column as left aligned.
func UniformLeft() ColumnLayout { return ColumnLayout{Kind: LayoutUniformLeft} }

// Mixed uses one alignment hint per column; missing hints are left.
func Mixed(alignments ...Alignment) ColumnLayout {
	return ColumnLayout{Kind: LayoutMixed, Alignments: alignments}
}

// Align returns the hint for column i.
func (l ColumnLayout) Align(i int) Alignment {
	if l.Kind != LayoutMixed || i < 0 || i >= len(l.Alignments) {
		return AlignLeft
	}
	return l.Alignments[i]
}

// TableDeclaration describes one table a caller expects in a statement.
type TableDeclaration struct {
	Name       string
	Headers    []string
	StopWord   string
	Alignments []Alignment
	Required   bool
	Merge      MergeStrategy
}

// Layout returns the uniform-left strategy when no alignment hints were
// declared, the mixed strategy otherwise.
func (d TableDeclaration) Layout() ColumnLayout {
	if len(d.Alignments) == 0 {
		return UniformLeft()
	}
	return Mixed(d.Alignments...)
}
