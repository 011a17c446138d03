package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnRow_Column(t *testing.T) {
	row := ColumnRow{
		Headers: []string{"Date", "Transaction Type", "Amount"},
		Columns: [][]Word{
			{{Text: "01-02"}},
			{{Text: "Interest"}, {Text: "mei"}},
			{},
		},
	}

	assert.Equal(t, "Interest mei", row.Column("transaction type"))
	assert.Equal(t, "01-02", row.Column(" DATE "))
	assert.Equal(t, "", row.Column("Amount"))
	assert.Equal(t, "", row.Column("Balance"))
	assert.Equal(t, "", row.ColumnAt(7))
	assert.Equal(t, []string{"01-02", "Interest mei", ""}, row.Texts())
}

func TestPhrase_Words(t *testing.T) {
	inner := NewPhrase("Type", At(0, 1, 12))
	inner.Append(Word{Text: "Type", Pos: At(0, 1, 12)})

	p := NewPhrase("Transaction Type", At(0, 1, 0))
	p.Append(Word{Text: "Transaction", Pos: At(0, 1, 0)})
	p.Append(inner)

	words := p.Words()
	require.Len(t, words, 2)
	assert.Equal(t, "Transaction", words[0].Text)
	assert.Equal(t, "Type", words[1].Text)

	pos, ok := p.Position()
	assert.True(t, ok)
	assert.Equal(t, "0:1:0", pos.String())
}

func TestWord_Unpositioned(t *testing.T) {
	w := Word{Text: "orphan"}
	_, ok := w.Position()
	assert.False(t, ok)
	assert.Equal(t, -1, w.Column())
}

func TestParseMerge(t *testing.T) {
	tests := []struct {
		in      string
		want    MergeStrategy
		wantErr bool
	}{
		{in: "", want: Never()},
		{in: "none", want: Never()},
		{in: "always", want: Always()},
		{in: "column-alignment", want: ColumnAligned(4)},
		{in: "aligned", want: ColumnAligned(4)},
		{in: "sometimes", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMerge(tt.in, 4)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAlignment(t *testing.T) {
	for in, want := range map[string]Alignment{"": AlignLeft, "r": AlignRight, "centre": AlignCenter} {
		got, err := ParseAlignment(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseAlignment("justify")
	assert.Error(t, err)
}

func TestTableDeclaration_Layout(t *testing.T) {
	assert.Equal(t, UniformLeft(), TableDeclaration{}.Layout())

	l := TableDeclaration{Alignments: []Alignment{AlignLeft, AlignRight}}.Layout()
	assert.Equal(t, LayoutMixed, l.Kind)
	assert.Equal(t, AlignRight, l.Align(1))
	assert.Equal(t, AlignLeft, l.Align(5))
	assert.Equal(t, AlignLeft, UniformLeft().Align(0))
}

func TestStatement_Table(t *testing.T) {
	tbl := &ColumnTable{Header: []*Phrase{NewPhrase("Date", At(0, 0, 0))}}
	st := &Statement{Tables: []NamedTable{{Name: "account", Table: tbl}}}

	assert.Same(t, tbl, st.Table("account"))
	assert.Nil(t, st.Table("portfolio"))
	assert.True(t, tbl.Found())
	assert.False(t, (&ColumnTable{}).Found())
	assert.Equal(t, []string{"Date"}, tbl.Headers())
}
