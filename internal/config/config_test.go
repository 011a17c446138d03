package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-tables/internal/models"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	f, ok := cfg.Family("DEGIRO")
	require.True(t, ok)
	decls, err := f.Declarations()
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, models.MergeNever, decls[0].Merge.Kind)
	assert.Equal(t, models.AlignRight, decls[0].Alignments[6])
	assert.True(t, decls[0].Required)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	yml := `
backend: dslipak
scheme: scaled
merge_tolerance: 16
families:
  - name: broker
    detect: ["Broker NV"]
    tables:
      - name: trades
        headers: ["Date", "Transaction Type", "Amount"]
        stop_word: Total
        alignments: [left, center, right]
        merge: column-alignment
        merge_tolerance: 4
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dslipak", cfg.Backend)
	assert.Equal(t, "scaled", cfg.Scheme)
	assert.Equal(t, 16, cfg.MergeTolerance)
	assert.Equal(t, ":8080", cfg.Listen, "defaults survive")
	require.Len(t, cfg.Families, 1)

	decls, err := cfg.Families[0].Declarations()
	require.NoError(t, err)
	d := decls[0]
	assert.Equal(t, "trades", d.Name)
	assert.Equal(t, "Total", d.StopWord)
	assert.Equal(t, []models.Alignment{models.AlignLeft, models.AlignCenter, models.AlignRight}, d.Alignments)
	assert.Equal(t, models.ColumnAligned(4), d.Merge)
	assert.Equal(t, models.LayoutMixed, d.Layout().Kind)
}

func TestParse_KeepsBuiltinFamiliesWhenNoneGiven(t *testing.T) {
	cfg, err := Parse([]byte("listen: \":9000\"\n"))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Len(t, cfg.Families, len(Default().Families))
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"no headers", "families: [{name: a, tables: [{name: t}]}]"},
		{"bad alignment", "families: [{name: a, tables: [{name: t, headers: [A], alignments: [diagonal]}]}]"},
		{"too many alignments", "families: [{name: a, tables: [{name: t, headers: [A], alignments: [left, right]}]}]"},
		{"bad merge", "families: [{name: a, tables: [{name: t, headers: [A], merge: sometimes}]}]"},
		{"duplicate family", "families: [{name: a, tables: [{headers: [A]}]}, {name: A, tables: [{headers: [B]}]}]"},
		{"no tables", "families: [{name: a}]"},
		{"readability ratio above one", "readability: {min_ratio: 1.5}"},
		{"negative readability length", "readability: {min_chars: -1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yml))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("families: [unterminated"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestReadability(t *testing.T) {
	q := Default().Readability.Quality()
	assert.Equal(t, 50, q.MinChars)
	assert.Contains(t, q.Words, "omschrijving")
	assert.True(t, q.Readable([]string{"Rekeningoverzicht\nDatum Omschrijving Mutatie Saldo\n01-02 Storting 500,00 500,00"}))

	cfg, err := Parse([]byte("readability: {min_chars: 10, min_ratio: 0.5, words: [factuur]}\n"))
	require.NoError(t, err)
	q = cfg.Readability.Quality()
	assert.Equal(t, []string{"factuur"}, q.Words)
	assert.Equal(t, 0.5, q.MinRatio)
	assert.False(t, q.Readable([]string{"Rekeningoverzicht Datum Saldo"}))
	assert.True(t, q.Readable([]string{"FACTUUR nummer 2024-001"}))
}
