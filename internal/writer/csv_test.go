package writer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-tables/internal/models"
)

func w(text string, col int) models.Word {
	return models.Word{Text: text, Pos: models.At(0, 0, col)}
}

func sampleStatement() *models.Statement {
	headers := []string{"Date", "Description", "Amount"}
	table := &models.ColumnTable{
		Header: []*models.Phrase{
			models.NewPhrase("Date", models.At(0, 3, 0)),
			models.NewPhrase("Description", models.At(0, 3, 10)),
			models.NewPhrase("Amount", models.At(0, 3, 30)),
		},
		HeaderRow: models.TableRow{Page: 0, Row: 3},
		Rows: []models.ColumnRow{
			{Row: 4, Headers: headers, Columns: [][]models.Word{{w("15/01/2024", 0)}, {w("CARD", 10), w("PAYMENT,", 15), w("TESCO", 24)}, {w("25.99", 30)}}},
			{Row: 5, Headers: headers, Columns: [][]models.Word{{w("16/01/2024", 0)}, {w("SALARY", 10)}, {}}},
		},
	}
	return &models.Statement{
		Family: "uk-bank",
		Tables: []models.NamedTable{
			{Name: "transactions", Table: table},
			{Name: "missing", Table: &models.ColumnTable{}},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	cw := &CSVWriter{IncludeHeader: true}
	require.NoError(t, cw.Write(&buf, sampleStatement()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"# Family,uk-bank",
		"# Table,transactions,page,1",
		"Date,Description,Amount",
		`15/01/2024,"CARD PAYMENT, TESCO",25.99`,
		"16/01/2024,SALARY,",
	}, lines)
}

func TestCSVWriter_WriteNoHeader(t *testing.T) {
	var buf bytes.Buffer
	cw := &CSVWriter{Comma: ';'}
	require.NoError(t, cw.Write(&buf, sampleStatement()))

	out := buf.String()
	assert.NotContains(t, out, "# Family")
	assert.True(t, strings.HasPrefix(out, "Date;Description;Amount\n"))
	assert.Contains(t, out, "15/01/2024;CARD PAYMENT, TESCO;25.99")
}

func TestCSVWriter_WriteRows(t *testing.T) {
	rows := []models.TableRow{
		{Page: 0, Row: 7, Words: []models.Word{w("Handel", 0), w("Aankoop", 7)}},
	}
	var buf bytes.Buffer
	require.NoError(t, (&CSVWriter{}).WriteRows(&buf, rows))
	assert.Equal(t, "Page,Row,Text\n1,7,Handel Aankoop\n", buf.String())
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, (&CSVWriter{}).WriteToFile(path, sampleStatement()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Description,Amount")
}

func TestCSVWriter_WriteToFileBadPath(t *testing.T) {
	err := (&CSVWriter{}).WriteToFile(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), sampleStatement())
	assert.Error(t, err)
}
