package writer

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// CSVWriter writes extracted tables as CSV.
type CSVWriter struct {
	// IncludeHeader adds "# ..." metadata records before each table.
	IncludeHeader bool
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// WriteToFile writes the statement's tables to a CSV file at path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	return writeFile(path, st, w.Write)
}

// Write writes every found table of st: optional metadata, the header
// keywords, then one record per row with one field per column.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	cw := w.newWriter(out)

	if w.IncludeHeader && st.Family != "" {
		if err := cw.Write([]string{"# Family", string(st.Family)}); err != nil {
			return errors.Wrap(err, "write CSV metadata")
		}
	}

	written := 0
	for _, nt := range st.Tables {
		if !nt.Table.Found() {
			continue
		}
		if written > 0 {
			// Blank record between tables.
			if err := cw.Write([]string{""}); err != nil {
				return errors.Wrap(err, "write CSV separator")
			}
		}
		if w.IncludeHeader {
			meta := []string{"# Table", nt.Name, "page", strconv.Itoa(nt.Table.HeaderRow.Page + 1)}
			if err := cw.Write(meta); err != nil {
				return errors.Wrap(err, "write CSV metadata")
			}
		}
		if err := writeColumns(cw, nt.Table); err != nil {
			return errors.Wrapf(err, "table %q", nt.Name)
		}
		written++
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flush CSV")
}

// WriteRows writes flat rows: page, row and the row text.
func (w *CSVWriter) WriteRows(out io.Writer, rows []models.TableRow) error {
	cw := w.newWriter(out)
	if err := cw.Write([]string{"Page", "Row", "Text"}); err != nil {
		return errors.Wrap(err, "write CSV header")
	}
	for _, r := range rows {
		if err := cw.Write([]string{strconv.Itoa(r.Page + 1), strconv.Itoa(r.Row), r.Text()}); err != nil {
			return errors.Wrap(err, "write CSV row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush CSV")
}

func (w *CSVWriter) newWriter(out io.Writer) *csv.Writer {
	cw := csv.NewWriter(out)
	if w.Comma != 0 {
		cw.Comma = w.Comma
	}
	return cw
}

func writeColumns(cw *csv.Writer, t *models.ColumnTable) error {
	if err := cw.Write(t.Headers()); err != nil {
		return errors.Wrap(err, "write CSV header")
	}
	for _, r := range t.Rows {
		if err := cw.Write(r.Texts()); err != nil {
			return errors.Wrap(err, "write CSV row")
		}
	}
	return nil
}
