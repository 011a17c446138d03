// Package writer renders extracted statements as CSV or JSON.
package writer

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// StatementWriter renders a statement to a stream or a file.
type StatementWriter interface {
	Write(out io.Writer, st *models.Statement) error
	WriteToFile(path string, st *models.Statement) error
}

// Formats lists the names New accepts.
var Formats = []string{"csv", "json"}

// New returns the writer for format. includeHeader only affects CSV.
func New(format string, includeHeader bool) (StatementWriter, error) {
	switch strings.ToLower(format) {
	case "", "csv":
		return &CSVWriter{IncludeHeader: includeHeader}, nil
	case "json":
		return &JSONWriter{Indent: "  "}, nil
	default:
		return nil, errors.Errorf("unknown output format %q (want %s)", format, strings.Join(Formats, " or "))
	}
}

// Extension is the file extension for format, without the dot.
func Extension(format string) string {
	if strings.EqualFold(format, "json") {
		return "json"
	}
	return "csv"
}

func writeFile(path string, st *models.Statement, write func(io.Writer, *models.Statement) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output file %q", path)
	}
	defer f.Close()

	if err := write(f, st); err != nil {
		return err
	}
	return errors.Wrapf(f.Close(), "close output file %q", path)
}
