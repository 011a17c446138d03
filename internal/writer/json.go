package writer

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// JSONWriter writes the whole statement, including tables that were not
// found, as one JSON document.
type JSONWriter struct {
	Indent string
}

func (w *JSONWriter) Write(out io.Writer, st *models.Statement) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", w.Indent)
	return errors.Wrap(enc.Encode(st), "encode JSON")
}

// WriteToFile writes the statement as JSON to path.
func (w *JSONWriter) WriteToFile(path string, st *models.Statement) error {
	return writeFile(path, st, w.Write)
}
