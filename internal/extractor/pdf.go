package extractor

import (
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

// Ledongthuc extracts page text with github.com/ledongthuc/pdf. Rows come
// from the library's own row grouping; the runs of each row are placed on a
// character grid by their x coordinate.
type Ledongthuc struct{}

func (Ledongthuc) PageTexts(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("PDF library crashed on %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, errors.Errorf("%s: PDF has no pages", path)
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		text, err := ledongthucPage(r, i)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: page %d", path, i)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

func ledongthucPage(r *pdf.Reader, num int) (string, error) {
	page := r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", errors.Wrap(err, "text by row")
	}

	var all []textRun
	for _, row := range rows {
		for _, t := range row.Content {
			all = append(all, textRun{x: t.X, y: t.Y, w: t.W, s: t.S})
		}
	}
	pitch := charPitch(all)

	var lines []string
	for _, row := range rows {
		runs := make([]textRun, 0, len(row.Content))
		for _, t := range row.Content {
			runs = append(runs, textRun{x: t.X, y: t.Y, w: t.W, s: t.S})
		}
		if line := layoutLine(runs, pitch); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}
