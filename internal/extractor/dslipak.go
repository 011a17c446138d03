package extractor

import (
	"os"

	gopdf "github.com/dslipak/pdf"
	"github.com/pkg/errors"
)

// Dslipak extracts page text with github.com/dslipak/pdf. Glyph runs from the
// page content are grouped by baseline and laid out on a character grid.
type Dslipak struct{}

func (Dslipak) PageTexts(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("PDF library crashed on %s: %v", path, r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	r, err := gopdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return nil, errors.Errorf("%s: PDF has no pages", path)
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		content := page.Content()
		runs := make([]textRun, 0, len(content.Text))
		for _, t := range content.Text {
			runs = append(runs, textRun{x: t.X, y: t.Y, w: t.W, s: t.S})
		}
		pages = append(pages, layoutPage(runs))
	}
	return pages, nil
}
