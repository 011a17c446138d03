package extractor

import (
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pdftotext shells out to poppler-utils (pdfinfo and pdftotext -layout),
// one pdftotext run per page so page boundaries are kept.
type Pdftotext struct{}

func (Pdftotext) PageTexts(path string) ([]string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return nil, errors.Wrap(err, "pdftotext not available")
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	numPages, err := pdfinfoPages(path)
	if err != nil {
		return nil, err
	}

	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		n := strconv.Itoa(i)
		out, err := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, path, "-").Output()
		if err != nil {
			return nil, errors.Wrapf(err, "pdftotext %s page %d", path, i)
		}
		pages = append(pages, strings.TrimRight(string(out), "\f\n "))
	}
	return pages, nil
}

// pdfinfoPages reads the page count reported by pdfinfo.
func pdfinfoPages(path string) (int, error) {
	out, err := exec.Command("pdfinfo", path).Output()
	if err != nil {
		return 0, errors.Wrapf(err, "pdfinfo %s", path)
	}
	for _, line := range strings.Split(string(out), "\n") {
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if err != nil {
			return 0, errors.Wrapf(err, "pdfinfo %s: page count", path)
		}
		return n, nil
	}
	return 0, errors.Errorf("pdfinfo %s: no page count", path)
}
