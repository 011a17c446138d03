package table

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/insightdelivered/statement-tables/internal/models"
)

// StopFunc reports whether a row ends the table body.
type StopFunc func(models.TableRow) bool

// StopWord stops at the first row whose text contains word, ignoring case.
// An empty word never stops.
func StopWord(word string) StopFunc {
	word = strings.TrimSpace(word)
	if word == "" {
		return func(models.TableRow) bool { return false }
	}
	return func(r models.TableRow) bool {
		return containsFold(r.Text(), word)
	}
}

// FindHeader returns the index of the first row whose text contains every
// keyword, ignoring case and keyword order. ok is false when no row matches.
func FindHeader(rows []models.TableRow, keywords []string) (idx int, ok bool) {
	fold := cases.Fold()
	want := make([]string, len(keywords))
	for i, k := range keywords {
		want[i] = fold.String(k)
	}

	for i, r := range rows {
		text := fold.String(r.Text())
		matched := true
		for _, k := range want {
			if !strings.Contains(text, k) {
				matched = false
				break
			}
		}
		if matched {
			return i, true
		}
	}
	return -1, false
}

// ScanBody returns the rows following rows[header] that are on the same page,
// up to (not including) the first row for which stop is true.
func ScanBody(rows []models.TableRow, header int, stop StopFunc) []models.TableRow {
	if header < 0 || header >= len(rows) {
		return nil
	}
	page := rows[header].Page
	var body []models.TableRow
	for _, r := range rows[header+1:] {
		if r.Page != page || (stop != nil && stop(r)) {
			break
		}
		body = append(body, r)
	}
	return body
}

func containsFold(s, substr string) bool {
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

func equalFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
