package extractor

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// textRun is a piece of text shown at a PDF user-space position.
type textRun struct {
	x, y, w float64
	s       string
}

const (
	// defaultPitch is the assumed glyph width when a page gives no hint.
	defaultPitch = 5.0
	// joinGap is the fraction of a pitch below which two runs are one word.
	joinGap = 0.3
)

// charPitch estimates the average glyph width of the runs.
func charPitch(runs []textRun) float64 {
	var width float64
	var chars int
	for _, r := range runs {
		n := utf8.RuneCountInString(r.s)
		if r.w <= 0 || n == 0 {
			continue
		}
		width += r.w
		chars += n
	}
	if chars == 0 {
		return defaultPitch
	}
	return width / float64(chars)
}

// layoutLine renders runs that share a baseline onto a character grid, so
// that horizontal distance on the page becomes a run of blanks in the text.
func layoutLine(runs []textRun, pitch float64) string {
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].x < runs[j].x })

	var sb strings.Builder
	n := 0
	prevEnd := math.Inf(-1)
	for _, r := range runs {
		s := strings.TrimRight(r.s, "\r\n")
		if strings.TrimSpace(s) == "" {
			continue
		}
		target := int(math.Round(r.x / pitch))
		if n > 0 && r.x-prevEnd <= pitch*joinGap {
			target = n
		} else if n > 0 && target <= n {
			target = n + 1
		}
		for n < target {
			sb.WriteByte(' ')
			n++
		}
		sb.WriteString(s)
		n += utf8.RuneCountInString(s)

		w := r.w
		if w <= 0 {
			w = pitch * float64(utf8.RuneCountInString(s))
		}
		prevEnd = r.x + w
	}
	return strings.TrimRight(sb.String(), " ")
}

// layoutPage groups runs into lines by rounded baseline, top of page first,
// and renders each line on the character grid.
func layoutPage(runs []textRun) string {
	pitch := charPitch(runs)

	byY := make(map[int][]textRun)
	for _, r := range runs {
		if strings.TrimSpace(r.s) == "" {
			continue
		}
		key := int(math.Round(r.y))
		byY[key] = append(byY[key], r)
	}

	keys := make([]int, 0, len(byY))
	for y := range byY {
		keys = append(keys, y)
	}
	// PDF y grows upwards.
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	lines := make([]string, 0, len(keys))
	for _, y := range keys {
		if line := layoutLine(byY[y], pitch); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
