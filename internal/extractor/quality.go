package extractor

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Quality decides whether a backend's output is real text or the garbage
// produced by fonts without a usable encoding.
type Quality struct {
	// MinChars is the trimmed text length the document must exceed.
	MinChars int
	// MinRatio is the share of plain runes (ASCII, currency signs) the
	// text must exceed.
	MinRatio float64
	// Words must contain at least one word found in the text, ignoring
	// case. An empty list disables the check.
	Words []string
}

// Readable reports whether pages pass every threshold of q.
func (q Quality) Readable(pages []string) bool {
	runes, plain, length := 0, 0, 0
	for _, p := range pages {
		length += len(strings.TrimSpace(p))
		for _, r := range p {
			runes++
			if plainRune(r) {
				plain++
			}
		}
	}
	if length <= q.MinChars || runes == 0 {
		return false
	}
	if float64(plain)/float64(runes) <= q.MinRatio {
		return false
	}
	return q.hasWord(pages)
}

func (q Quality) hasWord(pages []string) bool {
	if len(q.Words) == 0 {
		return true
	}
	fold := cases.Fold()
	text := fold.String(strings.Join(pages, " "))
	for _, w := range q.Words {
		if w = strings.TrimSpace(w); w != "" && strings.Contains(text, fold.String(w)) {
			return true
		}
	}
	return false
}

// plainRune accepts printable ASCII, whitespace and currency signs.
// unicode.IsLetter is too broad: identity-encoded fonts tend to come out as
// accented letters.
func plainRune(r rune) bool {
	if r < utf8.RuneSelf {
		return unicode.IsPrint(r) || unicode.IsSpace(r)
	}
	return unicode.Is(unicode.Sc, r)
}
