package extractor

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// PDFCPU reads page content streams with github.com/pdfcpu/pdfcpu and
// reconstructs lines from the text operators. Only literal strings are
// decoded; fonts with custom encodings come out as garbage and are rejected
// by the readability check of a Chain.
type PDFCPU struct{}

func (PDFCPU) PageTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return nil, errors.Wrapf(err, "pdfcpu read %s", path)
	}
	if ctx.PageCount == 0 {
		return nil, errors.Errorf("%s: PDF has no pages", path)
	}

	pages := make([]string, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: page %d content", path, pageNr)
		}
		if r == nil {
			pages = append(pages, "")
			continue
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: page %d read", path, pageNr)
		}
		pages = append(pages, streamText(data))
	}
	return pages, nil
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// streamText turns a content stream into lines. Td/TD with a vertical move,
// T*, ' and ET start a new line; a horizontal-only Td separates columns.
func streamText(data []byte) string {
	var lines []string
	var cur strings.Builder
	flush := func() {
		if line := strings.TrimRight(cur.String(), " "); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
		cur.Reset()
	}

	for _, raw := range bytes.Split(data, []byte{'\n'}) {
		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			continue
		}
		fields := strings.Fields(string(line))
		op := fields[len(fields)-1]

		if op == "'" || op == "\"" {
			flush()
		}
		if op == "'" || op == "\"" || bytes.Contains(line, []byte("Tj")) || bytes.Contains(line, []byte("TJ")) {
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				cur.WriteString(decodePDFString(m[1]))
			}
		}

		switch op {
		case "Td", "TD":
			if len(fields) >= 3 {
				ty, _ := strconv.ParseFloat(fields[len(fields)-2], 64)
				if ty != 0 {
					flush()
					continue
				}
			}
			if cur.Len() > 0 {
				cur.WriteString("   ")
			}
		case "T*", "ET":
			flush()
		}
	}
	flush()
	return strings.Join(lines, "\n")
}

// decodePDFString handles the escape sequences of PDF literal strings. The
// resulting bytes are single-byte font codes; codes above 0x7f are read as
// Windows-1252, which matches WinAnsiEncoding used by most statement fonts.
func decodePDFString(raw []byte) string {
	buf := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			buf = append(buf, raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			buf = append(buf, '\n')
		case 'r':
			buf = append(buf, '\r')
		case 't':
			buf = append(buf, '\t')
		case '\\', '(', ')':
			buf = append(buf, c)
		default:
			if c < '0' || c > '7' {
				buf = append(buf, c)
				continue
			}
			val := int(c - '0')
			for k := 0; k < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; k++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			buf = append(buf, byte(val))
		}
	}

	var sb strings.Builder
	for _, b := range buf {
		if b < utf8.RuneSelf {
			sb.WriteByte(b)
			continue
		}
		sb.WriteRune(charmap.Windows1252.DecodeByte(b))
	}
	return sb.String()
}
