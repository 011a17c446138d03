package extractor

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnreadable is returned when no backend produced readable text.
var ErrUnreadable = errors.New("no readable text could be extracted from PDF")

// TextSource turns a PDF file into one plain-text string per page, in the
// reading order chosen by the backend. Implementations open the file, read
// it and close it within a single call.
type TextSource interface {
	PageTexts(path string) ([]string, error)
}

// SourceFunc adapts a function to TextSource.
type SourceFunc func(path string) ([]string, error)

func (f SourceFunc) PageTexts(path string) ([]string, error) { return f(path) }

// Backend names accepted by New.
const (
	BackendLedongthuc = "ledongthuc"
	BackendDslipak    = "dslipak"
	BackendPDFCPU     = "pdfcpu"
	BackendPdftotext  = "pdftotext"
	BackendAuto       = "auto"
)

// Backends lists the names New understands.
func Backends() []string {
	names := []string{BackendLedongthuc, BackendDslipak, BackendPDFCPU, BackendPdftotext, BackendAuto}
	sort.Strings(names)
	return names
}

// New returns the text source registered under name. The empty name selects
// the ledongthuc backend. "auto" tries every backend in turn and keeps the
// first result that passes quality.
func New(name string, logger *slog.Logger, quality Quality) (TextSource, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendLedongthuc:
		return &Ledongthuc{}, nil
	case BackendDslipak:
		return &Dslipak{}, nil
	case BackendPDFCPU:
		return &PDFCPU{}, nil
	case BackendPdftotext:
		return &Pdftotext{}, nil
	case BackendAuto:
		return NewChain(logger, quality, &Ledongthuc{}, &Dslipak{}, &PDFCPU{}, &Pdftotext{}), nil
	default:
		return nil, errors.Errorf("unknown extraction backend %q (want one of %s)", name, strings.Join(Backends(), ", "))
	}
}
