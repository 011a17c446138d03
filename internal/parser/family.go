package parser

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"

	"github.com/insightdelivered/statement-tables/internal/config"
	"github.com/insightdelivered/statement-tables/internal/models"
)

var (
	// ErrUnknownFamily is returned for a family name that is not configured.
	ErrUnknownFamily = errors.New("unknown statement family")
	// ErrUndetected is returned when no family's detection keywords occur.
	ErrUndetected = errors.New("could not auto-detect statement family from content; specify the family explicitly")
)

// Family is a statement layout: the keywords that identify it and the
// tables it is expected to contain, in extraction order.
type Family struct {
	Name   models.Family
	Detect []string
	Tables []models.TableDeclaration
}

// FamiliesFromConfig converts the configured families.
func FamiliesFromConfig(cfg *config.Config) ([]Family, error) {
	out := make([]Family, 0, len(cfg.Families))
	for _, f := range cfg.Families {
		decls, err := f.Declarations()
		if err != nil {
			return nil, err
		}
		out = append(out, Family{Name: models.Family(f.Name), Detect: f.Detect, Tables: decls})
	}
	return out, nil
}

// Lookup returns the family named name, ignoring case.
func Lookup(families []Family, name string) (Family, error) {
	for _, f := range families {
		if strings.EqualFold(string(f.Name), name) {
			return f, nil
		}
	}
	return Family{}, errors.Wrapf(ErrUnknownFamily, "%q", name)
}

// AutoDetect returns the first family one of whose detection keywords
// occurs in the page text, ignoring case.
func AutoDetect(pages []string, families []Family) (Family, error) {
	fold := cases.Fold()
	combined := fold.String(strings.Join(pages, "\n"))

	for _, f := range families {
		for _, needle := range f.Detect {
			needle = fold.String(strings.TrimSpace(needle))
			if needle != "" && strings.Contains(combined, needle) {
				return f, nil
			}
		}
	}
	return Family{}, ErrUndetected
}
