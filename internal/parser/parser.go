// Package parser extracts every declared table of a statement family from a
// PDF document.
package parser

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/models"
	"github.com/insightdelivered/statement-tables/internal/table"
	"github.com/insightdelivered/statement-tables/internal/tokenizer"
)

// ErrRequiredTableMissing is returned when a table declared as required has
// no header row in the document.
var ErrRequiredTableMissing = errors.New("required table not found")

// ErrUnknownTable is returned when a family declares no table of the given name.
var ErrUnknownTable = errors.New("unknown table")

// Config configures a Parser.
type Config struct {
	Source   extractor.TextSource
	Scheme   tokenizer.Scheme
	Families []Family

	// MergeTolerance overrides the scheme's tolerance for column-alignment
	// merging when positive.
	MergeTolerance int

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Scheme.Name == "" {
		c.Scheme = tokenizer.Index
	}
	if c.Source == nil {
		c.Source = &extractor.Ledongthuc{}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Parser turns statement PDFs into their declared tables.
type Parser struct {
	cfg       Config
	extractor *table.Extractor
}

// New returns a parser for cfg.
func New(cfg Config) *Parser {
	cfg.defaults()
	ex := table.NewExtractor(tokenizer.New(cfg.Source, cfg.Scheme))
	ex.MergeTolerance = cfg.MergeTolerance
	return &Parser{cfg: cfg, extractor: ex}
}

// Families returns the configured families.
func (p *Parser) Families() []Family {
	return p.cfg.Families
}

// Pages extracts the page text of the PDF at path.
func (p *Parser) Pages(path string) ([]string, error) {
	pages, err := p.cfg.Source.PageTexts(path)
	if err != nil {
		return nil, errors.Wrap(err, "extract text")
	}
	return pages, nil
}

// Parse extracts the tables of family from the PDF at path. An empty family
// is auto-detected from the document text.
func (p *Parser) Parse(path, family string) (*models.Statement, error) {
	pages, err := p.Pages(path)
	if err != nil {
		return nil, err
	}
	return p.ParsePages(pages, family)
}

// ParsePages is Parse on already extracted page text.
func (p *Parser) ParsePages(pages []string, family string) (*models.Statement, error) {
	f, err := p.resolve(pages, family)
	if err != nil {
		return nil, err
	}

	log := p.cfg.Logger.With("family", string(f.Name))
	words := tokenizer.TokenizePages(pages, p.cfg.Scheme)
	log.Debug("tokenized statement", "pages", len(pages), "words", len(words), "scheme", p.cfg.Scheme.Name)

	st := &models.Statement{Family: f.Name, PageCount: len(pages)}
	for _, decl := range f.Tables {
		tbl := table.ColumnsFromWords(words, decl, p.extractor.Tolerance())
		if !tbl.Found() {
			if decl.Required {
				return nil, errors.Wrapf(ErrRequiredTableMissing, "%s: table %q", f.Name, decl.Name)
			}
			log.Info("optional table not present", "table", decl.Name)
		} else {
			log.Debug("table extracted", "table", decl.Name, "rows", len(tbl.Rows), "page", tbl.HeaderRow.Page)
		}
		st.Tables = append(st.Tables, models.NamedTable{Name: decl.Name, Required: decl.Required, Table: tbl})
	}
	return st, nil
}

// Tokens extracts and tokenizes the PDF at path without locating any table.
func (p *Parser) Tokens(path string) ([]models.Word, error) {
	return p.extractor.Tokenizer.Tokenize(path)
}

// Rows returns the merged body rows of one table of family, without column
// splitting. An empty family is auto-detected, which reads the document's
// text before the table itself is extracted.
func (p *Parser) Rows(path, family, name string) ([]models.TableRow, error) {
	var f Family
	var err error
	if family != "" {
		f, err = Lookup(p.cfg.Families, family)
	} else {
		var pages []string
		if pages, err = p.Pages(path); err == nil {
			f, err = p.resolve(pages, "")
		}
	}
	if err != nil {
		return nil, err
	}

	for _, decl := range f.Tables {
		if strings.EqualFold(decl.Name, name) {
			return p.extractor.ExtractRows(path, decl)
		}
	}
	return nil, errors.Wrapf(ErrUnknownTable, "%s: %q", f.Name, name)
}

func (p *Parser) resolve(pages []string, family string) (Family, error) {
	if family != "" {
		return Lookup(p.cfg.Families, family)
	}
	f, err := AutoDetect(pages, p.cfg.Families)
	if err != nil {
		return Family{}, err
	}
	p.cfg.Logger.Debug("auto-detected statement family", "family", string(f.Name))
	return f, nil
}
