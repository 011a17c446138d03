// Package config loads table declarations and runtime settings from YAML.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/statement-tables/internal/extractor"
	"github.com/insightdelivered/statement-tables/internal/models"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the full configuration of the CLI and HTTP server.
type Config struct {
	Backend        string       `yaml:"backend"`
	Scheme         string       `yaml:"scheme"`
	MergeTolerance int          `yaml:"merge_tolerance"`
	Listen         string       `yaml:"listen"`
	MaxUploadMB    int          `yaml:"max_upload_mb"`
	Readability    Readability  `yaml:"readability"`
	Families       []FamilySpec `yaml:"families"`
}

// Readability configures how the "auto" backend tells real text from
// garbage. Words are the vocabulary expected on the statements handled.
type Readability struct {
	MinChars int      `yaml:"min_chars"`
	MinRatio float64  `yaml:"min_ratio"`
	Words    []string `yaml:"words"`
}

// Quality converts the settings for the extractor.
func (r Readability) Quality() extractor.Quality {
	return extractor.Quality{MinChars: r.MinChars, MinRatio: r.MinRatio, Words: r.Words}
}

// FamilySpec declares one statement layout: how to recognise it and which
// tables it contains.
type FamilySpec struct {
	Name   string      `yaml:"name"`
	Detect []string    `yaml:"detect"`
	Tables []TableSpec `yaml:"tables"`
}

// TableSpec is the YAML form of a models.TableDeclaration.
type TableSpec struct {
	Name           string   `yaml:"name"`
	Headers        []string `yaml:"headers"`
	StopWord       string   `yaml:"stop_word"`
	Alignments     []string `yaml:"alignments"`
	Required       bool     `yaml:"required"`
	Merge          string   `yaml:"merge"`
	MergeTolerance int      `yaml:"merge_tolerance"`
}

// Declaration validates the table entry and converts it.
func (s TableSpec) Declaration() (models.TableDeclaration, error) {
	if len(s.Headers) == 0 {
		return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: no headers", s.Name)
	}
	for _, h := range s.Headers {
		if strings.TrimSpace(h) == "" {
			return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: empty header keyword", s.Name)
		}
	}
	if len(s.Alignments) > len(s.Headers) {
		return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: %d alignments for %d headers", s.Name, len(s.Alignments), len(s.Headers))
	}

	aligns := make([]models.Alignment, 0, len(s.Alignments))
	for _, a := range s.Alignments {
		al, err := models.ParseAlignment(strings.ToLower(strings.TrimSpace(a)))
		if err != nil {
			return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: %v", s.Name, err)
		}
		aligns = append(aligns, al)
	}

	if s.MergeTolerance < 0 {
		return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: negative merge tolerance", s.Name)
	}
	merge, err := models.ParseMerge(strings.ToLower(strings.TrimSpace(s.Merge)), s.MergeTolerance)
	if err != nil {
		return models.TableDeclaration{}, errors.Wrapf(ErrInvalid, "table %q: %v", s.Name, err)
	}

	return models.TableDeclaration{
		Name:       s.Name,
		Headers:    append([]string(nil), s.Headers...),
		StopWord:   s.StopWord,
		Alignments: aligns,
		Required:   s.Required,
		Merge:      merge,
	}, nil
}

// Declarations converts every table of the family.
func (f FamilySpec) Declarations() ([]models.TableDeclaration, error) {
	decls := make([]models.TableDeclaration, 0, len(f.Tables))
	for _, t := range f.Tables {
		d, err := t.Declaration()
		if err != nil {
			return nil, errors.Wrapf(err, "family %q", f.Name)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// Family returns the family named name, ignoring case.
func (c *Config) Family(name string) (FamilySpec, bool) {
	for _, f := range c.Families {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FamilySpec{}, false
}

// Validate checks every family and table.
func (c *Config) Validate() error {
	if c.MergeTolerance < 0 {
		return errors.Wrap(ErrInvalid, "negative merge tolerance")
	}
	if c.Readability.MinChars < 0 || c.Readability.MinRatio < 0 || c.Readability.MinRatio >= 1 {
		return errors.Wrap(ErrInvalid, "readability: min_chars must be >= 0 and min_ratio in [0, 1)")
	}
	seen := make(map[string]bool)
	for _, f := range c.Families {
		key := strings.ToLower(f.Name)
		if key == "" {
			return errors.Wrap(ErrInvalid, "family without a name")
		}
		if seen[key] {
			return errors.Wrapf(ErrInvalid, "duplicate family %q", f.Name)
		}
		seen[key] = true
		if len(f.Tables) == 0 {
			return errors.Wrapf(ErrInvalid, "family %q declares no tables", f.Name)
		}
		if _, err := f.Declarations(); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the YAML file at path over Default(). Families in the file
// replace the built-in ones when present.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes YAML over Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Families = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if len(cfg.Families) == 0 {
		cfg.Families = Default().Families
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
