package table

import (
	"github.com/insightdelivered/statement-tables/internal/models"
	"github.com/insightdelivered/statement-tables/internal/tokenizer"
)

// Extractor runs table declarations against PDF files.
type Extractor struct {
	Tokenizer *tokenizer.Tokenizer

	// MergeTolerance overrides the scheme's column-alignment tolerance when
	// positive.
	MergeTolerance int
}

// NewExtractor returns an extractor reading words through tok.
func NewExtractor(tok *tokenizer.Tokenizer) *Extractor {
	return &Extractor{Tokenizer: tok}
}

// ExtractRows returns the (merged) body rows of the declared table. A table
// whose header is missing yields no rows and no error.
func (e *Extractor) ExtractRows(path string, decl models.TableDeclaration) ([]models.TableRow, error) {
	words, err := e.Tokenizer.Tokenize(path)
	if err != nil {
		return nil, err
	}
	return RowsFromWords(words, decl, e.Tolerance()), nil
}

// ExtractColumns returns the declared table split into header columns. A
// table whose header is missing yields an empty ColumnTable and no error.
func (e *Extractor) ExtractColumns(path string, decl models.TableDeclaration) (*models.ColumnTable, error) {
	words, err := e.Tokenizer.Tokenize(path)
	if err != nil {
		return nil, err
	}
	return ColumnsFromWords(words, decl, e.Tolerance()), nil
}

// Tolerance is the column-alignment merge tolerance used for declarations
// that do not set their own.
func (e *Extractor) Tolerance() int {
	if e.MergeTolerance > 0 {
		return e.MergeTolerance
	}
	return e.Tokenizer.Scheme.MergeTolerance
}

// RowsFromWords is ExtractRows on already tokenized words. tolerance is used
// by column-alignment merging when the declaration does not set its own.
func RowsFromWords(words []models.Word, decl models.TableDeclaration, tolerance int) []models.TableRow {
	_, body := locate(GroupRows(words), decl, tolerance)
	return body
}

// ColumnsFromWords is ExtractColumns on already tokenized words.
func ColumnsFromWords(words []models.Word, decl models.TableDeclaration, tolerance int) *models.ColumnTable {
	header, body := locate(GroupRows(words), decl, tolerance)
	if header == nil {
		return &models.ColumnTable{}
	}

	phrases := Anchors(*header, decl.Headers)
	cutoffs := Cutoffs(decl.Layout(), AnchorColumns(phrases))
	headers := append([]string(nil), decl.Headers...)

	return &models.ColumnTable{
		Header:    phrases,
		HeaderRow: *header,
		Rows:      SplitColumns(body, headers, cutoffs),
	}
}

// locate finds the header row and the merged body below it. A declaration
// without keywords has no header to find.
func locate(rows []models.TableRow, decl models.TableDeclaration, tolerance int) (*models.TableRow, []models.TableRow) {
	if len(decl.Headers) == 0 {
		return nil, nil
	}
	idx, ok := FindHeader(rows, decl.Headers)
	if !ok {
		return nil, nil
	}
	body := ScanBody(rows, idx, StopWord(decl.StopWord))

	strategy := decl.Merge
	if strategy.Kind == models.MergeColumnAlignment && strategy.Tolerance == 0 {
		strategy.Tolerance = tolerance
	}
	header := rows[idx]
	return &header, Merge(body, strategy)
}
