package models

// Family identifies a statement layout (a broker or bank document variant).
type Family string

// NamedTable pairs a declared table name with what was extracted for it.
type NamedTable struct {
	Name     string       `json:"name"`
	Required bool         `json:"required"`
	Table    *ColumnTable `json:"table"`
}

// Statement holds every declared table extracted from one document.
type Statement struct {
	Family    Family       `json:"family"`
	PageCount int          `json:"pageCount"`
	Tables    []NamedTable `json:"tables"`
}

// Table returns the extracted table with the given name, or nil.
func (s *Statement) Table(name string) *ColumnTable {
	for _, t := range s.Tables {
		if t.Name == name {
			return t.Table
		}
	}
	return nil
}
