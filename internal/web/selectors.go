package web

import "fmt"

// TestID selects an element by its exact data-testid.
func TestID(id string) string {
	return fmt.Sprintf(`[data-testid="%s"]`, id)
}

// TestIDPrefix selects every element whose data-testid starts with prefix.
func TestIDPrefix(prefix string) string {
	return fmt.Sprintf(`[data-testid^="%s"]`, prefix)
}

// Indexed is the "id-i" row naming used by most tables.
func Indexed(id string, i int) string {
	return fmt.Sprintf("%s-%d", id, i)
}

// Bracketed is the "id[i]" row naming used by account and VSD tables.
func Bracketed(id string, i int) string {
	return fmt.Sprintf("%s[%d]", id, i)
}

// CellLayout names the cells of one table: <prefix>-<column> plus a row suffix.
// A Repeated layout has no row suffix; cell i is the i-th match of <prefix>-<column>.
type CellLayout struct {
	Prefix    string
	Bracketed bool
	Repeated  bool
}

// ID returns the data-testid of a cell.
func (l CellLayout) ID(column string, row int) string {
	id := l.Prefix + "-" + column
	switch {
	case l.Repeated:
		return id
	case l.Bracketed:
		return Bracketed(id, row)
	default:
		return Indexed(id, row)
	}
}

// Cell returns the selector of a cell.
func (l CellLayout) Cell(column string, row int) string {
	return TestID(l.ID(column, row))
}

// Rows returns the prefix selector that counts rows by one column.
func (l CellLayout) Rows(column string) string {
	id := l.Prefix + "-" + column
	switch {
	case l.Repeated:
		return TestID(id)
	case !l.Bracketed:
		id += "-"
	}
	return TestIDPrefix(id)
}
