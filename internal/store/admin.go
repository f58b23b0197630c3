package store

import (
	"context"
	"fmt"
	"strings"
)

// Table identifies one of the known catalog tables. Administrative
// operations only accept this closed set; table names are never
// interpolated from free text.
type Table string

const (
	TableCategories Table = "categories"
	TableItems      Table = "items"
	TableCombos     Table = "combos"
)

// Tables lists every known table, in dependency order.
var Tables = []Table{TableCategories, TableItems, TableCombos}

// ParseTable maps free text to a known Table.
func ParseTable(name string) (Table, error) {
	for _, t := range Tables {
		if string(t) == strings.ToLower(strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown table %q: must be one of %v", name, Tables)
}

// ident returns the SQL identifier for a known table. The returned string
// is always one of the compile-time literals; unknown values error before
// any SQL is built.
func (t Table) ident() (string, error) {
	switch t {
	case TableCategories:
		return "categories", nil
	case TableItems:
		return "items", nil
	case TableCombos:
		return "combos", nil
	default:
		return "", fmt.Errorf("unknown table %q: must be one of %v", string(t), Tables)
	}
}

// DropTable drops one known table. Development/testing helper; no
// consistency guarantees across the remaining tables.
func (s *Store) DropTable(ctx context.Context, t Table) error {
	ident, err := t.ident()
	if err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+ident); err != nil {
		return fmt.Errorf("drop table %s: %w", ident, err)
	}
	return nil
}

// ResetDatabase drops every catalog table and recreates the empty schema,
// so the store stays usable afterwards. Development/testing helper.
func (s *Store) ResetDatabase(ctx context.Context) error {
	// Children before parents so the foreign keys don't object.
	for i := len(Tables) - 1; i >= 0; i-- {
		if err := s.DropTable(ctx, Tables[i]); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
	}
	if err := applySchema(s.db); err != nil {
		return fmt.Errorf("reset database: %w", err)
	}
	return nil
}

// TableSchema is one sqlite_master entry.
type TableSchema struct {
	Name string
	SQL  string
}

// InspectSchema returns the DDL of every user table, ordered by name.
func (s *Store) InspectSchema(ctx context.Context) ([]TableSchema, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, sql FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("inspect schema: %w", err)
	}
	defer rows.Close()

	schemas := []TableSchema{}
	for rows.Next() {
		var ts TableSchema
		if err := rows.Scan(&ts.Name, &ts.SQL); err != nil {
			return nil, fmt.Errorf("inspect schema: scan: %w", err)
		}
		schemas = append(schemas, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inspect schema: iterate: %w", err)
	}
	return schemas, nil
}

// TableDump holds the raw rows of one table for inspection.
type TableDump struct {
	Table   Table
	Columns []string
	Rows    [][]any
}

// InspectTable dumps every row of one known table. Cell values carry
// whatever the driver produced (int64, float64, string, []byte, nil);
// rendering belongs to the caller.
func (s *Store) InspectTable(ctx context.Context, t Table) (*TableDump, error) {
	ident, err := t.ident()
	if err != nil {
		return nil, fmt.Errorf("inspect table: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+ident+" ORDER BY 1 ASC")
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: %w", ident, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("inspect table %s: columns: %w", ident, err)
	}

	dump := &TableDump{Table: t, Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		cells := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("inspect table %s: scan: %w", ident, err)
		}
		dump.Rows = append(dump.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inspect table %s: iterate: %w", ident, err)
	}
	return dump, nil
}
