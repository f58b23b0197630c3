package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Added index on items.category_id for the listing projections
const currentSchemaVersion = 1

// Store provides durable storage for the hamburgueria catalog.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1) // Single writer to avoid SQLITE_BUSY errors
	db.SetMaxIdleConns(1) // Keep one connection ready

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
		version = 1
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 adds the category index for databases created before v1.
// New databases are unaffected; CREATE INDEX IF NOT EXISTS is a no-op
// when the index already exists.
func migrateToV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_items_category
		ON items(category_id)
	`)
	if err != nil {
		return fmt.Errorf("migrate to v1: %w", err)
	}
	return nil
}

// begin starts a write transaction. Callers must either commit or rely on
// the deferred rollback; rollback after commit is a no-op.
func (s *Store) begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

// translateConstraint maps a SQLite integrity-constraint violation to the
// nearest catalog error, or to a plain message for value (CHECK)
// constraints, so callers never see raw storage errors for expected
// conflicts (e.g. a unique-name race lost to a concurrent insert).
// Non-constraint errors pass through unchanged.
func translateConstraint(err error, kind, name string) error {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return err
	}
	switch se.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return catalog.NewDuplicateName(kind, name)
	case sqlite3.ErrConstraintForeignKey:
		return catalog.NewNotFound(kind+" reference", name)
	case sqlite3.ErrConstraintCheck:
		return fmt.Errorf("%s %q rejected by value constraint: %s", kind, name, se.Error())
	default:
		return err
	}
}

// noRows reports whether err is sql.ErrNoRows, possibly wrapped.
func noRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// queryer abstracts *sql.DB and *sql.Tx for helpers shared between
// transactional and read-only paths.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// findItem resolves an ItemRef to its row. Name resolution is byte-exact:
// callers that want case-insensitive matching go through the listings.
func findItem(ctx context.Context, q queryer, ref catalog.ItemRef) (catalog.Item, error) {
	var (
		row *sql.Row
		it  catalog.Item
	)
	const cols = "id, name, description, price, photo, category_id"
	switch ref.Kind {
	case catalog.RefByID:
		row = q.QueryRowContext(ctx, "SELECT "+cols+" FROM items WHERE id = ?", ref.ID)
	case catalog.RefByName:
		row = q.QueryRowContext(ctx, "SELECT "+cols+" FROM items WHERE name = ? COLLATE BINARY", ref.Name)
	default:
		return it, fmt.Errorf("invalid item reference kind %d", ref.Kind)
	}

	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Photo, &it.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return it, catalog.NewNotFound("item", ref.String())
	}
	if err != nil {
		return it, fmt.Errorf("find item %s: %w", ref, err)
	}
	return it, nil
}

// FindItem resolves an item by id or exact name.
// Returns a NOT_FOUND catalog error if no row matches.
func (s *Store) FindItem(ctx context.Context, ref catalog.ItemRef) (catalog.Item, error) {
	return findItem(ctx, s.db, ref)
}

// FindCombo resolves a combo by exact name.
// Returns a NOT_FOUND catalog error if no row matches.
func (s *Store) FindCombo(ctx context.Context, name string) (catalog.Combo, error) {
	var (
		c           catalog.Combo
		drink, side sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, price, main_item, drink_item, side_item
		FROM combos
		WHERE name = ? COLLATE BINARY
	`, name).Scan(&c.ID, &c.Name, &c.Price, &c.Main, &drink, &side)
	if errors.Is(err, sql.ErrNoRows) {
		return c, catalog.NewNotFound("combo", name)
	}
	if err != nil {
		return c, fmt.Errorf("find combo %q: %w", name, err)
	}
	c.Drink = drink.String
	c.Side = side.String
	return c, nil
}

// categoryRole returns the role of the category an item belongs to.
func categoryRole(ctx context.Context, q queryer, categoryID int64) (catalog.CategoryRole, error) {
	var role string
	err := q.QueryRowContext(ctx, "SELECT role FROM categories WHERE id = ?", categoryID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", catalog.NewInvalidCategory(categoryID)
	}
	if err != nil {
		return "", fmt.Errorf("category role: %w", err)
	}
	return catalog.CategoryRole(role), nil
}
