package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// InsertItem inserts a new menu item and returns its id.
//
// Fails with a DUPLICATE_NAME catalog error when an existing item's
// normalized name equals the normalized input name ("Batata" vs "batata ").
// Fails with INVALID_CATEGORY when the category id does not exist.
func (s *Store) InsertItem(ctx context.Context, in catalog.ItemInput) (int64, error) {
	if in.Price < 0 {
		return 0, fmt.Errorf("insert item: price must be non-negative, got %v", in.Price)
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Accent-insensitive uniqueness cannot be expressed as a SQLite
	// constraint, so the check runs here against every stored name.
	rows, err := tx.QueryContext(ctx, "SELECT name FROM items")
	if err != nil {
		return 0, fmt.Errorf("insert item: query names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var existing string
		if err := rows.Scan(&existing); err != nil {
			return 0, fmt.Errorf("insert item: scan name: %w", err)
		}
		if catalog.SameName(existing, in.Name) {
			return 0, catalog.NewDuplicateName("item", in.Name)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("insert item: iterate names: %w", err)
	}

	if _, err := categoryRole(ctx, tx, in.CategoryID); err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO items (name, description, price, photo, category_id)
		VALUES (?, ?, ?, ?, ?)
	`, in.Name, in.Description, in.Price, in.Photo, in.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", translateConstraint(err, "item", in.Name))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert item: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert item: commit: %w", err)
	}
	return id, nil
}

// UpdateItem applies a partial update to the item addressed by ref.
// Only non-nil fields change; the rest of the row is untouched.
//
// Errors: NOT_FOUND when ref resolves to no row, NO_FIELDS when every field
// is nil, DUPLICATE_NAME when another item already has the new name
// (byte-exact comparison, unlike InsertItem's normalized one), and
// INVALID_CATEGORY when the new category id does not exist.
//
// When the name or price changes, combo repair runs in the same
// transaction: slots equal to the old name are rewritten, the old name is
// substring-replaced inside combo display names, and affected combo prices
// are recomputed from live item prices.
func (s *Store) UpdateItem(ctx context.Context, ref catalog.ItemRef, fields catalog.UpdateItemFields) error {
	if fields.Empty() {
		return catalog.NewNoFields()
	}
	if fields.Price != nil && *fields.Price < 0 {
		return fmt.Errorf("update item: price must be non-negative, got %v", *fields.Price)
	}

	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	it, err := findItem(ctx, tx, ref)
	if err != nil {
		return err
	}

	if fields.Name != nil && *fields.Name != it.Name {
		// Byte-exact duplicate check, matching the reference behavior.
		// Insert checks normalized names; update does not.
		var other int64
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM items WHERE name = ? COLLATE BINARY AND id != ?",
			*fields.Name, it.ID,
		).Scan(&other)
		if err == nil {
			return catalog.NewDuplicateName("item", *fields.Name)
		}
		if !noRows(err) {
			return fmt.Errorf("update item: duplicate check: %w", err)
		}
	}

	if fields.CategoryID != nil {
		if _, err := categoryRole(ctx, tx, *fields.CategoryID); err != nil {
			return err
		}
	}

	set := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if fields.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *fields.Name)
	}
	if fields.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *fields.Description)
	}
	if fields.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *fields.Price)
	}
	if fields.Photo != nil {
		set = append(set, "photo = ?")
		args = append(args, *fields.Photo)
	}
	if fields.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *fields.CategoryID)
	}
	args = append(args, it.ID)

	if _, err := tx.ExecContext(ctx,
		"UPDATE items SET "+strings.Join(set, ", ")+" WHERE id = ?",
		args...,
	); err != nil {
		name := it.Name
		if fields.Name != nil {
			name = *fields.Name
		}
		return fmt.Errorf("update item: %w", translateConstraint(err, "item", name))
	}

	nameChanged := fields.Name != nil && *fields.Name != it.Name
	priceChanged := fields.Price != nil && *fields.Price != it.Price
	if nameChanged || priceChanged {
		newName := it.Name
		if nameChanged {
			newName = *fields.Name
		}
		if err := repairCombos(ctx, tx, it.Name, newName); err != nil {
			return fmt.Errorf("update item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update item: commit: %w", err)
	}
	return nil
}

// DeleteItem removes the item addressed by ref, cascading into combos
// slot by slot:
//
//   - every combo whose main slot references the item is deleted
//   - drink slots referencing it are nulled and the combo price recomputed
//     as the sum of the remaining non-null slots (floored at 0)
//   - side slots likewise
//
// The rules apply regardless of which category the item belongs to: a slot
// reference is repaired wherever it appears. The item row itself is then
// deleted unconditionally.
// Returns a NOT_FOUND catalog error when ref resolves to no row.
func (s *Store) DeleteItem(ctx context.Context, ref catalog.ItemRef) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	it, err := findItem(ctx, tx, ref)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM combos WHERE main_item = ? COLLATE BINARY", it.Name,
	); err != nil {
		return fmt.Errorf("delete item: cascade combos: %w", err)
	}

	// Null the slot and recompute the price in one statement so no
	// intermediate state is visible. COALESCE floors at 0 when a slot
	// price cannot be resolved. The drink recompute may still see the
	// doomed item in a side slot; the side statement settles that.
	if _, err := tx.ExecContext(ctx, `
		UPDATE combos SET
			price = COALESCE((SELECT price FROM items WHERE name = combos.main_item), 0)
			      + COALESCE((SELECT price FROM items WHERE name = combos.side_item), 0),
			drink_item = NULL
		WHERE drink_item = ? COLLATE BINARY
	`, it.Name); err != nil {
		return fmt.Errorf("delete item: null drink slot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE combos SET
			price = COALESCE((SELECT price FROM items WHERE name = combos.main_item), 0)
			      + COALESCE((SELECT price FROM items WHERE name = combos.drink_item), 0),
			side_item = NULL
		WHERE side_item = ? COLLATE BINARY
	`, it.Name); err != nil {
		return fmt.Errorf("delete item: null side slot: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE id = ?", it.ID); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete item: commit: %w", err)
	}
	return nil
}
