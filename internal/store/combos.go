package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// AddCombo creates a combo referencing up to three items by name and
// returns its id. The price is always computed server-side as the sum of
// the referenced items' current prices; callers never supply it.
//
// Errors: MISSING_ITEMS listing every referenced name absent from the item
// set (all at once, not just the first), DUPLICATE_NAME when a combo with
// that exact name exists, PRICE_UNAVAILABLE when the derived price cannot
// be read back at insert time.
func (s *Store) AddCombo(ctx context.Context, in catalog.ComboInput) (int64, error) {
	tx, err := s.begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("add combo: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var exists int64
	err = tx.QueryRowContext(ctx,
		"SELECT id FROM combos WHERE name = ? COLLATE BINARY", in.Name,
	).Scan(&exists)
	if err == nil {
		return 0, catalog.NewDuplicateName("combo", in.Name)
	}
	if !noRows(err) {
		return 0, fmt.Errorf("add combo: duplicate check: %w", err)
	}

	slots := []struct {
		name     *string
		required bool
	}{
		{&in.Main, true},
		{in.Drink, false},
		{in.Side, false},
	}

	var (
		missing []string
		price   float64
		priced  bool
	)
	for _, slot := range slots {
		// Empty optional slots are simply absent. An empty main name can
		// never be priced and falls through to PRICE_UNAVAILABLE below.
		if slot.name == nil || *slot.name == "" {
			continue
		}
		var p float64
		err := tx.QueryRowContext(ctx,
			"SELECT price FROM items WHERE name = ? COLLATE BINARY", *slot.name,
		).Scan(&p)
		switch {
		case noRows(err):
			missing = append(missing, *slot.name)
		case err != nil:
			return 0, fmt.Errorf("add combo: look up %q: %w", *slot.name, err)
		default:
			price += p
			if slot.required {
				priced = true
			}
		}
	}
	if len(missing) > 0 {
		return 0, catalog.NewMissingItems(missing)
	}
	if !priced {
		return 0, catalog.NewPriceUnavailable(in.Name)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO combos (name, price, main_item, drink_item, side_item)
		VALUES (?, ?, ?, ?, ?)
	`, in.Name, price, in.Main, nullable(in.Drink), nullable(in.Side))
	if err != nil {
		return 0, fmt.Errorf("add combo: %w", translateConstraint(err, "combo", in.Name))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("add combo: last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("add combo: commit: %w", err)
	}
	return id, nil
}

// nullable maps a nil or empty optional slot to SQL NULL.
func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// repairCombos propagates an item rename (or re-price, with
// oldName == newName) into the combos table. Runs inside the caller's
// transaction so slot rewrites and price recomputation commit together:
//
//  1. Every main/drink/side slot equal to oldName is rewritten to newName.
//  2. Combo display names containing oldName as a substring have it
//     replaced with newName (SQLite REPLACE, case-sensitive, every
//     occurrence).
//  3. Every combo now referencing newName in any slot has its price
//     recomputed as the sum of its non-null slots' current item prices.
func repairCombos(ctx context.Context, tx *sql.Tx, oldName, newName string) error {
	if oldName != newName {
		rewrites := []string{
			"UPDATE combos SET main_item = ? WHERE main_item = ? COLLATE BINARY",
			"UPDATE combos SET drink_item = ? WHERE drink_item = ? COLLATE BINARY",
			"UPDATE combos SET side_item = ? WHERE side_item = ? COLLATE BINARY",
		}
		for _, q := range rewrites {
			if _, err := tx.ExecContext(ctx, q, newName, oldName); err != nil {
				return fmt.Errorf("repair combos: rewrite slot: %w", translateConstraint(err, "item", newName))
			}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE combos SET name = REPLACE(name, ?, ?)
			WHERE instr(name, ?) > 0
		`, oldName, newName, oldName); err != nil {
			return fmt.Errorf("repair combos: rewrite names: %w", translateConstraint(err, "combo", newName))
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE combos SET price =
			COALESCE((SELECT price FROM items WHERE name = combos.main_item), 0)
			+ COALESCE((SELECT price FROM items WHERE name = combos.drink_item), 0)
			+ COALESCE((SELECT price FROM items WHERE name = combos.side_item), 0)
		WHERE main_item = ? COLLATE BINARY
		   OR drink_item = ? COLLATE BINARY
		   OR side_item = ? COLLATE BINARY
	`, newName, newName, newName); err != nil {
		return fmt.Errorf("repair combos: recompute prices: %w", err)
	}

	return nil
}
