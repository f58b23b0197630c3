package store

import (
	"context"
	"fmt"

	"github.com/dpaiva/hamburgueria/internal/catalog"
	"github.com/dpaiva/hamburgueria/internal/seedspec"
)

// seedCategories is the fixed bootstrap category set. Roles drive the
// delete-cascade rule, so renaming a category later does not change its
// behavior.
var seedCategories = []struct {
	name string
	role catalog.CategoryRole
}{
	{"Menu", catalog.RoleMain},
	{"Bebidas", catalog.RoleDrink},
	{"Combos", catalog.RoleCombo},
	{"Acompanhamentos", catalog.RoleSide},
}

// SeedCategories idempotently inserts the fixed category set.
// Categories already present are left untouched (INSERT OR IGNORE).
func (s *Store) SeedCategories(ctx context.Context) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO categories (name, role) VALUES (?, ?)",
			c.name, string(c.role),
		); err != nil {
			return fmt.Errorf("seed categories: insert %q: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed categories: commit: %w", err)
	}
	return nil
}

// SeedCatalog idempotently loads a validated seed catalog: items already
// present (by normalized name) are skipped, then combos are created with
// server-computed prices, skipping those whose name already exists.
// Categories must be seeded first; an item naming an unknown category is
// an error.
func (s *Store) SeedCatalog(ctx context.Context, cat *seedspec.Catalog) error {
	for _, it := range cat.Items {
		var categoryID int64
		err := s.db.QueryRowContext(ctx,
			"SELECT id FROM categories WHERE name = ?", it.Category,
		).Scan(&categoryID)
		if noRows(err) {
			return fmt.Errorf("seed catalog: item %q: unknown category %q", it.Name, it.Category)
		}
		if err != nil {
			return fmt.Errorf("seed catalog: item %q: %w", it.Name, err)
		}

		_, err = s.InsertItem(ctx, catalog.ItemInput{
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Photo:       it.Photo,
			CategoryID:  categoryID,
		})
		if err != nil && !catalog.IsDuplicateName(err) {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	for _, c := range cat.Combos {
		in := catalog.ComboInput{Name: c.Name, Main: c.Main}
		if c.Drink != "" {
			drink := c.Drink
			in.Drink = &drink
		}
		if c.Side != "" {
			side := c.Side
			in.Side = &side
		}
		if _, err := s.AddCombo(ctx, in); err != nil && !catalog.IsDuplicateName(err) {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	return nil
}
