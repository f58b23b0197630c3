package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// Listings are read-only projections. Each call issues a fresh query, so a
// returned slice is a snapshot: call again to restart with current data.
// All listings return an empty slice, never nil, and use a deterministic
// ORDER BY so repeated calls over unchanged data agree byte-for-byte.

// ListMenu returns the items of every main-dish category, ordered by name.
func (s *Store) ListMenu(ctx context.Context) ([]catalog.Item, error) {
	return s.listByRole(ctx, catalog.RoleMain)
}

// ListDrinks returns the items of every drink category, ordered by name.
func (s *Store) ListDrinks(ctx context.Context) ([]catalog.Item, error) {
	return s.listByRole(ctx, catalog.RoleDrink)
}

// ListSides returns the items of every side category, ordered by name.
func (s *Store) ListSides(ctx context.Context) ([]catalog.Item, error) {
	return s.listByRole(ctx, catalog.RoleSide)
}

func (s *Store) listByRole(ctx context.Context, role catalog.CategoryRole) ([]catalog.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.description, i.price, i.photo, i.category_id
		FROM items i
		JOIN categories c ON c.id = i.category_id
		WHERE c.role = ?
		ORDER BY i.name COLLATE NOCASE ASC, i.id ASC
	`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", role, err)
	}
	defer rows.Close()

	items := []catalog.Item{}
	for rows.Next() {
		var it catalog.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &it.Photo, &it.CategoryID); err != nil {
			return nil, fmt.Errorf("list %s items: scan: %w", role, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s items: iterate: %w", role, err)
	}
	return items, nil
}

// ListCombos returns every combo ordered by combo name. Null drink/side
// slots come back as empty strings.
func (s *Store) ListCombos(ctx context.Context) ([]catalog.Combo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, price, main_item, drink_item, side_item
		FROM combos
		ORDER BY name COLLATE NOCASE ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()

	combos := []catalog.Combo{}
	for rows.Next() {
		var (
			c           catalog.Combo
			drink, side sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Price, &c.Main, &drink, &side); err != nil {
			return nil, fmt.Errorf("list combos: scan: %w", err)
		}
		c.Drink = drink.String
		c.Side = side.String
		combos = append(combos, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list combos: iterate: %w", err)
	}
	return combos, nil
}

// Categories returns every category ordered by id (seed order).
func (s *Store) Categories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, role
		FROM categories
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	cats := []catalog.Category{}
	for rows.Next() {
		var (
			c    catalog.Category
			role string
		)
		if err := rows.Scan(&c.ID, &c.Name, &role); err != nil {
			return nil, fmt.Errorf("list categories: scan: %w", err)
		}
		c.Role = catalog.CategoryRole(role)
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: iterate: %w", err)
	}
	return cats, nil
}
