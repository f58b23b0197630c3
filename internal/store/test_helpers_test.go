package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// createTestStore creates a seeded store on a throwaway database file.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.SeedCategories(context.Background()); err != nil {
		t.Fatalf("SeedCategories() failed: %v", err)
	}
	return s
}

// categoryID returns the seeded category id for a role.
func categoryID(t *testing.T, s *Store, role catalog.CategoryRole) int64 {
	t.Helper()
	cats, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() failed: %v", err)
	}
	for _, c := range cats {
		if c.Role == role {
			return c.ID
		}
	}
	t.Fatalf("no category with role %q", role)
	return 0
}

// insertTestItem inserts an item into the category with the given role.
func insertTestItem(t *testing.T, s *Store, name string, price float64, role catalog.CategoryRole) int64 {
	t.Helper()
	id, err := s.InsertItem(context.Background(), catalog.ItemInput{
		Name:       name,
		Price:      price,
		CategoryID: categoryID(t, s, role),
	})
	if err != nil {
		t.Fatalf("InsertItem(%q) failed: %v", name, err)
	}
	return id
}

// addTestCombo creates a combo; empty drink/side leave the slot null.
func addTestCombo(t *testing.T, s *Store, name, main, drink, side string) int64 {
	t.Helper()
	in := catalog.ComboInput{Name: name, Main: main}
	if drink != "" {
		in.Drink = &drink
	}
	if side != "" {
		in.Side = &side
	}
	id, err := s.AddCombo(context.Background(), in)
	if err != nil {
		t.Fatalf("AddCombo(%q) failed: %v", name, err)
	}
	return id
}

// getCombo fetches a combo by exact name.
func getCombo(t *testing.T, s *Store, name string) catalog.Combo {
	t.Helper()
	c, err := s.FindCombo(context.Background(), name)
	if err != nil {
		t.Fatalf("FindCombo(%q) failed: %v", name, err)
	}
	return c
}
