package store

import (
	"context"
	"testing"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

func TestListMenu_OnlyMainCategory(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-BBQ", 9.00, catalog.RoleMain)
	insertTestItem(t, s, "Cachorro-quente", 9.00, catalog.RoleMain)
	insertTestItem(t, s, "Guaravita", 2.00, catalog.RoleDrink)

	menu, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("ListMenu() failed: %v", err)
	}
	if len(menu) != 2 {
		t.Fatalf("len(menu) = %d, want 2", len(menu))
	}
	// Ordered by name.
	if menu[0].Name != "Cachorro-quente" || menu[1].Name != "X-BBQ" {
		t.Errorf("menu order = %q, %q", menu[0].Name, menu[1].Name)
	}
}

func TestListDrinksAndSides(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "Guaravita", 2.00, catalog.RoleDrink)
	insertTestItem(t, s, "Batata pequena", 3.00, catalog.RoleSide)

	drinks, err := s.ListDrinks(context.Background())
	if err != nil {
		t.Fatalf("ListDrinks() failed: %v", err)
	}
	if len(drinks) != 1 || drinks[0].Name != "Guaravita" {
		t.Errorf("drinks = %+v", drinks)
	}

	sides, err := s.ListSides(context.Background())
	if err != nil {
		t.Fatalf("ListSides() failed: %v", err)
	}
	if len(sides) != 1 || sides[0].Name != "Batata pequena" {
		t.Errorf("sides = %+v", sides)
	}
}

func TestListCombos_OrderedByName(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	addTestCombo(t, s, "Zebra", "X-Burger", "", "")
	addTestCombo(t, s, "Alpha", "X-Burger", "", "")

	combos, err := s.ListCombos(context.Background())
	if err != nil {
		t.Fatalf("ListCombos() failed: %v", err)
	}
	if len(combos) != 2 {
		t.Fatalf("len(combos) = %d, want 2", len(combos))
	}
	if combos[0].Name != "Alpha" || combos[1].Name != "Zebra" {
		t.Errorf("combo order = %q, %q", combos[0].Name, combos[1].Name)
	}
}

func TestListings_EmptySliceNotNil(t *testing.T) {
	s := createTestStore(t)

	menu, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("ListMenu() failed: %v", err)
	}
	if menu == nil {
		t.Error("ListMenu() returned nil, want empty slice")
	}

	combos, err := s.ListCombos(context.Background())
	if err != nil {
		t.Fatalf("ListCombos() failed: %v", err)
	}
	if combos == nil {
		t.Error("ListCombos() returned nil, want empty slice")
	}
}

func TestListings_RestartableSnapshot(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-BBQ", 9.00, catalog.RoleMain)

	first, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("ListMenu() failed: %v", err)
	}

	insertTestItem(t, s, "Cachorro-quente", 9.00, catalog.RoleMain)

	// The earlier snapshot is unaffected; a fresh call sees the new row.
	if len(first) != 1 {
		t.Errorf("stale snapshot len = %d, want 1", len(first))
	}
	second, err := s.ListMenu(context.Background())
	if err != nil {
		t.Fatalf("second ListMenu() failed: %v", err)
	}
	if len(second) != 2 {
		t.Errorf("fresh snapshot len = %d, want 2", len(second))
	}
}

func TestCategories_SeedOrder(t *testing.T) {
	s := createTestStore(t)

	cats, err := s.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories() failed: %v", err)
	}
	if len(cats) != 4 {
		t.Fatalf("len(categories) = %d, want 4", len(cats))
	}
	want := []string{"Menu", "Bebidas", "Combos", "Acompanhamentos"}
	for i, name := range want {
		if cats[i].Name != name {
			t.Errorf("categories[%d] = %q, want %q", i, cats[i].Name, name)
		}
	}
}
