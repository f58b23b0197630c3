package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

func TestAddCombo_PriceIsSumOfSlots(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	insertTestItem(t, s, "Soda", 4.00, catalog.RoleDrink)
	insertTestItem(t, s, "Fries", 3.00, catalog.RoleSide)

	addTestCombo(t, s, "Combo Full", "X-Burger", "Soda", "Fries")

	c := getCombo(t, s, "Combo Full")
	if c.Price != 17.00 {
		t.Errorf("price = %v, want 17.00", c.Price)
	}
	if c.Main != "X-Burger" || c.Drink != "Soda" || c.Side != "Fries" {
		t.Errorf("slots = %q/%q/%q", c.Main, c.Drink, c.Side)
	}
}

func TestAddCombo_MainOnly(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)

	addTestCombo(t, s, "Combo Solo", "X-Burger", "", "")

	c := getCombo(t, s, "Combo Solo")
	if c.Price != 10.00 {
		t.Errorf("price = %v, want 10.00", c.Price)
	}
	if c.Drink != "" || c.Side != "" {
		t.Errorf("optional slots should be null, got %q/%q", c.Drink, c.Side)
	}
}

func TestAddCombo_MissingItems_ListsAllAbsentNames(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	insertTestItem(t, s, "Soda", 4.00, catalog.RoleDrink)

	fries := "Fries"
	soda := "Soda"
	_, err := s.AddCombo(context.Background(), catalog.ComboInput{
		Name: "Combo X", Main: "X-Burger", Drink: &soda, Side: &fries,
	})
	if !catalog.IsMissingItems(err) {
		t.Fatalf("expected MISSING_ITEMS, got %v", err)
	}
	if got := catalog.MissingItems(err); !reflect.DeepEqual(got, []string{"Fries"}) {
		t.Errorf("missing = %v, want [Fries]", got)
	}
}

func TestAddCombo_MissingItems_MultipleNames(t *testing.T) {
	s := createTestStore(t)

	shake := "Shake"
	fries := "Fries"
	_, err := s.AddCombo(context.Background(), catalog.ComboInput{
		Name: "Combo Ghost", Main: "X-Burger", Drink: &shake, Side: &fries,
	})
	if !catalog.IsMissingItems(err) {
		t.Fatalf("expected MISSING_ITEMS, got %v", err)
	}
	want := []string{"X-Burger", "Shake", "Fries"}
	if got := catalog.MissingItems(err); !reflect.DeepEqual(got, want) {
		t.Errorf("missing = %v, want %v", got, want)
	}
}

func TestAddCombo_DuplicateName(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	addTestCombo(t, s, "Combo X", "X-Burger", "", "")

	_, err := s.AddCombo(context.Background(), catalog.ComboInput{
		Name: "Combo X", Main: "X-Burger",
	})
	if !catalog.IsDuplicateName(err) {
		t.Fatalf("expected DUPLICATE_NAME, got %v", err)
	}
}

func TestAddCombo_EmptyMain_PriceUnavailable(t *testing.T) {
	s := createTestStore(t)

	_, err := s.AddCombo(context.Background(), catalog.ComboInput{Name: "Combo Void"})
	if !catalog.IsPriceUnavailable(err) {
		t.Fatalf("expected PRICE_UNAVAILABLE, got %v", err)
	}
}

func TestRepair_RenameRewritesSlots(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 12.00, catalog.RoleMain)
	insertTestItem(t, s, "Guaraná", 2.00, catalog.RoleDrink)
	addTestCombo(t, s, "Combo X", "X-Burger", "Guaraná", "")

	name := "Guaravita"
	if err := s.UpdateItem(context.Background(), catalog.ByName("Guaraná"), catalog.UpdateItemFields{
		Name: &name,
	}); err != nil {
		t.Fatalf("UpdateItem() failed: %v", err)
	}

	c := getCombo(t, s, "Combo X")
	if c.Drink != "Guaravita" {
		t.Errorf("drink slot = %q, want %q", c.Drink, "Guaravita")
	}
	if c.Price != 14.00 {
		t.Errorf("price = %v, want 14.00 (unchanged by rename)", c.Price)
	}
}

func TestRepair_RenameRewritesComboDisplayName(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-BBQ", 9.00, catalog.RoleMain)
	insertTestItem(t, s, "Guaravita", 2.00, catalog.RoleDrink)
	addTestCombo(t, s, "Combo X-BBQ", "X-BBQ", "Guaravita", "")

	name := "X-Barbecue"
	if err := s.UpdateItem(context.Background(), catalog.ByName("X-BBQ"), catalog.UpdateItemFields{
		Name: &name,
	}); err != nil {
		t.Fatalf("UpdateItem() failed: %v", err)
	}

	// The combo display name contained the old item name as a substring.
	c := getCombo(t, s, "Combo X-Barbecue")
	if c.Main != "X-Barbecue" {
		t.Errorf("main slot = %q, want %q", c.Main, "X-Barbecue")
	}
	if c.Price != 11.00 {
		t.Errorf("price = %v, want 11.00", c.Price)
	}
}

func TestRepair_RepriceRecomputesComboPrice(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	insertTestItem(t, s, "Soda", 4.00, catalog.RoleDrink)
	addTestCombo(t, s, "Combo X", "X-Burger", "Soda", "")

	price := 12.50
	if err := s.UpdateItem(context.Background(), catalog.ByName("X-Burger"), catalog.UpdateItemFields{
		Price: &price,
	}); err != nil {
		t.Fatalf("UpdateItem() failed: %v", err)
	}

	c := getCombo(t, s, "Combo X")
	if c.Price != 16.50 {
		t.Errorf("price = %v, want 16.50", c.Price)
	}
}

func TestRepair_RenameAndRepriceTogether(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	insertTestItem(t, s, "Soda", 4.00, catalog.RoleDrink)
	addTestCombo(t, s, "Combo X", "X-Burger", "Soda", "")

	name := "X-Turbo"
	price := 11.00
	if err := s.UpdateItem(context.Background(), catalog.ByName("X-Burger"), catalog.UpdateItemFields{
		Name:  &name,
		Price: &price,
	}); err != nil {
		t.Fatalf("UpdateItem() failed: %v", err)
	}

	c := getCombo(t, s, "Combo X")
	if c.Main != "X-Turbo" {
		t.Errorf("main slot = %q, want %q", c.Main, "X-Turbo")
	}
	if c.Price != 15.00 {
		t.Errorf("price = %v, want 15.00", c.Price)
	}
}

func TestRepair_OnlyAffectedCombosChange(t *testing.T) {
	s := createTestStore(t)
	insertTestItem(t, s, "X-Burger", 10.00, catalog.RoleMain)
	insertTestItem(t, s, "Hot Dog", 6.00, catalog.RoleMain)
	insertTestItem(t, s, "Soda", 4.00, catalog.RoleDrink)
	addTestCombo(t, s, "Combo A", "X-Burger", "Soda", "")
	addTestCombo(t, s, "Combo B", "Hot Dog", "Soda", "")

	price := 20.00
	if err := s.UpdateItem(context.Background(), catalog.ByName("X-Burger"), catalog.UpdateItemFields{
		Price: &price,
	}); err != nil {
		t.Fatalf("UpdateItem() failed: %v", err)
	}

	a := getCombo(t, s, "Combo A")
	if a.Price != 24.00 {
		t.Errorf("Combo A price = %v, want 24.00", a.Price)
	}
	b := getCombo(t, s, "Combo B")
	if b.Price != 10.00 {
		t.Errorf("Combo B price = %v, want 10.00 (unchanged)", b.Price)
	}
}

// End-to-end flow pinned by the catalog contract: create, rename, delete,
// with the combo surviving the optional-slot delete at the reduced price.
func TestCatalog_EndToEndFlow(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	insertTestItem(t, s, "Guaraná", 2.00, catalog.RoleDrink)
	insertTestItem(t, s, "X-Burger", 12.00, catalog.RoleMain)
	addTestCombo(t, s, "Combo X", "X-Burger", "Guaraná", "")

	c := getCombo(t, s, "Combo X")
	if c.Price != 14.00 {
		t.Fatalf("combo price = %v, want 14.00", c.Price)
	}

	name := "Guaravita"
	if err := s.UpdateItem(ctx, catalog.ByName("Guaraná"), catalog.UpdateItemFields{Name: &name}); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	c = getCombo(t, s, "Combo X")
	if c.Drink != "Guaravita" {
		t.Errorf("drink slot = %q, want %q", c.Drink, "Guaravita")
	}
	if c.Price != 14.00 {
		t.Errorf("price after rename = %v, want 14.00", c.Price)
	}

	if err := s.DeleteItem(ctx, catalog.ByName("Guaravita")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	c = getCombo(t, s, "Combo X")
	if c.Drink != "" {
		t.Errorf("drink slot = %q, want null", c.Drink)
	}
	if c.Price != 12.00 {
		t.Errorf("final price = %v, want 12.00", c.Price)
	}
}
