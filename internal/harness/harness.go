package harness

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dpaiva/hamburgueria/internal/catalog"
	"github.com/dpaiva/hamburgueria/internal/store"
)

// Run executes a scenario against a fresh database and returns the store
// for further inspection. Setup failures and unexpected step outcomes fail
// the test immediately.
func Run(t *testing.T, s *Scenario) *store.Store {
	t.Helper()
	ctx := context.Background()

	st, err := store.Open(filepath.Join(t.TempDir(), s.Name+".db"))
	require.NoError(t, err, "open store")
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.SeedCategories(ctx), "seed categories")

	roles, err := roleCategories(ctx, st)
	require.NoError(t, err)

	for _, item := range s.Setup.Items {
		categoryID, ok := roles[item.Category]
		require.True(t, ok, "setup item %q: unknown category role %q", item.Name, item.Category)
		_, err := st.InsertItem(ctx, catalog.ItemInput{
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Photo:       item.Photo,
			CategoryID:  categoryID,
		})
		require.NoError(t, err, "setup item %q", item.Name)
	}

	for _, combo := range s.Setup.Combos {
		_, err := st.AddCombo(ctx, comboInput(combo))
		require.NoError(t, err, "setup combo %q", combo.Name)
	}

	for i, step := range s.Steps {
		err := runStep(ctx, st, roles, step)
		checkOutcome(t, i, step, err)
	}

	return st
}

// roleCategories maps role names to seeded category ids.
func roleCategories(ctx context.Context, st *store.Store) (map[string]int64, error) {
	cats, err := st.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	roles := make(map[string]int64, len(cats))
	for _, c := range cats {
		roles[string(c.Role)] = c.ID
	}
	return roles, nil
}

func comboInput(c SetupCombo) catalog.ComboInput {
	in := catalog.ComboInput{Name: c.Name, Main: c.Main}
	if c.Drink != "" {
		drink := c.Drink
		in.Drink = &drink
	}
	if c.Side != "" {
		side := c.Side
		in.Side = &side
	}
	return in
}

func runStep(ctx context.Context, st *store.Store, roles map[string]int64, step Step) error {
	switch step.Op {
	case "insert_item":
		categoryID, ok := roles[step.Item.Category]
		if !ok {
			return fmt.Errorf("unknown category role %q", step.Item.Category)
		}
		_, err := st.InsertItem(ctx, catalog.ItemInput{
			Name:        step.Item.Name,
			Description: step.Item.Description,
			Price:       step.Item.Price,
			Photo:       step.Item.Photo,
			CategoryID:  categoryID,
		})
		return err
	case "update_item":
		fields := catalog.UpdateItemFields{}
		if step.Fields != nil {
			fields.Name = step.Fields.Name
			fields.Description = step.Fields.Description
			fields.Price = step.Fields.Price
			fields.Photo = step.Fields.Photo
		}
		return st.UpdateItem(ctx, catalog.ByName(step.Ref), fields)
	case "delete_item":
		return st.DeleteItem(ctx, catalog.ByName(step.Ref))
	case "add_combo":
		_, err := st.AddCombo(ctx, comboInput(*step.Combo))
		return err
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// checkOutcome matches a step's result against its expect clause.
func checkOutcome(t *testing.T, i int, step Step, err error) {
	t.Helper()
	expect := step.Expect
	if expect == "" {
		expect = "ok"
	}

	if expect == "ok" {
		require.NoError(t, err, "step %d (%s)", i, step.Op)
		return
	}

	require.Error(t, err, "step %d (%s): expected %s", i, step.Op, expect)
	code := catalog.CodeOf(err)
	require.Equal(t, catalog.ErrorCode(expect), code,
		"step %d (%s): wrong error code (got %v)", i, step.Op, err)
}
