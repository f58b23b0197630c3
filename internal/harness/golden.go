package harness

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/dpaiva/hamburgueria/internal/catalog"
	"github.com/dpaiva/hamburgueria/internal/store"
)

// Snapshot renders the full observable catalog state deterministically:
// every listing in its defined order, prices with two decimals, null slots
// as "-". Two catalogs with the same contents produce identical snapshots.
func Snapshot(ctx context.Context, st *store.Store) (string, error) {
	var b strings.Builder

	sections := []struct {
		title string
		list  func(context.Context) ([]catalog.Item, error)
	}{
		{"MENU", st.ListMenu},
		{"DRINKS", st.ListDrinks},
		{"SIDES", st.ListSides},
	}
	for _, section := range sections {
		items, err := section.list(ctx)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s\n", section.title)
		for _, it := range items {
			fmt.Fprintf(&b, "- %s %.2f\n", it.Name, it.Price)
		}
	}

	combos, err := st.ListCombos(ctx)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "COMBOS\n")
	for _, c := range combos {
		fmt.Fprintf(&b, "- %s %.2f main=%s drink=%s side=%s\n",
			c.Name, c.Price, c.Main, slot(c.Drink), slot(c.Side))
	}

	return b.String(), nil
}

func slot(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// RunWithGolden executes a scenario and compares the final catalog
// snapshot against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) {
	t.Helper()

	st := Run(t, s)

	snapshot, err := Snapshot(context.Background(), st)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(snapshot))
}
