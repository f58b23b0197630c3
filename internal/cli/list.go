package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "list [menu|drinks|sides|combos|all]",
		Short:     "List catalog sections",
		Long:      "List one section of the catalog, or all of them.",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"menu", "drinks", "sides", "combos", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			section := "all"
			if len(args) == 1 {
				section = args[0]
			}
			return runList(cmd, rootOpts, section)
		},
	}
	return cmd
}

// listPayload is the structured shape behind both output formats.
type listPayload struct {
	Menu   []itemRow  `json:"menu,omitempty"`
	Drinks []itemRow  `json:"drinks,omitempty"`
	Sides  []itemRow  `json:"sides,omitempty"`
	Combos []comboRow `json:"combos,omitempty"`
}

type itemRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

type comboRow struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Main  string  `json:"main"`
	Drink string  `json:"drink,omitempty"`
	Side  string  `json:"side,omitempty"`
}

func runList(cmd *cobra.Command, rootOpts *RootOptions, section string) error {
	f := formatter(cmd, rootOpts)

	st, err := openStore(cmd, rootOpts)
	if err != nil {
		return err
	}
	defer st.Close()

	var payload listPayload
	var text strings.Builder

	appendItems := func(title string, items []catalog.Item) []itemRow {
		rows := make([]itemRow, 0, len(items))
		fmt.Fprintf(&text, "%s:\n", title)
		for _, it := range items {
			rows = append(rows, itemRow{Name: it.Name, Description: it.Description, Price: it.Price})
			if it.Description != "" {
				fmt.Fprintf(&text, "  %s - %s - %.2f\n", it.Name, it.Description, it.Price)
			} else {
				fmt.Fprintf(&text, "  %s - %.2f\n", it.Name, it.Price)
			}
		}
		return rows
	}

	want := func(s string) bool { return section == "all" || section == s }

	if want("menu") {
		menu, err := st.ListMenu(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list menu", err)
		}
		payload.Menu = appendItems("Menu", menu)
	}
	if want("drinks") {
		drinks, err := st.ListDrinks(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list drinks", err)
		}
		payload.Drinks = appendItems("Drinks", drinks)
	}
	if want("sides") {
		sides, err := st.ListSides(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sides", err)
		}
		payload.Sides = appendItems("Sides", sides)
	}
	if want("combos") {
		combos, err := st.ListCombos(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list combos", err)
		}
		payload.Combos = renderCombos(&text, combos)
	}

	return f.SuccessText(text.String(), payload)
}

func renderCombos(text *strings.Builder, combos []catalog.Combo) []comboRow {
	rows := make([]comboRow, 0, len(combos))
	fmt.Fprintf(text, "Combos:\n")
	for _, c := range combos {
		rows = append(rows, comboRow{Name: c.Name, Price: c.Price, Main: c.Main, Drink: c.Drink, Side: c.Side})
		fmt.Fprintf(text, "  %s - %.2f\n", c.Name, c.Price)
		fmt.Fprintf(text, "    %s\n", c.Main)
		if c.Drink != "" {
			fmt.Fprintf(text, "    %s\n", c.Drink)
		}
		if c.Side != "" {
			fmt.Fprintf(text, "    %s\n", c.Side)
		}
	}
	return rows
}
