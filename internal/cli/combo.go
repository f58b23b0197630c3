package cli

import (
	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/catalog"
)

// NewComboCommand creates the combo command group.
func NewComboCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combo",
		Short: "Manage combos",
	}

	cmd.AddCommand(newComboAddCommand(rootOpts))

	return cmd
}

func newComboAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name  string
		main  string
		drink string
		side  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a combo",
		Long: `Add a combo referencing existing items by name. The main dish is
required; drink and side are optional. The price is always computed as the
sum of the referenced items' current prices.

Example:
  hamburgueria combo add --name "Combo X" --main "X-Burger" --drink "Guaravita"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			in := catalog.ComboInput{Name: name, Main: main}
			if cmd.Flags().Changed("drink") {
				in.Drink = &drink
			}
			if cmd.Flags().Changed("side") {
				in.Side = &side
			}

			id, err := st.AddCombo(cmd.Context(), in)
			if err != nil {
				return reportCatalogError(f, err)
			}

			combo, err := st.FindCombo(cmd.Context(), name)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read back combo", err)
			}
			return f.Success(map[string]interface{}{
				"id":    id,
				"name":  combo.Name,
				"price": combo.Price,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "combo name (required)")
	cmd.Flags().StringVar(&main, "main", "", "main dish item name (required)")
	cmd.Flags().StringVar(&drink, "drink", "", "drink item name")
	cmd.Flags().StringVar(&side, "side", "", "side item name")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("main")

	return cmd
}
