package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/catalog"
	"github.com/dpaiva/hamburgueria/internal/store"
)

// NewItemCommand creates the item command group.
func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage menu items",
	}

	cmd.AddCommand(newItemAddCommand(rootOpts))
	cmd.AddCommand(newItemUpdateCommand(rootOpts))
	cmd.AddCommand(newItemDeleteCommand(rootOpts))

	return cmd
}

// itemRef builds the tagged item reference from the --id/--name flag pair.
// Exactly one of the two must be set.
func itemRef(id int64, name string, idSet, nameSet bool) (catalog.ItemRef, error) {
	switch {
	case idSet && nameSet:
		return catalog.ItemRef{}, fmt.Errorf("--id and --name are mutually exclusive")
	case idSet:
		return catalog.ByID(id), nil
	case nameSet:
		return catalog.ByName(name), nil
	default:
		return catalog.ItemRef{}, fmt.Errorf("one of --id or --name is required")
	}
}

// resolveCategory maps a category display name to its id.
func resolveCategory(cmd *cobra.Command, st *store.Store, name string) (int64, error) {
	cats, err := st.Categories(cmd.Context())
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to list categories", err)
	}
	for _, c := range cats {
		if catalog.SameName(c.Name, name) {
			return c.ID, nil
		}
	}
	return 0, NewExitError(ExitCommandError, fmt.Sprintf("unknown category %q", name))
}

func newItemAddCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		name        string
		description string
		price       float64
		photo       string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a menu item",
		Long: `Add a menu item to a category.

Example:
  hamburgueria item add --name "X-BBQ" --price 9.00 --category Menu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			categoryID, err := resolveCategory(cmd, st, category)
			if err != nil {
				return err
			}

			id, err := st.InsertItem(cmd.Context(), catalog.ItemInput{
				Name:        name,
				Description: description,
				Price:       price,
				Photo:       photo,
				CategoryID:  categoryID,
			})
			if err != nil {
				return reportCatalogError(f, err)
			}
			return f.Success(map[string]interface{}{"id": id, "name": name})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "item name (required)")
	cmd.Flags().StringVar(&description, "description", "", "item description")
	cmd.Flags().Float64Var(&price, "price", 0, "item price (required)")
	cmd.Flags().StringVar(&photo, "photo", "", "photo path")
	cmd.Flags().StringVar(&category, "category", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newItemUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		id          int64
		name        string
		newName     string
		description string
		price       float64
		photo       string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields of a menu item",
		Long: `Update any subset of an item's fields. Untouched fields keep their
values. Renames and re-prices propagate into combos in the same transaction.

Example:
  hamburgueria item update --name "Guaraná" --new-name "Guaravita"
  hamburgueria item update --id 3 --price 10.50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			ref, err := itemRef(id, name, cmd.Flags().Changed("id"), cmd.Flags().Changed("name"))
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			var fields catalog.UpdateItemFields
			if cmd.Flags().Changed("new-name") {
				fields.Name = &newName
			}
			if cmd.Flags().Changed("description") {
				fields.Description = &description
			}
			if cmd.Flags().Changed("price") {
				fields.Price = &price
			}
			if cmd.Flags().Changed("photo") {
				fields.Photo = &photo
			}
			if cmd.Flags().Changed("category") {
				categoryID, err := resolveCategory(cmd, st, category)
				if err != nil {
					return err
				}
				fields.CategoryID = &categoryID
			}

			if err := st.UpdateItem(cmd.Context(), ref, fields); err != nil {
				return reportCatalogError(f, err)
			}
			return f.Success(map[string]interface{}{"updated": ref.String()})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "item id")
	cmd.Flags().StringVar(&name, "name", "", "item name")
	cmd.Flags().StringVar(&newName, "new-name", "", "new item name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().Float64Var(&price, "price", 0, "new price")
	cmd.Flags().StringVar(&photo, "photo", "", "new photo path")
	cmd.Flags().StringVar(&category, "category", "", "new category name")

	return cmd
}

func newItemDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		id   int64
		name string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a menu item",
		Long: `Delete a menu item. Combos whose main slot references it are deleted
with it; drink or side slots referencing it are emptied and the combo price
recomputed.

Example:
  hamburgueria item delete --name "Guaravita"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			ref, err := itemRef(id, name, cmd.Flags().Changed("id"), cmd.Flags().Changed("name"))
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteItem(cmd.Context(), ref); err != nil {
				return reportCatalogError(f, err)
			}
			return f.Success(map[string]interface{}{"deleted": ref.String()})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "item id")
	cmd.Flags().StringVar(&name, "name", "", "item name")

	return cmd
}
