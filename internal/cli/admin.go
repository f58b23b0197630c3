package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/store"
)

// NewAdminCommand creates the admin command group: destructive and
// introspective maintenance operations for development and testing.
func NewAdminCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Maintenance operations (development/testing only)",
	}

	cmd.AddCommand(newAdminSchemaCommand(rootOpts))
	cmd.AddCommand(newAdminTableCommand(rootOpts))
	cmd.AddCommand(newAdminDropCommand(rootOpts))
	cmd.AddCommand(newAdminResetCommand(rootOpts))

	return cmd
}

func newAdminSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the DDL of every catalog table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			schemas, err := st.InspectSchema(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to inspect schema", err)
			}

			var text strings.Builder
			data := make([]map[string]string, 0, len(schemas))
			for _, ts := range schemas {
				data = append(data, map[string]string{"name": ts.Name, "sql": ts.SQL})
				fmt.Fprintf(&text, "-- %s\n%s\n\n", ts.Name, ts.SQL)
			}
			return f.SuccessText(text.String(), data)
		},
	}
}

func newAdminTableCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "table <name>",
		Short: "Dump every row of one catalog table",
		Long: `Dump the raw rows of one known catalog table. The name must be one
of the known tables; arbitrary identifiers are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			table, err := store.ParseTable(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			dump, err := st.InspectTable(cmd.Context(), table)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to inspect table", err)
			}

			var text strings.Builder
			fmt.Fprintf(&text, "%s\n", strings.Join(dump.Columns, " | "))
			for _, row := range dump.Rows {
				cells := make([]string, len(row))
				for i, cell := range row {
					cells[i] = renderCell(cell)
				}
				fmt.Fprintf(&text, "%s\n", strings.Join(cells, " | "))
			}

			return f.SuccessText(text.String(), map[string]interface{}{
				"table":   string(dump.Table),
				"columns": dump.Columns,
				"rows":    dump.Rows,
			})
		},
	}
}

// renderCell renders one driver value for the text dump.
func renderCell(v interface{}) string {
	switch cell := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(cell)
	default:
		return fmt.Sprintf("%v", cell)
	}
}

func newAdminDropCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop <name>",
		Short: "Drop one catalog table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			table, err := store.ParseTable(args[0])
			if err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			if !yes {
				return NewExitError(ExitCommandError, "refusing to drop without --yes")
			}

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DropTable(cmd.Context(), table); err != nil {
				return WrapExitError(ExitCommandError, "failed to drop table", err)
			}
			return f.Success(map[string]interface{}{"dropped": string(table)})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive operation")

	return cmd
}

func newAdminResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every catalog table and recreate the empty schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(cmd, rootOpts)

			if !yes {
				return NewExitError(ExitCommandError, "refusing to reset without --yes")
			}

			st, err := openStore(cmd, rootOpts)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.ResetDatabase(cmd.Context()); err != nil {
				return WrapExitError(ExitCommandError, "failed to reset database", err)
			}
			return f.Success(map[string]interface{}{"reset": true})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive operation")

	return cmd
}
