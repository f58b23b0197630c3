package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/catalog"
	"github.com/dpaiva/hamburgueria/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Database string
	Verbose  bool
	Format   string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the hamburgueria CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "hamburgueria",
		Short: "Catalog manager for the hamburgueria",
		Long: `Manage the hamburgueria catalog: categories, menu items, and combos.

The catalog lives in a single SQLite file. Combos reference items by name,
and every item rename, re-price, or delete is propagated into combos within
the same transaction.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "hamburgueria.db", "path to SQLite database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewItemCommand(opts))
	cmd.AddCommand(NewComboCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAdminCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// openStore opens the catalog database for a command and ensures the
// category seed is in place.
func openStore(cmd *cobra.Command, opts *RootOptions) (*store.Store, error) {
	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	if err := st.SeedCategories(cmd.Context()); err != nil {
		st.Close()
		return nil, WrapExitError(ExitCommandError, "failed to seed categories", err)
	}
	return st, nil
}

// formatter builds the command's output formatter: results to stdout,
// diagnostics to stderr.
func formatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return NewFormatter(opts.Format, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Verbose)
}

// reportCatalogError renders a catalog error through the formatter and
// returns an ExitError carrying ExitFailure. Non-catalog errors pass
// through unchanged so they surface as command errors.
func reportCatalogError(f *OutputFormatter, err error) error {
	code := catalog.CodeOf(err)
	if code == "" {
		return err
	}
	var details interface{}
	if missing := catalog.MissingItems(err); missing != nil {
		details = map[string]interface{}{"missing": missing}
	}
	if ferr := f.Error(string(code), err.Error(), details); ferr != nil {
		return ferr
	}
	return NewExitError(ExitFailure, err.Error())
}
