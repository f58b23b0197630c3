package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dpaiva/hamburgueria/internal/seedspec"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with categories and starter data",
		Long: `Seed the catalog idempotently: the fixed category set is always
ensured, then the starter items and combos are loaded from a CUE seed file
(or the embedded default). Entries already present are skipped.

Example:
  hamburgueria seed --db ./hamburgueria.db
  hamburgueria seed --db ./hamburgueria.db --file ./seed/catalog.cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "CUE seed file (default: embedded starter catalog)")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	f := formatter(cmd, opts.RootOptions)

	var (
		cat *seedspec.Catalog
		err error
	)
	if opts.File != "" {
		cat, err = seedspec.Load(opts.File)
	} else {
		cat, err = seedspec.Default()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load seed catalog", err)
	}

	st, err := openStore(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	slog.Debug("seeding catalog", "items", len(cat.Items), "combos", len(cat.Combos))
	if err := st.SeedCatalog(cmd.Context(), cat); err != nil {
		return WrapExitError(ExitCommandError, "failed to seed catalog", err)
	}

	return f.Success(map[string]interface{}{
		"items":  len(cat.Items),
		"combos": len(cat.Combos),
	})
}
