package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/carta/internal/paths"
)

func (a *app) newInitCmd() *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize carta storage",
		Long:  "Create the configuration directory and config.yaml, then initialize the storage backend.\nWith --seed, an empty catalog is filled with sample dishes and a restaurant.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "insert sample data into an empty catalog")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, seed bool) (err error) {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError{fmt.Errorf("resolving config dir: %w", err)}
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return systemError{fmt.Errorf("create config directory: %w", err)}
	}

	// Record the data dir only when given explicitly, so the default stays
	// relative to where carta runs.
	var cfg configFile
	cfg.Backend = defaultBackend
	if a.flags.dataDir != "" {
		if cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, ""); err != nil {
			return systemError{err}
		}
	}
	created, err := writeConfigIfMissing(paths.ConfigFile(configDir), cfg)
	if err != nil {
		return systemError{fmt.Errorf("write config: %w", err)}
	}

	sess, err := a.open(quietLogMode)
	if err != nil {
		return err
	}
	defer sess.close(&err)

	out := cmd.OutOrStdout()
	if created {
		fmt.Fprintf(out, "Wrote %s\n", paths.ConfigFile(configDir))
	}
	if seed {
		restaurant, err := sess.catalog.Seed(cmd.Context())
		if err != nil {
			return managerError(err)
		}
		if restaurant == nil {
			fmt.Fprintln(out, "Catalog is not empty; seed skipped")
		} else {
			fmt.Fprintf(out, "Seeded %s with %d dishes\n", restaurant.Name, len(restaurant.Dishes))
		}
	}
	fmt.Fprintf(out, "Carta initialized (%s backend)\n", sess.settings.Store.Backend)
	return nil
}
