// Package cli implements the carta command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app carries the state shared by one invocation of the command tree.
type app struct {
	flags rootFlags
}

// NewRootCmd creates the top-level "carta" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "carta",
		Short: "A catalog of restaurants and the dishes they offer",
		Long:  "Carta manages dishes, restaurants, and the dish set each restaurant offers,\nfrom the command line or over HTTP.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: .carta-db)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newServeCmd())
	root.AddCommand(a.newDishCmd())
	root.AddCommand(a.newRestaurantCmd())
	root.AddCommand(a.newMenuCmd())

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return run(NewRootCmd(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "carta:", err)
		return exitCode(err)
	}
	return exitSuccess
}
