// Command podiff provides diff and 3-way merge for gettext translation
// catalogs. Entries are matched by identity (context + source) instead of
// file position, and cosmetic divergence in comments, locations and flag
// sets never produces a conflict.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jan-hudec/podiffutils/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "podiff",
	Short: "Diff and 3-way merge for translation catalogs",
	Long: `Diff and 3-way merge for translation catalogs.

Entries are matched on id (context + source), ignoring position, so
reordering cannot cause conflicts. Less important parts like location
comments merge as sets. Conflicts are marked msgcat way and flagged fuzzy.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Initialize()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "podiff: %v\n", err)
		os.Exit(1)
	}
}
