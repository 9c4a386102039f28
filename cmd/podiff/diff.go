package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jan-hudec/podiffutils/internal/catalog"
	"github.com/jan-hudec/podiffutils/internal/merge"
	"github.com/jan-hudec/podiffutils/internal/ui"
)

var diffCmd = &cobra.Command{
	Use:   "diff old new",
	Short: "List entries that differ between two catalogs",
	Long: `List entries that differ between two catalogs.

Entries are matched by their context + source id; reordering and cosmetic
changes (locations, comments, flag sets) are not differences. Exits with
status 1 when the catalogs differ, like diff(1).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		old, err := catalog.ParseFile(args[0])
		if err != nil {
			return fmt.Errorf("loading old: %w", err)
		}
		new, err := catalog.ParseFile(args[1])
		if err != nil {
			return fmt.Errorf("loading new: %w", err)
		}

		differ, err := merge.New(merge.FormatPO)
		if err != nil {
			return err
		}
		changes := differ.Diff(old, new)

		useColor := ui.ShouldUseColor()
		for _, c := range changes {
			marker := "~"
			switch c.Kind {
			case merge.ChangeAdded:
				marker = "+"
			case merge.ChangeRemoved:
				marker = "-"
			}
			fmt.Fprintln(os.Stdout, ui.DiffLine(marker, c.Key.Context, c.Key.Source, useColor))
		}

		if len(changes) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
