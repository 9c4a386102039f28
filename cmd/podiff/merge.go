package main

import (
	"fmt"
	"os"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jan-hudec/podiffutils/internal/catalog"
	"github.com/jan-hudec/podiffutils/internal/config"
	"github.com/jan-hudec/podiffutils/internal/debug"
	"github.com/jan-hudec/podiffutils/internal/merge"
	"github.com/jan-hudec/podiffutils/internal/ui"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] base local remote",
	Short: "3-way merge translation catalogs",
	Long: `3-way merge translation catalogs.

Entries are matched by their context + source id. Content is preserved as
far as possible so that reordering can't cause conflicts. Remaining
conflicts are embedded in the output msgcat way, marked fuzzy, and counted;
by default a non-zero count makes the command exit with status 1.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		update, _ := cmd.Flags().GetBool("update")
		if outPath != "" && update {
			return fmt.Errorf("--out and --update are mutually exclusive")
		}
		if update {
			outPath = args[1]
		}

		noError, _ := cmd.Flags().GetBool("no-error")
		if !cmd.Flags().Changed("no-error") {
			noError = config.GetBool("no-error")
		}
		reportPath, _ := cmd.Flags().GetString("report")
		if reportPath == "" {
			reportPath = config.GetString("report")
		}

		conflicts, err := runMerge(args[0], args[1], args[2], outPath, update, reportPath)
		if err != nil {
			return err
		}

		if ui.IsTerminal() {
			fmt.Fprintln(os.Stderr, ui.MergeSummary(conflicts, ui.ShouldUseColor()))
		}
		if conflicts > 0 && !noError {
			return fmt.Errorf("merge completed with %d conflicts", conflicts)
		}
		return nil
	},
}

func init() {
	mergeCmd.Flags().BoolP("no-error", "n", false, "exit with 0 status even if there are conflicts")
	mergeCmd.Flags().StringP("out", "o", "", "output file (defaults to standard output)")
	mergeCmd.Flags().BoolP("update", "U", false, "write output over local")
	mergeCmd.Flags().String("report", "", "write a YAML merge report to this file")
	rootCmd.AddCommand(mergeCmd)
}

type mergeReport struct {
	Base      string `yaml:"base"`
	Local     string `yaml:"local"`
	Remote    string `yaml:"remote"`
	Conflicts int    `yaml:"conflicts"`
	Units     struct {
		Header   int `yaml:"header"`
		Live     int `yaml:"live"`
		Obsolete int `yaml:"obsolete"`
	} `yaml:"units"`
}

// runMerge loads the three catalogs, merges them and writes the result to
// outPath, or to stdout when outPath is empty. When update is set the output
// overwrites local under a sibling flock so concurrent podiff runs cannot
// interleave writes.
func runMerge(basePath, localPath, remotePath, outPath string, update bool, reportPath string) (int, error) {
	base, err := catalog.ParseFile(basePath)
	if err != nil {
		return 0, fmt.Errorf("loading base: %w", err)
	}
	local, err := catalog.ParseFile(localPath)
	if err != nil {
		return 0, fmt.Errorf("loading local: %w", err)
	}
	remote, err := catalog.ParseFile(remotePath)
	if err != nil {
		return 0, fmt.Errorf("loading remote: %w", err)
	}

	differ, err := merge.New(merge.FormatPO)
	if err != nil {
		return 0, err
	}
	out, conflicts := differ.Merge(base, local, remote)
	text := out.String()

	switch {
	case update:
		lock := flock.New(outPath + ".lock")
		if err := lock.Lock(); err != nil {
			return 0, fmt.Errorf("locking %s: %w", outPath, err)
		}
		defer lock.Unlock()
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return 0, fmt.Errorf("writing output: %w", err)
		}
	case outPath != "":
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			return 0, fmt.Errorf("writing output: %w", err)
		}
	default:
		if _, err := os.Stdout.WriteString(text); err != nil {
			return 0, fmt.Errorf("writing output: %w", err)
		}
	}

	if reportPath != "" {
		if err := writeReport(reportPath, basePath, localPath, remotePath, out, conflicts); err != nil {
			return 0, err
		}
	}

	debug.Logf("merge of %s finished with %d conflicts", localPath, conflicts)
	return conflicts, nil
}

func writeReport(path, basePath, localPath, remotePath string, out *catalog.File, conflicts int) error {
	report := mergeReport{
		Base:      basePath,
		Local:     localPath,
		Remote:    remotePath,
		Conflicts: conflicts,
	}
	for _, u := range out.Units() {
		switch {
		case u.IsHeader():
			report.Units.Header++
		case u.IsObsolete():
			report.Units.Obsolete++
		default:
			report.Units.Live++
		}
	}
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
