package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/rewired-gh/linkedlens/internal/analysis"
	"github.com/rewired-gh/linkedlens/internal/loader"
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Show which export files are present",
	Long: `Check the data directory for the files of a LinkedIn export.

Examples:
  linkedlens files                  # Presence table
  linkedlens files -d ~/Downloads/Basic_LinkedInDataExport
  linkedlens files --json           # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runFiles,
}

var kindsCmd = &cobra.Command{
	Use:     "kinds",
	Aliases: []string{"ls"},
	Short:   "List available analyses",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		p.Header("Available analyses")
		p.Kinds()
		p.Print("\nRun %s to execute all of them.", p.Bold("linkedlens analyze "+analysis.KindAll))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(kindsCmd)

	filesCmd.Flags().Bool("json", false, "output as JSON")
}

func runFiles(cmd *cobra.Command, args []string) error {
	files := loader.DetectFiles(cfg.Data.Dir)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}

	p := newPrinter(cmd)
	p.Header("Export files in " + cfg.Data.Dir)
	p.Files(files)
	return nil
}
