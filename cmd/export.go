package cmd

import (
	"fmt"

	"github.com/filatov87/SEO-BOG/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportSource string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render converted JSON documents as markdown pages with front matter",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("source") {
			exportSource = outputPath("JSON-output")
		}
		if !cmd.Flags().Changed("out") {
			exportOut = outputPath("markdown")
		}

		rep, err := export.Run(exportSource, exportOut)
		if err != nil {
			return err
		}
		for name, err := range rep.Failed {
			warn("%s: %v", name, err)
		}
		fmt.Printf("Done. %d pages from %d files written to %s\n", rep.Pages, rep.Files, exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportSource, "source", "", "Directory of converted JSON files (default <output_dir>/JSON-output)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output directory (default <output_dir>/markdown)")
	rootCmd.AddCommand(exportCmd)
}
