package cmd

import (
	"fmt"
	"sort"

	"github.com/filatov87/SEO-BOG/internal/store"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pipeline progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("Pipeline Status\n")
		fmt.Printf("===============\n")
		fmt.Printf("Files converted:     %d\n", s.ConversionCount())
		fmt.Printf("Documents:           %d\n", s.DocumentCount())
		fmt.Printf("Cached completions:  %d\n", s.CompletionCount())
		fmt.Printf("Route maps:          %d\n", s.MapCount())
		if last := s.LastConvertedAt(); last != "" {
			fmt.Printf("Last conversion:     %s\n", last)
		}

		byKind := s.DiagnosticCountByKind()
		if len(byKind) > 0 {
			fmt.Printf("\nDiagnostics\n")
			fmt.Printf("-----------\n")

			var kinds []string
			for k := range byKind {
				kinds = append(kinds, k)
			}
			sort.Strings(kinds)
			for _, k := range kinds {
				fmt.Printf("  %-10s %d\n", k, byKind[k])
			}
		}

		convs, err := s.Conversions()
		if err != nil {
			return err
		}
		if len(convs) > 0 {
			fmt.Printf("\nPer-File Breakdown\n")
			fmt.Printf("------------------\n")
			for _, c := range convs {
				fmt.Printf("  %-32s %-8s rows: %4d  documents: %4d\n", c.SourceFile, c.Dialect, c.RowCount, c.DocumentCount)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
