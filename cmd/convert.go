package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/filatov87/SEO-BOG/internal/content"
	"github.com/filatov87/SEO-BOG/internal/convert"
	"github.com/filatov87/SEO-BOG/internal/store"
	"github.com/spf13/cobra"
)

var (
	convertSource  string
	convertOut     string
	convertDialect string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert content workbooks into JSON content documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("source") {
			convertSource = cfg.Paths.SourceDir
		}
		if !cmd.Flags().Changed("out") {
			convertOut = outputPath("JSON-output")
		}

		var dialect *content.Dialect
		if convertDialect != "auto" {
			d, ok := content.DialectByName(convertDialect)
			if !ok {
				return fmt.Errorf("unknown dialect %q (want auto, english or spanish)", convertDialect)
			}
			dialect = d
		}

		s, err := store.New(dataDir)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		c := &convert.Converter{
			Columns:   cfg.Columns,
			OutDir:    convertOut,
			Delimiter: cfg.Paths.Delimiter(),
			Dialect:   dialect,
			Recorder:  s,
			Progress: func(i, n int, res *convert.FileResult) {
				if res.Err != nil {
					fmt.Printf("  [%d/%d] %s FAILED\n", i, n, res.Conversion.SourceFile)
					warn("%s: %v", res.Conversion.SourceFile, res.Err)
					return
				}
				fmt.Printf("  [%d/%d] %s (%s): %d documents, %d skipped\n", i, n,
					res.Conversion.SourceFile, res.Conversion.Dialect, res.Conversion.DocumentCount, len(res.Diagnostics))
				for _, d := range res.Diagnostics {
					logVerbose("    row %d [%s] %s", d.Row, d.Kind, d.Message)
				}
			},
		}

		fmt.Printf("Converting workbooks in %s -> %s\n", convertSource, convertOut)
		sum, err := c.Run(ctx, convertSource)
		if ctx.Err() != nil {
			fmt.Printf("\nInterrupted after %d files\n", sum.Files)
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Printf("\nDone. %d/%d files converted, %d documents, %d diagnostics\n",
			sum.Converted, sum.Files, sum.Documents, len(sum.Diagnostics))
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertSource, "source", "Source", "Directory of content workbooks (.xlsx, .csv)")
	convertCmd.Flags().StringVar(&convertOut, "out", "", "Output directory for JSON files (default <output_dir>/JSON-output)")
	convertCmd.Flags().StringVar(&convertDialect, "dialect", "auto", "Column dialect: auto, english or spanish")
	rootCmd.AddCommand(convertCmd)
}
