package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/filatov87/SEO-BOG/internal/completion"
	"github.com/filatov87/SEO-BOG/internal/generator"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
	"github.com/filatov87/SEO-BOG/internal/store"
	"github.com/spf13/cobra"
)

var (
	generateInput     string
	generateModel     string
	generateLimit     int
	generateTranslate bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft travel copy with a chat completion API",
}

var generateSEOCmd = &cobra.Command{
	Use:   "seo",
	Short: "Generate SEO article sections and an FAQ for each city pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := readInput(cmd, cfg.Paths.CityPairs)
		if err != nil {
			return err
		}
		pairs, err := generator.ReadCityPairs(tbl)
		if err != nil {
			return fmt.Errorf("reading city pairs from %s: %w", tbl.Name, err)
		}
		return runGenerator(len(limitPairs(pairs)), "Content_table", func(ctx context.Context, g *generator.Generator, out string) (generator.Result, error) {
			return g.SEO(ctx, limitPairs(pairs), out)
		})
	},
}

var generatePromoCmd = &cobra.Command{
	Use:   "promo",
	Short: "Generate a short promotional text for each route",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := readInput(cmd, cfg.Paths.CityPairs)
		if err != nil {
			return err
		}
		pairs, err := generator.ReadRoutes(tbl)
		if err != nil {
			return fmt.Errorf("reading routes from %s: %w", tbl.Name, err)
		}
		return runGenerator(len(limitPairs(pairs)), "Promo_pairs", func(ctx context.Context, g *generator.Generator, out string) (generator.Result, error) {
			return g.Promo(ctx, limitPairs(pairs), out)
		})
	},
}

var generateDestinationsCmd = &cobra.Command{
	Use:   "destinations",
	Short: "Answer destination questions for each city, optionally with a Spanish sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := readInput(cmd, cfg.Paths.Cities)
		if err != nil {
			return err
		}
		cities, err := generator.ReadCities(tbl)
		if err != nil {
			return fmt.Errorf("reading cities from %s: %w", tbl.Name, err)
		}
		if generateLimit > 0 && len(cities) > generateLimit {
			cities = cities[:generateLimit]
		}
		return runGenerator(len(cities), "Destinations", func(ctx context.Context, g *generator.Generator, out string) (generator.Result, error) {
			return g.Destinations(ctx, cities, out, generateTranslate)
		})
	},
}

func readInput(cmd *cobra.Command, fallback string) (*sheet.Table, error) {
	if !cmd.Flags().Changed("input") {
		generateInput = fallback
	}
	tbl, err := sheet.ReadFile(generateInput, sheet.ReadOptions{Delimiter: cfg.Paths.Delimiter()})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", generateInput, err)
	}
	return tbl, nil
}

func limitPairs(pairs []model.CityPair) []model.CityPair {
	if generateLimit > 0 && len(pairs) > generateLimit {
		return pairs[:generateLimit]
	}
	return pairs
}

func runGenerator(n int, prefix string, run func(context.Context, *generator.Generator, string) (generator.Result, error)) error {
	if n == 0 {
		fmt.Println("Nothing to generate: input has no rows.")
		return nil
	}

	settings := cfg.Completion
	if generateModel != "" {
		settings.Model = generateModel
	}

	client, err := completion.NewClient(settings)
	if err != nil {
		return err
	}

	s, err := store.New(dataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g := &generator.Generator{
		Client:   client,
		Cache:    s,
		Settings: settings,
		Warn:     warn,
		Progress: func(i, n int, label string) {
			fmt.Printf("  [%d/%d] %s\n", i, n, label)
		},
	}

	out := generator.OutputPath(outputPath("Generated"), prefix, time.Now())
	fmt.Printf("Generating %d rows using %s...\n", n, settings.Model)

	res, err := run(ctx, g, out)
	if ctx.Err() != nil {
		fmt.Printf("\nInterrupted after %d/%d rows; answers so far are cached\n", res.Rows, n)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nDone. Wrote %s (%d rows, %d answers, %d failed)\n", res.Path, res.Rows, res.Answers, res.Failures)
	return nil
}

func init() {
	generateCmd.PersistentFlags().StringVar(&generateInput, "input", "", "Input CSV/XLSX (default from [paths] config)")
	generateCmd.PersistentFlags().StringVar(&generateModel, "model", "", "Chat model (default from [completion] config)")
	generateCmd.PersistentFlags().IntVar(&generateLimit, "limit", 0, "Only process the first N rows (0 = all)")
	generateDestinationsCmd.Flags().BoolVar(&generateTranslate, "translate", false, "Add a SPANISH TXT sheet with translated answers")

	generateCmd.AddCommand(generateSEOCmd, generatePromoCmd, generateDestinationsCmd)
	rootCmd.AddCommand(generateCmd)
}
