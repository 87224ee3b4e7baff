package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/filatov87/SEO-BOG/internal/generator"
	"github.com/filatov87/SEO-BOG/internal/geo"
	"github.com/filatov87/SEO-BOG/internal/logo"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
	"github.com/filatov87/SEO-BOG/internal/store"
	"github.com/spf13/cobra"
)

var (
	mapsInput string
	mapsForce bool
	logoIn    string
	logoOut   string
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Render route maps for city pairs",
}

var mapsStaticCmd = &cobra.Command{
	Use:   "static",
	Short: "Download a static route map image for each city pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachRoute(cmd, outputPath("html_map_png"), ".png", func(ctx context.Context, r route) ([]byte, error) {
			return r.client.Fetch(ctx, geo.StaticMapURL(r.dep, r.dest, geo.StaticMapOptionsFrom(cfg.Maps, r.key)))
		})
	},
}

var mapsHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Write an interactive HTML route map for each city pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		return eachRoute(cmd, outputPath("html_map"), ".html", func(ctx context.Context, r route) ([]byte, error) {
			var buf bytes.Buffer
			err := geo.RenderHTMLMap(&buf, geo.HTMLMap{
				Departure:   r.pair.DepartureCity,
				Destination: r.pair.DestinationCity,
				From:        r.dep,
				To:          r.dest,
				APIKey:      r.key,
				Language:    cfg.Maps.Language,
				Size:        cfg.Maps.Size,
			})
			return buf.Bytes(), err
		})
	},
}

var mapsLogoCmd = &cobra.Command{
	Use:   "logo",
	Short: "Stamp the logo onto rendered map images",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("in") {
			logoIn = outputPath("html_map_png")
		}
		if !cmd.Flags().Changed("out") {
			logoOut = outputPath("static_map_png_with_logo")
		}

		mark, err := imaging.Open(cfg.Logo.Path)
		if err != nil {
			return fmt.Errorf("opening logo: %w", err)
		}

		rep, err := logo.ProcessDir(logoIn, logoOut, mark, logo.OptionsFrom(cfg.Logo))
		if err != nil {
			return err
		}
		for _, path := range rep.Written {
			fmt.Printf("  %s\n", path)
		}
		for name, err := range rep.Failed {
			warn("%s: %v", name, err)
		}
		fmt.Printf("\nDone. %d images stamped, %d failed\n", len(rep.Written), len(rep.Failed))
		return nil
	},
}

type route struct {
	pair      model.CityPair
	dep, dest model.Coordinate
	key       string
	client    *geo.MapClient
}

// eachRoute geocodes every city pair and writes render's output to
// <dir>/<dep>_<dest>_map_<ddmm><ext>. Failures are reported per pair.
func eachRoute(cmd *cobra.Command, dir, ext string, render func(context.Context, route) ([]byte, error)) error {
	if !cmd.Flags().Changed("input") {
		mapsInput = cfg.Paths.CityPairs
	}
	tbl, err := sheet.ReadFile(mapsInput, sheet.ReadOptions{Delimiter: cfg.Paths.Delimiter()})
	if err != nil {
		return fmt.Errorf("reading %s: %w", mapsInput, err)
	}
	pairs, err := generator.ReadRoutes(tbl)
	if err != nil {
		return fmt.Errorf("reading routes from %s: %w", tbl.Name, err)
	}

	geocoder, err := geo.NewGeocoder(cfg.Maps)
	if err != nil {
		return err
	}
	client := geo.NewMapClient(cfg.Maps)

	s, err := store.New(dataDir)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var written, failed int
	for i, p := range pairs {
		select {
		case <-ctx.Done():
			fmt.Printf("\nInterrupted after %d/%d routes\n", i, len(pairs))
			return nil
		default:
		}

		name := geo.RouteName(p.DepartureCity, p.DestinationCity)
		if ext == ".png" && !mapsForce && s.MapExists(name) {
			logVerbose("  skipping %s (already rendered)", name)
			continue
		}

		fmt.Printf("  [%d/%d] %s -> %s...", i+1, len(pairs), p.DepartureCity, p.DestinationCity)

		dep, dest, err := geocoder.Locate(ctx, p)
		if err != nil {
			fmt.Fprintf(os.Stderr, " ERROR: %v\n", err)
			failed++
			continue
		}

		data, err := render(ctx, route{pair: p, dep: dep, dest: dest, key: geocoder.APIKey, client: client})
		if err != nil {
			fmt.Fprintf(os.Stderr, " ERROR: %v\n", err)
			failed++
			continue
		}

		now := time.Now()
		path := filepath.Join(dir, geo.FileName(p.DepartureCity, p.DestinationCity, now, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if ext == ".png" {
			m := model.RouteMap{
				Route:       name,
				Departure:   dep,
				Destination: dest,
				ImagePath:   path,
				RenderedAt:  now.UTC().Format(time.RFC3339),
			}
			if err := s.RecordMap(m); err != nil {
				return fmt.Errorf("recording map: %w", err)
			}
		}
		written++
		fmt.Printf(" %s\n", filepath.Base(path))
	}

	fmt.Printf("\nDone. %d maps written, %d failed\n", written, failed)
	return nil
}

func init() {
	mapsCmd.PersistentFlags().StringVar(&mapsInput, "input", "", "City pairs CSV/XLSX (default from [paths] config)")
	mapsStaticCmd.Flags().BoolVar(&mapsForce, "force", false, "Re-render routes already in the ledger")
	mapsLogoCmd.Flags().StringVar(&logoIn, "in", "", "Directory of map images (default <output_dir>/html_map_png)")
	mapsLogoCmd.Flags().StringVar(&logoOut, "out", "", "Output directory (default <output_dir>/static_map_png_with_logo)")

	mapsCmd.AddCommand(mapsStaticCmd, mapsHTMLCmd, mapsLogoCmd)
	rootCmd.AddCommand(mapsCmd)
}
