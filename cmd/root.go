package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configPath string
	envFile    string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "seo-bog",
	Short: "Turn travel spreadsheets into content JSON, generated copy and route maps",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.Data.Dir
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for the run ledger and completion cache")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File with API keys to load into the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  WARNING: "+format+"\n", args...)
}

// outputPath resolves a directory under the configured output root.
func outputPath(parts ...string) string {
	return filepath.Join(append([]string{cfg.Paths.OutputDir}, parts...)...)
}
