// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfraster CLI.
//
// pdfraster converts each page of a PDF into a JPEG file and prints exactly
// one JSON status object on stdout: {"success": true, "pages": [...]} on
// success, {"error": "..."} on any failure. The exit code is 0 only when
// every page converted.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfraster/internal/convert"
	"github.com/pdiddy/pdfraster/internal/history"
	"github.com/pdiddy/pdfraster/internal/render"
	"github.com/pdiddy/pdfraster/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd performs the conversion itself: two positional arguments, no
// conversion flags. Errors are silenced here so main can flatten every
// failure into the single JSON error object.
var rootCmd = &cobra.Command{
	Use:   "pdfraster <pdf_path> <output_dir>",
	Short: "Rasterize PDF pages to JPEG files",
	Long: `pdfraster converts each page of a PDF document into a JPEG image
named page_<N>.jpg inside the output directory, creating the directory if
needed. Pages render at 2.0x zoom by default through the built-in MuPDF
engine; scale, quality, and engine are configurable via pdfraster.yaml or
PDFRASTER_* environment variables.

The outcome is reported as a single JSON object on stdout.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

// newEngine builds the configured engine; tests substitute a fake.
var newEngine = render.NewEngine

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("Usage: pdfraster <pdf_path> <output_dir>")
	}

	cfg := loadConfig()
	eng, err := newEngine(cfg.Render)
	if err != nil {
		return err
	}

	req := types.ConversionRequest{SourcePath: args[0], OutputDir: args[1]}
	started := time.Now()
	pages, convErr := convert.Run(eng, req, cfg.Render.Quality)

	recordRun(cfg.History, eng.Name(), req, len(pages), convErr, started)

	if convErr != nil {
		return convErr
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(types.ConversionResult{
		Success: true,
		Pages:   pages,
	})
}

// recordRun appends the invocation to the history log when one is
// configured. Logging problems warn on stderr and never change the
// conversion outcome.
func recordRun(cfg types.HistoryConfig, engine string, req types.ConversionRequest, pages int, convErr error, started time.Time) {
	if cfg.Path == "" {
		return
	}

	store, err := history.Open(cfg.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history log: %v\n", err)
		return
	}
	defer store.Close()

	run := history.Run{
		SourcePath: req.SourcePath,
		OutputDir:  req.OutputDir,
		Engine:     engine,
		Pages:      pages,
		Status:     history.StatusSuccess,
		StartedAt:  started,
		DurationMS: time.Since(started).Milliseconds(),
	}
	if convErr != nil {
		run.Status = history.StatusFailed
		run.Error = convErr.Error()
	}

	if err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdfraster.yaml or ~/.config/pdfraster/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdfraster")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdfraster"))
		}
	}

	viper.SetDefault("render.engine", types.EngineFitz)
	viper.SetDefault("render.scale", types.DefaultScale)
	viper.SetDefault("render.quality", types.DefaultQuality)
	viper.SetDefault("history.path", "")

	viper.SetEnvPrefix("PDFRASTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the viper state into a Config.
func loadConfig() types.Config {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "warning: invalid configuration: %v\n", err)
		return types.Config{Render: types.RenderConfig{
			Engine:  types.EngineFitz,
			Scale:   types.DefaultScale,
			Quality: types.DefaultQuality,
		}}
	}
	return cfg
}

// writeError prints the single JSON failure object every error path
// flattens into.
func writeError(w io.Writer, err error) {
	json.NewEncoder(w).Encode(types.ConversionError{Message: err.Error()})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		writeError(os.Stdout, err)
		os.Exit(1)
	}
}
