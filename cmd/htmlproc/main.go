package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"htmlproc/internal/app"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		outputDir   string
		mode        string
		configPath  string
		extractMain bool
		verbose     bool
	)

	flag.StringVar(&outputDir, "out", "", "Output directory (default from OUTPUT_DIR or \"componetes\")")
	flag.StringVar(&mode, "mode", "", "Serialization mode: readable or minify (default readable)")
	flag.StringVar(&configPath, "config", "", "Optional YAML/JSON config file")
	flag.BoolVar(&extractMain, "extract-main", false, "Isolate the main content region before cleanup")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.html>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	// Precedence: defaults < config file < env < flags.
	cfg := app.Default()
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvToConfig(&cfg)
	cfg.InputPath = flag.Arg(0)
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if mode != "" {
		cfg.Mode = mode
	}
	if extractMain {
		cfg.ExtractMain = true
	}
	if verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	manifest, err := app.New(cfg).Run(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}

	log.Info().Str("dir", cfg.OutputDir).Msg("output written")
	log.Info().Str("html", manifest.HTMLFile).Str("css", manifest.CSSFile).Str("images", manifest.ImagesDir).Msg("artifacts")
}
