// Package main is the entry point for RotaVan.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rotavan/rotavan/bootstrap"
	"github.com/rotavan/rotavan/config"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "rotavan.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	validate := flag.Bool("validate", false, "Validate configuration and exit")
	hotReload := flag.Bool("hot-reload", true, "Enable hot reload of configuration")
	flag.Parse()

	if *showVersion {
		fmt.Printf("rotavan %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	if *validate {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Configuration invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration valid\n")
		fmt.Printf("  Listen: %s:%d\n", cfg.Server.Host, cfg.Server.Port)
		fmt.Printf("  Database: %s\n", cfg.Database.Path)
		os.Exit(0)
	}

	var app *bootstrap.App
	var err error

	if *hotReload {
		if _, statErr := os.Stat(*configPath); statErr == nil {
			app, err = bootstrap.NewWithHotReload(*configPath)
		} else {
			// No file to watch; fall back to env and defaults.
			var cfg *config.Config
			cfg, err = config.LoadFromEnv()
			if err == nil {
				app, err = bootstrap.New(cfg)
			}
		}
	} else {
		var cfg *config.Config
		cfg, err = config.LoadWithFallback(*configPath)
		if err == nil {
			app, err = bootstrap.New(cfg)
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
