package main

import (
	"context"
	"flag"
	"log"
	"os"

	"RosterPulse/internal/di"
	"RosterPulse/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	batch := flag.Bool("batch", false, "run one batch refresh and exit")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s leagues=%d directory_backend=%s", cfg.Environment, len(cfg.Leagues), cfg.Directory.Backend)

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if *batch {
		if err := app.RunOnce(context.Background()); err != nil {
			log.Printf("batch refresh error: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
