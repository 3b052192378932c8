package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"firstperson/internal/config"
	"firstperson/internal/game"
	"firstperson/internal/logger"

	"go.uber.org/zap"
)

func main() {
	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	configPath := flag.String("config", "configs/firstperson.yaml", "path to the YAML config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run never exits the process; main owns the exit code.
func run(configPath string) error {
	cfg, found, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	if !found {
		log.Warn("config file not found, using defaults", zap.String("path", configPath))
	}

	g, err := game.New(cfg, log)
	if err != nil {
		log.Error("failed to create game", zap.Error(err))
		return err
	}
	g.Run()
	return nil
}
