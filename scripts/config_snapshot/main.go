// Package main prints or writes the effective configuration with secrets
// masked. Useful for checking what a deployment will actually run with.
//
//	go run ./scripts/config_snapshot            # print to stdout
//	go run ./scripts/config_snapshot production # write config/config.production.yaml
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/devfolio/portfolio-backend/config"
	"github.com/devfolio/portfolio-backend/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using the process environment only")
	}

	logger.InitLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	data, err := cfg.SnapshotYAML()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) < 2 {
		fmt.Print(string(data))
		return
	}

	if err := os.MkdirAll("config", 0o755); err != nil {
		fmt.Printf("Error creating config directory: %v\n", err)
		os.Exit(1)
	}
	filename := filepath.Join("config", fmt.Sprintf("config.%s.yaml", os.Args[1]))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		fmt.Printf("Error writing config file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully generated %s\n", filename)
}
