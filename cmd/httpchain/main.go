package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"httpchain/internal/app"
	"httpchain/internal/config"
	"httpchain/internal/logging"
)

// main starts the MCP server on stdio. Configuration is optional; without
// a -config flag the built-in defaults apply.
func main() {
	configFile := flag.String("config", "", "YAML configuration file (optional)")
	logLevelStr := flag.String("loglevel", "", "Logging level (none, error, warn, info, debug); overrides config")
	reportsDir := flag.String("reports", "", "Directory for rendered session reports; overrides config")
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Printf("[ERROR] Error loading configuration '%s': %v", *configFile, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *logLevelStr != "" {
		cfg.Logging.Level = *logLevelStr
	}
	if *reportsDir != "" {
		cfg.Reports.OutputDir = *reportsDir
	}
	logging.SetupLogging(cfg.Logging.Level)

	a := app.NewApp(cfg)
	server := a.NewServer(cfg.Server.Name, cfg.Server.Version)

	logging.Logf(logging.Info, "Starting %s %s on stdio", cfg.Server.Name, cfg.Server.Version)
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Printf("[ERROR] Server terminated: %v", err)
		os.Exit(1)
	}
}
