package main

import (
	"context"
	"fmt"
	"log"

	"github.com/sbilibin2017/prometheus2zabbix/internal/apps"
	"github.com/sbilibin2017/prometheus2zabbix/internal/logger"
	"go.uber.org/zap"
)

// Build information variables.
// These are set during build time via ldflags.
var (
	buildVersion string = "N/A"
	buildDate    string = "N/A"
	buildCommit  string = "N/A"
)

// printBuildInfo prints the build version, date, and commit hash to stdout.
func printBuildInfo() {
	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

// Application entry point.
func main() {
	printBuildInfo()

	cfg, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg.Converter.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	if err := apps.RunServer(context.Background(), cfg, l); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
}
