package main

import (
	"context"
	"fmt"
	"log"
	"os"

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

// printBuildInfo prints the build version, date, and commit hash to stderr
// so that stdout carries only the template document.
func printBuildInfo() {
	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}

func main() {
	printBuildInfo()

	cfg, err := parseFlags()
	if err != nil {
		log.Fatal(err)
	}

	l, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync()

	if err := apps.RunConverter(context.Background(), cfg, l, os.Stdout); err != nil {
		l.Error("conversion failed", zap.Error(err))
		l.Sync()
		os.Exit(1)
	}
}
