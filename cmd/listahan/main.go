// Package main is the Listahan CLI entry point.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/listahan/listahan/internal/cli"
	"github.com/listahan/listahan/internal/config"
	"github.com/listahan/listahan/internal/export"
	"github.com/listahan/listahan/internal/extract"
	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/internal/server"
	"github.com/listahan/listahan/internal/table"
	"github.com/listahan/listahan/internal/watcher"
	"github.com/listahan/listahan/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/listahan/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); a missing
// default file is not an error — built-in defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				return config.Load(fallback)
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			cfg := &config.Config{}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
	}
	return config.Load(path)
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "extract":
		runExtract()
	case "export":
		runExport()
	case "watch":
		runWatch()
	case "version", "--version", "-v":
		fmt.Printf("listahan version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newService builds the extraction service from config.
func newService(cfg *config.Config, logger *zap.Logger) (*extract.Service, error) {
	aliases, err := cfg.Aliases()
	if err != nil {
		return nil, err
	}
	return extract.NewService(aliases, table.DefaultConfig(),
		extract.WithLogger(logger),
		extract.WithWorkers(cfg.Extract.MaxWorkers),
	), nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	service, err := newService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize extractor", zap.Error(err))
	}

	srv := server.NewServer(service, &cfg.Server, &cfg.Export, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

// readInputs loads the named files into extraction inputs. Unreadable paths
// become inputs with empty content so the extractor reports them per file
// instead of aborting the batch.
func readInputs(paths []string) []extract.Input {
	inputs := make([]extract.Input, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot read %s: %v\n", p, err)
			content = nil
		}
		inputs = append(inputs, extract.Input{Content: content, Filename: filepath.Base(p)})
	}
	return inputs
}

func runExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: listahan extract [flags] <file.pdf ...>")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	service, err := newService(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize extractor: %v\n", err)
		os.Exit(1)
	}

	format, err := cli.ParseOutputFormat(*outputFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	batch, err := service.ExtractBatch(context.Background(), readInputs(fs.Args()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction cancelled: %v\n", err)
		os.Exit(1)
	}

	if err := cli.WriteBatchResults(os.Stdout, batch, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runExport() {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	out := fs.String("out", "attendance_export.xlsx", "output workbook path")
	email := fs.String("email", "", "default Email for every row")
	beneficiary := fs.String("beneficiary", "", "default Beneficiary for every row")
	ageRange := fs.String("age-range", "", "default Age Range for every row")
	affiliationType := fs.String("affiliation-type", "", "default Affiliation Type for every row")
	affiliationName := fs.String("affiliation-name", "", "default Affiliation Name for every row")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: listahan export [flags] <file.pdf ...>")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	service, err := newService(cfg, logger)
	if err != nil {
		fmt.Printf("Failed to initialize extractor: %v\n", err)
		os.Exit(1)
	}

	batch, err := service.ExtractBatch(context.Background(), readInputs(fs.Args()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction cancelled: %v\n", err)
		os.Exit(1)
	}

	defaults := models.ExportDefaults{
		Email:           *email,
		Beneficiary:     *beneficiary,
		AgeRange:        *ageRange,
		AffiliationType: *affiliationType,
		AffiliationName: *affiliationName,
	}
	buf, err := exportWorkbook(batch, defaults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, buf, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d student(s) from %d file(s) to %s\n", batch.TotalStudents, len(batch.Files), *out)
}

func exportWorkbook(batch *models.BatchResult, defaults models.ExportDefaults) ([]byte, error) {
	buf, err := export.WriteWorkbook(batch.Files, defaults)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func runWatch() {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	dirs := cfg.Watch.Directories
	if fs.NArg() > 0 {
		dirs = fs.Args()
	}
	if len(dirs) == 0 {
		fmt.Println("Usage: listahan watch [flags] <directory ...> (or set watch.directories in config)")
		os.Exit(1)
	}

	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	service, err := newService(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize extractor", zap.Error(err))
	}

	ingestor := watcher.NewIngestor(service, cfg.Watch.OutputPath, models.ExportDefaults{}, logger)
	w := watcher.NewWatcher(dirs, ingestor.IngestFile, watcher.WithLogger(logger))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	logger.Info("watching for roster PDFs",
		zap.Strings("directories", dirs),
		zap.String("output", cfg.Watch.OutputPath),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	w.Stop()
}

func printUsage() {
	fmt.Println(`listahan - attendance roster PDF extractor

Usage:
  listahan server [flags]              Start the HTTP API
  listahan extract [flags] <pdf ...>   Extract student records to stdout
  listahan export [flags] <pdf ...>    Extract and write an .xlsx workbook
  listahan watch [flags] [dir ...]     Ingest PDFs dropped into directories
  listahan version                     Show version
  listahan help                        Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/listahan/config.yaml)
  --debug            Enable debug logging

Extract Flags:
  --config string    Config file path
  --output string    Output format: text or json (default: text)

Export Flags:
  --config string             Config file path
  --out string                Output workbook path (default: attendance_export.xlsx)
  --email string              Default Email column value
  --beneficiary string        Default Beneficiary column value
  --age-range string          Default Age Range column value
  --affiliation-type string   Default Affiliation Type column value
  --affiliation-name string   Default Affiliation Name column value

Watch Flags:
  --config string    Config file path (watch.directories, watch.output_path)
  --debug            Enable debug logging

Examples:
  listahan server
  listahan extract roster1.pdf roster2.pdf
  listahan extract --output json roster.pdf
  listahan export --email team@example.org --beneficiary Youth roster.pdf
  listahan watch ~/Dropbox/rosters`)
}
