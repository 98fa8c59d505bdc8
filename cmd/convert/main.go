package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"fitcsv/config"
	"fitcsv/logger"
	"fitcsv/pipeline"
)

func main() {
	var (
		format   = flag.String("format", "", "Output table format: csv|parquet (default from config)")
		cfgPath  = flag.String("config", "", "Optional YAML config file")
		logLevel = flag.String("log-level", "", "Override log level")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input.fit> <output-prefix>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	log, err := logger.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}

	result, err := pipeline.Run(pipeline.Options{
		FitPath:   flag.Arg(0),
		OutPrefix: flag.Arg(1),
		Format:    cfg.Output.Format,
		Logger:    log,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "convert failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("convert complete\n")
	fmt.Printf("records: %s\n", result.RecordsPath)
	fmt.Printf("laps:    %s\n", result.LapsPath)
}
