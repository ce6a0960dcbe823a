// Command docrank extracts heading outlines from documents and ranks
// document sections for a persona and task.
//
// Usage:
//
//	docrank outline <file>              print a document's outline as JSON
//	docrank collections <dir> [dir...]  process collection directories
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/docrank"
	"github.com/tsawler/docrank/collection"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch args[0] {
	case "outline":
		err = runOutline(ctx, args[1])
	case "collections":
		err = runCollections(ctx, args[1:], logger)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("docrank failed", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage:
  docrank [-v] outline <file>
  docrank [-v] collections <dir> [dir...]

A collection directory holds an input.json plus a documents/ subdirectory.
`)
}

func runOutline(ctx context.Context, path string) error {
	outline, warnings, err := docrank.Open(path).WithContext(ctx).Outline()
	if err != nil {
		return err
	}
	if len(warnings) > 0 {
		slog.Warn("outline warnings", "warnings", docrank.FormatWarnings(warnings))
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outline)
}

func runCollections(ctx context.Context, dirs []string, logger *slog.Logger) error {
	config := collection.DefaultProcessorConfig()
	config.Logger = logger
	summary := collection.NewProcessorWithConfig(config).Run(ctx, dirs)

	logger.Info("batch summary",
		"collections", summary.Collections,
		"failed", summary.CollectionErrors,
		"documents", summary.Documents,
		"failed_documents", summary.DocumentErrors,
		"sections", summary.SectionsExtracted)

	if summary.CollectionErrors == summary.Collections && summary.Collections > 0 {
		return fmt.Errorf("all %d collections failed", summary.Collections)
	}
	return nil
}
