package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tsawler/docrank"
	"github.com/tsawler/docrank/profile"
	"github.com/tsawler/docrank/relevance"
)

// ProcessorConfig configures batch collection processing.
type ProcessorConfig struct {
	// Workers bounds how many documents are analyzed concurrently.
	// Documents share no mutable state, so the bound exists only to
	// limit I/O and memory pressure. Default: 4.
	Workers int

	// InputFileName and OutputFileName are the per-collection file names
	// used by ProcessDir and Run.
	InputFileName  string
	OutputFileName string

	// DocumentsSubdir is the directory under a collection holding its
	// documents.
	DocumentsSubdir string

	// Diversifier overrides the selection configuration.
	Diversifier *relevance.DiversifierConfig

	// Logger receives progress and failure logs. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultProcessorConfig returns the default batch configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Workers:         4,
		InputFileName:   "input.json",
		OutputFileName:  "output.json",
		DocumentsSubdir: "documents",
	}
}

// Summary aggregates the outcome of a batch run. One failing document or
// collection never stops the rest.
type Summary struct {
	Collections      int
	CollectionErrors int

	// Documents counts documents actually analyzed; DocumentErrors counts
	// listed documents that were missing or failed to extract.
	Documents         int
	DocumentErrors    int
	SectionsExtracted int
}

// Processor runs the persona-driven pipeline over document collections.
type Processor struct {
	config ProcessorConfig
	logger *slog.Logger
}

// NewProcessor creates a processor with default configuration.
func NewProcessor() *Processor {
	return NewProcessorWithConfig(DefaultProcessorConfig())
}

// NewProcessorWithConfig creates a processor with custom configuration.
func NewProcessorWithConfig(config ProcessorConfig) *Processor {
	if config.Workers < 1 {
		config.Workers = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{config: config, logger: logger}
}

// Process analyzes every document of one collection and returns the
// diversified section ranking plus the number of documents that could not
// be analyzed. Documents are analyzed concurrently; missing or unreadable
// documents are logged, counted, and skipped.
func (p *Processor) Process(ctx context.Context, input Input, docDir string) (Output, int, error) {
	personaProfile := profile.NewPersonaParser().Parse(input.Persona)
	jobProfile := profile.NewJobParser().Parse(input.Job)

	p.logger.Info("processing collection",
		"role", personaProfile.Role,
		"output_type", jobProfile.ExpectedOutputType,
		"documents", len(input.Documents))

	type result struct {
		sections []relevance.RelevantSection
		failed   bool
	}

	results := make([]result, len(input.Documents))
	sem := make(chan struct{}, p.config.Workers)
	var wg sync.WaitGroup

	for i, name := range input.Documents {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			path := filepath.Join(docDir, name)
			if _, err := os.Stat(path); err != nil {
				p.logger.Warn("document not found", "document", name)
				results[i] = result{failed: true}
				return
			}

			sections, warnings, err := docrank.Open(path).
				WithContext(ctx).
				SectionsForProfiles(personaProfile, jobProfile)
			if err != nil {
				p.logger.Warn("document failed", "document", name, "error", err)
				results[i] = result{failed: true}
				return
			}
			if len(warnings) > 0 {
				p.logger.Debug("document warnings", "document", name, "warnings", docrank.FormatWarnings(warnings))
			}
			for j := range sections {
				sections[j].Document = name
			}
			results[i] = result{sections: sections}
		}(i, name)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Output{}, 0, err
	}

	failed := 0
	var pool []relevance.RelevantSection
	for _, r := range results {
		if r.failed {
			failed++
			continue
		}
		pool = append(pool, r.sections...)
	}

	diversifier := relevance.NewDiversifier()
	if p.config.Diversifier != nil {
		diversifier = relevance.NewDiversifierWithConfig(*p.config.Diversifier)
	}
	selected := diversifier.Select(pool)

	p.logger.Info("collection done",
		"pool", len(pool), "selected", len(selected), "failed_documents", failed)
	return BuildOutput(input, selected, time.Now()), failed, nil
}

// ProcessDir processes one collection directory laid out as
// <dir>/<InputFileName> plus <dir>/<DocumentsSubdir>/, writing the result
// to <dir>/<OutputFileName>. The int is the per-document failure count.
func (p *Processor) ProcessDir(ctx context.Context, dir string) (Output, int, error) {
	data, err := os.ReadFile(filepath.Join(dir, p.config.InputFileName))
	if err != nil {
		return Output{}, 0, fmt.Errorf("read collection input: %w", err)
	}
	input, err := ParseInput(data)
	if err != nil {
		return Output{}, 0, err
	}

	out, failed, err := p.Process(ctx, input, filepath.Join(dir, p.config.DocumentsSubdir))
	if err != nil {
		return Output{}, failed, err
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Output{}, failed, err
	}
	if err := os.WriteFile(filepath.Join(dir, p.config.OutputFileName), encoded, 0o644); err != nil {
		return Output{}, failed, fmt.Errorf("write collection output: %w", err)
	}
	return out, failed, nil
}

// Run processes several collection directories, aggregating failures into
// a summary rather than aborting the batch.
func (p *Processor) Run(ctx context.Context, dirs []string) Summary {
	var summary Summary
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("batch cancelled", "error", err)
			break
		}
		summary.Collections++
		out, failed, err := p.ProcessDir(ctx, dir)
		summary.DocumentErrors += failed
		if err != nil {
			summary.CollectionErrors++
			p.logger.Error("collection failed", "dir", dir, "error", err)
			continue
		}
		summary.Documents += len(out.Metadata.InputDocuments) - failed
		summary.SectionsExtracted += len(out.ExtractedSections)
	}
	return summary
}
