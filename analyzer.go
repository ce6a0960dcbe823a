package docrank

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/tsawler/docrank/headings"
	"github.com/tsawler/docrank/model"
	"github.com/tsawler/docrank/profile"
	"github.com/tsawler/docrank/relevance"
	"github.com/tsawler/docrank/source"
)

// Analyzer provides a fluent interface for analyzing one document. Each
// configuration method returns a new Analyzer instance, making it safe
// for concurrent use and allowing method chaining.
type Analyzer struct {
	// Source
	filename string
	src      source.Source
	doc      *source.Document

	// Configuration
	options AnalyzeOptions
	ctx     context.Context

	// Accumulated error (fail-fast)
	err error

	// Warnings accumulated during processing
	warnings []Warning
}

// clone creates a shallow copy with a deep copy of options, so chain
// methods never mutate the receiver.
func (a *Analyzer) clone() *Analyzer {
	return &Analyzer{
		filename: a.filename,
		src:      a.src,
		doc:      a.doc,
		options:  a.options.clone(),
		ctx:      a.ctx,
		err:      a.err,
		warnings: append([]Warning(nil), a.warnings...),
	}
}

// WithContext attaches a context used for cancellation during extraction.
func (a *Analyzer) WithContext(ctx context.Context) *Analyzer {
	n := a.clone()
	n.ctx = ctx
	return n
}

// WithSource overrides the span source used to read the document.
func (a *Analyzer) WithSource(src source.Source) *Analyzer {
	n := a.clone()
	n.src = src
	return n
}

// WithDetectorConfig overrides the heading detector configuration.
func (a *Analyzer) WithDetectorConfig(config headings.Config) *Analyzer {
	n := a.clone()
	n.options.detector = &config
	return n
}

// WithBuilderConfig overrides the outline builder configuration.
func (a *Analyzer) WithBuilderConfig(config headings.BuilderConfig) *Analyzer {
	n := a.clone()
	n.options.builder = &config
	return n
}

// WithScorerConfig overrides the relevance scorer configuration.
func (a *Analyzer) WithScorerConfig(config relevance.ScorerConfig) *Analyzer {
	n := a.clone()
	n.options.scorer = &config
	return n
}

// WithExtractorConfig overrides the section extractor configuration.
func (a *Analyzer) WithExtractorConfig(config relevance.ExtractorConfig) *Analyzer {
	n := a.clone()
	n.options.extractor = &config
	return n
}

// load resolves the document: either it was provided directly, or it is
// read from the filename through the configured span source.
func (a *Analyzer) load() (*source.Document, []Warning, error) {
	if a.err != nil {
		return nil, a.warnings, a.err
	}
	if a.doc != nil {
		return a.doc, a.emptyDocWarnings(a.doc), nil
	}

	f, err := os.Open(a.filename)
	if err != nil {
		return nil, a.warnings, fmt.Errorf("open %s: %w", a.filename, err)
	}
	defer f.Close()

	ctx := a.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := a.src.Extract(ctx, f)
	if err != nil {
		return nil, a.warnings, fmt.Errorf("extract %s: %w", a.filename, err)
	}
	if doc.ID == "" {
		doc.ID = a.filename
	}

	return &doc, a.emptyDocWarnings(&doc), nil
}

// emptyDocWarnings flags a document with no usable spans. An empty
// document is a successful parse with an empty outline, not an error.
func (a *Analyzer) emptyDocWarnings(doc *source.Document) []Warning {
	if len(doc.Spans) > 0 {
		return a.warnings
	}
	return append(append([]Warning(nil), a.warnings...), Warning{
		Code:    WarnEmptyDocument,
		Message: fmt.Sprintf("no usable text spans in %s", doc.ID),
	})
}

// Spans returns the document's sanitized text spans.
func (a *Analyzer) Spans() ([]model.TextSpan, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return nil, warnings, err
	}
	return doc.Spans, warnings, nil
}

// Stats returns the document's font statistics.
func (a *Analyzer) Stats() (model.DocumentStats, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return model.DocumentStats{}, warnings, err
	}
	return model.ComputeStats(doc.Spans), warnings, nil
}

// Candidates runs heading detection and returns the scored candidates in
// reading order, with levels assigned.
func (a *Analyzer) Candidates() ([]headings.Candidate, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return nil, warnings, err
	}
	stats := model.ComputeStats(doc.Spans)
	candidates := a.options.newDetector().Detect(doc.Spans, stats)
	if len(candidates) == 0 && len(doc.Spans) > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNoHeadings,
			Message: fmt.Sprintf("no heading candidates in %s", doc.ID),
		})
	}
	return candidates, warnings, nil
}

// Outline runs the full outline pipeline: detection, level assignment,
// text cleaning, deduplication, and title resolution.
func (a *Analyzer) Outline() (headings.Outline, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return headings.Outline{}, warnings, err
	}
	stats := model.ComputeStats(doc.Spans)
	candidates := a.options.newDetector().Detect(doc.Spans, stats)
	if len(candidates) == 0 && len(doc.Spans) > 0 {
		warnings = append(warnings, Warning{
			Code:    WarnNoHeadings,
			Message: fmt.Sprintf("no heading candidates in %s", doc.ID),
		})
	}
	return a.options.newBuilder().Build(doc.Title, doc.Spans, candidates), warnings, nil
}

// Sections detects headings, slices the document into sections, and
// scores each against the given persona and job descriptions. Results are
// sorted by score descending; sections at or below the relevance floor
// are dropped. Ranks are not assigned here: ranking happens after
// cross-document diversification in the collection package.
func (a *Analyzer) Sections(persona, job string) ([]relevance.RelevantSection, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return nil, warnings, err
	}

	personaProfile := profile.NewPersonaParser().Parse(persona)
	jobProfile := profile.NewJobParser().Parse(job)
	return a.scoreSections(doc, personaProfile, jobProfile, &warnings)
}

// SectionsForProfiles is the pre-parsed variant of Sections, used when
// one persona/job pair is scored against many documents.
func (a *Analyzer) SectionsForProfiles(personaProfile profile.PersonaProfile, jobProfile profile.JobProfile) ([]relevance.RelevantSection, []Warning, error) {
	doc, warnings, err := a.load()
	if err != nil {
		return nil, warnings, err
	}
	return a.scoreSections(doc, personaProfile, jobProfile, &warnings)
}

func (a *Analyzer) scoreSections(doc *source.Document, personaProfile profile.PersonaProfile, jobProfile profile.JobProfile, warnings *[]Warning) ([]relevance.RelevantSection, []Warning, error) {
	stats := model.ComputeStats(doc.Spans)
	candidates := a.options.newDetector().Detect(doc.Spans, stats)
	sections := a.options.newExtractor().Extract(doc.Spans, candidates)
	scorer := a.options.newScorer()

	var scored []relevance.RelevantSection
	for _, section := range sections {
		score := scorer.Score(section.Title, section.Content, personaProfile, jobProfile)
		if score <= relevance.MinRelevance {
			continue
		}
		scored = append(scored, relevance.RelevantSection{
			Document: doc.ID,
			Page:     section.Page,
			Title:    section.Title,
			Content:  section.Content,
			Score:    score,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) == 0 {
		*warnings = append(*warnings, Warning{
			Code:    WarnNoSections,
			Message: fmt.Sprintf("no relevant sections in %s", doc.ID),
		})
	}
	return scored, *warnings, nil
}
