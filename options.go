package docrank

import (
	"github.com/tsawler/docrank/headings"
	"github.com/tsawler/docrank/relevance"
)

// AnalyzeOptions holds configuration for document analysis. Nil fields
// mean the component's defaults.
type AnalyzeOptions struct {
	detector  *headings.Config
	builder   *headings.BuilderConfig
	scorer    *relevance.ScorerConfig
	extractor *relevance.ExtractorConfig
}

// defaultAnalyzeOptions returns empty options; each stage falls back to
// its own DefaultConfig.
func defaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{}
}

// clone creates a deep copy of AnalyzeOptions.
func (o AnalyzeOptions) clone() AnalyzeOptions {
	newOpts := AnalyzeOptions{}
	if o.detector != nil {
		c := *o.detector
		newOpts.detector = &c
	}
	if o.builder != nil {
		c := *o.builder
		newOpts.builder = &c
	}
	if o.scorer != nil {
		c := *o.scorer
		newOpts.scorer = &c
	}
	if o.extractor != nil {
		c := *o.extractor
		newOpts.extractor = &c
	}
	return newOpts
}

func (o AnalyzeOptions) newDetector() *headings.Detector {
	if o.detector != nil {
		return headings.NewDetectorWithConfig(*o.detector)
	}
	return headings.NewDetector()
}

func (o AnalyzeOptions) newBuilder() *headings.Builder {
	if o.builder != nil {
		return headings.NewBuilderWithConfig(*o.builder)
	}
	return headings.NewBuilder()
}

func (o AnalyzeOptions) newScorer() *relevance.Scorer {
	if o.scorer != nil {
		return relevance.NewScorerWithConfig(*o.scorer)
	}
	return relevance.NewScorer()
}

func (o AnalyzeOptions) newExtractor() *relevance.Extractor {
	if o.extractor != nil {
		return relevance.NewExtractorWithConfig(*o.extractor)
	}
	return relevance.NewExtractor()
}
