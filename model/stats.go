package model

import "sort"

// Default statistics used when a document yields no usable spans. Callers
// must be able to process an empty document without crashing.
const (
	DefaultBodyFontSize = 12.0
	defaultFontSize90th = 14.0
)

// DocumentStats aggregates font and layout statistics for one document.
// Stats are recomputed per document and never shared across documents.
type DocumentStats struct {
	// BodyFontSize is the modal font size, used as the "normal text"
	// baseline. The mode is robust to headings, which are rare.
	BodyFontSize float64

	// AvgFontSize is the mean font size across all spans.
	AvgFontSize float64

	// FontSize75th and FontSize90th are percentile sizes over the sorted
	// size distribution; MaxFontSize is the largest observed size.
	FontSize75th float64
	FontSize90th float64
	MaxFontSize  float64

	// FontCounts maps font names to their span counts.
	FontCounts map[string]int

	// SpanCount is the total number of spans observed.
	SpanCount int
}

// ComputeStats derives corpus-wide font baselines from the spans of one
// document. An empty span list yields safe defaults.
func ComputeStats(spans []TextSpan) DocumentStats {
	if len(spans) == 0 {
		return DocumentStats{
			BodyFontSize: DefaultBodyFontSize,
			AvgFontSize:  DefaultBodyFontSize,
			FontSize75th: DefaultBodyFontSize,
			FontSize90th: defaultFontSize90th,
			MaxFontSize:  DefaultBodyFontSize,
			FontCounts:   map[string]int{},
		}
	}

	sizes := make([]float64, 0, len(spans))
	sizeCounts := make(map[float64]int)
	fontCounts := make(map[string]int)
	var sum float64

	for _, s := range spans {
		sizes = append(sizes, s.FontSize)
		sizeCounts[s.FontSize]++
		fontCounts[s.FontName]++
		sum += s.FontSize
	}

	sort.Float64s(sizes)

	body := sizes[0]
	best := 0
	for size, count := range sizeCounts {
		if count > best || (count == best && size < body) {
			best = count
			body = size
		}
	}

	n := len(sizes)
	return DocumentStats{
		BodyFontSize: body,
		AvgFontSize:  sum / float64(n),
		FontSize75th: sizes[n*75/100],
		FontSize90th: sizes[n*90/100],
		MaxFontSize:  sizes[n-1],
		FontCounts:   fontCounts,
		SpanCount:    n,
	}
}
