package relevance

import (
	"sort"
	"strings"
)

// DiversifierConfig configures cross-document result selection.
type DiversifierConfig struct {
	// Quota is the size of the final result set. Default: 5.
	Quota int

	// PerDocumentCap limits how many sections one document may contribute
	// outside the backfill path. Default: 2.
	PerDocumentCap int

	// GenericTitles is a blocklist of title substrings skipped during the
	// capped passes. Generic boilerplate ("Introduction", "Ingredients")
	// crowds out the sections a reader actually wants.
	GenericTitles []string
}

// DefaultDiversifierConfig returns the default selection configuration.
func DefaultDiversifierConfig() DiversifierConfig {
	return DiversifierConfig{
		Quota:          5,
		PerDocumentCap: 2,
		GenericTitles: []string{
			"introduction", "comprehensive guide", "ultimate guide",
			"journey through", "guide to", "planning, and exploring",
			"instructions:", "ingredients:", "instructions", "ingredients",
		},
	}
}

// Diversifier selects a fixed-size result set that is not dominated by a
// single document.
type Diversifier struct {
	config DiversifierConfig
}

// NewDiversifier creates a diversifier with default configuration.
func NewDiversifier() *Diversifier {
	return &Diversifier{config: DefaultDiversifierConfig()}
}

// NewDiversifierWithConfig creates a diversifier with custom configuration.
func NewDiversifierWithConfig(config DiversifierConfig) *Diversifier {
	return &Diversifier{config: config}
}

// Select ranks the section pool and picks up to the quota: best section
// per document first, then a second per document, then backfill from the
// full pool when the capped passes cannot fill the quota. Ranks are
// assigned on the final order.
func (d *Diversifier) Select(pool []RelevantSection) []RelevantSection {
	ranked := make([]RelevantSection, len(pool))
	copy(ranked, pool)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	// Document order follows first appearance in the ranked pool, so the
	// strongest documents are visited first in each pass.
	var docs []string
	byDoc := make(map[string][]int)
	for i, s := range ranked {
		if _, ok := byDoc[s.Document]; !ok {
			docs = append(docs, s.Document)
		}
		byDoc[s.Document] = append(byDoc[s.Document], i)
	}

	taken := make(map[int]bool)
	perDoc := make(map[string]int)
	var selected []int

	take := func(idx int) {
		taken[idx] = true
		perDoc[ranked[idx].Document]++
		selected = append(selected, idx)
	}

	// First pass: the best non-generic section from each document.
	for _, doc := range docs {
		for _, idx := range byDoc[doc] {
			if d.isGeneric(ranked[idx].Title) {
				continue
			}
			take(idx)
			break
		}
	}

	// Second pass: allow one more per document, up to the cap.
	if len(selected) < d.config.Quota {
		for _, doc := range docs {
			if len(selected) >= d.config.Quota {
				break
			}
			if perDoc[doc] >= d.config.PerDocumentCap {
				continue
			}
			for _, idx := range byDoc[doc] {
				if taken[idx] || d.isGeneric(ranked[idx].Title) {
					continue
				}
				take(idx)
				break
			}
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return ranked[selected[i]].Score > ranked[selected[j]].Score
	})
	if len(selected) > d.config.Quota {
		selected = selected[:d.config.Quota]
	}

	// Backfill ignores the cap and the generic-title filter: a short
	// result set is worse than a repetitive one.
	if len(selected) < d.config.Quota {
		for idx := range ranked {
			if len(selected) >= d.config.Quota {
				break
			}
			if taken[idx] {
				continue
			}
			taken[idx] = true
			selected = append(selected, idx)
		}
	}

	result := make([]RelevantSection, 0, len(selected))
	for rank, idx := range selected {
		s := ranked[idx]
		s.Rank = rank + 1
		result = append(result, s)
	}
	return result
}

func (d *Diversifier) isGeneric(title string) bool {
	lower := strings.ToLower(title)
	for _, generic := range d.config.GenericTitles {
		if strings.Contains(lower, generic) {
			return true
		}
	}
	return false
}
