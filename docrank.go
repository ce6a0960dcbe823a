// Package docrank provides a fluent API for extracting heading outlines
// from documents and ranking document sections against a persona and a
// task description.
//
// Basic usage:
//
//	outline, warnings, err := docrank.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", docrank.FormatWarnings(warnings))
//	}
//
// Relevance ranking for one document:
//
//	sections, _, err := docrank.Open("report.pdf").
//	    Sections("Food Contractor", "Prepare a vegetarian buffet dinner menu")
//
// Cross-document collections are handled by the collection package, which
// merges scored sections from many documents and diversifies the result.
package docrank

import (
	"path/filepath"
	"strings"

	"github.com/tsawler/docrank/model"
	"github.com/tsawler/docrank/source"
)

// Open prepares a document for analysis. The span source is chosen from
// the file extension: .html/.htm use the HTML source, everything else the
// PDF source. Use WithSource to override.
func Open(filename string) *Analyzer {
	var src source.Source
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		src = source.NewHTMLSource()
	default:
		src = source.NewPDFSource()
	}
	return &Analyzer{
		filename: filename,
		src:      src,
		options:  defaultAnalyzeOptions(),
	}
}

// FromDocument creates an Analyzer over an already-extracted document,
// bypassing file I/O. Spans are sanitized on the way in.
func FromDocument(doc source.Document) *Analyzer {
	doc.Spans = source.Sanitize(doc.Spans)
	return &Analyzer{
		doc:     &doc,
		options: defaultAnalyzeOptions(),
	}
}

// FromSpans creates an Analyzer over raw spans, for callers with their
// own extraction backend.
func FromSpans(id string, spans []model.TextSpan) *Analyzer {
	return FromDocument(source.Document{ID: id, Spans: spans})
}

// Must is a helper that wraps a call returning (T, error) and panics if
// the error is non-nil. Intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult wraps a terminal operation returning (T, []Warning, error),
// panicking on error and discarding warnings.
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
