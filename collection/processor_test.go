package collection

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const mainsHTML = `<html><head><title>Dinner Mains</title></head><body>
<h1>Dinner Mains</h1>
<h2>Vegetable Lasagna</h2>
<p>Layer pasta with roasted vegetables and bake. A hearty dinner entree for a buffet crowd.</p>
<h2>Falafel Platter</h2>
<p>Serve falafel with hummus and flatbread. A vegetarian dinner favourite for catering.</p>
</body></html>`

const sidesHTML = `<html><head><title>Sides</title></head><body>
<h1>Sides</h1>
<h2>Ratatouille</h2>
<p>Stewed vegetables make a colourful dinner side for any buffet table.</p>
</body></html>`

func writeCollection(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	docs := filepath.Join(dir, "documents")
	if err := os.Mkdir(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		filepath.Join(docs, "mains.html"): mainsHTML,
		filepath.Join(docs, "sides.html"): sidesHTML,
		filepath.Join(dir, "input.json"): `{
			"persona": {"role": "Food Contractor"},
			"job_to_be_done": {"task": "Prepare a vegetarian buffet dinner menu for a corporate gathering"},
			"documents": ["mains.html", "sides.html", "missing.html"]
		}`,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func quietProcessor() *Processor {
	config := DefaultProcessorConfig()
	config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewProcessorWithConfig(config)
}

func TestProcessDir(t *testing.T) {
	dir := writeCollection(t)

	out, failed, err := quietProcessor().ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(out.ExtractedSections) == 0 {
		t.Fatal("no sections extracted")
	}
	if len(out.ExtractedSections) > 5 {
		t.Errorf("%d sections exceed the quota", len(out.ExtractedSections))
	}
	for i, s := range out.ExtractedSections {
		if s.ImportanceRank != i+1 {
			t.Errorf("rank at %d = %d", i, s.ImportanceRank)
		}
	}

	// The missing document is skipped and counted, not fatal.
	if failed != 1 {
		t.Errorf("failed documents = %d, want 1", failed)
	}
	if len(out.Metadata.InputDocuments) != 3 {
		t.Errorf("metadata documents = %v", out.Metadata.InputDocuments)
	}

	if _, err := os.Stat(filepath.Join(dir, "output.json")); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestProcessDiversityAcrossDocuments(t *testing.T) {
	dir := writeCollection(t)

	out, _, err := quietProcessor().ProcessDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}

	perDoc := map[string]int{}
	for _, s := range out.ExtractedSections {
		perDoc[s.Document]++
	}
	for doc, n := range perDoc {
		if n > 2 {
			t.Errorf("%s contributed %d sections, cap is 2", doc, n)
		}
	}
}

func TestRunAggregatesFailures(t *testing.T) {
	good := writeCollection(t)
	bad := t.TempDir() // no input.json

	summary := quietProcessor().Run(context.Background(), []string{good, bad})

	if summary.Collections != 2 {
		t.Errorf("collections = %d, want 2", summary.Collections)
	}
	if summary.CollectionErrors != 1 {
		t.Errorf("collection errors = %d, want 1", summary.CollectionErrors)
	}
	if summary.Documents != 2 {
		t.Errorf("documents = %d, want 2 analyzed (missing one excluded)", summary.Documents)
	}
	if summary.DocumentErrors != 1 {
		t.Errorf("document errors = %d, want 1", summary.DocumentErrors)
	}
	if summary.SectionsExtracted == 0 {
		t.Error("good collection produced no sections")
	}
}

func TestRunCountsDocumentFailures(t *testing.T) {
	dir := t.TempDir()
	docs := filepath.Join(dir, "documents")
	if err := os.Mkdir(docs, 0o755); err != nil {
		t.Fatal(err)
	}
	input := `{
		"persona": "Food Contractor",
		"job_to_be_done": "Prepare a buffet dinner menu",
		"documents": ["missing1.pdf", "missing2.pdf"]
	}`
	if err := os.WriteFile(filepath.Join(dir, "input.json"), []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	summary := quietProcessor().Run(context.Background(), []string{dir})

	// A collection whose documents are all missing must not look like a
	// successful run over two empty documents.
	if summary.Documents != 0 {
		t.Errorf("documents = %d, want 0 analyzed", summary.Documents)
	}
	if summary.DocumentErrors != 2 {
		t.Errorf("document errors = %d, want 2", summary.DocumentErrors)
	}
	if summary.CollectionErrors != 0 {
		t.Errorf("collection errors = %d; missing documents are not a collection failure", summary.CollectionErrors)
	}
	if summary.SectionsExtracted != 0 {
		t.Errorf("sections = %d, want 0", summary.SectionsExtracted)
	}
}
