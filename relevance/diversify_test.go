package relevance

import "testing"

func sec(doc, title string, score float64) RelevantSection {
	return RelevantSection{Document: doc, Title: title, Content: "content", Score: score}
}

func TestSelectHonorsPerDocumentCap(t *testing.T) {
	config := DefaultDiversifierConfig()
	config.Quota = 3
	d := NewDiversifierWithConfig(config)

	pool := []RelevantSection{
		sec("a.pdf", "Falafel Platter", 0.9),
		sec("a.pdf", "Ratatouille", 0.8),
		sec("a.pdf", "Veggie Sushi", 0.3),
		sec("b.pdf", "Vegetable Lasagna", 0.95),
	}

	got := d.Select(pool)
	if len(got) != 3 {
		t.Fatalf("got %d sections, want 3", len(got))
	}

	wantScores := []float64{0.95, 0.9, 0.8}
	for i, want := range wantScores {
		if got[i].Score != want {
			t.Errorf("position %d score = %v, want %v", i, got[i].Score, want)
		}
		if got[i].Rank != i+1 {
			t.Errorf("position %d rank = %d, want %d", i, got[i].Rank, i+1)
		}
	}

	fromA := 0
	for _, s := range got {
		if s.Document == "a.pdf" {
			fromA++
		}
	}
	if fromA > 2 {
		t.Errorf("%d sections from one document, cap is 2", fromA)
	}
}

func TestSelectSkipsGenericTitles(t *testing.T) {
	pool := []RelevantSection{
		sec("a.pdf", "Introduction", 0.99),
		sec("a.pdf", "Stuffed Peppers", 0.6),
		sec("b.pdf", "Comprehensive Guide to Everything", 0.98),
		sec("b.pdf", "Lentil Curry", 0.5),
	}

	got := NewDiversifier().Select(pool)
	for _, s := range got[:2] {
		switch s.Title {
		case "Introduction", "Comprehensive Guide to Everything":
			t.Errorf("generic title %q selected in capped pass", s.Title)
		}
	}
}

func TestSelectBackfillsFromFullPool(t *testing.T) {
	// Every title is generic, so the capped passes select nothing and
	// backfill must fill the quota anyway.
	pool := []RelevantSection{
		sec("a.pdf", "Introduction", 0.9),
		sec("a.pdf", "Ingredients", 0.8),
		sec("a.pdf", "Instructions", 0.7),
	}

	got := NewDiversifier().Select(pool)
	if len(got) != 3 {
		t.Fatalf("got %d sections, want 3 via backfill", len(got))
	}
	if got[0].Score != 0.9 || got[2].Score != 0.7 {
		t.Errorf("backfill order wrong: %+v", got)
	}
}

func TestSelectQuotaAndEmptyPool(t *testing.T) {
	if got := NewDiversifier().Select(nil); len(got) != 0 {
		t.Errorf("empty pool must yield empty result, got %+v", got)
	}

	var pool []RelevantSection
	for i := 0; i < 20; i++ {
		pool = append(pool, sec("doc", "Dish", float64(i)/20))
	}
	if got := NewDiversifier().Select(pool); len(got) > 5 {
		t.Errorf("result length %d exceeds quota 5", len(got))
	}
}

func TestSelectRanksAreSequential(t *testing.T) {
	pool := []RelevantSection{
		sec("a.pdf", "Dish A", 0.9),
		sec("b.pdf", "Dish B", 0.8),
		sec("c.pdf", "Dish C", 0.7),
	}

	got := NewDiversifier().Select(pool)
	for i, s := range got {
		if s.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, s.Rank, i+1)
		}
	}
}
