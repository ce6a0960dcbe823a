package source

import (
	"context"
	"strings"
	"testing"
)

func TestHTMLSourceExtract(t *testing.T) {
	page := `<html>
<head><title>South of France Cuisine</title></head>
<body>
<nav><a href="/">Home</a></nav>
<h1>Culinary Traditions</h1>
<p>The region is famous for its markets and olive oil.</p>
<h2>Ratatouille</h2>
<p>A stewed vegetable dish from Nice.</p>
<script>console.log("ignored")</script>
<footer>Copyright</footer>
</body>
</html>`

	doc, err := NewHTMLSource().Extract(context.Background(), strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Title != "South of France Cuisine" {
		t.Errorf("title = %q", doc.Title)
	}

	texts := make(map[string]int)
	for i, s := range doc.Spans {
		texts[s.Text] = i
	}

	for _, unwanted := range []string{"Home", "Copyright", `console.log("ignored")`} {
		if _, ok := texts[unwanted]; ok {
			t.Errorf("boilerplate %q must be excluded", unwanted)
		}
	}

	idx, present := texts["Culinary Traditions"]
	if !present {
		t.Fatalf("h1 span missing: %+v", doc.Spans)
	}
	h1 := doc.Spans[idx]
	if !h1.Style.Bold {
		t.Error("heading span must be bold")
	}

	body := doc.Spans[texts["The region is famous for its markets and olive oil."]]
	if h1.FontSize <= body.FontSize {
		t.Errorf("h1 size %v must exceed body size %v", h1.FontSize, body.FontSize)
	}

	h2 := doc.Spans[texts["Ratatouille"]]
	if h2.FontSize >= h1.FontSize || h2.FontSize <= body.FontSize {
		t.Errorf("h2 size %v must sit between h1 %v and body %v", h2.FontSize, h1.FontSize, body.FontSize)
	}

	// Spans come out in document order with increasing positions.
	for i := 1; i < len(doc.Spans); i++ {
		prev, cur := doc.Spans[i-1], doc.Spans[i]
		if cur.Page < prev.Page || (cur.Page == prev.Page && cur.Y() <= prev.Y()) {
			t.Errorf("span %d not below span %d", i, i-1)
		}
	}
}

func TestHTMLSourceEmphasis(t *testing.T) {
	page := `<html><body><p><strong>Key Terms</strong></p><p><em>aside</em></p></body></html>`

	doc, err := NewHTMLSource().Extract(context.Background(), strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Spans) != 2 {
		t.Fatalf("got %d spans: %+v", len(doc.Spans), doc.Spans)
	}
	if !doc.Spans[0].Style.Bold {
		t.Error("strong-wrapped paragraph must be bold")
	}
	if !doc.Spans[1].Style.Italic {
		t.Error("em-wrapped paragraph must be italic")
	}
}
