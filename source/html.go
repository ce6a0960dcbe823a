package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/docrank/model"
)

// Synthetic layout constants for HTML documents, which carry no intrinsic
// geometry. Blocks are laid out down a letter-sized page so the
// position-based heuristics keep working.
const (
	htmlLeftMargin  = 72.0
	htmlTopMargin   = 72.0
	htmlPageHeight  = 792.0
	htmlLineSpacing = 6.0
	htmlBodySize    = 11.0
)

// headingSizes maps HTML heading elements to synthetic font sizes that
// sit above the body baseline in proportion to their rank.
var headingSizes = map[string]float64{
	"h1": 24,
	"h2": 20,
	"h3": 16,
	"h4": 14,
	"h5": 12.5,
	"h6": 11.5,
}

// blockTags are elements emitted as one span each.
var blockTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "blockquote": true, "pre": true,
	"td": true, "th": true, "caption": true, "figcaption": true,
	"dt": true, "dd": true,
}

// skipTags are elements whose subtrees contribute no document text.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"nav": true, "footer": true, "head": true,
}

// HTMLSource extracts spans from HTML documents. Headings map to larger
// synthetic font sizes and bold style, so the same detection pipeline
// serves markup and page-description inputs alike.
type HTMLSource struct{}

// NewHTMLSource creates an HTML span source.
func NewHTMLSource() *HTMLSource {
	return &HTMLSource{}
}

// Extract parses the HTML and returns one span per block element, laid
// out on synthetic letter-sized pages.
func (s *HTMLSource) Extract(ctx context.Context, r io.ReadSeeker) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	root, err := html.Parse(r)
	if err != nil {
		return Document{}, fmt.Errorf("parse html: %w", err)
	}

	w := &htmlWalker{page: 1, y: htmlTopMargin}
	w.walk(root)

	return Document{
		Title: w.title,
		Spans: Sanitize(w.spans),
	}, nil
}

type htmlWalker struct {
	spans []model.TextSpan
	title string
	page  int
	y     float64
}

func (w *htmlWalker) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		if skipTags[n.Data] {
			if n.Data == "head" {
				w.captureTitle(n)
			}
			return
		}
		if blockTags[n.Data] {
			w.emit(n)
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *htmlWalker) captureTitle(head *html.Node) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "title" {
			w.title = strings.TrimSpace(textContent(c))
			return
		}
	}
}

func (w *htmlWalker) emit(n *html.Node) {
	text := strings.Join(strings.Fields(textContent(n)), " ")
	if text == "" {
		return
	}

	size := htmlBodySize
	flags := 0
	if hs, ok := headingSizes[n.Data]; ok {
		size = hs
		flags |= model.FlagBold
	}
	if hasEmphasis(n, "b", "strong") {
		flags |= model.FlagBold
	}
	if hasEmphasis(n, "i", "em") {
		flags |= model.FlagItalic
	}

	lineHeight := size + htmlLineSpacing
	if w.y+lineHeight > htmlPageHeight-htmlTopMargin {
		w.page++
		w.y = htmlTopMargin
	}

	bbox := model.NewBBox(htmlLeftMargin, w.y, htmlLeftMargin+float64(len(text))*size*avgGlyphWidthRatio, w.y+size)
	w.spans = append(w.spans, model.NewSpan(text, w.page, bbox, "html-"+n.Data, size, flags))
	w.y += lineHeight
}

// hasEmphasis reports whether the block's entire text is wrapped in one
// of the given inline elements.
func hasEmphasis(n *html.Node, tags ...string) bool {
	child := firstElementChild(n)
	if child == nil {
		return false
	}
	for _, tag := range tags {
		if child.Data == tag {
			return true
		}
	}
	return false
}

func firstElementChild(n *html.Node) *html.Node {
	var element *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				return nil
			}
		case html.ElementNode:
			if element != nil {
				return nil
			}
			element = c
		}
	}
	return element
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
			sb.WriteByte(' ')
			return
		}
		if node.Type == html.ElementNode && skipTags[node.Data] {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
