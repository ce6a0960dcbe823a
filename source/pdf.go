package source

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/tsawler/docrank/headings"
	"github.com/tsawler/docrank/model"
)

// defaultPageHeight is the US Letter height in points, used when page
// dimensions cannot be resolved.
const defaultPageHeight = 792.0

// avgGlyphWidthRatio approximates glyph advance as a fraction of font
// size. Real widths live in per-font metrics; for heading detection only
// the left edge and rough extent matter.
const avgGlyphWidthRatio = 0.5

// PDFConfig configures the PDF span source.
type PDFConfig struct {
	// MergeStandaloneNumbers merges a bare section-number span with the
	// text that follows it on the same line. PDF renderers commonly split
	// the two. Default: true.
	MergeStandaloneNumbers bool
}

// DefaultPDFConfig returns the default PDF source configuration.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{MergeStandaloneNumbers: true}
}

// PDFSource extracts positioned text spans from PDF content streams. It
// interprets the text operators (BT/ET, Tf, Td, TD, Tm, TL, T*, Tj, ', TJ)
// directly, tracking position and font state. Glyph widths are
// approximated from font size, which is enough for the layout heuristics
// downstream.
type PDFSource struct {
	config PDFConfig
}

// NewPDFSource creates a PDF source with default configuration.
func NewPDFSource() *PDFSource {
	return &PDFSource{config: DefaultPDFConfig()}
}

// NewPDFSourceWithConfig creates a PDF source with custom configuration.
func NewPDFSourceWithConfig(config PDFConfig) *PDFSource {
	return &PDFSource{config: config}
}

// Extract reads a PDF and returns its spans, capped at the page limit.
// The metadata title is left empty; callers fall back to first-page text.
func (s *PDFSource) Extract(ctx context.Context, r io.ReadSeeker) (Document, error) {
	pdfCtx, err := api.ReadValidateAndOptimize(r, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return Document{}, fmt.Errorf("read pdf: %w", err)
	}

	heights := pageHeights(pdfCtx)

	pageCount := pdfCtx.PageCount
	if pageCount > MaxPages {
		pageCount = MaxPages
	}

	var spans []model.TextSpan
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		content, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
		if err != nil {
			continue
		}
		data, err := io.ReadAll(content)
		if err != nil || len(data) == 0 {
			continue
		}
		height := defaultPageHeight
		if pageNr-1 < len(heights) && heights[pageNr-1] > 0 {
			height = heights[pageNr-1]
		}
		spans = append(spans, interpretContent(data, pageNr, height)...)
	}

	spans = Sanitize(spans)
	if s.config.MergeStandaloneNumbers {
		spans = headings.MergeNumberedSpans(spans)
	}
	return Document{Spans: spans}, nil
}

func pageHeights(ctx *pdfmodel.Context) []float64 {
	dims, err := ctx.PageDims()
	if err != nil {
		return nil
	}
	heights := make([]float64, len(dims))
	for i, d := range dims {
		heights[i] = d.Height
	}
	return heights
}

// textState is the interpreter's text-object state. PDF user space has a
// bottom-left origin; emitted spans are converted to the top-left
// convention on the way out.
type textState struct {
	x, y     float64
	leading  float64
	fontName string
	fontSize float64
}

// pending accumulates text shown at one line position so that a heading
// split across several show operators comes out as one span.
type pending struct {
	text     string
	x, y     float64
	fontName string
	fontSize float64
}

func interpretContent(data []byte, page int, pageHeight float64) []model.TextSpan {
	var spans []model.TextSpan
	var state textState
	var cur *pending

	flush := func() {
		if cur == nil {
			return
		}
		if span, ok := buildSpan(*cur, page, pageHeight); ok {
			spans = append(spans, span)
		}
		cur = nil
	}

	show := func(text string) {
		if text == "" {
			return
		}
		if cur != nil && cur.y == state.y && cur.fontName == state.fontName && cur.fontSize == state.fontSize {
			// Separate show operators on one line are distinct segments;
			// intra-word kerning splits arrive inside a single TJ array.
			cur.text += " " + text
			return
		}
		flush()
		cur = &pending{text: text, x: state.x, y: state.y, fontName: state.fontName, fontSize: state.fontSize}
	}

	tok := newTokenizer(data)
	var operands []token
	for {
		t, ok := tok.next()
		if !ok {
			break
		}
		if t.kind != tokOperator {
			operands = append(operands, t)
			continue
		}

		switch t.val {
		case "BT":
			state.x, state.y = 0, 0
		case "ET":
			flush()
		case "Tf":
			if len(operands) >= 2 {
				state.fontName = operands[len(operands)-2].val
				state.fontSize = number(operands[len(operands)-1])
			}
		case "TL":
			if len(operands) >= 1 {
				state.leading = number(operands[len(operands)-1])
			}
		case "Td":
			if len(operands) >= 2 {
				state.x += number(operands[len(operands)-2])
				state.y += number(operands[len(operands)-1])
			}
		case "TD":
			if len(operands) >= 2 {
				state.x += number(operands[len(operands)-2])
				ty := number(operands[len(operands)-1])
				state.y += ty
				state.leading = -ty
			}
		case "Tm":
			if len(operands) >= 6 {
				state.x = number(operands[len(operands)-2])
				state.y = number(operands[len(operands)-1])
			}
		case "T*":
			state.y -= state.leading
		case "Tj":
			if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
				show(operands[len(operands)-1].val)
			}
		case "'":
			state.y -= state.leading
			if len(operands) >= 1 && operands[len(operands)-1].kind == tokString {
				show(operands[len(operands)-1].val)
			}
		case "TJ":
			// Strings inside one TJ array are kerned pieces of one run.
			var sb strings.Builder
			for _, op := range operands {
				if op.kind == tokString {
					sb.WriteString(op.val)
				}
			}
			show(sb.String())
		}
		operands = operands[:0]
	}
	flush()
	return spans
}

func buildSpan(p pending, page int, pageHeight float64) (model.TextSpan, bool) {
	text := strings.TrimSpace(p.text)
	if text == "" {
		return model.TextSpan{}, false
	}
	size := p.fontSize
	if size <= 0 {
		size = model.DefaultBodyFontSize
	}
	width := float64(utf8.RuneCountInString(text)) * size * avgGlyphWidthRatio
	top := pageHeight - p.y - size
	bbox := model.NewBBox(p.x, top, p.x+width, top+size)
	return model.NewSpan(text, page, bbox, p.fontName, size, styleFlags(p.fontName)), true
}

// styleFlags infers bold/italic from the font name. Resource names do not
// always carry the base font name, so this is best effort.
func styleFlags(fontName string) int {
	lower := strings.ToLower(fontName)
	flags := 0
	if strings.Contains(lower, "bold") || strings.Contains(lower, "black") || strings.Contains(lower, "heavy") {
		flags |= model.FlagBold
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		flags |= model.FlagItalic
	}
	return flags
}

// Content-stream tokenizer. It understands literal strings with escapes,
// hex strings, names, numbers, arrays, and bare operators; dictionaries
// and inline-image data are passed through as opaque tokens.

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokString
	tokName
	tokOther
)

type token struct {
	kind tokenKind
	val  string
}

type tokenizer struct {
	data []byte
	pos  int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{data: data}
}

func (t *tokenizer) next() (token, bool) {
	t.skipWhitespace()
	if t.pos >= len(t.data) {
		return token{}, false
	}

	c := t.data[t.pos]
	switch {
	case c == '%':
		t.skipComment()
		return t.next()
	case c == '(':
		return token{kind: tokString, val: t.readLiteralString()}, true
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			t.pos += 2
			return token{kind: tokOther, val: "<<"}, true
		}
		return token{kind: tokString, val: t.readHexString()}, true
	case c == '>':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '>' {
			t.pos += 2
			return token{kind: tokOther, val: ">>"}, true
		}
		t.pos++
		return token{kind: tokOther, val: ">"}, true
	case c == '[' || c == ']' || c == '{' || c == '}':
		t.pos++
		return token{kind: tokOther, val: string(c)}, true
	case c == '/':
		return token{kind: tokName, val: t.readName()}, true
	}

	word := t.readWord()
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, val: word}, true
	}
	return token{kind: tokOperator, val: word}, true
}

func (t *tokenizer) skipWhitespace() {
	for t.pos < len(t.data) {
		switch t.data[t.pos] {
		case ' ', '\t', '\r', '\n', '\f', 0:
			t.pos++
		default:
			return
		}
	}
}

func (t *tokenizer) skipComment() {
	for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
		t.pos++
	}
}

func (t *tokenizer) readLiteralString() string {
	t.pos++ // consume '('
	var sb strings.Builder
	depth := 1
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch c {
		case '\\':
			t.pos++
			if t.pos < len(t.data) {
				sb.WriteByte(unescape(t.data, &t.pos))
			}
			continue
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				t.pos++
				return sb.String()
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
		t.pos++
	}
	return sb.String()
}

// unescape decodes one escape sequence at data[*pos], advancing *pos past
// it, and returns the decoded byte.
func unescape(data []byte, pos *int) byte {
	c := data[*pos]
	switch c {
	case 'n':
		*pos++
		return '\n'
	case 'r':
		*pos++
		return '\r'
	case 't':
		*pos++
		return '\t'
	case 'b':
		*pos++
		return '\b'
	case 'f':
		*pos++
		return '\f'
	}
	if c >= '0' && c <= '7' {
		val := 0
		for i := 0; i < 3 && *pos < len(data) && data[*pos] >= '0' && data[*pos] <= '7'; i++ {
			val = val*8 + int(data[*pos]-'0')
			*pos++
		}
		return byte(val)
	}
	*pos++
	return c
}

func (t *tokenizer) readHexString() string {
	t.pos++ // consume '<'
	var digits []byte
	for t.pos < len(t.data) && t.data[t.pos] != '>' {
		c := t.data[t.pos]
		if isHexDigit(c) {
			digits = append(digits, c)
		}
		t.pos++
	}
	if t.pos < len(t.data) {
		t.pos++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	var sb strings.Builder
	for i := 0; i+1 < len(digits); i += 2 {
		sb.WriteByte(byte(hexValue(digits[i])<<4 | hexValue(digits[i+1])))
	}
	return sb.String()
}

func (t *tokenizer) readName() string {
	t.pos++ // consume '/'
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func (t *tokenizer) readWord() string {
	start := t.pos
	for t.pos < len(t.data) && !isDelimiter(t.data[t.pos]) {
		t.pos++
	}
	if t.pos == start {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func number(t token) float64 {
	v, _ := strconv.ParseFloat(t.val, 64)
	return v
}

func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0, '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
