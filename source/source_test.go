package source

import (
	"testing"

	"github.com/tsawler/docrank/model"
)

func rawSpan(text string, page int, size float64) model.TextSpan {
	return model.NewSpan(text, page, model.NewBBox(72, 100, 200, 100+size), "F", size, 0)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		span model.TextSpan
		keep bool
	}{
		{"valid", rawSpan("text", 1, 12), true},
		{"empty text", rawSpan("", 1, 12), false},
		{"whitespace only", rawSpan(" \t\n", 1, 12), false},
		{"font too small", rawSpan("text", 1, 5), false},
		{"font too large", rawSpan("text", 1, 80), false},
		{"font at lower bound", rawSpan("text", 1, 6), true},
		{"font at upper bound", rawSpan("text", 1, 72), true},
		{"page zero", rawSpan("text", 0, 12), false},
		{"page past cap", rawSpan("text", MaxPages+1, 12), false},
		{"page at cap", rawSpan("text", MaxPages, 12), true},
		{"degenerate bbox", model.NewSpan("text", 1, model.NewBBox(10, 10, 10, 20), "F", 12, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize([]model.TextSpan{tt.span})
			if kept := len(got) == 1; kept != tt.keep {
				t.Errorf("Sanitize kept=%v, want %v", kept, tt.keep)
			}
		})
	}
}
