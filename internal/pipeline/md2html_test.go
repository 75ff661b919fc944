package pipeline

// Notes:
// - Goldmark output is asserted by substring: exact whitespace between
//   block elements is a renderer detail we don't pin down.
// - Cancellation is checked with an already-canceled context; a cancel that
//   races the conversion goroutine is not deterministic enough to test.

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Markdown rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
	}{
		{
			name:         "heading",
			input:        "# Test Heading",
			wantContains: []string{`<h1 id="test-heading">Test Heading</h1>`},
		},
		{
			name:         "paragraph",
			input:        "This is a test markdown file.",
			wantContains: []string{"<p>This is a test markdown file.</p>"},
		},
		{
			name:         "emphasis",
			input:        "*em* and **strong**",
			wantContains: []string{"<em>em</em>", "<strong>strong</strong>"},
		},
		{
			name:         "unordered list",
			input:        "- one\n- two",
			wantContains: []string{"<ul>", "<li>one</li>", "<li>two</li>"},
		},
		{
			name:         "link",
			input:        "[site](https://example.com)",
			wantContains: []string{`<a href="https://example.com">site</a>`},
		},
		{
			name:         "fenced code block with language",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`, "main"},
		},
		{
			name:         "GFM table",
			input:        "| a | b |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>a</th>", "<td>1</td>"},
		},
		{
			name:         "raw HTML passes through",
			input:        "<div class=\"note\">kept</div>",
			wantContains: []string{`<div class="note">kept</div>`},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), []byte(tt.input))
			if err != nil {
				t.Fatalf("ToHTML() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(string(got), want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_FragmentOnly(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), []byte("# Title\n\nBody"))
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}

	for _, tag := range []string{"<html", "<head", "<body", "<!DOCTYPE"} {
		if strings.Contains(string(got), tag) {
			t.Errorf("fragment should not contain %q, got %q", tag, got)
		}
	}
}

func TestGoldmarkConverter_ToHTML_EmptyInput(t *testing.T) {
	t.Parallel()

	got, err := NewGoldmarkConverter().ToHTML(context.Background(), nil)
	if err != nil {
		t.Fatalf("ToHTML() unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("ToHTML(nil) = %q, want empty fragment", got)
	}
}

func TestGoldmarkConverter_ToHTML_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, []byte("# Title"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
