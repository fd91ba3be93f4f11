package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRenderHeadingAndParagraph(t *testing.T) {
	got, err := Render("# Hello\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, `<h1 id="hello">Hello</h1>`) {
		t.Errorf("Render heading = %q, want h1 with id", got)
	}
	if !strings.Contains(got, "<strong>bold</strong>") {
		t.Errorf("Render bold = %q, want <strong>", got)
	}
}

func TestRenderHardWraps(t *testing.T) {
	got, err := Render("line one\nline two")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "<br") {
		t.Errorf("Render(%q) = %q, want a line break", "line one\nline two", got)
	}
}

func TestRenderGFM(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"fenced code", "```go\nfmt.Println(1)\n```", `<code class="language-go">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.input)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want substring %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderSanitizesScripts(t *testing.T) {
	tests := []string{
		"<script>alert(1)</script>",
		`<img src="x" onerror="alert(1)">`,
		"[click](javascript:alert(1))",
	}
	for _, input := range tests {
		got, err := Render(input)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		lower := strings.ToLower(got)
		if strings.Contains(lower, "<script") || strings.Contains(lower, "onerror") || strings.Contains(lower, "javascript:") {
			t.Errorf("Render(%q) = %q, want unsafe markup removed", input, got)
		}
	}
}

func TestSanitize(t *testing.T) {
	got := Sanitize(`<p onclick="x()">hi</p><script>bad()</script>`)
	if got != "<p>hi</p>" {
		t.Errorf("Sanitize = %q, want %q", got, "<p>hi</p>")
	}
}

func TestSplitFrontMatter(t *testing.T) {
	src := "---\ntitle: From Meta\ndate: 2024-03-01\nsummary: Short.\n---\n# Heading\n\nBody."
	meta, body, err := SplitFrontMatter(src)
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if meta.Title != "From Meta" {
		t.Errorf("Title = %q, want %q", meta.Title, "From Meta")
	}
	if meta.Date != "2024-03-01" {
		t.Errorf("Date = %q, want %q", meta.Date, "2024-03-01")
	}
	if meta.Summary != "Short." {
		t.Errorf("Summary = %q, want %q", meta.Summary, "Short.")
	}
	if strings.Contains(body, "title:") || !strings.Contains(body, "# Heading") {
		t.Errorf("body = %q, want front matter stripped", body)
	}
}

func TestSplitFrontMatterAbsent(t *testing.T) {
	src := "# Plain\n\nNo meta here."
	meta, body, err := SplitFrontMatter(src)
	if err != nil {
		t.Fatalf("SplitFrontMatter failed: %v", err)
	}
	if meta != (Meta{}) {
		t.Errorf("meta = %+v, want zero value", meta)
	}
	if body != src {
		t.Errorf("body = %q, want %q", body, src)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("*hi*").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "<em>hi</em>") {
		t.Errorf("Markdown component = %q, want <em>hi</em>", buf.String())
	}
}
