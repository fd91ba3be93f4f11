package mdblog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuildLayout(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	for _, req := range []SaveRequest{
		{Name: "first", Markdown: "# First\n\nOne."},
		{Name: "second", Markdown: "# Second\n\nTwo."},
	} {
		if _, err := a.Store.SavePost(req); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(a.staticDir, "img"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(a.staticDir, "img", "logo.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	// A stale file from an earlier build must not survive.
	stale := filepath.Join(a.Config.OutputDir, "blog", "removed", "index.html")
	if err := os.MkdirAll(filepath.Dir(stale), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := a.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	wantFiles := []string{
		"blog/2025-01-15-first/index.html",
		"blog/2025-01-15-second/index.html",
		"blog/index.html",
		"feed.xml",
		"index.html",
		"public/img/logo.png",
		"sitemap.xml",
	}
	got := append([]string(nil), report.Files...)
	sort.Strings(got)
	if diff := cmp.Diff(wantFiles, got); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2025-01-15-second", "2025-01-15-first"}, report.Posts); diff != "" {
		t.Errorf("posts mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale output survived the rebuild")
	}

	index, err := os.ReadFile(filepath.Join(a.Config.OutputDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(index) != "index Second,First editor=false" {
		t.Errorf("index.html = %q", index)
	}
	page, err := os.ReadFile(filepath.Join(a.Config.OutputDir, "blog", "2025-01-15-first", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(page), "post First ") || !strings.Contains(string(page), "<p>One.</p>") {
		t.Errorf("post page = %q", page)
	}
}

func TestBuildWithoutPosts(t *testing.T) {
	dir := t.TempDir()
	a := New(SiteConfig{
		MarkdownDir: filepath.Join(dir, "missing"),
		OutputDir:   filepath.Join(dir, "dist"),
	}, stubViews(), WithStaticDir(filepath.Join(dir, "public")))

	report, err := a.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(report.Posts) != 0 {
		t.Errorf("expected no posts, got %v", report.Posts)
	}
	index, err := os.ReadFile(filepath.Join(dir, "dist", "blog", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(index) != "index  editor=false" {
		t.Errorf("index = %q", index)
	}
	if _, err := os.Stat(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("build created the markdown directory")
	}
}

func TestBuildCanceled(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	if _, err := a.Store.SavePost(SaveRequest{Name: "p", Markdown: "# P"}); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Build(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildUnreadableMarkdownDir(t *testing.T) {
	dir := t.TempDir()
	notDir := filepath.Join(dir, "notadir")
	if err := os.WriteFile(notDir, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := New(SiteConfig{
		MarkdownDir: notDir,
		OutputDir:   filepath.Join(dir, "dist"),
	}, stubViews(), WithStaticDir(filepath.Join(dir, "public")))

	report, err := a.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(report.Posts) != 0 {
		t.Errorf("expected no posts, got %v", report.Posts)
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

func TestBuildRefusesOverlappingOutputDir(t *testing.T) {
	dir := t.TempDir()
	dist := filepath.Join(dir, "dist")

	tests := []struct {
		name   string
		cfg    SiteConfig
		static string
	}{
		{"static dir inside output", SiteConfig{MarkdownDir: filepath.Join(dir, "markdown"), OutputDir: dist}, filepath.Join(dist, "assets")},
		{"output is markdown dir", SiteConfig{MarkdownDir: dist, OutputDir: dist}, filepath.Join(dir, "public")},
		{"output contains html dir", SiteConfig{MarkdownDir: filepath.Join(dir, "markdown"), HTMLDir: filepath.Join(dist, "posts"), OutputDir: dist}, filepath.Join(dir, "public")},
		{"output is working dir", SiteConfig{MarkdownDir: filepath.Join(dir, "markdown"), OutputDir: "."}, filepath.Join(dir, "public")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keep := filepath.Join(dist, "assets", "logo.png")
			if err := os.MkdirAll(filepath.Dir(keep), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(keep, []byte("png"), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg := tt.cfg
			if cfg.HTMLDir == "" {
				cfg.HTMLDir = filepath.Join(dir, "posts")
			}
			a := New(cfg, stubViews(), WithStaticDir(tt.static))
			if _, err := a.Build(context.Background()); err == nil {
				t.Fatal("expected Build to refuse the output directory")
			}
			if _, err := os.Stat(keep); err != nil {
				t.Errorf("existing files were removed: %v", err)
			}
		})
	}
}
