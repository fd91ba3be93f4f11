package mdblog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/mdblog/markdown"
)

// BuildReport summarizes a static export.
type BuildReport struct {
	OutputDir string
	Posts     []string // slugs, newest first
	Files     []string // written files, relative to OutputDir
}

// Build renders every saved post into a static site under Config.OutputDir.
// The output directory is removed first; every run is a full rebuild. Build
// refuses an output directory that holds the working directory or any source
// directory. An unreadable markdown directory exports no posts.
//
// Layout:
//
//	index.html, blog/index.html   post index
//	blog/<slug>/index.html        one page per post
//	feed.xml, sitemap.xml
//	public/...                    copy of the static dir
func (a *App) Build(ctx context.Context) (BuildReport, error) {
	out := a.Config.OutputDir
	report := BuildReport{OutputDir: out}
	logger := a.Echo.Logger

	if err := a.checkOutputDir(); err != nil {
		return report, err
	}
	if err := os.RemoveAll(out); err != nil {
		return report, fmt.Errorf("clean %s: %w", out, err)
	}
	if err := os.MkdirAll(filepath.Join(out, "blog"), 0o755); err != nil {
		return report, fmt.Errorf("create %s: %w", out, err)
	}

	store := a.Store
	if store == nil {
		// Build never creates the source directories.
		store = &Store{markdownDir: a.Config.MarkdownDir, htmlDir: a.Config.HTMLDir, now: a.now}
	}
	posts, err := store.ListPosts()
	if err != nil {
		logger.Warnf("build: reading %s: %v; exporting no posts", store.MarkdownDir(), err)
		posts = nil
	}

	write := func(rel string, data []byte) error {
		path := filepath.Join(out, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", rel, err)
		}
		report.Files = append(report.Files, filepath.ToSlash(rel))
		return nil
	}

	index, err := renderBytes(ctx, a.Views.Index(posts, false))
	if err != nil {
		return report, fmt.Errorf("render index: %w", err)
	}
	for _, rel := range []string{"index.html", filepath.Join("blog", "index.html")} {
		if err := write(rel, index); err != nil {
			return report, err
		}
	}

	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !ValidFilename(p.Slug) {
			logger.Warnf("build: skipping %q: unusable slug", p.Filename)
			continue
		}
		page, err := renderBytes(ctx, a.Views.Post(p, markdown.Markdown(p.Body)))
		if err != nil {
			return report, fmt.Errorf("render %s: %w", p.Filename, err)
		}
		if err := write(filepath.Join("blog", p.Slug, "index.html"), page); err != nil {
			return report, err
		}
		report.Posts = append(report.Posts, p.Slug)
	}

	var feed bytes.Buffer
	if err := writeRSS(&feed, a.Config, posts); err != nil {
		return report, fmt.Errorf("render feed: %w", err)
	}
	if err := write("feed.xml", feed.Bytes()); err != nil {
		return report, err
	}
	var sitemap bytes.Buffer
	if err := writeSitemap(&sitemap, a.Config.URL, posts); err != nil {
		return report, fmt.Errorf("render sitemap: %w", err)
	}
	if err := write("sitemap.xml", sitemap.Bytes()); err != nil {
		return report, err
	}

	copied, err := copyDir(a.staticDir, filepath.Join(out, "public"))
	if err != nil {
		return report, fmt.Errorf("copy static assets: %w", err)
	}
	for _, rel := range copied {
		report.Files = append(report.Files, filepath.ToSlash(filepath.Join("public", rel)))
	}

	logger.Infof("built %d posts to %s", len(report.Posts), out)
	return report, nil
}

// checkOutputDir refuses output directories that would take source files
// down with them when cleaned: the working directory, or any directory that
// equals or contains the markdown, HTML or static directory.
func (a *App) checkOutputDir() error {
	out, err := filepath.Abs(a.Config.OutputDir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", a.Config.OutputDir, err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	if within(out, wd) {
		return fmt.Errorf("output directory %s contains the working directory", a.Config.OutputDir)
	}
	for _, src := range []string{a.Config.MarkdownDir, a.Config.HTMLDir, a.staticDir} {
		if src == "" {
			continue
		}
		abs, err := filepath.Abs(src)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", src, err)
		}
		if within(out, abs) {
			return fmt.Errorf("output directory %s would delete source directory %s", a.Config.OutputDir, src)
		}
	}
	return nil
}

// within reports whether path is dir or lies beneath it. Both must be absolute.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func renderBytes(ctx context.Context, cmp templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := cmp.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// copyDir copies the regular files under src into dst and returns their
// paths relative to src. A missing src copies nothing.
func copyDir(src, dst string) ([]string, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	var copied []string
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := writeFile(target, data); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	return copied, err
}
