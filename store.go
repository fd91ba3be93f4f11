package mdblog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/eringen/mdblog/markdown"
)

// Store keeps posts as markdown files in one directory and their rendered
// HTML in a parallel directory. The filesystem is the only state: every call
// reads or writes files directly.
type Store struct {
	markdownDir string
	htmlDir     string
	now         func() time.Time
}

// NewStore ensures both directories exist and returns a Store over them.
func NewStore(markdownDir, htmlDir string) (*Store, error) {
	for _, dir := range []string{markdownDir, htmlDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Store{markdownDir: markdownDir, htmlDir: htmlDir, now: time.Now}, nil
}

// MarkdownDir returns the directory holding the raw markdown files.
func (s *Store) MarkdownDir() string {
	return s.markdownDir
}

// ListPosts parses every .md file and returns the posts ordered by date
// descending. A missing directory yields no posts.
func (s *Store) ListPosts() ([]Post, error) {
	entries, err := os.ReadDir(s.markdownDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var posts []Post
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), markdownExt) {
			continue
		}
		content, err := os.ReadFile(filepath.Join(s.markdownDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		posts = append(posts, parsePost(e.Name(), string(content)))
	}
	sortPosts(posts)
	return posts, nil
}

// sortPosts orders by date descending, then filename descending so undated
// and same-day posts have a stable order.
func sortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date != posts[j].Date {
			return posts[i].Date > posts[j].Date
		}
		return posts[i].Filename > posts[j].Filename
	})
}

// LoadMarkdown returns the raw content of a markdown file.
func (s *Store) LoadMarkdown(filename string) (string, error) {
	if !ValidFilename(filename) {
		return "", ErrInvalidName
	}
	b, err := os.ReadFile(filepath.Join(s.markdownDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(b), nil
}

// GetPost returns the post whose filename stem is slug.
func (s *Store) GetPost(slug string) (Post, error) {
	filename := slug + markdownExt
	content, err := s.LoadMarkdown(filename)
	if err != nil {
		return Post{}, err
	}
	return parsePost(filename, content), nil
}

// SavePost writes the markdown and its rendered HTML. A request naming an
// existing file overwrites it in place; otherwise a dated filename is derived
// from the post name. Existing files with the same name are overwritten.
func (s *Store) SavePost(req SaveRequest) (SaveResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return SaveResult{}, ErrNameRequired
	}

	var base string
	if req.ExistingFilename != "" {
		if !ValidFilename(req.ExistingFilename) {
			return SaveResult{}, ErrInvalidName
		}
		base = strings.TrimSuffix(req.ExistingFilename, markdownExt)
	} else {
		base = BaseName(req.Name, s.now())
	}

	rendered := req.HTML
	if strings.TrimSpace(rendered) == "" {
		_, body, err := markdown.SplitFrontMatter(req.Markdown)
		if err != nil {
			body = req.Markdown
		}
		if rendered, err = markdown.Render(body); err != nil {
			return SaveResult{}, err
		}
	} else {
		rendered = markdown.Sanitize(rendered)
	}

	res := SaveResult{
		Filename:     base + markdownExt,
		MarkdownPath: filepath.Join(s.markdownDir, base+markdownExt),
		HTMLPath:     filepath.Join(s.htmlDir, base+htmlExt),
	}
	if err := writeFile(res.MarkdownPath, []byte(req.Markdown)); err != nil {
		return SaveResult{}, fmt.Errorf("write markdown: %w", err)
	}
	if err := writeFile(res.HTMLPath, []byte(rendered)); err != nil {
		return SaveResult{}, fmt.Errorf("write html: %w", err)
	}
	return res, nil
}

// DeletePost removes a post's markdown file and its rendered HTML, if any.
func (s *Store) DeletePost(filename string) error {
	if !ValidFilename(filename) || !strings.HasSuffix(filename, markdownExt) {
		return ErrInvalidName
	}
	if err := os.Remove(filepath.Join(s.markdownDir, filename)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	htmlPath := filepath.Join(s.htmlDir, strings.TrimSuffix(filename, markdownExt)+htmlExt)
	if err := os.Remove(htmlPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

const filePerms = 0o644

// writeFile replaces path atomically so readers never observe a partial file.
func writeFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return err
	}
	// atomic.WriteFile leaves new files at the temp file's 0600.
	return os.Chmod(path, filePerms)
}
