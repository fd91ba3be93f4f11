package mdblog

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eringen/mdblog/markdown"
)

const (
	markdownExt  = ".md"
	htmlExt      = ".html"
	dateLayout   = "2006-01-02"
	excerptLimit = 200
)

var (
	reTitle      = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t\r]*$`)
	reDatePrefix = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
)

// SafeName replaces every character outside [A-Za-z0-9_-] with a dash.
// Runs are not collapsed, so the mapping is one-to-one per rune.
func SafeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// BaseName returns the "<date>-<safe name>" stem used for a new post saved at now.
// The date is the UTC calendar day of now.
func BaseName(name string, now time.Time) string {
	return now.UTC().Format(dateLayout) + "-" + SafeName(name)
}

// ParseTitle returns the text of the first level-one heading in content.
func ParseTitle(content string) string {
	m := reTitle.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// ParseDate returns the leading YYYY-MM-DD of filename, or "".
func ParseDate(filename string) string {
	m := reDatePrefix.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return m[1]
}

// ParseExcerpt returns the first prose line of content: not blank, not a
// heading, blockquote or emphasis line. The second result reports whether the
// line was cut to excerptLimit runes.
func ParseExcerpt(content string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, ">") || strings.HasPrefix(line, "*") {
			continue
		}
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < excerptLimit {
			return line, false
		}
		return string([]rune(line)[:excerptLimit]), true
	}
	return "", false
}

// HumanizeName turns "2025-01-15-my-first-post.md" into "my first post".
func HumanizeName(filename string) string {
	name := strings.TrimSuffix(filename, markdownExt)
	if d := ParseDate(name); d != "" {
		name = strings.TrimPrefix(name[len(d):], "-")
	}
	return strings.ReplaceAll(name, "-", " ")
}

// ValidFilename reports whether name is a single, non-hidden path element.
func ValidFilename(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	return filepath.Base(name) == name
}

// parsePost derives a Post from a markdown filename and its raw content.
// Front matter values take precedence over derived ones, except that a date
// in the filename always wins.
func parsePost(filename, content string) Post {
	meta, body, err := markdown.SplitFrontMatter(content)
	if err != nil {
		meta, body = markdown.Meta{}, content
	}
	slug := strings.TrimSuffix(filename, markdownExt)

	p := Post{
		Filename: filename,
		Slug:     slug,
		Title:    strings.TrimSpace(meta.Title),
		Date:     ParseDate(filename),
		Body:     body,
		Link:     "/blog/" + PathEscape(slug) + "/",
	}
	if p.Title == "" {
		p.Title = ParseTitle(body)
	}
	if p.Title == "" {
		p.Title = HumanizeName(filename)
	}
	if p.Date == "" {
		p.Date = ParseDate(strings.TrimSpace(meta.Date))
	}
	if s := strings.TrimSpace(meta.Summary); s != "" {
		p.Excerpt = s
	} else {
		p.Excerpt, p.Truncated = ParseExcerpt(body)
	}
	return p
}

// Summary converts p to its /api/posts listing form.
func (p Post) Summary() PostSummary {
	return PostSummary{Filename: p.Filename, Name: p.Title, Date: p.Date}
}
