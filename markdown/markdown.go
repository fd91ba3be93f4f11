// Package markdown renders post markdown to sanitized HTML and exposes it as a
// templ component.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/adrg/frontmatter"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Engine and policy are safe for concurrent use once built.
var (
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "pre", "span", "div")
	return p
}

// Meta is the optional front matter block at the top of a post.
type Meta struct {
	Title   string `yaml:"title" toml:"title" json:"title"`
	Date    string `yaml:"date" toml:"date" json:"date"`
	Summary string `yaml:"summary" toml:"summary" json:"summary"`
}

// SplitFrontMatter separates a leading front matter block from the markdown
// body. Content without front matter is returned unchanged with a zero Meta.
func SplitFrontMatter(src string) (Meta, string, error) {
	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(src), &meta)
	if err != nil {
		return Meta{}, src, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, string(body), nil
}

// Render converts markdown to sanitized HTML. Front matter is not stripped;
// callers pass the body.
func Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// Sanitize cleans HTML produced outside this package, such as an editor's own
// preview.
func Sanitize(htmlSrc string) string {
	return policy.Sanitize(htmlSrc)
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render(content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
