// Package views is the default set of page components for mdblog. Pages
// inline their stylesheet so the static export is self-contained.
package views

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/mdblog"
)

var (
	//go:embed theme.css
	defaultTheme string

	//go:embed editor.css
	editorCSS string
)

// DefaultMarkdown seeds the editor for a new post.
const DefaultMarkdown = `# Post Title

*Written today*

Start with the paragraph that should show up as the excerpt on the post list.

## A section

- Lists, **bold**, *italic* and ` + "`inline code`" + ` all work.
- Tables and ~~strikethrough~~ follow GitHub flavored markdown.

> Blockquotes make good callouts.

` + "```go\nfmt.Println(\"hello\")\n```\n"

// New returns the default view components for cfg. The blog theme is read
// from cfg.ThemePath when set.
func New(cfg mdblog.SiteConfig) (mdblog.ViewFuncs, error) {
	theme := defaultTheme
	if cfg.ThemePath != "" {
		b, err := os.ReadFile(cfg.ThemePath)
		if err != nil {
			return mdblog.ViewFuncs{}, fmt.Errorf("read theme: %w", err)
		}
		theme = string(b)
	}
	if cfg.Name == "" {
		cfg.Name = "Blog"
	}
	s := &site{cfg: cfg, theme: theme}
	return mdblog.ViewFuncs{
		Editor:      s.editor,
		Index:       s.index,
		Post:        s.post,
		Login:       s.login,
		NotFound:    s.notFound,
		ServerError: s.serverError,
	}, nil
}

type site struct {
	cfg   mdblog.SiteConfig
	theme string
}

// htmlWriter keeps the first write error so page bodies read top to bottom.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err == nil {
		h.err = c.Render(h.ctx, h.w)
	}
}

type pageOpts struct {
	title       string
	description string
	css         string
	bodyClass   string
	head        func(*htmlWriter)
}

func page(o pageOpts, body func(*htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>`)
		h.text(o.title)
		h.raw(`</title>`)
		if o.description != "" {
			h.raw(`<meta name="description" content="`)
			h.text(o.description)
			h.raw(`">`)
		}
		if o.head != nil {
			o.head(h)
		}
		h.raw(`<style>`)
		h.raw(o.css)
		h.raw(`</style></head><body`)
		if o.bodyClass != "" {
			h.raw(` class="`)
			h.text(o.bodyClass)
			h.raw(`"`)
		}
		h.raw(`>`)
		body(h)
		h.raw(`</body></html>`)
		return h.err
	})
}

func (s *site) index(posts []mdblog.Post, withEditorLink bool) templ.Component {
	o := pageOpts{
		title:       s.cfg.Name,
		description: s.cfg.Description,
		css:         s.theme,
		head: func(h *htmlWriter) {
			h.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
			h.raw(`<script type="application/ld+json">`)
			h.raw(mdblog.WebsiteJsonLD(s.cfg))
			h.raw(`</script>`)
		},
	}
	return page(o, func(h *htmlWriter) {
		h.raw(`<div class="container"><header><h1>`)
		h.text(s.cfg.Name)
		h.raw(`</h1><p>`)
		h.text(postCount(len(posts)))
		h.raw(`</p></header>`)
		if len(posts) == 0 {
			h.raw(`<div class="empty-state"><p>`)
			if withEditorLink {
				h.raw(`No posts yet. Start writing!`)
			} else {
				h.raw(`No posts yet.`)
			}
			h.raw(`</p></div>`)
		} else {
			h.raw(`<ul class="post-list">`)
			for _, p := range posts {
				h.raw(`<li class="post-entry"><a href="`)
				h.text(p.Link)
				h.raw(`"><h2 class="post-title">`)
				h.text(p.Title)
				h.raw(`</h2><div class="post-date">`)
				h.text(p.Date)
				h.raw(`</div><p class="post-excerpt">`)
				h.text(p.Excerpt)
				if p.Truncated {
					h.raw(`...`)
				}
				h.raw(`</p></a></li>`)
			}
			h.raw(`</ul>`)
		}
		if withEditorLink {
			h.raw(`<a href="/" class="back-link">&larr; Back to writer</a>`)
		}
		h.raw(`<a href="/feed.xml" class="back-link">RSS</a></div>`)
	})
}

func postCount(n int) string {
	if n == 1 {
		return "1 post"
	}
	return strconv.Itoa(n) + " posts"
}

func (s *site) post(p mdblog.Post, content templ.Component) templ.Component {
	o := pageOpts{
		title:       p.Title,
		description: p.Excerpt,
		css:         s.theme,
		head: func(h *htmlWriter) {
			h.raw(`<link rel="canonical" href="`)
			h.text(mdblog.BuildURL(s.cfg.URL, "blog", p.Slug))
			h.raw(`"><script type="application/ld+json">`)
			h.raw(mdblog.BlogPostingJsonLD(p, s.cfg))
			h.raw(`</script>`)
		},
	}
	return page(o, func(h *htmlWriter) {
		h.raw(`<div class="container"><header><h1>`)
		h.text(p.Title)
		h.raw(`</h1><div class="meta">`)
		h.text(p.Date)
		h.raw(`</div></header><article>`)
		h.component(content)
		h.raw(`</article><a href="/blog/" class="back-link">&larr; Back to all posts</a></div>`)
	})
}

func (s *site) editor(csrfToken string) templ.Component {
	o := pageOpts{
		title: "Writer · " + s.cfg.Name,
		css:   editorCSS,
		head: func(h *htmlWriter) {
			if csrfToken != "" {
				h.raw(`<meta name="csrf-token" content="`)
				h.text(csrfToken)
				h.raw(`">`)
			}
		},
	}
	return page(o, func(h *htmlWriter) {
		h.raw(`<header class="app-header"><h1>WRITER</h1><div class="header-actions">`)
		h.raw(`<span id="save-status" class="save-status"></span>`)
		h.raw(`<button type="button" id="btn-new" aria-label="New post">New</button>`)
		h.raw(`<button type="button" id="btn-load" aria-label="Load post">Open</button>`)
		h.raw(`<button type="button" id="btn-save" aria-label="Save">Save</button>`)
		h.raw(`<button type="button" id="btn-theme" aria-label="Toggle theme">Theme</button>`)
		h.raw(`<a href="/blog/">Blog</a>`)
		if csrfToken != "" {
			h.raw(`<form method="post" action="/logout/"><input type="hidden" name="_csrf" value="`)
			h.text(csrfToken)
			h.raw(`"><button type="submit">Log out</button></form>`)
		}
		h.raw(`</div></header>`)
		h.raw(`<main class="panes"><textarea id="editor" spellcheck="true" aria-label="Markdown"></textarea>`)
		h.raw(`<div class="preview-pane"><article id="preview" class="article-content"></article></div></main>`)
		h.raw(`<dialog id="load-dialog"><h2>Open a post</h2><ul id="load-list"></ul><button type="button" id="btn-close">Close</button></dialog>`)
		h.raw(`<textarea id="default-markdown" hidden>`)
		h.text(DefaultMarkdown)
		h.raw(`</textarea><script src="/public/editor.js"></script>`)
	})
}

func (s *site) login(showError bool, csrfToken string) templ.Component {
	o := pageOpts{title: "Log in · " + s.cfg.Name, css: editorCSS}
	return page(o, func(h *htmlWriter) {
		h.raw(`<form class="login" method="post" action="/login/"><h1>`)
		h.text(s.cfg.Name)
		h.raw(`</h1>`)
		if showError {
			h.raw(`<p class="error">Wrong password.</p>`)
		}
		h.raw(`<input type="hidden" name="_csrf" value="`)
		h.text(csrfToken)
		h.raw(`"><input type="password" name="password" placeholder="Password" autofocus required><button type="submit">Log in</button></form>`)
	})
}

func (s *site) notFound() templ.Component {
	return s.message("Post not found", "The page you were looking for does not exist.")
}

func (s *site) serverError() templ.Component {
	return s.message("Something went wrong", "The server could not render this page. Try again later.")
}

func (s *site) message(title, text string) templ.Component {
	return page(pageOpts{title: title, css: s.theme}, func(h *htmlWriter) {
		h.raw(`<div class="container"><header><h1>`)
		h.text(title)
		h.raw(`</h1></header><p>`)
		h.text(text)
		h.raw(`</p><a href="/blog/" class="back-link">&larr; Back to all posts</a></div>`)
	})
}
