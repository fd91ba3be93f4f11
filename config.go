package mdblog

import "time"

// SiteConfig holds all configuration for an mdblog site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for the feed and page meta

	Addr        string // Listen address (default ":3000")
	MarkdownDir string // Raw posts (default "markdown")
	HTMLDir     string // Rendered posts written at save time (default "posts")
	OutputDir   string // Static export target (default "dist")
	ThemePath   string // Optional CSS file replacing the built-in theme

	AdminPassword string // Optional: when set, editing requires login
	SessionSecret string // Required when AdminPassword is set
	CookieSecure  bool   // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.MarkdownDir == "" {
		c.MarkdownDir = "markdown"
	}
	if c.HTMLDir == "" {
		c.HTMLDir = "posts"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
}

// AuthEnabled reports whether editing is gated behind a login.
func (c SiteConfig) AuthEnabled() bool {
	return c.AdminPassword != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets and image
// uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock replaces time.Now for dating new posts.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
