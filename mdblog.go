// Package mdblog is a personal blogging tool built with Go, Echo, and templ.
// It serves a browser markdown editor, keeps posts as markdown files on disk
// alongside their rendered HTML, and exports the whole blog as a static site.
//
// Users provide templ components via the ViewFuncs struct (package views
// ships a default set), and mdblog handles routing, persistence and export.
package mdblog

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. The same components render live pages and the static export.
type ViewFuncs struct {
	// Editor is the writing page; csrfToken is empty when auth is disabled.
	Editor func(csrfToken string) templ.Component
	// Index lists posts. withEditorLink is false in the static export.
	Index       func(posts []Post, withEditorLink bool) templ.Component
	Post        func(post Post, content templ.Component) templ.Component
	Login       func(showError bool, csrfToken string) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central mdblog application. It wires together the store,
// handlers, middleware, and view components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Views  ViewFuncs

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
	ready        bool
}

// New creates a new mdblog App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store and registers middleware and routes. Start calls it;
// it is exported so the app can be served by other means, such as tests.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.AuthEnabled() && a.Config.SessionSecret == "" {
		return errors.New("mdblog: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.MarkdownDir, a.Config.HTMLDir)
	if err != nil {
		return fmt.Errorf("mdblog: init store: %w", err)
	}
	store.now = a.now
	a.Store = store

	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app and serves HTTP until the server stops.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets (editor.js) are served from the embedded FS and
	// fall through to the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/editor.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.staticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleEditor, a.requireAuthor)
	e.GET("/blog/", a.handleBlogIndex)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/login/", a.handleLoginPage)
	e.POST("/login/", a.handleLogin)
	e.POST("/logout/", a.handleLogout)

	api := e.Group("/api", a.requireAuthor)
	api.GET("/posts", a.handleListPosts)
	api.GET("/load/:filename", a.handleLoadPost)
	api.POST("/save", a.handleSavePost)
	api.POST("/preview", a.handlePreview)
	api.DELETE("/posts/:filename", a.handleDeletePost)
	api.GET("/images", a.handleImageList)
	api.POST("/images", a.handleImageUpload)
	api.DELETE("/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	return a.Echo.Close()
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("mdblog: required environment variable %s is not set", key)
	}
	return v
}
