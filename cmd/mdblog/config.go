package main

import (
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	flag "github.com/spf13/pflag"

	"github.com/eringen/mdblog"
	"github.com/eringen/mdblog/views"
)

// siteFlags holds the flags shared by serve and build.
type siteFlags struct {
	cfg       mdblog.SiteConfig
	staticDir string
	logLevel  string
}

func registerSiteFlags(fs *flag.FlagSet) *siteFlags {
	f := &siteFlags{}
	fs.StringVar(&f.cfg.Name, "name", mdblog.EnvOr("SITE_NAME", "Blog"), "site name")
	fs.StringVar(&f.cfg.URL, "url", mdblog.EnvOr("SITE_URL", "http://localhost:3000"), "canonical site URL")
	fs.StringVar(&f.cfg.Description, "description", mdblog.EnvOr("SITE_DESCRIPTION", ""), "site description")
	fs.StringVar(&f.cfg.Author, "author", mdblog.EnvOr("SITE_AUTHOR", ""), "author name")
	fs.StringVar(&f.cfg.MarkdownDir, "markdown-dir", mdblog.EnvOr("MARKDOWN_DIR", "markdown"), "directory of markdown posts")
	fs.StringVar(&f.cfg.HTMLDir, "html-dir", mdblog.EnvOr("HTML_DIR", "posts"), "directory of rendered posts")
	fs.StringVar(&f.cfg.OutputDir, "out", mdblog.EnvOr("OUTPUT_DIR", "dist"), "static export directory")
	fs.StringVar(&f.cfg.ThemePath, "theme", mdblog.EnvOr("THEME_PATH", ""), "CSS file replacing the built-in theme")
	fs.StringVar(&f.staticDir, "static-dir", mdblog.EnvOr("STATIC_DIR", "public"), "static assets and image uploads")
	fs.StringVar(&f.logLevel, "log-level", mdblog.EnvOr("LOG_LEVEL", "info"), "debug, info, warn or error")
	return f
}

// newApp builds the App with the default views and the configured log level.
func (f *siteFlags) newApp() (*mdblog.App, error) {
	f.cfg.URL = strings.TrimSuffix(f.cfg.URL, "/")
	v, err := views.New(f.cfg)
	if err != nil {
		return nil, err
	}
	lvl, err := parseLevel(f.logLevel)
	if err != nil {
		return nil, err
	}
	app := mdblog.New(f.cfg, v, mdblog.WithStaticDir(f.staticDir))
	app.Echo.Logger.SetLevel(lvl)
	app.Echo.HideBanner = true
	return app, nil
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
