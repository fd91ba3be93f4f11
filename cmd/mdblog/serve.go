package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/eringen/mdblog"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	site := registerSiteFlags(fs)
	fs.StringVar(&site.cfg.Addr, "addr", mdblog.EnvOr("ADDR", ":3000"), "listen address")
	fs.StringVar(&site.cfg.AdminPassword, "password", os.Getenv("ADMIN_PASSWORD"), "require this password to edit (empty disables login)")
	fs.StringVar(&site.cfg.SessionSecret, "session-secret", os.Getenv("ADMIN_SESSION_SECRET"), "session cookie secret, required with --password")
	fs.BoolVar(&site.cfg.CookieSecure, "cookie-secure", strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"), "mark cookies Secure (HTTPS)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	app, err := site.newApp()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Echo.Shutdown(shutdownCtx)
	}()

	app.Echo.Logger.Infof("mdblog listening on %s (markdown: %s, html: %s)", site.cfg.Addr, site.cfg.MarkdownDir, site.cfg.HTMLDir)
	return app.Start()
}
