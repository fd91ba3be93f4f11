package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
)

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	site := registerSiteFlags(fs)
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := app.Build(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Built %d posts to %s/\n", len(report.Posts), report.OutputDir)
	fmt.Printf("  - %s/index.html\n", report.OutputDir)
	fmt.Printf("  - %s/blog/index.html\n", report.OutputDir)
	for _, slug := range report.Posts {
		fmt.Printf("  - %s/blog/%s/index.html\n", report.OutputDir, slug)
	}
	return nil
}
