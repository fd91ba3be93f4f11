package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "build":
		err = runBuild(os.Args[2:])
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: mdblog new <dir>")
			os.Exit(1)
		}
		err = runNew(os.Args[2])
	case "version":
		fmt.Printf("mdblog %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mdblog - a markdown writer and static blog generator

Usage:
  mdblog <command> [flags]

Commands:
  serve         Run the editor and blog server
  build         Render all posts into a static site
  new <dir>     Create a new blog workspace
  version       Print the mdblog version
  help          Show this help message

Run 'mdblog <command> --help' for the flags of a command.
Flags default from environment variables (SITE_NAME, SITE_URL, MARKDOWN_DIR, ...).`)
}
