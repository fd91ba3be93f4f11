package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/eringen/mdblog/scaffold"
)

func runNew(dir string) error {
	data := scaffold.Data{
		SiteName: toTitle(filepath.Base(dir)),
		Date:     time.Now().UTC().Format("2006-01-02"),
	}

	fmt.Printf("Creating new mdblog workspace: %s\n\n", dir)
	created, err := scaffold.Generate(dir, data)
	for _, path := range created {
		fmt.Printf("  created %s\n", path)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", dir)
	fmt.Println("  mdblog serve")
	fmt.Println()
	fmt.Println(".env.example lists the environment variables mdblog reads;")
	fmt.Println("export ADMIN_PASSWORD and ADMIN_SESSION_SECRET to require a login.")
	return nil
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
