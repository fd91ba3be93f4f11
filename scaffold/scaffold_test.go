package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")
	created, err := Generate(dir, Data{SiteName: "My Blog", Date: "2025-01-15"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(created) == 0 {
		t.Fatal("Generate created no files")
	}

	for _, rel := range []string{
		".env.example",
		".gitignore",
		"README.md",
		filepath.Join("public", ".gitkeep"),
		filepath.Join("markdown", "2025-01-15-first-post.md"),
	} {
		if _, err := os.Stat(filepath.Join(dir, rel)); err != nil {
			t.Errorf("expected %s: %v", rel, err)
		}
	}

	post, err := os.ReadFile(filepath.Join(dir, "markdown", "2025-01-15-first-post.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(post), "# Hello from My Blog\n") {
		t.Errorf("sample post not rendered from template: %q", post)
	}
}

func TestGenerateExistingDir(t *testing.T) {
	if _, err := Generate(t.TempDir(), Data{}); err == nil {
		t.Fatal("expected error for existing directory")
	}
}
