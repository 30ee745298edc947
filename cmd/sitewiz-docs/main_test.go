package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sitewiz/internal/cli"
)

func TestGenerateDocs(t *testing.T) {
	t.Parallel()

	root := cli.NewRootCommand(io.Discard, io.Discard)
	tempDir := t.TempDir()
	markdownDir := filepath.Join(tempDir, "cli")
	manDir := filepath.Join(tempDir, "man", "man1")

	if err := generateDocs(root, markdownDir, manDir); err != nil {
		t.Fatalf("generateDocs error = %v", err)
	}

	mustFileExists(t, filepath.Join(markdownDir, "sitewiz.md"))
	mustFileExists(t, filepath.Join(markdownDir, "sitewiz_summary.md"))
	mustFileExists(t, filepath.Join(manDir, "sitewiz.1"))

	content, err := os.ReadFile(filepath.Join(markdownDir, "sitewiz.md"))
	if err != nil {
		t.Fatalf("read generated root markdown: %v", err)
	}
	for _, want := range []string{"start", "prompt", "summary", "options", "completion"} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected root markdown to document %s command, got:\n%s", want, string(content))
		}
	}
	if strings.Contains(string(content), "Auto generated by spf13/cobra") {
		t.Fatal("auto-generated footer should be disabled")
	}
}

func TestGenerateDocsResetsStaleFiles(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	markdownDir := filepath.Join(tempDir, "cli")
	stale := filepath.Join(markdownDir, "sitewiz_removed.md")
	if err := os.MkdirAll(markdownDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := cli.NewRootCommand(io.Discard, io.Discard)
	if err := generateDocs(root, markdownDir, filepath.Join(tempDir, "man")); err != nil {
		t.Fatalf("generateDocs error = %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale doc still present: %v", err)
	}
}

func TestGenerateDocsRequiresRoot(t *testing.T) {
	t.Parallel()

	if err := generateDocs(nil, t.TempDir(), t.TempDir()); err == nil {
		t.Fatal("expected error for nil root command")
	}
}

func mustFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s to exist: %v", path, err)
	}
}
