package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"sitewiz/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run writes docs under dir, or under ./docs when no argument is given.
func run() error {
	dir := "docs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	root := cli.NewRootCommand(io.Discard, io.Discard)
	return generateDocs(root, filepath.Join(dir, "cli"), filepath.Join(dir, "man", "man1"))
}

func generateDocs(root *cobra.Command, markdownDir string, manDir string) error {
	if root == nil {
		return errors.New("root command is required")
	}

	markDisableAutoGen(root)

	if err := resetDirectory(markdownDir); err != nil {
		return err
	}
	if err := resetDirectory(manDir); err != nil {
		return err
	}

	if err := doc.GenMarkdownTree(root, markdownDir); err != nil {
		return fmt.Errorf("generate markdown docs: %w", err)
	}

	head := &doc.GenManHeader{Title: "SITEWIZ", Section: "1", Source: "sitewiz"}
	if err := doc.GenManTree(root, head, manDir); err != nil {
		return fmt.Errorf("generate man pages: %w", err)
	}

	return nil
}

func markDisableAutoGen(cmd *cobra.Command) {
	cmd.DisableAutoGenTag = true
	for _, child := range cmd.Commands() {
		markDisableAutoGen(child)
	}
}

func resetDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
