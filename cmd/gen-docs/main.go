package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/stigoleg/jiggle/internal/cli"
)

// This small tool generates shell completions and a man page from the jiggle
// command definition, so they never drift from --help.

func main() {
	out := flag.String("out", ".", "directory receiving docs/completions and man")
	flag.Parse()

	cmd := cli.NewRootCommand("", nil)
	if err := generate(cmd, *out); err != nil {
		fmt.Fprintln(os.Stderr, "gen-docs:", err)
		os.Exit(1)
	}
}

func generate(cmd *cobra.Command, root string) error {
	completions := filepath.Join(root, "docs", "completions")
	if err := os.MkdirAll(completions, 0o755); err != nil {
		return err
	}

	name := cmd.Name()
	if err := cmd.GenBashCompletionFileV2(filepath.Join(completions, name+".bash"), true); err != nil {
		return fmt.Errorf("bash completion: %w", err)
	}
	if err := cmd.GenZshCompletionFile(filepath.Join(completions, "_"+name)); err != nil {
		return fmt.Errorf("zsh completion: %w", err)
	}
	if err := cmd.GenFishCompletionFile(filepath.Join(completions, name+".fish"), true); err != nil {
		return fmt.Errorf("fish completion: %w", err)
	}

	man := filepath.Join(root, "man")
	if err := os.MkdirAll(man, 0o755); err != nil {
		return err
	}
	header := &doc.GenManHeader{
		Title:   "JIGGLE",
		Section: "1",
		Source:  "jiggle",
		Manual:  "User Commands",
	}
	cmd.DisableAutoGenTag = true
	if err := doc.GenManTree(cmd, header, man); err != nil {
		return fmt.Errorf("man page: %w", err)
	}
	return nil
}
