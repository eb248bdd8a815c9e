package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/stigoleg/burst-click/internal/cli"
)

// This small tool generates shell completions and a man page from the
// burstclick command tree, so they always mirror --help.

const appName = "burstclick"

func main() {
	root := cli.NewRootCommand("")
	root.DisableAutoGenTag = true

	if err := writeCompletions(root); err != nil {
		log.Fatal(err)
	}
	if err := writeMan(root); err != nil {
		log.Fatal(err)
	}
}

func writeCompletions(root *cobra.Command) error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	if err := root.GenBashCompletionFileV2(filepath.Join(base, appName+".bash"), true); err != nil {
		return err
	}
	if err := root.GenZshCompletionFile(filepath.Join(base, "_"+appName)); err != nil {
		return err
	}
	if err := root.GenFishCompletionFile(filepath.Join(base, appName+".fish"), true); err != nil {
		return err
	}
	return root.GenPowerShellCompletionFile(filepath.Join(base, appName+".ps1"))
}

func writeMan(root *cobra.Command) error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}
	header := &doc.GenManHeader{
		Title:   "BURSTCLICK",
		Section: "1",
		Source:  "burst-click",
		Manual:  "User Commands",
	}
	return doc.GenManTree(root, header, "man")
}
