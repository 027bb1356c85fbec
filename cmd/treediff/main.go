// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/google/treediff/pkg/treediff"
	"github.com/google/treediff/pkg/treediff/comparators"
	"github.com/google/treediff/pkg/treediff/present"
)

var (
	htmlOutput     string
	textOutput     string
	maxDiffLines   int
	maxPageSize    int
	fuzzyThreshold int
	newFile        bool
)

var rootCmd = &cobra.Command{
	Use:          "treediff FILE1 FILE2",
	Short:        "Recursively compare two files, unpacking archives and recognized formats",
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&textOutput, "text", "-", `write the text report here, "-" for stdout, "" to skip`)
	rootCmd.Flags().StringVar(&htmlOutput, "html", "", `write an HTML report to this path`)
	rootCmd.Flags().IntVar(&maxDiffLines, "max-diff-block-lines", treediff.DefaultConfig().MaxDiffBlockLines, "lines shown per diff hunk before truncation")
	rootCmd.Flags().IntVar(&maxPageSize, "max-page-size", treediff.DefaultConfig().MaxPageSize, "byte cap on the HTML report")
	rootCmd.Flags().IntVar(&fuzzyThreshold, "fuzzy-threshold", 0, "edit-distance threshold for fuzzy member-name pairing (0 disables)")
	rootCmd.Flags().BoolVar(&newFile, "new-file", false, "report members only on one side as new/removed instead of a hard failure")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := treediff.Config{
		NewFile:           newFile,
		MaxDiffBlockLines: maxDiffLines,
		MaxPageSize:       maxPageSize,
		FuzzyThreshold:    fuzzyThreshold,
	}

	f1 := treediff.NewFilesystemFile(args[0], args[0])
	f2 := treediff.NewFilesystemFile(args[1], args[1])

	diff, err := treediff.CompareFiles(f1, f2, cfg, comparators.Specialize)
	if err != nil {
		return errors.Wrap(err, "comparing inputs")
	}

	if textOutput != "" {
		if err := writeOutput(textOutput, present.Text(diff)); err != nil {
			return err
		}
	}
	if htmlOutput != "" {
		if err := writeOutput(htmlOutput, present.HTML(fmt.Sprintf("%s vs %s", args[0], args[1]), diff, cfg.MaxPageSize)); err != nil {
			return err
		}
	}

	if diff != nil {
		os.Exit(1)
	}
	return nil
}

func writeOutput(path, content string) error {
	if path == "-" {
		_, err := fmt.Fprint(os.Stdout, content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
