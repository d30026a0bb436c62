// Package cli wires the walker, filter and comparator into the dircmp
// command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"samiemad.me/dircmp/internal/compare"
	"samiemad.me/dircmp/internal/config"
	"samiemad.me/dircmp/internal/differ"
	"samiemad.me/dircmp/internal/ui"
	"samiemad.me/dircmp/internal/walker"
)

// mergeToolArg is the only recognized trailing keyword: hand every
// differing pair straight to the merge tool instead of prompting.
const mergeToolArg = "opendiff"

// Execute runs the dircmp root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "dircmp <left-root> <right-root> [opendiff]",
		Short: "Compare the files of two directory trees and reconcile them interactively",
		Long: `dircmp walks two parallel directory trees bottom-up, diffs every pair of
matching source files and asks, pair by pair, whether to keep the left
version, keep the right version, open an external merge tool, or move on.

With the trailing keyword "opendiff", every differing pair is handed
straight to the external merge tool instead of prompting.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "help" {
				return nil
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "help" {
				return cmd.Help()
			}
			cmd.SilenceUsage = true
			cfg := config.Default()
			if configPath != "" {
				var err error
				cfg, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			return run(cmd.Context(), cfg, args, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file overriding the built-in defaults")
	return cmd
}

func run(ctx context.Context, cfg config.Config, args []string, in io.Reader, out io.Writer) error {
	left := trimRoot(args[0])
	right := trimRoot(args[1])
	mode := compare.ModeInline
	if len(args) == 3 {
		if args[2] != mergeToolArg {
			return fmt.Errorf("unknown argument %q", args[2])
		}
		mode = compare.ModeMergeTool
	}
	if err := checkRoots(left, right); err != nil {
		return err
	}

	printer := ui.NewPrinter(out)
	comp := &compare.Comparator{
		Diff:    differ.Exec{Command: cfg.DiffCommand, Width: cfg.DiffWidth},
		Merge:   differ.Opener{Command: cfg.MergeCommand},
		Prompt:  ui.NewStdinPrompter(in, out),
		Printer: printer,
		Mode:    mode,
		Delay:   cfg.LaunchDelay(),
	}
	return walk(ctx, cfg, comp, printer, left, right)
}

// walk drives the comparator over every interesting file pair, deepest
// directories first. A quit outcome stops the walk mid-run.
func walk(ctx context.Context, cfg config.Config, comp *compare.Comparator, printer *ui.Printer, left, right string) error {
	tree, err := walker.Scan(left, walker.Options{
		ExcludeNames:    cfg.ExcludeNames,
		ExcludeSuffixes: cfg.ExcludeSuffixes,
		ExcludePrefixes: cfg.ExcludePrefixes,
	})
	if err != nil {
		return err
	}
	filter := walker.Filter{Suffixes: cfg.Suffixes, Prefixes: cfg.Prefixes}

	printer.Notef("Comparing %s and %s", left, right)
	for dir, files := range tree.Dirs() {
		rel, err := filepath.Rel(left, dir)
		if err != nil {
			return err
		}
		mirrored, err := walker.Mirror(dir, left, right)
		if err != nil {
			return err
		}
		printer.Banner(rel)
		for _, name := range files {
			if !filter.Interesting(name) {
				continue
			}
			outcome, err := comp.Compare(ctx, filepath.Join(dir, name), filepath.Join(mirrored, name))
			if err != nil {
				return err
			}
			if outcome == compare.OutcomeQuit {
				return nil
			}
		}
	}
	return nil
}

// checkRoots verifies both sides concurrently; either failure is fatal.
func checkRoots(left, right string) error {
	var g errgroup.Group
	for _, root := range []string{left, right} {
		g.Go(func() error {
			stat, err := os.Stat(root)
			if err != nil || !stat.IsDir() {
				return fmt.Errorf("`%s' is not a directory", root)
			}
			return nil
		})
	}
	return g.Wait()
}

func trimRoot(path string) string {
	trimmed := strings.TrimRight(path, string(os.PathSeparator))
	if trimmed == "" {
		return path
	}
	return trimmed
}
