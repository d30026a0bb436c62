// Package compare implements the per-pair resolution loop: decide
// whether two files differ and apply the operator's choice.
package compare

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"samiemad.me/dircmp/internal/differ"
	"samiemad.me/dircmp/internal/ui"
)

// Outcome classifies what happened to one file pair.
type Outcome int

const (
	OutcomeIdentical Outcome = iota
	OutcomeKept
	OutcomeCopiedLeft  // left overwrote right
	OutcomeCopiedRight // right overwrote left
	OutcomeOpened
	OutcomeSkipped
	OutcomeQuit
)

// Mode selects how differences are presented.
type Mode int

const (
	// ModeInline prints a side-by-side diff and prompts for an action.
	ModeInline Mode = iota
	// ModeMergeTool hands every differing pair to the merge tool.
	ModeMergeTool
)

const menu = "Action? return/left/right/open/q >"

// Comparator resolves differences between file pairs one at a time. All
// fields must be set; Sleep may be nil to use time.Sleep.
type Comparator struct {
	Diff    differ.Differ
	Merge   differ.MergeLauncher
	Prompt  ui.Prompter
	Printer *ui.Printer
	Mode    Mode
	Delay   time.Duration
	Sleep   func(time.Duration)
}

// Compare runs the resolution state machine on one pair. The returned
// error is terminal for the whole run: a failing diff, copy or prompt
// has no recovery path.
func (c *Comparator) Compare(ctx context.Context, left, right string) (Outcome, error) {
	leftOK := fileExists(left)
	rightOK := fileExists(right)
	if !leftOK && !rightOK {
		return OutcomeSkipped, nil
	}
	if !leftOK || !rightOK {
		return c.resolveMissing(left, right, leftOK, rightOK)
	}

	same, err := c.Diff.Quiet(ctx, left, right)
	if err != nil {
		return OutcomeSkipped, err
	}
	if same {
		return OutcomeIdentical, nil
	}

	if c.Mode == ModeMergeTool {
		return c.openAndWait(left, right)
	}

	c.Printer.Banner(left + " " + right)
	if err := c.Diff.SideBySide(ctx, left, right, c.Printer.Out); err != nil {
		return OutcomeSkipped, err
	}
	c.Printer.Hint("This was %40s", left)
	return c.resolve(left, right, leftOK, rightOK)
}

// resolveMissing handles a pair with exactly one existing side. The diff
// tool is never invoked on a missing file; the pair is surfaced with a
// notice and the usual menu instead.
func (c *Comparator) resolveMissing(left, right string, leftOK, rightOK bool) (Outcome, error) {
	if c.Mode == ModeMergeTool {
		return c.openAndWait(left, right)
	}
	missing := right
	if !leftOK {
		missing = left
	}
	c.Printer.Banner(left + " " + right)
	c.Printer.Notef("no counterpart: %s is missing", missing)
	c.Printer.Hint("This was %40s", left)
	return c.resolve(left, right, leftOK, rightOK)
}

func (c *Comparator) resolve(left, right string, leftOK, rightOK bool) (Outcome, error) {
	ans, err := c.Prompt.Ask(c.Printer.Accent(menu))
	if err != nil {
		return OutcomeSkipped, err
	}
	switch ans {
	case "left", "l":
		if !leftOK {
			c.Printer.Notef("cannot copy %s: file is missing", left)
			return OutcomeKept, nil
		}
		if err := copyFile(left, right); err != nil {
			return OutcomeKept, err
		}
		return OutcomeCopiedLeft, nil
	case "right", "r":
		if !rightOK {
			c.Printer.Notef("cannot copy %s: file is missing", right)
			return OutcomeKept, nil
		}
		if err := copyFile(right, left); err != nil {
			return OutcomeKept, err
		}
		return OutcomeCopiedRight, nil
	case "open":
		if err := c.Merge.Launch(left, right); err != nil {
			return OutcomeKept, err
		}
		return OutcomeOpened, nil
	case "q":
		return OutcomeQuit, nil
	}
	return OutcomeKept, nil
}

func (c *Comparator) openAndWait(left, right string) (Outcome, error) {
	if err := c.Merge.Launch(left, right); err != nil {
		return OutcomeSkipped, err
	}
	// give the tool a moment to start before moving on
	c.sleep(c.Delay)
	return OutcomeOpened, nil
}

func (c *Comparator) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}

// copyFile overwrites dst with the contents of src. The write is a plain
// truncating copy, not atomic and not reversible.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
