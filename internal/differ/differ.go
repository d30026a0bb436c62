// Package differ wraps the external diff and merge tools behind small
// interfaces so the compare loop can be exercised with fakes.
package differ

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
)

// Differ produces diffs for a pair of files.
type Differ interface {
	// Quiet reports whether left and right have identical contents.
	Quiet(ctx context.Context, left, right string) (bool, error)
	// SideBySide writes a side-by-side listing of the differences to out.
	SideBySide(ctx context.Context, left, right string, out io.Writer) error
}

// MergeLauncher starts an external visual merge tool on a file pair. The
// tool runs detached and its completion is never awaited.
type MergeLauncher interface {
	Launch(left, right string) error
}

// Exec shells out to a line-oriented diff binary such as GNU diff.
type Exec struct {
	Command string
	Width   int
}

func (e Exec) args(left, right string) []string {
	return []string{
		"--side-by-side",
		"-W" + strconv.Itoa(e.Width),
		"-p",
		"--suppress-common-lines",
		left,
		right,
	}
}

// Quiet runs diff -q and classifies the exit status: 0 means identical,
// 1 means different, anything else (missing file, unreadable file) is an
// error.
func (e Exec) Quiet(ctx context.Context, left, right string) (bool, error) {
	args := append([]string{"-q"}, e.args(left, right)...)
	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if exitedWith(err, 1) {
		return false, nil
	}
	return false, fmt.Errorf("%s -q %s %s: %w", e.Command, left, right, err)
}

func (e Exec) SideBySide(ctx context.Context, left, right string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, e.Command, e.args(left, right)...)
	cmd.Stdout = out
	cmd.Stderr = out
	err := cmd.Run()
	if err == nil || exitedWith(err, 1) {
		// exit status 1 only means the files differ
		return nil
	}
	return fmt.Errorf("%s %s %s: %w", e.Command, left, right, err)
}

func exitedWith(err error, code int) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == code
}

// Opener launches a merge tool by name.
type Opener struct {
	Command string
}

// Launch starts the tool on the pair and returns without waiting. The
// child is reaped in the background when it eventually exits.
func (o Opener) Launch(left, right string) error {
	cmd := exec.Command(o.Command, left, right)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", o.Command, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
