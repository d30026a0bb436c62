package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samiemad.me/dircmp/internal/compare"
	"samiemad.me/dircmp/internal/config"
	"samiemad.me/dircmp/internal/ui"
)

type byteDiffer struct{ quietCalls int }

func (d *byteDiffer) Quiet(_ context.Context, left, right string) (bool, error) {
	d.quietCalls++
	l, err := os.ReadFile(left)
	if err != nil {
		return false, err
	}
	r, err := os.ReadFile(right)
	if err != nil {
		return false, err
	}
	return bytes.Equal(l, r), nil
}

func (d *byteDiffer) SideBySide(_ context.Context, left, right string, out io.Writer) error {
	fmt.Fprintf(out, "%s | %s\n", left, right)
	return nil
}

type scriptedPrompter struct {
	t       *testing.T
	answers []string
	asked   int
}

func (p *scriptedPrompter) Ask(string) (string, error) {
	if p.asked >= len(p.answers) {
		p.t.Fatal("unexpected prompt")
	}
	ans := p.answers[p.asked]
	p.asked++
	return ans, nil
}

type recordingLauncher struct{ pairs [][2]string }

func (l *recordingLauncher) Launch(left, right string) error {
	l.pairs = append(l.pairs, [2]string{left, right})
	return nil
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestComparator(t *testing.T, out io.Writer, answers ...string) (*compare.Comparator, *scriptedPrompter, *byteDiffer) {
	t.Helper()
	prompter := &scriptedPrompter{t: t, answers: answers}
	d := &byteDiffer{}
	comp := &compare.Comparator{
		Diff:    d,
		Merge:   &recordingLauncher{},
		Prompt:  prompter,
		Printer: &ui.Printer{Out: out},
	}
	return comp, prompter, d
}

func TestHelpArgumentPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "dircmp <left-root> <right-root> [opendiff]")
	assert.Contains(t, out.String(), "walks two parallel directory trees")
}

func TestNoArgumentsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "arg(s)")
	assert.Contains(t, out.String(), "Usage:")
}

func TestOneArgumentPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRunRejectsUnknownKeyword(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	err := run(context.Background(), config.Default(),
		[]string{left, right, "vimdiff"}, strings.NewReader(""), io.Discard)
	require.ErrorContains(t, err, "unknown argument")
}

func TestRunRejectsNonDirectoryRoot(t *testing.T) {
	left := t.TempDir()
	file := writeFile(t, left, "plain.txt", "x")

	err := run(context.Background(), config.Default(),
		[]string{left, file}, strings.NewReader(""), io.Discard)
	require.ErrorContains(t, err, "is not a directory")

	err = run(context.Background(), config.Default(),
		[]string{filepath.Join(left, "nope"), left}, strings.NewReader(""), io.Discard)
	require.ErrorContains(t, err, "is not a directory")
}

func TestRunIdenticalTrees(t *testing.T) {
	if _, err := exec.LookPath("diff"); err != nil {
		t.Skip("diff binary not available")
	}
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "x/readme.txt", "hello\n")
	writeFile(t, right, "x/readme.txt", "hello\n")

	var out bytes.Buffer
	err := run(context.Background(), config.Default(),
		[]string{left + string(os.PathSeparator), right}, strings.NewReader(""), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Comparing "+left+" and "+right)
}

func TestWalkEndToEnd(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "x/readme.txt", "left version\n")
	writeFile(t, right, "x/readme.txt", "right version\n")
	writeFile(t, left, "x/photo.jpg", "left pixels")
	writeFile(t, right, "x/photo.jpg", "right pixels")

	var out bytes.Buffer
	comp, prompter, d := newTestComparator(t, &out, "left")

	err := walk(context.Background(), config.Default(), comp, &ui.Printer{Out: &out}, left, right)
	require.NoError(t, err)

	assert.Equal(t, 1, prompter.asked, "exactly one prompt, for readme.txt")
	assert.Equal(t, 1, d.quietCalls, "photo.jpg is never diffed")

	got, err := os.ReadFile(filepath.Join(right, "x", "readme.txt"))
	require.NoError(t, err)
	assert.Equal(t, "left version\n", string(got))

	pixels, err := os.ReadFile(filepath.Join(right, "x", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "right pixels", string(pixels))
}

func TestWalkQuitStopsImmediately(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "a.txt", "one left\n")
	writeFile(t, right, "a.txt", "one right\n")
	writeFile(t, left, "b.txt", "two left\n")
	writeFile(t, right, "b.txt", "two right\n")

	var out bytes.Buffer
	comp, prompter, _ := newTestComparator(t, &out, "q")

	err := walk(context.Background(), config.Default(), comp, &ui.Printer{Out: &out}, left, right)
	require.NoError(t, err)

	assert.Equal(t, 1, prompter.asked)
	got, err := os.ReadFile(filepath.Join(right, "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "two right\n", string(got), "b.txt is never visited")
}

func TestWalkSkipsExcludedDirectories(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "build/gen.txt", "left\n")
	writeFile(t, right, "build/gen.txt", "right\n")
	writeFile(t, left, "bin-tools/tool.py", "left\n")
	writeFile(t, right, "bin-tools/tool.py", "right\n")
	writeFile(t, left, "src/main.cc", "same\n")
	writeFile(t, right, "src/main.cc", "same\n")

	var out bytes.Buffer
	comp, prompter, d := newTestComparator(t, &out)

	err := walk(context.Background(), config.Default(), comp, &ui.Printer{Out: &out}, left, right)
	require.NoError(t, err)

	assert.Zero(t, prompter.asked)
	assert.Equal(t, 1, d.quietCalls, "only src/main.cc is compared")
}

func TestWalkBannersBottomUp(t *testing.T) {
	left, right := t.TempDir(), t.TempDir()
	writeFile(t, left, "x/deep/readme.txt", "same\n")
	writeFile(t, right, "x/deep/readme.txt", "same\n")

	var out bytes.Buffer
	printer := &ui.Printer{Out: &out, Width: func() int { return 30 }}
	comp, _, _ := newTestComparator(t, &out)

	err := walk(context.Background(), config.Default(), comp, printer, left, right)
	require.NoError(t, err)

	deep := strings.Index(out.String(), filepath.Join("x", "deep"))
	rootBanner := strings.LastIndex(out.String(), "-.-")
	require.GreaterOrEqual(t, deep, 0)
	require.GreaterOrEqual(t, rootBanner, 0)
	assert.Less(t, deep, rootBanner, "deepest directory is announced first")
}

func TestTrimRoot(t *testing.T) {
	sep := string(os.PathSeparator)
	assert.Equal(t, "a"+sep+"b", trimRoot("a"+sep+"b"+sep))
	assert.Equal(t, "a", trimRoot("a"))
	assert.Equal(t, sep, trimRoot(sep))
}
