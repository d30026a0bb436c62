package walker

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// DirTree is one scanned directory: the file names it directly contains
// and its scanned subdirectories.
type DirTree struct {
	Path    string
	Files   []string
	SubDirs []*DirTree
}

// Options control which directories a scan descends into. A directory is
// excluded when its name matches any entry of any list; exclusion applies
// to the directory and everything below it.
type Options struct {
	ExcludeNames    []string
	ExcludeSuffixes []string
	ExcludePrefixes []string
}

func (o Options) excluded(name string) bool {
	for _, n := range o.ExcludeNames {
		if name == n {
			return true
		}
	}
	for _, s := range o.ExcludeSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, p := range o.ExcludePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Scan reads the directory tree rooted at root, leaving out excluded
// directories.
func Scan(root string, opts Options) (*DirTree, error) {
	return scan(root, opts)
}

func scan(path string, opts Options) (*DirTree, error) {
	tree := &DirTree{Path: path}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			tree.Files = append(tree.Files, entry.Name())
			continue
		}
		if opts.excluded(entry.Name()) {
			continue
		}
		sd, err := scan(filepath.Join(path, entry.Name()), opts)
		if err != nil {
			return nil, err
		}
		tree.SubDirs = append(tree.SubDirs, sd)
	}
	return tree, nil
}

// Dirs returns an iterator over every scanned directory, bottom-up: a
// directory's subdirectories are yielded before the directory itself.
func (t *DirTree) Dirs() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		t.push(yield)
	}
}

func (t *DirTree) push(yield func(string, []string) bool) bool {
	for _, sd := range t.SubDirs {
		if !sd.push(yield) {
			return false
		}
	}
	return yield(t.Path, t.Files)
}

// Mirror maps a path under leftRoot to its counterpart under rightRoot.
func Mirror(path, leftRoot, rightRoot string) (string, error) {
	rel, err := filepath.Rel(leftRoot, path)
	if err != nil {
		return "", fmt.Errorf("mirror %s: %w", path, err)
	}
	return filepath.Join(rightRoot, rel), nil
}
