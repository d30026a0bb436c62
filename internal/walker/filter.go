package walker

import "strings"

// Filter decides which file names are worth comparing. Matching is
// case-sensitive.
type Filter struct {
	Suffixes []string
	Prefixes []string
}

// Interesting reports whether name matches the allow-list.
func (f Filter) Interesting(name string) bool {
	for _, s := range f.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	for _, p := range f.Prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
