// Package config holds the tunable settings of dircmp. The built-in
// defaults reproduce the classic behavior; a TOML file can override any
// of them.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config carries everything the walker and comparator need. Start from
// Default, not from the zero value.
type Config struct {
	// DiffCommand is the external diff binary. It must support -q with
	// empty output on identical files and a side-by-side listing mode.
	DiffCommand string `toml:"diff_command"`
	// MergeCommand is the external visual merge tool.
	MergeCommand string `toml:"merge_command"`
	// DiffWidth is passed to diff as -W for the side-by-side listing.
	DiffWidth int `toml:"diff_width"`
	// LaunchDelayMS is how long to pause after starting the merge tool
	// in merge-tool mode, giving it a moment to come up.
	LaunchDelayMS int `toml:"launch_delay_ms"`

	// Suffixes and Prefixes select the file names worth comparing.
	Suffixes []string `toml:"suffixes"`
	Prefixes []string `toml:"prefixes"`

	// Exclude* name the directories left out of the walk.
	ExcludeNames    []string `toml:"exclude_names"`
	ExcludeSuffixes []string `toml:"exclude_suffixes"`
	ExcludePrefixes []string `toml:"exclude_prefixes"`
}

func Default() Config {
	return Config{
		DiffCommand:     "diff",
		MergeCommand:    "opendiff",
		DiffWidth:       200,
		LaunchDelayMS:   500,
		Suffixes:        []string{".py", ".m", ".h", ".cc", ".md", ".txt"},
		Prefixes:        []string{"makefile", ".cym"},
		ExcludeNames:    []string{"DerivedData", "build"},
		ExcludeSuffixes: []string{".svn", ".git"},
		ExcludePrefixes: []string{"bin"},
	}
}

// Load reads a TOML file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.DiffCommand == "" {
		return errors.New("diff_command must not be empty")
	}
	if c.MergeCommand == "" {
		return errors.New("merge_command must not be empty")
	}
	if c.DiffWidth <= 0 {
		return fmt.Errorf("diff_width must be positive, got %d", c.DiffWidth)
	}
	if c.LaunchDelayMS < 0 {
		return fmt.Errorf("launch_delay_ms must not be negative, got %d", c.LaunchDelayMS)
	}
	return nil
}

func (c Config) LaunchDelay() time.Duration {
	return time.Duration(c.LaunchDelayMS) * time.Millisecond
}
