// Package config holds the run settings of a gitcat invocation, the optional
// YAML configuration file and the static table of per-command options.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Settings are the global options of one invocation. They are built once by
// the command line and passed by value.
type Settings struct {
	Prefix        string
	CataloguePath string
	DryRun        bool
	Quiet         bool
	Local         bool
	Debug         bool
}

// NewSettings returns settings for the given prefix and catalogue file
func NewSettings(prefix, cataloguePath string) Settings {
	return Settings{Prefix: prefix, CataloguePath: cataloguePath}
}

// WithPrefix returns a copy of s using prefix
func (s Settings) WithPrefix(prefix string) Settings {
	s.Prefix = prefix
	return s
}

// Path returns the directory of a catalogue key: absolute keys are used as
// they are, any other key is taken relative to the prefix.
func (s Settings) Path(key string) string {
	if filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.Prefix, key)
}

// Key is the inverse of Path: directories below the prefix are shortened to
// a relative key, anything else stays absolute.
func (s Settings) Key(dir string) string {
	dir = filepath.Clean(dir)
	if s.Prefix == "" {
		return dir
	}
	rel, err := filepath.Rel(filepath.Clean(s.Prefix), dir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return filepath.ToSlash(rel)
}

// DefaultCataloguePath is ~/.dotfiles/config/gitcatrc when ~/.dotfiles/config
// exists and ~/.gitcatrc otherwise
func DefaultCataloguePath(home string) string {
	dotfiles := filepath.Join(home, ".dotfiles", "config")
	if info, err := os.Stat(dotfiles); err == nil && info.IsDir() {
		return filepath.Join(dotfiles, "gitcatrc")
	}
	return filepath.Join(home, ".gitcatrc")
}

// ExpandHome replaces a leading ~ with home
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
