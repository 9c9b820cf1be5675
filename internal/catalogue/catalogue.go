// Package catalogue reads, edits and writes the gitcat catalogue: the list of
// local directories and the remote repositories they track.
//
// The catalogue file is plain text:
//
//	# List of git repositories to sync using gitcat
//
//	prefix     = /home/me
//	Code/Prog1 = git@bitbucket.org:me/prog1.git
//	Notes/Life = git@github.com:me/life.git
//
// Any line containing " = " is an entry, split on its first " = ". Other
// lines are ignored. A "prefix" entry records a non-default prefix directory
// rather than a repository.
package catalogue

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NicabarNimble/go-gitcat/internal/errors"
)

// Header is the first line of every saved catalogue
const Header = "# List of git repositories to sync using gitcat"

const (
	separator = " = "
	prefixKey = "prefix"
)

// Entry is one catalogued repository
type Entry struct {
	Directory string
	Remote    string
}

// Catalogue is an ordered mapping from directory to remote
type Catalogue struct {
	// Prefix is the prefix recorded in the file, empty for the default
	Prefix string

	entries []Entry
	index   map[string]int
	width   int
}

// New returns an empty catalogue
func New() *Catalogue {
	return &Catalogue{index: make(map[string]int)}
}

// Load reads the catalogue stored at path
func Load(path string) (*Catalogue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errors.CatalogueReadError{Path: path, Err: err}
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		if errors.IsFatal(err) {
			return nil, err
		}
		return nil, &errors.CatalogueReadError{Path: path, Err: err}
	}
	return c, nil
}

// Parse reads a catalogue from r
func Parse(r io.Reader) (*Catalogue, error) {
	c := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		dir, remote, found := strings.Cut(line, separator)
		if !found {
			continue
		}
		dir = strings.TrimSpace(dir)
		remote = strings.TrimSpace(remote)
		if dir == "" {
			continue
		}
		if strings.EqualFold(dir, prefixKey) {
			c.Prefix = remote
			continue
		}
		if err := c.Add(dir, remote); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan catalogue: %w", err)
	}
	return c, nil
}

// Add appends a repository. Directories must be unique and representable
// in the file format.
func (c *Catalogue) Add(dir, remote string) error {
	if reason := checkKey(dir); reason != "" {
		return &errors.InvalidKeyError{Key: dir, Reason: reason}
	}
	if _, ok := c.index[dir]; ok {
		return &errors.DuplicateEntryError{Key: dir}
	}
	c.index[dir] = len(c.entries)
	c.entries = append(c.entries, Entry{Directory: dir, Remote: remote})
	if w := lipgloss.Width(dir); w > c.width {
		c.width = w
	}
	return nil
}

// checkKey returns why dir cannot be stored as a catalogue key, or ""
func checkKey(dir string) string {
	switch {
	case dir == "":
		return "is empty"
	case strings.TrimSpace(dir) != dir:
		return "has leading or trailing whitespace"
	case strings.ContainsAny(dir, "\r\n"):
		return "contains a line break"
	case strings.Contains(dir, separator):
		return fmt.Sprintf("contains %q", separator)
	case strings.EqualFold(dir, prefixKey):
		return "is reserved for the prefix setting"
	}
	return ""
}

// Remove deletes dir from the catalogue, reporting whether it was present
func (c *Catalogue) Remove(dir string) bool {
	i, ok := c.index[dir]
	if !ok {
		return false
	}
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	c.reindex()
	return true
}

func (c *Catalogue) reindex() {
	c.index = make(map[string]int, len(c.entries))
	c.width = 0
	for i, e := range c.entries {
		c.index[e.Directory] = i
		if w := lipgloss.Width(e.Directory); w > c.width {
			c.width = w
		}
	}
}

// Get returns the remote for dir
func (c *Catalogue) Get(dir string) (string, bool) {
	i, ok := c.index[dir]
	if !ok {
		return "", false
	}
	return c.entries[i].Remote, true
}

// Has reports whether dir is catalogued
func (c *Catalogue) Has(dir string) bool {
	_, ok := c.index[dir]
	return ok
}

// Keys returns the directories in catalogue order
func (c *Catalogue) Keys() []string {
	keys := make([]string, len(c.entries))
	for i, e := range c.entries {
		keys[i] = e.Directory
	}
	return keys
}

// Entries returns a copy of the entries in catalogue order
func (c *Catalogue) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of catalogued repositories
func (c *Catalogue) Len() int {
	return len(c.entries)
}

// Width is the display width of the longest directory, 0 when empty
func (c *Catalogue) Width() int {
	return c.width
}

// Pad right-pads key with spaces to width terminal cells
func Pad(key string, width int) string {
	if n := width - lipgloss.Width(key); n > 0 {
		return key + strings.Repeat(" ", n)
	}
	return key
}

// Line renders a catalogue line with the given separator
func (c *Catalogue) Line(dir, sep string) string {
	remote, _ := c.Get(dir)
	return fmt.Sprintf("%s %s %s", Pad(dir, c.width), sep, remote)
}
