package catalogue

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NicabarNimble/go-gitcat/internal/errors"
)

const opSave = "save catalogue"

// ErrSave matches any error returned by Save under errors.Is
var ErrSave = errors.New(opSave, nil)

// Write renders c in the canonical file format
func (c *Catalogue) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n\n", Header)
	if c.Prefix != "" {
		fmt.Fprintf(bw, "%s%s%s\n", prefixKey, separator, c.Prefix)
	}
	for _, e := range c.entries {
		fmt.Fprintln(bw, c.Line(e.Directory, "="))
	}
	return bw.Flush()
}

// Save replaces the file at path with c
func Save(c *Catalogue, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.New(opSave, fmt.Errorf("failed to create directory: %w", err))
	}

	tmp, err := os.CreateTemp(dir, ".gitcatrc-*")
	if err != nil {
		return errors.New(opSave, fmt.Errorf("failed to create temp file: %w", err))
	}
	defer os.Remove(tmp.Name())

	if err := c.Write(tmp); err != nil {
		tmp.Close()
		return errors.New(opSave, fmt.Errorf("failed to write catalogue: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return errors.New(opSave, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.New(opSave, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.New(opSave, fmt.Errorf("failed to replace %s: %w", path, err))
	}
	return nil
}
