package errors

import (
	stderrors "errors"
	"fmt"
)

// CatalogueReadError is returned when the catalogue file cannot be read
type CatalogueReadError struct {
	Path string
	Err  error
}

func (e *CatalogueReadError) Error() string {
	return fmt.Sprintf("there was a problem reading the catalogue file %s", e.Path)
}

func (e *CatalogueReadError) Unwrap() error {
	return e.Err
}

// DuplicateEntryError is returned when a directory appears in the catalogue
// more than once
type DuplicateEntryError struct {
	Key string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("%s appears in the catalogue more than once!", e.Key)
}

// InvalidKeyError is returned for a directory the catalogue file cannot
// store as a key
type InvalidKeyError struct {
	Key    string
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%q cannot be catalogued: the directory name %s", e.Key, e.Reason)
}

// FilterPatternError is returned for a repository filter that is not a
// valid regular expression
type FilterPatternError struct {
	Pattern string
	Err     error
}

func (e *FilterPatternError) Error() string {
	return fmt.Sprintf("invalid repository filter %q: %v", e.Pattern, e.Err)
}

func (e *FilterPatternError) Unwrap() error {
	return e.Err
}

// PreconditionError is returned when add or remove cannot proceed for the
// given directory
type PreconditionError struct {
	Path   string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s %s", e.Path, e.Reason)
}

// NewPrecondition creates a PreconditionError
func NewPrecondition(path, reason string) *PreconditionError {
	return &PreconditionError{Path: path, Reason: reason}
}

// ConfigError is returned when the gitcat configuration file is unusable
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is one of the conditions that abort a whole
// invocation
func IsFatal(err error) bool {
	var (
		readErr   *CatalogueReadError
		dupErr    *DuplicateEntryError
		keyErr    *InvalidKeyError
		filterErr *FilterPatternError
		preErr    *PreconditionError
		cfgErr    *ConfigError
	)
	return stderrors.As(err, &readErr) ||
		stderrors.As(err, &dupErr) ||
		stderrors.As(err, &keyErr) ||
		stderrors.As(err, &filterErr) ||
		stderrors.As(err, &preErr) ||
		stderrors.As(err, &cfgErr)
}
