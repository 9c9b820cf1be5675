package catalogue

import (
	"regexp"

	"github.com/NicabarNimble/go-gitcat/internal/errors"
)

// Select returns the catalogue keys matching pattern, in catalogue order.
// An empty pattern selects every key. Matching is a regular expression
// search, so "Prog" selects "Code/Prog1".
func Select(c *Catalogue, pattern string) ([]string, error) {
	if pattern == "" {
		return c.Keys(), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &errors.FilterPatternError{Pattern: pattern, Err: err}
	}

	var keys []string
	for _, e := range c.entries {
		if re.MatchString(e.Directory) {
			keys = append(keys, e.Directory)
		}
	}
	return keys, nil
}
