// Package extract pulls short summaries out of git's textual output.
//
// The patterns follow git's current porcelain and shortstat formats. They are
// heuristics: when git changes its wording a lookup simply reports no match
// and callers fall back to showing the raw output.
package extract

import (
	"regexp"
	"strings"
)

var (
	// [ahead 1], [behind 1] or [ahead 2, behind 1] in status --branch output
	aheadBehindRegex = regexp.MustCompile(`\[((ahead|behind) [0-9]+(, )?)+\]`)

	// 1 file changed, 3 files changed in diff --shortstat output
	filesChangedRegex = regexp.MustCompile(`([0-9]+ files?) changed`)
)

// AheadBehind returns the contents of the first [ahead N, behind M] clause in
// text, without the brackets.
func AheadBehind(text string) (string, bool) {
	match := aheadBehindRegex.FindString(text)
	if match == "" {
		return "", false
	}
	return match[1 : len(match)-1], true
}

// ChangedFiles returns the "N file(s)" part of a "N file(s) changed" clause.
func ChangedFiles(text string) (string, bool) {
	m := filesChangedRegex.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsSingleLine reports whether text has no line breaks.
func IsSingleLine(text string) bool {
	return !strings.Contains(text, "\n")
}

// DropFirstLine returns everything after the first line of text.
func DropFirstLine(text string) string {
	i := strings.Index(text, "\n")
	if i < 0 {
		return ""
	}
	return text[i+1:]
}

// DropStatusHeader strips the "## branch...upstream" header that
// status --branch prints first. A single line that is not a header is kept.
func DropStatusHeader(text string) string {
	if !IsSingleLine(text) {
		return DropFirstLine(text)
	}
	if strings.HasPrefix(strings.TrimSpace(text), "##") {
		return ""
	}
	return text
}

// WithoutLinesContaining drops every line of text that contains marker.
func WithoutLinesContaining(text, marker string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, marker) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// PushUpToDate reports whether a push --porcelain --dry-run found nothing to
// send.
func PushUpToDate(output string) bool {
	return strings.Contains(output, "[up to date]")
}

// PushSucceeded reports whether push --porcelain output has the shape of a
// completed push: a "To <remote>" line first and "Done" last.
func PushSucceeded(output string) bool {
	trimmed := strings.TrimSpace(output)
	return strings.HasPrefix(trimmed, "To ") && strings.HasSuffix(trimmed, "Done")
}
