package git

import (
	"fmt"
	"strings"
)

// Result is the captured outcome of one git invocation
type Result struct {
	Key        string   // catalogue key of the repository
	Command    string   // git subcommand
	Args       []string // arguments after the subcommand
	ExitStatus int
	OK         bool
	Stdout     string
	Stderr     string
	Output     string // normalized stdout and stderr
}

// NewResult builds a Result and its normalized output
func NewResult(key, command string, args []string, exitStatus int, stdout, stderr string) *Result {
	return &Result{
		Key:        key,
		Command:    command,
		Args:       args,
		ExitStatus: exitStatus,
		OK:         exitStatus == 0,
		Stdout:     stdout,
		Stderr:     stderr,
		Output:     Normalize(stdout, stderr),
	}
}

// CommandLine renders the subcommand and its arguments
func (r *Result) CommandLine() string {
	return strings.TrimSpace(r.Command + " " + strings.Join(r.Args, " "))
}

// Diagnostic formats a failed invocation for display
func (r *Result) Diagnostic() string {
	msg := fmt.Sprintf("%s: there was an error using git %s", r.Key, r.CommandLine())
	if detail := strings.TrimSpace(lineBreaks(r.Stderr)); detail != "" {
		msg += "\n" + indent(detail)
	}
	return msg
}

// Normalize merges stdout and stderr: each line is trimmed, blank lines are
// removed and the rest are indented by two spaces.
func Normalize(stdout, stderr string) string {
	var lines []string
	for _, text := range []string{stdout, stderr} {
		for _, line := range strings.Split(lineBreaks(text), "\n") {
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, "  "+line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// lineBreaks turns the carriage returns used by progress meters into newlines
func lineBreaks(text string) string {
	return strings.ReplaceAll(text, "\r", "\n")
}

func indent(text string) string {
	return "  " + strings.ReplaceAll(text, "\n", "\n  ")
}
