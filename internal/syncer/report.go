package syncer

import (
	"fmt"
	"io"
	"strings"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	"github.com/NicabarNimble/go-gitcat/internal/git"
)

// reporter writes the status lines of a run
type reporter struct {
	out   io.Writer
	quiet bool
	width int
}

func newReporter(out io.Writer, quiet bool, width int) *reporter {
	return &reporter{out: out, quiet: quiet, width: width}
}

// message prints general text, unless quiet
func (r *reporter) message(msg string) {
	if !r.quiet {
		fmt.Fprintln(r.out, msg)
	}
}

// always prints general text, even when quiet
func (r *reporter) always(msg string) {
	fmt.Fprintln(r.out, msg)
}

// repo prints a routine repository line, unless quiet
func (r *reporter) repo(key, msg string) {
	if !r.quiet {
		r.important(key, msg)
	}
}

// important prints a repository line even when quiet
func (r *reporter) important(key, msg string) {
	if strings.HasPrefix(msg, "\n") {
		fmt.Fprintln(r.out, key+msg)
		return
	}
	fmt.Fprintln(r.out, catalogue.Pad(key, r.width)+" "+msg)
}

// problem prints the diagnostic of a failed git call
func (r *reporter) problem(res *git.Result) {
	fmt.Fprintln(r.out, res.Diagnostic())
}
