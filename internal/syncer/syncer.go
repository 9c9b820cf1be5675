// Package syncer applies one gitcat command to every selected repository in
// the catalogue.
//
// Each repository is handled on its own: a failing git call is reported as
// that repository's status and the loop moves on. Only catalogue level
// problems, such as a bad filter, stop a command.
package syncer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	"github.com/NicabarNimble/go-gitcat/internal/config"
	"github.com/NicabarNimble/go-gitcat/internal/git"
)

// Request carries the options of one command
type Request struct {
	Filter     string   // regular expression selecting catalogue keys
	GitArgs    []string // option fragments passed through to git
	Directory  string   // add and remove
	Everything bool     // remove: also delete the working directory
	Table      bool     // list: render a table
}

// Syncer runs gitcat commands over a catalogue
type Syncer struct {
	settings  config.Settings
	catalogue *catalogue.Catalogue
	exec      git.Executor
	out       io.Writer
	log       logrus.FieldLogger
	report    *reporter
}

// New creates a Syncer writing status lines to out
func New(settings config.Settings, cat *catalogue.Catalogue, exec git.Executor, out io.Writer, log logrus.FieldLogger) *Syncer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Syncer{
		settings:  settings,
		catalogue: cat,
		exec:      exec,
		out:       out,
		log:       log,
		report:    newReporter(out, settings.Quiet, cat.Width()),
	}
}

// getwd is a variable so it can be mocked in tests
var getwd = os.Getwd

// Run dispatches command by name
func (s *Syncer) Run(ctx context.Context, command string, req Request) error {
	switch command {
	case "install":
		return s.Install(ctx, req)
	case "fetch":
		return s.Fetch(ctx, req)
	case "pull":
		return s.Pull(ctx, req)
	case "commit":
		return s.Commit(ctx, req)
	case "push":
		return s.Push(ctx, req)
	case "status":
		return s.Status(ctx, req)
	case "branch":
		return s.Branch(ctx, req)
	case "diff":
		return s.Diff(ctx, req)
	case "add":
		return s.Add(ctx, req)
	case "remove":
		return s.Remove(ctx, req)
	case "list":
		return s.List(ctx, req)
	}
	return fmt.Errorf("unknown command %q", command)
}

// repository is a catalogue entry resolved for this run
type repository struct {
	key    string
	dir    string
	remote string
}

func (s *Syncer) repository(key string) repository {
	remote, _ := s.catalogue.Get(key)
	return repository{key: key, dir: s.settings.Path(key), remote: remote}
}

// each calls fn for every selected repository, stopping early only when ctx
// is cancelled
func (s *Syncer) each(ctx context.Context, command, filter string, fn func(context.Context, repository)) error {
	keys, err := catalogue.Select(s.catalogue, filter)
	if err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"command":      command,
		"filter":       filter,
		"repositories": len(keys),
	}).Debug("selected repositories")

	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(ctx, s.repository(key))
	}
	return ctx.Err()
}

// git runs one git subcommand inside the repository directory
func (s *Syncer) git(ctx context.Context, r repository, subcommand string, args ...string) *git.Result {
	return s.exec.Run(ctx, git.Invocation{
		Dir:        r.dir,
		Key:        r.key,
		Subcommand: subcommand,
		Args:       args,
	})
}

// isWorkingCopy reports whether the repository directory exists and git
// recognises it as a working tree
func (s *Syncer) isWorkingCopy(ctx context.Context, r repository) bool {
	if !isDir(r.dir) {
		s.log.WithField("repository", r.key).Debugf("%s does not exist", r.dir)
		return false
	}
	res := s.git(ctx, r, "rev-parse", "--is-inside-work-tree")
	return res.OK && strings.Contains(res.Output, "true")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// withArgs returns a new slice of base followed by extra
func withArgs(base []string, extra ...string) []string {
	args := make([]string, 0, len(base)+len(extra))
	args = append(args, base...)
	return append(args, extra...)
}
