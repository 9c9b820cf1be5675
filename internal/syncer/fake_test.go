package syncer

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	"github.com/NicabarNimble/go-gitcat/internal/config"
	"github.com/NicabarNimble/go-gitcat/internal/git"
)

type response struct {
	stdout string
	stderr string
	status int
}

// rule answers invocations whose command line starts with prefix, in dir
// when dir is set
type rule struct {
	dir    string
	prefix string
	resp   response
}

// fakeExecutor answers git invocations from a script and records them
type fakeExecutor struct {
	rules []rule
	calls []git.Invocation
}

func (f *fakeExecutor) on(prefix string, resp response) *fakeExecutor {
	f.rules = append(f.rules, rule{prefix: prefix, resp: resp})
	return f
}

func (f *fakeExecutor) onIn(dir, prefix string, resp response) *fakeExecutor {
	f.rules = append(f.rules, rule{dir: dir, prefix: prefix, resp: resp})
	return f
}

func (f *fakeExecutor) Run(ctx context.Context, inv git.Invocation) *git.Result {
	f.calls = append(f.calls, inv)
	line := strings.TrimSpace(inv.Subcommand + " " + strings.Join(inv.Args, " "))

	resp := response{}
	if line == "rev-parse --is-inside-work-tree" {
		resp = response{stdout: "true\n"}
	}
	for _, r := range f.rules {
		if (r.dir == "" || r.dir == inv.Dir) && strings.HasPrefix(line, r.prefix) {
			resp = r.resp
			break
		}
	}
	return git.NewResult(inv.Key, inv.Subcommand, inv.Args, resp.status, resp.stdout, resp.stderr)
}

// commandLines lists the recorded invocations in order
func (f *fakeExecutor) commandLines() []string {
	var lines []string
	for _, inv := range f.calls {
		lines = append(lines, strings.TrimSpace(inv.Subcommand+" "+strings.Join(inv.Args, " ")))
	}
	return lines
}

// ran reports whether a call starting with prefix was issued
func (f *fakeExecutor) ran(prefix string) bool {
	for _, line := range f.commandLines() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (f *fakeExecutor) find(prefix string) (git.Invocation, bool) {
	for _, inv := range f.calls {
		if strings.HasPrefix(strings.TrimSpace(inv.Subcommand+" "+strings.Join(inv.Args, " ")), prefix) {
			return inv, true
		}
	}
	return git.Invocation{}, false
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fixture struct {
	prefix   string
	settings config.Settings
	cat      *catalogue.Catalogue
	exec     *fakeExecutor
	out      *bytes.Buffer
}

// newFixture builds a prefix directory holding the installed keys and a
// catalogue listing keys in order
func newFixture(t *testing.T, keys []string, installed ...string) *fixture {
	t.Helper()

	prefix := t.TempDir()
	cat := catalogue.New()
	for _, key := range keys {
		require.NoError(t, cat.Add(key, "git@host:org/"+strings.ToLower(filepath.Base(key))+".git"))
	}
	for _, key := range installed {
		require.NoError(t, os.MkdirAll(filepath.Join(prefix, key), 0755))
	}

	return &fixture{
		prefix:   prefix,
		settings: config.NewSettings(prefix, filepath.Join(t.TempDir(), "gitcatrc")),
		cat:      cat,
		exec:     &fakeExecutor{},
		out:      &bytes.Buffer{},
	}
}

func (f *fixture) syncer() *Syncer {
	return New(f.settings, f.cat, f.exec, f.out, quietLogger())
}
