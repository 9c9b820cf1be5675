package syncer

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// fallbackBranch is checked out when the remote does not advertise a HEAD
const fallbackBranch = "master"

// Install clones missing repositories. A directory that exists without being
// a repository is initialised in place and fetched from the remote.
func (s *Syncer) Install(ctx context.Context, req Request) error {
	return s.each(ctx, "install", req.Filter, func(ctx context.Context, r repository) {
		if isDir(r.dir) {
			if hasRepository(r.dir) {
				s.report.repo(r.key, "already exists")
				return
			}
			if s.settings.DryRun {
				s.report.repo(r.key, "would be initialised")
				return
			}
			s.initialise(ctx, r)
		} else {
			s.report.repo(r.key, "installing")
			if !s.settings.DryRun {
				s.clone(ctx, r)
			}
		}

		if !s.settings.DryRun && !s.isWorkingCopy(ctx, r) {
			s.report.important(r.key, "not a git repository!?")
		}
	})
}

// hasRepository reports whether dir itself holds a git repository. Parent
// directories are not searched.
func hasRepository(dir string) bool {
	_, err := gogit.PlainOpen(dir)
	return err == nil || !stderrors.Is(err, gogit.ErrRepositoryNotExists)
}

func (s *Syncer) clone(ctx context.Context, r repository) {
	parent := filepath.Dir(r.dir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		s.report.important(r.key, fmt.Sprintf("unable to create %s: %v", parent, err))
		return
	}

	in := repository{key: r.key, dir: parent, remote: r.remote}
	res := s.git(ctx, in, "clone", "--quiet", r.remote, filepath.Base(r.dir))
	if !res.OK {
		s.report.problem(res)
		return
	}
	s.report.repo(r.key, "done")
}

// initialise turns an existing directory into a clone of the remote
func (s *Syncer) initialise(ctx context.Context, r repository) {
	s.log.WithField("repository", r.key).Debugf("initialising existing directory %s", r.dir)

	steps := [][]string{
		{"init", "--quiet"},
		{"remote", "add", "origin", r.remote},
		{"fetch", "--quiet", "origin"},
		{"remote", "set-head", "origin", "--auto"},
	}
	for _, step := range steps {
		if res := s.git(ctx, r, step[0], step[1:]...); !res.OK {
			s.report.problem(res)
			return
		}
	}

	branch := fallbackBranch
	if head := s.git(ctx, r, "symbolic-ref", "--short", "refs/remotes/origin/HEAD"); head.OK {
		if name := strings.TrimPrefix(strings.TrimSpace(head.Stdout), "origin/"); name != "" {
			branch = name
		}
	}

	res := s.git(ctx, r, "checkout", "--quiet", "-b", branch, "--track", "origin/"+branch)
	if !res.OK {
		s.report.problem(res)
		return
	}
	s.report.repo(r.key, "initialised")
}
