package syncer

import (
	"context"
	"strings"

	"github.com/NicabarNimble/go-gitcat/internal/extract"
	"github.com/NicabarNimble/go-gitcat/internal/git"
)

// compressMarker identifies progress lines dropped from pull output
const compressMarker = "Compressing"

// Fetch fetches every installed repository
func (s *Syncer) Fetch(ctx context.Context, req Request) error {
	args := withArgs([]string{"-q", "--progress"}, req.GitArgs...)
	return s.each(ctx, "fetch", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}
		res := s.git(ctx, r, "fetch", args...)
		switch {
		case !res.OK:
			s.report.problem(res)
		case res.Output == "":
			s.report.repo(r.key, "already up to date")
		default:
			s.report.repo(r.key, "\n"+res.Output)
		}
	})
}

// Pull merges the remote into every installed repository
func (s *Syncer) Pull(ctx context.Context, req Request) error {
	args := withArgs([]string{"-q", "--progress"}, req.GitArgs...)
	return s.each(ctx, "pull", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "repository not installed")
			return
		}
		res := s.git(ctx, r, "pull", args...)
		switch {
		case !res.OK:
			s.report.problem(res)
		case res.Output == "":
			s.report.repo(r.key, "already up to date")
		default:
			s.report.important(r.key, "pulling\n"+extract.WithoutLinesContaining(res.Output, compressMarker))
		}
	})
}

// commitChanges commits all tracked changes with a message naming the
// changed files. The result is the diff-index probe when nothing changed.
// Under dry-run the commit only reports what it would do.
func (s *Syncer) commitChanges(ctx context.Context, r repository) *git.Result {
	changed := s.git(ctx, r, "diff-index", "--name-only", "HEAD")
	if !changed.OK {
		return changed
	}

	var files []string
	for _, line := range strings.Split(changed.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	if len(files) == 0 {
		return changed
	}

	args := []string{"--all", "--message=gitcat: updating " + strings.Join(files, ", ")}
	if s.settings.DryRun {
		args = append(args, "--porcelain")
	}
	return s.git(ctx, r, "commit", args...)
}

// Commit commits every installed repository with local changes
func (s *Syncer) Commit(ctx context.Context, req Request) error {
	return s.each(ctx, "commit", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}
		res := s.commitChanges(ctx, r)
		switch {
		case !res.OK:
			s.report.problem(res)
		case res.Output == "":
			s.report.repo(r.key, "nothing to commit")
		default:
			s.report.repo(r.key, "commit\n"+res.Output)
		}
	})
}

// Push commits and pushes every installed repository. The real push is only
// issued when a dry-run push shows there is something to send.
func (s *Syncer) Push(ctx context.Context, req Request) error {
	args := withArgs([]string{"--porcelain", "--follow-tags"}, req.GitArgs...)
	return s.each(ctx, "push", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}

		commit := s.commitChanges(ctx, r)
		if !commit.OK {
			s.report.problem(commit)
			return
		}
		if commit.Output != "" {
			s.report.repo(r.key, "commit\n"+commit.Output)
		}

		probe := s.git(ctx, r, "push", withArgs(args, "--dry-run")...)
		if !probe.OK {
			s.report.problem(probe)
			return
		}
		if extract.PushUpToDate(probe.Output) {
			s.report.repo(r.key, "up to date")
			return
		}
		if s.settings.DryRun {
			s.report.repo(r.key, "would be pushed")
			return
		}

		push := s.git(ctx, r, "push", args...)
		switch {
		case !push.OK:
			s.report.problem(push)
		case extract.PushSucceeded(push.Output):
			s.report.repo(r.key, "pushed\n"+push.Output)
		default:
			s.log.WithField("repository", r.key).Debug("unrecognised push output")
			s.report.always(push.Output)
		}
	})
}
