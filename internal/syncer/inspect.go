package syncer

import (
	"context"
	"strings"

	"github.com/NicabarNimble/go-gitcat/internal/extract"
)

// Status summarises each installed repository: uncommitted changes, commits
// ahead of or behind the remote, and any remaining status lines
func (s *Syncer) Status(ctx context.Context, req Request) error {
	args := withArgs([]string{"--porcelain", "--short", "--branch"}, req.GitArgs...)
	return s.each(ctx, "status", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}

		if !s.settings.Local {
			if res := s.git(ctx, r, "remote", "update"); !res.OK {
				s.report.problem(res)
				return
			}
		}

		status := s.git(ctx, r, "status", args...)
		if !status.OK {
			s.report.problem(status)
			return
		}

		var summary []string
		if diff := s.git(ctx, r, "diff", "--shortstat", "--no-color"); diff.OK {
			if files, ok := extract.ChangedFiles(diff.Output); ok {
				summary = append(summary, "uncommitted changes in "+files)
			}
		}
		if changes, ok := extract.AheadBehind(status.Output); ok {
			summary = append(summary, changes)
		}

		line := strings.Join(summary, ", ")
		detail := extract.DropStatusHeader(status.Output)
		switch {
		case detail != "":
			s.report.important(r.key, line+"\n"+detail)
		case line != "":
			s.report.important(r.key, line)
		default:
			s.report.repo(r.key, "up to date")
		}
	})
}

// Branch lists the branches of each installed repository
func (s *Syncer) Branch(ctx context.Context, req Request) error {
	args := withArgs([]string{"--verbose"}, req.GitArgs...)
	return s.each(ctx, "branch", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}
		res := s.git(ctx, r, "branch", args...)
		switch {
		case !res.OK:
			s.report.problem(res)
		case extract.IsSingleLine(res.Output):
			s.report.repo(r.key, "already up to date")
		default:
			s.report.repo(r.key, "\n"+extract.DropFirstLine(res.Output))
		}
	})
}

// Diff shows the uncommitted changes of each installed repository
func (s *Syncer) Diff(ctx context.Context, req Request) error {
	args := withArgs(req.GitArgs, "HEAD")
	return s.each(ctx, "diff", req.Filter, func(ctx context.Context, r repository) {
		if !s.isWorkingCopy(ctx, r) {
			s.report.repo(r.key, "not on system")
			return
		}
		res := s.git(ctx, r, "diff", args...)
		switch {
		case !res.OK:
			s.report.problem(res)
		case res.Output == "":
			s.report.repo(r.key, "up to date")
		default:
			s.report.important(r.key, "\n"+res.Output)
		}
	})
}
