package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	"github.com/NicabarNimble/go-gitcat/internal/config"
	"github.com/NicabarNimble/go-gitcat/internal/errors"
)

// Add catalogues the repository containing req.Directory, or the current
// directory, and saves the catalogue
func (s *Syncer) Add(ctx context.Context, req Request) error {
	dir, err := s.resolve(req.Directory)
	if err != nil {
		return err
	}

	r := repository{key: s.keyFor(dir), dir: dir}
	if !s.isWorkingCopy(ctx, r) {
		return errors.NewPrecondition(dir, "is not a git repository")
	}

	root := s.git(ctx, r, "rev-parse", "--show-toplevel")
	if !root.OK {
		return errors.NewPrecondition(dir, "is not a git repository:\n"+root.Output)
	}
	remote := s.git(ctx, r, "remote", "get-url", "--push", "origin")
	if !remote.OK {
		return errors.NewPrecondition(dir, "has no origin remote")
	}

	key := s.keyFor(strings.TrimSpace(root.Stdout))
	if s.catalogue.Has(key) {
		return errors.NewPrecondition(key, "is already in the catalogue")
	}
	if err := s.catalogue.Add(key, strings.TrimSpace(remote.Stdout)); err != nil {
		return err
	}
	if err := catalogue.Save(s.catalogue, s.settings.CataloguePath); err != nil {
		return err
	}
	s.report.message(fmt.Sprintf("Adding %s to the catalogue", key))

	s.commitCatalogue(ctx, fmt.Sprintf("Adding %s to gitcatrc", key))
	return nil
}

// Remove drops the repository in req.Directory, or the current directory,
// from the catalogue. With req.Everything the working directory is deleted
// as well.
func (s *Syncer) Remove(ctx context.Context, req Request) error {
	dir, err := s.resolve(req.Directory)
	if err != nil {
		return err
	}

	key := s.keyFor(dir)
	if !s.catalogue.Has(key) {
		return errors.NewPrecondition(dir, "is an unknown repository")
	}

	s.catalogue.Remove(key)
	if err := catalogue.Save(s.catalogue, s.settings.CataloguePath); err != nil {
		return err
	}
	s.report.message(fmt.Sprintf("Removing %s from the catalogue", key))

	if !req.Everything {
		return nil
	}

	path := s.settings.Path(key)
	if s.settings.DryRun {
		s.report.message(fmt.Sprintf("Would remove directory %s", path))
		return nil
	}
	s.report.message(fmt.Sprintf("Removing directory %s", path))
	if err := os.RemoveAll(path); err != nil {
		return errors.New("remove directory", err)
	}

	s.commitCatalogue(ctx, fmt.Sprintf("Removing %s from gitcatrc", key))
	return nil
}

// commitCatalogue records a catalogue change when the catalogue file lives
// in a working copy
func (s *Syncer) commitCatalogue(ctx context.Context, message string) {
	dir := filepath.Dir(s.settings.CataloguePath)
	r := repository{key: s.keyFor(dir), dir: dir}
	if !s.isWorkingCopy(ctx, r) {
		return
	}

	file := filepath.Base(s.settings.CataloguePath)
	if res := s.git(ctx, r, "add", "--", file); !res.OK {
		s.report.problem(res)
		return
	}
	if res := s.git(ctx, r, "commit", "--quiet", "--message="+message, "--", file); !res.OK {
		s.report.problem(res)
	}
}

// resolve turns the directory argument of add or remove into an absolute
// path. An empty argument is the current directory; a relative one is taken
// from the current directory when it exists there and from the prefix
// otherwise.
func (s *Syncer) resolve(arg string) (string, error) {
	cwd, err := getwd()
	if err != nil {
		return "", errors.New("resolve directory", err)
	}
	if arg == "" {
		return filepath.Clean(cwd), nil
	}

	if home, err := os.UserHomeDir(); err == nil {
		arg = config.ExpandHome(arg, home)
	}
	if filepath.IsAbs(arg) {
		return filepath.Clean(arg), nil
	}
	if local := filepath.Join(cwd, arg); isDir(local) {
		return local, nil
	}
	return s.settings.Path(arg), nil
}

// keyFor returns the catalogue key of dir, allowing for a prefix reached
// through a symbolic link
func (s *Syncer) keyFor(dir string) string {
	key := s.settings.Key(dir)
	if !filepath.IsAbs(key) || s.settings.Prefix == "" {
		return key
	}
	prefix, err := filepath.EvalSymlinks(s.settings.Prefix)
	if err != nil {
		return key
	}
	target := dir
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		target = resolved
	}
	if alt := s.settings.WithPrefix(prefix).Key(target); !filepath.IsAbs(alt) {
		return alt
	}
	return key
}
