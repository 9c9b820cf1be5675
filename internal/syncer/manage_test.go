package syncer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicabarNimble/go-gitcat/internal/catalogue"
	gcerrors "github.com/NicabarNimble/go-gitcat/internal/errors"
)

func withWorkingDir(t *testing.T, dir string) {
	t.Helper()
	original := getwd
	getwd = func() (string, error) { return dir, nil }
	t.Cleanup(func() { getwd = original })
}

// outsideRepository makes the catalogue directory fail the working copy probe
func (f *fixture) outsideRepository() {
	f.exec.onIn(filepath.Dir(f.settings.CataloguePath), "rev-parse --is-inside-work-tree", response{status: 128})
}

func TestAdd(t *testing.T) {
	f := newFixture(t, []string{"Code/Prog1"}, "Code/Prog1", "Code/New/src")
	dir := filepath.Join(f.prefix, "Code", "New")
	withWorkingDir(t, filepath.Join(dir, "src"))
	f.outsideRepository()
	f.exec.on("rev-parse --show-toplevel", response{stdout: dir + "\n"})
	f.exec.on("remote get-url --push origin", response{stdout: "git@host:org/new.git\n"})

	require.NoError(t, f.syncer().Add(context.Background(), Request{}))
	assert.Equal(t, "Adding Code/New to the catalogue\n", f.out.String())
	assert.Equal(t, []string{"Code/Prog1", "Code/New"}, f.cat.Keys())

	saved, err := catalogue.Load(f.settings.CataloguePath)
	require.NoError(t, err)
	remote, ok := saved.Get("Code/New")
	assert.True(t, ok)
	assert.Equal(t, "git@host:org/new.git", remote)
	assert.False(t, f.exec.ran("commit"))
}

func TestAddCommitsCatalogue(t *testing.T) {
	f := newFixture(t, nil, "Code/New")
	dir := filepath.Join(f.prefix, "Code", "New")
	withWorkingDir(t, t.TempDir())
	f.exec.on("rev-parse --show-toplevel", response{stdout: dir + "\n"})
	f.exec.on("remote get-url --push origin", response{stdout: "git@host:org/new.git\n"})

	require.NoError(t, f.syncer().Add(context.Background(), Request{Directory: "Code/New"}))

	catdir := filepath.Dir(f.settings.CataloguePath)
	inv, ok := f.exec.find("commit")
	require.True(t, ok)
	assert.Equal(t, catdir, inv.Dir)
	assert.Equal(t, []string{"--quiet", "--message=Adding Code/New to gitcatrc", "--", "gitcatrc"}, inv.Args)
	assert.True(t, f.exec.ran("add -- gitcatrc"))
}

func TestAddPreconditions(t *testing.T) {
	t.Run("not a working copy", func(t *testing.T) {
		f := newFixture(t, nil, "Code/New")
		withWorkingDir(t, filepath.Join(f.prefix, "Code", "New"))
		f.exec.on("rev-parse --is-inside-work-tree", response{stderr: "fatal: not a git repository\n", status: 128})

		err := f.syncer().Add(context.Background(), Request{})
		var preErr *gcerrors.PreconditionError
		require.ErrorAs(t, err, &preErr)
		assert.Equal(t, filepath.Join(f.prefix, "Code", "New"), preErr.Path)
		assert.NoFileExists(t, f.settings.CataloguePath)
	})

	t.Run("missing directory", func(t *testing.T) {
		f := newFixture(t, nil)
		withWorkingDir(t, t.TempDir())

		err := f.syncer().Add(context.Background(), Request{Directory: "Code/Nowhere"})
		assert.True(t, gcerrors.IsFatal(err))
		assert.Empty(t, f.exec.calls)
	})

	t.Run("no remote", func(t *testing.T) {
		f := newFixture(t, nil, "Code/New")
		dir := filepath.Join(f.prefix, "Code", "New")
		withWorkingDir(t, dir)
		f.exec.on("rev-parse --show-toplevel", response{stdout: dir + "\n"})
		f.exec.on("remote get-url", response{stderr: "error: No such remote 'origin'\n", status: 2})

		err := f.syncer().Add(context.Background(), Request{})
		var preErr *gcerrors.PreconditionError
		require.ErrorAs(t, err, &preErr)
		assert.Equal(t, "has no origin remote", preErr.Reason)
	})

	t.Run("directory named like the prefix setting", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1"}, "prefix")
		dir := filepath.Join(f.prefix, "prefix")
		withWorkingDir(t, dir)
		f.exec.on("rev-parse --show-toplevel", response{stdout: dir + "\n"})
		f.exec.on("remote get-url", response{stdout: "git@host:org/other.git\n"})

		err := f.syncer().Add(context.Background(), Request{})
		var keyErr *gcerrors.InvalidKeyError
		require.ErrorAs(t, err, &keyErr)
		assert.True(t, gcerrors.IsFatal(err))
		assert.Equal(t, []string{"Code/Prog1"}, f.cat.Keys())
		assert.Empty(t, f.cat.Prefix)
		assert.NoFileExists(t, f.settings.CataloguePath)
	})

	t.Run("already catalogued", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1"}, "Code/Prog1")
		dir := filepath.Join(f.prefix, "Code", "Prog1")
		withWorkingDir(t, dir)
		f.exec.on("rev-parse --show-toplevel", response{stdout: dir + "\n"})
		f.exec.on("remote get-url", response{stdout: "git@host:org/prog1.git\n"})

		err := f.syncer().Add(context.Background(), Request{})
		var preErr *gcerrors.PreconditionError
		require.ErrorAs(t, err, &preErr)
		assert.Equal(t, "Code/Prog1", preErr.Path)
		assert.Equal(t, 1, f.cat.Len())
	})
}

func TestRemove(t *testing.T) {
	t.Run("current directory", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1", "Notes/Life"}, "Code/Prog1")
		withWorkingDir(t, filepath.Join(f.prefix, "Code", "Prog1"))

		require.NoError(t, f.syncer().Remove(context.Background(), Request{}))
		assert.Equal(t, "Removing Code/Prog1 from the catalogue\n", f.out.String())
		assert.DirExists(t, filepath.Join(f.prefix, "Code", "Prog1"))

		saved, err := catalogue.Load(f.settings.CataloguePath)
		require.NoError(t, err)
		assert.Equal(t, []string{"Notes/Life"}, saved.Keys())
		assert.Empty(t, f.exec.calls)
	})

	t.Run("key of a missing directory", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1", "Notes/Life"})
		withWorkingDir(t, t.TempDir())

		require.NoError(t, f.syncer().Remove(context.Background(), Request{Directory: "Notes/Life"}))
		assert.Equal(t, []string{"Code/Prog1"}, f.cat.Keys())
	})

	t.Run("unknown repository", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1"})
		withWorkingDir(t, t.TempDir())

		err := f.syncer().Remove(context.Background(), Request{Directory: "Code/Other"})
		var preErr *gcerrors.PreconditionError
		require.ErrorAs(t, err, &preErr)
		assert.Equal(t, 1, f.cat.Len())
		assert.NoFileExists(t, f.settings.CataloguePath)
	})

	t.Run("everything", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1"}, "Code/Prog1")
		path := filepath.Join(f.prefix, "Code", "Prog1")
		require.NoError(t, os.WriteFile(filepath.Join(path, "README"), []byte("x"), 0644))
		withWorkingDir(t, t.TempDir())
		f.outsideRepository()

		require.NoError(t, f.syncer().Remove(context.Background(), Request{Directory: path, Everything: true}))
		assert.NoDirExists(t, path)
		assert.Equal(t, "Removing Code/Prog1 from the catalogue\nRemoving directory "+path+"\n", f.out.String())
	})

	t.Run("everything under dry run", func(t *testing.T) {
		f := newFixture(t, []string{"Code/Prog1"}, "Code/Prog1")
		f.settings.DryRun = true
		path := filepath.Join(f.prefix, "Code", "Prog1")
		withWorkingDir(t, t.TempDir())

		require.NoError(t, f.syncer().Remove(context.Background(), Request{Directory: path, Everything: true}))
		assert.DirExists(t, path)
		assert.Empty(t, f.exec.calls)
	})
}

func TestResolve(t *testing.T) {
	f := newFixture(t, nil, "Code/Prog1")
	cwd := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, "local"), 0755))
	withWorkingDir(t, cwd)
	s := f.syncer()

	tests := []struct {
		arg  string
		want string
	}{
		{"", cwd},
		{"local", filepath.Join(cwd, "local")},
		{"Code/Prog1", filepath.Join(f.prefix, "Code", "Prog1")},
		{"/srv/repo/", "/srv/repo"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := s.resolve(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
