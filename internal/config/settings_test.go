package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsPath(t *testing.T) {
	s := NewSettings("/home/me", "/home/me/.gitcatrc")

	tests := []struct {
		key  string
		want string
	}{
		{"Code/Prog1", "/home/me/Code/Prog1"},
		{"/srv/repo", "/srv/repo"},
		{"/srv/repo/", "/srv/repo"},
		{"Notes/../Life", "/home/me/Life"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Path(tt.key))
		})
	}
}

func TestSettingsKey(t *testing.T) {
	s := NewSettings("/home/me", "")

	tests := []struct {
		dir  string
		want string
	}{
		{"/home/me/Code/Prog1", "Code/Prog1"},
		{"/home/me/Code/Prog1/", "Code/Prog1"},
		{"/srv/repo", "/srv/repo"},
		{"/home/meta/repo", "/home/meta/repo"},
		{"/home/me", "/home/me"},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Key(tt.dir))
			assert.Equal(t, filepath.Clean(tt.dir), s.Path(s.Key(tt.dir)))
		})
	}
}

func TestWithPrefixCopies(t *testing.T) {
	s := NewSettings("/a", "/a/.gitcatrc")
	s.Quiet = true

	other := s.WithPrefix("/b")
	assert.Equal(t, "/a", s.Prefix)
	assert.Equal(t, "/b", other.Prefix)
	assert.True(t, other.Quiet)
	assert.Equal(t, s.CataloguePath, other.CataloguePath)
}

func TestDefaultCataloguePath(t *testing.T) {
	home := t.TempDir()
	assert.Equal(t, filepath.Join(home, ".gitcatrc"), DefaultCataloguePath(home))

	require.NoError(t, os.MkdirAll(filepath.Join(home, ".dotfiles", "config"), 0755))
	assert.Equal(t, filepath.Join(home, ".dotfiles", "config", "gitcatrc"), DefaultCataloguePath(home))
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/me", ExpandHome("~", "/home/me"))
	assert.Equal(t, "/home/me/src", ExpandHome("~/src", "/home/me"))
	assert.Equal(t, "/srv/~x", ExpandHome("/srv/~x", "/home/me"))
	assert.Equal(t, "~other/x", ExpandHome("~other/x", "/home/me"))
}
