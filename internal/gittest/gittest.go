// Package gittest creates throwaway git repositories for tests.
package gittest

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RequireGit skips the test when git is not installed
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
}

// Isolate points git at an empty configuration with a fixed identity for the
// rest of the test. Child processes started by the code under test inherit it.
func Isolate(t *testing.T) {
	t.Helper()
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
	t.Setenv("GIT_CONFIG_GLOBAL", os.DevNull)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
}

// runCommand executes a command in the specified directory
func runCommand(dir string, command string, args ...string) (string, error) {
	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// Git runs git in dir and returns its trimmed output, failing the test on a
// non-zero exit
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()
	out, err := runCommand(dir, "git", args...)
	if err != nil {
		t.Fatalf("git %s in %s: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return strings.TrimSpace(out)
}

// NewRepo initialises a repository in dir, creating it if needed, with one
// commit on main
func NewRepo(t *testing.T, dir string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create test directory: %v", err)
	}
	Git(t, dir, "init", "--quiet")
	AddCommit(t, dir, "README", "test content\n", "Initial commit")
	Git(t, dir, "checkout", "--quiet", "-B", "main")
	return dir
}

// NewRemote creates a bare repository holding a copy of a new seed
// repository and returns its path
func NewRemote(t *testing.T, name string) string {
	t.Helper()

	root := t.TempDir()
	seed := NewRepo(t, filepath.Join(root, "seed"))
	remote := filepath.Join(root, name+".git")
	Git(t, root, "clone", "--quiet", "--bare", seed, remote)
	return remote
}

// Clone clones remote into dir
func Clone(t *testing.T, remote, dir string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	Git(t, filepath.Dir(dir), "clone", "--quiet", remote, filepath.Base(dir))
	return dir
}

// WriteFile writes content to name inside the repository without committing
func WriteFile(t *testing.T, repoPath, name, content string) {
	t.Helper()

	path := filepath.Join(repoPath, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
}

// AddCommit creates a new commit in the repository
func AddCommit(t *testing.T, repoPath, fileName, content, message string) {
	t.Helper()

	WriteFile(t, repoPath, fileName, content)
	Git(t, repoPath, "add", fileName)
	Git(t, repoPath, "commit", "--quiet", "-m", message)
}

// Head returns the commit id of ref in the repository at dir
func Head(t *testing.T, dir, ref string) string {
	t.Helper()
	return Git(t, dir, "rev-parse", ref)
}
