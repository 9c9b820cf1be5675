package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTool is the version-control tool gitcat drives
const DefaultTool = "git"

// Invocation describes a single git call
type Invocation struct {
	Dir        string   // working directory for the call
	Key        string   // catalogue key used in diagnostics
	Subcommand string   // e.g. "fetch", "rev-parse"
	Args       []string // options and operands after the subcommand
}

// Executor runs git invocations
type Executor interface {
	Run(ctx context.Context, inv Invocation) *Result
}

// CommandExecutor runs git as a subprocess
type CommandExecutor struct {
	Tool string
	log  logrus.FieldLogger
}

// NewCommandExecutor creates an executor for the default tool
func NewCommandExecutor(log logrus.FieldLogger) *CommandExecutor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CommandExecutor{Tool: DefaultTool, log: log}
}

// Run executes the invocation synchronously. It never fails: problems
// starting the process are reported as a Result with ExitStatus -1.
func (e *CommandExecutor) Run(ctx context.Context, inv Invocation) *Result {
	args := append([]string{inv.Subcommand}, inv.Args...)
	stdout, stderr, status := runCommand(ctx, inv.Dir, e.Tool, args...)

	res := NewResult(inv.Key, inv.Subcommand, inv.Args, status, stdout, stderr)
	e.log.WithFields(logrus.Fields{
		"repository": inv.Key,
		"dir":        inv.Dir,
		"command":    res.CommandLine(),
		"exit":       status,
	}).Debug("git")
	if !res.OK {
		e.log.WithField("repository", inv.Key).Debug(res.Diagnostic())
	}
	return res
}

// waitDelay bounds how long a cancelled call waits for its output pipes,
// which a surviving grandchild such as ssh may hold open
const waitDelay = 2 * time.Second

// runCommand is a variable so it can be mocked in tests
var runCommand = func(ctx context.Context, dir, name string, args ...string) (string, string, int) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return stdout.String(), stderr.String(), exitErr.ExitCode()
	}

	// not started, or killed by a signal
	msg := stderr.String()
	if msg != "" {
		msg += "\n"
	}
	return stdout.String(), msg + err.Error(), -1
}
