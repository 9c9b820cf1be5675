// Package git runs the external git tool on behalf of gitcat.
//
// Every git invocation made by gitcat passes through an Executor, so error
// formatting and output normalization live in one place.
//
// Key Components:
//
// Invocation: a single git call. The working directory is part of the
// invocation, so callers never change the process working directory.
//
// Result: the captured outcome of an invocation. A non-zero exit status is an
// ordinary outcome (for example "nothing to commit") and is reported through
// Result.OK rather than as a Go error.
//
// CommandExecutor: the Executor that starts git as a subprocess.
//
// Example Usage:
//
//	exec := git.NewCommandExecutor(logger)
//	res := exec.Run(ctx, git.Invocation{
//	    Dir:        "/home/me/Code/Prog1",
//	    Key:        "Code/Prog1",
//	    Subcommand: "fetch",
//	    Args:       []string{"-q", "--progress"},
//	})
//	if !res.OK {
//	    fmt.Println(res.Diagnostic())
//	}
//
// Thread Safety:
//
// CommandExecutor holds no mutable state and may be shared. Running several
// invocations against the same working copy at once is up to git.
package git
