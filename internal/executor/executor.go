// Package executor implements the structured executor (spec §4.6): the only
// place in gatectl that actually spawns a child process, and the only place
// that is allowed to. Argv is handed directly to the OS process-creation
// primitive — there is no path through this package that ever concatenates
// a string into a shell command line (spec I1).
package executor

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"
	"time"

	"github.com/opal-lang/gatectl/internal/authority"
	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/invariant"
	"github.com/opal-lang/gatectl/internal/types"
)

// ExecConfig configures one execution. TimeoutMs == 0 means no timeout.
// Stdout/Stderr are nil by default (the child's output is discarded); a
// caller that wants to capture or forward it supplies an io.Writer, the
// same explicit-pipe-or-discard shape as the teacher's
// executionContext.StdoutPipe rather than an implicit inherit-by-default.
type ExecConfig struct {
	TimeoutMs int64
	Stdout    io.Writer
	Stderr    io.Writer
}

// ExecResult is the outcome of a successful (i.e. spawned) execution.
// ExitCode is always in [0,255] per the mapping in spec §4.6.
type ExecResult struct {
	ExitCode int
	TimedOut bool
}

// Executor re-checks authority itself (I4: defense in depth) and then spawns
// command.Binary with command.Args as argv[1..], never through a shell.
type Executor struct {
	enforcer *authority.Enforcer
}

// New constructs an Executor that re-checks every command against enforcer
// before spawning it.
func New(enforcer *authority.Enforcer) *Executor {
	invariant.NotNil(enforcer, "enforcer")
	return &Executor{enforcer: enforcer}
}

// Execute runs the pipeline in spec §4.6: re-check, build the child spec,
// bind cwd, apply the env delta, spawn, wait, and map the outcome.
func (x *Executor) Execute(ctx context.Context, cmd *types.Command, token *types.AuthorityToken, cfg ExecConfig) (*ExecResult, error) {
	invariant.NotNil(cmd, "cmd")
	invariant.NotNil(token, "token")

	if cfg.TimeoutMs < 0 {
		return nil, gatierr.New(gatierr.UnsupportedTimeout, "timeout_ms must be non-negative")
	}

	decision := x.enforcer.Check(token, cmd)
	if !decision.Allowed {
		return nil, gatierr.New(gatierr.AuthorityDenied, "authority re-check denied execution").
			WithContext("tool_id", cmd.ToolID).
			WithContext("reason", string(decision.Reason))
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if cfg.TimeoutMs > 0 {
		runCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	// argv[0] is command.Binary; command.Args become argv[1..]. exec.CommandContext
	// never interprets this through a shell — it execs Path directly.
	child := exec.CommandContext(runCtx, cmd.Binary, cmd.Args...)
	child.Dir = cmd.Cwd
	child.Stdout = cfg.Stdout
	child.Stderr = cfg.Stderr

	// Open question resolved (SPEC_FULL §5): the child's base environment is
	// empty; env_delta is the entire environment it receives.
	env := make([]string, 0, len(cmd.EnvDelta))
	for _, kv := range cmd.EnvDelta {
		env = append(env, kv.Key+"="+kv.Value)
	}
	child.Env = env

	err := child.Run()
	timedOut := cfg.TimeoutMs > 0 && runCtx.Err() == context.DeadlineExceeded

	if err == nil {
		return &ExecResult{ExitCode: 0, TimedOut: timedOut}, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExecResult{ExitCode: mapExitCode(exitErr), TimedOut: timedOut}, nil
	}

	if timedOut {
		// The process was killed by the timeout before exec.ExitError could
		// carry a meaningful exit status on this platform.
		return &ExecResult{ExitCode: 128, TimedOut: true}, nil
	}

	return nil, gatierr.Wrap(gatierr.SpawnFailed, "failed to spawn child process", err).
		WithContext("binary", cmd.Binary)
}

// mapExitCode implements the mapping in spec §4.6: exited(c) -> c, killed by
// signal -> 128, stopped -> 127, unknown -> 1.
func mapExitCode(exitErr *exec.ExitError) int {
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		if exitErr.ExitCode() >= 0 {
			return exitErr.ExitCode()
		}
		return 1
	}
	switch {
	case status.Exited():
		return status.ExitStatus()
	case status.Signaled():
		return 128
	case status.Stopped():
		return 127
	default:
		return 1
	}
}
