package executor_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/gatectl/internal/audit"
	"github.com/opal-lang/gatectl/internal/authority"
	"github.com/opal-lang/gatectl/internal/executor"
	"github.com/opal-lang/gatectl/internal/types"
)

func allowingToken() *types.AuthorityToken {
	return &types.AuthorityToken{
		Level:        types.LevelParameterizedTools,
		AllowedTools: []string{"test.true", "test.false"},
		AllowedBins:  []string{"/bin/true", "/bin/false"},
		FSRoot:       "/",
	}
}

// Scenario 1 from spec §8.
func TestExecute_HappyPath(t *testing.T) {
	enf := authority.New(audit.NewMemorySink())
	x := executor.New(enf)

	cmd := &types.Command{ToolID: "test.true", Binary: "/bin/true", Cwd: "/tmp"}
	res, err := x.Execute(context.Background(), cmd, allowingToken(), executor.ExecConfig{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.False(t, res.TimedOut)
}

func TestExecute_NonZeroExit(t *testing.T) {
	enf := authority.New(audit.NewMemorySink())
	x := executor.New(enf)

	cmd := &types.Command{ToolID: "test.false", Binary: "/bin/false", Cwd: "/tmp"}
	res, err := x.Execute(context.Background(), cmd, allowingToken(), executor.ExecConfig{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ExitCode)
}

// I4 — defense in depth: execute denies iff check denies, even if the
// caller never ran check itself.
func TestExecute_DeniesWhenTokenInsufficient(t *testing.T) {
	sink := audit.NewMemorySink()
	enf := authority.New(sink)
	x := executor.New(enf)

	tok := allowingToken()
	tok.Level = types.LevelObserve

	cmd := &types.Command{ToolID: "test.true", Binary: "/bin/true", Cwd: "/tmp"}
	_, err := x.Execute(context.Background(), cmd, tok, executor.ExecConfig{})
	require.Error(t, err)
	require.Len(t, sink.Events(), 1)
}

func TestExecute_NegativeTimeoutRejected(t *testing.T) {
	enf := authority.New(audit.NewMemorySink())
	x := executor.New(enf)
	cmd := &types.Command{ToolID: "test.true", Binary: "/bin/true", Cwd: "/tmp"}
	_, err := x.Execute(context.Background(), cmd, allowingToken(), executor.ExecConfig{TimeoutMs: -1})
	require.Error(t, err)
}

func TestExecute_EnvDeltaIsEntireEnvironment(t *testing.T) {
	enf := authority.New(audit.NewMemorySink())
	x := executor.New(enf)

	tok := allowingToken()
	tok.AllowedTools = append(tok.AllowedTools, "test.env")
	tok.AllowedBins = append(tok.AllowedBins, "/usr/bin/env")

	cmd := &types.Command{
		ToolID: "test.env",
		Binary: "/usr/bin/env",
		Cwd:    "/tmp",
		EnvDelta: []types.EnvVar{
			{Key: "GATECTL_TEST", Value: "1"},
		},
	}

	var stdout bytes.Buffer
	res, err := x.Execute(context.Background(), cmd, tok, executor.ExecConfig{Stdout: &stdout})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)

	// The child's environment is env_delta alone, not env_delta layered on
	// the test process's ambient environment (spec §9's resolved open
	// question) — /usr/bin/env with no args prints every variable the
	// child actually received, one per line.
	assert.Equal(t, "GATECTL_TEST=1\n", stdout.String())
}
