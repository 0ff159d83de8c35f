package command_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/gatectl/internal/command"
	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

func strPtr(s string) *string { return &s }

func gitCommitSchema() *types.ToolSchema {
	return &types.ToolSchema{
		ID:     "git.commit",
		Binary: "/usr/bin/git",
		Flags: []types.FlagDef{
			{Name: "message", Short: 'm', ArgType: types.ArgString, Required: true},
			{Name: "all", ArgType: types.ArgBool},
		},
	}
}

// Scenario 6 from spec §8.
func TestBuild_ArgvMatchesSpecScenario(t *testing.T) {
	schema := gitCommitSchema()
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("test commit")},
		{Name: "all"},
	}}

	cmd, err := command.Build(schema, parsed, "/repo", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "--message", "test commit", "--all"}, cmd.Args)
	assert.Equal(t, "git.commit", cmd.ToolID)
	assert.Equal(t, "/usr/bin/git", cmd.Binary)
}

// I2 — argv determinism: two independent builds from the same inputs must
// be element-wise equal.
func TestBuild_Determinism(t *testing.T) {
	schema := gitCommitSchema()
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("x")},
	}}

	cmd1, err1 := command.Build(schema, parsed, "/repo", nil)
	cmd2, err2 := command.Build(schema, parsed, "/repo", nil)
	require.NoError(t, err1)
	require.NoError(t, err2)
	if diff := cmp.Diff(cmd1.Args, cmd2.Args); diff != "" {
		t.Fatalf("argv differs across builds (-first +second):\n%s", diff)
	}
}

// Scenario 4 from spec §8: missing required flag denies the build.
func TestBuild_SchemaValidationFailed(t *testing.T) {
	schema := gitCommitSchema()
	_, err := command.Build(schema, types.ParsedArgs{}, "/repo", nil)
	require.Error(t, err)
	assert.True(t, gatierr.IsKind(err, gatierr.SchemaValidationFailed))
}

func TestBuild_NoSubcommandToken(t *testing.T) {
	schema := &types.ToolSchema{ID: "ls", Binary: "/bin/ls"}
	cmd, err := command.Build(schema, types.ParsedArgs{}, "/tmp", nil)
	require.NoError(t, err)
	assert.Empty(t, cmd.Args)
}
