package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/gatectl/internal/config"
	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

func TestDefault_IsObserveLevel(t *testing.T) {
	tok, err := config.Default(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, types.LevelObserve, tok.Level)
	assert.Equal(t, types.NetworkDeny, tok.Network)
	assert.Zero(t, tok.Expiration)
}

func TestLoadJSON_Valid(t *testing.T) {
	dir := t.TempDir()
	doc := `{
	  "authority_level": "parameterized_tools",
	  "allowed_tools": ["git.commit"],
	  "allowed_bins": ["/usr/bin/git"],
	  "fs_root": ".",
	  "network": "localhost",
	  "expiration_seconds": 3600
	}`
	tok, err := config.LoadJSON([]byte(doc), dir)
	require.NoError(t, err)
	assert.Equal(t, types.LevelParameterizedTools, tok.Level)
	assert.Equal(t, types.NetworkLocalhost, tok.Network)
	assert.Contains(t, tok.AllowedTools, "git.commit")
	assert.NotZero(t, tok.Expiration)
}

func TestLoadJSON_InvalidLevel(t *testing.T) {
	_, err := config.LoadJSON([]byte(`{"authority_level": "godmode"}`), t.TempDir())
	require.Error(t, err)
	assert.True(t, gatierr.IsKind(err, gatierr.InvalidLevel))
}

func TestLoadJSON_InvalidNetworkPolicy(t *testing.T) {
	doc := `{"authority_level": "observe", "network": "anything-goes"}`
	_, err := config.LoadJSON([]byte(doc), t.TempDir())
	require.Error(t, err)
	assert.True(t, gatierr.IsKind(err, gatierr.InvalidNetworkPolicy))
}

func TestLoadJSON_Malformed(t *testing.T) {
	_, err := config.LoadJSON([]byte(`not json`), t.TempDir())
	require.Error(t, err)
	assert.True(t, gatierr.IsKind(err, gatierr.ConfigMalformed))
}

func TestLoadYAML_Valid(t *testing.T) {
	dir := t.TempDir()
	doc := "authority_level: tools_only\nnetwork: deny\n"
	tok, err := config.LoadYAML([]byte(doc), dir)
	require.NoError(t, err)
	assert.Equal(t, types.LevelToolsOnly, tok.Level)
}

// Two tokens built for the same project root must carry the same ProjectID.
func TestProjectID_Stable(t *testing.T) {
	dir := t.TempDir()
	a, err := config.Default(dir)
	require.NoError(t, err)
	b, err := config.Default(dir)
	require.NoError(t, err)
	assert.Equal(t, a.ProjectID, b.ProjectID)
}
