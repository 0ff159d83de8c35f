package gatierr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/gatectl/internal/gatierr"
)

func TestWithContext_Chains(t *testing.T) {
	err := gatierr.New(gatierr.SchemaMalformed, "bad document").
		WithContext("tool_id", "git.commit").
		WithContext("field", "version")

	assert.Equal(t, "git.commit", err.Context["tool_id"])
	assert.Equal(t, "version", err.Context["field"])
}

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := gatierr.Wrap(gatierr.SpawnFailed, "could not spawn", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIsKind(t *testing.T) {
	err := gatierr.New(gatierr.AuthorityDenied, "denied")
	assert.True(t, gatierr.IsKind(err, gatierr.AuthorityDenied))
	assert.False(t, gatierr.IsKind(err, gatierr.SpawnFailed))
	assert.False(t, gatierr.IsKind(errors.New("plain"), gatierr.SpawnFailed))
}
