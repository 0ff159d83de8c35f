package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/gatectl/internal/types"
	"github.com/opal-lang/gatectl/internal/validator"
)

func strPtr(s string) *string { return &s }

func gitCommitSchema() *types.ToolSchema {
	return &types.ToolSchema{
		ID:     "git.commit",
		Name:   "git commit",
		Binary: "/usr/bin/git",
		Flags: []types.FlagDef{
			{Name: "message", Short: 'm', ArgType: types.ArgString, Required: true},
			{Name: "all", ArgType: types.ArgBool},
		},
		ExclusiveGroups: [][]string{{"message", "all"}}, // deliberately exercised in tests only
	}
}

func TestValidate_ValidInputIsEmpty(t *testing.T) {
	schema := gitCommitSchema()
	schema.ExclusiveGroups = nil
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("test commit")},
		{Name: "all", Value: nil},
	}}
	failures := validator.Validate(schema, parsed)
	assert.Empty(t, failures)
}

func TestValidate_MissingRequiredFlag(t *testing.T) {
	schema := gitCommitSchema()
	schema.ExclusiveGroups = nil
	failures := validator.Validate(schema, types.ParsedArgs{})
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrMissingRequiredFlag, failures[0].Kind)
	assert.Equal(t, "message", failures[0].Context)
}

func TestValidate_UnknownFlag(t *testing.T) {
	schema := gitCommitSchema()
	schema.ExclusiveGroups = nil
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("x")},
		{Name: "bogus", Value: strPtr("y")},
	}}
	failures := validator.Validate(schema, parsed)
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrUnknownFlag, failures[0].Kind)
	assert.Equal(t, "bogus", failures[0].Context)
	assert.Empty(t, failures[0].Suggestion)
}

func TestValidate_UnknownFlagSuggestsCloseMatch(t *testing.T) {
	schema := gitCommitSchema()
	schema.ExclusiveGroups = nil
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "messag", Value: strPtr("x")},
	}}
	failures := validator.Validate(schema, parsed)
	// "messag" is unknown, so the required "message" is also reported missing.
	require.Len(t, failures, 2)
	assert.Equal(t, types.ErrUnknownFlag, failures[0].Kind)
	assert.Equal(t, "message", failures[0].Suggestion)
}

func TestValidate_DuplicateFlagNotAllowed(t *testing.T) {
	schema := gitCommitSchema()
	schema.ExclusiveGroups = nil
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("a")},
		{Name: "message", Value: strPtr("b")},
	}}
	failures := validator.Validate(schema, parsed)
	var kinds []types.ValidationErrorKind
	for _, f := range failures {
		kinds = append(kinds, f.Kind)
	}
	assert.Contains(t, kinds, types.ErrDuplicateFlagNotAllowed)
}

func TestValidate_IntOutOfRange(t *testing.T) {
	min := int64(1)
	max := int64(10)
	schema := &types.ToolSchema{
		Flags: []types.FlagDef{{Name: "depth", ArgType: types.ArgInt, RangeMin: &min, RangeMax: &max}},
	}
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{{Name: "depth", Value: strPtr("99")}}}
	failures := validator.Validate(schema, parsed)
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrIntOutOfRange, failures[0].Kind)
}

func TestValidate_EnumValueInvalid(t *testing.T) {
	schema := &types.ToolSchema{
		Flags: []types.FlagDef{{Name: "color", ArgType: types.ArgEnum, EnumValues: []string{"red", "blue"}}},
	}
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{{Name: "color", Value: strPtr("green")}}}
	failures := validator.Validate(schema, parsed)
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrEnumValueInvalid, failures[0].Kind)
}

func TestValidate_BoolToggleAndExplicitForms(t *testing.T) {
	schema := &types.ToolSchema{Flags: []types.FlagDef{{Name: "all", ArgType: types.ArgBool}}}

	toggle := types.ParsedArgs{Flags: []types.ParsedFlag{{Name: "all"}}}
	assert.Empty(t, validator.Validate(schema, toggle))

	explicitTrue := types.ParsedArgs{Flags: []types.ParsedFlag{{Name: "all", Value: strPtr("true")}}}
	assert.Empty(t, validator.Validate(schema, explicitTrue))

	bogus := types.ParsedArgs{Flags: []types.ParsedFlag{{Name: "all", Value: strPtr("yes")}}}
	failures := validator.Validate(schema, bogus)
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrTypeMismatch, failures[0].Kind)
}

func TestValidate_PositionalArity(t *testing.T) {
	schema := &types.ToolSchema{
		Positionals: []types.PositionalDef{
			{Name: "src", Required: true, ArgType: types.ArgPath},
			{Name: "dst", Required: true, ArgType: types.ArgPath},
		},
	}

	tooFew := validator.Validate(schema, types.ParsedArgs{Positionals: []string{"a"}})
	require.Len(t, tooFew, 1)
	assert.Equal(t, types.ErrMissingRequiredPositional, tooFew[0].Kind)
	assert.Equal(t, "dst", tooFew[0].Context)

	tooMany := validator.Validate(schema, types.ParsedArgs{Positionals: []string{"a", "b", "c"}})
	require.Len(t, tooMany, 1)
	assert.Equal(t, types.ErrTooManyPositionals, tooMany[0].Kind)
}

func TestValidate_MutualExclusion(t *testing.T) {
	schema := gitCommitSchema()
	parsed := types.ParsedArgs{Flags: []types.ParsedFlag{
		{Name: "message", Value: strPtr("x")},
		{Name: "all"},
	}}
	failures := validator.Validate(schema, parsed)
	require.Len(t, failures, 1)
	assert.Equal(t, types.ErrMutualExclusionViolation, failures[0].Kind)
	assert.Equal(t, "message", failures[0].Context)
}
