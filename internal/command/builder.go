// Package command implements the CommandBuilder (spec §4.3): turning a
// validated (ToolSchema, ParsedArgs) pair into a fully-determined argv. The
// point of normalizing to long-form flags in a fixed order is that argv
// becomes a pure function of (schema, parsed) — reviewing the schema is then
// enough to review every argv the builder can ever produce.
package command

import (
	"strconv"

	"github.com/opal-lang/gatectl/internal/config"
	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/invariant"
	"github.com/opal-lang/gatectl/internal/types"
	"github.com/opal-lang/gatectl/internal/validator"
)

// Build runs the Validator and, if it finds no failures, constructs a
// Command. Any validation failure returns SchemaValidationFailed carrying
// the tool id and the failure count in Context — the builder never
// partially builds. cwd is canonicalised the same way internal/config
// canonicalises fs_root, so the Enforcer's path-prefix check compares like
// with like (SPEC_FULL §5).
func Build(schema *types.ToolSchema, parsed types.ParsedArgs, cwd string, envDelta []types.EnvVar) (*types.Command, error) {
	invariant.NotNil(schema, "schema")

	if failures := validator.Validate(schema, parsed); len(failures) > 0 {
		err := gatierr.New(gatierr.SchemaValidationFailed, "parsed args do not satisfy schema").
			WithContext("tool_id", schema.ID)
		err.Context["failure_count"] = strconv.Itoa(len(failures))
		return nil, err
	}

	canonicalCwd, err := config.Canonicalize(cwd)
	if err != nil {
		return nil, gatierr.Wrap(gatierr.SpawnFailed, "could not canonicalise cwd", err).
			WithContext("tool_id", schema.ID)
	}

	args := make([]string, 0, len(parsed.Flags)*2+len(parsed.Positionals)+1)
	if sub := schema.Subcommand(); sub != "" {
		args = append(args, sub)
	}

	for _, pf := range parsed.Flags {
		args = append(args, "--"+pf.Name)
		if pf.Value != nil {
			args = append(args, *pf.Value)
		}
	}

	args = append(args, parsed.Positionals...)

	envCopy := make([]types.EnvVar, len(envDelta))
	copy(envCopy, envDelta)

	cmd := &types.Command{
		ToolID:                schema.ID,
		Binary:                schema.Binary,
		Args:                  args,
		Cwd:                   canonicalCwd,
		EnvDelta:              envCopy,
		RequestedCapabilities: append([]string(nil), schema.Capabilities...),
	}

	invariant.Postcondition(cmd.Binary != "", "built command must have a binary")
	return cmd, nil
}
