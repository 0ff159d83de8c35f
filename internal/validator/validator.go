// Package validator implements the pure (no I/O, no side effects) checks
// spec §4.2 requires of a (ToolSchema, ParsedArgs) pair: every violation is
// collected into one list rather than raising on the first failure, so a
// producer — especially an AI plan generator — can correct everything it
// got wrong in a single pass.
package validator

import (
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/gatectl/internal/types"
)

// Validate runs every check from spec §4.2, in order, and returns the full
// list of failures. An empty slice means the input is valid against schema.
func Validate(schema *types.ToolSchema, parsed types.ParsedArgs) []types.ValidationError {
	var failures []types.ValidationError

	seen := make(map[string]int, len(parsed.Flags))

	for _, pf := range parsed.Flags {
		def := schema.FlagByName(pf.Name)
		if def == nil {
			failures = append(failures, types.ValidationError{
				Kind:       types.ErrUnknownFlag,
				Context:    pf.Name,
				Suggestion: suggestFlag(schema, pf.Name),
			})
			continue
		}
		seen[pf.Name]++
		failures = append(failures, checkType(*def, pf)...)
	}

	for name, count := range seen {
		def := schema.FlagByName(name)
		if def != nil && count > 1 && !def.Multiple {
			failures = append(failures, types.ValidationError{Kind: types.ErrDuplicateFlagNotAllowed, Context: name})
		}
	}

	for _, def := range schema.Flags {
		if def.Required && seen[def.Name] == 0 {
			failures = append(failures, types.ValidationError{Kind: types.ErrMissingRequiredFlag, Context: def.Name})
		}
	}

	failures = append(failures, checkPositionalArity(schema, parsed)...)
	failures = append(failures, checkMutualExclusion(schema, seen)...)

	return failures
}

// suggestFlag returns the closest declared flag name to unknown, or "" if
// the schema has no flags or nothing is close enough to be a useful "did
// you mean" (SPEC_FULL §4: the flag-side counterpart of schema.Store.Suggest
// for unknown tool ids, same fuzzysearch library, same "" -> no suggestion
// contract).
func suggestFlag(schema *types.ToolSchema, unknown string) string {
	if len(schema.Flags) == 0 {
		return ""
	}
	names := make([]string, len(schema.Flags))
	for i, f := range schema.Flags {
		names[i] = f.Name
	}
	ranks := fuzzy.RankFindFold(unknown, names)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// checkType applies the type-conformance rules for a single flag's arg_type.
func checkType(def types.FlagDef, pf types.ParsedFlag) []types.ValidationError {
	switch def.ArgType {
	case types.ArgBool:
		if pf.Value == nil {
			return nil // toggle form
		}
		if *pf.Value != "true" && *pf.Value != "false" {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		return nil

	case types.ArgInt:
		if pf.Value == nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		n, err := strconv.ParseInt(*pf.Value, 10, 64)
		if err != nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		if (def.RangeMin != nil && n < *def.RangeMin) || (def.RangeMax != nil && n > *def.RangeMax) {
			return []types.ValidationError{{Kind: types.ErrIntOutOfRange, Context: def.Name}}
		}
		return nil

	case types.ArgFloat:
		if pf.Value == nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		if _, err := strconv.ParseFloat(*pf.Value, 64); err != nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		return nil

	case types.ArgEnum:
		if pf.Value == nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		for _, v := range def.EnumValues {
			if v == *pf.Value {
				return nil
			}
		}
		return []types.ValidationError{{Kind: types.ErrEnumValueInvalid, Context: def.Name}}

	case types.ArgString, types.ArgPath:
		if pf.Value == nil {
			return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
		}
		return nil

	default:
		return []types.ValidationError{{Kind: types.ErrTypeMismatch, Context: def.Name}}
	}
}

func checkPositionalArity(schema *types.ToolSchema, parsed types.ParsedArgs) []types.ValidationError {
	var failures []types.ValidationError

	required := 0
	for _, p := range schema.Positionals {
		if p.Required {
			required++
		}
	}

	supplied := len(parsed.Positionals)
	if supplied < required {
		missingName := "positional"
		if supplied < len(schema.Positionals) {
			missingName = schema.Positionals[supplied].Name
		}
		failures = append(failures, types.ValidationError{Kind: types.ErrMissingRequiredPositional, Context: missingName})
	}
	if supplied > len(schema.Positionals) {
		failures = append(failures, types.ValidationError{Kind: types.ErrTooManyPositionals, Context: "positionals"})
	}
	return failures
}

func checkMutualExclusion(schema *types.ToolSchema, seen map[string]int) []types.ValidationError {
	var failures []types.ValidationError
	for _, group := range schema.ExclusiveGroups {
		count := 0
		for _, name := range group {
			if seen[name] > 0 {
				count++
			}
		}
		if count > 1 && len(group) > 0 {
			failures = append(failures, types.ValidationError{Kind: types.ErrMutualExclusionViolation, Context: group[0]})
		}
	}
	return failures
}
