package types

// ValidationErrorKind enumerates every per-argument failure the Validator
// can produce (spec §4.2). Validation never raises on the first failure: it
// returns the full list so a producer can correct every problem in one pass.
type ValidationErrorKind string

const (
	ErrUnknownFlag               ValidationErrorKind = "unknown_flag"
	ErrTypeMismatch              ValidationErrorKind = "type_mismatch"
	ErrIntOutOfRange             ValidationErrorKind = "int_out_of_range"
	ErrEnumValueInvalid          ValidationErrorKind = "enum_value_invalid"
	ErrDuplicateFlagNotAllowed   ValidationErrorKind = "duplicate_flag_not_allowed"
	ErrMissingRequiredFlag       ValidationErrorKind = "missing_required_flag"
	ErrMissingRequiredPositional ValidationErrorKind = "missing_required_positional"
	ErrTooManyPositionals        ValidationErrorKind = "too_many_positionals"
	ErrMutualExclusionViolation  ValidationErrorKind = "mutual_exclusion_violation"
)

// ValidationError is one failure, carrying the kind and the flag/positional
// name it applies to so a producer can correct it directly. Suggestion is
// set iff Kind == ErrUnknownFlag and a close match exists among the
// schema's declared flag names (SPEC_FULL §4), mirroring the plan
// protocol's unknown_tool suggestion (internal/planvalidate, via
// schema.Store.Suggest).
type ValidationError struct {
	Kind       ValidationErrorKind
	Context    string
	Suggestion string
}

func (v ValidationError) Error() string {
	return string(v.Kind) + ": " + v.Context
}
