// Package gatierr is the structured error taxonomy shared by every subsystem
// in gatectl's trust boundary: the schema store, the plan protocol, the
// config loader, and the executor. Every fallible operation that crosses an
// input boundary returns one of these instead of panicking, so a producer
// (often an AI plan generator) can distinguish "malformed input" from
// "denied by policy" from "internal programmer error" (invariant panics).
package gatierr

import "fmt"

// Kind is one of the stable error tags from spec §7.
type Kind string

const (
	// Input-shape errors: the document could not be parsed into its type.
	SchemaMalformed Kind = "SCHEMA_MALFORMED"
	ConfigMalformed Kind = "CONFIG_MALFORMED"
	PlanMalformed   Kind = "PLAN_MALFORMED"

	// Semantic errors: the document parsed but violates a contract.
	SchemaVersionDowngrade       Kind = "SCHEMA_VERSION_DOWNGRADE"
	InvalidLevel                 Kind = "INVALID_LEVEL"
	InvalidNetworkPolicy         Kind = "INVALID_NETWORK_POLICY"
	SchemaInternallyInconsistent Kind = "SCHEMA_INTERNALLY_INCONSISTENT"

	// Build/validation failure at the command builder.
	SchemaValidationFailed Kind = "SCHEMA_VALIDATION_FAILED"

	// Execution failures.
	AuthorityDenied Kind = "AUTHORITY_DENIED"
	SpawnFailed     Kind = "SPAWN_FAILED"
	OutOfMemory     Kind = "OUT_OF_MEMORY"

	// Rejected input that the implementation does not support (§9 timeout note).
	UnsupportedTimeout Kind = "UNSUPPORTED_TIMEOUT"
)

// Error is a structured error carrying enough context for a producer to
// correct its input without the message ever echoing a secret value.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
	Context map[string]string
}

// New creates an Error with no cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Context: make(map[string]string)}
}

// Wrap creates an Error wrapping an existing error.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause, Context: make(map[string]string)}
}

// WithContext attaches a structured field (e.g. "tool_id", "flag") and
// returns the receiver for chaining.
func (e *Error) WithContext(key, value string) *Error {
	e.Context[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is/As to reach the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *Error with the same Kind, so callers can
// do errors.Is(err, gatierr.New(gatierr.SchemaMalformed, "")) style checks,
// or more idiomatically compare via a helper like IsKind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	ge, ok := err.(*Error)
	if !ok {
		return false
	}
	return ge.Kind == kind
}
