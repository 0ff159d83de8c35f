package types

// AuthorityLevel is a non-inheriting ordered variant: tools_only is not a
// superset of observe. Each level is its own distinct contract (spec §4.3).
type AuthorityLevel string

const (
	LevelObserve             AuthorityLevel = "observe"
	LevelToolsOnly           AuthorityLevel = "tools_only"
	LevelParameterizedTools  AuthorityLevel = "parameterized_tools"
	LevelScopedCommands      AuthorityLevel = "scoped_commands"
)

// NetworkPolicy gates outbound network access; the core never enforces this
// directly (no network subsystem lives in the trust boundary) but it is part
// of the token a config loader produces and an executor-adjacent collaborator
// may consult.
type NetworkPolicy string

const (
	NetworkDeny      NetworkPolicy = "deny"
	NetworkLocalhost NetworkPolicy = "localhost"
	NetworkAllowlist NetworkPolicy = "allowlist"
)

// ProjectID is a 32-byte hash of a project root path.
type ProjectID [32]byte

// AuthorityToken is the capability envelope scoped to one project; cheap to
// pass by value, carries no resource, and is treated as immutable for its
// lifetime.
type AuthorityToken struct {
	ProjectID    ProjectID
	Level        AuthorityLevel
	Expiration   int64 // unix seconds; 0 = session-only, never expires
	AllowedTools []string
	AllowedBins  []string
	FSRoot       string
	Network      NetworkPolicy
}

// DenialReason is the tag attached to every refused command; the atom the
// audit log records.
type DenialReason string

const (
	DenyNoAuthorityLoaded      DenialReason = "no_authority_loaded"
	DenyToolNotInAllowList     DenialReason = "tool_not_in_allow_list"
	DenyBinaryNotInAllowList   DenialReason = "binary_not_in_allow_list"
	DenyParametersOutOfBounds  DenialReason = "parameters_out_of_bounds"
	DenyCwdOutsideFSRoot       DenialReason = "cwd_outside_fs_root"
	DenyAuthorityExpired       DenialReason = "authority_expired"
	DenyInsufficientLevel      DenialReason = "insufficient_level"
	DenySchemaValidationFailed DenialReason = "schema_validation_failed"
	DenyNetworkPolicyViolation DenialReason = "network_policy_violation"
)
