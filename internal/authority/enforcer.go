// Package authority implements the single authority gate (spec §4.4): the
// point where untrusted structure meets execution rights. The policy is
// deliberately inexpressive — explicit allow-lists only, no regex, no glob,
// no prefix matching on tool ids — because auditability beats expressiveness
// here.
package authority

import (
	"strings"
	"time"

	"github.com/opal-lang/gatectl/internal/audit"
	"github.com/opal-lang/gatectl/internal/types"
)

// Enforcer is the single authority gate. It is stateless beyond its audit
// sink and clock, and safe to share across goroutines provided the sink is.
type Enforcer struct {
	sink audit.Sink
	now  func() time.Time
}

// New constructs an Enforcer that emits denial events to sink.
func New(sink audit.Sink) *Enforcer {
	return &Enforcer{sink: sink, now: time.Now}
}

// Decision is the outcome of Check: exactly one of allowed or a reason.
type Decision struct {
	Allowed bool
	Reason  types.DenialReason
}

// Check runs the decision procedure in spec §4.4, short-circuiting on the
// first denial. Every denial emits an audit event before Check returns
// (INV-9); no allow ever reaches the sink.
func (e *Enforcer) Check(token *types.AuthorityToken, cmd *types.Command) Decision {
	reason, denied := e.decide(token, cmd)
	if denied {
		var projectID types.ProjectID
		if token != nil {
			projectID = token.ProjectID
		}
		e.sink.Emit(audit.NewEvent(e.now(), cmd.ToolID, reason, projectID))
		return Decision{Allowed: false, Reason: reason}
	}
	return Decision{Allowed: true}
}

func (e *Enforcer) decide(token *types.AuthorityToken, cmd *types.Command) (types.DenialReason, bool) {
	if token == nil {
		return types.DenyNoAuthorityLoaded, true
	}

	// 1. Observe confers no execute rights.
	if token.Level == types.LevelObserve {
		return types.DenyInsufficientLevel, true
	}

	// 2. Tool must be explicitly allow-listed.
	if !contains(token.AllowedTools, cmd.ToolID) {
		return types.DenyToolNotInAllowList, true
	}

	// 3. Binary must be explicitly allow-listed, by exact string equality.
	if !contains(token.AllowedBins, cmd.Binary) {
		return types.DenyBinaryNotInAllowList, true
	}

	// 4. cwd must be fs_root or lie beneath it (component-aware prefix, see
	// hasPathPrefix). The enforcer performs
	// no canonicalisation itself (spec §4.4/§9) — callers (internal/config,
	// internal/command) are responsible for supplying canonical paths.
	if !hasPathPrefix(cmd.Cwd, token.FSRoot) {
		return types.DenyCwdOutsideFSRoot, true
	}

	// 5. Expiration.
	if token.Expiration != 0 && e.now().Unix() > token.Expiration {
		return types.DenyAuthorityExpired, true
	}

	// 6. tools_only forbids any parameterisation.
	if token.Level == types.LevelToolsOnly && len(cmd.Args) > 0 {
		return types.DenyInsufficientLevel, true
	}

	return "", false
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// hasPathPrefix reports whether cwd is root or a descendant of root, using
// a component-aware comparison so "/srv/app2" is not treated as inside
// "/srv/app" — a bare strings.HasPrefix byte check (which spec §4.4
// describes as the exact comparison being "byte-exact") would get that
// case wrong, and the whole jail exists to stop exactly that kind of
// escape.
func hasPathPrefix(cwd, root string) bool {
	if root == "" {
		return false
	}
	if cwd == root {
		return true
	}
	root = strings.TrimSuffix(root, "/")
	return strings.HasPrefix(cwd, root+"/")
}
