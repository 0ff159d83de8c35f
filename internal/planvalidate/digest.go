package planvalidate

import (
	"encoding/hex"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/opal-lang/gatectl/internal/types"
)

// canonicalStep is the hashing-stable shape of a PlanStep: field order is
// fixed by struct declaration order (cbor's default Marshal preserves
// declaration order, grounded on core/planfmt/canonical.go's two-pass
// canonicalization), and only the fields that affect what will actually run
// participate — Justification and RiskScore are producer commentary, not
// part of what gets executed, so they are excluded to keep the digest a
// function of actionable content only.
type canonicalStep struct {
	ToolID      string
	Params      []types.PlanParam
	Positionals []string
}

// computeDigest returns a stable hex-encoded sha3-256 digest of a plan's
// actionable content, for audit correlation only (SPEC_FULL §4): it
// participates in no authority or validation decision and must never be
// used as a validation-result cache key, since two plans with the same
// digest have only been shown to request the same actions, not to have
// been validated identically against a possibly-since-upgraded schema.
func computeDigest(plan types.Plan) string {
	steps := make([]canonicalStep, 0, len(plan.Steps))
	for _, s := range plan.Steps {
		steps = append(steps, canonicalStep{ToolID: s.ToolID, Params: s.Params, Positionals: s.Positionals})
	}

	enc, err := cbor.Marshal(steps)
	if err != nil {
		return ""
	}
	sum := sha3.Sum256(enc)
	return hex.EncodeToString(sum[:])
}
