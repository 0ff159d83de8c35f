// Package planvalidate implements the plan protocol (spec §4.5): validating
// a multi-step Plan from an untrusted producer — typically an AI — without
// ever executing a step. Every step is evaluated regardless of any earlier
// step's outcome (I7): a plan's validation result always has as many
// StepResults as the plan had steps.
package planvalidate

import (
	"github.com/opal-lang/gatectl/internal/authority"
	"github.com/opal-lang/gatectl/internal/schema"
	"github.com/opal-lang/gatectl/internal/types"
	"github.com/opal-lang/gatectl/internal/validator"
)

// StepOutcome is the tag of a StepValidation's result.
type StepOutcome string

const (
	StepValid           StepOutcome = "valid"
	StepUnknownTool     StepOutcome = "unknown_tool"
	StepSchemaInvalid   StepOutcome = "schema_invalid"
	StepAuthorityDenied StepOutcome = "authority_denied"
)

// StepValidation is the per-step outcome: exactly one of the fields below is
// meaningful, selected by Outcome.
type StepValidation struct {
	Outcome      StepOutcome
	ToolID       string
	Failures     []types.ValidationError // set iff Outcome == StepSchemaInvalid
	DenialReason types.DenialReason       // set iff Outcome == StepAuthorityDenied
	Suggestion   string                   // set iff Outcome == StepUnknownTool and a close id exists
}

// PlanValidation is the ordered result of validating every step of a Plan.
type PlanValidation struct {
	PlanID      string
	StepResults []StepValidation
	AllValid    bool
	FailedCount int
	Digest      string // see digest.go; audit correlation only, never gates anything
}

// Validate runs the full plan protocol (spec §4.5) against every step of
// plan, in document order, never short-circuiting on a failing step.
func Validate(store *schema.Store, enforcer *authority.Enforcer, token *types.AuthorityToken, plan types.Plan) PlanValidation {
	result := PlanValidation{PlanID: plan.PlanID}

	for _, step := range plan.Steps {
		sv := validateStep(store, enforcer, token, step)
		result.StepResults = append(result.StepResults, sv)
		if sv.Outcome != StepValid {
			result.FailedCount++
		}
	}
	result.AllValid = result.FailedCount == 0
	result.Digest = computeDigest(plan)
	return result
}

func validateStep(store *schema.Store, enforcer *authority.Enforcer, token *types.AuthorityToken, step types.PlanStep) StepValidation {
	ts := store.Get(step.ToolID)
	if ts == nil {
		return StepValidation{Outcome: StepUnknownTool, ToolID: step.ToolID, Suggestion: store.Suggest(step.ToolID)}
	}

	if failures := validator.Validate(ts, step.ToParsedArgs()); len(failures) > 0 {
		return StepValidation{Outcome: StepSchemaInvalid, ToolID: step.ToolID, Failures: failures}
	}

	// Provisional command: empty args, cwd bound to the project root,
	// independent of any per-step cwd (spec §4.5 deliberately excludes
	// per-step cwd overrides at this stage).
	provisional := &types.Command{
		ToolID: ts.ID,
		Binary: ts.Binary,
		Cwd:    token.FSRoot,
	}
	decision := enforcer.Check(token, provisional)
	if !decision.Allowed {
		return StepValidation{Outcome: StepAuthorityDenied, ToolID: step.ToolID, DenialReason: decision.Reason}
	}

	return StepValidation{Outcome: StepValid, ToolID: step.ToolID}
}

// DryRun is the same pipeline as Validate with no subsequent execution — the
// executor is never invoked. It exists as a distinct name so a caller's
// intent ("I want the pre-exec report only") is explicit at the call site,
// even though the implementation is identical.
func DryRun(store *schema.Store, enforcer *authority.Enforcer, token *types.AuthorityToken, plan types.Plan) PlanValidation {
	return Validate(store, enforcer, token, plan)
}
