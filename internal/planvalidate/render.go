package planvalidate

import (
	"fmt"
	"strings"

	"github.com/opal-lang/gatectl/internal/types"
)

// Render produces a deterministic, line-oriented summary of a plan
// validation for CLI/audit consumption (SPEC_FULL §4, grounded on
// dshills-plancritic's internal/render). It is read-only: it touches no
// authority or schema state and participates in no decision.
func Render(plan types.Plan, pv PlanValidation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "plan %s: %d step(s), %d failed\n", plan.PlanID, len(pv.StepResults), pv.FailedCount)
	if pv.Digest != "" {
		fmt.Fprintf(&b, "digest: %s\n", pv.Digest)
	}

	for i, sv := range pv.StepResults {
		fmt.Fprintf(&b, "[%d] %s: %s", i, sv.ToolID, sv.Outcome)
		switch sv.Outcome {
		case StepUnknownTool:
			if sv.Suggestion != "" {
				fmt.Fprintf(&b, " (did you mean %q?)", sv.Suggestion)
			}
		case StepSchemaInvalid:
			for _, f := range sv.Failures {
				fmt.Fprintf(&b, "\n      - %s: %s", f.Kind, f.Context)
				if f.Suggestion != "" {
					fmt.Fprintf(&b, " (did you mean %q?)", f.Suggestion)
				}
			}
		case StepAuthorityDenied:
			fmt.Fprintf(&b, " (%s)", sv.DenialReason)
		}
		b.WriteString("\n")

		if i < len(plan.Steps) {
			renderParams(&b, plan.Steps[i])
		}
	}

	return b.String()
}

func renderParams(b *strings.Builder, step types.PlanStep) {
	for _, p := range step.Params {
		val := ""
		if p.Value != nil {
			val = redactValue(p.Name, *p.Value)
		}
		fmt.Fprintf(b, "      %s=%s\n", p.Name, val)
	}
}
