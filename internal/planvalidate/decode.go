package planvalidate

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

// planDocument mirrors the wire shape in spec §6. Unknown top-level keys
// are ignored by construction: encoding/json and yaml.v3 both skip fields
// with no matching struct tag.
type planDocument struct {
	PlanID      string            `json:"plan_id" yaml:"plan_id"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []types.PlanStep  `json:"steps" yaml:"steps"`
}

// DecodeJSON parses raw as a plan document. A plan with zero steps is not
// itself an error — it decodes successfully and Validate reports it via an
// empty StepResults with AllValid true, distinct from a PlanMalformed
// decode failure.
func DecodeJSON(raw []byte) (types.Plan, error) {
	var doc planDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return types.Plan{}, gatierr.Wrap(gatierr.PlanMalformed, "plan document is not valid JSON", err)
	}
	return types.Plan{PlanID: doc.PlanID, Description: doc.Description, Steps: doc.Steps}, nil
}

// DecodeYAML parses raw as a YAML plan document.
func DecodeYAML(raw []byte) (types.Plan, error) {
	var doc planDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return types.Plan{}, gatierr.Wrap(gatierr.PlanMalformed, "plan document is not valid YAML", err)
	}
	return types.Plan{PlanID: doc.PlanID, Description: doc.Description, Steps: doc.Steps}, nil
}

// IsEmpty reports whether plan has zero steps, so a caller can surface that
// case distinctly from "validated, zero failures" if its UX wants to.
func IsEmpty(plan types.Plan) bool {
	return len(plan.Steps) == 0
}
