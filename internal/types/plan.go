package types

// PlanParam is one named parameter in a plan step, mirroring ParsedFlag but
// named per the plan document's field names (spec §6).
type PlanParam struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty"`
}

// PlanStep is one step of an untrusted multi-step Plan.
type PlanStep struct {
	ToolID             string      `json:"tool_id" yaml:"tool_id"`
	Params             []PlanParam `json:"params,omitempty" yaml:"params,omitempty"`
	Positionals        []string    `json:"positionals,omitempty" yaml:"positionals,omitempty"`
	Justification      string      `json:"justification,omitempty" yaml:"justification,omitempty"`
	RiskScore          float64     `json:"risk_score,omitempty" yaml:"risk_score,omitempty"`
	CapabilityRequests []string    `json:"capability_requests,omitempty" yaml:"capability_requests,omitempty"`
}

// Plan is a multi-step declarative invocation from an untrusted producer,
// typically an AI, subject to the full validation pipeline before any step
// of it is ever executed.
type Plan struct {
	PlanID      string     `json:"plan_id" yaml:"plan_id"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []PlanStep `json:"steps" yaml:"steps"`
}

// ToParsedArgs converts a step's params/positionals into the ParsedArgs
// shape the Validator and CommandBuilder consume.
func (s PlanStep) ToParsedArgs() ParsedArgs {
	flags := make([]ParsedFlag, 0, len(s.Params))
	for _, p := range s.Params {
		flags = append(flags, ParsedFlag{Name: p.Name, Value: p.Value})
	}
	return ParsedArgs{Flags: flags, Positionals: s.Positionals}
}
