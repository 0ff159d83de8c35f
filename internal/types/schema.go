package types

import "fmt"

// FlagDef describes one flag a ToolSchema accepts (spec §3).
type FlagDef struct {
	Name        string   `json:"name" yaml:"name"`
	Short       byte     `json:"short,omitempty" yaml:"short,omitempty"` // 0 means no short form
	ArgType     ArgType  `json:"arg_type" yaml:"arg_type"`
	Required    bool     `json:"required" yaml:"required"`
	EnumValues  []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
	RangeMin    *int64   `json:"range_min,omitempty" yaml:"range_min,omitempty"`
	RangeMax    *int64   `json:"range_max,omitempty" yaml:"range_max,omitempty"`
	Multiple    bool     `json:"multiple" yaml:"multiple"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// PositionalDef describes one positional argument slot.
type PositionalDef struct {
	Name       string   `json:"name" yaml:"name"`
	ArgType    ArgType  `json:"arg_type" yaml:"arg_type"`
	Required   bool     `json:"required" yaml:"required"`
	EnumValues []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
}

// ToolSchema is the typed contract for one tool or tool.subcommand id.
type ToolSchema struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Binary          string          `json:"binary" yaml:"binary"`
	Version         uint32          `json:"version" yaml:"version"`
	Risk            RiskLevel       `json:"risk" yaml:"risk"`
	Capabilities    []string        `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Flags           []FlagDef       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Positionals     []PositionalDef `json:"positionals,omitempty" yaml:"positionals,omitempty"`
	ExclusiveGroups [][]string      `json:"exclusive_groups,omitempty" yaml:"exclusive_groups,omitempty"`
}

// FlagByName returns the FlagDef named name, or nil if no such flag exists.
func (t *ToolSchema) FlagByName(name string) *FlagDef {
	for i := range t.Flags {
		if t.Flags[i].Name == name {
			return &t.Flags[i]
		}
	}
	return nil
}

// Subcommand returns the tail after the last '.' in the id, or "" if the id
// has no '.' (spec §4.3: this is the leading argv token for dotted ids).
func (t *ToolSchema) Subcommand() string {
	idx := -1
	for i := 0; i < len(t.ID); i++ {
		if t.ID[i] == '.' {
			idx = i
		}
	}
	if idx == -1 {
		return ""
	}
	return t.ID[idx+1:]
}

// CheckInternalConsistency verifies INV-8: every exclusive-group member
// names a flag actually defined on the schema, every enum-typed flag has a
// non-empty EnumValues, and range bounds are only set on int/float flags.
func (t *ToolSchema) CheckInternalConsistency() error {
	for _, group := range t.ExclusiveGroups {
		for _, name := range group {
			if t.FlagByName(name) == nil {
				return fmt.Errorf("exclusive group references undeclared flag %q", name)
			}
		}
	}
	for _, f := range t.Flags {
		if f.ArgType == ArgEnum && len(f.EnumValues) == 0 {
			return fmt.Errorf("flag %q is enum-typed but has no enum_values", f.Name)
		}
		if (f.RangeMin != nil || f.RangeMax != nil) && f.ArgType != ArgInt && f.ArgType != ArgFloat {
			return fmt.Errorf("flag %q has range bounds but arg_type %q is not int/float", f.Name, f.ArgType)
		}
	}
	for _, p := range t.Positionals {
		if p.ArgType == ArgEnum && len(p.EnumValues) == 0 {
			return fmt.Errorf("positional %q is enum-typed but has no enum_values", p.Name)
		}
	}
	return nil
}
