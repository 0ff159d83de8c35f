// Package schema implements the SchemaStore (spec §4.1): the typed,
// versioned CLI ontology the rest of the core treats as ground truth. A
// schema document is decoded with an explicit typed decoder — never a
// generic map walk (spec §9) — and checked both structurally (via a
// compiled meta-schema, grounded on the teacher's core/types validator) and
// semantically (exclusive-group/enum/range consistency, spec §4.1) before
// it is ever allowed to replace a stored schema.
package schema

import "encoding/json"

// document is the on-the-wire shape of one schema file (spec §6). It is
// intentionally permissive about the unused "subcommands" field: the core
// ignores nested subcommands (they are represented as separate top-level
// schemas whose id uses dot notation) but the field must round-trip without
// erroring so producers that still emit it are not broken.
type document struct {
	ID              string            `json:"id" yaml:"id"`
	Name            string            `json:"name" yaml:"name"`
	Binary          string            `json:"binary" yaml:"binary"`
	Version         uint32            `json:"version" yaml:"version"`
	Risk            string            `json:"risk" yaml:"risk"`
	Capabilities    []string          `json:"capabilities" yaml:"capabilities"`
	Flags           []flagDocument    `json:"flags" yaml:"flags"`
	Positionals     []positionalDoc   `json:"positionals" yaml:"positionals"`
	Subcommands     json.RawMessage   `json:"subcommands,omitempty" yaml:"subcommands,omitempty"` // reserved, ignored
	ExclusiveGroups [][]string        `json:"exclusive_groups" yaml:"exclusive_groups"`
}

type flagDocument struct {
	Name        string   `json:"name" yaml:"name"`
	Short       *int     `json:"short,omitempty" yaml:"short,omitempty"`
	ArgType     string   `json:"arg_type" yaml:"arg_type"`
	Required    bool     `json:"required" yaml:"required"`
	EnumValues  []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
	RangeMin    *int64   `json:"range_min,omitempty" yaml:"range_min,omitempty"`
	RangeMax    *int64   `json:"range_max,omitempty" yaml:"range_max,omitempty"`
	Multiple    bool     `json:"multiple" yaml:"multiple"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

type positionalDoc struct {
	Name       string   `json:"name" yaml:"name"`
	ArgType    string   `json:"arg_type" yaml:"arg_type"`
	Required   bool     `json:"required" yaml:"required"`
	EnumValues []string `json:"enum_values,omitempty" yaml:"enum_values,omitempty"`
}
