package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/opal-lang/gatectl/internal/gatierr"
	"github.com/opal-lang/gatectl/internal/types"
)

// decodeJSON decodes and converts a JSON schema document.
func decodeJSON(raw []byte) (*types.ToolSchema, error) {
	if err := validateStructure(raw); err != nil {
		return nil, gatierr.Wrap(gatierr.SchemaMalformed, "schema document failed structural validation", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, gatierr.Wrap(gatierr.SchemaMalformed, "schema document is not valid JSON", err)
	}
	return convert(doc)
}

// decodeYAML decodes and converts a YAML schema document. Per spec §6, any
// non-JSON encoding must preserve the same field set exactly: we convert
// YAML to a generic value, re-marshal to JSON, and run it through the exact
// same structural+semantic path as the JSON form.
func decodeYAML(raw []byte) (*types.ToolSchema, error) {
	var generic interface{}
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return nil, gatierr.Wrap(gatierr.SchemaMalformed, "schema document is not valid YAML", err)
	}
	asJSON, err := json.Marshal(normalizeYAML(generic))
	if err != nil {
		return nil, gatierr.Wrap(gatierr.SchemaMalformed, "schema document could not be normalized", err)
	}
	return decodeJSON(asJSON)
}

// normalizeYAML converts map[string]interface{} keys that yaml.v3 may
// produce as map[interface{}]interface{} in edge cases into JSON-safe
// shapes; yaml.v3 itself normally returns string-keyed maps, but nested
// documents from older tooling sometimes don't.
func normalizeYAML(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, vv := range val {
			out[fmt.Sprint(k)] = normalizeYAML(vv)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, vv := range val {
			out[i] = normalizeYAML(vv)
		}
		return out
	default:
		return val
	}
}

// convert turns a decoded document into a types.ToolSchema, applying the
// semantic checks spec §4.1 requires: an exclusive-group referencing an
// undeclared flag, an enum arg_type with empty enum_values, range bounds on
// a flag that is not int/float, or a short flag outside 0-255 all fail here
// with SchemaInternallyInconsistent.
func convert(doc document) (*types.ToolSchema, error) {
	ts := &types.ToolSchema{
		ID:              doc.ID,
		Name:            doc.Name,
		Binary:          doc.Binary,
		Version:         doc.Version,
		Risk:            types.RiskLevel(doc.Risk),
		Capabilities:    doc.Capabilities,
		ExclusiveGroups: doc.ExclusiveGroups,
	}

	for _, f := range doc.Flags {
		fd := types.FlagDef{
			Name:        f.Name,
			ArgType:     types.ArgType(f.ArgType),
			Required:    f.Required,
			EnumValues:  f.EnumValues,
			RangeMin:    f.RangeMin,
			RangeMax:    f.RangeMax,
			Multiple:    f.Multiple,
			Description: f.Description,
		}
		if f.Short != nil {
			if *f.Short < 0 || *f.Short > 255 {
				return nil, gatierr.New(gatierr.SchemaInternallyInconsistent, "short flag byte out of range").
					WithContext("flag", f.Name)
			}
			fd.Short = byte(*f.Short)
		}
		ts.Flags = append(ts.Flags, fd)
	}

	for _, p := range doc.Positionals {
		ts.Positionals = append(ts.Positionals, types.PositionalDef{
			Name:       p.Name,
			ArgType:    types.ArgType(p.ArgType),
			Required:   p.Required,
			EnumValues: p.EnumValues,
		})
	}

	if err := ts.CheckInternalConsistency(); err != nil {
		return nil, gatierr.Wrap(gatierr.SchemaInternallyInconsistent, fmt.Sprintf("schema %q is internally inconsistent", ts.ID), err).
			WithContext("tool_id", ts.ID)
	}

	return ts, nil
}
