package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// metaSchemaJSON constrains the shape of a schema document before any
// hand-written semantic check runs: required top-level fields, the closed
// set of arg_type tags, and the closed set of risk tags. This is the
// structural half of spec §4.1's "SchemaMalformed" check; the semantic half
// (exclusive-group references, enum non-emptiness) is done by convert in
// decode.go
// against the already-decoded document, the same two-phase split the
// teacher's core/types.Validator uses for schema size/depth checks before
// compiling.
const metaSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "name", "binary", "version", "risk"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string"},
    "binary": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "minimum": 0},
    "risk": {"enum": ["safe", "local_write", "shared_write", "destructive"]},
    "capabilities": {"type": "array", "items": {"type": "string"}},
    "flags": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "arg_type"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "arg_type": {"enum": ["bool", "string", "int", "float", "path", "enum"]},
          "multiple": {"type": "boolean"},
          "required": {"type": "boolean"}
        }
      }
    },
    "positionals": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "arg_type"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "arg_type": {"enum": ["bool", "string", "int", "float", "path", "enum"]}
        }
      }
    },
    "exclusive_groups": {
      "type": "array",
      "items": {"type": "array", "items": {"type": "string"}}
    }
  }
}`

var (
	metaSchemaOnce sync.Once
	metaSchema     *jsonschema.Schema
	metaSchemaErr  error
)

func compiledMetaSchema() (*jsonschema.Schema, error) {
	metaSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		const url = "gatectl://tool-schema.json"
		if err := compiler.AddResource(url, strings.NewReader(metaSchemaJSON)); err != nil {
			metaSchemaErr = fmt.Errorf("compiling tool-schema meta-schema: %w", err)
			return
		}
		metaSchema, metaSchemaErr = compiler.Compile(url)
	})
	return metaSchema, metaSchemaErr
}

// validateStructure decodes raw as generic JSON and checks it against the
// compiled meta-schema. Called before the typed decode in decode.go so a
// structurally malformed document is rejected with a precise field-level
// message rather than a generic unmarshal error.
func validateStructure(raw []byte) error {
	ms, err := compiledMetaSchema()
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("decoding as JSON for structural check: %w", err)
	}
	return ms.Validate(v)
}
