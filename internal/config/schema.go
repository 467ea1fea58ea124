package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchema is returned when a document does not match the config schema.
var ErrSchema = errors.New("config does not match schema")

const schemaURL = "asymptote-config.json"

// Schema is the JSON Schema every configuration document must satisfy.
const Schema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "definitions": {
    "duration": {
      "type": "string",
      "pattern": "^\\s*[0-9]"
    },
    "settings": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "stabilityBudget":    {"$ref": "#/definitions/duration"},
        "samplingBudget":     {"$ref": "#/definitions/duration"},
        "sizeGrowth":         {"type": "number", "exclusiveMinimum": 1},
        "repetitionGrowth":   {"type": "number", "exclusiveMinimum": 1},
        "tolerance":          {"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1},
        "initialRepetitions": {"type": "integer", "minimum": 1},
        "initialSize":        {"type": "integer", "minimum": 1},
        "maxRepetitions":     {"type": "integer", "minimum": 0},
        "collectGarbage":     {"type": "boolean"}
      }
    }
  },
  "properties": {
    "settings": {"$ref": "#/definitions/settings"},
    "workloads": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["name"],
        "properties": {
          "name":       {"type": "string", "minLength": 1},
          "components": {"type": "array", "items": {"type": "string"}},
          "settings":   {"$ref": "#/definitions/settings"}
        }
      }
    }
  }
}`

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// validate checks a JSON document against Schema.
func validate(doc []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("%w: %s", ErrSchema, describe(verr))
		}
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// describe flattens a validation error tree into its leaf messages.
func describe(verr *jsonschema.ValidationError) string {
	var leaves []string
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			leaves = append(leaves, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(verr)
	return strings.Join(leaves, "; ")
}
