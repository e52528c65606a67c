package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// definitionSchema describes a template definition document.
const definitionSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "condition": {
      "type": "object",
      "required": ["operator"],
      "properties": {
        "field": {"type": "string"},
        "operator": {"enum": ["equals", "includes", "gt", "exists", "expr"]},
        "value": {}
      },
      "additionalProperties": false
    },
    "section": {
      "type": "object",
      "required": ["id", "content"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "kind": {"type": "string"},
        "content": {"type": "string"},
        "variables": {"type": "array", "items": {"type": "string"}},
        "guard": {"$ref": "#/$defs/condition"}
      },
      "additionalProperties": false
    },
    "seo": {
      "type": "object",
      "properties": {
        "title": {"type": "string"},
        "description": {"type": "string"},
        "keywords": {"type": "array", "items": {"type": "string"}},
        "schema": {"type": ["object", "array"]}
      },
      "additionalProperties": false
    },
    "template": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string"},
        "sections": {"type": "array", "items": {"$ref": "#/$defs/section"}},
        "seo": {"$ref": "#/$defs/seo"}
      },
      "additionalProperties": false
    }
  },
  "oneOf": [
    {
      "type": "object",
      "required": ["templates"],
      "properties": {
        "version": {"const": "1"},
        "templates": {"type": "array", "items": {"$ref": "#/$defs/template"}}
      },
      "additionalProperties": false
    },
    {"$ref": "#/$defs/template"}
  ]
}`

// ValidationError is a single schema violation.
type ValidationError struct {
	Path    string // JSON pointer into the document, e.g. "/templates/0/sections/1"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult collects every violation found in a document.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

func definitionValidator() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("pagegen-templates.json", strings.NewReader(definitionSchema)); err != nil {
			compiledSchemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile("pagegen-templates.json")
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateDocument checks a decoded definition document against the
// template schema. doc must hold values produced by encoding/json.
func ValidateDocument(doc any) (*ValidationResult, error) {
	schema, err := definitionValidator()
	if err != nil {
		return nil, err
	}

	result := &ValidationResult{}
	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return nil, err
		}
		collectSchemaErrors(verr, result)
	}
	return result, nil
}

// collectSchemaErrors flattens the cause tree down to its leaves.
func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationResult) {
	if len(err.Causes) == 0 {
		result.AddError(err.InstanceLocation, err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}
