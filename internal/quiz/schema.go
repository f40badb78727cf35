package quiz

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaJSON constrains the shape of a single question record.
// Kind-specific coercion (id parsing, qtype lookup, mcq options) happens in
// the builder; the schema only rejects values that cannot be coerced.
const recordSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "id":          {"type": ["integer", "string", "null"]},
    "qtype":       {"type": ["string", "null"]},
    "question":    {"type": ["string", "number", "boolean", "null"]},
    "answer":      {"type": ["string", "number", "boolean", "null"]},
    "explanation": {"type": ["string", "number", "boolean", "null"]}
  }
}`

const recordSchemaURL = "schema://quiz-record.json"

var recordSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(recordSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse record schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(recordSchemaURL)
})

// validateRecord checks a decoded record against the record schema.
func validateRecord(rec Record) error {
	schema, err := recordSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(rec); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
