package bank

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema describes the accepted shape of a question-bank file.
// Structural problems are reported before any entry is normalized.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "question_number": {"type": ["string", "number", "null"]},
      "question_text": {"type": "string"},
      "options": {
        "type": ["object", "null"],
        "additionalProperties": {"type": "string"}
      },
      "correct_answer": {"type": ["string", "null"]},
      "explanation": {"type": ["string", "null"]},
      "is_simulation": {"type": ["boolean", "null"]},
      "simulation_details": {"type": ["string", "null"]}
    },
    "required": ["question_text"]
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func validateBank(doc any) error {
	schemaOnce.Do(func() {
		sch, err := jsonschema.UnmarshalJSON(strings.NewReader(bankSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("bank.schema.json", sch); err != nil {
			schemaErr = fmt.Errorf("add bank schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("bank.schema.json")
	})
	if schemaErr != nil {
		return schemaErr
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
