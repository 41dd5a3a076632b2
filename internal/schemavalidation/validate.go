// Package schemavalidation validates exported typing proofs against
// the published v1 JSON Schema.
package schemavalidation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/typing-proof-v1.schema.json
var proofSchemaV1 []byte

// SchemaID is the canonical identifier of the v1 proof schema.
const SchemaID = "https://typewitness.dev/schema/typing-proof-v1.schema.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// proofSchema compiles the embedded schema once.
func proofSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(SchemaID, bytes.NewReader(proofSchemaV1)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(SchemaID)
	})
	return compiled, compileErr
}

// ValidateProof checks serialized proof JSON against the v1 schema.
func ValidateProof(data []byte) error {
	schema, err := proofSchema()
	if err != nil {
		return err
	}

	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("unmarshal proof: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
